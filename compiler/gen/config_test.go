package gen

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageExt(t *testing.T) {
	assert.Equal(t, ".ts", TypeScript.Ext())
	assert.Equal(t, ".go", Go.Ext())
	assert.Empty(t, Language("rust").Ext())
}

func TestIdentifyModeString(t *testing.T) {
	assert.Equal(t, "name", IdentifyByName.String())
	assert.Equal(t, "field", IdentifyByField.String())
	assert.Equal(t, "unknown", IdentifyMode(7).String())
}

func TestConfigOpaque(t *testing.T) {
	t.Run("language default", func(t *testing.T) {
		assert.Equal(t, "unknown", (&Config{Language: TypeScript}).Opaque())
		assert.Equal(t, "any", (&Config{Language: Go}).Opaque())
	})

	t.Run("override", func(t *testing.T) {
		c := &Config{Language: Go, OpaqueScalar: "json.RawMessage"}
		assert.Equal(t, "json.RawMessage", c.Opaque())
	})

	t.Run("unknown language", func(t *testing.T) {
		assert.Equal(t, "unknown", (&Config{}).Opaque())
	})
}

func TestConfigScalarMapIsolated(t *testing.T) {
	c := MustNewConfig(WithScalars(map[string]string{"DateTime": "string"}))
	m := c.ScalarMap()
	m["ID"] = "number"

	assert.Equal(t, "string", c.ScalarMap()["ID"])
	assert.Equal(t, "string", defaultScalars[TypeScript]["ID"])
}

func TestConfigIsIdentifyingName(t *testing.T) {
	c := MustNewConfig(WithIdentify(IdentifyByName, "id", "key"))

	assert.True(t, c.IsIdentifyingName("id"))
	assert.True(t, c.IsIdentifyingName("key"))
	assert.False(t, c.IsIdentifyingName("first"))
}

func TestConfigLogger(t *testing.T) {
	t.Run("nil config discards", func(t *testing.T) {
		var c *Config
		assert.NotNil(t, c.logger())
	})

	t.Run("configured", func(t *testing.T) {
		l := slog.New(slog.DiscardHandler)
		assert.Same(t, l, (&Config{Logger: l}).logger())
	})
}
