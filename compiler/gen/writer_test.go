package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	t.Run("writes files in parallel", func(t *testing.T) {
		dir := t.TempDir()
		var files []*File
		for _, name := range []string{"a.ts", "b.ts", "c/d.ts"} {
			files = append(files, &File{Path: filepath.Join(dir, name), Content: []byte("export const x = 1;\n")})
		}
		w := NewWriter(MustNewConfig()).WithWorkers(2)
		require.NoError(t, w.Write(context.Background(), files))

		m := w.Metrics()
		assert.Equal(t, 3, m.FilesWritten)
		assert.Equal(t, int64(3*len("export const x = 1;\n")), m.TotalBytes)
		for _, f := range files {
			assert.FileExists(t, f.Path)
		}
	})

	t.Run("formats go sources", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "sdk.go")
		w := NewWriter(nil)
		require.NoError(t, w.Write(context.Background(), []*File{
			{Path: path, Content: []byte("package sdk\nfunc  Hello( ) string {return \"hi\"}\n")},
		}))
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "package sdk\n\nfunc Hello() string { return \"hi\" }\n", string(got))
	})

	t.Run("invalid go source", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "broken.go")
		err := NewWriter(nil).Write(context.Background(), []*File{
			{Path: path, Content: []byte("package sdk\nfunc {")},
		})
		require.Error(t, err)
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "format", genErr.Phase)
		assert.Equal(t, path, genErr.File)
		assert.FileExists(t, path+".error")
		assert.NoFileExists(t, path)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewWriter(nil).Write(ctx, []*File{{Path: filepath.Join(t.TempDir(), "a.ts")}})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("workers from config", func(t *testing.T) {
		w := NewWriter(MustNewConfig(WithWorkers(3)))
		assert.Equal(t, 3, w.workers)
	})
}
