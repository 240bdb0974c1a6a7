package gen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestNewIR(t *testing.T) {
	g := testGraph(t, issueDocuments, WithDocumentFile("./graphql"))
	ir := NewIR(g)

	assert.Equal(t, IRVersion, ir.Version)
	assert.Equal(t, "typescript", ir.Language)
	assert.Equal(t, "documentNode", ir.DocumentMode)
	assert.Equal(t, "DocumentNode", ir.DocumentType)
	assert.Len(t, ir.Types, len(g.Context.Order))
	assert.Len(t, ir.Models, len(g.Models))
	require.Len(t, ir.Operations, 2)
	assert.Equal(t, "IssueQueryIssue", ir.Operations[0].Result)

	require.Len(t, ir.Groups, 1)
	issue := ir.Groups[0].Definitions[0]
	assert.Equal(t, []string{"id"}, issue.Args)
	require.Len(t, issue.Children, 1)
	assert.Equal(t, []IRInherited{{Variable: "id", From: "issue", Field: "id"}}, issue.Children[0].Inherited)
}

func TestEncodeIR(t *testing.T) {
	g := testGraph(t, issueDocuments)

	data, err := EncodeIR(g)
	require.NoError(t, err)
	ir, err := DecodeIR(data)
	require.NoError(t, err)
	if diff := cmp.Diff(NewIR(g), ir); diff != "" {
		t.Errorf("decoded IR mismatch (-want +got):\n%s", diff)
	}

	t.Run("unsupported version", func(t *testing.T) {
		data, err := msgpack.Marshal(&IR{Version: IRVersion + 1})
		require.NoError(t, err)
		_, err = DecodeIR(data)
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := DecodeIR([]byte{0xc1})
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
	})
}
