package gen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, documents string) []*SdkModel {
	t.Helper()
	doc := parseTestDocument(t, documents)
	ctx, _ := testContext(t, doc)
	models, err := ExtractModels(ctx, doc, nil)
	require.NoError(t, err)
	return models
}

func TestExtractModels(t *testing.T) {
	t.Run("one model per selection set", func(t *testing.T) {
		models := extract(t, `
query issue($id: ID!) {
  issue(id: $id) {
    id
    title
    comments { id body author { name } }
  }
}
fragment UserParts on User { id name }
`)
		var names []string
		for _, m := range models {
			names = append(names, m.Name)
		}
		assert.Equal(t, []string{
			"IssueQuery",
			"IssueQueryIssue",
			"IssueQueryIssueComment",
			"IssueQueryIssueCommentAuthor",
			"UserParts",
		}, names)

		root := models[0]
		assert.True(t, root.IsRoot())
		assert.Equal(t, "Query", root.Type.Name)
		assert.Equal(t, SourceOperation, root.SourceKind)

		comment := models[2]
		assert.Equal(t, "Comment", comment.Type.Name)
		assert.Equal(t, "issue", comment.Source)
		assert.Equal(t, []string{"issue", "comments"}, comment.Path)
		assert.Same(t, comment, models[1].Field("comments").Model)

		parts := models[4]
		assert.Equal(t, SourceFragment, parts.SourceKind)
		assert.Equal(t, "fragment", parts.SourceKind.String())
		assert.Equal(t, []string{"id", "name"}, fieldNames(parts))
	})

	t.Run("models are keyed by shape", func(t *testing.T) {
		models := extract(t, `
query a($id: ID!) { issue(id: $id) { id } }
query b($id: ID!) { issue(id: $id) { title } }
`)
		byName := ModelsByName(models)
		a, b := byName["AQueryIssue"], byName["BQueryIssue"]
		require.NotNil(t, a)
		require.NotNil(t, b)
		assert.Same(t, a.Type, b.Type)
		assert.Equal(t, []string{"id"}, fieldNames(a))
		assert.Equal(t, []string{"title"}, fieldNames(b))
	})

	t.Run("expands fragment spreads inline", func(t *testing.T) {
		models := extract(t, `
query issue($id: ID!) { issue(id: $id) { ...IssueParts createdAt } }
fragment IssueParts on Issue { id title }
`)
		m := ModelsByName(models)["IssueQueryIssue"]
		require.NotNil(t, m)
		assert.Equal(t, []string{"id", "title", "createdAt"}, fieldNames(m))
		assert.Equal(t, "DateTime!", m.Field("createdAt").Type.String())
	})

	t.Run("later occurrence of a key wins and keeps its position", func(t *testing.T) {
		models := extract(t, `
query issue($id: ID!) { issue(id: $id) { label: id ...Label state } }
fragment Label on Issue { label: title }
`)
		m := ModelsByName(models)["IssueQueryIssue"]
		require.NotNil(t, m)
		assert.Equal(t, []string{"label", "state"}, fieldNames(m))
		assert.Equal(t, "title", m.Field("label").FieldName)
		assert.Equal(t, "String!", m.Field("label").Type.String())
	})

	t.Run("sub-selections of a repeated key are merged", func(t *testing.T) {
		models := extract(t, `
query issue($id: ID!) { issue(id: $id) { author { id } ...Author } }
fragment Author on Issue { author { name id } }
`)
		m := ModelsByName(models)["IssueQueryIssueAuthor"]
		require.NotNil(t, m)
		assert.Equal(t, []string{"id", "name"}, fieldNames(m))
	})

	t.Run("inline fragments on abstract types", func(t *testing.T) {
		models := extract(t, `
query search($term: String!) {
  search(term: $term) {
    __typename
    ... on Issue { id title }
    ... on Comment { id body }
  }
}
`)
		m := ModelsByName(models)["SearchQuerySearch"]
		require.NotNil(t, m)
		assert.Equal(t, "SearchResult", m.Type.Name)
		assert.Equal(t, []string{"__typename", "id", "title", "body"}, fieldNames(m))
		assert.Equal(t, "String!", m.Field("__typename").Type.String())
		assert.Equal(t, "String", m.Field("__typename").Descriptor.Name)
	})

	t.Run("inline fragment without type condition", func(t *testing.T) {
		models := extract(t, `query viewer { viewer { ... { id name } } }`)
		m := ModelsByName(models)["ViewerQueryViewer"]
		require.NotNil(t, m)
		assert.Equal(t, []string{"id", "name"}, fieldNames(m))
	})

	t.Run("name clashes get a numeric suffix", func(t *testing.T) {
		models := extract(t, `
query issue($id: ID!) { issue(id: $id) { id } }
fragment IssueQuery on Query { viewer { id } }
`)
		byName := ModelsByName(models)
		require.Contains(t, byName, "IssueQuery")
		require.Contains(t, byName, "IssueQuery2")
		assert.Equal(t, SourceFragment, byName["IssueQuery2"].SourceKind)
		assert.Contains(t, byName, "IssueQuery2Viewer")
	})
}

func TestExtractModelsAssociativity(t *testing.T) {
	flattened := func(t *testing.T, documents string) map[string][]string {
		out := make(map[string][]string)
		for _, m := range extract(t, documents) {
			out[m.Name] = fieldNames(m)
		}
		return out
	}

	query := `query issue($id: ID!) { issue(id: $id) { ...A } }`
	a := `fragment A on Issue { id ...B state }`
	b := `fragment B on Issue { title ...C }`
	c := `fragment C on Issue { createdAt }`

	want := flattened(t, query+a+b+c)
	assert.Equal(t, []string{"id", "title", "createdAt", "state"}, want["IssueQueryIssue"])
	assert.Equal(t, want["IssueQueryIssue"], want["A"])

	for name, docs := range map[string]string{
		"reversed fragments":   query + c + b + a,
		"inner first":          query + b + c + a,
		"fragments before ops": a + c + b + query,
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(want, flattened(t, docs)); diff != "" {
				t.Errorf("flattened fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractModelsErrors(t *testing.T) {
	tests := []struct {
		name      string
		documents string
		check     func(error) bool
	}{
		{
			name:      "unknown field",
			documents: `query issue($id: ID!) { issue(id: $id) { missing } }`,
			check:     IsUnresolvedModelReference,
		},
		{
			name:      "unknown inline type condition",
			documents: `query search($term: String!) { search(term: $term) { ... on Missing { id } } }`,
			check:     IsUnresolvedModelReference,
		},
		{
			name: "fragment cycle",
			documents: `
query issue($id: ID!) { issue(id: $id) { ...A } }
fragment A on Issue { id ...B }
fragment B on Issue { title ...A }
`,
			check: IsValidationError,
		},
		{
			name:      "unknown fragment",
			documents: `query issue($id: ID!) { issue(id: $id) { ...Missing } }`,
			check:     IsValidationError,
		},
		{
			name:      "anonymous operation",
			documents: `{ viewer { id } }`,
			check:     IsValidationError,
		},
		{
			name:      "leaf with selection",
			documents: `query issue($id: ID!) { issue(id: $id) { title { id } } }`,
			check:     IsValidationError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseTestDocument(t, tt.documents)
			ctx, _ := testContext(t, doc)
			_, err := ExtractModels(ctx, doc, nil)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}

	t.Run("unresolved reference names the operation and field", func(t *testing.T) {
		doc := parseTestDocument(t, `query issue($id: ID!) { issue(id: $id) { missing } }`)
		ctx, _ := testContext(t, doc)
		_, err := ExtractModels(ctx, doc, nil)
		var refErr *UnresolvedModelReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, "issue", refErr.Operation)
		assert.Equal(t, "Issue", refErr.Type)
		assert.Equal(t, "missing", refErr.Field)
	})
}
