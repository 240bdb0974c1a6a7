package typescript

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/syssam/chainsdk/compiler/gen"
)

const testSchema = `
scalar DateTime

type Query {
  issue(id: ID!): Issue
  issueComments(id: ID!): [Comment!]!
  issueProject(id: ID!): Project
  issueProjectMembers(id: ID!, key: String!): [User!]!
  issues(first: Int, states: [State!]): [Issue!]!
  issueCount(filter: IssueFilter): Int!
  search(first: Int, term: String!): [Issue!]!
}

type Mutation {
  issueClose(id: ID!): Issue!
}

type Issue {
  id: ID!
  title: String!
  state: State!
  createdAt: DateTime!
  comments: [Comment!]!
}

type Comment {
  id: ID!
  body: String!
}

type Project {
  key: String!
  name: String!
}

type User {
  id: ID!
  name: String!
  email: String
}

enum State {
  OPEN
  IN_REVIEW
  CLOSED
}

input IssueFilter {
  state: State
  title: String
}
`

const testDocuments = `
query issue($id: ID!) { issue(id: $id) { id title state createdAt } }
query issueComments($id: ID!) { issueComments(id: $id) { id body } }
query issues($first: Int, $states: [State!]) { issues(first: $first, states: $states) { id } }
query issueCount($filter: IssueFilter) { issueCount(filter: $filter) }
mutation closeIssue($id: ID!) { issueClose(id: $id) { id state } }
`

// printTest prints documents with the TypeScript printer and returns the
// SDK module.
func printTest(t *testing.T, documents string, opts ...gen.Option) string {
	t.Helper()
	schema := gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: testSchema})
	doc, err := parser.ParseQuery(&ast.Source{Name: "documents.graphql", Input: documents})
	require.NoError(t, err)
	opts = append([]gen.Option{
		gen.WithOutput("src/sdk.ts"),
		gen.WithDocumentFile("./graphql"),
	}, opts...)
	g, err := gen.NewGraph(gen.MustNewConfig(opts...), schema, doc)
	require.NoError(t, err)
	files, err := New().Print(g)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "src/sdk.ts", files[0].Path)
	return string(files[0].Content)
}
