package gen

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const testSchema = `
scalar DateTime

interface Node {
  id: ID!
}

type Query {
  issue(id: ID!): Issue
  issueByKey(id: String!): Issue
  issueComments(id: ID!): [Comment!]!
  issues(first: Int): [Issue!]!
  team(id: ID!): Team
  search(term: String!): [SearchResult!]!
  viewer: User!
}

type Mutation {
  issueClose(id: ID!): Issue!
}

type Subscription {
  issueUpdated(id: ID!): Issue!
}

type Issue implements Node {
  id: ID!
  title: String!
  state: State!
  createdAt: DateTime!
  comments: [Comment!]!
  author: User
  legacy: String @deprecated(reason: "gone")
}

type Comment implements Node {
  id: ID!
  body: String!
  author: User
}

type User implements Node {
  id: ID!
  name: String!
  email: String
}

type Team implements Node {
  id: ID!
  key: String!
  name: String!
  issues: [Issue!]!
}

union SearchResult = Issue | Comment

enum State {
  OPEN
  CLOSED
}

input IssueFilter {
  state: State
  title: String
}
`

func loadTestSchema(t testing.TB) *ast.Schema {
	t.Helper()
	return gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: testSchema})
}

func parseTestDocument(t testing.TB, input string) *ast.QueryDocument {
	t.Helper()
	doc, err := parser.ParseQuery(&ast.Source{Name: "documents.graphql", Input: input})
	require.NoError(t, err)
	return doc
}

func testContext(t testing.TB, doc *ast.QueryDocument, opts ...Option) (*PluginContext, *Config) {
	t.Helper()
	cfg := MustNewConfig(opts...)
	ctx, err := BuildContext(loadTestSchema(t), cfg)
	require.NoError(t, err)
	ctx, err = ctx.RegisterFragments(doc)
	require.NoError(t, err)
	return ctx, cfg
}

func testGraph(t testing.TB, documents string, opts ...Option) *Graph {
	t.Helper()
	g, err := NewGraph(MustNewConfig(opts...), loadTestSchema(t), parseTestDocument(t, documents))
	require.NoError(t, err)
	return g
}

func fieldNames(m *SdkModel) []string {
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Name
	}
	return names
}

func variableNames(vars []*Variable) []string {
	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
	}
	return names
}

func definitionNames(defs []*SdkDefinition) []string {
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	return names
}
