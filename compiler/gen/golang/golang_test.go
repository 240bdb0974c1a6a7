package golang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/chainsdk/compiler/gen"
)

func TestPrint_Files(t *testing.T) {
	files := printTest(t, testDocuments)
	require.Len(t, files, 3)
	for _, path := range []string{"sdk/sdk.go", "sdk/sdk_models.go", "sdk/documents.go"} {
		code, ok := files[path]
		require.True(t, ok, path)
		assert.Contains(t, code, "// Code generated by chainsdk. DO NOT EDIT.")
		assert.Contains(t, code, "package sdk")
	}
}

func TestPrint_WrongLanguage(t *testing.T) {
	schema := gqlparser.MustLoadSchema(&ast.Source{Input: testSchema})
	g, err := gen.NewGraph(gen.MustNewConfig(gen.WithOutput("sdk.ts")), schema, nil)
	require.NoError(t, err)
	_, err = New().Print(g)
	require.Error(t, err)
	assert.True(t, gen.IsGenerationError(err))
}

func TestPrint_Client(t *testing.T) {
	code := printTest(t, testDocuments)["sdk/sdk.go"]

	assert.Contains(t, code, "type Client struct")
	assert.Regexp(t, `Query\s+\*QueryClient`, code)
	assert.Regexp(t, `Mutation\s+\*MutationClient`, code)
	assert.NotContains(t, code, "SubscriptionClient")
	assert.Contains(t, code, "func NewClient(r chainsdk.Requester[chainsdk.Document]) *Client")
	assert.Contains(t, code, "type QueryClient struct")

	t.Run("root call", func(t *testing.T) {
		assert.Contains(t, code, "func (c *QueryClient) Issue(ctx context.Context, id string) (*IssueChain, error)")
		assert.Regexp(t, `vars := chainsdk.Variables\{\s*"id": id,\s*\}`, code)
		assert.Contains(t, code, `data, err := chainsdk.Do[IssueQuery](ctx, c.request, "issue", IssueDocument, vars)`)
		assert.Contains(t, code, "if data.Issue == nil")
	})

	t.Run("optional arguments", func(t *testing.T) {
		assert.Contains(t, code, "func (c *QueryClient) Issues(ctx context.Context, first *int, states []State) ([]*IssuesQueryIssue, error)")
		assert.Contains(t, code, `chainsdk.Optional(vars, "first", first)`)
		assert.Contains(t, code, `chainsdk.OptionalSlice(vars, "states", states)`)
	})

	t.Run("leaf result", func(t *testing.T) {
		assert.Contains(t, code, "func (c *QueryClient) IssueCount(ctx context.Context, filter *IssueFilter) (int, error)")
		assert.Contains(t, code, "var zero int")
		assert.Contains(t, code, "return data.IssueCount, nil")
	})

	t.Run("mutation", func(t *testing.T) {
		assert.Contains(t, code, "func (c *MutationClient) CloseIssue(ctx context.Context, id string) (*CloseIssueMutationIssueClose, error)")
	})

	t.Run("chained call", func(t *testing.T) {
		assert.Contains(t, code, "type IssueChain struct")
		assert.Contains(t, code, "*IssueQueryIssue")
		assert.Contains(t, code, "func (n *IssueChain) Comments(ctx context.Context) ([]*IssueCommentsQueryIssueComment, error)")
		assert.Contains(t, code, `return nil, chainsdk.NewNotFoundError("issue")`)
		assert.Regexp(t, `vars := chainsdk.Variables\{\s*"id": n\.IssueQueryIssue\.ID,\s*\}`, code)
		assert.NotContains(t, code, "func (c *QueryClient) IssueComments(")
	})
}

func TestPrint_NestedChain(t *testing.T) {
	code := printTest(t, `
query issue($id: ID!) { issue(id: $id) { id title } }
query issueProject($id: ID!) { issueProject(id: $id) { key name } }
query issueProjectMembers($id: ID!, $key: String!) { issueProjectMembers(id: $id, key: $key) { id name } }
`, gen.WithIdentify(gen.IdentifyByField))["sdk/sdk.go"]

	assert.Contains(t, code, "func (n *IssueChain) Project(ctx context.Context) (*IssueProjectChain, error)")
	assert.Regexp(t, `parent\s+\*IssueChain`, code)
	assert.Contains(t, code, "parent:")
	assert.Contains(t, code, "func (n *IssueProjectChain) Members(ctx context.Context) ([]*IssueProjectMembersQueryIssueProjectMember, error)")
	assert.Regexp(t, `"id":\s+n\.parent\.IssueQueryIssue\.ID,`, code)
	assert.Regexp(t, `"key":\s+n\.IssueProjectQueryIssueProject\.Key,`, code)
}

func TestPrint_MethodFieldClash(t *testing.T) {
	code := printTest(t, `
query issue($id: ID!) { issue(id: $id) { id comments { id } } }
query issueComments($id: ID!) { issueComments(id: $id) { id body } }
`)["sdk/sdk.go"]

	assert.Contains(t, code, "func (n *IssueChain) CommentsQuery(ctx context.Context)")
	assert.NotContains(t, code, "func (n *IssueChain) Comments(")
}

func TestPrint_Models(t *testing.T) {
	code := printTest(t, testDocuments)["sdk/sdk_models.go"]

	t.Run("enum", func(t *testing.T) {
		assert.Contains(t, code, "type State string")
		assert.Regexp(t, `StateOpen\s+State = "OPEN"`, code)
		assert.Regexp(t, `StateInReview\s+State = "IN_REVIEW"`, code)
	})

	t.Run("input", func(t *testing.T) {
		assert.Contains(t, code, "type IssueFilter struct")
		assert.Regexp(t, `State\s+\*State\s+`+"`"+`json:"state,omitempty"`+"`", code)
	})

	t.Run("models", func(t *testing.T) {
		assert.Contains(t, code, "// IssueQuery is the response data of issue.")
		assert.Contains(t, code, "type IssueQuery struct")
		assert.Regexp(t, `Issue\s+\*IssueQueryIssue\s+`+"`"+`json:"issue"`+"`", code)
		assert.Contains(t, code, "// IssueQueryIssue is the Issue selection of issue at issue.")
		assert.Regexp(t, `ID\s+string\s+`+"`"+`json:"id"`+"`", code)
		assert.Regexp(t, `CreatedAt\s+any\s+`+"`"+`json:"createdAt"`+"`", code)
		assert.Regexp(t, `IssueComments\s+\[\]\*IssueCommentsQueryIssueComment`, code)
	})

	t.Run("mapped scalars", func(t *testing.T) {
		code := printTest(t, testDocuments, gen.WithScalars(map[string]string{"DateTime": "time.Time"}))["sdk/sdk_models.go"]
		assert.Contains(t, code, `"time"`)
		assert.Regexp(t, `CreatedAt\s+time.Time`, code)
	})
}

func TestPrint_Documents(t *testing.T) {
	t.Run("node mode", func(t *testing.T) {
		code := printTest(t, testDocuments)["sdk/documents.go"]
		assert.Contains(t, code, "// IssueDocument is the issue query.")
		assert.Contains(t, code, "var IssueDocument = chainsdk.Document{")
		assert.Regexp(t, `Name:\s+"issue"`, code)
		assert.Regexp(t, `Kind:\s+"mutation"`, code)
		assert.Contains(t, code, "query issue")
	})

	t.Run("string mode", func(t *testing.T) {
		files := printTest(t, testDocuments, gen.WithDocumentMode(gen.DocumentModeString))
		assert.Contains(t, files["sdk/documents.go"], "const IssueDocument = `query issue")
		assert.Contains(t, files["sdk/sdk.go"], "func NewClient(r chainsdk.Requester[string]) *Client")
	})
}

func TestPrint_CaseOnlyNameCollision(t *testing.T) {
	files := printTest(t, `
query issue($id: ID!) { issue(id: $id) { id title } }
query issueComments($id: ID!) { issueComments(id: $id) { id } }
query IssueComments($id: ID!) { issueComments(id: $id) { body } }
`)

	docs := files["sdk/documents.go"]
	assert.Equal(t, 1, strings.Count(docs, "var IssueCommentsDocument ="))
	assert.Equal(t, 1, strings.Count(docs, "var IssueComments2Document ="))

	code := files["sdk/sdk.go"]
	assert.Contains(t, code, "func (n *IssueChain) Comments(ctx context.Context)")
	assert.Contains(t, code, "func (n *IssueChain) Comments2(ctx context.Context)")
	assert.Contains(t, code, `n.request, "issueComments", IssueCommentsDocument, vars)`)
	assert.Contains(t, code, `n.request, "IssueComments", IssueComments2Document, vars)`)
}

func TestPrint_CaseOnlyChainCollision(t *testing.T) {
	code := printTest(t, `
query issue($id: ID!) { issue(id: $id) { id } }
query Issue($id: ID!) { issue(id: $id) { id title } }
query issueComments($id: ID!) { issueComments(id: $id) { id } }
query issueTitled($id: ID!, $title: String!) { issueProjectMembers(id: $id, key: $title) { id } }
`, gen.WithIdentify(gen.IdentifyByName, "id", "title"))["sdk/sdk.go"]

	assert.Equal(t, 1, strings.Count(code, "type IssueChain struct"))
	assert.Equal(t, 1, strings.Count(code, "type Issue2Chain struct"))
	assert.Contains(t, code, "func (c *QueryClient) Issue2(ctx context.Context, id string) (*Issue2Chain, error)")
	assert.Contains(t, code, "func (n *IssueChain) Comments(ctx context.Context)")
	assert.Contains(t, code, "func (n *Issue2Chain) Titled(ctx context.Context)")
}

func TestPrint_MethodFieldClashSibling(t *testing.T) {
	code := printTest(t, `
query issue($id: ID!) { issue(id: $id) { id comments { id } } }
query issueComments($id: ID!) { issueComments(id: $id) { id body } }
query issueCommentsQuery($id: ID!) { issueComments(id: $id) { id } }
`)["sdk/sdk.go"]

	assert.Equal(t, 1, strings.Count(code, "func (n *IssueChain) CommentsQuery(ctx context.Context)"))
	assert.Contains(t, code, "func (n *IssueChain) CommentsQuery2(ctx context.Context)")
	assert.NotContains(t, code, "func (n *IssueChain) Comments(")
}

func TestPrint_DigitSuffixedChild(t *testing.T) {
	code := printTest(t, `
query issue($id: ID!) { issue(id: $id) { id title } }
query issue2($id: ID!) { issue(id: $id) { state } }
`)["sdk/sdk.go"]

	assert.Contains(t, code, "func (n *IssueChain) Issue2(ctx context.Context) (*Issue2QueryIssue, error)")
}
