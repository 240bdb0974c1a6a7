// testgen is a simple test program to demonstrate the generators on a small
// issue tracker schema.
// Run: go run ./compiler/gen/cmd/testgen
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/syssam/chainsdk/compiler/gen"
	"github.com/syssam/chainsdk/compiler/gen/golang"
	"github.com/syssam/chainsdk/compiler/gen/typescript"
)

const schemaSource = `
type Query {
  issue(id: ID!): Issue
  issueComments(id: ID!, first: Int): [Comment!]!
  issueAuthor(id: ID!): User
  issueAuthorIssues(id: ID!, login: String!): [Issue!]!
}

type Mutation {
  issueClose(id: ID!): Issue!
}

type Issue {
  id: ID!
  title: String!
  author: User
}

type Comment {
  id: ID!
  body: String!
}

type User {
  login: String!
  name: String
}
`

const documentSource = `
query issue($id: ID!) { issue(id: $id) { id title } }
query issueComments($id: ID!, $first: Int) { issueComments(id: $id, first: $first) { id body } }
query issueAuthor($id: ID!) { issueAuthor(id: $id) { login name } }
query issueAuthorIssues($id: ID!, $login: String!) { issueAuthorIssues(id: $id, login: $login) { id title } }
mutation issueClose($id: ID!) { issueClose(id: $id) { id } }
`

func main() {
	// Create a temp directory for output
	outDir, err := os.MkdirTemp("", "chainsdk-test-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	schema := gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSource})
	doc, err := parser.ParseQuery(&ast.Source{Name: "documents.graphql", Input: documentSource})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse documents: %v\n", err)
		os.Exit(1)
	}

	targets := []struct {
		printer gen.Printer
		opts    []gen.Option
	}{
		{
			printer: typescript.New(),
			opts: []gen.Option{
				gen.WithOutput(filepath.Join(outDir, "ts", "sdk.ts")),
				gen.WithDocumentFile("./graphql"),
			},
		},
		{
			printer: golang.New(),
			opts: []gen.Option{
				gen.WithLanguage(gen.Go),
				gen.WithOutput(filepath.Join(outDir, "sdk", "sdk.go")),
				gen.WithDocumentFile(filepath.Join(outDir, "sdk", "documents.go")),
				gen.WithIdentify(gen.IdentifyByField),
			},
		},
	}
	for _, target := range targets {
		// Create config with functional options
		config, err := gen.NewConfig(target.opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create config: %v\n", err)
			os.Exit(1)
		}
		graph, err := gen.NewGraph(config, schema, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create graph: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generating %s SDK...\n", config.Language)
		if err := graph.Gen(context.Background(), target.printer); err != nil {
			fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
			os.Exit(1)
		}
	}

	// List generated files
	fmt.Println("\nGenerated files:")
	err = filepath.Walk(outDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			relPath, _ := filepath.Rel(outDir, path)
			fmt.Printf("  %s (%d bytes)\n", relPath, info.Size())
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list files: %v\n", err)
	}

	fmt.Printf("\nTo inspect generated code: ls -la %s\n", outDir)
	fmt.Println("Done!")
}
