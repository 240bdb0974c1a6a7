// Package gen derives a chainable client SDK from a GraphQL schema and a set
// of operation documents.
//
// # Architecture
//
// The pipeline runs in a fixed order, each stage consuming only the
// immutable output of the previous ones:
//
//	*ast.Schema
//	        ↓  BuildContext
//	   PluginContext (type descriptors, fragment registry)
//	        ↓  ExtractModels
//	   []*SdkModel (one per selection set)
//	        ↓  NewOperations
//	   []*OperationDocument
//	        ↓  ResolveChains
//	   SdkDefinitions (the chain tree)
//	        ↓  Printer
//	   []*File
//
// NewGraph runs every stage and returns the resulting Graph. A Printer
// renders the graph into files which a Writer writes in parallel.
//
// # Key Types
//
//   - TypeDescriptor: a named schema type with its fields
//   - SdkModel: the concrete shape of one selection set
//   - OperationDocument: an operation with its variables and result model
//   - SdkDefinition: a node of the chain tree
//   - RequesterContract: the calling convention of generated call sites
//
// # Chaining
//
// An operation is chained under a query whose single result carries the
// operation's identifying variables as fields:
//
//	query issue($id: ID!) { issue(id: $id) { id title } }
//	query issueComments($id: ID!) { issueComments(id: $id) { id body } }
//
// yields the call chain issue(id).comments(), where the id of comments is
// read from the issue result. Which variables are identifying is configured
// with WithIdentify.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: malformed schema
//   - UnresolvedModelReferenceError: unknown type, field or model
//   - ChainNameConflictError: sibling call names could not be disambiguated
//   - ConfigError: configuration errors
//   - ValidationError: invalid document set
//   - GenerationError: printing and writing errors
//
// Example error handling:
//
//	graph, err := gen.NewGraph(config, schema, doc)
//	if err != nil {
//	    if gen.IsChainNameConflict(err) {
//	        // Rename one of the operations
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithOutput("src/sdk.ts"),
//	    gen.WithDocumentFile("./graphql"),
//	    gen.WithDocumentMode(gen.DocumentModeString),
//	)
package gen
