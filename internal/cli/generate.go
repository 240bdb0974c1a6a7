package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/chainsdk/compiler"
	"github.com/syssam/chainsdk/compiler/gen"
	"github.com/syssam/chainsdk/compiler/load"
)

type generateOptions struct {
	config       string
	schema       []string
	documents    []string
	output       string
	documentFile string
	documentMode string
	language     string
	pkg          string
	ir           string
	watch        bool
	verbose      bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the SDK of a project",
		Long: `Generate the SDK described by a chainsdk.yml project file.

Flags override the settings of the project file. Without --config the
chainsdk.yml of the working directory is used when present.

Examples:
  chainsdk generate
  chainsdk generate --config api/chainsdk.yml
  chainsdk generate --schema schema.graphql --documents 'graphql/**/*.graphql' \
    --output src/sdk.ts --document-file ./graphql
  chainsdk generate --language go --output sdk/sdk.go --document-file sdk/documents.go --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := opts.project()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			if opts.watch {
				return watch(cmd.Context(), cmd.OutOrStdout(), project, logger)
			}
			return generate(cmd.Context(), cmd.OutOrStdout(), project, logger)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.config, "config", "c", "", "path of the project file or its directory")
	f.StringSliceVar(&opts.schema, "schema", nil, "schema files or glob patterns")
	f.StringSliceVar(&opts.documents, "documents", nil, "operation document files or glob patterns")
	f.StringVarP(&opts.output, "output", "o", "", "path of the generated SDK")
	f.StringVar(&opts.documentFile, "document-file", "", "module the SDK imports its documents from")
	f.StringVar(&opts.documentMode, "document-mode", "", "document representation: string or documentNode")
	f.StringVarP(&opts.language, "language", "l", "", "target language: typescript or go")
	f.StringVar(&opts.pkg, "package", "", "package name of generated Go code")
	f.StringVar(&opts.ir, "ir", "", "path the intermediate representation is written to")
	f.BoolVarP(&opts.watch, "watch", "w", false, "regenerate when inputs change")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug diagnostics")
	return cmd
}

// project loads the project file and applies the flag overrides.
func (o *generateOptions) project() (*load.Project, error) {
	p := &load.Project{}
	switch {
	case o.config != "":
		var err error
		if p, err = load.LoadProject(o.config); err != nil {
			return nil, err
		}
	default:
		_, err := os.Stat(load.DefaultProjectFile)
		switch {
		case err == nil:
			if p, err = load.LoadProject(load.DefaultProjectFile); err != nil {
				return nil, err
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}
	if len(o.schema) > 0 {
		p.Schema = o.schema
	}
	if len(o.documents) > 0 {
		p.Documents = o.documents
	}
	for dst, v := range map[*string]string{
		&p.Output:       o.output,
		&p.DocumentFile: o.documentFile,
		&p.DocumentMode: o.documentMode,
		&p.Language:     o.language,
		&p.Package:      o.pkg,
		&p.IR:           o.ir,
	} {
		if v != "" {
			*dst = v
		}
	}
	if len(p.Schema) == 0 {
		return nil, gen.NewConfigError("Schema", nil, "no schema; set it in "+load.DefaultProjectFile+" or pass --schema")
	}
	if len(p.Documents) == 0 {
		return nil, gen.NewConfigError("Documents", nil, "no documents; set them in "+load.DefaultProjectFile+" or pass --documents")
	}
	return p, nil
}

func generate(ctx context.Context, w io.Writer, project *load.Project, logger *slog.Logger) error {
	if err := compiler.Generate(ctx, project, gen.WithLogger(logger)); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	fmt.Fprintf(w, "Generated %s\n", project.Output)
	return nil
}
