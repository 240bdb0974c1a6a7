package gen

import (
	"errors"
	"log/slog"
	"maps"
)

// Option configures code generation.
type Option func(*Config) error

// WithOutput sets the path of the generated SDK file.
func WithOutput(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Output", nil, "output file cannot be empty")
		}
		c.Output = path
		return nil
	}
}

// WithDocumentFile sets the path of the typed-document module.
func WithDocumentFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("DocumentFile", nil, "document file cannot be empty")
		}
		c.DocumentFile = path
		return nil
	}
}

// WithDocumentMode sets the requester document mode.
// Supported modes: "string", "documentNode".
func WithDocumentMode(mode DocumentMode) Option {
	return func(c *Config) error {
		switch mode {
		case DocumentModeString, DocumentModeNode:
			c.DocumentMode = mode
			return nil
		default:
			return NewConfigError("DocumentMode", mode, "unsupported document mode; use string or documentNode")
		}
	}
}

// WithLanguage sets the target language.
// Supported languages: "typescript", "go".
func WithLanguage(lang Language) Option {
	return func(c *Config) error {
		switch lang {
		case TypeScript, Go:
			c.Language = lang
			return nil
		default:
			return NewConfigError("Language", lang, "unsupported language; use typescript or go")
		}
	}
}

// WithPackage sets the package name of generated Go code.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithScalars maps custom GraphQL scalars to target types.
func WithScalars(scalars map[string]string) Option {
	return func(c *Config) error {
		if c.Scalars == nil {
			c.Scalars = make(map[string]string)
		}
		maps.Copy(c.Scalars, scalars)
		return nil
	}
}

// WithOpaqueScalar sets the target type used for unmapped custom scalars.
func WithOpaqueScalar(typ string) Option {
	return func(c *Config) error {
		if typ == "" {
			return NewConfigError("OpaqueScalar", nil, "opaque scalar type cannot be empty")
		}
		c.OpaqueScalar = typ
		return nil
	}
}

// WithIdentify sets the identifying-variable rule. Names are required in
// IdentifyByName mode and replace the default ["id"].
func WithIdentify(mode IdentifyMode, names ...string) Option {
	return func(c *Config) error {
		switch mode {
		case IdentifyByName:
			if len(names) > 0 {
				c.IdentifyingNames = names
			}
			if len(c.IdentifyingNames) == 0 {
				return NewConfigError("IdentifyingNames", nil, "at least one identifying name is required in name mode")
			}
		case IdentifyByField:
		default:
			return NewConfigError("Identify", mode, "unsupported identify mode")
		}
		c.Identify = mode
		return nil
	}
}

// WithRequireNamePrefix toggles the naming hint used for chaining.
func WithRequireNamePrefix(required bool) Option {
	return func(c *Config) error {
		c.RequireNamePrefix = required
		return nil
	}
}

// WithNameSuffixLimit bounds the numeric suffix used to disambiguate
// sibling call names. Zero disables disambiguation.
func WithNameSuffixLimit(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("NameSuffixLimit", n, "cannot be negative")
		}
		c.NameSuffixLimit = n
		return nil
	}
}

// WithMaxNameLength bounds generated call names. Zero means unlimited.
func WithMaxNameLength(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("MaxNameLength", n, "cannot be negative")
		}
		c.MaxNameLength = n
		return nil
	}
}

// WithLogger sets the diagnostics sink passed to every stage.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// WithWorkers bounds the number of files written concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
