package gen

// RequesterContract describes the function every generated call site invokes.
// The two document modes differ only in the static type of the document the
// requester accepts.
type RequesterContract struct {
	// Mode is the configured document mode.
	Mode DocumentMode
	// DocumentType is the target-language type of the document argument.
	DocumentType string
	// DocumentImport is the module DocumentType is imported from, if any.
	DocumentImport string
	// DocumentFile is the module holding the compiled documents.
	DocumentFile string
}

// requester document types per language and mode.
var documentTypes = map[Language]map[DocumentMode][2]string{
	TypeScript: {
		DocumentModeString: {"string", ""},
		DocumentModeNode:   {"DocumentNode", "graphql"},
	},
	Go: {
		DocumentModeString: {"string", ""},
		DocumentModeNode:   {"chainsdk.Document", "github.com/syssam/chainsdk"},
	},
}

// NewRequesterContract selects the requester contract of the configuration.
func NewRequesterContract(cfg *Config) *RequesterContract {
	mode := cfg.DocumentMode
	if mode != DocumentModeString {
		mode = DocumentModeNode
	}
	lang := cfg.Language
	if _, ok := documentTypes[lang]; !ok {
		lang = TypeScript
	}
	t := documentTypes[lang][mode]
	return &RequesterContract{
		Mode:           mode,
		DocumentType:   t[0],
		DocumentImport: t[1],
		DocumentFile:   cfg.DocumentFile,
	}
}

// IsNode reports whether the requester accepts pre-compiled document nodes.
func (r *RequesterContract) IsNode() bool { return r.Mode == DocumentModeNode }
