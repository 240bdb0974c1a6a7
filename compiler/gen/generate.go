package gen

import (
	"path/filepath"
	"strings"
)

// File is a printed output file.
type File struct {
	// Path of the file. Relative paths are resolved against the working
	// directory of the run.
	Path string
	// Content is the printed source.
	Content []byte
}

// IsGo reports whether the file holds Go source.
func (f *File) IsGo() bool { return filepath.Ext(f.Path) == ".go" }

// Printer renders a graph into source files. Printers live outside the core
// and read only the exported fields of the graph.
type Printer interface {
	Print(*Graph) ([]*File, error)
}

// The PrinterFunc type is an adapter to allow the use of ordinary
// functions as Printer.
type PrinterFunc func(*Graph) ([]*File, error)

// Print calls f(g).
func (f PrinterFunc) Print(g *Graph) ([]*File, error) { return f(g) }

// SiblingPath returns the path of a file placed next to path, with suffix
// inserted before the extension. For example, SiblingPath("sdk.go", "_models")
// returns "sdk_models.go".
func SiblingPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
