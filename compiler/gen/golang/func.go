package golang

import (
	"go/token"
	"go/types"
	"strings"

	"github.com/iancoleman/strcase"
)

// acronyms are kept upper-case in Go identifiers.
var acronyms = map[string]bool{
	"ACL":  true,
	"API":  true,
	"CSS":  true,
	"DNS":  true,
	"EOF":  true,
	"GUID": true,
	"HTML": true,
	"HTTP": true,
	"ID":   true,
	"IP":   true,
	"JSON": true,
	"SQL":  true,
	"SSH":  true,
	"TLS":  true,
	"TTL":  true,
	"UID":  true,
	"URI":  true,
	"URL":  true,
	"UUID": true,
	"XML":  true,
}

// AddAcronym adds an acronym kept upper-case by pascal and camel.
func AddAcronym(word string) {
	acronyms[strings.ToUpper(word)] = true
}

func words(s string) []string {
	var out []string
	for _, w := range strings.Split(strcase.ToSnake(s), "_") {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// pascal converts a GraphQL name to an exported Go identifier.
//
//	user_info => UserInfo
//	issueId   => IssueID
//	IN_REVIEW => InReview
func pascal(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		if u := strings.ToUpper(w); acronyms[u] {
			b.WriteString(u)
			continue
		}
		b.WriteString(strcase.ToCamel(w))
	}
	return b.String()
}

// camel converts a GraphQL name to an unexported Go identifier.
//
//	user_info => userInfo
//	IssueID   => issueID
func camel(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}
	return strings.ToLower(ws[0]) + pascal(strings.Join(ws[1:], "_"))
}

// reserved holds identifiers used by generated method bodies.
var reserved = map[string]bool{
	"c":        true,
	"n":        true,
	"ctx":      true,
	"vars":     true,
	"data":     true,
	"err":      true,
	"zero":     true,
	"chainsdk": true,
	"context":  true,
}

// param returns the Go parameter name of a variable.
func param(name string) string {
	p := camel(name)
	if p == "" {
		return "arg"
	}
	if token.IsKeyword(p) || reserved[p] || types.Universe.Lookup(p) != nil {
		return p + "Arg"
	}
	return p
}

// rawString returns s as a raw string literal, or "" when s contains a
// backtick.
func rawString(s string) string {
	if strings.Contains(s, "`") {
		return ""
	}
	return "`" + s + "`"
}
