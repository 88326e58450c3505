// Package codegen writes Go source that rebuilds a gbnf document with the
// package's builder functions.
package codegen

import (
	"io"
	"text/template"
)

type TemplateData struct {
	CommandLine string
	PackageName string
	Source      string
	Root        string
	Rules       []string
}

var fileTemplate = template.Must(template.New("grammar").Funcs(template.FuncMap{
	"raw": func(s string) string { return "`" + safeString(s) + "`" },
}).Parse(`// Code generated by "gbnf {{.CommandLine}}"; DO NOT EDIT.

package {{.PackageName}}

import "github.com/arr-ai/gbnf/gbnf"

// Source is the grammar as GBNF text.
const Source = {{raw .Source}}

// Document rebuilds the grammar.
func Document() (*gbnf.Document, error) {
	return gbnf.NewDocument(
		{{.Root}},
{{- range .Rules}}
		{{.}},
{{- end}}
	)
}
`))

// Write renders the generated file. The output is valid Go but not yet
// gofmt-ed.
func Write(w io.Writer, data TemplateData) error {
	return fileTemplate.Execute(w, data)
}
