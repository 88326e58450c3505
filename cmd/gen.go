package cmd

import (
	"bytes"
	"go/format"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/arr-ai/gbnf/cmd/codegen"
	"github.com/arr-ai/gbnf/errors"
)

var pkgName string
var genCommand = cli.Command{
	Name:    "gen",
	Aliases: []string{"g"},
	Usage:   "Generate Go code that builds a grammar",
	Action:  gen,
	Flags: []cli.Flag{
		grammarFlag,
		cli.StringFlag{
			Name:        "pkg",
			Usage:       "name of the generated package",
			Required:    true,
			TakesFile:   false,
			Destination: &pkgName,
		},
		outputFlag,
		verboseFlag,
	},
}

func gen(c *cli.Context) error {
	setVerbosity()
	doc, err := loadGrammar()
	if err != nil {
		return err
	}
	source, err := doc.Render()
	if err != nil {
		return err
	}
	root, rules, err := codegen.MakeDocument(doc)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := codegen.Write(&buf, codegen.TemplateData{
		CommandLine: strings.Join(os.Args[1:], " "),
		PackageName: pkgName,
		Source:      source,
		Root:        root,
		Rules:       rules,
	}); err != nil {
		return err
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return errors.WithStack(err)
	}
	return writeOutput(c, string(out))
}
