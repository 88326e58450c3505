package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/arr-ai/gbnf/gbnf"
)

var checkCommand = cli.Command{
	Name:    "check",
	Aliases: []string{"c"},
	Usage:   "Validate a grammar",
	Action:  check,
	Flags: []cli.Flag{
		grammarFlag,
		maxDepthFlag,
		verboseFlag,
	},
}

func check(c *cli.Context) error {
	setVerbosity()
	doc, err := loadGrammar()
	if err != nil {
		return err
	}
	if _, err := doc.RenderWith(gbnf.RenderOptions{MaxDepth: maxDepth}); err != nil {
		var e *gbnf.Error
		if stderrors.As(err, &e) {
			fmt.Fprint(errWriter(c), e.Trace())
		}
		return err
	}
	rules, err := doc.Rules()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "ok: %d rules\n", len(rules))
	return err
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}
