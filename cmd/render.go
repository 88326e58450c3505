package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/arr-ai/gbnf/gbnf"
)

var simplifyGrammar bool
var mergeStrings bool
var renderCommand = cli.Command{
	Name:    "render",
	Aliases: []string{"r"},
	Usage:   "Render a grammar as GBNF",
	Action:  render,
	Flags: []cli.Flag{
		grammarFlag,
		outputFlag,
		cli.BoolFlag{
			Name:        "simplify",
			Usage:       "simplify the grammar before rendering",
			Destination: &simplifyGrammar,
		},
		cli.BoolFlag{
			Name:        "merge-strings",
			Usage:       "join adjacent strings while simplifying (implies --simplify)",
			Destination: &mergeStrings,
		},
		maxDepthFlag,
		verboseFlag,
	},
}

func render(c *cli.Context) error {
	setVerbosity()
	doc, err := loadGrammar()
	if err != nil {
		return err
	}
	if simplifyGrammar || mergeStrings {
		logrus.WithField("merge-strings", mergeStrings).Debug("simplifying")
		doc, err = doc.SimplifyWith(gbnf.SimplifyOptions{MaxDepth: maxDepth, MergeStrings: mergeStrings})
		if err != nil {
			return err
		}
	}
	text, err := doc.RenderWith(gbnf.RenderOptions{MaxDepth: maxDepth})
	if err != nil {
		return err
	}
	return writeOutput(c, text)
}
