package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/arr-ai/gbnf/gbnf"
)

var ruleName string
var debugCommand = cli.Command{
	Name:    "debug",
	Aliases: []string{"d"},
	Usage:   "Print grammar rules as trees",
	Action:  debug,
	Flags: []cli.Flag{
		grammarFlag,
		outputFlag,
		cli.StringFlag{
			Name:        "rule",
			Usage:       "only print this rule",
			Required:    false,
			TakesFile:   false,
			Destination: &ruleName,
		},
		verboseFlag,
	},
}

func debug(c *cli.Context) error {
	setVerbosity()
	doc, err := loadGrammar()
	if err != nil {
		return err
	}

	var rules []*gbnf.Rule
	if ruleName != "" {
		rule, has := doc.Lookup(ruleName)
		if !has {
			return fmt.Errorf("no rule named %q", ruleName)
		}
		rules = []*gbnf.Rule{rule}
	} else if rules, err = doc.Rules(); err != nil {
		// Broken grammars are what debug output is for.
		logrus.Warn(err)
		rules = rules[:0]
		for _, symbol := range doc.Symbols() {
			rule, _ := doc.Lookup(symbol)
			rules = append(rules, rule)
		}
	}

	var sb strings.Builder
	for _, rule := range rules {
		sb.WriteString(gbnf.RenderDebug(rule))
	}
	return writeOutput(c, sb.String())
}
