package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/arr-ai/gbnf/errors"
	"github.com/arr-ai/gbnf/gbnf"
	"github.com/arr-ai/gbnf/loader"
)

var stdin io.Reader = os.Stdin

var inGrammarFile string
var outFile string
var maxDepth int
var verboseMode bool

var grammarFlag = cli.StringFlag{
	Name:        "grammar",
	Usage:       "input grammar description (YAML or JSON), - for stdin",
	Required:    false,
	TakesFile:   true,
	Destination: &inGrammarFile,
}

var outputFlag = cli.StringFlag{
	Name:        "output",
	Usage:       "filename to write the output to",
	Required:    false,
	TakesFile:   true,
	Destination: &outFile,
}

var maxDepthFlag = cli.IntFlag{
	Name:        "max-depth",
	Usage:       "maximum grammar nesting, 0 for the default",
	Destination: &maxDepth,
}

var verboseFlag = cli.BoolFlag{
	Name:        "verbose, v",
	Usage:       "verbose logging",
	Destination: &verboseMode,
}

func setVerbosity() {
	if verboseMode {
		logrus.SetLevel(logrus.TraceLevel)
	}
}

func loadGrammar() (*gbnf.Document, error) {
	switch inGrammarFile {
	case "", "-":
		return loader.Load(stdin)
	default:
		return loader.LoadFile(inGrammarFile)
	}
}

func writeOutput(c *cli.Context, text string) error {
	switch outFile {
	case "", "-":
		_, err := fmt.Fprint(c.App.Writer, text)
		return err
	default:
		return errors.WithStack(ioutil.WriteFile(outFile, []byte(text), 0644))
	}
}
