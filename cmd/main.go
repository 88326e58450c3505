package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/arr-ai/gbnf/errors"
)

type VersionTags struct {
	Version   string
	GitCommit string
	BuildDate string
	BuildOS   string
}

func NewApp(info VersionTags) *cli.App {
	app := cli.NewApp()

	app.EnableBashCompletion = true

	app.Name = "gbnf"
	app.Usage = "build, simplify and render GBNF grammars"
	app.Version = info.Version

	app.Commands = []cli.Command{renderCommand, debugCommand, checkCommand, genCommand}
	return app
}

func Main(info VersionTags) {
	err := NewApp(info).Run(os.Args)
	if err != nil {
		if stack := errors.Stack(err); verboseMode && stack != "" {
			logrus.Debug(stack)
		}
		logrus.Fatal(err)
	}
}
