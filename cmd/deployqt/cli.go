package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/deployqt/deployqt/internal/helpers"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

// Derive the commit from -X main.commit=$YOUR_VALUE_HERE
// if the build does not have the commit variable set externally,
// fall back to unsupported custom build
var commit string

// bootstrapDeploy converts cli.Context to a typed DeployRequest and runs
// the deployment. Wrong argument count terminates with a usage message
func bootstrapDeploy(c *cli.Context) error {
	if c.NArg() != 4 {
		log.Println("Usage:", os.Args[0], "BINARY DEPLOYDIR QTPATHS EXCLUDE_STDLIBS")
		log.Println("Copies the shared library dependencies of BINARY and the required Qt plugins")
		log.Println("into DEPLOYDIR, so that BINARY can be run standalone, e.g.:")
		log.Println(os.Args[0], "build/myapp /opt/myapp-deploy /usr/bin/qtpaths false")
		os.Exit(1)
	}

	excludeStdLibs, err := strconv.ParseBool(c.Args().Get(3))
	if err != nil {
		log.Println("EXCLUDE_STDLIBS must be a boolean, got:", c.Args().Get(3))
		os.Exit(1)
	}

	req := DeployRequest{
		Binary:         c.Args().Get(0),
		DeployDir:      c.Args().Get(1),
		QtPaths:        c.Args().Get(2),
		ExcludeStdLibs: excludeStdLibs,
		WriteQtConf:    c.Bool("qt-conf"),
		Verbose:        c.Bool("verbose"),
	}

	return NewDeployer(req).Deploy()
}

// main Command Line Entrypoint. Defines the command line structure
// and assigns the deployment action
func main() {

	var version string
	if commit != "" {
		version = commit
	} else {
		version = "unsupported custom build"
	}

	// Keep piped output free of timestamps
	if isatty.IsTerminal(os.Stdout.Fd()) == false {
		log.SetFlags(0)
	}

	app := &cli.App{
		Name:                 "deployqt",
		Version:              version,
		Usage:                "Copies a binary's shared libraries and Qt plugins into a deployment directory",
		ArgsUsage:            "BINARY DEPLOYDIR QTPATHS EXCLUDE_STDLIBS",
		EnableBashCompletion: false,
		HideHelp:             false,
		HideVersion:          false,
		Compiled:             time.Time{},
		Copyright:            "MIT License",
		Action:               bootstrapDeploy,
	}

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "qt-conf",
			Value: true,
			Usage: "Write a qt.conf into DEPLOYDIR pointing at the deployed tree",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log every copied and skipped library",
		},
	}

	errRuntime := app.Run(os.Args)
	if errRuntime != nil {
		helpers.PrintError("deploy", errRuntime)
		os.Exit(1)
	}
}
