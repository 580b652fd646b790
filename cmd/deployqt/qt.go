package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	version "github.com/hashicorp/go-version"
	"gopkg.in/ini.v1"
)

// The plugin table is a Qt 5+ layout
var minQtVersion = version.Must(version.NewVersion("5.0.0"))

// pluginDir returns the Qt plugin installation root, either from a $QTDIR
// or $QT_ROOT_DIR override or by asking the qtpaths tool
func pluginDir(qtpaths string) (string, error) {
	qtPrefixEnv := os.Getenv("QTDIR")
	if qtPrefixEnv == "" {
		qtPrefixEnv = os.Getenv("QT_ROOT_DIR")
	}
	if qtPrefixEnv != "" {
		log.Println("Using QTDIR or QT_ROOT_DIR:", qtPrefixEnv)
		return filepath.Join(qtPrefixEnv, "plugins"), nil
	}

	cmd := exec.Command(qtpaths, "--plugin-dir")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", cmd.String(), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// checkQtVersion refuses to deploy against a Qt older than minQtVersion.
// A qtpaths that cannot report its Qt version only gets a warning
func checkQtVersion(qtpaths string) error {
	cmd := exec.Command(qtpaths, "--qt-version")
	out, err := cmd.Output()
	if err != nil {
		log.Println("Could not query the Qt version, continuing anyway:", err)
		return nil
	}

	v, err := version.NewVersion(strings.TrimSpace(string(out)))
	if err != nil {
		log.Println("Could not parse the Qt version, continuing anyway:", err)
		return nil
	}

	if v.LessThan(minQtVersion) == true {
		return errors.New("Qt " + v.String() + " is too old, need at least Qt " + minQtVersion.String())
	}
	log.Println("Qt version:", v)
	return nil
}

// writeQtConf writes <deployDir>/qt.conf so that the deployed binary finds
// the bundled plugins and libraries instead of the system ones
func writeQtConf(deployDir string) error {
	ini.PrettyFormat = false
	cfg := ini.Empty()

	sect, err := cfg.NewSection("Paths")
	if err != nil {
		return err
	}
	if _, err := sect.NewKey("Prefix", "."); err != nil {
		return err
	}
	if _, err := sect.NewKey("Plugins", "plugins"); err != nil {
		return err
	}
	if _, err := sect.NewKey("Libraries", "lib"); err != nil {
		return err
	}

	return cfg.SaveTo(filepath.Join(deployDir, "qt.conf"))
}
