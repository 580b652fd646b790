package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/deployqt/deployqt/internal/helpers"
)

// DeployRequest holds the four user inputs plus the optional flags.
// Immutable for the run
type DeployRequest struct {
	Binary         string
	DeployDir      string
	QtPaths        string
	ExcludeStdLibs bool
	WriteQtConf    bool
	Verbose        bool
}

// pluginSpec names a subdirectory below the Qt plugin installation root and
// what to take from it: "all", or a bracketed space-separated list of
// plugin filenames
type pluginSpec struct {
	subdir string
	mode   string
}

// The plugins a typical Qt GUI application needs on X11.
// Kept in sync with what linuxdeployqt selects for deployment
var qtPlugins = []pluginSpec{
	{"imageformats", "all"},
	{"platforminputcontexts", "all"},
	{"platforms", "[libqxcb.so]"},
	{"platformthemes", "[libqgtk3.so]"},
	{"xcbglintegrations", "all"},
}

// Deployer runs one deployment. listDeps is the dynamic linker dependency
// lister, normally ldd
type Deployer struct {
	req      DeployRequest
	listDeps func(file string) ([]string, error)
}

func NewDeployer(req DeployRequest) *Deployer {
	return &Deployer{req: req, listDeps: lddDependencies}
}

// Deploy populates <DeployDir>/lib with the shared library dependencies of
// the target binary and <DeployDir>/plugins with the Qt plugins from
// qtPlugins, each with their own dependencies. The first failing step
// aborts the run; only per-plugin problems are tolerated
func (d *Deployer) Deploy() error {
	req := d.req

	if helpers.Exists(req.Binary) == false {
		return errors.New("no such file: " + req.Binary)
	}

	f, err := os.Open(req.Binary)
	if err != nil {
		return err
	}
	isElf := helpers.CheckMagicAtOffset(f, "454c46", 1)
	f.Close()
	if isElf == false {
		return errors.New(req.Binary + " is not an ELF file")
	}

	// A qtpaths shipped next to this executable is found, too
	helpers.AddHereToPath()

	if helpers.IsCommandAvailable("ldd") == false {
		return errors.New("ldd not found on the $PATH")
	}
	if helpers.Exists(req.QtPaths) == false {
		return errors.New("qtpaths tool not found: " + req.QtPaths)
	}

	if err := os.MkdirAll(filepath.Join(req.DeployDir, "lib"), 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(req.DeployDir, "plugins"), 0755); err != nil {
		return err
	}

	if err := checkQtVersion(req.QtPaths); err != nil {
		return err
	}

	log.Println("Deploying the dependencies of", req.Binary, "to", req.DeployDir)
	if err := d.deployDependencies(req.Binary); err != nil {
		return err
	}

	pluginRoot, err := pluginDir(req.QtPaths)
	if err != nil {
		return err
	}
	log.Println("Qt plugin directory:", pluginRoot)

	for _, spec := range qtPlugins {
		if err := d.deployPlugin(pluginRoot, spec); err != nil {
			return err
		}
	}

	if req.WriteQtConf == true {
		if err := writeQtConf(req.DeployDir); err != nil {
			return err
		}
	}

	log.Println("Deployment complete:", req.DeployDir)
	return nil
}

// deployDependencies copies each qualifying shared library dependency of
// file into <DeployDir>/lib, overwriting only when the content differs
func (d *Deployer) deployDependencies(file string) error {
	libs, err := d.listDeps(file)
	if err != nil {
		return err
	}

	for _, lib := range libs {
		if excluded(lib, d.req.ExcludeStdLibs) == true {
			if d.req.Verbose == true {
				log.Println("Skipping", lib)
			}
			continue
		}
		dst := filepath.Join(d.req.DeployDir, "lib", filepath.Base(lib))
		copied, err := helpers.CopyIfDifferent(lib, dst)
		if err != nil {
			return err
		}
		if copied == true && d.req.Verbose == true {
			log.Println("Copied", lib)
		}
	}
	return nil
}

// deployPlugin copies the plugins selected by spec into
// <DeployDir>/plugins/<subdir> and runs the dependency copier on each
// copied plugin. A missing source directory, a missing named plugin or an
// unsupported mode is reported and skipped; everything else is fatal
func (d *Deployer) deployPlugin(pluginRoot string, spec pluginSpec) error {
	src := filepath.Join(pluginRoot, spec.subdir)
	dst := filepath.Join(d.req.DeployDir, "plugins", spec.subdir)

	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	if helpers.IsDirectory(src) == false {
		log.Println("ERROR: plugin directory", src, "does not exist, skipping")
		return nil
	}

	var names []string
	switch {
	case spec.mode == "all":
		all, err := helpers.FilesInDirectory(src)
		if err != nil {
			return err
		}
		names = all
	case strings.HasPrefix(spec.mode, "[") && strings.HasSuffix(spec.mode, "]"):
		names = strings.Fields(strings.TrimSuffix(strings.TrimPrefix(spec.mode, "["), "]"))
	default:
		log.Println("ERROR: unsupported plugin mode", spec.mode, "for", spec.subdir+", skipping")
		return nil
	}

	log.Println("Deploying", spec.subdir, "plugins...")
	for _, name := range names {
		from := filepath.Join(src, name)
		if helpers.Exists(from) == false {
			log.Println("ERROR: plugin", from, "does not exist, skipping")
			continue
		}
		if _, err := helpers.CopyIfDifferent(from, filepath.Join(dst, name)); err != nil {
			return err
		}
		// Each plugin brings along its own dependencies, one level deep
		if err := d.deployDependencies(from); err != nil {
			return err
		}
	}
	return nil
}
