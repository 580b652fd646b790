package main

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/ini.v1"
)

func TestPluginDirEnvOverride(t *testing.T) {
	t.Setenv("QTDIR", "/opt/qt515")
	t.Setenv("QT_ROOT_DIR", "")

	dir, err := pluginDir("/nonexistent/qtpaths")
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/opt/qt515/plugins" {
		t.Errorf("Unexpected plugin directory: " + dir)
	}

	t.Setenv("QTDIR", "")
	t.Setenv("QT_ROOT_DIR", "/opt/qt6")
	dir, err = pluginDir("/nonexistent/qtpaths")
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/opt/qt6/plugins" {
		t.Errorf("Unexpected plugin directory: " + dir)
	}
}

// fakeQtPaths writes a shell script that answers --plugin-dir and
// --qt-version with the given values
func fakeQtPaths(t *testing.T, pluginDir string, qtVersion string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qtpaths")
	script := "#!/bin/sh\ncase \"$1\" in\n" +
		"--plugin-dir) echo " + pluginDir + " ;;\n" +
		"--qt-version) echo " + qtVersion + " ;;\n" +
		"esac\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPluginDirFromQtPaths(t *testing.T) {
	t.Setenv("QTDIR", "")
	t.Setenv("QT_ROOT_DIR", "")

	qtpaths := fakeQtPaths(t, "/usr/lib/qt5/plugins", "5.15.2")
	dir, err := pluginDir(qtpaths)
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/usr/lib/qt5/plugins" {
		t.Errorf("Unexpected plugin directory: " + dir)
	}
}

func TestCheckQtVersion(t *testing.T) {
	if err := checkQtVersion(fakeQtPaths(t, "/unused", "5.15.2")); err != nil {
		t.Errorf("Qt 5.15.2 was rejected: %v", err)
	}
	if err := checkQtVersion(fakeQtPaths(t, "/unused", "6.7.0")); err != nil {
		t.Errorf("Qt 6.7.0 was rejected: %v", err)
	}
	if err := checkQtVersion(fakeQtPaths(t, "/unused", "4.8.7")); err == nil {
		t.Errorf("Qt 4.8.7 was accepted")
	}

	// A qtpaths that cannot report a version only warns
	failing := filepath.Join(t.TempDir(), "qtpaths")
	if err := os.WriteFile(failing, []byte("#!/bin/sh\nexit 1\n"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := checkQtVersion(failing); err != nil {
		t.Errorf("A failing version query was treated as fatal: %v", err)
	}
}

func TestWriteQtConf(t *testing.T) {
	deploydir := t.TempDir()
	if err := writeQtConf(deploydir); err != nil {
		t.Fatal(err)
	}

	cfg, err := ini.Load(filepath.Join(deploydir, "qt.conf"))
	if err != nil {
		t.Fatal(err)
	}
	sect, err := cfg.GetSection("Paths")
	if err != nil {
		t.Fatal(err)
	}
	for key, want := range map[string]string{
		"Prefix":    ".",
		"Plugins":   "plugins",
		"Libraries": "lib",
	} {
		if sect.Key(key).String() != want {
			t.Errorf("qt.conf %s = %q, want %q", key, sect.Key(key).String(), want)
		}
	}
}
