package main

import (
	"bufio"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/deployqt/deployqt/internal/helpers"
)

// stdLibPrefixes match the standard C and C++ runtime libraries,
// e.g., libc.so.6, libc-2.31.so, libstdc++.so.6
var stdLibPrefixes = []string{"libc.", "libc-", "libstdc++."}

// lddDependencies invokes the system's dynamic linker dependency lister on
// file and returns the resolved library paths it reports
func lddDependencies(file string) ([]string, error) {
	cmd := exec.Command("ldd", file)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.String(), err)
	}
	return parseLddOutput(string(out)), nil
}

// parseLddOutput extracts each resolved library path from ldd output.
// Virtual entries such as linux-vdso and unresolved ("not found") lines
// carry no "=> /" and are dropped
func parseLddOutput(out string) []string {
	var libs []string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "=> /") == false {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		libs = helpers.AppendIfMissing(libs, fields[2])
	}
	return libs
}

// excluded returns true for library paths that must not be deployed.
// libnvidia* is never bundled; loading a mix of driver versions segfaults.
// With excludeStdLibs, the C and C++ runtime libraries stay on the target
// system as well
func excluded(lib string, excludeStdLibs bool) bool {
	if strings.Contains(lib, "nvidia") == true {
		return true
	}
	if excludeStdLibs == false {
		return false
	}
	base := filepath.Base(lib)
	for _, prefix := range stdLibPrefixes {
		if strings.HasPrefix(base, prefix) == true {
			return true
		}
	}
	return false
}
