package helpers

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// PrintError prints error, prefixed by a string that explains the context
func PrintError(context string, e error) {
	if e != nil {
		os.Stderr.WriteString("ERROR " + context + ": " + e.Error() + "\n")
	}
}

// Here returns the location of the executable based on os.Args[0]
func Here() string {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		log.Println(err)
		return ""
	}
	return (dir)
}

// AddHereToPath adds the location of the executable to the $PATH
func AddHereToPath() {
	// The directory we run from is added to the $PATH so that we find helper
	// binaries there, too
	os.Setenv("PATH", Here()+":"+os.Getenv("PATH"))
}

// IsCommandAvailable returns true if a file is on the $PATH
func IsCommandAvailable(name string) bool {
	cmd := exec.Command("/bin/sh", "-c", "command -v "+name)
	if err := cmd.Run(); err != nil {
		return false
	}
	return true
}

// FilesInDirectory returns the names of the regular files in the given
// directory, sorted, and err. Subdirectories and other non-regular
// entries are not included
func FilesInDirectory(directory string) ([]string, error) {
	var foundfiles []string
	entries, err := os.ReadDir(directory)
	if err != nil {
		return foundfiles, err
	}

	for _, entry := range entries {
		if entry.Type().IsRegular() {
			foundfiles = append(foundfiles, entry.Name())
		}
	}
	sort.Strings(foundfiles)
	return foundfiles, nil
}
