package helpers

import (
	"bytes"
	"encoding/hex"
	"os"

	"github.com/otiai10/copy"
)

// Exists returns true if the file or directory at the given path exists
func Exists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	return true
}

// IsDirectory returns true if the path exists and is a directory
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FilesEqual returns true if both files can be read and their contents
// are identical
func FilesEqual(path1 string, path2 string) bool {
	content1, err := os.ReadFile(path1)
	if err != nil {
		return false
	}
	content2, err := os.ReadFile(path2)
	if err != nil {
		return false
	}
	return bytes.Equal(content1, content2)
}

// CopyIfDifferent copies src to dst unless dst already exists with the same
// content. Returns whether a copy took place, and error
func CopyIfDifferent(src string, dst string) (bool, error) {
	if Exists(dst) == true && FilesEqual(src, dst) == true {
		return false, nil
	}
	err := copy.Copy(src, dst)
	if err != nil {
		return false, err
	}
	return true, nil
}

// CheckMagicAtOffset returns true if the file contains the given magic
// bytes (as a hex string, e.g., "454c46" for ELF) at the given offset
func CheckMagicAtOffset(f *os.File, magic string, offset int64) bool {
	want, err := hex.DecodeString(magic)
	if err != nil {
		return false
	}
	_, err = f.Seek(offset, 0)
	if err != nil {
		return false
	}
	buf := make([]byte, len(want))
	_, err = f.Read(buf)
	if err != nil {
		return false
	}
	return bytes.Equal(buf, want)
}
