package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateInputFile checks that path names a readable regular file.
//
// The checks are intentionally shallow:
//   - No empty paths
//   - No control characters or null bytes
//   - The path must exist and must not be a directory
func ValidateInputFile(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "input path contains invalid control characters")
		}
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "no such file: %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is a directory", path)
	}
	return nil
}

// ValidateAddr validates a listen address of the form host:port or :port.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "listen address cannot be empty")
	}
	i := strings.LastIndex(addr, ":")
	if i < 0 || i == len(addr)-1 {
		return New(ErrCodeInvalidConfig, "listen address %q must include a port", addr)
	}
	for _, r := range addr[i+1:] {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidConfig, "listen address %q has a non-numeric port", addr)
		}
	}
	return nil
}
