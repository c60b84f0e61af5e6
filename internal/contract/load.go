package contract

import (
	"fmt"
	"os"
	"strings"
)

// maxFileSize guards against accidentally feeding a binary blob or a
// multi-hundred-MB dump through the analyzer.
const maxFileSize = 10 << 20 // 10 MiB

// ReadFile loads contract text from disk for the CLI path. It strips a
// UTF-8 BOM if present and normalizes line endings; no other cleanup is
// done (the analyzer lowercases, rules tolerate phrasing variants).
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > maxFileSize {
		return "", fmt.Errorf("contract file %s exceeds %d bytes", path, maxFileSize)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimPrefix(string(b), "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return text, nil
}
