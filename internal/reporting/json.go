package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lexkit/clauseguard/internal/contract"
)

// WriteJSON writes the raw analysis result to outDir for scripting and
// archival. Returns the file path.
func WriteJSON(res *contract.Result, outDir string) (string, error) {
	path := filepath.Join(outDir, res.ID+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return "", err
	}
	return path, nil
}
