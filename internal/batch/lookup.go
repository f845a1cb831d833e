package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// LookupFileName is the lookup table written beside the assets of one
// package. Front ends key into it by livery id.
const LookupFileName = "livery_mapping.json"

// LookupEntry is one record in the lookup table.
type LookupEntry struct {
	AircraftType string `json:"aircraft_type"`
	Model        string `json:"model"`
	Preview      string `json:"preview,omitempty"`
}

// WriteLookup writes the lookup table for one package. Only liveries that
// produced an asset appear, so a consumer never resolves to a file that is
// not there. Map keys marshal sorted, which keeps reruns on unchanged input
// byte-identical. Returns the number of entries written.
func WriteLookup(path string, results []Result) (int, error) {
	table := make(map[string]LookupEntry)
	for _, r := range results {
		if !r.Success {
			continue
		}
		table[r.LiveryID] = LookupEntry{
			AircraftType: r.AircraftType,
			Model:        r.ModelFile,
			Preview:      r.PreviewFile,
		}
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("batch: marshal lookup table: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("batch: write %s: %w", path, err)
	}
	return len(table), nil
}
