package export

import "path/filepath"

// Display widths, in runes, for the two long text columns.
const (
	OriginalTextWidth = 50
	DescriptionWidth  = 40

	// Ellipsis marks a truncated display value.
	Ellipsis = "..."
)

// DefaultOutputPath is where results are written when nothing is configured.
var DefaultOutputPath = filepath.Join("experiment_datasets", "extracted_wikidata_ids.json")

// Config controls how results are persisted.
type Config struct {
	// Path of the JSON file. Parent directories are created.
	Path string
	// Indent is the per-level indent of the pretty printed JSON.
	Indent string
	// FileMode of the written file.
	FileMode uint32
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() Config {
	return Config{
		Path:     DefaultOutputPath,
		Indent:   "  ",
		FileMode: 0o644,
	}
}
