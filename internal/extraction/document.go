package extraction

import "github.com/dgallion1/docstruct/internal/structure"

// SchemaVersion is written into every artifact so consumers can detect
// future schema changes.
const SchemaVersion = "1.0"

// Metadata describes one extraction run.
type Metadata struct {
	Filename           string `json:"filename"`
	TotalPages         int    `json:"total_pages"`
	ExtractedAt        string `json:"extracted_at"` // ISO-8601 UTC
	ExtractionStrategy string `json:"extraction_strategy"`
	Version            string `json:"version"`
}

// Page is one cleaned page of the artifact.
type Page struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// Document is the single persisted artifact: created once per input
// document, immutable once written.
type Document struct {
	Metadata Metadata            `json:"metadata"`
	Sections []structure.Section `json:"sections"`
	Pages    []Page              `json:"pages"`
}
