package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ExportFormat enum
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportDeck ExportFormat = "deck" // PDF slide deck
	ExportHTML ExportFormat = "html" // HTML slide deck
)

// ParseExportFormat accepts the canonical names plus a few aliases.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return ExportJSON, nil
	case "deck", "pdf", "ppt", "pptx", "powerpoint":
		return ExportDeck, nil
	case "html":
		return ExportHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Extension returns the file extension of the format.
func (f ExportFormat) Extension() string {
	switch f {
	case ExportDeck:
		return "pdf"
	default:
		return string(f)
	}
}

// MimeType returns the content type of the format.
func (f ExportFormat) MimeType() string {
	switch f {
	case ExportJSON:
		return "application/json"
	case ExportDeck:
		return "application/pdf"
	case ExportHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// File is a downloadable export.
type File struct {
	Data     []byte
	Filename string
	MimeType string
}

// ExportPayload is the JSON export document.
type ExportPayload struct {
	AnalysisID string           `json:"analysis_id"`
	Company    string           `json:"company"`
	Scope      string           `json:"scope"`
	Product    string           `json:"product"`
	Geo        *string          `json:"geo"`
	Notes      *string          `json:"notes"`
	Frameworks []Framework      `json:"frameworks"`
	Results    Results          `json:"results"`
	Recs       []Recommendation `json:"recs"`
	ExportedAt string           `json:"exported_at"`
}

// timestampLayout is ISO-8601 in UTC with a literal Z suffix.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// NewExportPayload assembles the payload from a record at time now.
func NewExportPayload(rec Record, now time.Time) ExportPayload {
	p := ExportPayload{
		AnalysisID: rec.ID,
		Company:    rec.Company,
		Scope:      rec.Scope,
		Product:    rec.Product,
		Frameworks: append([]Framework{}, rec.Frameworks...),
		Results:    rec.Results.Clone(),
		Recs:       append([]Recommendation{}, rec.Recs...),
		ExportedAt: now.UTC().Format(timestampLayout),
	}
	if rec.Geo != GeoNone {
		g := string(rec.Geo)
		p.Geo = &g
	}
	if rec.Notes != "" {
		n := rec.Notes
		p.Notes = &n
	}
	return p
}

// MarshalExport serializes with two-space indentation, keeping non-ASCII and
// HTML characters as-is.
func MarshalExport(p ExportPayload) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ExportFilename follows {company}_{product}_{YYYYMMDD}_strategy.{ext}.
func ExportFilename(rec Record, format ExportFormat, now time.Time) string {
	company := safeName(rec.Company, "company")
	product := safeName(rec.Product, "product")
	return fmt.Sprintf("%s_%s_%s_strategy.%s", company, product, now.Format("20060102"), format.Extension())
}

// BuildJSONExport produces the downloadable JSON file.
func BuildJSONExport(rec Record, now time.Time) (*File, error) {
	data, err := MarshalExport(NewExportPayload(rec, now))
	if err != nil {
		return nil, err
	}
	return &File{
		Data:     data,
		Filename: ExportFilename(rec, ExportJSON, now),
		MimeType: ExportJSON.MimeType(),
	}, nil
}

func safeName(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return strings.ReplaceAll(s, " ", "_")
}
