package yfinance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StatementMetadata names a scraped statement for output files
type StatementMetadata struct {
	Ticker string
	Kind   StatementKind
	Period PeriodType
}

// MetadataFor returns the metadata of a scraped statement
func MetadataFor(stmt *Statement) StatementMetadata {
	return StatementMetadata{
		Ticker: stmt.Ticker,
		Kind:   stmt.Kind,
		Period: stmt.Period,
	}
}

// GenerateFilename creates a filename from metadata
// Format: {TICKER}_{segment}_{period}.{ext}
// Missing parts are left out; "statement.{ext}" when nothing is known
func GenerateFilename(meta StatementMetadata, ext string) string {
	var parts []string
	if meta.Ticker != "" {
		parts = append(parts, strings.ToUpper(meta.Ticker))
	}
	if seg := meta.Kind.Segment(); seg != "" {
		parts = append(parts, seg)
	}
	if meta.Period != "" {
		parts = append(parts, string(meta.Period))
	}
	if meta.Ticker == "" {
		return fmt.Sprintf("statement.%s", ext)
	}
	return fmt.Sprintf("%s.%s", strings.Join(parts, "_"), ext)
}

// SaveOptions configures how files should be saved
type SaveOptions struct {
	SaveOriginal bool
	OriginalPath string // If empty, uses smart naming
	OutputPath   string // If empty, no JSON file is written
	OutputDir    string // Directory for output files (default: current dir)
}

// SaveResult contains paths to saved files
type SaveResult struct {
	OriginalPath string
	OutputPath   string
}

// SaveFiles saves the original document and/or the JSON statement
func SaveFiles(lines []string, stmt *Statement, opts SaveOptions) (*SaveResult, error) {
	result := &SaveResult{}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if opts.SaveOriginal {
		originalPath := opts.OriginalPath
		if originalPath == "" {
			originalPath = GenerateFilename(MetadataFor(stmt), "html")
		}
		if opts.OutputDir != "" && !filepath.IsAbs(originalPath) {
			originalPath = filepath.Join(opts.OutputDir, originalPath)
		}

		data := strings.Join(lines, "\n")
		if len(lines) > 0 {
			data += "\n"
		}
		if err := os.WriteFile(originalPath, []byte(data), 0o644); err != nil {
			return nil, fmt.Errorf("failed to save original document: %w", err)
		}
		result.OriginalPath = originalPath
	}

	if opts.OutputPath != "" {
		outputPath := opts.OutputPath
		if opts.OutputDir != "" && !filepath.IsAbs(outputPath) {
			outputPath = filepath.Join(opts.OutputDir, outputPath)
		}

		jsonData, err := FormatJSON(stmt)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}

		if err := os.WriteFile(outputPath, jsonData, 0o644); err != nil {
			return nil, fmt.Errorf("failed to save JSON output: %w", err)
		}
		result.OutputPath = outputPath
	}

	return result, nil
}

// FormatJSON returns pretty-printed JSON for a statement
func FormatJSON(stmt *Statement) ([]byte, error) {
	return json.MarshalIndent(stmt, "", "  ")
}

// FormatJSONBatch returns pretty-printed JSON for several statements
func FormatJSONBatch(stmts []*Statement) ([]byte, error) {
	if stmts == nil {
		stmts = []*Statement{}
	}
	return json.MarshalIndent(stmts, "", "  ")
}
