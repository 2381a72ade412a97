package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/econloss/loss-calculator/internal/domain"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFileType is returned for case files whose extension is not
// .yaml, .yml, .json or .csv.
var ErrUnsupportedFileType = errors.New("unsupported case file type")

// InputParser handles parsing of case input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a case from a YAML, JSON or flat CSV file. A file that
// cannot be decoded at all is an error; individual bad fields fall back to
// defaults and are reported in the returned warnings. The case is sanitized.
func (ip *InputParser) LoadFromFile(filename string) (domain.Case, []string, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return domain.Case{}, nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.Case{}, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, format)
}

// Parse decodes case data in the named format ("yaml", "json" or "csv").
func (ip *InputParser) Parse(data []byte, format string) (domain.Case, []string, error) {
	rec, err := decodeRecord(data, format)
	if err != nil {
		return domain.Case{}, nil, err
	}
	c, warnings := FromRecord(rec)
	c, fixes := Sanitize(c)
	return c, append(warnings, fixes...), nil
}

// FormatFromPath maps a file extension to a case file format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	case ".csv":
		return "csv", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, path)
}

func decodeRecord(data []byte, format string) (map[string]any, error) {
	rec := map[string]any{}
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case "csv":
		parsed, err := ParseFlatCSV(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		rec = parsed
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, format)
	}
	if rec == nil {
		rec = map[string]any{}
	}
	return rec, nil
}

// SaveToFile writes c in the format implied by the file extension.
func SaveToFile(c domain.Case, filename string) error {
	format, err := FormatFromPath(filename)
	if err != nil {
		return err
	}
	data, err := Encode(c, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// Encode serializes c as "yaml", "json" or "csv".
func Encode(c domain.Case, format string) ([]byte, error) {
	switch format {
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "csv":
		var buf bytes.Buffer
		if err := WriteFlatCSV(&buf, c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, format)
}
