package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/econloss/loss-calculator/internal/domain"
)

// NewReport bundles a computed case for the formatters. The name defaults to
// the plaintiff.
func NewReport(name string, c domain.Case, res domain.Results, generatedAt time.Time) *domain.Report {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.Info.Plaintiff
	}
	if name == "" {
		name = "Untitled case"
	}
	return &domain.Report{
		CaseName:    name,
		Case:        c,
		Results:     res,
		Assumptions: GenerateAssumptions(c),
		GeneratedAt: generatedAt.UTC(),
	}
}

// Render formats a report with the named formatter.
func Render(report *domain.Report, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(report)
}

// GenerateReport writes the report to timestamped files in dir and returns the
// paths written. "all" writes the verbose console report, the detailed CSV and
// the HTML report.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if strings.EqualFold(strings.TrimSpace(format), "all") {
		var paths []string
		for _, name := range []string{"console", "detailed-csv", "html"} {
			path, err := WriteFormatted(GetFormatterByName(name), report, dir, Extension(name))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	path, err := WriteFormatted(f, report, dir, Extension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// unsupported enriches the error with available formatters and aliases.
func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
