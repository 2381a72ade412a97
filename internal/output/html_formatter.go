package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/econloss/loss-calculator/internal/domain"
	json "github.com/goccy/go-json"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"pct":    FormatPercentage,
	"factor": FormatFactor,
	"years":  FormatYears,
	"fixed":  formatFixed,
	"add":    func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = GenerateAssumptions(report.Case)
	}

	data := struct {
		*domain.Report
		Analysis    ScenarioAnalysis
		Assumptions []string
	}{report, AnalyzeScenarios(report), assumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
