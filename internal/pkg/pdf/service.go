// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/reporting"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// MarginReportData represents the data passed to the margin report template
type MarginReportData struct {
	CompanyName string                `json:"company_name"`
	GeneratedAt string                `json:"generated_at"`
	Rows        []reporting.MarginRow `json:"rows"`
}

// GenerateMarginReport renders the menu-item margin table as a PDF for
// back-office use
func (s *Service) GenerateMarginReport(rows []reporting.MarginRow) (*bytes.Buffer, error) {
	data := MarginReportData{
		CompanyName: s.config.App.CompanyName,
		GeneratedAt: time.Now().Format("January 2, 2006 15:04"),
		Rows:        rows,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data MarginReportData) (string, error) {
	tmpl := template.Must(template.New("margin_report").Funcs(template.FuncMap{
		"money":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}).Parse(marginReportTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// Margin report HTML template
const marginReportTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Margin Report</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .report-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
        }
        .meta {
            text-align: right;
            color: #666;
            font-size: 13px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-top: 10px;
        }
        th {
            background: #f3f4f6;
            text-align: left;
            padding: 8px 10px;
            border-bottom: 2px solid #e5e7eb;
            font-size: 13px;
            text-transform: uppercase;
        }
        td {
            padding: 8px 10px;
            border-bottom: 1px solid #eee;
            font-size: 13px;
        }
        td.num {
            text-align: right;
        }
        .negative {
            color: #dc2626;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="report-title">Menu Margin Report</div>
        <div class="meta">
            <div>{{.CompanyName}}</div>
            <div>Generated {{.GeneratedAt}}</div>
        </div>
    </div>
    <table>
        <tr>
            <th>Code</th>
            <th>Item</th>
            <th style="text-align:right">Sell Price</th>
            <th style="text-align:right">Recipe Cost</th>
            <th style="text-align:right">Margin</th>
        </tr>
        {{range .Rows}}
        <tr>
            <td>{{.Code}}</td>
            <td>{{.Name}}</td>
            <td class="num">{{money .SellPrice}}</td>
            <td class="num">{{money .RecipeCost}}</td>
            <td class="num {{if lt .ProfitMargin 0.0}}negative{{end}}">{{percent .ProfitMargin}}</td>
        </tr>
        {{end}}
    </table>
</body>
</html>
`
