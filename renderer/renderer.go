// Package renderer formats evaluation reports as text, tables and markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/returns"
)

//go:embed templates/*.md templates/*.txt
var templates embed.FS

// Options holds configuration for rendering a report.
type Options struct {
	Details bool // Render the per ticker diagnostics.
}

// ReportText renders a report as plain text.
//
// The first four lines are the headline figures and the return, in that order.
func ReportText(r *returns.Report, opts Options) string {
	partials := map[string]string{"report_positions": ""}
	if opts.Details {
		partials["report_positions"] = "report_positions.txt"
	}
	return renderTemplate("report", "report.txt", partials, newReport(r))
}

// ReportMarkdown renders a report as a markdown document.
func ReportMarkdown(r *returns.Report, opts Options) string {
	partials := map[string]string{"report_positions": ""}
	if opts.Details {
		partials["report_positions"] = "report_positions.md"
	}
	return renderTemplate("report", "report.md", partials, newReport(r))
}

// PriceText renders the price return of a single ticker as plain text.
func PriceText(w returns.PriceWindow) string {
	return renderTemplate("price", "price.txt", nil, newWindow(w))
}

// PriceMarkdown renders the price return of a single ticker as markdown.
func PriceMarkdown(w returns.PriceWindow) string {
	return renderTemplate("price", "price.md", nil, newWindow(w))
}

// Terminal renders a markdown document for the terminal.
func Terminal(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, "templates/"+file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

var funcs = template.FuncMap{
	"join": strings.Join,
}
