// Package plotpage assembles go-echarts charts into standalone HTML report pages.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = len("</style>")

// Hint is interpretive guidance shown under a chart.
type Hint struct {
	Title string
	Items []string
}

// Section is one chart with its heading.
type Section struct {
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// Page is a complete report page.
type Page struct {
	Title           string
	Description     string
	ProjectName     string
	ProjectSubtitle string
	Theme           Theme
	Sections        []Section
}

// NewPage creates a page with the depotstat branding and the dark theme.
func NewPage(title, description string) *Page {
	return &Page{
		Title:           title,
		Description:     description,
		ProjectName:     "depotstat",
		ProjectSubtitle: "Asset Tree Statistics",
		Theme:           ThemeDark,
	}
}

// WithTheme sets the page theme.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return HTMLRenderer{}.Render(w, p)
}

// Renderable is anything that renders itself as HTML, typically a go-echarts chart.
type Renderable interface {
	Render(w io.Writer) error
}

// HTMLRenderer renders pages as HTML.
type HTMLRenderer struct {
	ExtraCSS string
}

// Render writes page to w.
func (r HTMLRenderer) Render(w io.Writer, page *Page) error {
	header, err := renderTemplate("header.html", headerData{
		ProjectName: page.ProjectName,
		Subtitle:    page.ProjectSubtitle,
		Title:       page.Title,
		Description: page.Description,
	})
	if err != nil {
		return fmt.Errorf("render header: %w", err)
	}

	var sections bytes.Buffer

	for _, section := range page.Sections {
		html, sectionErr := r.renderSection(section)
		if sectionErr != nil {
			return fmt.Errorf("render section %q: %w", section.Title, sectionErr)
		}

		sections.WriteString(string(html))
	}

	darkClass := ""
	if page.Theme == ThemeDark {
		darkClass = "dark"
	}

	html, err := renderTemplate("page.html", pageData{
		Title:       page.Title,
		ProjectName: page.ProjectName,
		DarkClass:   darkClass,
		Theme:       GetThemeConfig(page.Theme),
		ExtraCSS:    template.CSS(r.ExtraCSS), //nolint:gosec // caller-supplied stylesheet.
		Header:      header,
		Content:     template.HTML(sections.String()), //nolint:gosec // rendered by html/template.
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func (r HTMLRenderer) renderSection(section Section) (template.HTML, error) {
	chartHTML, err := renderChart(section.Chart)
	if err != nil {
		return "", err
	}

	data := sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Chart:    template.HTML(chartHTML), //nolint:gosec // go-echarts output.
	}

	if len(section.Hint.Items) > 0 {
		hint := section.Hint
		data.Hint = &hint
	}

	return renderTemplate("section.html", data)
}

func renderChart(chart Renderable) (string, error) {
	if chart == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := chart.Render(&buf)
	if err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return extractChartContent(buf.String()), nil
}

// extractChartContent strips the standalone page go-echarts emits down to
// the chart container. Fragments pass through unchanged.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	end := strings.Index(html, `</body>`)

	if start == -1 || end == -1 || end < start {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			return content
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			return content
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}
}
