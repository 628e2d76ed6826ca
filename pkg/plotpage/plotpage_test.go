package plotpage_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depotstat/pkg/plotpage"
)

type fragment string

func (f fragment) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(f))

	return err
}

var errBroken = errors.New("broken")

type brokenChart struct{}

func (brokenChart) Render(io.Writer) error { return errBroken }

func TestPageRender(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Scene report", "3 scenes")
	page.Add(plotpage.Section{
		Title:    "Lines per quest",
		Subtitle: "top 20",
		Chart:    fragment(`<div id="c1"></div>`),
		Hint:     plotpage.Hint{Title: "Reading", Items: []string{"taller is <longer>"}},
	})

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "Scene report")
	assert.Contains(t, html, "Lines per quest")
	assert.Contains(t, html, `<div id="c1"></div>`)
	assert.Contains(t, html, "taller is &lt;longer&gt;")
	assert.Contains(t, html, `class="dark"`)
}

func TestPageRender_LightTheme(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("t", "").WithTheme(plotpage.ThemeLight)

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))

	assert.NotContains(t, buf.String(), `class="dark"`)
	assert.Contains(t, buf.String(), "#f8fafc")
}

func TestPageRender_ChartError(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("t", "")
	page.Add(plotpage.Section{Title: "bad", Chart: brokenChart{}})

	err := page.Render(io.Discard)
	require.ErrorIs(t, err, errBroken)
}

func TestPageRender_StripsChartPageShell(t *testing.T) {
	t.Parallel()

	full := fragment(`<!DOCTYPE html><html><head><style>.outer{}</style></head><body>` +
		`<div class="container"><style>.inner{}</style><div id="chart"></div></div></body></html>`)

	page := plotpage.NewPage("t", "")
	page.Add(plotpage.Section{Title: "wrapped", Chart: full})

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, `class="echart-box"`)
	assert.Contains(t, out, `<div id="chart"></div>`)
	assert.NotContains(t, out, ".outer{}")
	assert.NotContains(t, out, ".inner{}")
	assert.Equal(t, 1, strings.Count(out, "<!DOCTYPE"))
}

func TestPageRender_RealChart(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("t", "")
	page.Add(plotpage.Section{
		Title: "bars",
		Chart: plotpage.BuildBarChart(nil, []string{"a"}, []plotpage.BarSeries{
			{Name: "n", Data: plotpage.Ints([]int{1})},
		}, "", 0),
	})

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))

	assert.Contains(t, buf.String(), "echarts")
	assert.Contains(t, buf.String(), `class="echart-box"`)
}
