package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depotstat/pkg/inventory"
	"github.com/Sumatoshi-tech/depotstat/pkg/plotpage"
	"github.com/Sumatoshi-tech/depotstat/pkg/report"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

const animsName = "anims"

type animsCommand struct {
	app *app
	out outputFlags

	suffix string
}

// animReport is the json/yaml form of an animation listing.
type animReport struct {
	Root            string                     `json:"root" yaml:"root"`
	Animations      []inventory.Animation      `json:"animations" yaml:"animations"`
	Classifications []inventory.Classification `json:"classifications" yaml:"classifications"`
	Missing         []string                   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

func newAnimsCommand(a *app) *cobra.Command {
	nc := &animsCommand{app: a}

	cmd := &cobra.Command{
		Use:   "anims <root>",
		Short: "Animation file listing and keyword classification",
		Long: `List every animation file under <root> and classify the files by the
pose keywords found in their names and paths. A file can match several
categories.

Examples:
  depotstat anims ./base/animations
  depotstat anims ./base/animations --format xlsx -o anims.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: nc.run,
	}

	cmd.Flags().StringVar(&nc.suffix, "suffix", "", "animation file suffix (default from config)")
	nc.out.register(cmd)

	return cmd
}

func (nc *animsCommand) run(cmd *cobra.Command, args []string) error {
	cfg := nc.app.cfg.Anims

	suffix := cfg.Suffix
	if cmd.Flags().Changed("suffix") {
		suffix = nc.suffix
	}

	var missing []string

	files, err := inventory.ListAnimations(args[0], suffix)
	if err != nil {
		if !errors.Is(err, walker.ErrRootNotFound) {
			return err
		}

		slog.WarnContext(cmd.Context(), "animation root missing, skipping", "path", args[0], "error", err)

		missing = append(missing, args[0])
	}

	classes := inventory.Classify(files, cfg.Categories)
	rep := animReport{Root: args[0], Animations: files, Classifications: classes, Missing: missing}

	return nc.app.render(cmd, nc.out, rendering{
		name: animsName,
		doc:  animDocument(rep),
		data: rep,
		page: func(theme plotpage.Theme) *plotpage.Page { return animPage(classes, theme) },
	})
}

func animDocument(rep animReport) *report.Document {
	doc := &report.Document{Title: "Animation Inventory", Subtitle: rep.Root}

	var size int64
	for _, f := range rep.Animations {
		size += f.Size
	}

	doc.AddMetric("Animation files", len(rep.Animations))
	doc.AddMetric("Total size", humanize.IBytes(uint64(max(size, 0))))

	summary := doc.AddTable(report.NewTable("categories", "Keyword categories", "Category", "Keywords", "Files"))
	for _, c := range rep.Classifications {
		summary.Append(c.Category, strings.Join(c.Keywords, ", "), len(c.Files))
	}

	doc.AddTable(animTable("animations", "All animations", rep.Animations))

	for _, c := range rep.Classifications {
		doc.AddTable(animTable("anims_"+c.Category, fmt.Sprintf("%s animations", c.Category), c.Files))
	}

	if len(rep.Missing) > 0 {
		doc.AddTable(missingTable("Missing animation roots", rep.Missing))
	}

	return doc
}

func animTable(name, title string, files []inventory.Animation) *report.Table {
	t := report.NewTable(name, title, "Name", "Relative path", "Bytes", "Path")

	for _, f := range files {
		t.Append(f.Name, f.Rel, f.Size, f.Path)
	}

	return t
}

func animPage(classes []inventory.Classification, theme plotpage.Theme) *plotpage.Page {
	cOpts := plotpage.NewChartOpts(theme)
	page := plotpage.NewPage("Animation Inventory", "Animation files per keyword category").WithTheme(theme)

	labels := make([]string, len(classes))
	counts := make([]int, len(classes))

	for i, c := range classes {
		labels[i] = c.Category
		counts[i] = len(c.Files)
	}

	page.Add(plotpage.Section{
		Title:    "Files per category",
		Subtitle: "A file matching several categories is counted in each",
		Chart: plotpage.BuildBarChart(cOpts, labels,
			[]plotpage.BarSeries{{Name: "Files", Data: plotpage.Ints(counts)}}, "Files", 0),
	})

	return page
}
