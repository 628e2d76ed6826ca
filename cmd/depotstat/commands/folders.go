package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depotstat/pkg/inventory"
	"github.com/Sumatoshi-tech/depotstat/pkg/plotpage"
	"github.com/Sumatoshi-tech/depotstat/pkg/report"
)

const foldersName = "folders"

type foldersCommand struct {
	app *app
	out outputFlags

	suffixes []string
}

func newFoldersCommand(a *app) *cobra.Command {
	fc := &foldersCommand{app: a}

	cmd := &cobra.Command{
		Use:   "folders <quest-root>",
		Short: "Quest file inventory per quest folder",
		Long: `Count quest-phase and scene-solution files under every quest folder.

Quest folders are the subfolders of each configured category (prologue,
part1 and epilogue under main_quests, side_quests, minor_quests) whose
names start with the category prefixes. Category paths are relative to
<quest-root>.

Examples:
  depotstat folders ./base/quest
  depotstat folders ./base/quest --suffix .questphase --format csv -o out/`,
		Args: cobra.ExactArgs(1),
		RunE: fc.run,
	}

	cmd.Flags().StringSliceVar(&fc.suffixes, "suffix", nil, "file suffixes to count, repeatable (default from config)")
	fc.out.register(cmd)

	return cmd
}

func (fc *foldersCommand) run(cmd *cobra.Command, args []string) error {
	cfg := fc.app.cfg.Folders

	suffixes := cfg.Suffixes
	if cmd.Flags().Changed("suffix") {
		suffixes = fc.suffixes
	}

	rep, err := inventory.CountQuestFiles(cmd.Context(), args[0], cfg.Categories, suffixes)
	if err != nil {
		return err
	}

	return fc.app.render(cmd, fc.out, rendering{
		name: foldersName,
		doc:  folderDocument(rep),
		data: rep,
		page: func(theme plotpage.Theme) *plotpage.Page { return folderPage(rep, theme) },
	})
}

func folderDocument(rep *inventory.QuestFileReport) *report.Document {
	doc := &report.Document{Title: "Quest File Inventory", Subtitle: "files per quest folder"}

	doc.AddMetric("Quest folders", len(rep.Quests))

	for _, s := range rep.Suffixes {
		doc.AddMetric(s+" files", rep.Totals[s])
	}

	if len(rep.Missing) > 0 {
		doc.AddMetric("Missing categories", len(rep.Missing))
	}

	header := append([]string{"Category", "Quest"}, rep.Suffixes...)
	quests := doc.AddTable(report.NewTable("quests", "Quest folders", header...))

	for _, q := range rep.Quests {
		row := []any{q.Folder.Category, q.Folder.Name}
		for _, s := range rep.Suffixes {
			row = append(row, q.Counts[s])
		}

		quests.Append(row...)
	}

	header = append([]string{"Category", "Quests"}, rep.Suffixes...)
	cats := doc.AddTable(report.NewTable("categories", "Category subtotals", header...))

	for _, c := range rep.Categories {
		row := []any{c.Category, c.Quests}
		for _, s := range rep.Suffixes {
			row = append(row, c.Counts[s])
		}

		cats.Append(row...)
	}

	if len(rep.Missing) > 0 {
		doc.AddTable(missingTable("Missing category folders", rep.Missing))
	}

	return doc
}

func folderPage(rep *inventory.QuestFileReport, theme plotpage.Theme) *plotpage.Page {
	cOpts := plotpage.NewChartOpts(theme)
	page := plotpage.NewPage("Quest File Inventory", "Quest files per category").WithTheme(theme)

	labels := make([]string, len(rep.Categories))
	for i, c := range rep.Categories {
		labels[i] = c.Category
	}

	series := make([]plotpage.BarSeries, 0, len(rep.Suffixes))

	for _, s := range rep.Suffixes {
		values := make([]int, len(rep.Categories))
		for i, c := range rep.Categories {
			values[i] = c.Counts[s]
		}

		series = append(series, plotpage.BarSeries{Name: s, Data: plotpage.Ints(values)})
	}

	page.Add(plotpage.Section{
		Title:    "Files per category",
		Subtitle: "Category subtotals by suffix",
		Chart:    plotpage.BuildBarChart(cOpts, labels, series, "Files", 0),
	})

	quests := make([]int, len(rep.Categories))
	for i, c := range rep.Categories {
		quests[i] = c.Quests
	}

	page.Add(plotpage.Section{
		Title: "Quest folders per category",
		Chart: plotpage.BuildBarChart(cOpts, labels,
			[]plotpage.BarSeries{{Name: "Quests", Data: plotpage.Ints(quests)}}, "Quests", 0),
	})

	return page
}
