package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depotstat/pkg/inventory"
	"github.com/Sumatoshi-tech/depotstat/pkg/plotpage"
	"github.com/Sumatoshi-tech/depotstat/pkg/report"
)

const assetsName = "assets"

type assetsCommand struct {
	app *app
	out outputFlags

	top int
}

// assetReport is the json/yaml form of an asset inventory.
type assetReport struct {
	inventory.AssetReport `yaml:",inline"`

	Ranking []inventory.AssetCount `json:"ranking" yaml:"ranking"`
}

func newAssetsCommand(a *app) *cobra.Command {
	ac := &assetsCommand{app: a}

	cmd := &cobra.Command{
		Use:   "assets <quest-root>",
		Short: "Asset type inventory per quest folder",
		Long: `Count the files of each asset type (quest, scene, entity, world, AI,
config by default) under every quest folder and rank the folders by total.

Examples:
  depotstat assets ./base/quest --top 10
  depotstat assets ./base/quest --format plot -o assets.html`,
		Args: cobra.ExactArgs(1),
		RunE: ac.run,
	}

	cmd.Flags().IntVar(&ac.top, "top", 0, "number of folders in the ranking, 0 for all (default from config)")
	ac.out.register(cmd)

	return cmd
}

func (ac *assetsCommand) run(cmd *cobra.Command, args []string) error {
	cfg := ac.app.cfg

	top := cfg.Assets.Top
	if cmd.Flags().Changed("top") {
		top = ac.top
	}

	folders, missing, err := inventory.Discover(cmd.Context(), args[0], cfg.Folders.Categories)
	if err != nil {
		return err
	}

	rep, err := inventory.CountAssets(cmd.Context(), folders, cfg.Assets.Types)
	if err != nil {
		return err
	}

	rep.Missing = missing

	return ac.app.render(cmd, ac.out, rendering{
		name: assetsName,
		doc:  assetDocument(rep, top),
		data: assetReport{AssetReport: *rep, Ranking: rep.Ranking(top)},
		page: func(theme plotpage.Theme) *plotpage.Page { return assetPage(rep, top, theme) },
	})
}

func assetDocument(rep *inventory.AssetReport, top int) *report.Document {
	doc := &report.Document{Title: "Asset Inventory", Subtitle: "asset files per quest folder"}

	doc.AddMetric("Quest folders", len(rep.Folders))
	doc.AddMetric("Asset files", rep.Total)

	dist := report.Distribution{Title: "Files by asset type"}

	types := doc.AddTable(report.NewTable("types", "Asset types", "Type", "Extensions", "Files"))

	for _, t := range rep.Types {
		n := rep.TypeTotal(t.Name)

		types.Append(t.Name, strings.Join(t.Extensions, " "), n)
		dist.Shares = append(dist.Shares, report.Share{Label: t.Name, Count: n})
	}

	doc.Distributions = append(doc.Distributions, dist)

	header := []string{"Rank", "Folder"}
	for _, t := range rep.Types {
		header = append(header, t.Name)
	}

	header = append(header, "Total")

	title := "Folders by asset count"
	if top > 0 {
		title = fmt.Sprintf("Top %d folders by asset count", top)
	}

	ranking := doc.AddTable(report.NewTable("ranking", title, header...))

	for i, f := range rep.Ranking(top) {
		row := []any{i + 1, f.Folder.Label()}
		for _, t := range rep.Types {
			row = append(row, f.Types[t.Name])
		}

		ranking.Append(append(row, f.Total)...)
	}

	exts := doc.AddTable(report.NewTable("extensions", "Files per extension", "Folder", "Extension", "Files"))

	for _, f := range rep.Folders {
		for _, t := range rep.Types {
			for _, e := range t.Extensions {
				if n := f.Extensions[e]; n > 0 {
					exts.Append(f.Folder.Label(), e, n)
				}
			}
		}
	}

	if len(rep.Missing) > 0 {
		doc.AddTable(missingTable("Missing category folders", rep.Missing))
	}

	return doc
}

func assetPage(rep *inventory.AssetReport, top int, theme plotpage.Theme) *plotpage.Page {
	cOpts := plotpage.NewChartOpts(theme)
	page := plotpage.NewPage("Asset Inventory", "Asset files per quest folder").WithTheme(theme)

	ranked := rep.Ranking(top)
	if len(ranked) > chartGroupLimit {
		ranked = ranked[:chartGroupLimit]
	}

	labels := make([]string, len(ranked))
	for i, f := range ranked {
		labels[i] = f.Folder.Label()
	}

	series := make([]plotpage.BarSeries, 0, len(rep.Types))

	for _, t := range rep.Types {
		values := make([]int, len(ranked))
		for i, f := range ranked {
			values[i] = f.Types[t.Name]
		}

		series = append(series, plotpage.BarSeries{Name: t.Name, Data: plotpage.Ints(values), Stack: "types"})
	}

	page.Add(plotpage.Section{
		Title:    "Largest quest folders",
		Subtitle: "Asset files by type, stacked",
		Chart:    plotpage.BuildBarChart(cOpts, labels, series, "Files", chartLabelRotate),
	})

	pie := make([]plotpage.PieSlice, 0, len(rep.Types))
	for _, t := range rep.Types {
		pie = append(pie, plotpage.PieSlice{Name: t.Name, Value: rep.TypeTotal(t.Name)})
	}

	page.Add(plotpage.Section{
		Title: "Asset type share",
		Chart: plotpage.BuildPieChart(cOpts, "Files", pie),
	})

	return page
}
