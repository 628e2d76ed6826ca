package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depotstat/pkg/mathutil"
	"github.com/Sumatoshi-tech/depotstat/pkg/plotpage"
	"github.com/Sumatoshi-tech/depotstat/pkg/report"
	"github.com/Sumatoshi-tech/depotstat/pkg/scene"
	"github.com/Sumatoshi-tech/depotstat/pkg/snapshot"
	"github.com/Sumatoshi-tech/depotstat/pkg/tally"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

const (
	scenesName       = "scenes"
	chartGroupLimit  = 30
	chartLabelRotate = 45
)

// Scene command errors.
var (
	ErrNoScanRoots   = errors.New("at least one scan root is required (or use --input)")
	ErrInputAndRoots = errors.New("--input cannot be combined with scan roots")
)

type scenesCommand struct {
	app *app
	out outputFlags

	groupBy     string
	top         int
	threshold   int
	suffix      string
	excludeDirs []string
	save        string
	input       string
}

// sceneReport is the json/yaml form of a scene analysis.
type sceneReport struct {
	Roots            []string              `json:"roots,omitempty" yaml:"roots,omitempty"`
	GroupBy          scene.GroupBy         `json:"group_by" yaml:"group_by"`
	Threshold        int                   `json:"threshold" yaml:"threshold"`
	Summary          scene.Summary         `json:"summary" yaml:"summary"`
	TaskTypes        []scene.TaskTypeStats `json:"task_types" yaml:"task_types"`
	Groups           []scene.GroupStats    `json:"groups" yaml:"groups"`
	TopScenes        []scene.Record        `json:"top_scenes" yaml:"top_scenes"`
	Speakers         []tally.LabelCount    `json:"speakers" yaml:"speakers"`
	FrequentSpeakers []tally.LabelCount    `json:"frequent_speakers" yaml:"frequent_speakers"`
	Failures         []walker.Failure      `json:"failures,omitempty" yaml:"failures,omitempty"`
	Missing          []string              `json:"missing,omitempty" yaml:"missing,omitempty"`
}

func newScenesCommand(a *app) *cobra.Command {
	sc := &scenesCommand{app: a}

	cmd := &cobra.Command{
		Use:   "scenes [root...]",
		Short: "Dialogue statistics of scene localisation files",
		Long: `Walk every root for *.scnlocjson scene files and report lines, sections,
choice sections and speakers per quest group.

Examples:
  depotstat scenes ./base/quest
  depotstat scenes ./base/quest --group-by type --format xlsx -o scenes.xlsx
  depotstat scenes ./base/quest --save scan.json.lz4
  depotstat scenes --input scan.json.lz4 --format plot`,
		RunE: sc.run,
	}

	cmd.Flags().StringVar(&sc.groupBy, "group-by", "", "grouping: category, type or folder (default from config)")
	cmd.Flags().IntVar(&sc.top, "top", 0, "number of largest scenes to list (default from config, 0 in config lists all)")
	cmd.Flags().IntVar(&sc.threshold, "threshold", 0, "minimum scenes for a frequent speaker (default from config)")
	cmd.Flags().StringVar(&sc.suffix, "suffix", "", "scene file suffix (default from config)")
	cmd.Flags().StringSliceVar(&sc.excludeDirs, "exclude-dir", nil, "directory names to skip (default from config)")
	cmd.Flags().StringVar(&sc.save, "save", "", "save the scan as a snapshot (.json or .json.lz4)")
	cmd.Flags().StringVar(&sc.input, "input", "", "render a saved snapshot instead of scanning")
	sc.out.register(cmd)

	return cmd
}

func (sc *scenesCommand) run(cmd *cobra.Command, args []string) error {
	cfg := sc.app.cfg.Scenes
	flags := cmd.Flags()

	groupByName := cfg.GroupBy
	if flags.Changed("group-by") {
		groupByName = sc.groupBy
	}

	groupBy, err := scene.ParseGroupBy(groupByName)
	if err != nil {
		return err
	}

	top := cfg.Top
	if flags.Changed("top") {
		top = sc.top
	}

	var analysis *scene.Analysis

	switch {
	case sc.input != "" && len(args) > 0:
		return ErrInputAndRoots
	case sc.input != "":
		snap, loadErr := snapshot.Load(sc.input)
		if loadErr != nil {
			return loadErr
		}

		override := scene.GroupBy("")
		if flags.Changed("group-by") {
			override = groupBy
		}

		threshold := 0
		if flags.Changed("threshold") {
			threshold = sc.threshold
		}

		analysis = snap.Analysis(override, threshold)
	case len(args) == 0:
		return ErrNoScanRoots
	default:
		opts := scene.Options{
			GroupBy:     groupBy,
			Suffix:      cfg.Suffix,
			ExcludeDirs: cfg.ExcludeDirs,
			Threshold:   cfg.Threshold,
			Metrics:     sc.app.metrics,
		}

		if flags.Changed("suffix") {
			opts.Suffix = sc.suffix
		}

		if flags.Changed("exclude-dir") {
			opts.ExcludeDirs = sc.excludeDirs
		}

		if flags.Changed("threshold") {
			opts.Threshold = sc.threshold
		}

		analysis, err = scene.Analyze(cmd.Context(), args, opts)
		if err != nil {
			return err
		}
	}

	if sc.save != "" {
		snap := analysis.Snapshot()

		written, saveErr := snapshot.Save(sc.save, &snap)
		if saveErr != nil {
			return saveErr
		}

		slog.InfoContext(cmd.Context(), "snapshot saved", "path", written, "scenes", len(snap.Scenes))
	}

	return sc.app.render(cmd, sc.out, rendering{
		name: scenesName,
		doc:  sceneDocument(analysis, top),
		data: newSceneReport(analysis, top),
		page: func(theme plotpage.Theme) *plotpage.Page { return scenePage(analysis, top, theme) },
	})
}

func newSceneReport(a *scene.Analysis, top int) sceneReport {
	return sceneReport{
		Roots:            a.Roots,
		GroupBy:          a.GroupBy,
		Threshold:        a.Threshold,
		Summary:          a.Summary(),
		TaskTypes:        a.TaskTypes(),
		Groups:           a.Groups(),
		TopScenes:        a.TopScenes(top),
		Speakers:         a.Speakers(),
		FrequentSpeakers: a.FrequentSpeakers(),
		Failures:         a.Failures,
		Missing:          a.Missing,
	}
}

func sceneDocument(a *scene.Analysis, top int) *report.Document {
	s := a.Summary()

	doc := &report.Document{
		Title:    "Scene Statistics",
		Subtitle: "grouped by " + string(a.GroupBy),
	}

	doc.AddMetric("Scenes", s.Scenes)
	doc.AddMetric("Dialogue lines", s.Lines)
	doc.AddMetric("Sections", s.Sections)
	doc.AddMetric("Choice sections", s.ChoiceSections)
	doc.AddMetric("Normal sections", s.NormalSections)
	doc.AddMetric("Scenes with dialogue", s.WithDialogue)
	doc.AddMetric("Scenes without dialogue", s.WithoutDialogue)
	doc.AddMetric("Avg lines per scene", s.AvgLinesPerScene)
	doc.AddMetric("Choice section share", percentString(s.ChoiceSections, s.Sections))
	doc.AddMetric("Groups", s.Groups)

	if s.LargestScene != "" {
		doc.AddMetric("Largest scene", fmt.Sprintf("%s (%d lines)", s.LargestScene, s.LargestLines))
	}

	if s.MostSpeakersScene != "" {
		doc.AddMetric("Most speakers", fmt.Sprintf("%s (%d speakers)", s.MostSpeakersScene, s.MostSpeakers))
	}

	doc.AddMetric("Skipped files", s.Failures)

	taskTypes := a.TaskTypes()

	dist := report.Distribution{Title: "Dialogue lines by task type"}
	for _, tt := range taskTypes {
		dist.Shares = append(dist.Shares, report.Share{Label: tt.TaskType, Count: tt.Lines})
	}

	doc.Distributions = append(doc.Distributions, dist)

	groups := doc.AddTable(report.NewTable("groups", "Groups",
		"Group", "Task type", "Scenes", "Sections", "Choice", "Normal", "Lines",
		"Avg lines", "Avg sections", "Choice share"))

	for _, g := range a.Groups() {
		groups.Append(g.Group, g.TaskType, g.Scenes, g.Sections, g.ChoiceSections, g.NormalSections, g.Lines,
			g.AvgLinesPerScene, g.AvgSectionsPerScene, percentString(g.ChoiceSections, g.Sections))
	}

	tasks := doc.AddTable(report.NewTable("task_types", "Main versus side/minor",
		"Task type", "Groups", "Scenes", "Sections", "Choice", "Lines", "Choice share"))

	for _, tt := range taskTypes {
		tasks.Append(tt.TaskType, tt.Groups, tt.Scenes, tt.Sections, tt.ChoiceSections, tt.Lines,
			percentString(tt.ChoiceSections, tt.Sections))
	}

	scenes := doc.AddTable(report.NewTable("top_scenes", "Largest scenes",
		"Rank", "Scene", "Group", "Lines", "Sections", "Choice", "Speakers", "Path"))

	for i, rec := range a.TopScenes(top) {
		scenes.Append(i+1, rec.Name, rec.Group, rec.Lines, rec.Sections, rec.ChoiceSections, len(rec.Speakers), rec.Rel)
	}

	frequent := doc.AddTable(report.NewTable("frequent_speakers",
		fmt.Sprintf("Speakers in at least %d scenes", a.Threshold), "Rank", "Speaker", "Scenes"))

	for i, sp := range a.FrequentSpeakers() {
		frequent.Append(i+1, sp.Label, sp.Count)
	}

	speakers := doc.AddTable(report.NewTable("speakers", "All speakers", "Rank", "Speaker", "Scenes"))

	for i, sp := range a.Speakers() {
		speakers.Append(i+1, sp.Label, sp.Count)
	}

	if len(a.Failures) > 0 {
		doc.AddTable(failureTable(a.Failures))
	}

	if len(a.Missing) > 0 {
		doc.AddTable(missingTable("Missing scan roots", a.Missing))
	}

	return doc
}

func scenePage(a *scene.Analysis, top int, theme plotpage.Theme) *plotpage.Page {
	cOpts := plotpage.NewChartOpts(theme)
	page := plotpage.NewPage("Scene Statistics", "Dialogue volume and structure per "+string(a.GroupBy)).WithTheme(theme)

	groups := a.Groups()
	if len(groups) > chartGroupLimit {
		groups = groups[:chartGroupLimit]
	}

	labels := make([]string, len(groups))
	scenes := make([]int, len(groups))
	lines := make([]int, len(groups))
	choice := make([]int, len(groups))
	normal := make([]int, len(groups))

	for i, g := range groups {
		labels[i] = g.Group
		scenes[i] = g.Scenes
		lines[i] = g.Lines
		choice[i] = g.ChoiceSections
		normal[i] = g.NormalSections
	}

	page.Add(
		plotpage.Section{
			Title:    "Dialogue lines per group",
			Subtitle: fmt.Sprintf("Top %d groups by line count", len(groups)),
			Chart: plotpage.BuildBarChart(cOpts, labels,
				[]plotpage.BarSeries{{Name: "Lines", Data: plotpage.Ints(lines)}}, "Lines", chartLabelRotate),
		},
		plotpage.Section{
			Title:    "Scenes and dialogue volume",
			Subtitle: "Scene count (bars) against dialogue lines (line)",
			Chart: plotpage.BuildBarLineChart(cOpts, labels,
				[]plotpage.BarSeries{{Name: "Scenes", Data: plotpage.Ints(scenes)}},
				[]plotpage.LineSeries{{Name: "Lines", Data: plotpage.Ints(lines)}},
				"Scenes", "Lines", chartLabelRotate),
		},
		plotpage.Section{
			Title:    "Section structure per group",
			Subtitle: "Choice and normal sections, stacked",
			Chart: plotpage.BuildBarChart(cOpts, labels, []plotpage.BarSeries{
				{Name: "Choice", Data: plotpage.Ints(choice), Stack: "sections"},
				{Name: "Normal", Data: plotpage.Ints(normal), Stack: "sections"},
			}, "Sections", chartLabelRotate),
			Hint: plotpage.Hint{
				Title: "Reading the chart",
				Items: []string{"A tall choice segment marks a quest that branches often."},
			},
		},
	)

	var pie []plotpage.PieSlice
	for _, tt := range a.TaskTypes() {
		pie = append(pie, plotpage.PieSlice{Name: tt.TaskType, Value: tt.Lines})
	}

	page.Add(plotpage.Section{
		Title: "Main versus side/minor",
		Chart: plotpage.BuildPieChart(cOpts, "Lines", pie),
	})

	var points []plotpage.ScatterPoint
	for _, rec := range a.TopScenes(top) {
		points = append(points, plotpage.ScatterPoint{Name: rec.Name, X: rec.Sections, Y: rec.Lines})
	}

	page.Add(plotpage.Section{
		Title:    "Largest scenes",
		Subtitle: "Sections against dialogue lines",
		Chart:    plotpage.BuildScatterChart(cOpts, "Scenes", points, "Sections", "Lines"),
	})

	speakers := a.FrequentSpeakers()
	if len(speakers) > chartGroupLimit {
		speakers = speakers[:chartGroupLimit]
	}

	names := make([]string, len(speakers))
	counts := make([]int, len(speakers))

	for i, sp := range speakers {
		names[i] = sp.Label
		counts[i] = sp.Count
	}

	page.Add(plotpage.Section{
		Title:    "Frequent speakers",
		Subtitle: fmt.Sprintf("Speakers in at least %d scenes", a.Threshold),
		Chart: plotpage.BuildBarChart(cOpts, names,
			[]plotpage.BarSeries{{Name: "Scenes", Data: plotpage.Ints(counts)}}, "Scenes", chartLabelRotate),
	})

	return page
}

func percentString(part, whole int) string {
	return fmt.Sprintf("%.1f%%", mathutil.Percent(part, whole))
}
