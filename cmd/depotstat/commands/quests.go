package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depotstat/pkg/plotpage"
	"github.com/Sumatoshi-tech/depotstat/pkg/questnode"
	"github.com/Sumatoshi-tech/depotstat/pkg/report"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

const questsName = "quests"

type questsCommand struct {
	app *app
	out outputFlags

	prefixes  []string
	threshold int
	separator string
}

// questReport is the json/yaml form of a quest-node analysis.
type questReport struct {
	Files         []string                      `json:"files" yaml:"files"`
	Threshold     int                           `json:"threshold" yaml:"threshold"`
	Summary       questnode.Summary             `json:"summary" yaml:"summary"`
	AllPhases     []questnode.PhaseSummary      `json:"all_phases" yaml:"all_phases"`
	NodeCounts    []questnode.NodeCount         `json:"node_counts" yaml:"node_counts"`
	TargetPhases  []questnode.PhaseSummary      `json:"target_phases" yaml:"target_phases"`
	HighFrequency []questnode.HighFrequencyNode `json:"high_frequency" yaml:"high_frequency"`
	NodeMatrix    questnode.Matrix              `json:"node_matrix" yaml:"node_matrix"`
	ClassMatrix   questnode.Matrix              `json:"class_matrix" yaml:"class_matrix"`
	Classes       []questnode.ClassDescription  `json:"classes" yaml:"classes"`
	Failures      []walker.Failure              `json:"failures,omitempty" yaml:"failures,omitempty"`
	Missing       []string                      `json:"missing,omitempty" yaml:"missing,omitempty"`
}

func newQuestsCommand(a *app) *cobra.Command {
	qc := &questsCommand{app: a}

	cmd := &cobra.Command{
		Use:   "quests <dump.json>...",
		Short: "Node statistics of quest-phase dumps",
		Long: `Load quest-node dumps ({"questphases": {<phase>: [nodes]}}) and report
phase summaries, node-name frequencies, high-frequency nodes, phase by node
and phase by class matrices and the node class descriptions.

Phases that appear in several dumps are merged.

Examples:
  depotstat quests nodes.json
  depotstat quests part1.json part2.json --threshold 5 --format xlsx -o quests.xlsx
  depotstat quests nodes.json --prefix 'base\quest\main_quests'`,
		Args: cobra.MinimumNArgs(1),
		RunE: qc.run,
	}

	cmd.Flags().StringSliceVar(&qc.prefixes, "prefix", nil, "target phase prefix, repeatable (default from config)")
	cmd.Flags().IntVar(&qc.threshold, "threshold", 0, "minimum count of a high-frequency node (default from config)")
	cmd.Flags().StringVar(&qc.separator, "separator", "", "separator of node fields in phase summaries (default from config)")
	qc.out.register(cmd)

	return cmd
}

func (qc *questsCommand) run(cmd *cobra.Command, args []string) error {
	cfg := qc.app.cfg.Quests
	flags := cmd.Flags()

	opts := questnode.Options{
		TargetPrefixes: cfg.TargetPrefixes,
		Threshold:      cfg.Threshold,
		Separator:      cfg.Separator,
		Metrics:        qc.app.metrics,
	}

	if flags.Changed("prefix") {
		opts.TargetPrefixes = qc.prefixes
	}

	if flags.Changed("threshold") {
		opts.Threshold = qc.threshold
	}

	if flags.Changed("separator") {
		opts.Separator = qc.separator
	}

	analysis, err := questnode.Analyze(cmd.Context(), args, opts)
	if err != nil {
		return err
	}

	return qc.app.render(cmd, qc.out, rendering{
		name: questsName,
		doc:  questDocument(analysis),
		data: newQuestReport(analysis),
		page: func(theme plotpage.Theme) *plotpage.Page { return questPage(analysis, theme) },
	})
}

func newQuestReport(a *questnode.Analysis) questReport {
	return questReport{
		Files:         a.Files,
		Threshold:     a.Threshold(),
		Summary:       a.Summary(),
		AllPhases:     a.AllPhases(),
		NodeCounts:    a.NodeCounts(),
		TargetPhases:  a.TargetPhases(),
		HighFrequency: a.HighFrequency(),
		NodeMatrix:    a.NodeMatrix(),
		ClassMatrix:   a.ClassMatrix(),
		Classes:       a.ClassTable(),
		Failures:      a.Failures,
		Missing:       a.Missing,
	}
}

func questDocument(a *questnode.Analysis) *report.Document {
	s := a.Summary()

	doc := &report.Document{
		Title:    "Quest Node Statistics",
		Subtitle: fmt.Sprintf("%d dump(s)", s.Files),
	}

	doc.AddMetric("Dump files", s.Files)
	doc.AddMetric("Phases", s.Phases)
	doc.AddMetric("Target phases", s.TargetPhases)
	doc.AddMetric("Nodes", s.Nodes)
	doc.AddMetric("Distinct node names", s.DistinctNames)
	doc.AddMetric("Node classes", s.Classes)
	doc.AddMetric(fmt.Sprintf("Nodes seen %d+ times", a.Threshold()), s.HighFrequency)
	doc.AddMetric("Skipped files", s.Failures)

	doc.AddTable(phaseTable("all_phases", "All phases", a.AllPhases()))

	counts := doc.AddTable(report.NewTable("node_counts", "Node names in target phases", "Rank", "Node", "Count"))
	for _, n := range a.NodeCounts() {
		counts.Append(n.Rank, n.Name, n.Count)
	}

	doc.AddTable(phaseTable("target_phases", "Target phases", a.TargetPhases()))

	high := doc.AddTable(report.NewTable("high_frequency",
		fmt.Sprintf("Nodes seen at least %d times", a.Threshold()),
		"Node", "Count", "Phases", "Main phases", "Side phases", "Minor phases"))

	for _, n := range a.HighFrequency() {
		high.Append(n.Name, n.Count, n.Phases, n.MainPhases, n.SidePhases, n.MinorPhases)
	}

	doc.AddTable(matrixTable("node_matrix", "Target phase by high-frequency node", a.NodeMatrix(), nil))
	doc.AddTable(matrixTable("class_matrix", "Phase by node class", a.ClassMatrix(), questnode.ClassHeader))

	classes := doc.AddTable(report.NewTable("classes", "Node classes", "Class", "Description"))
	for _, c := range a.ClassTable() {
		classes.Append(c.Class, c.Description)
	}

	if len(a.Failures) > 0 {
		doc.AddTable(failureTable(a.Failures))
	}

	if len(a.Missing) > 0 {
		doc.AddTable(missingTable("Missing dump files", a.Missing))
	}

	return doc
}

func phaseTable(name, title string, rows []questnode.PhaseSummary) *report.Table {
	t := report.NewTable(name, title, "Phase", "IDs", "Names", "Classes", "Paths", "Nodes")

	for _, r := range rows {
		t.Append(r.Phase, r.IDs, r.Names, r.Classes, r.Paths, r.Nodes)
	}

	return t
}

func matrixTable(name, title string, m questnode.Matrix, header func(string) string) *report.Table {
	cols := make([]string, 0, len(m.Columns)+1)
	cols = append(cols, "Phase")

	for _, c := range m.Columns {
		if header != nil {
			c = header(c)
		}

		cols = append(cols, c)
	}

	t := report.NewTable(name, title, cols...)

	for i, row := range m.Rows {
		cells := make([]any, 0, len(cols))
		cells = append(cells, row)

		for _, n := range m.Cells[i] {
			cells = append(cells, n)
		}

		t.Append(cells...)
	}

	return t
}

func questPage(a *questnode.Analysis, theme plotpage.Theme) *plotpage.Page {
	cOpts := plotpage.NewChartOpts(theme)
	page := plotpage.NewPage("Quest Node Statistics", "Node usage across quest phases").WithTheme(theme)

	counts := a.NodeCounts()
	if len(counts) > chartGroupLimit {
		counts = counts[:chartGroupLimit]
	}

	names := make([]string, len(counts))
	values := make([]int, len(counts))

	for i, n := range counts {
		names[i] = n.Name
		values[i] = n.Count
	}

	page.Add(plotpage.Section{
		Title:    "Most used nodes",
		Subtitle: fmt.Sprintf("Top %d node names in target phases", len(counts)),
		Chart: plotpage.BuildBarChart(cOpts, names,
			[]plotpage.BarSeries{{Name: "Count", Data: plotpage.Ints(values)}}, "Count", chartLabelRotate),
	})

	high := a.HighFrequency()
	hfNames := make([]string, len(high))
	mainPhases := make([]int, len(high))
	sidePhases := make([]int, len(high))
	minorPhases := make([]int, len(high))

	for i, n := range high {
		hfNames[i] = n.Name
		mainPhases[i] = n.MainPhases
		sidePhases[i] = n.SidePhases
		minorPhases[i] = n.MinorPhases
	}

	page.Add(plotpage.Section{
		Title:    "Where high-frequency nodes live",
		Subtitle: "Phases per quest kind, stacked",
		Chart: plotpage.BuildBarChart(cOpts, hfNames, []plotpage.BarSeries{
			{Name: "Main", Data: plotpage.Ints(mainPhases), Stack: "phases"},
			{Name: "Side", Data: plotpage.Ints(sidePhases), Stack: "phases"},
			{Name: "Minor", Data: plotpage.Ints(minorPhases), Stack: "phases"},
		}, "Phases", chartLabelRotate),
	})

	classes := a.ClassMatrix()

	var pie []plotpage.PieSlice

	for j, class := range classes.Columns {
		total := 0
		for i := range classes.Rows {
			total += classes.Cells[i][j]
		}

		pie = append(pie, plotpage.PieSlice{Name: class, Value: total})
	}

	page.Add(plotpage.Section{
		Title: "Node classes",
		Chart: plotpage.BuildPieChart(cOpts, "Nodes", pie),
		Hint: plotpage.Hint{
			Title: "Classes",
			Items: []string{"See the classes table of the text or workbook report for descriptions."},
		},
	})

	return page
}
