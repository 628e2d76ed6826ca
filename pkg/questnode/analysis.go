package questnode

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/depotstat/pkg/tally"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

// DefaultTargetPrefixes select main, side and minor quest phases.
var DefaultTargetPrefixes = []string{
	`base\quest\main_quests`,
	`base\quest\side_quests`,
	`base\quest\minor_quests`,
}

// Quest kinds counted per high-frequency node.
const (
	kindMain  = "main_quests"
	kindSide  = "side_quests"
	kindMinor = "minor_quests"

	counterNodes = "nodes"
)

// DefaultSeparator joins the per-node fields of a phase summary.
const DefaultSeparator = " | "

// PhaseSummary is one row of a phase summary table.
type PhaseSummary struct {
	Phase   string `json:"phase" yaml:"phase"`
	IDs     string `json:"ids" yaml:"ids"`
	Names   string `json:"names" yaml:"names"`
	Classes string `json:"classes" yaml:"classes"`
	Paths   string `json:"paths" yaml:"paths"`
	Nodes   int    `json:"nodes" yaml:"nodes"`
}

// NodeCount is one row of the node-name frequency table.
type NodeCount struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// HighFrequencyNode describes where a frequent node name appears.
type HighFrequencyNode struct {
	Name        string `json:"name" yaml:"name"`
	Count       int    `json:"count" yaml:"count"`
	Phases      int    `json:"phases" yaml:"phases"`
	MainPhases  int    `json:"main_phases" yaml:"main_phases"`
	SidePhases  int    `json:"side_phases" yaml:"side_phases"`
	MinorPhases int    `json:"minor_phases" yaml:"minor_phases"`
}

// Matrix is a dense count table.
type Matrix struct {
	Rows    []string `json:"rows" yaml:"rows"`
	Columns []string `json:"columns" yaml:"columns"`
	Cells   [][]int  `json:"cells" yaml:"cells"`
}

// Summary is the rollup printed after a run.
type Summary struct {
	Files         int `json:"files" yaml:"files"`
	Phases        int `json:"phases" yaml:"phases"`
	TargetPhases  int `json:"target_phases" yaml:"target_phases"`
	Nodes         int `json:"nodes" yaml:"nodes"`
	DistinctNames int `json:"distinct_names" yaml:"distinct_names"`
	Classes       int `json:"classes" yaml:"classes"`
	HighFrequency int `json:"high_frequency" yaml:"high_frequency"`
	Failures      int `json:"failures" yaml:"failures"`
}

// Analysis accumulates phases from any number of dumps. Phases that repeat
// across dumps are merged: their nodes are appended in load order.
type Analysis struct {
	Files    []string
	Failures []walker.Failure
	Missing  []string

	prefixes  []string
	threshold int
	sep       string

	order   []string
	phases  map[string][]Node
	target  map[string]bool
	names   *tally.Tally
	byPhase map[string]*tally.Counter[string]
	classes map[string]*tally.Counter[string]
}

// NewAnalysis returns an empty analysis. Nil prefixes select
// DefaultTargetPrefixes; a threshold <= 0 selects the tally default.
func NewAnalysis(prefixes []string, threshold int) *Analysis {
	if prefixes == nil {
		prefixes = DefaultTargetPrefixes
	}

	names := tally.New(nil, threshold)

	return &Analysis{
		prefixes:  normalizeAll(prefixes),
		threshold: names.Result().Threshold,
		sep:       DefaultSeparator,
		phases:    make(map[string][]Node),
		target:    make(map[string]bool),
		names:     names,
		byPhase:   make(map[string]*tally.Counter[string]),
		classes:   make(map[string]*tally.Counter[string]),
	}
}

// SetSeparator changes the summary field separator. Empty restores
// DefaultSeparator.
func (a *Analysis) SetSeparator(sep string) {
	if sep == "" {
		sep = DefaultSeparator
	}

	a.sep = sep
}

// Threshold returns the high-frequency threshold in effect.
func (a *Analysis) Threshold() int {
	return a.threshold
}

// IsTarget reports whether phase starts with one of the target prefixes.
// Either path separator matches.
func (a *Analysis) IsTarget(phase string) bool {
	p := normalize(phase)

	for _, prefix := range a.prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}

	return false
}

// Add folds the phases of one dump.
func (a *Analysis) Add(source string, phases []Phase) {
	a.Files = append(a.Files, source)

	for _, ph := range phases {
		if _, seen := a.phases[ph.Path]; !seen {
			a.order = append(a.order, ph.Path)
			a.target[ph.Path] = a.IsTarget(ph.Path)
			a.classes[ph.Path] = tally.NewCounter[string]()
		}

		a.phases[ph.Path] = append(a.phases[ph.Path], ph.Nodes...)

		for _, n := range ph.Nodes {
			if n.Class != "" {
				a.classes[ph.Path].Inc(n.Class)
			}
		}

		if !a.target[ph.Path] {
			continue
		}

		counter, ok := a.byPhase[ph.Path]
		if !ok {
			counter = tally.NewCounter[string]()
			a.byPhase[ph.Path] = counter
		}

		labels := make([]string, 0, len(ph.Nodes))

		for _, n := range ph.Nodes {
			if n.Name != "" {
				labels = append(labels, n.Name)
				counter.Inc(n.Name)
			}
		}

		a.names.Add(tally.Record{
			Source:   source,
			Group:    ph.Path,
			Counters: map[string]int{counterNodes: len(ph.Nodes)},
			Labels:   labels,
		})
	}
}

// Summary returns the run rollup.
func (a *Analysis) Summary() Summary {
	res := a.names.Result()

	s := Summary{
		Files:         len(a.Files),
		Phases:        len(a.order),
		TargetPhases:  len(a.byPhase),
		DistinctNames: len(res.Labels),
		Classes:       len(a.classNames()),
		HighFrequency: len(res.HighFrequency),
		Failures:      len(a.Failures),
	}

	for _, nodes := range a.phases {
		s.Nodes += len(nodes)
	}

	return s
}

// AllPhases summarises every phase in first-seen order.
func (a *Analysis) AllPhases() []PhaseSummary {
	out := make([]PhaseSummary, 0, len(a.order))

	for _, phase := range a.order {
		out = append(out, summarize(phase, a.phases[phase], a.sep))
	}

	return out
}

// TargetPhases summarises the phases under the target prefixes in
// first-seen order.
func (a *Analysis) TargetPhases() []PhaseSummary {
	var out []PhaseSummary

	for _, phase := range a.order {
		if a.target[phase] {
			out = append(out, summarize(phase, a.phases[phase], a.sep))
		}
	}

	return out
}

// NodeCounts ranks node names from target phases by frequency. Equal counts
// keep first-seen order.
func (a *Analysis) NodeCounts() []NodeCount {
	labels := a.names.Result().Labels
	out := make([]NodeCount, 0, len(labels))

	for i, l := range labels {
		out = append(out, NodeCount{Rank: i + 1, Name: l.Label, Count: l.Count})
	}

	return out
}

// HighFrequency returns the node names seen at least Threshold times in
// target phases, sorted by name.
func (a *Analysis) HighFrequency() []HighFrequencyNode {
	res := a.names.Result()
	out := make([]HighFrequencyNode, 0, len(res.HighFrequency))

	for _, l := range res.HighFrequency {
		phases := res.LabelGroups[l.Label]

		out = append(out, HighFrequencyNode{
			Name:        l.Label,
			Count:       l.Count,
			Phases:      len(phases),
			MainPhases:  countContaining(phases, kindMain),
			SidePhases:  countContaining(phases, kindSide),
			MinorPhases: countContaining(phases, kindMinor),
		})
	}

	slices.SortFunc(out, func(x, y HighFrequencyNode) int {
		return cmp.Compare(x.Name, y.Name)
	})

	return out
}

// NodeMatrix counts each high-frequency node name per target phase. Rows
// are sorted; columns follow frequency order.
func (a *Analysis) NodeMatrix() Matrix {
	res := a.names.Result()

	m := Matrix{Rows: slices.Sorted(maps.Keys(a.byPhase))}

	for _, l := range res.HighFrequency {
		m.Columns = append(m.Columns, l.Label)
	}

	for _, phase := range m.Rows {
		m.Cells = append(m.Cells, countsOf(a.byPhase[phase], m.Columns))
	}

	return m
}

// ClassMatrix counts node classes per phase over every phase. Rows and
// columns are sorted.
func (a *Analysis) ClassMatrix() Matrix {
	m := Matrix{
		Rows:    slices.Sorted(maps.Keys(a.classes)),
		Columns: a.classNames(),
	}

	for _, phase := range m.Rows {
		m.Cells = append(m.Cells, countsOf(a.classes[phase], m.Columns))
	}

	return m
}

// ClassTable lists every known class description followed by the classes
// seen in the dumps that have no description.
func (a *Analysis) ClassTable() []ClassDescription {
	out := Descriptions()

	for _, class := range a.classNames() {
		if !Known(class) {
			out = append(out, ClassDescription{Class: class, Description: NoMatch})
		}
	}

	return out
}

// ClassHeader labels a class matrix column with the class description.
func ClassHeader(class string) string {
	return fmt.Sprintf("%s (%s)", class, Describe(class))
}

func (a *Analysis) classNames() []string {
	all := tally.NewCounter[string]()

	for _, c := range a.classes {
		all.Merge(c)
	}

	names := all.Keys()
	slices.Sort(names)

	return names
}

func summarize(phase string, nodes []Node, sep string) PhaseSummary {
	ids := make([]string, len(nodes))
	names := make([]string, len(nodes))
	classes := make([]string, len(nodes))
	paths := make([]string, len(nodes))

	for i, n := range nodes {
		ids[i] = n.ID
		names[i] = n.Name
		classes[i] = n.Class
		paths[i] = n.Path
	}

	return PhaseSummary{
		Phase:   phase,
		IDs:     strings.Join(ids, sep),
		Names:   strings.Join(names, sep),
		Classes: strings.Join(classes, sep),
		Paths:   strings.Join(paths, sep),
		Nodes:   len(nodes),
	}
}

func countsOf(c *tally.Counter[string], keys []string) []int {
	row := make([]int, len(keys))

	for i, k := range keys {
		row[i] = c.Get(k)
	}

	return row
}

func countContaining(phases []string, kind string) int {
	n := 0

	for _, p := range phases {
		if strings.Contains(p, kind) {
			n++
		}
	}

	return n
}

func normalize(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func normalizeAll(ps []string) []string {
	out := make([]string, len(ps))

	for i, p := range ps {
		out[i] = normalize(p)
	}

	return out
}
