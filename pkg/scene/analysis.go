package scene

import (
	"cmp"
	"slices"

	"github.com/Sumatoshi-tech/depotstat/pkg/mathutil"
	"github.com/Sumatoshi-tech/depotstat/pkg/tally"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

// Analysis is the folded result of a scene scan.
type Analysis struct {
	Roots     []string
	GroupBy   GroupBy
	Threshold int
	// Scenes are ordered by line count descending; equal counts keep scan order.
	Scenes   []Record
	Failures []walker.Failure
	// Missing lists scan roots that did not exist.
	Missing []string
	Tally   tally.Result
}

// Summary is the whole-scan rollup.
type Summary struct {
	Scenes           int     `json:"scenes" yaml:"scenes"`
	Lines            int     `json:"lines" yaml:"lines"`
	Sections         int     `json:"sections" yaml:"sections"`
	ChoiceSections   int     `json:"choice_sections" yaml:"choice_sections"`
	NormalSections   int     `json:"normal_sections" yaml:"normal_sections"`
	WithDialogue     int     `json:"with_dialogue" yaml:"with_dialogue"`
	WithoutDialogue  int     `json:"without_dialogue" yaml:"without_dialogue"`
	AvgLinesPerScene float64 `json:"avg_lines_per_scene" yaml:"avg_lines_per_scene"`
	ChoiceRatio      float64 `json:"choice_ratio" yaml:"choice_ratio"`
	Groups           int     `json:"groups" yaml:"groups"`
	Failures         int     `json:"failures" yaml:"failures"`

	LargestScene      string `json:"largest_scene,omitempty" yaml:"largest_scene,omitempty"`
	LargestLines      int    `json:"largest_lines" yaml:"largest_lines"`
	MostSpeakersScene string `json:"most_speakers_scene,omitempty" yaml:"most_speakers_scene,omitempty"`
	MostSpeakers      int    `json:"most_speakers" yaml:"most_speakers"`
}

// GroupStats is one row of the per-group table.
type GroupStats struct {
	Group               string  `json:"group" yaml:"group"`
	TaskType            string  `json:"task_type" yaml:"task_type"`
	Scenes              int     `json:"scenes" yaml:"scenes"`
	Sections            int     `json:"sections" yaml:"sections"`
	ChoiceSections      int     `json:"choice_sections" yaml:"choice_sections"`
	NormalSections      int     `json:"normal_sections" yaml:"normal_sections"`
	Lines               int     `json:"lines" yaml:"lines"`
	AvgLinesPerScene    float64 `json:"avg_lines_per_scene" yaml:"avg_lines_per_scene"`
	AvgSectionsPerScene float64 `json:"avg_sections_per_scene" yaml:"avg_sections_per_scene"`
	ChoiceRatio         float64 `json:"choice_ratio" yaml:"choice_ratio"`
}

// TaskTypeStats is the main versus side/minor rollup.
type TaskTypeStats struct {
	TaskType       string  `json:"task_type" yaml:"task_type"`
	Groups         int     `json:"groups" yaml:"groups"`
	Scenes         int     `json:"scenes" yaml:"scenes"`
	Sections       int     `json:"sections" yaml:"sections"`
	ChoiceSections int     `json:"choice_sections" yaml:"choice_sections"`
	Lines          int     `json:"lines" yaml:"lines"`
	ChoiceRatio    float64 `json:"choice_ratio" yaml:"choice_ratio"`
}

// NewAnalysis groups records under g and folds them. Record.Group is
// overwritten with the computed key. records is not modified.
func NewAnalysis(records []Record, failures []walker.Failure, g GroupBy, threshold int) *Analysis {
	if g == "" {
		g = GroupByCategory
	}

	t := tally.New(nil, threshold)
	scenes := make([]Record, len(records))

	for i, rec := range records {
		rec.Group = GroupKey(rec, g)
		scenes[i] = rec

		t.Add(rec.ToTally())
	}

	slices.SortStableFunc(scenes, func(a, b Record) int {
		return cmp.Compare(b.Lines, a.Lines)
	})

	res := t.Result()

	return &Analysis{
		GroupBy:   g,
		Threshold: res.Threshold,
		Scenes:    scenes,
		Failures:  slices.Clone(failures),
		Tally:     res,
	}
}

// Summary computes the whole-scan rollup. Empty scans yield zero ratios.
func (a *Analysis) Summary() Summary {
	totals := a.Tally.Totals

	s := Summary{
		Scenes:         totals[CounterScenes],
		Lines:          totals[CounterLines],
		Sections:       totals[CounterSections],
		ChoiceSections: totals[CounterChoiceSections],
		NormalSections: totals[CounterNormalSections],
		WithDialogue:   totals[CounterWithDialogue],
		Groups:         len(a.Tally.Groups),
		Failures:       len(a.Failures),
	}

	s.WithoutDialogue = s.Scenes - s.WithDialogue
	s.AvgLinesPerScene = mathutil.Ratio(s.Lines, s.Scenes)
	s.ChoiceRatio = mathutil.Ratio(s.ChoiceSections, s.Sections)

	if len(a.Scenes) > 0 {
		s.LargestScene = a.Scenes[0].Name
		s.LargestLines = a.Scenes[0].Lines
	}

	for _, rec := range a.Scenes {
		if len(rec.Speakers) > s.MostSpeakers {
			s.MostSpeakers = len(rec.Speakers)
			s.MostSpeakersScene = rec.Name
		}
	}

	return s
}

// Groups returns per-group statistics ordered by line count descending.
// Equal line counts keep the aggregation order.
func (a *Analysis) Groups() []GroupStats {
	out := make([]GroupStats, 0, len(a.Tally.Groups))

	for _, g := range a.Tally.Groups {
		scenes := g.Sum(CounterScenes)
		sections := g.Sum(CounterSections)
		choice := g.Sum(CounterChoiceSections)
		lines := g.Sum(CounterLines)

		out = append(out, GroupStats{
			Group:               g.Key,
			TaskType:            TaskType(g.Key),
			Scenes:              scenes,
			Sections:            sections,
			ChoiceSections:      choice,
			NormalSections:      g.Sum(CounterNormalSections),
			Lines:               lines,
			AvgLinesPerScene:    mathutil.Ratio(lines, scenes),
			AvgSectionsPerScene: mathutil.Ratio(sections, scenes),
			ChoiceRatio:         mathutil.Ratio(choice, sections),
		})
	}

	slices.SortStableFunc(out, func(x, y GroupStats) int {
		return cmp.Compare(y.Lines, x.Lines)
	})

	return out
}

// TaskTypes rolls groups up into main and side/minor. Main comes first;
// task types with no groups are omitted.
func (a *Analysis) TaskTypes() []TaskTypeStats {
	byType := map[string]*TaskTypeStats{
		TaskMain:      {TaskType: TaskMain},
		TaskSideMinor: {TaskType: TaskSideMinor},
	}

	for _, g := range a.Groups() {
		tt := byType[g.TaskType]
		tt.Groups++
		tt.Scenes += g.Scenes
		tt.Sections += g.Sections
		tt.ChoiceSections += g.ChoiceSections
		tt.Lines += g.Lines
	}

	var out []TaskTypeStats

	for _, key := range []string{TaskMain, TaskSideMinor} {
		tt := byType[key]
		if tt.Groups == 0 {
			continue
		}

		tt.ChoiceRatio = mathutil.Ratio(tt.ChoiceSections, tt.Sections)
		out = append(out, *tt)
	}

	return out
}

// Speakers returns every speaker with the number of scenes it appears in.
func (a *Analysis) Speakers() []tally.LabelCount {
	return a.Tally.Labels
}

// FrequentSpeakers returns the speakers appearing in at least Threshold scenes.
func (a *Analysis) FrequentSpeakers() []tally.LabelCount {
	return a.Tally.HighFrequency
}

// TopScenes returns at most n scenes with the most lines. n <= 0 returns all.
func (a *Analysis) TopScenes(n int) []Record {
	if n <= 0 || n >= len(a.Scenes) {
		return a.Scenes
	}

	return a.Scenes[:n]
}

// Snapshot captures the inputs of the analysis so it can be rebuilt later.
func (a *Analysis) Snapshot() Snapshot {
	return Snapshot{
		Version:   SnapshotVersion,
		Roots:     a.Roots,
		GroupBy:   a.GroupBy,
		Threshold: a.Threshold,
		Scenes:    a.Scenes,
		Failures:  a.Failures,
		Missing:   a.Missing,
	}
}
