package tally_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depotstat/pkg/tally"
)

func lineRecord(group string, lines int, labels ...string) tally.Record {
	return tally.Record{
		Source:   group,
		Group:    group,
		Counters: map[string]int{"lines": lines, "scenes": 1},
		Labels:   labels,
	}
}

// countLabels counts the literal non-empty occurrences of label.
func countLabels(records []tally.Record, label string) int {
	if label == "" {
		return 0
	}

	n := 0

	for _, rec := range records {
		for _, l := range rec.Labels {
			if l == label {
				n++
			}
		}
	}

	return n
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	res := tally.Aggregate(nil, nil, 0)

	assert.Equal(t, 0, res.Records)
	assert.Empty(t, res.Totals)
	assert.Empty(t, res.Groups)
	assert.Empty(t, res.Labels)
	assert.Empty(t, res.HighFrequency)
	assert.Empty(t, res.LabelGroups)
	assert.Equal(t, tally.DefaultThreshold, res.Threshold)
}

func TestAggregate_TotalsEqualPerRecordSum(t *testing.T) {
	t.Parallel()

	records := []tally.Record{
		lineRecord("q001", 5),
		lineRecord("sq010", 0),
		lineRecord("q001", 12),
	}

	res := tally.Aggregate(records, nil, 0)

	assert.Equal(t, 3, res.Records)
	assert.Equal(t, 17, res.Totals["lines"])
	assert.Equal(t, 3, res.Totals["scenes"])

	groupLines := 0
	for _, g := range res.Groups {
		groupLines += g.Sum("lines")
	}

	assert.Equal(t, res.Totals["lines"], groupLines)
}

func TestAggregate_GroupOrder(t *testing.T) {
	t.Parallel()

	records := []tally.Record{
		lineRecord("b", 1),
		lineRecord("a", 1),
		lineRecord("c", 1),
		lineRecord("a", 1),
		lineRecord("c", 1),
	}

	res := tally.Aggregate(records, nil, 0)

	keys := make([]string, 0, len(res.Groups))
	for _, g := range res.Groups {
		keys = append(keys, g.Key)
	}

	// a and c tie at two records; a was seen first.
	assert.Equal(t, []string{"a", "c", "b"}, keys)
}

func TestAggregate_KeyFunc(t *testing.T) {
	t.Parallel()

	records := []tally.Record{
		{Source: "main_quests/q001/a.scnlocjson", Counters: map[string]int{"lines": 3}},
		{Source: "side_quests/sq001/b.scnlocjson", Counters: map[string]int{"lines": 4}},
		{Source: "main_quests/q002/c.scnlocjson", Counters: map[string]int{"lines": 5}},
	}

	byRoot := func(r tally.Record) string {
		for i, c := range r.Source {
			if c == '/' {
				return r.Source[:i]
			}
		}

		return ""
	}

	res := tally.Aggregate(records, byRoot, 0)

	main, ok := res.Group("main_quests")
	require.True(t, ok)
	assert.Equal(t, 2, main.Records)
	assert.Equal(t, 8, main.Sum("lines"))

	side, ok := res.Group("side_quests")
	require.True(t, ok)
	assert.Equal(t, 4, side.Sum("lines"))
}

func TestAggregate_MissingFieldsContributeZero(t *testing.T) {
	t.Parallel()

	records := []tally.Record{
		{},
		{Group: "x", Counters: map[string]int{"lines": 2}},
		{Group: "x"},
	}

	res := tally.Aggregate(records, nil, 0)

	assert.Equal(t, 3, res.Records)
	assert.Equal(t, 2, res.Totals["lines"])

	unknown, ok := res.Group(tally.UnknownGroup)
	require.True(t, ok)
	assert.Equal(t, 1, unknown.Records)
	assert.Equal(t, 0, unknown.Sum("lines"))

	x, ok := res.Group("x")
	require.True(t, ok)
	assert.Equal(t, 2, x.Records)
	assert.Equal(t, 2, x.Sum("lines"))
}

func TestAggregate_HighFrequencyThreshold(t *testing.T) {
	t.Parallel()

	var records []tally.Record

	for i := range 10 {
		records = append(records, lineRecord(fmt.Sprintf("phase%d", i%3), 1, "Start"))
	}

	for range 9 {
		records = append(records, lineRecord("phase9", 1, "Almost"))
	}

	records = append(records, lineRecord("phase1", 1, "Rare", "Start", "Start"))

	res := tally.Aggregate(records, nil, 10)

	require.Len(t, res.HighFrequency, 1)
	assert.Equal(t, tally.LabelCount{Label: "Start", Count: 12}, res.HighFrequency[0])
	assert.Equal(t, []string{"phase0", "phase1", "phase2"}, res.LabelGroups["Start"])
	assert.NotContains(t, res.LabelGroups, "Almost")
	assert.Equal(t, 9, res.LabelCount("Almost"))
}

func TestAggregate_HighFrequencyExact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		count     int
		threshold int
		want      bool
	}{
		{name: "below", count: 9, threshold: 10, want: false},
		{name: "equal", count: 10, threshold: 10, want: true},
		{name: "above", count: 11, threshold: 10, want: true},
		{name: "custom", count: 3, threshold: 3, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			labels := make([]string, tt.count)
			for i := range labels {
				labels[i] = "node"
			}

			res := tally.Aggregate([]tally.Record{{Group: "g", Labels: labels}}, nil, tt.threshold)

			if tt.want {
				require.Len(t, res.HighFrequency, 1)
				assert.Equal(t, "node", res.HighFrequency[0].Label)
			} else {
				assert.Empty(t, res.HighFrequency)
			}
		})
	}
}

func TestAggregate_LabelOrderStable(t *testing.T) {
	t.Parallel()

	records := []tally.Record{
		{Group: "g", Labels: []string{"z", "y", "x", "y", "x"}},
	}

	res := tally.Aggregate(records, nil, 0)

	assert.Equal(t, []tally.LabelCount{
		{Label: "y", Count: 2},
		{Label: "x", Count: 2},
		{Label: "z", Count: 1},
	}, res.Labels)
}

func TestAggregate_LabelRoundTrip(t *testing.T) {
	t.Parallel()

	records := []tally.Record{
		{Group: "a", Labels: []string{"Hub", "Start", "Hub", ""}},
		{Group: "b", Labels: []string{"Hub"}},
		{Group: "c"},
	}

	res := tally.Aggregate(records, nil, 0)

	for _, label := range []string{"Hub", "Start", "Missing", ""} {
		assert.Equal(t, countLabels(records, label), res.LabelCount(label), label)
	}
}

func TestAggregate_IsolationOfSkippedRecords(t *testing.T) {
	t.Parallel()

	good := []tally.Record{lineRecord("a", 5), lineRecord("a", 12)}
	withGap := []tally.Record{lineRecord("a", 5), lineRecord("b", 0), lineRecord("a", 12)}

	base := tally.Aggregate(good, nil, 0)
	mixed := tally.Aggregate(withGap, nil, 0)

	a1, _ := base.Group("a")
	a2, _ := mixed.Group("a")
	assert.Equal(t, a1, a2)
}

func TestTally_Incremental(t *testing.T) {
	t.Parallel()

	tl := tally.New(nil, 2)
	tl.Add(lineRecord("a", 1, "n"))
	tl.Add(lineRecord("b", 2, "n"))

	assert.Equal(t, 2, tl.Records())

	res := tl.Result()
	require.Len(t, res.HighFrequency, 1)
	assert.Equal(t, []string{"a", "b"}, res.LabelGroups["n"])

	// Results are snapshots.
	tl.Add(lineRecord("c", 3))
	assert.Equal(t, 2, res.Records)
	assert.Equal(t, 3, tl.Result().Records)
}

func TestAggregate_GroupsCarryEveryCounter(t *testing.T) {
	t.Parallel()

	records := []tally.Record{
		{Group: "a", Counters: map[string]int{"lines": 1}},
		{Group: "b", Counters: map[string]int{"choices": 2}},
	}

	res := tally.Aggregate(records, nil, 0)

	for _, g := range res.Groups {
		assert.Contains(t, g.Sums, "lines")
		assert.Contains(t, g.Sums, "choices")
	}
}
