// Package tally folds per-file records into grouped sums and label
// frequency tables.
//
// Every ordered output is deterministic: rows are sorted by descending
// frequency and ties keep the order in which the key was first seen.
package tally

import "slices"

// DefaultThreshold is the minimum label frequency for a label to be
// reported as high frequency.
const DefaultThreshold = 10

// UnknownGroup is used for records whose group key is empty.
const UnknownGroup = "unknown"

// Record is the flat summary of one input file.
type Record struct {
	// Source identifies where the record came from (usually a file path).
	Source string
	// Group is the default grouping key used when no KeyFunc is given.
	Group string
	// Counters are summed per group. Missing counters count as zero.
	Counters map[string]int
	// Labels are counted once per occurrence.
	Labels []string
}

// KeyFunc maps a record to its group key.
type KeyFunc func(Record) string

// GroupSum is one row of the grouped-sum table.
type GroupSum struct {
	Key     string         `json:"key" yaml:"key"`
	Records int            `json:"records" yaml:"records"`
	Sums    map[string]int `json:"sums" yaml:"sums"`
}

// Sum returns the named counter sum, zero when absent.
func (g GroupSum) Sum(name string) int {
	return g.Sums[name]
}

// LabelCount is one row of the label frequency table.
type LabelCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Result is the immutable outcome of a fold.
type Result struct {
	Threshold     int                 `json:"threshold" yaml:"threshold"`
	Records       int                 `json:"records" yaml:"records"`
	Totals        map[string]int      `json:"totals" yaml:"totals"`
	Groups        []GroupSum          `json:"groups" yaml:"groups"`
	Labels        []LabelCount        `json:"labels" yaml:"labels"`
	HighFrequency []LabelCount        `json:"high_frequency" yaml:"high_frequency"`
	LabelGroups   map[string][]string `json:"label_groups" yaml:"label_groups"`
}

// Group returns the group with the given key.
func (r Result) Group(key string) (GroupSum, bool) {
	for _, g := range r.Groups {
		if g.Key == key {
			return g, true
		}
	}

	return GroupSum{}, false
}

// LabelCount returns the frequency of label, zero when never seen.
func (r Result) LabelCount(label string) int {
	for _, l := range r.Labels {
		if l.Label == label {
			return l.Count
		}
	}

	return 0
}

// Tally accumulates records one at a time.
type Tally struct {
	key       KeyFunc
	threshold int

	records     int
	totals      map[string]int
	groupCounts *Counter[string]
	groupSums   map[string]map[string]int
	counterKeys []string
	labels      *Counter[string]
	labelGroups map[string][]string
}

// New creates a Tally. A nil key groups by Record.Group. A threshold <= 0
// selects DefaultThreshold.
func New(key KeyFunc, threshold int) *Tally {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	return &Tally{
		key:         key,
		threshold:   threshold,
		totals:      make(map[string]int),
		groupCounts: NewCounter[string](),
		groupSums:   make(map[string]map[string]int),
		labels:      NewCounter[string](),
		labelGroups: make(map[string][]string),
	}
}

// Add folds one record into the tally.
func (t *Tally) Add(rec Record) {
	group := rec.Group
	if t.key != nil {
		group = t.key(rec)
	}

	if group == "" {
		group = UnknownGroup
	}

	t.records++
	t.groupCounts.Inc(group)

	sums, ok := t.groupSums[group]
	if !ok {
		sums = make(map[string]int)
		t.groupSums[group] = sums
	}

	for name, n := range rec.Counters {
		if _, seen := t.totals[name]; !seen {
			t.counterKeys = append(t.counterKeys, name)
		}

		sums[name] += n
		t.totals[name] += n
	}

	for _, label := range rec.Labels {
		if label == "" {
			continue
		}

		t.labels.Inc(label)

		if !slices.Contains(t.labelGroups[label], group) {
			t.labelGroups[label] = append(t.labelGroups[label], group)
		}
	}
}

// Records returns the number of records folded so far.
func (t *Tally) Records() int {
	return t.records
}

// Result snapshots the tally.
func (t *Tally) Result() Result {
	res := Result{
		Threshold:   t.threshold,
		Records:     t.records,
		Totals:      make(map[string]int, len(t.totals)),
		LabelGroups: make(map[string][]string),
	}

	for name, n := range t.totals {
		res.Totals[name] = n
	}

	for _, e := range t.groupCounts.MostCommon() {
		sums := make(map[string]int, len(t.counterKeys))

		// Every group reports every counter so tables line up.
		for _, name := range t.counterKeys {
			sums[name] = t.groupSums[e.Key][name]
		}

		res.Groups = append(res.Groups, GroupSum{Key: e.Key, Records: e.Count, Sums: sums})
	}

	for _, e := range t.labels.MostCommon() {
		res.Labels = append(res.Labels, LabelCount{Label: e.Key, Count: e.Count})
	}

	for _, e := range t.labels.AtLeast(t.threshold) {
		res.HighFrequency = append(res.HighFrequency, LabelCount{Label: e.Key, Count: e.Count})
		res.LabelGroups[e.Key] = slices.Clone(t.labelGroups[e.Key])
	}

	return res
}

// Aggregate folds records in one pass. It has no side effects.
func Aggregate(records []Record, key KeyFunc, threshold int) Result {
	t := New(key, threshold)

	for _, rec := range records {
		t.Add(rec)
	}

	return t.Result()
}
