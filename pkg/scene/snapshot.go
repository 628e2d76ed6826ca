package scene

import (
	"slices"

	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

// SnapshotVersion is the current snapshot layout version.
const SnapshotVersion = 1

// Snapshot is the persisted form of a scan: the parsed records plus the
// inputs that failed. Rebuilding from a snapshot does not touch the tree.
type Snapshot struct {
	Version   int              `json:"version"`
	Roots     []string         `json:"roots,omitempty"`
	GroupBy   GroupBy          `json:"group_by"`
	Threshold int              `json:"threshold"`
	Scenes    []Record         `json:"scenes"`
	Failures  []walker.Failure `json:"failures,omitempty"`
	Missing   []string         `json:"missing,omitempty"`
}

// Analysis rebuilds the analysis. g overrides the stored grouping when
// non-empty and threshold overrides the stored speaker threshold when > 0.
func (s Snapshot) Analysis(g GroupBy, threshold int) *Analysis {
	if g == "" {
		g = s.GroupBy
	}

	if threshold <= 0 {
		threshold = s.Threshold
	}

	a := NewAnalysis(s.Scenes, s.Failures, g, threshold)
	a.Roots = slices.Clone(s.Roots)
	a.Missing = slices.Clone(s.Missing)

	return a
}
