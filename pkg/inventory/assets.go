package inventory

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

// DefaultTop is the default length of the asset ranking.
const DefaultTop = 20

// AssetType groups file extensions under one name.
type AssetType struct {
	Name       string   `json:"name" yaml:"name" mapstructure:"name"`
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`
}

// DefaultAssetTypes returns the core asset groups of a quest folder.
func DefaultAssetTypes() []AssetType {
	return []AssetType{
		{Name: "Quest", Extensions: []string{".quest", ".questphase", ".gamedef"}},
		{Name: "Scene", Extensions: []string{".scene", ".scenesolution", ".scnlocjson"}},
		{Name: "Entity", Extensions: []string{".ent", ".app", ".rig"}},
		{Name: "World", Extensions: []string{".prefab", ".streamingsector", ".world"}},
		{Name: "AI", Extensions: []string{".community", ".workspot"}},
		{Name: "Config", Extensions: []string{".json", ".tweak", ".script"}},
	}
}

// AssetCount is the asset inventory of one quest folder.
type AssetCount struct {
	Folder     QuestFolder    `json:"folder" yaml:"folder"`
	Types      map[string]int `json:"types" yaml:"types"`
	Extensions map[string]int `json:"extensions" yaml:"extensions"`
	Total      int            `json:"total" yaml:"total"`
}

// AssetReport is the outcome of CountAssets.
type AssetReport struct {
	Types   []AssetType  `json:"types" yaml:"types"`
	Folders []AssetCount `json:"folders" yaml:"folders"`
	Total   int          `json:"total" yaml:"total"`
	Missing []string     `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Ranking returns at most top folders ordered by total descending; equal
// totals keep discovery order. top <= 0 returns every folder.
func (r *AssetReport) Ranking(top int) []AssetCount {
	ranked := slices.Clone(r.Folders)

	slices.SortStableFunc(ranked, func(a, b AssetCount) int {
		return cmp.Compare(b.Total, a.Total)
	})

	if top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}

	return ranked
}

// TypeTotal sums one asset type over every folder.
func (r *AssetReport) TypeTotal(name string) int {
	n := 0

	for _, f := range r.Folders {
		n += f.Types[name]
	}

	return n
}

// CountAssets counts the files of each asset type under every folder. Nil
// types select DefaultAssetTypes. Extensions listed under several types
// count toward the first.
func CountAssets(ctx context.Context, folders []QuestFolder, types []AssetType) (*AssetReport, error) {
	if types == nil {
		types = DefaultAssetTypes()
	}

	var exts []string

	for _, t := range types {
		for _, e := range t.Extensions {
			if !slices.Contains(exts, e) {
				exts = append(exts, e)
			}
		}
	}

	rep := &AssetReport{Types: types}

	for _, f := range folders {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("count assets: %w", err)
		}

		counts, err := walker.CountBySuffix(f.Path, exts)
		if err != nil {
			slog.WarnContext(ctx, "unreadable quest folder, skipping", "path", f.Path, "error", err)

			continue
		}

		row := AssetCount{Folder: f, Types: make(map[string]int, len(types)), Extensions: counts}
		claimed := make(map[string]bool, len(exts))

		for _, t := range types {
			for _, e := range t.Extensions {
				if claimed[e] {
					continue
				}

				claimed[e] = true
				row.Types[t.Name] += counts[e]
			}

			row.Total += row.Types[t.Name]
		}

		slog.DebugContext(ctx, "quest assets counted", "quest", f.Label(), "total", row.Total)

		rep.Folders = append(rep.Folders, row)
		rep.Total += row.Total
	}

	return rep, nil
}
