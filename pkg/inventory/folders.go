// Package inventory counts quest folder contents, asset types and animation
// files under an extracted depot.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Sumatoshi-tech/depotstat/pkg/tally"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

// DefaultQuestSuffixes are the quest file kinds counted by CountQuestFiles.
var DefaultQuestSuffixes = []string{".questphase", ".scenesolution"}

// Category is a family of quest folders. Path is relative to the quest root
// unless absolute; only subfolders starting with one of Prefixes are quests
// (every subfolder when Prefixes is empty).
type Category struct {
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Path     string   `json:"path" yaml:"path" mapstructure:"path"`
	Prefixes []string `json:"prefixes" yaml:"prefixes" mapstructure:"prefixes"`
}

// DefaultCategories returns the standard quest layout under base/quest.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Prologue", Path: "main_quests/prologue", Prefixes: []string{"q"}},
		{Name: "Part1", Path: "main_quests/part1", Prefixes: []string{"q"}},
		{Name: "Epilogue", Path: "main_quests/epilogue", Prefixes: []string{"ep"}},
		{Name: "SideQuest", Path: "side_quests", Prefixes: []string{"sq"}},
		{Name: "MinorQuest", Path: "minor_quests", Prefixes: []string{"mq"}},
	}
}

// QuestFolder is one discovered quest directory.
type QuestFolder struct {
	Category string `json:"category" yaml:"category"`
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path" yaml:"path"`
}

// Label returns "<category>/<name>".
func (f QuestFolder) Label() string {
	return f.Category + "/" + f.Name
}

// Discover lists the quest folders of every category in category order.
// Missing category roots are logged and returned separately.
func Discover(ctx context.Context, root string, cats []Category) ([]QuestFolder, []string, error) {
	var (
		folders []QuestFolder
		missing []string
	)

	for _, c := range cats {
		dir := c.Path
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, filepath.FromSlash(dir))
		}

		subdirs, err := walker.Subdirs(dir, c.Prefixes)
		if err != nil {
			if !errors.Is(err, walker.ErrRootNotFound) {
				return nil, nil, err
			}

			slog.WarnContext(ctx, "quest category missing, skipping", "category", c.Name, "path", dir, "error", err)

			missing = append(missing, dir)

			continue
		}

		for _, d := range subdirs {
			folders = append(folders, QuestFolder{Category: c.Name, Name: d.Name, Path: d.Path})
		}
	}

	if len(cats) > 0 && len(missing) == len(cats) {
		slog.WarnContext(ctx, "no quest category exists", "root", root)
	}

	return folders, missing, nil
}

// QuestFiles is the per-folder row of a quest file inventory.
type QuestFiles struct {
	Folder QuestFolder    `json:"folder" yaml:"folder"`
	Counts map[string]int `json:"counts" yaml:"counts"`
}

// CategoryFiles is the per-category subtotal.
type CategoryFiles struct {
	Category string         `json:"category" yaml:"category"`
	Quests   int            `json:"quests" yaml:"quests"`
	Counts   map[string]int `json:"counts" yaml:"counts"`
}

// QuestFileReport is the outcome of CountQuestFiles.
type QuestFileReport struct {
	Suffixes   []string        `json:"suffixes" yaml:"suffixes"`
	Quests     []QuestFiles    `json:"quests" yaml:"quests"`
	Categories []CategoryFiles `json:"categories" yaml:"categories"`
	Totals     map[string]int  `json:"totals" yaml:"totals"`
	Missing    []string        `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// CountQuestFiles counts, for every quest folder of every category, the files
// under it ending with each suffix. Nil suffixes select DefaultQuestSuffixes.
func CountQuestFiles(ctx context.Context, root string, cats []Category, suffixes []string) (*QuestFileReport, error) {
	if suffixes == nil {
		suffixes = DefaultQuestSuffixes
	}

	folders, missing, err := Discover(ctx, root, cats)
	if err != nil {
		return nil, err
	}

	rep := &QuestFileReport{Suffixes: suffixes, Missing: missing}
	t := tally.New(nil, 0)

	for _, f := range folders {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("count quest files: %w", ctxErr)
		}

		counts, countErr := walker.CountBySuffix(f.Path, suffixes)
		if countErr != nil {
			slog.WarnContext(ctx, "unreadable quest folder, skipping", "path", f.Path, "error", countErr)

			continue
		}

		rep.Quests = append(rep.Quests, QuestFiles{Folder: f, Counts: counts})
		t.Add(tally.Record{Source: f.Path, Group: f.Category, Counters: counts})
	}

	res := t.Result()
	rep.Totals = totalsFor(res.Totals, suffixes)

	// Categories keep configuration order rather than tally order.
	for _, c := range cats {
		g, ok := res.Group(c.Name)
		if !ok {
			continue
		}

		rep.Categories = append(rep.Categories, CategoryFiles{
			Category: c.Name,
			Quests:   g.Records,
			Counts:   totalsFor(g.Sums, suffixes),
		})
	}

	slog.InfoContext(ctx, "quest file count complete", "quests", len(rep.Quests), "missing_categories", len(missing))

	return rep, nil
}

func totalsFor(sums map[string]int, keys []string) map[string]int {
	out := make(map[string]int, len(keys))

	for _, k := range keys {
		out[k] = sums[k]
	}

	return out
}
