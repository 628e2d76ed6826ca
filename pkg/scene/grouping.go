package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/depotstat/pkg/tally"
)

// ErrUnknownGroupBy is returned by ParseGroupBy.
var ErrUnknownGroupBy = errors.New("unknown grouping")

// GroupBy selects how scenes are grouped.
type GroupBy string

// Supported groupings.
const (
	// GroupByCategory groups main quests per quest (main_quests/<part>/<qNNN>)
	// and other quests by up to two folders under quest/.
	GroupByCategory GroupBy = "category"
	// GroupByType groups by the first folder under the scan root.
	GroupByType GroupBy = "type"
	// GroupByFolder groups by the folder that holds the scenes directory.
	GroupByFolder GroupBy = "folder"
)

// Task types reported by TaskType.
const (
	TaskMain      = "main"
	TaskSideMinor = "side/minor"
)

const (
	questDir      = "quest"
	mainQuestsDir = "main_quests"
	scenesDir     = "scenes"
	maxTaskDepth  = 2
)

// ParseGroupBy validates a grouping name. Empty selects GroupByCategory.
func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return GroupByCategory, nil
	case GroupByCategory, GroupByType, GroupByFolder:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGroupBy, s)
	}
}

// GroupKey returns the group of rec under g.
func GroupKey(rec Record, g GroupBy) string {
	switch g {
	case GroupByType:
		return QuestType(rec.Rel)
	case GroupByFolder:
		return QuestFolder(rec.Rel)
	default:
		return QuestCategory(rec.Path)
	}
}

// QuestCategory derives the quest category from a file path containing a
// quest directory. Main quests resolve to main_quests/<part>/<qNNN>; side
// and minor quests keep up to two folders under quest/, stopping at the
// scenes directory or at a component containing a dot.
func QuestCategory(path string) string {
	parts := splitPath(path)

	idx := -1

	for i, p := range parts {
		if p == questDir {
			idx = i

			break
		}
	}

	if idx == -1 || idx+1 >= len(parts) {
		return tally.UnknownGroup
	}

	level1 := parts[idx+1]

	if level1 == mainQuestsDir {
		switch {
		case idx+3 < len(parts):
			if strings.HasPrefix(parts[idx+3], "q") {
				return strings.Join(parts[idx+1:idx+4], "/")
			}
		case idx+2 < len(parts):
			return level1 + "/" + parts[idx+2]
		}

		return tally.UnknownGroup
	}

	var task []string

	for _, p := range parts[idx+1:] {
		if p == scenesDir || strings.Contains(p, ".") || len(task) >= maxTaskDepth {
			break
		}

		task = append(task, p)
	}

	if len(task) == 0 {
		return level1
	}

	return strings.Join(task, "/")
}

// QuestType returns the first folder of a root-relative path.
func QuestType(rel string) string {
	parts := splitPath(rel)
	if len(parts) < 2 {
		return tally.UnknownGroup
	}

	return parts[0]
}

// QuestFolder returns the root-relative folder that holds the scenes
// directory, or the file's own folder when there is none.
func QuestFolder(rel string) string {
	parts := splitPath(rel)
	if len(parts) < 2 {
		return tally.UnknownGroup
	}

	dirs := parts[:len(parts)-1]

	for i := len(dirs) - 1; i >= 0; i-- {
		if dirs[i] == scenesDir {
			if i == 0 {
				return tally.UnknownGroup
			}

			return strings.Join(dirs[:i], "/")
		}
	}

	return strings.Join(dirs, "/")
}

// TaskType classifies a group key as a main quest or a side/minor quest.
func TaskType(group string) string {
	if strings.Contains(group, mainQuestsDir) {
		return TaskMain
	}

	return TaskSideMinor
}

// splitPath splits on both separators so Windows paths from exported lists
// resolve the same way as native ones.
func splitPath(path string) []string {
	fields := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	return fields
}
