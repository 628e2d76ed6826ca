package inventory

import (
	"path/filepath"
	"strings"

	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

// DefaultAnimSuffix selects animation set files.
const DefaultAnimSuffix = ".anims"

// Animation is one animation file.
type Animation struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Rel  string `json:"rel" yaml:"rel"`
	Size int64  `json:"size" yaml:"size"`
}

// ListAnimations returns every file under root ending with suffix, in
// lexical order. Path is absolute when it can be resolved. An empty suffix
// selects DefaultAnimSuffix.
func ListAnimations(root, suffix string) ([]Animation, error) {
	if suffix == "" {
		suffix = DefaultAnimSuffix
	}

	files, err := walker.Walk(root, walker.Filter{Suffixes: []string{suffix}})
	if err != nil {
		return nil, err
	}

	out := make([]Animation, 0, len(files))

	for _, f := range files {
		path := f.Path
		if abs, absErr := filepath.Abs(path); absErr == nil {
			path = abs
		}

		out = append(out, Animation{Name: f.Name(), Path: path, Rel: f.Rel, Size: f.Size})
	}

	return out, nil
}

// AnimCategory is a keyword rule for Classify.
type AnimCategory struct {
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// DefaultAnimCategories returns the standard pose and usage keywords.
func DefaultAnimCategories() []AnimCategory {
	return []AnimCategory{
		{Name: "Dirt", Keywords: []string{"dirt"}},
		{Name: "Generic", Keywords: []string{"generic"}},
		{Name: "Idle", Keywords: []string{"idle"}},
		{Name: "Stand", Keywords: []string{"stand"}},
		{Name: "Kneel", Keywords: []string{"kneel"}},
		{Name: "Sit", Keywords: []string{"sit"}},
		{Name: "Lie", Keywords: []string{"lie"}},
		{Name: "Lean Left", Keywords: []string{"lean left"}},
		{Name: "Lean Right", Keywords: []string{"lean right"}},
		{Name: "Lean Forward", Keywords: []string{"lean forward"}},
		{Name: "Lean Backward", Keywords: []string{"lean backward"}},
	}
}

// Classification is the set of files matched by one category.
type Classification struct {
	Category string      `json:"category" yaml:"category"`
	Keywords []string    `json:"keywords" yaml:"keywords"`
	Files    []Animation `json:"files" yaml:"files"`
}

// Classify assigns files to every category with a keyword contained in the
// lower-cased name or relative path. A file lands in a category at most
// once but may land in several categories. Categories keep their order and
// are present even when empty.
func Classify(files []Animation, cats []AnimCategory) []Classification {
	out := make([]Classification, len(cats))

	for i, c := range cats {
		out[i] = Classification{Category: c.Name, Keywords: c.Keywords}
	}

	for _, f := range files {
		haystack := strings.ToLower(f.Name + "\n" + f.Rel)

		for i, c := range cats {
			if matchesAny(haystack, c.Keywords) {
				out[i].Files = append(out[i].Files, f)
			}
		}
	}

	return out
}

func matchesAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(haystack, kw) {
			return true
		}
	}

	return false
}
