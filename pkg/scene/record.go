// Package scene extracts dialogue statistics from scene localisation files
// (*.scnlocjson) and aggregates them per quest.
package scene

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Sumatoshi-tech/depotstat/pkg/tally"
	"github.com/Sumatoshi-tech/depotstat/pkg/textutil"
)

// ErrMalformed is returned for files that are not a JSON object.
var ErrMalformed = errors.New("malformed scene file")

// UnknownName is used when a scene file carries no SceneName.
const UnknownName = "Unknown"

// Counter names used in tally records.
const (
	CounterScenes         = "scenes"
	CounterSections       = "sections"
	CounterChoiceSections = "choice_sections"
	CounterNormalSections = "normal_sections"
	CounterLines          = "lines"
	CounterWithDialogue   = "with_dialogue"
)

// Record is the summary of one scene file.
type Record struct {
	Name           string   `json:"scene_name" yaml:"scene_name"`
	Path           string   `json:"path" yaml:"path"`
	Rel            string   `json:"rel" yaml:"rel"`
	Group          string   `json:"group,omitempty" yaml:"group,omitempty"`
	Sections       int      `json:"sections" yaml:"sections"`
	ChoiceSections int      `json:"choice_sections" yaml:"choice_sections"`
	Lines          int      `json:"lines" yaml:"lines"`
	Speakers       []string `json:"speakers" yaml:"speakers"`
}

// NormalSections returns the number of sections that are not choice sections.
func (r Record) NormalSections() int {
	return r.Sections - r.ChoiceSections
}

// HasDialogue reports whether the scene has at least one line.
func (r Record) HasDialogue() bool {
	return r.Lines > 0
}

// ToTally converts the record for folding. Each distinct speaker is one label.
func (r Record) ToTally() tally.Record {
	withDialogue := 0
	if r.HasDialogue() {
		withDialogue = 1
	}

	return tally.Record{
		Source: r.Path,
		Group:  r.Group,
		Counters: map[string]int{
			CounterScenes:         1,
			CounterSections:       r.Sections,
			CounterChoiceSections: r.ChoiceSections,
			CounterNormalSections: r.NormalSections(),
			CounterLines:          r.Lines,
			CounterWithDialogue:   withDialogue,
		},
		Labels: r.Speakers,
	}
}

// Parse extracts a Record from the contents of a scene file. A leading
// byte-order mark is accepted. Fields of the wrong type count as absent; a
// section entry that is not an object still counts as a section without lines.
func Parse(data []byte) (Record, error) {
	decoded, err := textutil.Decode(data)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if !gjson.ValidBytes(decoded) {
		return Record{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	root := gjson.ParseBytes(decoded)
	if !root.IsObject() {
		return Record{}, fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	rec := Record{Name: UnknownName}

	if name := root.Get("SceneName"); name.Exists() && name.Type != gjson.Null {
		rec.Name = name.String()
	}

	speakers := make(map[string]struct{})

	sections := root.Get("SectionsInScene")
	if sections.IsArray() {
		sections.ForEach(func(_, section gjson.Result) bool {
			rec.Sections++

			if section.Get("IsChoiceSection").Bool() {
				rec.ChoiceSections++
			}

			lines := section.Get("LinesInSection")
			if !lines.IsArray() {
				return true
			}

			lines.ForEach(func(_, line gjson.Result) bool {
				rec.Lines++

				speaker := strings.TrimSpace(line.Get("Speaker").String())
				if speaker != "" {
					speakers[speaker] = struct{}{}
				}

				return true
			})

			return true
		})
	}

	rec.Speakers = make([]string, 0, len(speakers))
	for s := range speakers {
		rec.Speakers = append(rec.Speakers, s)
	}

	slices.Sort(rec.Speakers)

	return rec, nil
}
