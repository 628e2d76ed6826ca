// Package questnode summarises quest-node dumps: JSON exports that list,
// per quest phase, the graph nodes the phase contains.
package questnode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Sumatoshi-tech/depotstat/pkg/textutil"
)

// ErrMalformed is returned for dumps that are not a JSON object.
var ErrMalformed = errors.New("malformed quest-node dump")

const phasesKey = "questphases"

// Node is one quest graph node. Every field is the stringified, trimmed
// JSON value; absent fields are empty.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Class string `json:"class" yaml:"class"`
	Path  string `json:"path" yaml:"path"`
}

// Phase is one quest phase with its nodes in dump order.
type Phase struct {
	Path  string `json:"path" yaml:"path"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Parse reads the questphases object of a dump. Phases keep document order.
// A dump without a questphases object yields no phases. Entries that are not arrays
// hold no nodes; array items that are not objects become empty nodes.
func Parse(data []byte) ([]Phase, error) {
	decoded, err := textutil.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if !gjson.ValidBytes(decoded) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	root := gjson.ParseBytes(decoded)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	var phases []Phase

	all := root.Get(phasesKey)
	if !all.IsObject() {
		return phases, nil
	}

	all.ForEach(func(key, value gjson.Result) bool {
		phase := Phase{Path: key.String()}

		if value.IsArray() {
			value.ForEach(func(_, node gjson.Result) bool {
				phase.Nodes = append(phase.Nodes, parseNode(node))

				return true
			})
		}

		phases = append(phases, phase)

		return true
	})

	return phases, nil
}

func parseNode(v gjson.Result) Node {
	if !v.IsObject() {
		return Node{}
	}

	return Node{
		ID:    field(v, "id"),
		Name:  field(v, "name"),
		Class: field(v, "class"),
		Path:  field(v, "path"),
	}
}

func field(v gjson.Result, name string) string {
	f := v.Get(name)
	if f.Type == gjson.Null {
		return ""
	}

	if f.IsObject() || f.IsArray() {
		return strings.TrimSpace(f.Raw)
	}

	return strings.TrimSpace(f.String())
}
