// Package schema validates scene files and quest-node dumps against
// embedded JSON schemas.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/depotstat/pkg/textutil"
)

// Sentinel errors.
var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrUnknownKind = errors.New("unknown input kind")
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Kind names an input format.
type Kind string

// Supported kinds.
const (
	KindScene     Kind = "scene"
	KindQuestNode Kind = "questnode"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindScene, KindQuestNode}

// ParseKind validates a kind name. Empty means "detect".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", KindScene, KindQuestNode:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Issue is one schema violation.
type Issue struct {
	Field       string `json:"field" yaml:"field"`
	Description string `json:"description" yaml:"description"`
}

// Result is the outcome of Validate.
type Result struct {
	Kind   Kind    `json:"kind" yaml:"kind"`
	Valid  bool    `json:"valid" yaml:"valid"`
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Schema returns the embedded schema document of a kind.
func Schema(kind Kind) ([]byte, error) {
	data, err := schemaFS.ReadFile("schemas/" + string(kind) + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return data, nil
}

// DetectKind guesses the kind of a document from its top-level keys.
func DetectKind(data []byte) (Kind, error) {
	decoded, err := decode(data)
	if err != nil {
		return "", err
	}

	root := gjson.ParseBytes(decoded)

	switch {
	case !root.IsObject():
		return "", fmt.Errorf("%w: top level is not an object", ErrUnknownKind)
	case root.Get("questphases").Exists():
		return KindQuestNode, nil
	case root.Get("SectionsInScene").Exists(), root.Get("SceneName").Exists():
		return KindScene, nil
	default:
		return "", fmt.Errorf("%w: no questphases or SectionsInScene key", ErrUnknownKind)
	}
}

// Validate checks data against the schema of kind. An empty kind is
// detected. Schema violations are reported in the Result, not as errors.
func Validate(kind Kind, data []byte) (Result, error) {
	decoded, err := decode(data)
	if err != nil {
		return Result{}, err
	}

	if kind == "" {
		if kind, err = DetectKind(decoded); err != nil {
			return Result{}, err
		}
	}

	schemaDoc, err := Schema(kind)
	if err != nil {
		return Result{}, err
	}

	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaDoc), gojsonschema.NewBytesLoader(decoded))
	if err != nil {
		return Result{}, fmt.Errorf("validate %s: %w", kind, err)
	}

	out := Result{Kind: kind, Valid: res.Valid()}

	for _, e := range res.Errors() {
		out.Issues = append(out.Issues, Issue{Field: e.Field(), Description: e.Description()})
	}

	return out, nil
}

func decode(data []byte) ([]byte, error) {
	decoded, err := textutil.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	if !gjson.ValidBytes(decoded) {
		return nil, fmt.Errorf("%w: syntax error", ErrInvalidJSON)
	}

	return decoded, nil
}
