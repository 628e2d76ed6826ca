package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depotstat/pkg/report"
	"github.com/Sumatoshi-tech/depotstat/pkg/schema"
)

const stdinArg = "-"

type validateCommand struct {
	app *app

	kind   string
	format string
}

// validateReport is the json/yaml form of a validation.
type validateReport struct {
	Input         string `json:"input" yaml:"input"`
	schema.Result `yaml:",inline"`
}

func newValidateCommand(a *app) *cobra.Command {
	vc := &validateCommand{app: a}

	cmd := &cobra.Command{
		Use:   "validate <file.json|->",
		Short: "Check a scene file or quest-node dump against its schema",
		Long: `Validate a scene localisation file or a quest-node dump against the
embedded JSON schema. The kind is detected from the top-level keys unless
--kind is given. The exit status is 2 when the input is invalid.

Examples:
  depotstat validate scene.scnlocjson
  depotstat validate --kind questnode - < nodes.json`,
		Args: cobra.ExactArgs(1),
		RunE: vc.run,
	}

	cmd.Flags().StringVar(&vc.kind, "kind", "", "input kind: scene or questnode (default: detect)")
	cmd.Flags().StringVarP(&vc.format, "format", "f", string(report.FormatText), "output format: text, json or yaml")

	return cmd
}

func (vc *validateCommand) run(cmd *cobra.Command, args []string) error {
	kind, err := schema.ParseKind(vc.kind)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(vc.format)
	if err != nil {
		return err
	}

	switch format {
	case report.FormatText, report.FormatJSON, report.FormatYAML:
	default:
		return fmt.Errorf("%w: validate does not support %s", ErrFormatUnsupported, format)
	}

	data, label, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	res, err := schema.Validate(kind, data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrValidationFailed, label, err)
	}

	out := cmd.OutOrStdout()

	switch format {
	case report.FormatJSON:
		err = report.WriteJSON(out, validateReport{Input: label, Result: res})
	case report.FormatYAML:
		err = report.WriteYAML(out, validateReport{Input: label, Result: res})
	default:
		err = vc.printResult(out, label, res)
	}

	if err != nil {
		return err
	}

	if !res.Valid {
		return fmt.Errorf("%w: %s has %d schema violation(s)", ErrValidationFailed, label, len(res.Issues))
	}

	return nil
}

func (vc *validateCommand) printResult(w io.Writer, label string, res schema.Result) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if vc.app.noColor {
		green.DisableColor()
		red.DisableColor()
	}

	if res.Valid {
		_, err := green.Fprintf(w, "%s is a valid %s document\n", label, res.Kind)

		return err
	}

	if _, err := red.Fprintf(w, "%s is not a valid %s document\n", label, res.Kind); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nErrors:\n"); err != nil {
		return err
	}

	for _, issue := range res.Issues {
		if _, err := red.Fprintf(w, "  - %s: %s\n", issue.Field, issue.Description); err != nil {
			return err
		}
	}

	return nil
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, arg string) ([]byte, string, error) {
	if arg == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "stdin", fmt.Errorf("read stdin: %w", err)
		}

		return data, "stdin", nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, arg, fmt.Errorf("read input: %w", err)
	}

	return data, arg, nil
}
