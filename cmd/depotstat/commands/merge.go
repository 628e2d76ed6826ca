package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depotstat/pkg/merge"
)

type mergeCommand struct {
	app *app

	output    string
	recursive bool
}

func newMergeCommand(a *app) *cobra.Command {
	mc := &mergeCommand{app: a}

	cmd := &cobra.Command{
		Use:   "merge <dir>",
		Short: "Concatenate text reports into one file",
		Long: `Concatenate every .txt file of <dir>, in name order, into one file with a
header block and a separator per file. Files that cannot be decoded are
replaced by a failure entry.

Examples:
  depotstat merge ./reports -o all.txt
  depotstat merge ./reports --recursive > all.txt`,
		Args: cobra.ExactArgs(1),
		RunE: mc.run,
	}

	cmd.Flags().StringVarP(&mc.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&mc.recursive, "recursive", "r", false, "include subdirectories")

	return cmd
}

func (mc *mergeCommand) run(cmd *cobra.Command, args []string) error {
	var skip []string
	if mc.output != "" {
		skip = append(skip, mc.output)
	}

	return mc.app.writeTo(cmd, mc.output, func(w io.Writer) error {
		res, err := merge.Merge(w, args[0], merge.Options{Recursive: mc.recursive, Skip: skip})
		if err != nil {
			return err
		}

		slog.InfoContext(cmd.Context(), "merge complete", "files", res.Files, "failed", res.Failed, "lines", res.Lines)

		return nil
	})
}
