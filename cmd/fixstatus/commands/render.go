package commands

import (
	"encoding/json"
	"io"

	"github.com/gmackall/flutter-fix-status/internal/adapters/detector"
	"github.com/gmackall/flutter-fix-status/internal/ui/table"
	"github.com/spf13/cobra"
)

const outputFlag = "output"

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(outputFlag, "o", "auto", "Output format: auto, table or json")
}

// render writes v as JSON or hands it to the table renderer, per the --output flag.
func render(cmd *cobra.Command, v any, asTable func(*table.Renderer) error) error {
	w := cmd.OutOrStdout()
	flag, _ := cmd.Flags().GetString(outputFlag)
	if detector.ResolveFormat(detector.DetectFormat(w), flag) == detector.FormatJSON {
		return writeJSON(w, v)
	}
	return asTable(table.New(w))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
