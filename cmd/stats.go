package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/swissgeo/internal/query"
	"github.com/sells-group/swissgeo/internal/report"
)

var outputFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate counts over the registers",
	Long:  "Loads both registers, builds the model and prints canton, district and community counts, orphan postal communities and political communities without postal communities.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !report.ValidFormat(outputFormat) {
			return eris.Errorf("unsupported format %q", outputFormat)
		}

		m, err := loadModel(cmd.Context(), "load")
		if err != nil {
			return err
		}

		s := report.Summarize(query.New(m))
		return report.WriteSummary(cmd.OutOrStdout(), outputFormat, s)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", report.FormatText, "output format: text, json or yaml")
	rootCmd.AddCommand(statsCmd)
}
