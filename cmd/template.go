package cmd

import (
	"fmt"

	"github.com/KaramelBytes/channelstat/internal/survey"
	"github.com/KaramelBytes/channelstat/internal/utils"
	"github.com/spf13/cobra"
)

var templateOutput string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a sample survey CSV with the expected headers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if templateOutput == "" {
			fmt.Fprint(cmd.OutOrStdout(), survey.TemplateCSV)
			return nil
		}
		if err := utils.SafeWriteFile(templateOutput, []byte(survey.TemplateCSV)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote template to %s\n", templateOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "", "write the template to a file")
}
