package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/policy-irr/internal/config"
	"github.com/rpgo/policy-irr/internal/output"
)

var exampleCmd = &cobra.Command{
	Use:   "example [file]",
	Short: "Write an example scenario file",
	Long:  `Writes a YAML file with the default policy, two variations and a death-age sweep.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := "example_config.yaml"
		if len(args) == 1 {
			filename = args[0]
		}
		cfg := config.NewInputParser().CreateExampleConfiguration()
		if err := output.SaveConfiguration(cfg, filename); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", filename)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}
