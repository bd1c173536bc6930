package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/siteconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Prints the effective site configuration",
	Long: `The config command validates the site configuration and prints it as
YAML, with every default filled in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := siteConfig.Validate(); err != nil {
			return err
		}
		out, err := siteconfig.Marshal(siteConfig)
		if err != nil {
			return fmt.Errorf("failed to encode site config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
