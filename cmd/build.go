package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/builder"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site",
	Long: `The build command validates the site configuration, copies the theme
stylesheet and ./static/, renders the home page, the documentation and the
blog, and checks every internal link of the generated output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuild(cmd.Context())
		return err
	},
}

func newBuilder() *builder.Builder {
	return &builder.Builder{
		Config: appConfig,
		Site:   siteConfig,
		Logger: logger,
	}
}

func runBuild(ctx context.Context) (builder.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger.Info("starting build",
		zap.String("outputDir", appConfig.OutputDir),
		zap.String("baseUrl", siteConfig.BaseURL),
		zap.String("title", siteConfig.Title))
	return newBuilder().Build(ctx)
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
