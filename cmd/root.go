package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/config"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/logging"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/siteconfig"
)

var cfgFile string
var appConfig config.Config
var siteConfig siteconfig.Config
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "scouts",
	Short: "Static site builder for the CodeScouts Clean Architecture library",
	Long: `scouts renders the CodeScouts library website: the home page with its
highlights, the Markdown documentation under ./content/docs and the blog under
./content/blog, wrapped in the site's navbar and footer, into static HTML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaults := config.Defaults()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("site", defaults.SiteConfig, "site configuration file")
	rootCmd.PersistentFlags().StringP("out", "o", defaults.OutputDir, "output directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	defaults := config.Defaults()
	v.SetDefault("siteConfig", defaults.SiteConfig)
	v.SetDefault("outputDir", defaults.OutputDir)
	v.SetDefault("contentDir", defaults.ContentDir)
	v.SetDefault("staticDir", defaults.StaticDir)
	v.SetDefault("port", defaults.Port)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SCOUTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	flags := cmd.Flags()
	for key, name := range map[string]string{
		"siteConfig": "site",
		"outputDir":  "out",
		"verbose":    "verbose",
		"port":       "port",
		"drafts":     "drafts",
	} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var notFound viper.ConfigFileNotFoundError
	configErr := v.ReadInConfig()
	if configErr != nil && !errors.As(configErr, &notFound) {
		return fmt.Errorf("failed to read config file: %w", configErr)
	}
	if configErr != nil && cfgFile != "" {
		return fmt.Errorf("config file %s not found: %w", cfgFile, configErr)
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	l, err := logging.New(appConfig.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	if configErr == nil {
		logger.Info("using config file", zap.String("file", v.ConfigFileUsed()))
	} else {
		logger.Debug("no config file found, using defaults and environment")
	}

	return loadSiteConfig(appConfig.SiteConfig)
}

// loadSiteConfig reads the site configuration, falling back to the built-in
// CodeScouts configuration when the default file does not exist.
func loadSiteConfig(path string) error {
	cfg, err := siteconfig.Load(path)
	switch {
	case err == nil:
		logger.Info("using site config", zap.String("file", path))
	case errors.Is(err, os.ErrNotExist) && path == config.DefaultSiteConfig:
		logger.Debug("site config not found, using built-in configuration", zap.String("file", path))
		cfg = siteconfig.Default()
	default:
		return err
	}
	siteConfig = cfg
	return nil
}
