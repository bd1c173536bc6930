package config

// Config holds the settings of the build tool itself. The site's own metadata
// lives in siteconfig.
type Config struct {
	SiteConfig string `mapstructure:"siteConfig"`
	OutputDir  string `mapstructure:"outputDir"`
	ContentDir string `mapstructure:"contentDir"`
	StaticDir  string `mapstructure:"staticDir"`
	Port       int    `mapstructure:"port"`
	Verbose    bool   `mapstructure:"verbose"`
	// Drafts includes content marked draft: true.
	Drafts bool `mapstructure:"drafts"`
}

const (
	DefaultSiteConfig = "site.yaml"
	DefaultOutputDir  = "build"
	DefaultContentDir = "content"
	DefaultStaticDir  = "static"
	DefaultPort       = 3000
)

// Defaults returns the configuration used when neither a config file nor
// environment variables override anything.
func Defaults() Config {
	return Config{
		SiteConfig: DefaultSiteConfig,
		OutputDir:  DefaultOutputDir,
		ContentDir: DefaultContentDir,
		StaticDir:  DefaultStaticDir,
		Port:       DefaultPort,
	}
}
