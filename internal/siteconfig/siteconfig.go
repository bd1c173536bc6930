// Package siteconfig describes the declarative site metadata: title, URLs,
// locale, presets, navigation and footer links, and code highlighting themes.
// It is read once per build and never mutated afterwards.
package siteconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Broken link policies.
const (
	PolicyThrow  = "throw"
	PolicyWarn   = "warn"
	PolicyIgnore = "ignore"
)

// YearPlaceholder is replaced by the current year in the footer copyright.
const YearPlaceholder = "{year}"

type Config struct {
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
	Favicon string `yaml:"favicon"`

	URL     string `yaml:"url"`
	BaseURL string `yaml:"baseUrl"`

	OrganizationName string `yaml:"organizationName"`
	ProjectName      string `yaml:"projectName"`

	OnBrokenLinks         string `yaml:"onBrokenLinks"`
	OnBrokenMarkdownLinks string `yaml:"onBrokenMarkdownLinks"`

	I18n        I18n        `yaml:"i18n"`
	Presets     Presets     `yaml:"presets"`
	ThemeConfig ThemeConfig `yaml:"themeConfig"`
}

type I18n struct {
	DefaultLocale string   `yaml:"defaultLocale"`
	Locales       []string `yaml:"locales"`
}

type Presets struct {
	Gtag  Gtag        `yaml:"gtag"`
	Docs  DocsPreset  `yaml:"docs"`
	Blog  BlogPreset  `yaml:"blog"`
	Theme ThemePreset `yaml:"theme"`
}

type Gtag struct {
	TrackingID string `yaml:"trackingID"`
}

type DocsPreset struct {
	SidebarPath string `yaml:"sidebarPath"`
	EditURL     string `yaml:"editUrl"`
}

type BlogPreset struct {
	ShowReadingTime bool   `yaml:"showReadingTime"`
	EditURL         string `yaml:"editUrl"`
}

type ThemePreset struct {
	CustomCSS string `yaml:"customCss"`
}

type ThemeConfig struct {
	Image  string `yaml:"image"`
	Navbar Navbar `yaml:"navbar"`
	Footer Footer `yaml:"footer"`
	Prism  Prism  `yaml:"prism"`
}

type Navbar struct {
	Title string       `yaml:"title"`
	Logo  Logo         `yaml:"logo"`
	Items []NavbarItem `yaml:"items"`
}

type Logo struct {
	Alt string `yaml:"alt"`
	Src string `yaml:"src"`
}

// NavbarItem is either a plain link (Href or To) or, with Type "docSidebar",
// a link to the first page of the named documentation sidebar.
type NavbarItem struct {
	Type      string `yaml:"type,omitempty"`
	SidebarID string `yaml:"sidebarId,omitempty"`
	Position  string `yaml:"position,omitempty"`
	Label     string `yaml:"label"`
	Href      string `yaml:"href,omitempty"`
	To        string `yaml:"to,omitempty"`
}

type Footer struct {
	Style     string       `yaml:"style"`
	Links     []FooterLink `yaml:"links"`
	Copyright string       `yaml:"copyright"`
}

type FooterLink struct {
	Title string       `yaml:"title"`
	Items []FooterItem `yaml:"items"`
}

type FooterItem struct {
	Label string `yaml:"label"`
	To    string `yaml:"to,omitempty"`
	Href  string `yaml:"href,omitempty"`
}

type Prism struct {
	Theme     string `yaml:"theme"`
	DarkTheme string `yaml:"darkTheme"`
}

// Default returns the CodeScouts library configuration.
func Default() Config {
	return Config{
		Title:                 "CodeScouts library",
		Tagline:               "Aprende a implementar Clean architecture con nuestra librería",
		Favicon:               "img/favicon.png",
		URL:                   "https://library.codescouts.academy",
		BaseURL:               "/",
		OrganizationName:      "CodeScouts",
		ProjectName:           "Clean Architecture library",
		OnBrokenLinks:         PolicyThrow,
		OnBrokenMarkdownLinks: PolicyWarn,
		I18n: I18n{
			DefaultLocale: "es",
			Locales:       []string{"es"},
		},
		Presets: Presets{
			Gtag: Gtag{TrackingID: "G-WTFQBGN55R"},
			Docs: DocsPreset{
				SidebarPath: "tutorialSidebar",
				EditURL:     "https://github.com/codescouts-academy/clean-architecture-libraries/blob/main/",
			},
			Blog: BlogPreset{
				ShowReadingTime: true,
				EditURL:         "https://github.com/codescouts-academy/clean-architecture-libraries/blob/main/",
			},
			Theme: ThemePreset{CustomCSS: "css/custom.css"},
		},
		ThemeConfig: ThemeConfig{
			Image: "img/docusaurus-social-card.jpg",
			Navbar: Navbar{
				Title: "Home",
				Logo:  Logo{Alt: "CodeScouts library", Src: "img/logo.png"},
				Items: []NavbarItem{
					{Type: "docSidebar", SidebarID: "tutorialSidebar", Position: "left", Label: "Architecture"},
					{Href: "https://www.codescouts.academy", Label: "CodeScouts", Position: "right"},
					{Href: "https://github.com/codescouts-academy/clean-architecture-libraries", Label: "GitHub", Position: "right"},
				},
			},
			Footer: Footer{
				Style: "dark",
				Links: []FooterLink{
					{
						Title: "Documentación",
						Items: []FooterItem{{Label: "Architecture", To: "/docs/intro"}},
					},
					{
						Title: "Community",
						Items: []FooterItem{
							{Label: "Github", Href: "https://github.com/codescouts-academy"},
							{Label: "Youtube", Href: "https://www.youtube.com/@code_scouts"},
							{Label: "Twitter", Href: "https://twitter.com/code_scouts"},
						},
					},
					{
						Title: "More",
						Items: []FooterItem{
							{Label: "Web", Href: "https://www.codescouts.academy"},
							{Label: "Blog", Href: "https://www.codescouts.academy/blog"},
						},
					},
				},
				Copyright: "Copyright © " + YearPlaceholder + " CodeScouts academy",
			},
			Prism: Prism{Theme: "github", DarkTheme: "dracula"},
		},
	}
}

// Load reads a YAML site configuration from path on top of Default. Fields
// missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading site config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML site configuration on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshalling site config: %w", err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Copyright returns the footer copyright line for the given year.
func (c Config) Copyright(year int) string {
	return strings.ReplaceAll(c.ThemeConfig.Footer.Copyright, YearPlaceholder, strconv.Itoa(year))
}

// Lang is the value of the html lang attribute.
func (c Config) Lang() string {
	return c.I18n.DefaultLocale
}

// Path joins p to the site's base URL.
func (c Config) Path(p string) string {
	base := strings.TrimSuffix(c.BaseURL, "/")
	return base + "/" + strings.TrimPrefix(p, "/")
}
