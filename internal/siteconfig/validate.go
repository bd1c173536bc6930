package siteconfig

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

var ErrInvalidConfig = errors.New("invalid site config")

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate checks the fields the build requires. It reports all problems at
// once rather than stopping at the first.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	required := map[string]string{
		"title":                        c.Title,
		"url":                          c.URL,
		"baseUrl":                      c.BaseURL,
		"organizationName":             c.OrganizationName,
		"projectName":                  c.ProjectName,
		"i18n.defaultLocale":           c.I18n.DefaultLocale,
		"themeConfig.navbar.title":     c.ThemeConfig.Navbar.Title,
		"themeConfig.footer.style":     c.ThemeConfig.Footer.Style,
		"themeConfig.prism.theme":      c.ThemeConfig.Prism.Theme,
		"themeConfig.prism.darkTheme":  c.ThemeConfig.Prism.DarkTheme,
		"themeConfig.footer.copyright": c.ThemeConfig.Footer.Copyright,
		"themeConfig.navbar.logo.src":  c.ThemeConfig.Navbar.Logo.Src,
		"presets.theme.customCss":      c.Presets.Theme.CustomCSS,
		"onBrokenLinks":                c.OnBrokenLinks,
		"onBrokenMarkdownLinks":        c.OnBrokenMarkdownLinks,
	}
	for k, v := range required {
		if strings.TrimSpace(v) == "" {
			add("%s is required", k)
		}
	}

	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			add("url %q must be an absolute URL", c.URL)
		} else if u.Path != "" && u.Path != "/" {
			add("url %q must not contain a path, use baseUrl instead", c.URL)
		}
	}
	if c.BaseURL != "" && (!strings.HasPrefix(c.BaseURL, "/") || !strings.HasSuffix(c.BaseURL, "/")) {
		add("baseUrl %q must start and end with /", c.BaseURL)
	}

	if c.I18n.DefaultLocale != "" {
		if _, err := language.Parse(c.I18n.DefaultLocale); err != nil {
			add("i18n.defaultLocale %q is not a valid language tag", c.I18n.DefaultLocale)
		}
		if !slices.Contains(c.I18n.Locales, c.I18n.DefaultLocale) {
			add("i18n.locales must contain the default locale %q", c.I18n.DefaultLocale)
		}
	}
	for _, l := range c.I18n.Locales {
		if _, err := language.Parse(l); err != nil {
			add("i18n.locales entry %q is not a valid language tag", l)
		}
	}

	for name, p := range map[string]string{
		"onBrokenLinks":         c.OnBrokenLinks,
		"onBrokenMarkdownLinks": c.OnBrokenMarkdownLinks,
	} {
		if p != "" && !validPolicy(p) {
			add("%s %q must be one of throw, warn, ignore", name, p)
		}
	}

	for i, item := range c.ThemeConfig.Navbar.Items {
		if item.Label == "" {
			add("themeConfig.navbar.items[%d].label is required", i)
		}
		if item.Type == "docSidebar" {
			if item.SidebarID == "" {
				add("themeConfig.navbar.items[%d].sidebarId is required for docSidebar items", i)
			}
			continue
		}
		if item.Href == "" && item.To == "" {
			add("themeConfig.navbar.items[%d] needs href or to", i)
		}
	}
	for i, col := range c.ThemeConfig.Footer.Links {
		for j, item := range col.Items {
			if item.Href == "" && item.To == "" {
				add("themeConfig.footer.links[%d].items[%d] needs href or to", i, j)
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	slices.Sort(problems)
	return &ValidationError{Problems: problems}
}

func validPolicy(p string) bool {
	switch p {
	case PolicyThrow, PolicyWarn, PolicyIgnore:
		return true
	}
	return false
}
