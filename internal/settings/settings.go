// Package settings holds the feature flags and host rules that gate the
// checking pipeline.
package settings

// Global are the extension-wide settings.
type Global struct {
	Enabled          bool     `mapstructure:"enabled"`
	ShowUnderlines   bool     `mapstructure:"show_underlines"`
	AutoCorrect      bool     `mapstructure:"auto_correct"`
	GrammarCheck     bool     `mapstructure:"grammar_check"`
	Language         string   `mapstructure:"language"`
	DisabledPatterns []string `mapstructure:"disabled_patterns"`
}

// Site is the per-hostname override.
type Site struct {
	Enabled bool `mapstructure:"enabled"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() Global {
	return Global{
		Enabled:        true,
		ShowUnderlines: true,
		AutoCorrect:    false,
		GrammarCheck:   true,
		Language:       "en",
	}
}

// EnabledFor reports whether checking should run at all for hostname: the
// master switch, the per-site switch and the disable patterns all have to
// agree.
func (g Global) EnabledFor(hostname string, site Site) bool {
	if !g.Enabled || !site.Enabled {
		return false
	}
	return !MatchesAny(hostname, g.DisabledPatterns)
}
