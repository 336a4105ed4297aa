package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/redlinehq/redline/internal/log"
)

// Store persists settings to a YAML config file via viper.
type Store struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// NewStore returns a Store backed by the YAML file at path. A missing file
// yields the defaults.
func NewStore(path string) *Store {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := Defaults()
	v.SetDefault("enabled", defaults.Enabled)
	v.SetDefault("show_underlines", defaults.ShowUnderlines)
	v.SetDefault("auto_correct", defaults.AutoCorrect)
	v.SetDefault("grammar_check", defaults.GrammarCheck)
	v.SetDefault("language", defaults.Language)
	v.SetDefault("disabled_patterns", defaults.DisabledPatterns)
	v.SetDefault("sites", map[string]Site{})

	return &Store{v: v, path: path}
}

// Load reads the stored global settings and site overrides.
func (s *Store) Load() (Global, map[string]Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing && !os.IsNotExist(err) {
			return Defaults(), nil, fmt.Errorf("reading settings: %w", err)
		}
	}

	var global Global
	if err := s.v.Unmarshal(&global); err != nil {
		return Defaults(), nil, fmt.Errorf("parsing settings: %w", err)
	}

	sites := make(map[string]Site)
	raw := s.v.GetStringMap("sites")
	for host := range raw {
		site := Site{Enabled: true}
		if m, ok := raw[host].(map[string]any); ok {
			if enabled, ok := m["enabled"].(bool); ok {
				site.Enabled = enabled
			}
		}
		sites[host] = site
	}
	return global, sites, nil
}

// Save persists global settings and site overrides.
func (s *Store) Save(global Global, sites map[string]Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set("enabled", global.Enabled)
	s.v.Set("show_underlines", global.ShowUnderlines)
	s.v.Set("auto_correct", global.AutoCorrect)
	s.v.Set("grammar_check", global.GrammarCheck)
	s.v.Set("language", global.Language)
	s.v.Set("disabled_patterns", global.DisabledPatterns)

	siteMap := make(map[string]map[string]bool, len(sites))
	for host, site := range sites {
		siteMap[host] = map[string]bool{"enabled": site.Enabled}
	}
	s.v.Set("sites", siteMap)

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Manager caches settings in memory and keeps the cache consistent with the
// persisted truth: an update that fails to persist is rolled back.
type Manager struct {
	mu     sync.RWMutex
	store  *Store
	global Global
	sites  map[string]Site
}

// NewManager loads settings from store. Load failures fall back to defaults
// so a corrupt config never blocks the pipeline.
func NewManager(store *Store) *Manager {
	global, sites, err := store.Load()
	if err != nil {
		log.ErrorErr(log.CatSettings, "settings load failed, using defaults", err)
		global = Defaults()
		sites = nil
	}
	if sites == nil {
		sites = make(map[string]Site)
	}
	return &Manager{store: store, global: global, sites: sites}
}

// Global returns the cached global settings.
func (m *Manager) Global() Global {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.global
}

// Site returns the override for hostname; absent hostnames are enabled.
func (m *Manager) Site(hostname string) Site {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if site, ok := m.sites[hostname]; ok {
		return site
	}
	return Site{Enabled: true}
}

// EnabledFor reports whether checking runs for hostname.
func (m *Manager) EnabledFor(hostname string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	site, ok := m.sites[hostname]
	if !ok {
		site = Site{Enabled: true}
	}
	return m.global.EnabledFor(hostname, site)
}

// Update applies fn to the global settings and persists the result. If
// persisting fails the in-memory cache is rolled back and the error
// returned.
func (m *Manager) Update(fn func(*Global)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous := m.global
	fn(&m.global)
	if err := m.store.Save(m.global, m.sites); err != nil {
		m.global = previous
		return err
	}
	return nil
}

// SetSiteEnabled persists a per-site override, rolling back the cache if the
// write fails.
func (m *Manager) SetSiteEnabled(hostname string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous, had := m.sites[hostname]
	m.sites[hostname] = Site{Enabled: enabled}
	if err := m.store.Save(m.global, m.sites); err != nil {
		if had {
			m.sites[hostname] = previous
		} else {
			delete(m.sites, hostname)
		}
		return err
	}
	return nil
}
