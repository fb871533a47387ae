package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"tfocus/internal/domain"
)

const (
	// ProjectFileName is looked up in the directory being scanned
	ProjectFileName = ".tfocus.toml"
	// BinaryEnv overrides the configured binary
	BinaryEnv = "TFOCUS_BINARY"
)

// Config represents the application configuration
type Config struct {
	Binary        string                    `toml:"binary"`
	TargetFlag    string                    `toml:"target_flag"`
	DefaultAction string                    `toml:"default_action"`
	PollInterval  Duration                  `toml:"poll_interval"`
	GracePeriod   Duration                  `toml:"grace_period"`
	Actions       map[string]ActionSettings `toml:"actions"`
	UI            UISettings                `toml:"ui"`
	Discovery     DiscoverySettings         `toml:"discovery"`

	// Source is the file the configuration was read from, "" for defaults
	Source string `toml:"-"`
}

// ActionSettings holds per-action arguments
type ActionSettings struct {
	ExtraArgs []string `toml:"extra_args"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	MultiSelect bool `toml:"multi_select"`
	AltScreen   bool `toml:"alt_screen"`
	ShowDetail  bool `toml:"show_detail"`
}

// DiscoverySettings controls the directory walk
type DiscoverySettings struct {
	MaxDepth int      `toml:"max_depth"`
	SkipDirs []string `toml:"skip_dirs"`
}

// Duration is a time.Duration written as a Go duration string in TOML
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Binary:       "terraform",
		TargetFlag:   "-target",
		PollInterval: Duration(100 * time.Millisecond),
		GracePeriod:  Duration(5 * time.Second),
		Actions: map[string]ActionSettings{
			string(domain.ActionPlan):  {ExtraArgs: []string{}},
			string(domain.ActionApply): {ExtraArgs: []string{"-auto-approve"}},
		},
		UI: UISettings{
			MultiSelect: true,
			AltScreen:   true,
			ShowDetail:  true,
		},
		Discovery: DiscoverySettings{
			MaxDepth: 16,
			SkipDirs: []string{"node_modules", "vendor"},
		},
	}
}

// ExtraArgs returns the extra arguments per action in the form the runner takes
func (c *Config) ExtraArgs() map[domain.Action][]string {
	out := make(map[domain.Action][]string, len(c.Actions))
	for name, a := range c.Actions {
		out[domain.Action(name)] = a.ExtraArgs
	}
	return out
}

// Validate checks the values a session depends on
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Binary) == "" {
		errs = append(errs, errors.New("binary must not be empty"))
	}
	if strings.TrimSpace(c.TargetFlag) == "" {
		errs = append(errs, errors.New("target_flag must not be empty"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %s", time.Duration(c.PollInterval)))
	}
	if c.GracePeriod <= 0 {
		errs = append(errs, fmt.Errorf("grace_period must be positive, got %s", time.Duration(c.GracePeriod)))
	}
	if c.DefaultAction != "" && !domain.Action(c.DefaultAction).Valid() {
		errs = append(errs, fmt.Errorf("default_action %q is not one of plan, apply", c.DefaultAction))
	}
	for name := range c.Actions {
		if !domain.Action(name).Valid() {
			errs = append(errs, fmt.Errorf("unknown action %q in [actions]", name))
		}
	}
	if c.Discovery.MaxDepth < 0 {
		errs = append(errs, errors.New("discovery.max_depth must not be negative"))
	}
	return errors.Join(errs...)
}

// Loader resolves and reads the configuration. It never writes files.
type Loader struct {
	userConfigDir func() (string, error)
	getenv        func(string) string
}

// NewLoader creates a loader using the OS config directory and environment
func NewLoader() *Loader {
	return &Loader{userConfigDir: os.UserConfigDir, getenv: os.Getenv}
}

// UserPath returns <user config dir>/tfocus/config.toml
func (l *Loader) UserPath() (string, error) {
	dir, err := l.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tfocus", "config.toml"), nil
}

// Load looks for a project file under root, then the user file, then falls back to defaults
func (l *Loader) Load(root string) (*Config, error) {
	candidates := []string{filepath.Join(root, ProjectFileName)}
	if p, err := l.UserPath(); err == nil {
		candidates = append(candidates, p)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		return l.LoadFromPath(path)
	}

	cfg := DefaultConfig()
	l.applyEnv(cfg)
	return cfg, cfg.Validate()
}

// LoadFromPath loads configuration from a specific path, layered over the defaults
func (l *Loader) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("failed to parse config %s:%d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Source = path
	l.applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) {
	if v := l.getenv(BinaryEnv); v != "" {
		cfg.Binary = v
	}
}
