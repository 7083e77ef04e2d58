package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Order selects the pre-diff transform applied to every fetched list.
type Order string

const (
	OrderNone Order = "none"
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Equality selects the element equality predicate.
type Equality string

const (
	EqualityExact Equality = "exact"
	EqualityFold  Equality = "fold"
	EqualityTrim  Equality = "trim"
)

// Config captures everything listsync reads from config.toml.
type Config struct {
	Source       string
	PollInterval time.Duration
	Watch        bool
	Asynchronous bool
	Order        Order
	Equality     Equality
	MaxItems     int
	History      int
	Theme        string
}

const (
	defaultConfigPath   = "~/.config/listsync/config.toml"
	defaultPollInterval = 2 * time.Second
	defaultHistory      = 200
	defaultTheme        = "Dracula"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PollInterval: defaultPollInterval,
		Watch:        true,
		Order:        OrderNone,
		Equality:     EqualityExact,
		History:      defaultHistory,
		Theme:        defaultTheme,
	}
}

type rawConfig struct {
	Source       string `toml:"source"`
	PollSeconds  *int   `toml:"poll_seconds"`
	Watch        *bool  `toml:"watch"`
	Asynchronous bool   `toml:"asynchronous"`
	Order        string `toml:"order"`
	Equality     string `toml:"equality"`
	MaxItems     int    `toml:"max_items"`
	History      *int   `toml:"history"`
	Theme        string `toml:"theme"`
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Source = strings.TrimSpace(raw.Source)
	if raw.PollSeconds != nil && *raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(*raw.PollSeconds) * time.Second
	}
	if raw.Watch != nil {
		cfg.Watch = *raw.Watch
	}
	cfg.Asynchronous = raw.Asynchronous
	if raw.MaxItems > 0 {
		cfg.MaxItems = raw.MaxItems
	}
	if raw.History != nil && *raw.History > 0 {
		cfg.History = *raw.History
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}

	if cfg.Order, err = ParseOrder(raw.Order); err != nil {
		return Config{}, err
	}
	if cfg.Equality, err = ParseEquality(raw.Equality); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseOrder validates an order value. Empty means OrderNone.
func ParseOrder(value string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(value))); o {
	case "":
		return OrderNone, nil
	case OrderNone, OrderAsc, OrderDesc:
		return o, nil
	default:
		return "", fmt.Errorf("invalid order %q (want none, asc or desc)", value)
	}
}

// ParseEquality validates an equality value. Empty means EqualityExact.
func ParseEquality(value string) (Equality, error) {
	switch e := Equality(strings.ToLower(strings.TrimSpace(value))); e {
	case "":
		return EqualityExact, nil
	case EqualityExact, EqualityFold, EqualityTrim:
		return e, nil
	default:
		return "", fmt.Errorf("invalid equality %q (want exact, fold or trim)", value)
	}
}

// Transform returns the pre-diff transform for the configured order, or nil.
func (o Order) Transform() func([]string) []string {
	switch o {
	case OrderAsc:
		return func(items []string) []string {
			slices.Sort(items)
			return items
		}
	case OrderDesc:
		return func(items []string) []string {
			slices.SortFunc(items, func(a, b string) int { return strings.Compare(b, a) })
			return items
		}
	default:
		return nil
	}
}

// Func returns the element equality predicate.
func (e Equality) Func() func(a, b string) bool {
	switch e {
	case EqualityFold:
		return strings.EqualFold
	case EqualityTrim:
		return func(a, b string) bool { return strings.TrimSpace(a) == strings.TrimSpace(b) }
	default:
		return func(a, b string) bool { return a == b }
	}
}

// IsRemote reports whether Source names an HTTP endpoint.
func (c Config) IsRemote() bool {
	lower := strings.ToLower(c.Source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
