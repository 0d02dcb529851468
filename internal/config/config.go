package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filterable/internal/domain"
	"filterable/internal/eventbus"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config describes a page: its elements, filter timing and styles
type Config struct {
	Version  int                    `toml:"version" yaml:"version" json:"version"`
	Title    string                 `toml:"title" yaml:"title" json:"title"`
	Filter   FilterSettings         `toml:"filter" yaml:"filter" json:"filter"`
	UI       UISettings             `toml:"ui" yaml:"ui" json:"ui"`
	Styles   map[string]StyleConfig `toml:"styles,omitempty" yaml:"styles,omitempty" json:"styles,omitempty"`
	Elements []ElementConfig        `toml:"elements" yaml:"elements" json:"elements"`
}

// FilterSettings holds the debounce delays in milliseconds
type FilterSettings struct {
	DebounceMS       int `toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
	ResizeDebounceMS int `toml:"resize_debounce_ms" yaml:"resize_debounce_ms" json:"resize_debounce_ms"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PopupHeight int  `toml:"popup_height" yaml:"popup_height" json:"popup_height"`
	FieldWidth  int  `toml:"field_width" yaml:"field_width" json:"field_width"`
	Mouse       bool `toml:"mouse" yaml:"mouse" json:"mouse"`
	AltScreen   bool `toml:"alt_screen" yaml:"alt_screen" json:"alt_screen"`
}

// StyleConfig is a named style class
type StyleConfig struct {
	Foreground string `toml:"foreground,omitempty" yaml:"foreground,omitempty" json:"foreground,omitempty"`
	Background string `toml:"background,omitempty" yaml:"background,omitempty" json:"background,omitempty"`
	Bold       bool   `toml:"bold,omitempty" yaml:"bold,omitempty" json:"bold,omitempty"`
	Italic     bool   `toml:"italic,omitempty" yaml:"italic,omitempty" json:"italic,omitempty"`
	Faint      bool   `toml:"faint,omitempty" yaml:"faint,omitempty" json:"faint,omitempty"`
	Border     bool   `toml:"border,omitempty" yaml:"border,omitempty" json:"border,omitempty"`
}

// OptionConfig is one select option
type OptionConfig struct {
	Text  string `toml:"text" yaml:"text" json:"text"`
	Value string `toml:"value" yaml:"value" json:"value"`
}

// ElementConfig is one page element. Which fields apply depends on Kind.
type ElementConfig struct {
	Kind  string `toml:"kind" yaml:"kind" json:"kind"`
	ID    string `toml:"id" yaml:"id" json:"id"`
	Label string `toml:"label,omitempty" yaml:"label,omitempty" json:"label,omitempty"`

	// select
	Value          string         `toml:"value,omitempty" yaml:"value,omitempty" json:"value,omitempty"`
	Options        []OptionConfig `toml:"options,omitempty" yaml:"options,omitempty" json:"options,omitempty"`
	ButtonClass    string         `toml:"button_class,omitempty" yaml:"button_class,omitempty" json:"button_class,omitempty"`
	DropdownClass  string         `toml:"dropdown_class,omitempty" yaml:"dropdown_class,omitempty" json:"dropdown_class,omitempty"`
	NoMatchClass   string         `toml:"no_match_class,omitempty" yaml:"no_match_class,omitempty" json:"no_match_class,omitempty"`
	NoMatchMessage string         `toml:"no_match_message,omitempty" yaml:"no_match_message,omitempty" json:"no_match_message,omitempty"`

	// list
	Items []string `toml:"items,omitempty" yaml:"items,omitempty" json:"items,omitempty"`

	// table
	Columns       []string   `toml:"columns,omitempty" yaml:"columns,omitempty" json:"columns,omitempty"`
	Rows          [][]string `toml:"rows,omitempty" yaml:"rows,omitempty" json:"rows,omitempty"`
	ValueSelector string     `toml:"value_selector,omitempty" yaml:"value_selector,omitempty" json:"value_selector,omitempty"`

	// list and table
	SearchField string `toml:"search_field,omitempty" yaml:"search_field,omitempty" json:"search_field,omitempty"`

	// input
	Placeholder string `toml:"placeholder,omitempty" yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
}

// Format is a config file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for paths with an unrecognized extension
var ErrUnknownFormat = errors.New("unknown config format")

// FormatFor picks the encoding from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Marshal encodes cfg in the given format
func Marshal(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(cfg)
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Unmarshal decodes data in the given format
func Unmarshal(data []byte, format Format) (*Config, error) {
	var cfg Config
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	case FormatJSON:
		err = json.Unmarshal(data, &cfg)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the default page file in
// the user's config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return NewConfigServiceForPath(filepath.Join(configDir, "filterable", "page.toml"))
}

// NewConfigServiceForPath creates a config service for a specific file
func NewConfigServiceForPath(path string) ConfigService {
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigServiceForPath(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the demo
// page.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:     cs.filePath,
			Elements: len(cfg.Elements),
		})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads and validates configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Unmarshal(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(config, format)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks that every element has a unique ID and a known kind
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, e := range c.Elements {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return fmt.Errorf("element %d: missing id", i)
		}
		if seen[id] {
			return fmt.Errorf("element %d: duplicate id %q", i, id)
		}
		seen[id] = true

		switch domain.ElementKind(e.Kind) {
		case domain.KindSelect, domain.KindList, domain.KindTable, domain.KindInput:
		default:
			return fmt.Errorf("element %q: unknown kind %q", id, e.Kind)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Filter.DebounceMS <= 0 {
		c.Filter.DebounceMS = 200
	}
	if c.Filter.ResizeDebounceMS <= 0 {
		c.Filter.ResizeDebounceMS = 100
	}
	if c.UI.PopupHeight <= 0 {
		c.UI.PopupHeight = 8
	}
	if c.UI.FieldWidth <= 0 {
		c.UI.FieldWidth = 24
	}
}

// DefaultConfig returns the built-in demo page
func DefaultConfig() *Config {
	cfg := &Config{
		Version: 1,
		Title:   "Filterable demo",
		UI: UISettings{
			Mouse:     true,
			AltScreen: true,
		},
		Styles: map[string]StyleConfig{
			"filterable-button":   {Foreground: "#FFFF00", Bold: true},
			"filterable-dropdown": {Foreground: "#FFFFFF", Border: true},
			"filterable-no-match": {Foreground: "#808080", Italic: true},
		},
		Elements: []ElementConfig{
			{
				Kind:  string(domain.KindSelect),
				ID:    "fruit",
				Label: "Fruit",
				Options: []OptionConfig{
					{Text: "-- choose --", Value: ""},
					{Text: "Apple", Value: "apple"},
					{Text: "Banana", Value: "banana"},
					{Text: "Cherry", Value: "cherry"},
					{Text: "Date", Value: "date"},
					{Text: "Elderberry", Value: "elderberry"},
					{Text: "Fig", Value: "fig"},
					{Text: "Grape", Value: "grape"},
					{Text: "Honeydew", Value: "honeydew"},
					{Text: "Kiwi", Value: "kiwi"},
					{Text: "Lemon", Value: "lemon"},
				},
			},
			{
				Kind:  string(domain.KindSelect),
				ID:    "color",
				Label: "Color",
				Options: []OptionConfig{
					{Text: "Red", Value: "red"},
					{Text: "Green", Value: "green"},
					{Text: "Blue", Value: "blue"},
					{Text: "Yellow", Value: "yellow"},
				},
				NoMatchMessage: "No such color",
			},
			{
				Kind:        string(domain.KindInput),
				ID:          "fruit-search",
				Label:       "Search fruits",
				Placeholder: "type to filter",
			},
			{
				Kind:        string(domain.KindList),
				ID:          "fruits",
				Label:       "Fruits",
				Items:       []string{"Apple", "Banana", "Cherry", "Date", "Elderberry"},
				SearchField: "#fruit-search",
			},
			{
				Kind:        string(domain.KindInput),
				ID:          "stock-search",
				Label:       "Search stock",
				Placeholder: "name or color",
			},
			{
				Kind:    string(domain.KindTable),
				ID:      "stock",
				Label:   "Stock",
				Columns: []string{"Name", "Color", "Stock"},
				Rows: [][]string{
					{"Apple", "red", "12"},
					{"Banana", "yellow", "7"},
					{"Lime", "green", "30"},
					{"Kiwi", "green", "4"},
				},
				ValueSelector: "Name,Color",
				SearchField:   "#stock-search",
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}
