package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/docindex/internal/index"
	"github.com/starford/docindex/internal/locator"
	"github.com/starford/docindex/internal/render"
	pkgconfig "github.com/starford/docindex/pkg/config"
)

// LoadConfig reads the configuration at path on top of NewDefaultConfig.
// When explicit is false a missing file means "use the defaults"; a path the
// user asked for must exist.
func LoadConfig(path string, explicit bool) (*Config, error) {
	cfg := NewDefaultConfig()
	if explicit {
		if err := pkgconfig.Load(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if _, err := pkgconfig.LoadOptional(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Config represents the application configuration.
type Config struct {
	App           ApplicationConfig    `yaml:"app"`
	Root          string               `yaml:"root"`
	DocumentTypes []DocumentTypeConfig `yaml:"document_types"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.DocumentTypes, validation.Required),
	); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.DocumentTypes))
	for i := range c.DocumentTypes {
		dt := &c.DocumentTypes[i]
		if err := dt.Validate(); err != nil {
			return fmt.Errorf("document_types[%d]: %w", i, err)
		}
		if _, dup := seen[dt.Name]; dup {
			return fmt.Errorf("document_types[%d]: duplicate name %q", i, dt.Name)
		}
		seen[dt.Name] = struct{}{}
	}
	return nil
}

// DocTypes compiles the configured document types.
func (c *Config) DocTypes() ([]index.DocType, error) {
	out := make([]index.DocType, 0, len(c.DocumentTypes))
	for _, dt := range c.DocumentTypes {
		compiled, err := dt.DocType()
		if err != nil {
			return nil, err
		}
		out = append(out, compiled)
	}
	return out, nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// DocumentTypeConfig describes one record directory and its index document.
type DocumentTypeConfig struct {
	Name               string   `yaml:"name"`
	Directory          string   `yaml:"directory"`
	IndexFile          string   `yaml:"index_file"`
	StartMarker        string   `yaml:"start_marker"`
	EndMarker          string   `yaml:"end_marker"`
	TitlePrefixPattern string   `yaml:"title_prefix_pattern"`
	TableHeaders       []string `yaml:"table_headers"`
	Placeholder        string   `yaml:"placeholder"`
	Ignore             []string `yaml:"ignore"`
}

// Validate validates the document type configuration.
func (c *DocumentTypeConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Directory, validation.Required),
		validation.Field(&c.IndexFile, validation.Required),
		validation.Field(&c.StartMarker, validation.Required),
		validation.Field(&c.EndMarker, validation.Required,
			validation.NotIn(c.StartMarker).Error("must differ from start_marker")),
		validation.Field(&c.TitlePrefixPattern, validation.By(validRegexp)),
		validation.Field(&c.TableHeaders, validation.Required,
			validation.Length(render.Columns, render.Columns),
			validation.Each(validation.Required)),
		validation.Field(&c.Ignore, validation.Each(validation.By(validGlob))),
	)
}

// DocType converts the configuration into the form used by the updater.
func (c *DocumentTypeConfig) DocType() (index.DocType, error) {
	var prefix *regexp.Regexp
	if c.TitlePrefixPattern != "" {
		re, err := regexp.Compile(c.TitlePrefixPattern)
		if err != nil {
			return index.DocType{}, fmt.Errorf("%s: title_prefix_pattern: %w", c.Name, err)
		}
		prefix = re
	}
	ignore := c.Ignore
	if ignore == nil {
		ignore = locator.DefaultIgnore
	}
	placeholder := c.Placeholder
	if placeholder == "" {
		placeholder = render.DefaultPlaceholder
	}
	return index.DocType{
		Name:         c.Name,
		Directory:    c.Directory,
		IndexFile:    c.IndexFile,
		StartMarker:  c.StartMarker,
		EndMarker:    c.EndMarker,
		TitlePrefix:  prefix,
		TableHeaders: c.TableHeaders,
		Placeholder:  placeholder,
		Ignore:       ignore,
	}, nil
}

func validRegexp(value any) error {
	s, _ := value.(string)
	if _, err := regexp.Compile(s); err != nil {
		return errors.New("must be a valid regular expression")
	}
	return nil
}

func validGlob(value any) error {
	s, _ := value.(string)
	if !doublestar.ValidatePattern(s) {
		return errors.New("must be a valid glob pattern")
	}
	return nil
}

// NewDefaultConfig returns a new Config with the ADR and RFC document types.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelWarn,
		},
		Root: ".",
		DocumentTypes: []DocumentTypeConfig{
			{
				Name:               "ADR",
				Directory:          "docs/architecture/adr",
				IndexFile:          "docs/architecture/adr/index.md",
				StartMarker:        "<!-- ADR-INDEX:START -->",
				EndMarker:          "<!-- ADR-INDEX:END -->",
				TitlePrefixPattern: `(?i)^\s*ADR\s+\d{4}\s*:\s*`,
				TableHeaders:       []string{"ADR", "Title", "Status", "Date", "Tags"},
			},
			{
				Name:               "RFC",
				Directory:          "docs/rfc",
				IndexFile:          "docs/rfc/index.md",
				StartMarker:        "<!-- RFC-INDEX:START -->",
				EndMarker:          "<!-- RFC-INDEX:END -->",
				TitlePrefixPattern: `(?i)^\s*RFC\s+\d{4}\s*:\s*`,
				TableHeaders:       []string{"RFC", "Title", "Status", "Date", "Tags"},
			},
		},
	}
}
