// Package config provides configuration loading and management for teicrm.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/coolbeans/teicrm/pkg/ingest"
	"github.com/coolbeans/teicrm/pkg/mapping"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config represents the complete teicrm configuration
type Config struct {
	// Domain prefixes the xml:id of every entity (e.g. "https://example.org/")
	Domain string `yaml:"domain"`
	// TypeDomain is the base of generated E55 type IRIs
	TypeDomain string `yaml:"type_domain"`
	// DefaultLang tags literals of elements without xml:lang
	DefaultLang string `yaml:"default_lang"`
	// NotKnownValue is the literal used for unknown dates
	NotKnownValue string `yaml:"not_known_value"`
	// Verbose enables diagnostics for skipped structures
	Verbose bool `yaml:"verbose"`
	// Strict fails on entities without xml:id instead of skipping them
	Strict bool `yaml:"strict"`

	Identifiers  IdentifierConfig  `yaml:"identifiers"`
	Persons      PersonConfig      `yaml:"persons"`
	Affiliations AffiliationConfig `yaml:"affiliations"`
	Geo          GeoConfig         `yaml:"geo"`
	Watch        WatchConfig       `yaml:"watch"`
}

// IdentifierConfig configures identifier mapping
type IdentifierConfig struct {
	// Prefix starts identifier labels
	Prefix string `yaml:"prefix"`
	// SetLang tags identifier labels with the element language instead of "und"
	SetLang bool `yaml:"set_lang"`
	// SameAs links URL-shaped idno values with owl:sameAs
	SameAs bool `yaml:"same_as"`
}

// PersonConfig configures the person-specific mappers
type PersonConfig struct {
	BirthPrefix       string `yaml:"birth_prefix"`
	DeathPrefix       string `yaml:"death_prefix"`
	PlaceIDXPath      string `yaml:"place_id_xpath"`
	OccupationPrefix  string `yaml:"occupation_prefix"`
	OccupationIDXPath string `yaml:"occupation_id_xpath"`
	EventPrefix       string `yaml:"event_prefix"`
}

// AffiliationConfig configures affiliation mapping
type AffiliationConfig struct {
	OrgIDXPath    string `yaml:"org_id_xpath"`
	OrgLabelXPath string `yaml:"org_label_xpath"`
	Lang          string `yaml:"lang"`
}

// GeoConfig configures coordinate mapping
type GeoConfig struct {
	XPath     string `yaml:"xpath"`
	Separator string `yaml:"separator"`
	// Inverse reads coordinates as "longitude latitude"
	Inverse bool `yaml:"inverse"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is how long to wait for more changes before rebuilding
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Domain:        "https://example.org/",
		TypeDomain:    "https://foo-bar/",
		DefaultLang:   "de",
		NotKnownValue: mapping.DefaultNotKnownValue,
		Identifiers: IdentifierConfig{
			Prefix: mapping.DefaultIdentifierPrefix,
			SameAs: true,
		},
		Persons: PersonConfig{
			BirthPrefix:      "Geburt von",
			DeathPrefix:      "Tod von",
			PlaceIDXPath:     "//tei:placeName/@key",
			OccupationPrefix: "occupation",
			EventPrefix:      "Event:",
		},
		Affiliations: AffiliationConfig{
			OrgIDXPath: "./@ref",
			Lang:       "en",
		},
		Geo: GeoConfig{
			XPath:     ".//tei:geo[1]",
			Separator: " ",
		},
		Watch: WatchConfig{
			Debounce: ingest.DefaultDebounce,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := validateBase("domain", c.Domain); err != nil {
		return err
	}
	if err := validateBase("type_domain", c.TypeDomain); err != nil {
		return err
	}
	if c.DefaultLang == "" {
		return fmt.Errorf("default_lang is required")
	}
	if c.NotKnownValue == "" {
		return fmt.Errorf("not_known_value is required")
	}
	if c.Geo.Separator == "" {
		return fmt.Errorf("geo.separator is required")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

func validateBase(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid IRI: %w", field, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute IRI, got %q", field, value)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.YAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// YAML returns the configuration as a YAML document
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values; false booleans never override)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	mergeString(&c.Domain, other.Domain)
	mergeString(&c.TypeDomain, other.TypeDomain)
	mergeString(&c.DefaultLang, other.DefaultLang)
	mergeString(&c.NotKnownValue, other.NotKnownValue)
	c.Verbose = c.Verbose || other.Verbose
	c.Strict = c.Strict || other.Strict

	// Identifiers
	mergeString(&c.Identifiers.Prefix, other.Identifiers.Prefix)
	c.Identifiers.SetLang = c.Identifiers.SetLang || other.Identifiers.SetLang
	c.Identifiers.SameAs = c.Identifiers.SameAs || other.Identifiers.SameAs

	// Persons
	mergeString(&c.Persons.BirthPrefix, other.Persons.BirthPrefix)
	mergeString(&c.Persons.DeathPrefix, other.Persons.DeathPrefix)
	mergeString(&c.Persons.PlaceIDXPath, other.Persons.PlaceIDXPath)
	mergeString(&c.Persons.OccupationPrefix, other.Persons.OccupationPrefix)
	mergeString(&c.Persons.OccupationIDXPath, other.Persons.OccupationIDXPath)
	mergeString(&c.Persons.EventPrefix, other.Persons.EventPrefix)

	// Affiliations
	mergeString(&c.Affiliations.OrgIDXPath, other.Affiliations.OrgIDXPath)
	mergeString(&c.Affiliations.OrgLabelXPath, other.Affiliations.OrgLabelXPath)
	mergeString(&c.Affiliations.Lang, other.Affiliations.Lang)

	// Geo
	mergeString(&c.Geo.XPath, other.Geo.XPath)
	mergeString(&c.Geo.Separator, other.Geo.Separator)
	c.Geo.Inverse = c.Geo.Inverse || other.Geo.Inverse

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}

func mergeString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// MappingConfig returns the mapper configuration, logging to logger.
func (c *Config) MappingConfig(logger *zap.SugaredLogger) mapping.Config {
	cfg := mapping.DefaultConfig()
	cfg.NotKnownValue = c.NotKnownValue
	cfg.Verbose = c.Verbose
	if logger != nil {
		cfg.Logger = logger
	}
	return cfg
}

// IngestOptions returns the per-mapper options for the ingest builder.
func (c *Config) IngestOptions() ingest.Options {
	return ingest.Options{
		Domain: c.Domain,
		Strict: c.Strict,
		Identifiers: mapping.IdentifierOptions{
			TypeDomain:    c.TypeDomain,
			DefaultLang:   c.DefaultLang,
			SetLang:       c.Identifiers.SetLang,
			DisableSameAs: !c.Identifiers.SameAs,
			Prefix:        c.Identifiers.Prefix,
		},
		Appellations: mapping.AppellationOptions{
			TypeDomain:  c.TypeDomain,
			DefaultLang: c.DefaultLang,
		},
		Occupations: mapping.OccupationOptions{
			Prefix:      c.Persons.OccupationPrefix,
			IDXPath:     c.Persons.OccupationIDXPath,
			DefaultLang: c.DefaultLang,
		},
		Affiliations: mapping.AffiliationOptions{
			Domain:        c.Domain,
			OrgIDXPath:    c.Affiliations.OrgIDXPath,
			OrgLabelXPath: c.Affiliations.OrgLabelXPath,
			Lang:          c.Affiliations.Lang,
		},
		Birth: mapping.BirthDeathOptions{
			Domain:       c.Domain,
			EventType:    mapping.EventBirth,
			Prefix:       c.Persons.BirthPrefix,
			DefaultLang:  c.DefaultLang,
			PlaceIDXPath: c.Persons.PlaceIDXPath,
		},
		Death: mapping.BirthDeathOptions{
			Domain:       c.Domain,
			EventType:    mapping.EventDeath,
			Prefix:       c.Persons.DeathPrefix,
			DefaultLang:  c.DefaultLang,
			PlaceIDXPath: c.Persons.PlaceIDXPath,
		},
		Events: mapping.EventOptions{
			TypeDomain:  c.TypeDomain,
			Domain:      c.Domain,
			Prefix:      c.Persons.EventPrefix,
			DefaultLang: c.DefaultLang,
		},
		Geo: mapping.GeoOptions{
			XPath:     c.Geo.XPath,
			Separator: c.Geo.Separator,
			Inverse:   c.Geo.Inverse,
		},
	}
}
