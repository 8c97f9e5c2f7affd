// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/corpgraph/corpgraph/internal/wikidata"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "config.yml"

const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// File is the on-disk layout: everything lives under a top-level "config" key.
type File struct {
	Config Config `yaml:"config"`
}

// Config is loaded once and passed explicitly to every component.
type Config struct {
	Companies []string `yaml:"companies" validate:"dive,required"`
	// PropsToFetch are parsed for every resolved entity.
	PropsToFetch []string `yaml:"props_to_fetch" validate:"required,min=1,dive,required"`
	// CorporateCompanyProps mark an entity as a corporate entity.
	CorporateCompanyProps []string `yaml:"corporate_company_props" validate:"required,min=1,dive,required"`
	// PropsNameMap maps property ids to semantic field names.
	PropsNameMap map[string]string `yaml:"props-name-map" validate:"required,min=1,dive,required"`
	// SubsidiaryProps are followed to discover subsidiaries.
	SubsidiaryProps []string `yaml:"subsidiary_props" validate:"dive,required"`

	APIURL             string   `yaml:"api_url" validate:"required,url"`
	UserAgent          string   `yaml:"user_agent" validate:"required"`
	Languages          []string `yaml:"languages" validate:"required,min=1,dive,required"`
	PreferredLanguages []string `yaml:"preferred_languages" validate:"dive,required"`
	SearchLimit        int      `yaml:"search_limit" validate:"gte=1,lte=50"`
	MaxDepth           int      `yaml:"max_depth" validate:"gte=0"`
	RequestsPerSecond  float64  `yaml:"requests_per_second" validate:"gte=0"`
	Timeout            string   `yaml:"timeout" validate:"required"`

	Output Output `yaml:"output"`
}

// Output selects and configures the persistence sink.
type Output struct {
	Backend  string `yaml:"backend" validate:"required,oneof=file s3"`
	Dir      string `yaml:"dir"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`

	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// Default returns a Config with every optional setting filled in.
func Default() Config {
	return Config{
		SubsidiaryProps:    []string{"P355", "P527"},
		APIURL:             wikidata.DefaultBaseURL,
		UserAgent:          wikidata.DefaultUserAgent,
		Languages:          []string{"en"},
		PreferredLanguages: []string{"en"},
		SearchLimit:        3,
		MaxDepth:           1,
		RequestsPerSecond:  5,
		Timeout:            "30s",
		Output: Output{
			Backend: BackendFile,
			Dir:     ".",
		},
	}
}

// LoadEnv loads a .env file from the working directory, if one exists.
// Variables already set in the environment take precedence.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

// Load reads the YAML file at path on top of Default, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration content; see Load.
func Parse(data []byte) (*Config, error) {
	file := File{Config: Default()}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := file.Config
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid config: timeout %q: %w", c.Timeout, err)
	}
	if c.Output.Backend == BackendS3 && c.Output.Bucket == "" {
		return fmt.Errorf("invalid config: output.bucket is required for the s3 backend")
	}
	return nil
}

// TimeoutDuration returns the parsed request timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

func (c *Config) applyEnv() {
	c.APIURL = getEnvString("CORPGRAPH_API_URL", c.APIURL)
	c.UserAgent = getEnvString("CORPGRAPH_USER_AGENT", c.UserAgent)
	c.Output.Dir = getEnvString("CORPGRAPH_OUTPUT_DIR", c.Output.Dir)
	c.Output.Bucket = getEnvString("CORPGRAPH_S3_BUCKET", c.Output.Bucket)
	c.Output.Region = getEnvString("AWS_REGION", c.Output.Region)
	c.Output.Endpoint = getEnvString("AWS_ENDPOINT", c.Output.Endpoint)
	c.Output.AccessKey = getEnvString("AWS_ACCESS_KEY", c.Output.AccessKey)
	c.Output.SecretKey = getEnvString("AWS_SECRET_KEY", c.Output.SecretKey)
}

func getEnvString(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

// GetEnvBool reads a boolean environment variable; anything other than
// "true" or "false" yields defaultValue.
func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if value == "true" || value == "false" {
		return value == "true"
	}
	return defaultValue
}
