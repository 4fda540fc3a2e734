package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the server and CLI.
type Config struct {
	// HTTP server settings
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int
	Concurrency    int

	// Logging settings
	LogFile   string
	LogFormat string // "json" or "text"

	// Candidate source settings
	DatabaseURL  string
	FixturesFile string
	CorpusLimit  int

	// Scoring settings
	Normalizer          string
	WordWeight          float64
	EditWeight          float64
	LogFloor            float64
	DuplicateThreshold  float64
	SuggestionThreshold float64
	MaxResults          int
	WarmUp              bool

	// Call-site policy
	MinSuggestLength int
	MinCheckLength   int
}

// fileConfig mirrors the tunables that may be overridden from YAML.
type fileConfig struct {
	Normalizer *string `yaml:"normalizer"`
	Weights    *struct {
		Word float64 `yaml:"word"`
		Edit float64 `yaml:"edit"`
	} `yaml:"weights"`
	LogFloor            *float64 `yaml:"log_floor"`
	DuplicateThreshold  *float64 `yaml:"duplicate_threshold"`
	SuggestionThreshold *float64 `yaml:"suggestion_threshold"`
	MaxResults          *int     `yaml:"max_results"`
	CorpusLimit         *int     `yaml:"corpus_limit"`
	MinSuggestLength    *int     `yaml:"min_suggest_length"`
	MinCheckLength      *int     `yaml:"min_check_length"`
}

// Load reads .env (if present), the environment and the optional YAML file
// named by CONFIG_FILE, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := cfg.ApplyYAML(data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables and defaults.
func FromEnv() (*Config, error) {
	p := &parser{}

	cfg := &Config{
		Port:           p.getInt("PORT", 8080),
		ReadTimeout:    p.getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   p.getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestSize: p.getInt("MAX_REQUEST_SIZE", 1024*1024),
		Concurrency:    p.getInt("CONCURRENCY", 0),

		LogFile:   getEnv("LOG_FILE", ""),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),

		DatabaseURL:  getEnv("DATABASE_URL", ""),
		FixturesFile: getEnv("FIXTURES_FILE", ""),
		CorpusLimit:  p.getInt("CORPUS_LIMIT", 100),

		Normalizer:          getEnv("NORMALIZER", "default"),
		WordWeight:          p.getFloat("WORD_WEIGHT", 0.7),
		EditWeight:          p.getFloat("EDIT_WEIGHT", 0.3),
		LogFloor:            p.getFloat("LOG_FLOOR", 0.3),
		DuplicateThreshold:  p.getFloat("DUPLICATE_THRESHOLD", 0.65),
		SuggestionThreshold: p.getFloat("SUGGESTION_THRESHOLD", 0.5),
		MaxResults:          p.getInt("MAX_RESULTS", 5),
		WarmUp:              p.getBool("WARM_UP", true),

		MinSuggestLength: p.getInt("MIN_SUGGEST_LENGTH", 2),
		MinCheckLength:   p.getInt("MIN_CHECK_LENGTH", 10),
	}

	if err := p.err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyYAML overrides scoring and policy settings from a YAML document:
//
//	weights: {word: 0.7, edit: 0.3}
//	duplicate_threshold: 0.65
//	suggestion_threshold: 0.5
func (c *Config) ApplyYAML(data []byte) error {
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if f.Normalizer != nil {
		c.Normalizer = *f.Normalizer
	}
	if f.Weights != nil {
		c.WordWeight = f.Weights.Word
		c.EditWeight = f.Weights.Edit
	}
	if f.LogFloor != nil {
		c.LogFloor = *f.LogFloor
	}
	if f.DuplicateThreshold != nil {
		c.DuplicateThreshold = *f.DuplicateThreshold
	}
	if f.SuggestionThreshold != nil {
		c.SuggestionThreshold = *f.SuggestionThreshold
	}
	if f.MaxResults != nil {
		c.MaxResults = *f.MaxResults
	}
	if f.CorpusLimit != nil {
		c.CorpusLimit = *f.CorpusLimit
	}
	if f.MinSuggestLength != nil {
		c.MinSuggestLength = *f.MinSuggestLength
	}
	if f.MinCheckLength != nil {
		c.MinCheckLength = *f.MinCheckLength
	}
	return nil
}

// JSONLogs reports whether logs should be written as JSON.
func (c *Config) JSONLogs() bool {
	return c.LogFormat != "text"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser reads typed environment values and remembers every malformed one.
type parser struct {
	errs []error
}

func (p *parser) fail(key, value string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (p *parser) getInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

func (p *parser) getFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

func (p *parser) getBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

func (p *parser) getDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

func (p *parser) err() error {
	return errors.Join(p.errs...)
}
