package platform

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration decodes YAML strings like "5m" or "1h" into a duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the environment-level configuration the engine consumes.
// Sources, lowest precedence first: built-in defaults, an optional YAML
// file, then environment variables (a .env file in the working directory
// is honored when present).
type Config struct {
	Bucket  string `yaml:"bucket"`
	Region  string `yaml:"region"`
	RoleARN string `yaml:"role_arn"`

	Username string `yaml:"username"`

	// SearchDirs overrides the local video search directories.
	// Empty means platform defaults (home Videos/Movies + ./videos).
	SearchDirs []string `yaml:"search_dirs"`

	FallbackWindow      Duration `yaml:"fallback_window"`
	DivergenceThreshold Duration `yaml:"divergence_threshold"`
	PresignTTL          Duration `yaml:"presign_ttl"`

	// MaxAttempts bounds transport-level retries. Zero keeps the adapter
	// default.
	MaxAttempts int `yaml:"max_attempts"`
}

// LoadConfig reads the optional YAML config file and applies environment
// overrides. A missing file is fine; a present but unparseable one is not.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults + env only.
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	// Populate the process environment from .env if one exists; real
	// environment variables keep precedence.
	_ = godotenv.Load()

	applyEnv(&cfg)
	return cfg, nil
}

// DefaultConfigPath is where LoadConfig looks when the caller passes no
// explicit path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sessionreel.yaml"
	}
	return home + string(os.PathSeparator) + ".sessionreel.yaml"
}

func applyEnv(cfg *Config) {
	setString(&cfg.Bucket, "REEL_BUCKET", "AWS_BUCKET_NAME")
	setString(&cfg.Region, "REEL_REGION", "AWS_REGION")
	setString(&cfg.RoleARN, "REEL_ROLE_ARN", "AWS_ROLE_ARN")
	setString(&cfg.Username, "REEL_USERNAME")

	if v := os.Getenv("REEL_SEARCH_DIRS"); v != "" {
		var dirs []string
		for _, d := range strings.Split(v, string(os.PathListSeparator)) {
			if d = strings.TrimSpace(d); d != "" {
				dirs = append(dirs, d)
			}
		}
		cfg.SearchDirs = dirs
	}

	setDuration(&cfg.FallbackWindow, "REEL_FALLBACK_WINDOW")
	setDuration(&cfg.DivergenceThreshold, "REEL_DIVERGENCE_THRESHOLD")
	setDuration(&cfg.PresignTTL, "REEL_PRESIGN_TTL")
}

func setString(dst *string, names ...string) {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			*dst = v
			return
		}
	}
}

func setDuration(dst *Duration, name string) {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = Duration(d)
		}
	}
}
