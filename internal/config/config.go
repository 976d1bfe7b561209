package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultLogLevel    = "info"
	defaultAuthorList  = "authors.csv"
	defaultAuthorDir   = "authors"
	defaultCheckAuthor = "all"
	defaultExtractor   = "amazon"
	defaultUserAgent   = "AuthorWatch/1.0"

	configPathEnv    = "AUTHORWATCH_CONFIG"
	authorListEnv    = "AUTHORWATCH_AUTHOR_LIST"
	authorDirEnv     = "AUTHORWATCH_AUTHOR_DIR"
	logLevelEnv      = "LOG_LEVEL"
	pushoverUserEnv  = "PUSHOVER_USER_TOKEN"
	pushoverTokenEnv = "PUSHOVER_API_TOKEN"
)

// ErrMissingCredentials is returned when the Pushover tokens are not configured.
var ErrMissingCredentials = errors.New("pushover user token and api token are required")

// Config holds every setting of a run. It is built once at startup and passed down.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Authors       AuthorsConfig      `yaml:"authors"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Extractor     ExtractorConfig    `yaml:"extractor"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
}

// LoggingConfig selects the log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AuthorsConfig locates the author list and the per-author title files.
type AuthorsConfig struct {
	ListPath string `yaml:"listPath"`
	FilesDir string `yaml:"filesDir"`
	// Check is an author name, or "all".
	Check string `yaml:"check"`
}

// FetchConfig tunes catalog page downloads.
type FetchConfig struct {
	UserAgent   string        `yaml:"userAgent"`
	Timeout     time.Duration `yaml:"timeout"`
	MinInterval time.Duration `yaml:"minInterval"`
}

// ExtractorConfig picks the title extraction strategy.
type ExtractorConfig struct {
	Name     string `yaml:"name"`
	Selector string `yaml:"selector"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Pushover PushoverConfig `yaml:"pushover"`
}

// PushoverConfig wires all data required to send messages.
type PushoverConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UserToken string `yaml:"userToken"`
	APIToken  string `yaml:"apiToken"`
}

// SchedulerConfig enables watch mode when Interval is positive.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Load builds the configuration from defaults, the optional YAML file,
// environment variables and finally the command-line args.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("authorwatch", flag.ContinueOnError)
	var opts options
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := defaultConfig()

	path := opts.configPath
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg.applyEnvOverrides()
	opts.apply(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports configuration errors that must stop the run before any work.
func (c Config) Validate() error {
	if c.Notifications.Pushover.UserToken == "" || c.Notifications.Pushover.APIToken == "" {
		return ErrMissingCredentials
	}
	if c.Scheduler.Interval < 0 {
		return fmt.Errorf("scheduler interval must not be negative: %s", c.Scheduler.Interval)
	}
	if c.Fetch.MinInterval < 0 {
		return fmt.Errorf("fetch min interval must not be negative: %s", c.Fetch.MinInterval)
	}
	return nil
}

func readFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fileCfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(authorListEnv); v != "" {
		c.Authors.ListPath = v
	}

	if v := os.Getenv(authorDirEnv); v != "" {
		c.Authors.FilesDir = v
	}

	if v := os.Getenv(pushoverUserEnv); v != "" {
		c.Notifications.Pushover.UserToken = v
	}

	if v := os.Getenv(pushoverTokenEnv); v != "" {
		c.Notifications.Pushover.APIToken = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Authors.ListPath != "" {
		base.Authors.ListPath = override.Authors.ListPath
	}
	if override.Authors.FilesDir != "" {
		base.Authors.FilesDir = override.Authors.FilesDir
	}
	if override.Authors.Check != "" {
		base.Authors.Check = override.Authors.Check
	}

	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}
	if override.Fetch.Timeout != 0 {
		base.Fetch.Timeout = override.Fetch.Timeout
	}
	if override.Fetch.MinInterval != 0 {
		base.Fetch.MinInterval = override.Fetch.MinInterval
	}

	if override.Extractor.Name != "" {
		base.Extractor.Name = override.Extractor.Name
	}
	if override.Extractor.Selector != "" {
		base.Extractor.Selector = override.Extractor.Selector
	}

	if override.Notifications.Pushover.Endpoint != "" {
		base.Notifications.Pushover.Endpoint = override.Notifications.Pushover.Endpoint
	}
	if override.Notifications.Pushover.UserToken != "" {
		base.Notifications.Pushover.UserToken = override.Notifications.Pushover.UserToken
	}
	if override.Notifications.Pushover.APIToken != "" {
		base.Notifications.Pushover.APIToken = override.Notifications.Pushover.APIToken
	}

	if override.Scheduler.Interval != 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: defaultLogLevel},
		Authors: AuthorsConfig{
			ListPath: defaultAuthorList,
			FilesDir: defaultAuthorDir,
			Check:    defaultCheckAuthor,
		},
		Fetch: FetchConfig{
			UserAgent:   defaultUserAgent,
			Timeout:     20 * time.Second,
			MinInterval: time.Second,
		},
		Extractor: ExtractorConfig{Name: defaultExtractor},
	}
}
