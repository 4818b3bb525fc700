// Package config loads service configuration from a YAML file with
// CENTRAL_-prefixed environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the validated runtime configuration.
type Config struct {
	GitHub       GitHubConfig   `mapstructure:"github"`
	Buildbot     BuildbotConfig `mapstructure:"buildbot"`
	IRC          IRCConfig      `mapstructure:"irc"`
	Journal      JournalConfig  `mapstructure:"journal"`
	FetchTimeout time.Duration  `mapstructure:"fetch_timeout"`
}

// GitHubConfig selects which repositories this instance builds and how
// contributors ask for manual rebuilds.
type GitHubConfig struct {
	Maintain       []string `mapstructure:"maintain"`
	RebuildCommand string   `mapstructure:"rebuild_command"`
	Token          string   `mapstructure:"token"`
}

// BuildbotConfig describes the build farm: where job files are spooled
// and which builders handle pull requests.
type BuildbotConfig struct {
	JobDir         string   `mapstructure:"jobdir"`
	URL            string   `mapstructure:"url"`
	PRBuilders     []string `mapstructure:"pr_builders"`
	FifoCIBuilders []string `mapstructure:"fifoci_builders"`
}

// IRCConfig targets chat-triggered rebuilds. An empty RebuildRepo
// disables the chat frontend.
type IRCConfig struct {
	RebuildRepo string `mapstructure:"rebuild_repo"`
}

// JournalConfig controls status journal storage and retention.
type JournalConfig struct {
	Path          string        `mapstructure:"path"`
	Retention     time.Duration `mapstructure:"retention"`
	PruneInterval time.Duration `mapstructure:"prune_interval"`
}

// Load reads central.yml (or the file named by $CENTRAL_CONFIG), applies
// CENTRAL_ environment overrides and defaults, and returns a validated
// Config. The default config file may be absent; an explicitly configured
// path must exist.
func Load() (*Config, error) {
	v := viper.New()

	path := os.Getenv("CENTRAL_CONFIG")
	explicit := path != ""
	if !explicit {
		path = "central.yml"
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CENTRAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so environment overrides are visible
	// to Unmarshal even without a config file entry.
	v.SetDefault("github.maintain", []string{})
	v.SetDefault("github.rebuild_command", "@central rebuild")
	v.SetDefault("github.token", "")
	v.SetDefault("buildbot.jobdir", "")
	v.SetDefault("buildbot.url", "")
	v.SetDefault("buildbot.pr_builders", []string{})
	v.SetDefault("buildbot.fifoci_builders", []string{})
	v.SetDefault("irc.rebuild_repo", "")
	v.SetDefault("journal.path", "central.db")
	v.SetDefault("journal.retention", "720h")
	v.SetDefault("journal.prune_interval", "1h")
	v.SetDefault("fetch_timeout", "30s")

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.GitHub.Maintain) == 0 {
		return errors.New("github.maintain must list at least one repository")
	}
	for _, repo := range c.GitHub.Maintain {
		if !validRepoName(repo) {
			return fmt.Errorf("github.maintain entry %q is not owner/name", repo)
		}
	}
	if c.Buildbot.JobDir == "" {
		return errors.New("buildbot.jobdir must be set")
	}
	if len(c.Buildbot.PRBuilders) == 0 {
		return errors.New("buildbot.pr_builders must list at least one builder")
	}
	if c.IRC.RebuildRepo != "" && !validRepoName(c.IRC.RebuildRepo) {
		return fmt.Errorf("irc.rebuild_repo %q is not owner/name", c.IRC.RebuildRepo)
	}
	if c.Journal.Retention <= 0 {
		return errors.New("journal.retention must be positive")
	}
	if c.Journal.PruneInterval <= 0 {
		return errors.New("journal.prune_interval must be positive")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("fetch_timeout must be positive")
	}
	return nil
}

func validRepoName(repo string) bool {
	owner, name, ok := strings.Cut(repo, "/")
	return ok && owner != "" && name != "" && !strings.Contains(name, "/")
}
