package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	FileName = "config.yaml"
	EnvFile  = ".env"

	ResumeSnapshot = "snapshot"
	ResumeDeadline = "deadline"

	NotifierTerminal = "terminal"
	NotifierPlugin   = "plugin"
	NotifierNone     = "none"
)

type Config struct {
	DataDir  string         `yaml:"-"`
	DBPath   string         `yaml:"-"`
	LogLevel string         `yaml:"log_level"`
	LogPath  string         `yaml:"log_path"`
	Timer    TimerConfig    `yaml:"timer"`
	XP       XPConfig       `yaml:"xp"`
	Notifier NotifierConfig `yaml:"notifier"`
}

type TimerConfig struct {
	WorkMinutes  int    `yaml:"work_minutes"`
	BreakMinutes int    `yaml:"break_minutes"`
	Resume       string `yaml:"resume"`
}

type XPConfig struct {
	SessionMinute int `yaml:"session_minute"`
	FocusComplete int `yaml:"focus_complete"`
}

type NotifierConfig struct {
	Kind          string `yaml:"kind"`
	PluginPath    string `yaml:"plugin_path"`
	ForceTerminal bool   `yaml:"force_terminal"`
}

// New returns defaults rooted at dataDir without touching the filesystem.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:  dataDir,
		DBPath:   filepath.Join(dataDir, "studyhub.db"),
		LogLevel: "info",
		LogPath:  filepath.Join(dataDir, "studyhub.log"),
		Timer: TimerConfig{
			WorkMinutes:  25,
			BreakMinutes: 5,
			Resume:       ResumeSnapshot,
		},
		XP: XPConfig{
			SessionMinute: 1,
			FocusComplete: 25,
		},
		Notifier: NotifierConfig{Kind: NotifierTerminal},
	}, nil
}

// Load layers config.yaml, the .env file and STUDYHUB_* variables over the defaults.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(filepath.Join(dataDir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", FileName, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read %s: %w", FileName, err)
	}

	// Variables already set in the process environment win over .env.
	if err := godotenv.Load(filepath.Join(dataDir, EnvFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", EnvFile, err)
	}
	applyEnv(&cfg)
	cfg.normalize()
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Timer.Resume {
	case ResumeSnapshot, ResumeDeadline:
	default:
		return fmt.Errorf("timer.resume must be %q or %q, got %q", ResumeSnapshot, ResumeDeadline, c.Timer.Resume)
	}
	switch c.Notifier.Kind {
	case NotifierTerminal, NotifierNone:
	case NotifierPlugin:
		if strings.TrimSpace(c.Notifier.PluginPath) == "" {
			return fmt.Errorf("notifier.plugin_path is required for the plugin notifier")
		}
	default:
		return fmt.Errorf("unsupported notifier kind %q", c.Notifier.Kind)
	}
	return nil
}

func (c *Config) normalize() {
	c.Timer.Resume = strings.ToLower(strings.TrimSpace(c.Timer.Resume))
	if c.Timer.Resume == "" {
		c.Timer.Resume = ResumeSnapshot
	}
	c.Notifier.Kind = strings.ToLower(strings.TrimSpace(c.Notifier.Kind))
	if c.Notifier.Kind == "" {
		c.Notifier.Kind = NotifierTerminal
	}
	if c.XP.SessionMinute < 0 {
		c.XP.SessionMinute = 0
	}
	if c.XP.FocusComplete < 0 {
		c.XP.FocusComplete = 0
	}
	if c.LogPath != "" && !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(c.DataDir, c.LogPath)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STUDYHUB_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STUDYHUB_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v, ok := envInt("STUDYHUB_WORK_MINUTES"); ok {
		cfg.Timer.WorkMinutes = v
	}
	if v, ok := envInt("STUDYHUB_BREAK_MINUTES"); ok {
		cfg.Timer.BreakMinutes = v
	}
	if v := os.Getenv("STUDYHUB_TIMER_RESUME"); v != "" {
		cfg.Timer.Resume = v
	}
	if v, ok := envInt("STUDYHUB_XP_SESSION_MINUTE"); ok {
		cfg.XP.SessionMinute = v
	}
	if v, ok := envInt("STUDYHUB_XP_FOCUS_COMPLETE"); ok {
		cfg.XP.FocusComplete = v
	}
	if v := os.Getenv("STUDYHUB_NOTIFIER"); v != "" {
		cfg.Notifier.Kind = v
	}
	if v := os.Getenv("STUDYHUB_NOTIFIER_PLUGIN"); v != "" {
		cfg.Notifier.PluginPath = v
	}
	if v := os.Getenv("STUDYHUB_NOTIFIER_FORCE_TERMINAL"); v != "" {
		cfg.Notifier.ForceTerminal = v == "1" || strings.EqualFold(v, "true")
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
