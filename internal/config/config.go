// Package config loads Study Desk settings: defaults, then a TOML file, then
// STUDYDESK_* environment overrides. Command-line flags are applied last by
// the caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Answer backends.
const (
	BackendSimulated = "simulated"
	BackendLLM       = "llm"
)

// Config is the full settings tree.
type Config struct {
	Library LibraryConfig `toml:"library"`
	Reader  ReaderConfig  `toml:"reader"`
	Chat    ChatConfig    `toml:"chat"`
	Upload  UploadConfig  `toml:"upload"`
	LLM     LLMConfig     `toml:"llm"`
	UI      UIConfig      `toml:"ui"`
}

// LibraryConfig says where course materials come from. With neither set the
// built-in demo materials are used.
type LibraryConfig struct {
	File    string `toml:"file"`
	DocsDir string `toml:"docs_dir"`
}

// ReaderConfig tunes the document preview.
type ReaderConfig struct {
	HideDelay time.Duration `toml:"filmstrip_hide_delay"`
}

// ChatConfig picks the answer backend.
type ChatConfig struct {
	Backend     string        `toml:"backend"`
	AnswerDelay time.Duration `toml:"answer_delay"`
}

// UploadConfig paces the simulated upload.
type UploadConfig struct {
	Tick       time.Duration `toml:"tick"`
	ResetAfter time.Duration `toml:"reset_after"`
}

// LLMConfig is used when Chat.Backend is "llm".
type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	Endpoint string `toml:"endpoint"`
}

// UIConfig holds terminal settings.
type UIConfig struct {
	AltScreen bool   `toml:"alt_screen"`
	Mouse     bool   `toml:"mouse"`
	LogFile   string `toml:"log_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Reader: ReaderConfig{HideDelay: 3 * time.Second},
		Chat:   ChatConfig{Backend: BackendSimulated, AnswerDelay: time.Second},
		Upload: UploadConfig{Tick: 200 * time.Millisecond, ResetAfter: time.Second},
		LLM:    LLMConfig{Provider: "ollama"},
		UI:     UIConfig{AltScreen: true, Mouse: true},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "studydesk", "config.toml")
	}
	return "studydesk.toml"
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error when path is the default location.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg.ApplyEnv()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// ApplyEnv applies STUDYDESK_* overrides.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("STUDYDESK_LIBRARY"); v != "" {
		c.Library.File = v
	}
	if v := os.Getenv("STUDYDESK_DOCS_DIR"); v != "" {
		c.Library.DocsDir = v
	}
	if v := os.Getenv("STUDYDESK_BACKEND"); v != "" {
		c.Chat.Backend = v
	}
	if v := os.Getenv("STUDYDESK_LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("STUDYDESK_LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("STUDYDESK_LLM_ENDPOINT"); v != "" {
		c.LLM.Endpoint = v
	}
	if v := os.Getenv("STUDYDESK_LOG"); v != "" {
		c.UI.LogFile = v
	}
	if d, ok := envDuration("STUDYDESK_HIDE_DELAY"); ok {
		c.Reader.HideDelay = d
	}
	if d, ok := envDuration("STUDYDESK_ANSWER_DELAY"); ok {
		c.Chat.AnswerDelay = d
	}
	if v := os.Getenv("STUDYDESK_MOUSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.Mouse = b
		}
	}
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

// ValidationError is one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the settings.
func (c *Config) Validate() error {
	var errs ValidationErrors
	if c.Reader.HideDelay <= 0 {
		errs = append(errs, ValidationError{Field: "reader.filmstrip_hide_delay", Message: "must be positive"})
	}
	if c.Chat.AnswerDelay < 0 {
		errs = append(errs, ValidationError{Field: "chat.answer_delay", Message: "cannot be negative"})
	}
	if c.Upload.Tick <= 0 {
		errs = append(errs, ValidationError{Field: "upload.tick", Message: "must be positive"})
	}
	if c.Upload.ResetAfter < 0 {
		errs = append(errs, ValidationError{Field: "upload.reset_after", Message: "cannot be negative"})
	}
	switch strings.ToLower(c.Chat.Backend) {
	case BackendSimulated, BackendLLM:
	default:
		errs = append(errs, ValidationError{
			Field:   "chat.backend",
			Message: fmt.Sprintf("invalid backend %q, must be one of: simulated, llm", c.Chat.Backend),
		})
	}
	switch strings.ToLower(c.LLM.Provider) {
	case "", "ollama", "openai":
	default:
		errs = append(errs, ValidationError{
			Field:   "llm.provider",
			Message: fmt.Sprintf("invalid provider %q, must be one of: ollama, openai", c.LLM.Provider),
		})
	}
	if c.LLM.Endpoint != "" {
		if u, err := url.Parse(c.LLM.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{Field: "llm.endpoint", Message: "must be an absolute URL"})
		}
	}
	if c.Library.File != "" && c.Library.DocsDir != "" {
		errs = append(errs, ValidationError{Field: "library", Message: "set either file or docs_dir, not both"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
