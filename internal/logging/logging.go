// Package logging configures the global zerolog logger from either the
// -v/-q verbosity counters or a structured config file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Setup configures the global logger from the repeatable -v/-q flags.
// The base severity threshold is Info; each --quiet occurrence raises it
// one step and each --verbose occurrence lowers it one step, clamped to
// zerolog's range.
func Setup(verbose, quiet int) {
	level := int(zerolog.InfoLevel) + quiet - verbose
	if level < int(zerolog.TraceLevel) {
		level = int(zerolog.TraceLevel)
	}
	if level > int(zerolog.Disabled) {
		level = int(zerolog.Disabled)
	}
	zerolog.SetGlobalLevel(zerolog.Level(level))

	log.Logger = zerolog.New(consoleWriter(false)).With().Timestamp().Logger()
	log.Debug().Stringer("level", zerolog.Level(level)).Msg("logging level set")
}

// FileConfig is the structured logging configuration loaded via --log-config.
type FileConfig struct {
	Level   string `json:"level" yaml:"level" toml:"level"`       // zerolog level name, e.g. "debug"
	Format  string `json:"format" yaml:"format" toml:"format"`    // "console" (default) or "json"
	File    string `json:"file" yaml:"file" toml:"file"`          // optional log file, appended to
	NoColor bool   `json:"no_color" yaml:"no_color" toml:"no_color"`
}

// SetupFromFile loads a FileConfig from a JSON, YAML, or TOML file chosen
// by extension and applies it, overriding any -v/-q setting.
func SetupFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading log config: %w", err)
	}

	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &cfg)
	case ".toml":
		err = toml.Unmarshal(raw, &cfg)
	default:
		return fmt.Errorf("log config %q: unsupported format (want .json, .yaml, or .toml)", path)
	}
	if err != nil {
		return fmt.Errorf("parsing log config %q: %w", path, err)
	}
	return apply(cfg, path)
}

func apply(cfg FileConfig, path string) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return fmt.Errorf("log config %q: %w", path, err)
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer
	switch cfg.Format {
	case "", "console":
		out = consoleWriter(cfg.NoColor)
	case "json":
		out = os.Stderr
	default:
		return fmt.Errorf("log config %q: unknown format %q", path, cfg.Format)
	}

	writers := []io.Writer{out}
	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	log.Debug().Str("path", path).Msg("log config loaded")
	return nil
}

// Logger returns a logger tagged with a component name.
func Logger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func consoleWriter(noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}
}

// openLogFile creates the log file's parent directories and opens it in
// append mode.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
