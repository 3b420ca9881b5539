package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-chordsheet/internal/config"
)

// envPrefix marks the variables chordsheet reads.
const envPrefix = "CHORDSHEET_"

// envConfig holds overrides read from CHORDSHEET_* variables, for CI jobs
// that would rather not ship a config file.
type envConfig struct {
	ConfigPath string        // CHORDSHEET_CONFIG: config file name or path
	Style      string        // CHORDSHEET_STYLE: style name or CSS file
	Chords     string        // CHORDSHEET_CHORDS: chord file
	Timeout    time.Duration // CHORDSHEET_TIMEOUT: PDF generation timeout
	InputDir   string        // CHORDSHEET_INPUT_DIR: default input directory
	OutputDir  string        // CHORDSHEET_OUTPUT_DIR: default output directory
	PageSize   string        // CHORDSHEET_PAGE_SIZE: letter, a4, a5, legal
	Workers    int           // CHORDSHEET_WORKERS: parallel workers
}

// knownEnvVars is used to flag typos such as CHORDSHEET_WORKER.
var knownEnvVars = map[string]bool{
	"CHORDSHEET_CONFIG":     true,
	"CHORDSHEET_STYLE":      true,
	"CHORDSHEET_CHORDS":     true,
	"CHORDSHEET_TIMEOUT":    true,
	"CHORDSHEET_INPUT_DIR":  true,
	"CHORDSHEET_OUTPUT_DIR": true,
	"CHORDSHEET_PAGE_SIZE":  true,
	"CHORDSHEET_WORKERS":    true,
}

// loadEnvConfig reads the CHORDSHEET_* variables. Unparsable or non-positive
// timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CHORDSHEET_CONFIG"),
		Style:      os.Getenv("CHORDSHEET_STYLE"),
		Chords:     os.Getenv("CHORDSHEET_CHORDS"),
		InputDir:   os.Getenv("CHORDSHEET_INPUT_DIR"),
		OutputDir:  os.Getenv("CHORDSHEET_OUTPUT_DIR"),
		PageSize:   os.Getenv("CHORDSHEET_PAGE_SIZE"),
	}

	if timeout := os.Getenv("CHORDSHEET_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("CHORDSHEET_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for every unrecognized CHORDSHEET_*
// variable.
func warnUnknownEnvVars(logger *log.Logger) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// configName returns the --config flag, falling back to CHORDSHEET_CONFIG.
func (e *envConfig) configName(flag string) string {
	if flag != "" {
		return flag
	}
	return e.ConfigPath
}

// applyEnvConfig overlays set variables on cfg. Flags are merged afterwards,
// giving flags > environment > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.CSS.Style = env.Style
	}
	if env.Chords != "" {
		cfg.Chords.File = env.Chords
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
}

// resolveTimeout prefers the --timeout flag, then CHORDSHEET_TIMEOUT.
// Zero leaves the library default in place.
func resolveTimeout(flag string, env *envConfig) (time.Duration, error) {
	if flag != "" {
		return parseTimeout(flag)
	}
	return env.Timeout, nil
}

// resolveWorkers prefers the --workers flag, then CHORDSHEET_WORKERS.
func resolveWorkers(flag int, env *envConfig) int {
	if flag != 0 {
		return flag
	}
	return env.Workers
}
