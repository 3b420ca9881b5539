package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	chordsheet "github.com/alnah/go-chordsheet"
	"github.com/alnah/go-chordsheet/internal/config"
)

// Sentinel errors for the convert command.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWritePDF        = errors.New("failed to write PDF file")
	ErrWriteHTML       = errors.New("failed to write HTML file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
	ErrInvalidTimeout  = errors.New("invalid timeout")
	ErrConversionsFail = errors.New("conversions failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---
	filePermissions = 0o644 // rw-r--r--
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	page       *chordsheet.PageSettings
	htmlOutput bool
	htmlOnly   bool
}

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()

	workers := resolveWorkers(flags.workers, envCfg)
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := loadConfig(envCfg.configName(flags.common.config))
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common, cfg.Log.Level)
	warnUnknownEnvVars(logger)

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS value,
	// in which case the runtime default stays in place.
	undo, _ := maxprocs.Set(maxprocs.Logger(logger.Debugf))
	defer undo()

	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveSource(positionalArgs, cfg)
	if err != nil {
		return err
	}

	files, err := discoverSongs(inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}

	dict, err := resolveDictionary(flags.chords, cfg)
	if err != nil {
		return err
	}
	logger.Debug("dictionary loaded", "chords", dict.Len())

	opts := buildConverterOptions(cfg, flags.assets.noStyle, timeout, dict)
	opts = append(opts, chordsheet.WithLogger(logger))

	size := chordsheet.ResolvePoolSize(workers)
	logger.Debug("starting conversion", "files", len(files), "workers", size)

	pool := env.NewPool(size, opts...)
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Warn("closing converters", "err", cerr)
		}
	}()

	params := &conversionParams{
		page:       page,
		htmlOutput: flags.outputMode.html,
		htmlOnly:   flags.outputMode.htmlOnly,
	}

	results := convertBatch(ctx, pool, files, params)

	summary := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if summary.Failed > 0 {
		// Wrap the first failure so the exit code reflects its cause.
		return fmt.Errorf("%w: %d of %d: %w", ErrConversionsFail, summary.Failed, len(results), summary.Err)
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config and
// environment values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}

	if flags.chords.file != "" {
		cfg.Chords.File = flags.chords.file
	}
	if flags.chords.replace {
		cfg.Chords.Replace = true
	}

	if flags.assets.style != "" {
		cfg.CSS.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}
}

// loadConfig returns the named config, or the defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// parseTimeout parses a --timeout value. Empty means the library default.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, s)
	}
	return d, nil
}

// resolveSource picks the positional argument, then input.defaultDir.
func resolveSource(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// buildPageSettings returns nil when no page field is configured, so the
// converter applies its defaults.
func buildPageSettings(cfg *config.Config) (*chordsheet.PageSettings, error) {
	if cfg.Page.Size == "" && cfg.Page.Orientation == "" && cfg.Page.Margin == 0 {
		return nil, nil
	}

	page := chordsheet.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// buildConverterOptions translates config into converter options.
// The dictionary is loaded once and shared by every converter in the pool.
func buildConverterOptions(cfg *config.Config, noStyle bool, timeout time.Duration, dict chordsheet.Dictionary) []chordsheet.Option {
	opts := []chordsheet.Option{chordsheet.WithDictionary(dict)}

	switch {
	case noStyle:
		opts = append(opts, chordsheet.WithStyle(""))
	case cfg.CSS.Style != "":
		opts = append(opts, chordsheet.WithStyle(cfg.CSS.Style))
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, chordsheet.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Wrapper.Open != "" {
		opts = append(opts, chordsheet.WithWrapper(cfg.Wrapper.Open, cfg.Wrapper.Close))
	}
	if timeout > 0 {
		opts = append(opts, chordsheet.WithTimeout(timeout))
	}
	return opts
}
