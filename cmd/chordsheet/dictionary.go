package main

import (
	chordsheet "github.com/alnah/go-chordsheet"
	"github.com/alnah/go-chordsheet/internal/config"
)

// resolveDictionary loads the chord file named by flags or config, or the
// built-in table when neither names one.
func resolveDictionary(f chordFlags, cfg *config.Config) (chordsheet.MapDictionary, error) {
	path, replace := cfg.Chords.File, cfg.Chords.Replace
	if f.file != "" {
		path = f.file
	}
	if f.replace {
		replace = true
	}

	if path == "" {
		return chordsheet.DefaultDictionary()
	}
	return chordsheet.LoadDictionary(path, replace)
}

// loadDictFlags loads the config and dictionary for the filter, inspect
// and chords commands.
func loadDictFlags(f *dictFlags) (*config.Config, chordsheet.MapDictionary, error) {
	envCfg := loadEnvConfig()
	cfg, err := loadConfig(envCfg.configName(f.common.config))
	if err != nil {
		return nil, nil, err
	}
	applyEnvConfig(envCfg, cfg)
	dict, err := resolveDictionary(f.chords, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, dict, nil
}
