package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_FromPath(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "band.yaml", `
input:
  defaultDir: ./songs
output:
  defaultDir: ./out
css:
  style: dark
chords:
  file: ./my-chords.toml
  replace: true
wrapper:
  open: "<pre>"
  close: "</pre>"
assets:
  basePath: ./assets
page:
  size: a4
  orientation: landscape
  margin: 0.75
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Input.DefaultDir != "./songs" || cfg.Output.DefaultDir != "./out" {
		t.Errorf("dirs = %q, %q", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
	}
	if cfg.CSS.Style != "dark" {
		t.Errorf("css.style = %q, want dark", cfg.CSS.Style)
	}
	if cfg.Chords.File != "./my-chords.toml" || !cfg.Chords.Replace {
		t.Errorf("chords = %+v", cfg.Chords)
	}
	if cfg.Wrapper.Open != "<pre>" || cfg.Wrapper.Close != "</pre>" {
		t.Errorf("wrapper = %+v", cfg.Wrapper)
	}
	if cfg.Assets.BasePath != "./assets" {
		t.Errorf("assets.basePath = %q", cfg.Assets.BasePath)
	}
	if cfg.Page.Size != "a4" || cfg.Page.Orientation != "landscape" || cfg.Page.Margin != 0.75 {
		t.Errorf("page = %+v", cfg.Page)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown field", "unknown: 1\n", ErrConfigParse},
		{"bad yaml", "css: [unterminated\n", ErrConfigParse},
		{"half wrapper", "wrapper:\n  open: \"<pre>\"\n", ErrInvalidValue},
		{"negative margin", "page:\n  margin: -1\n", ErrInvalidValue},
		{"bad log level", "log:\n  level: loud\n", ErrInvalidValue},
		{"long page size", "page:\n  size: " + strings.Repeat("x", MaxPageSizeLength+1) + "\n", ErrFieldTooLong},
	}

	for i, tt := range tests {
		path := writeConfig(t, dir, "c"+string(rune('a'+i))+".yaml", tt.content)
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := LoadConfig(path); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_EmptyName(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadConfig_MissingPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfig_ByName(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME lookup is linux specific")
	}

	cwd := t.TempDir()
	xdg := t.TempDir()
	t.Chdir(cwd)
	t.Setenv("XDG_CONFIG_HOME", xdg)

	t.Run("working directory yml", func(t *testing.T) {
		writeConfig(t, cwd, "local.yml", "css:\n  style: compact\n")
		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.CSS.Style != "compact" {
			t.Errorf("css.style = %q, want compact", cfg.CSS.Style)
		}
	})

	t.Run("user config dir", func(t *testing.T) {
		appDir := filepath.Join(xdg, AppDirName)
		if err := os.MkdirAll(appDir, 0o755); err != nil {
			t.Fatal(err)
		}
		writeConfig(t, appDir, "stage.yaml", "page:\n  size: letter\n")
		cfg, err := LoadConfig("stage")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Page.Size != "letter" {
			t.Errorf("page.size = %q, want letter", cfg.Page.Size)
		}
	})

	t.Run("not found lists tried paths", func(t *testing.T) {
		_, err := LoadConfig("nowhere")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nowhere.yaml") || !strings.Contains(err.Error(), AppDirName) {
			t.Errorf("error should list searched paths: %v", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("band")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v", paths)
	}
	if paths[0] != "band.yaml" || paths[1] != "band.yml" {
		t.Errorf("local candidates = %v", paths[:2])
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Log.Level = "WARN"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
