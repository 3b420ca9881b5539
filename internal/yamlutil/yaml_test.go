package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-chordsheet/internal/yamlutil"
)

type testConfig struct {
	Name   string            `yaml:"name"`
	Count  int               `yaml:"count"`
	Chords map[string]string `yaml:"chords"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nchords:\n  Am: x02210\n"),
			dest: &testConfig{},
		},
		{
			name: "JSON is valid YAML",
			data: []byte(`{"name": "test", "count": 42, "chords": {"Am": "x02210"}}`),
			dest: &testConfig{},
		},
		{
			name: "unknown fields ignored",
			data: []byte("name: test\ncount: 42\nchords:\n  Am: x02210\nother: true\n"),
			dest: &testConfig{},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			cfg := tt.dest.(*testConfig)
			if cfg.Name != "test" || cfg.Count != 42 || cfg.Chords["Am"] != "x02210" {
				t.Errorf("Unmarshal() = %+v", cfg)
			}
		})
	}
}

func TestUnmarshal_SyntaxErrorPrefixed(t *testing.T) {
	t.Parallel()

	err := yamlutil.Unmarshal([]byte("name: [unclosed"), &testConfig{})
	if err == nil || !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("Unmarshal() error = %v, want yamlutil: prefix", err)
	}
}

func TestUnmarshal_DuplicateKey(t *testing.T) {
	t.Parallel()

	err := yamlutil.Unmarshal([]byte("chords:\n  Am: x02210\n  Am: x02310\n"), &testConfig{})
	if err == nil {
		t.Fatal("Unmarshal() accepted a duplicate chord")
	}
	if !strings.Contains(err.Error(), "Am") {
		t.Errorf("error should point at the duplicate key: %v", err)
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	if err := yamlutil.UnmarshalStrict([]byte("name: ok\n"), &cfg); err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}
	if err := yamlutil.UnmarshalStrict([]byte("name: ok\nunknown: 1\n"), &cfg); err == nil {
		t.Error("UnmarshalStrict() accepted an unknown field")
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Marshal(map[string]map[string]string{
		"chords": {"G": "320003", "Am": "x02210"},
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	s := string(out)
	if !strings.HasPrefix(s, "chords:\n") {
		t.Errorf("Marshal() = %q, want chords: root", s)
	}
	if strings.Index(s, "Am:") > strings.Index(s, "G:") {
		t.Errorf("Marshal() = %q, want sorted keys", s)
	}

	var back testConfig
	if err := yamlutil.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal(Marshal()) error = %v", err)
	}
	if back.Chords["G"] != "320003" {
		t.Errorf("round trip lost G: %+v", back.Chords)
	}
}

func TestInputSizeLimit(t *testing.T) {
	// Not parallel: mutates package-level MaxInputSize.
	orig := yamlutil.MaxInputSize
	yamlutil.MaxInputSize = 16
	defer func() { yamlutil.MaxInputSize = orig }()

	err := yamlutil.Unmarshal([]byte(strings.Repeat("a", 17)), &testConfig{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("Unmarshal() error = %v, want ErrInputTooLarge", err)
	}
}
