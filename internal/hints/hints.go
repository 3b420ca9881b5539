// Package hints builds the "\n  hint: <text>" suffixes the CLI appends to
// error messages, and the environment checks those hints depend on.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-chordsheet/internal/fileutil"
)

// ciVariables are set by the CI services whose runners lack a browser sandbox.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// IsInContainer reports whether the process runs in Docker, Podman or
// Kubernetes. It is a variable so tests can stub it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv") ||
		os.Getenv("container") != "" ||
		os.Getenv("KUBERNETES_SERVICE_HOST") != ""
}

// InCI reports whether a known CI variable is set.
func InCI() bool {
	for _, v := range ciVariables {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// NeedsNoSandbox reports whether Chrome will likely refuse to start because
// the sandbox is on inside a container or CI runner.
func NeedsNoSandbox() bool {
	return (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1"
}

// ForBrowserConnect suggests the rod environment variables that fix the
// usual launch failures, then the HTML-only fallback.
func ForBrowserConnect() string {
	var hints []string
	if NeedsNoSandbox() {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "or use --html-only to skip PDF output")
	return format(strings.Join(hints, "; "))
}

func ForTimeout() string {
	return format("for large songbooks, use --timeout flag")
}

// ForConfigNotFound suggests --config, or creating the first candidate
// under the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-chordsheet") {
			return format(hint + " or create " + p)
		}
	}
	return format(hint)
}

func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available styles, or returns "" when none is known.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func ForChordFile() string {
	return format(`use .yaml, .yml, .json or .toml with a top-level "chords" table of NAME: FINGERING`)
}

// maxSuggestions caps the names offered by ForUnknownChord.
const maxSuggestions = 5

// ForUnknownChord suggests known chord names that differ from name only in
// case or extend it, e.g. "am" -> "Am", "Dsus" -> "Dsus2, Dsus4".
// known must be sorted; the result is "" when nothing matches.
func ForUnknownChord(name string, known []string) string {
	var matches []string
	lower := strings.ToLower(name)
	for _, k := range known {
		if k != name && strings.HasPrefix(strings.ToLower(k), lower) {
			matches = append(matches, k)
			if len(matches) == maxSuggestions {
				break
			}
		}
	}
	if len(matches) == 0 {
		return ""
	}
	return format("did you mean " + strings.Join(matches, ", ") + "?")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
