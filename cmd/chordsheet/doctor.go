package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	chordsheet "github.com/alnah/go-chordsheet"
	"github.com/alnah/go-chordsheet/internal/fileutil"
	"github.com/alnah/go-chordsheet/internal/hints"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorReport holds the results of every check.
type doctorReport struct {
	Status   string      `json:"status"`
	Browser  browserInfo `json:"browser"`
	Env      envInfo     `json:"environment"`
	Chords   chordsInfo  `json:"chords"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

type browserInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Container  bool   `json:"container"`
	CI         bool   `json:"ci"`
	NoSandbox  string `json:"rod_no_sandbox"`
	BrowserBin string `json:"rod_browser_bin"`
}

type chordsInfo struct {
	Builtin int `json:"builtin"`
}

func (r *doctorReport) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorReport) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd checks that PDF rendering can work and returns an exit code.
// Warnings still exit 0.
func runDoctorCmd(args []string, env *Environment) int {
	fs, jsonOutput := newDoctorFlagSet()
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	report := runDoctor()

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor() *doctorReport {
	report := &doctorReport{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkBrowser(report)
	checkEnvironment(report)
	checkChords(report)

	switch {
	case len(report.Errors) > 0:
		report.Status = statusErrors
	case len(report.Warnings) > 0:
		report.Status = statusWarnings
	default:
		report.Status = statusReady
	}
	return report
}

// checkBrowser locates Chrome/Chromium the way the PDF renderer does.
func checkBrowser(r *doctorReport) {
	path := r.Env.BrowserBin
	if path == "" {
		var found bool
		if path, found = launcher.LookPath(); !found {
			r.fail("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}
	if !fileutil.FileExists(path) {
		r.fail("Chrome not found at %s", path)
		return
	}

	r.Browser.Found = true
	r.Browser.Path = path
	r.Browser.Sandbox = r.Env.NoSandbox != "1"

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or launcher
	if err != nil {
		r.warn("could not get Chrome version: %v", err)
		return
	}
	r.Browser.Version = strings.TrimSpace(string(out))
}

// checkEnvironment flags container and CI runs that keep the sandbox on.
func checkEnvironment(r *doctorReport) {
	r.Env.Container = hints.IsInContainer()
	r.Env.CI = hints.InCI()

	if hints.NeedsNoSandbox() {
		r.warn("container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkChords makes sure the built-in chord table loads.
func checkChords(r *doctorReport) {
	dict, err := chordsheet.DefaultDictionary()
	if err != nil {
		r.fail("built-in chord table: %v", err)
		return
	}
	r.Chords.Builtin = dict.Len()
}

func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "chordsheet doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser")
	if r.Browser.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Browser.Path)
		if r.Browser.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Browser.Version)
		}
		if r.Browser.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chords")
	if r.Chords.Builtin > 0 {
		fmt.Fprintf(w, "  [OK] Built-in table: %d chords\n", r.Chords.Builtin)
	} else {
		fmt.Fprintln(w, "  [ERROR] Built-in table unavailable")
	}
	fmt.Fprintln(w)

	for _, msg := range r.Warnings {
		fmt.Fprintf(w, "[WARN] %s\n", msg)
	}
	for _, msg := range r.Errors {
		fmt.Fprintf(w, "[ERROR] %s\n", msg)
	}
	if len(r.Warnings)+len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
