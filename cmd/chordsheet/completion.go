package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell is a shell chordsheet can generate a completion script for.
type Shell string

// Supported shells.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var shells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType is how a flag's value is completed.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagFloat
	flagEnum // fixed set of values
	flagFile // file matching FileGlob
	flagDir
)

// flagDef describes one flag for completion.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // flagEnum
	FileGlob string   // flagFile, comma separated
}

// takesValue reports whether the flag consumes the next word.
func (f flagDef) takesValue() bool {
	return f.Type != flagBool
}

// commandDef describes one command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values, e.g. shell names
	TakesFiles  bool
	FilePattern string // comma separated globs, empty for any file
}

// completionMeta adds value hints the FlagSet cannot express.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta is keyed by long flag name. Names, types and help
// text come from the FlagSets themselves.
var flagCompletionMeta = map[string]completionMeta{
	"page-size":   {Values: []string{"letter", "a4", "a5", "legal"}},
	"orientation": {Values: []string{"portrait", "landscape"}},

	"config": {FileGlob: "*.yaml,*.yml"},
	"chords": {FileGlob: "*.yaml,*.yml,*.json,*.toml"},
	"style":  {FileGlob: "*.css"},

	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet turns a FlagSet into flag definitions enriched
// with flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	convertFS, _ := newConvertFlagSet()
	filterFS, _ := newDictFlagSet("filter")
	inspectFS, _ := newDictFlagSet("inspect")
	chordsFS, _ := newDictFlagSet("chords")
	doctorFS, _ := newDoctorFlagSet()

	cmds := []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert Markdown song sheets to PDF or HTML",
			Flags:       extractFlagsFromFlagSet(convertFS),
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:       "filter",
			Desc:       "Annotate chord lines from stdin to stdout",
			Flags:      extractFlagsFromFlagSet(filterFS),
			TakesFiles: true,
		},
		{
			Name:       "inspect",
			Desc:       "Show how each line of a file is classified",
			Flags:      extractFlagsFromFlagSet(inspectFS),
			TakesFiles: true,
		},
		{
			Name:  "chords",
			Desc:  "List or look up known chords",
			Flags: extractFlagsFromFlagSet(chordsFS),
		},
		{
			Name:  "doctor",
			Desc:  "Check the PDF rendering environment",
			Flags: extractFlagsFromFlagSet(doctorFS),
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate a shell completion script", Args: shells},
	}

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	for i := range cmds {
		if cmds[i].Name == "help" {
			cmds[i].Args = names
		}
	}
	return cmds
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(getCommands())
	case ShellZsh:
		script = zshScript(getCommands())
	case ShellFish:
		script = fishScript(getCommands())
	case ShellPowerShell:
		script = powerShellScript(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(shells, ", "))
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chordsheet completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(chordsheet completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(chordsheet completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    chordsheet completion fish > ~/.config/fish/completions/chordsheet.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    chordsheet completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func bashScript(cmds []commandDef) string {
	var sb strings.Builder

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}

	sb.WriteString("# bash completion for chordsheet\n\n")
	sb.WriteString("_chordsheet_completions() {\n")
	sb.WriteString("    local cur prev cmd\n")
	sb.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	sb.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	sb.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	sb.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&sb, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(names, " "))
	sb.WriteString("        return\n")
	sb.WriteString("    fi\n\n")
	sb.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&sb, "    %s)\n", c.Name)

		if cases := bashValueCases(c.Flags); cases != "" {
			sb.WriteString("        case \"${prev}\" in\n")
			sb.WriteString(cases)
			sb.WriteString("        esac\n")
		}

		if words := bashFlagWords(c.Flags); words != "" {
			sb.WriteString("        if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&sb, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", words)
			sb.WriteString("            return\n")
			sb.WriteString("        fi\n")
		}

		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&sb, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&sb, "        COMPREPLY=($(%s))\n", bashFileGen(c.FilePattern))
		}
		sb.WriteString("        ;;\n")
	}

	sb.WriteString("    esac\n")
	sb.WriteString("}\n\n")
	sb.WriteString("complete -o filenames -F _chordsheet_completions chordsheet\n")
	return sb.String()
}

// bashValueCases returns case arms completing the value of the previous flag.
func bashValueCases(flags []flagDef) string {
	var sb strings.Builder
	for _, f := range flags {
		if !f.takesValue() {
			continue
		}
		fmt.Fprintf(&sb, "        %s)\n", bashFlagPattern(f))
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&sb, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(f.Values, " "))
		case flagFile:
			fmt.Fprintf(&sb, "            COMPREPLY=($(%s))\n", bashFileGen(f.FileGlob))
		case flagDir:
			sb.WriteString("            COMPREPLY=($(compgen -d -- \"${cur}\"))\n")
		default:
			sb.WriteString("            COMPREPLY=()\n")
		}
		sb.WriteString("            return\n")
		sb.WriteString("            ;;\n")
	}
	return sb.String()
}

func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "--" + f.Long + "|-" + f.Short
	}
	return "--" + f.Long
}

func bashFlagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// bashFileGen lists directories plus files matching globs without extglob.
func bashFileGen(globs string) string {
	if globs == "" {
		return "compgen -f -- \"${cur}\""
	}
	parts := []string{"compgen -d -- \"${cur}\""}
	for _, g := range strings.Split(globs, ",") {
		parts = append(parts, fmt.Sprintf("compgen -f -X '!%s' -- \"${cur}\"", g))
	}
	return strings.Join(parts, "; ")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func zshScript(cmds []commandDef) string {
	var sb strings.Builder

	sb.WriteString("#compdef chordsheet\n\n")
	sb.WriteString("_chordsheet() {\n")
	sb.WriteString("    local -a commands\n")
	sb.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&sb, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	sb.WriteString("    )\n\n")
	sb.WriteString("    if (( CURRENT == 2 )); then\n")
	sb.WriteString("        _describe 'command' commands\n")
	sb.WriteString("        return\n")
	sb.WriteString("    fi\n\n")
	sb.WriteString("    local cmd=\"${words[2]}\"\n")
	sb.WriteString("    shift words\n")
	sb.WriteString("    (( CURRENT-- ))\n\n")
	sb.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:argument:(%s)'", strings.Join(c.Args, " ")))
		case c.TakesFiles:
			specs = append(specs, "'*:file:"+zshFiles(c.FilePattern)+"'")
		}
		if len(specs) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "    %s)\n", c.Name)
		sb.WriteString("        _arguments \\\n")
		for i, s := range specs {
			sb.WriteString("            " + s)
			if i < len(specs)-1 {
				sb.WriteString(" \\")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("        ;;\n")
	}

	sb.WriteString("    esac\n")
	sb.WriteString("}\n\n")
	sb.WriteString("_chordsheet \"$@\"\n")
	return sb.String()
}

// zshFlagSpec renders one _arguments entry, e.g.
// '(-p --page-size)'{-p,--page-size}'[page size]:value:(letter a4)'.
func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:" + zshFiles(f.FileGlob)
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":value: "
	}
	tail := "[" + zshEscape(f.Desc) + "]" + action + "'"
	if f.Short == "" {
		return "'--" + f.Long + tail
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s", f.Short, f.Long, f.Short, f.Long, tail)
}

func zshFiles(globs string) string {
	if globs == "" {
		return "_files"
	}
	return "_files -g \"" + strings.ReplaceAll(globs, ",", " ") + "\""
}

// zshEscape makes s safe inside a single-quoted _arguments description.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func fishScript(cmds []commandDef) string {
	var sb strings.Builder

	sb.WriteString("# fish completion for chordsheet\n\n")
	sb.WriteString("function __fish_chordsheet_needs_command\n")
	sb.WriteString("    set -l cmd (commandline -opc)\n")
	sb.WriteString("    test (count $cmd) -eq 1\n")
	sb.WriteString("end\n\n")
	sb.WriteString("function __fish_chordsheet_using_command\n")
	sb.WriteString("    set -l cmd (commandline -opc)\n")
	sb.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	sb.WriteString("end\n\n")
	sb.WriteString("complete -c chordsheet -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&sb, "complete -c chordsheet -n __fish_chordsheet_needs_command -a %s -d '%s'\n",
			c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_chordsheet_using_command %s'", c.Name)
		if len(c.Flags) > 0 || len(c.Args) > 0 || c.TakesFiles {
			sb.WriteString("\n")
		}
		for _, f := range c.Flags {
			line := "complete -c chordsheet " + cond
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += " -d '" + fishEscape(f.Desc) + "'"
			sb.WriteString(line + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&sb, "complete -c chordsheet %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&sb, "complete -c chordsheet %s -F\n", cond)
		}
	}
	return sb.String()
}

func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func powerShellScript(cmds []commandDef) string {
	var sb strings.Builder

	sb.WriteString("# PowerShell completion for chordsheet\n\n")
	sb.WriteString("Register-ArgumentCompleter -Native -CommandName chordsheet -ScriptBlock {\n")
	sb.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	sb.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&sb, "        '%s' = '%s'\n", c.Name, psEscape(c.Desc))
	}
	sb.WriteString("    }\n\n")

	sb.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "        '%s' = @(%s)\n", c.Name, psList(strings.Fields(bashFlagWords(c.Flags))))
	}
	sb.WriteString("    }\n\n")

	sb.WriteString("    $values = @{\n")
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum {
				continue
			}
			fmt.Fprintf(&sb, "        '%s --%s' = @(%s)\n", c.Name, f.Long, psList(f.Values))
			if f.Short != "" {
				fmt.Fprintf(&sb, "        '%s -%s' = @(%s)\n", c.Name, f.Short, psList(f.Values))
			}
		}
	}
	sb.WriteString("    }\n\n")

	sb.WriteString("    $arguments = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(&sb, "        '%s' = @(%s)\n", c.Name, psList(c.Args))
		}
	}
	sb.WriteString("    }\n\n")

	sb.WriteString(`    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })
    if ($wordToComplete -ne '') {
        $elements = @($elements | Select-Object -SkipLast 1)
    }

    if ($elements.Count -lt 2) {
        $commands.GetEnumerator() | Where-Object { $_.Key -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)
        }
        return
    }

    $command = $elements[1]
    $key = "$command $($elements[-1])"
    if ($values.ContainsKey($key)) {
        $values[$key] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    if ($wordToComplete -like '-*' -and $flags.ContainsKey($command)) {
        $flags[$command] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)
        }
        return
    }

    if ($arguments.ContainsKey($command)) {
        $arguments[$command] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
    }
}
`)
	return sb.String()
}

func psList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + psEscape(s) + "'"
	}
	return strings.Join(quoted, ", ")
}

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
