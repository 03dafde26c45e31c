package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/minitree/internal/explorer"
)

type recordingCopier struct {
	copied []string
	err    error
}

func (copier *recordingCopier) Copy(text string) error {
	if copier.err != nil {
		return copier.err
	}
	copier.copied = append(copier.copied, text)
	return nil
}

// prepareWorkspace isolates configuration lookup and returns a project directory to explore.
func prepareWorkspace(t *testing.T) string {
	t.Helper()
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	workingDirectory := t.TempDir()
	chdirForTest(t, workingDirectory)

	project := filepath.Join(workingDirectory, "project")
	for _, relativePath := range []string{
		"main.go",
		".env",
		"node_modules/left-pad/index.js",
		"internal/app/app.go",
		"internal/app/app_test.go",
	} {
		target := filepath.Join(project, filepath.FromSlash(relativePath))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("create directory for %s: %v", relativePath, err)
		}
		if err := os.WriteFile(target, []byte("content"), 0o600); err != nil {
			t.Fatalf("write %s: %v", relativePath, err)
		}
	}
	return project
}

func executeCommand(t *testing.T, copier *recordingCopier, arguments ...string) (string, error) {
	t.Helper()
	if copier == nil {
		copier = &recordingCopier{}
	}
	command := createRootCommand(Dependencies{Clipboard: copier})
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	command.SetOut(&stdout)
	command.SetErr(&stderr)
	command.SetArgs(normalizeBooleanFlagArguments(command, arguments))
	executionError := command.Execute()
	return stdout.String(), executionError
}

func TestRootCommandRendersTree(t *testing.T) {
	project := prepareWorkspace(t)

	testCases := []struct {
		name      string
		arguments []string
		expected  string
	}{
		{
			name:      "defaults",
			arguments: []string{project},
			expected: strings.Join([]string{
				"* project",
				"  * internal",
				"    * app",
				"      * app.go",
				"      * app_test.go",
				"  * main.go",
				"  * node_modules",
				"    * left-pad",
				"      * index.js",
			}, "\n") + "\n",
		},
		{
			name:      "levels_and_hide_dev",
			arguments: []string{"-l", "1", "--hide-dev", project},
			expected:  "* project\n  * internal\n  * main.go\n",
		},
		{
			name:      "hidden_with_literal_and_tab",
			arguments: []string{"--hidden", "yes", "-t", "1", "-l", "1", "-d", project},
			expected:  "* project\n * .env\n * internal\n * main.go\n",
		},
		{
			name:      "include_and_exclude",
			arguments: []string{"-i", `\.go$`, "-e", `_test\.go$`, "-d", project},
			expected:  "* project\n  * internal\n    * app\n      * app.go\n  * main.go\n",
		},
		{
			name:      "relative_style_via_format_alias",
			arguments: []string{"--format", "relative", "-l", "1", "-d", "project"},
			expected: strings.Join([]string{
				"project",
				filepath.Join("project", "internal"),
				filepath.Join("project", "main.go"),
			}, "\n") + "\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			stdout, err := executeCommand(t, nil, testCase.arguments...)
			if err != nil {
				t.Fatalf("execute %v: %v", testCase.arguments, err)
			}
			if stdout != testCase.expected {
				t.Fatalf("unexpected output\nexpected:\n%s\nactual:\n%s", testCase.expected, stdout)
			}
		})
	}
}

func TestRootCommandKeepsLiteralNamedPathAfterShorthand(t *testing.T) {
	prepareWorkspace(t)
	if err := os.MkdirAll(filepath.Join("on", "bin"), 0o755); err != nil {
		t.Fatalf("create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join("on", "readme.md"), []byte("content"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	stdout, err := executeCommand(t, nil, "-d", "on")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "* on\n  * readme.md\n" {
		t.Fatalf("expected the \"on\" directory with development entries hidden, got:\n%s", stdout)
	}
}

func TestRootCommandAppliesConfigurationFile(t *testing.T) {
	project := prepareWorkspace(t)
	workingDirectory, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	configuration := "tree:\n  levels: 1\n  hide_dev: true\n  style: name\n"
	if err := os.WriteFile(filepath.Join(workingDirectory, "config.yaml"), []byte(configuration), 0o600); err != nil {
		t.Fatalf("write configuration: %v", err)
	}

	stdout, err := executeCommand(t, nil, project)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "* project\n  * internal\n  * main.go\n" {
		t.Fatalf("expected configuration defaults to apply, got:\n%s", stdout)
	}

	stdout, err = executeCommand(t, nil, "--hide-dev=false", project)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "  * node_modules\n") {
		t.Fatalf("expected flag to override configuration, got:\n%s", stdout)
	}
}

func TestRootCommandReportsConfigurationErrors(t *testing.T) {
	project := prepareWorkspace(t)

	testCases := []struct {
		name      string
		arguments []string
		expected  error
	}{
		{name: "invalid_exclude", arguments: []string{"-e", "(", project}, expected: explorer.ErrInvalidPattern},
		{name: "invalid_include", arguments: []string{"-i", "[", project}, expected: explorer.ErrInvalidPattern},
		{name: "missing_root", arguments: []string{filepath.Join(project, "absent")}, expected: explorer.ErrRootMissing},
		{name: "invalid_style", arguments: []string{"-s", "fancy", project}, expected: explorer.ErrInvalidStyle},
		{name: "negative_levels", arguments: []string{"-l", "-1", project}, expected: explorer.ErrInvalidOption},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			stdout, err := executeCommand(t, nil, testCase.arguments...)
			if !errors.Is(err, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, err)
			}
			if stdout != "" {
				t.Fatalf("expected no output before traversal, got %q", stdout)
			}
		})
	}

	if _, err := executeCommand(t, nil, "--color", "rainbow", project); err == nil {
		t.Fatalf("expected error for invalid color mode")
	}
}

func TestRootCommandCopiesOutput(t *testing.T) {
	project := prepareWorkspace(t)

	copier := &recordingCopier{}
	stdout, err := executeCommand(t, copier, "--copy", "-l", "1", "-d", "--color", "always", project)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(copier.copied) != 1 {
		t.Fatalf("expected one clipboard write, got %d", len(copier.copied))
	}
	plain := "* project\n  * internal\n  * main.go\n"
	if copier.copied[0] != plain {
		t.Fatalf("expected plain clipboard content %q, got %q", plain, copier.copied[0])
	}
	if stdout == plain {
		t.Fatalf("expected colored terminal output when color is always")
	}

	failing := &recordingCopier{err: errors.New("no clipboard")}
	if _, err := executeCommand(t, failing, "--copy", project); err == nil {
		t.Fatalf("expected clipboard failure to be reported")
	}
}

func TestRootCommandPrintsVersion(t *testing.T) {
	prepareWorkspace(t)
	stdout, err := executeCommand(t, nil, "--version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(stdout, "minitree version: ") {
		t.Fatalf("unexpected version output %q", stdout)
	}
}

func TestInitCommandWritesConfiguration(t *testing.T) {
	prepareWorkspace(t)
	stdout, err := executeCommand(t, nil, "init")
	if err != nil {
		t.Fatalf("execute init: %v", err)
	}
	if !strings.Contains(stdout, "config.yaml") {
		t.Fatalf("expected configuration path in output, got %q", stdout)
	}
	if _, err := executeCommand(t, nil, "init"); err == nil {
		t.Fatalf("expected second init without --force to fail")
	}
	if _, err := executeCommand(t, nil, "init", "--force"); err != nil {
		t.Fatalf("expected init --force to succeed: %v", err)
	}
}

func TestDispatchStreamPropagatesConsumerError(t *testing.T) {
	sentinel := errors.New("consumer failed")
	produced := 0
	err := dispatchStream(context.Background(),
		func(ctx context.Context, entries chan<- explorer.Entry) error {
			for index := 0; index < 10; index++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case entries <- explorer.Entry{Line: "line"}:
					produced++
				}
			}
			return nil
		},
		func(explorer.Entry) error { return sentinel },
	)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected consumer error, got %v", err)
	}
	if produced >= 10 {
		t.Fatalf("expected producer to stop early, produced %d", produced)
	}
}

func TestDispatchStreamPropagatesProducerError(t *testing.T) {
	sentinel := errors.New("producer failed")
	var consumed []string
	err := dispatchStream(context.Background(),
		func(ctx context.Context, entries chan<- explorer.Entry) error {
			entries <- explorer.Entry{Line: "first"}
			return sentinel
		},
		func(entry explorer.Entry) error {
			consumed = append(consumed, entry.Line)
			return nil
		},
	)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected producer error, got %v", err)
	}
	if len(consumed) != 1 || consumed[0] != "first" {
		t.Fatalf("expected the first entry to be consumed, got %v", consumed)
	}
}

// chdirForTest changes the working directory for the duration of the test and
// restores it on cleanup, mirroring testing.T.Chdir for older toolchains.
func chdirForTest(t *testing.T, directory string) {
	t.Helper()
	previousDirectory, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(directory); err != nil {
		t.Fatalf("chdir %s: %v", directory, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(previousDirectory); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
