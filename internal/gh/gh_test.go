package gh

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommandErrorDetail(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping on Windows: needs sh for a real ExitError")
	}
	// A real ExitError for the exit-code fallback case.
	exitErr := exec.Command("sh", "-c", "exit 3").Run()
	if exitErr == nil {
		t.Fatal("expected failing command")
	}

	tests := []struct {
		name   string
		stderr string
		stdout string
		want   string
	}{
		{"stderr wins", "  auth failed\n", "ignored", "auth failed"},
		{"stdout fallback", "  \n", "partial output\n", "partial output"},
		{"exit code fallback", "", "  ", "exit code 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commandErrorDetail(tt.stderr, tt.stdout, exitErr); got != tt.want {
				t.Errorf("commandErrorDetail = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRepoExplicitPassesThrough(t *testing.T) {
	client := &Client{runFn: func(ctx context.Context, args []string) (string, error) {
		t.Fatal("gh must not run when --repo is explicit")
		return "", nil
	}}

	repo, err := client.ResolveRepo(context.Background(), "acme/widgets")
	if err != nil {
		t.Fatalf("ResolveRepo failed: %v", err)
	}
	if repo != "acme/widgets" {
		t.Errorf("repo = %q", repo)
	}
}

func TestResolveRepoQueriesGH(t *testing.T) {
	var gotArgs []string
	client := &Client{runFn: func(ctx context.Context, args []string) (string, error) {
		gotArgs = args
		return "acme/widgets\n", nil
	}}

	repo, err := client.ResolveRepo(context.Background(), "")
	if err != nil {
		t.Fatalf("ResolveRepo failed: %v", err)
	}
	if repo != "acme/widgets" {
		t.Errorf("repo = %q, want trimmed owner/name", repo)
	}

	want := []string{"repo", "view", "--json", "nameWithOwner", "--jq", ".nameWithOwner"}
	if diff := cmp.Diff(want, gotArgs); diff != "" {
		t.Errorf("gh args mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveRepoMissingDelimiter(t *testing.T) {
	client := &Client{runFn: func(ctx context.Context, args []string) (string, error) {
		return "not-a-repo\n", nil
	}}

	_, err := client.ResolveRepo(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "could not resolve repository") {
		t.Fatalf("expected resolve error, got %v", err)
	}
}

func TestFetchListDecodesArray(t *testing.T) {
	var gotArgs []string
	client := &Client{runFn: func(ctx context.Context, args []string) (string, error) {
		gotArgs = args
		return `[{"id": 1}, {"id": 2}]`, nil
	}}

	var items []struct {
		ID int64 `json:"id"`
	}
	if err := client.FetchList(context.Background(), "repos/acme/widgets/issues/1/reactions", &items); err != nil {
		t.Fatalf("FetchList failed: %v", err)
	}
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("items = %+v", items)
	}

	want := []string{
		"api",
		"-H", "Accept: application/vnd.github+json",
		"repos/acme/widgets/issues/1/reactions",
		"--method", "GET",
		"--field", "per_page=100",
	}
	if diff := cmp.Diff(want, gotArgs); diff != "" {
		t.Errorf("gh args mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchListRejectsNonArray(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"object", `{"message": "Not Found"}`},
		{"null", `null`},
		{"string", `"oops"`},
		{"invalid json", `{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{runFn: func(ctx context.Context, args []string) (string, error) {
				return tt.payload, nil
			}}
			var items []struct{}
			err := client.FetchList(context.Background(), "repos/a/b/issues/1/reactions", &items)
			if err == nil || !strings.Contains(err.Error(), "expected a JSON array") {
				t.Fatalf("expected array error, got %v", err)
			}
		})
	}
}

// writeGHStub installs a fake gh binary and prepends it to PATH.
func writeGHStub(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping on Windows due to shell script stubs")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "gh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write gh stub: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunGHSuccess(t *testing.T) {
	writeGHStub(t, `printf '%s\n' "hello from gh"`)

	out, err := runGH(context.Background(), []string{"repo", "view"})
	if err != nil {
		t.Fatalf("runGH failed: %v", err)
	}
	if strings.TrimSpace(out) != "hello from gh" {
		t.Errorf("out = %q", out)
	}
}

func TestRunGHFailureCarriesStderrAndCommandLine(t *testing.T) {
	writeGHStub(t, `echo "HTTP 404: Not Found" >&2; exit 1`)

	_, err := runGH(context.Background(), []string{"api", "repos/a/b/issues/1/reactions"})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "gh api repos/a/b/issues/1/reactions") {
		t.Errorf("error missing command line: %q", msg)
	}
	if !strings.Contains(msg, "HTTP 404: Not Found") {
		t.Errorf("error missing stderr detail: %q", msg)
	}
}

func TestRunGHFailureFallsBackToExitCode(t *testing.T) {
	writeGHStub(t, `exit 7`)

	_, err := runGH(context.Background(), []string{"api", "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "exit code 7") {
		t.Errorf("error missing exit code detail: %q", err)
	}
}
