// Package gh wraps the GitHub CLI for the read-only queries the
// feedback tools need. The gh binary owns all network and
// authentication concerns; this package only builds argument lists,
// runs the command, and hands back its stdout.
package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Client invokes the gh CLI.
type Client struct {
	// runFn is a test seam. When non-nil it replaces the real gh
	// invocation. Signature matches run: (ctx, args) → stdout.
	runFn func(ctx context.Context, args []string) (string, error)
}

// NewClient returns a Client that executes the real gh binary.
func NewClient() *Client {
	return &Client{}
}

// run executes gh with the given arguments and returns its stdout.
func (c *Client) run(ctx context.Context, args []string) (string, error) {
	if c.runFn != nil {
		return c.runFn(ctx, args)
	}
	return runGH(ctx, args)
}

func runGH(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := commandErrorDetail(stderr.String(), stdout.String(), err)
		return "", fmt.Errorf("gh %s: %s", strings.Join(args, " "), detail)
	}
	return stdout.String(), nil
}

// commandErrorDetail picks the most useful description of a failed
// command: trimmed stderr, then trimmed stdout, then the exit code.
func commandErrorDetail(stderr, stdout string, err error) string {
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(stdout); s != "" {
		return s
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return fmt.Sprintf("exit code %d", exitErr.ExitCode())
	}
	return err.Error()
}

// ResolveRepo returns the target "owner/name" repository. An explicit
// value passes through untouched; otherwise gh is asked for the
// repository of the current directory.
func (c *Client) ResolveRepo(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	out, err := c.run(ctx, []string{
		"repo", "view",
		"--json", "nameWithOwner",
		"--jq", ".nameWithOwner",
	})
	if err != nil {
		return "", err
	}
	repo := strings.TrimSpace(out)
	if !strings.Contains(repo, "/") {
		return "", fmt.Errorf("could not resolve repository from gh output: %q", repo)
	}
	return repo, nil
}

// FetchList calls a REST endpoint through gh api and decodes the
// response into dst, which must point at a slice. A payload that is
// not a JSON array is an error; the two endpoint families used here
// (reactions, reviews, comments) always return arrays for valid
// inputs.
func (c *Client) FetchList(ctx context.Context, path string, dst any) error {
	out, err := c.run(ctx, []string{
		"api",
		"-H", "Accept: application/vnd.github+json",
		path,
		"--method", "GET",
		"--field", "per_page=100",
	})
	if err != nil {
		return err
	}
	// Unmarshal into a slice accepts "null" silently; reject it up
	// front so an empty-but-null payload surfaces as an error.
	if strings.TrimSpace(out) == "null" {
		return fmt.Errorf("unexpected payload for %s: expected a JSON array", path)
	}
	if err := json.Unmarshal([]byte(out), dst); err != nil {
		return fmt.Errorf("unexpected payload for %s (expected a JSON array): %w", path, err)
	}
	return nil
}
