// Command reviewtap-feedback collects bot-authored feedback on a
// pull request into a digest: review summaries, inline comments, and
// discussion comments.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/reviewtap/reviewtap/internal/actor"
	"github.com/reviewtap/reviewtap/internal/config"
	"github.com/reviewtap/reviewtap/internal/feedback"
	"github.com/reviewtap/reviewtap/internal/gh"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"

	// defaultActorRegex complements (never replaces) the default
	// exact login list.
	defaultActorRegex = "codex"

	defaultMaxBodyLength = 360
)

// exitError is an error that signals a specific exit code
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			os.Exit(exitErr.code)
		}
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	var (
		repoFlag        string
		actorLogins     []string
		actorRegex      string
		noDefaultActors bool
		format          string
		maxBodyLength   int
		failIfEmpty     bool
		plain           bool
		configPath      string
		verbose         bool
	)

	cmd := &cobra.Command{
		Use:   "reviewtap-feedback <pr_number>",
		Short: "Collect bot-authored feedback for a pull request",
		Long: `Collect bot-authored feedback on a pull request, via the gh CLI.

Three streams are gathered:
  1. PR review summaries   (/pulls/{number}/reviews)
  2. Inline review comments (/pulls/{number}/comments)
  3. Discussion comments   (/issues/{number}/comments)

Output is a markdown report (rendered for the terminal when stdout is
a TTY) or an indented JSON document with --format json.

Exit codes:
  0  Feedback collected
  1  --fail-if-empty set and no matching feedback found
  2  Configuration or execution error

Examples:
  reviewtap-feedback 42
  reviewtap-feedback 42 --format json | jq .inline_comments
  reviewtap-feedback 42 --max-body-length 120 --fail-if-empty`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid PR number %q", args[0])
			}
			if format != formatMarkdown && format != formatJSON {
				return fmt.Errorf("invalid --format %q (expected %s or %s)",
					format, formatMarkdown, formatJSON)
			}

			cfg, err := loadDefaults(verbose, configPath)
			if err != nil {
				return err
			}
			regex := actorRegex
			if !cmd.Flags().Changed("actor-regex") && cfg.ActorRegex != "" {
				regex = cfg.ActorRegex
			}
			if !cmd.Flags().Changed("max-body-length") && cfg.MaxBodyLength != 0 {
				maxBodyLength = cfg.MaxBodyLength
			}
			if !cmd.Flags().Changed("format") && cfg.Format != "" {
				if cfg.Format != formatMarkdown && cfg.Format != formatJSON {
					return fmt.Errorf("invalid format %q in config (expected %s or %s)",
						cfg.Format, formatMarkdown, formatJSON)
				}
				format = cfg.Format
			}

			cmd.SilenceErrors = true

			matcher, err := actor.New(actor.Options{
				Logins:     append(append([]string{}, cfg.Actors...), actorLogins...),
				Pattern:    regex,
				NoDefaults: noDefaultActors || cfg.NoDefaultActors,
			})
			if err != nil {
				printJSON(map[string]string{"error": err.Error()})
				return &exitError{code: 2}
			}

			ctx := cmd.Context()
			client := gh.NewClient()

			repo, err := client.ResolveRepo(ctx, repoFlag)
			if err != nil {
				printJSON(map[string]string{"error": err.Error()})
				return &exitError{code: 2}
			}
			if verbose {
				log.Printf("collecting feedback on %s#%d", repo, prNumber)
			}

			digest, err := feedback.Collect(ctx, client, matcher, repo, prNumber, maxBodyLength)
			if err != nil {
				printJSON(map[string]string{"error": err.Error()})
				return &exitError{code: 2}
			}

			if format == formatJSON {
				out, err := json.MarshalIndent(digest, "", "  ")
				if err != nil {
					printJSON(map[string]string{"error": err.Error()})
					return &exitError{code: 2}
				}
				fmt.Println(string(out))
			} else {
				fmt.Println(renderMarkdown(digest.Markdown(), plain))
			}

			if failIfEmpty && digest.Empty() {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "",
		"repository in owner/name form (default: current repo via gh)")
	cmd.Flags().StringArrayVar(&actorLogins, "actor", nil,
		"exact actor login to match (repeatable)")
	cmd.Flags().StringVar(&actorRegex, "actor-regex", defaultActorRegex,
		"regex actor matcher (case-insensitive)")
	cmd.Flags().BoolVar(&noDefaultActors, "no-default-actors", false,
		"disable the default bot actor list")
	cmd.Flags().StringVar(&format, "format", formatMarkdown,
		"output format: markdown or json")
	cmd.Flags().IntVar(&maxBodyLength, "max-body-length", defaultMaxBodyLength,
		"maximum body characters per item after whitespace compaction")
	cmd.Flags().BoolVar(&failIfEmpty, "fail-if-empty", false,
		"exit 1 when no matching feedback is found")
	cmd.Flags().BoolVar(&plain, "plain", false,
		"print raw markdown even when stdout is a terminal")
	cmd.Flags().StringVar(&configPath, "config", "",
		"path to a config file loaded over the default ones")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log progress to stderr")

	return cmd
}

// renderMarkdown renders the report for human eyes when stdout is a
// terminal. Piped output and render failures get the raw markdown.
func renderMarkdown(text string, plain bool) string {
	if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		return text
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// loadDefaults merges global and repo config. Load problems are
// logged and defaulted, never fatal.
func loadDefaults(verbose bool, explicitPath string) (*config.Config, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		log.Printf("load global config: %v (using defaults)", err)
	}
	repo, err := config.LoadRepo(".")
	if err != nil {
		log.Printf("load repo config: %v (using defaults)", err)
	}
	merged := config.Merge(global, repo)
	if explicitPath != "" {
		explicit, err := config.LoadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", explicitPath, err)
		}
		if explicit == nil {
			return nil, fmt.Errorf("config file not found: %s", explicitPath)
		}
		merged = config.Merge(merged, explicit)
	}
	if verbose && (global != nil || repo != nil || explicitPath != "") {
		log.Printf("config defaults loaded (global=%t repo=%t)", global != nil, repo != nil)
	}
	return merged, nil
}

// printJSON writes a compact JSON document to stdout.
func printJSON(v any) {
	out, err := json.Marshal(v)
	if err != nil {
		fmt.Printf("{\"error\": %q}\n", err.Error())
		return
	}
	fmt.Println(string(out))
}
