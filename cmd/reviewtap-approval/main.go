// Command reviewtap-approval checks whether a configured bot
// reviewer left a thumbs-up reaction on a pull request.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/reviewtap/reviewtap/internal/actor"
	"github.com/reviewtap/reviewtap/internal/config"
	"github.com/reviewtap/reviewtap/internal/feedback"
	"github.com/reviewtap/reviewtap/internal/gh"
	"github.com/spf13/cobra"
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
		// Usage and validation errors mirror the historical
		// behavior of the tool: anything that never reached a
		// result is exit code 2.
		os.Exit(2)
	}
}

// errorBody is the compact JSON document printed on failed runs.
type errorBody struct {
	Approved bool   `json:"approved"`
	Error    string `json:"error"`
}

func newRootCmd() *cobra.Command {
	var (
		repoFlag        string
		actorLogins     []string
		actorRegex      string
		noDefaultActors bool
		exitZero        bool
		verbose         bool
	)

	cmd := &cobra.Command{
		Use:   "reviewtap-approval <pr_number>",
		Short: "Check if a bot reviewer has left a :+1: reaction on the target PR",
		Long: `Check whether a configured bot reviewer left a thumbs-up reaction
on a pull request, via the gh CLI.

Prints a JSON document describing the outcome to stdout.

Exit codes:
  0  Approval detected (or --exit-zero set)
  1  Approval not detected
  2  Configuration or execution error

Examples:
  reviewtap-approval 42
  reviewtap-approval 42 --repo owner/name
  reviewtap-approval 42 --actor my-bot --no-default-actors`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid PR number %q", args[0])
			}

			cfg := loadDefaults(verbose)
			regex := actorRegex
			if !cmd.Flags().Changed("actor-regex") && cfg.ActorRegex != "" {
				regex = cfg.ActorRegex
			}

			// Errors past this point print a JSON body; keep
			// cobra from echoing the sentinel on top of it.
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
				printJSON(errorBody{Approved: false, Error: err.Error()})
				return &exitError{code: 2}
			}
			if verbose {
				log.Printf("checking reactions on %s#%d", repo, prNumber)
			}

			result, err := feedback.CheckApproval(ctx, client, matcher, repo, prNumber)
			if err != nil {
				printJSON(errorBody{Approved: false, Error: err.Error()})
				return &exitError{code: 2}
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				printJSON(errorBody{Approved: false, Error: err.Error()})
				return &exitError{code: 2}
			}
			fmt.Println(string(out))

			if exitZero || result.Approved {
				return nil
			}
			return &exitError{code: 1}
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "",
		"repository in owner/name form (default: current repo via gh)")
	cmd.Flags().StringArrayVar(&actorLogins, "actor", nil,
		"exact actor login to match (repeatable)")
	cmd.Flags().StringVar(&actorRegex, "actor-regex", "",
		"regex actor matcher (case-insensitive) to complement exact matches")
	cmd.Flags().BoolVar(&noDefaultActors, "no-default-actors", false,
		"disable the default bot actor list")
	cmd.Flags().BoolVar(&exitZero, "exit-zero", false,
		"always exit 0 after printing JSON output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log progress to stderr")

	return cmd
}

// loadDefaults merges global and repo config. Load problems are
// logged and defaulted, never fatal.
func loadDefaults(verbose bool) *config.Config {
	global, err := config.LoadGlobal()
	if err != nil {
		log.Printf("load global config: %v (using defaults)", err)
	}
	repo, err := config.LoadRepo(".")
	if err != nil {
		log.Printf("load repo config: %v (using defaults)", err)
	}
	if verbose && (global != nil || repo != nil) {
		log.Printf("config defaults loaded (global=%t repo=%t)", global != nil, repo != nil)
	}
	return config.Merge(global, repo)
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
