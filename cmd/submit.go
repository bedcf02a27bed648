// Package cmd: submit command.
// Converts a source and creates a Jira issue with it as the description.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/adfpipe/core/jira"
)

var (
	flagSummary   string
	flagProject   string
	flagIssueType string
	flagDryRun    bool
)

var submitCmd = &cobra.Command{
	Use:   "submit <source>",
	Short: "Create a Jira issue whose description is the converted source",
	Long: `Submit converts a source and creates a Jira issue with the resulting
document as its description. Site, credentials and the default project come
from the config file (jira section) or ADFPIPE_JIRA_* environment variables.

Examples:
  adfpipe submit bug.html --summary "Login button does nothing"
  adfpipe submit - --summary "Crash on save" --project OPS --type Bug
  adfpipe submit bug.html --summary "Preview" --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	addSourceFlags(submitCmd)

	submitCmd.Flags().StringVar(&flagSummary, "summary", "", "Issue summary (required)")
	submitCmd.Flags().StringVar(&flagProject, "project", "", "Project key (default from config)")
	submitCmd.Flags().StringVar(&flagIssueType, "type", "", "Issue type name (default from config)")
	submitCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the request body instead of sending it")
	_ = submitCmd.MarkFlagRequired("summary")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if flagProject != "" {
		cfg.Jira.ProjectKey = flagProject
	}
	if flagIssueType != "" {
		cfg.Jira.IssueType = flagIssueType
	}

	res, err := newPipeline().process(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	req := jira.IssueRequest{
		ProjectKey:  cfg.Jira.ProjectKey,
		Summary:     flagSummary,
		IssueType:   cfg.Jira.IssueType,
		Description: res.Document,
	}

	if flagDryRun {
		payload, err := jira.Payload(req)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(payload))
		return nil
	}

	if err := cfg.ValidateJira(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	client := jira.NewClient(cfg.Jira.URL, cfg.Jira.Email, cfg.Jira.APIToken,
		jira.WithTimeout(cfg.Jira.Timeout))

	issue, err := client.CreateIssue(cmd.Context(), req)
	if err != nil {
		return describeSubmitError(err, req.ProjectKey)
	}

	log.Debug().Str("id", issue.ID).Str("self", issue.Self).Msg("Issue created")
	fmt.Fprintf(os.Stdout, "✓ Created %s: %s\n", issue.Key, issue.Link)
	return nil
}

// describeSubmitError turns an issue-creation failure into a message that
// tells the user what to check.
func describeSubmitError(err error, project string) error {
	switch {
	case errors.Is(err, jira.ErrInvalidIssue):
		return fmt.Errorf("Jira rejected the issue; check the project key, issue type and summary: %w", err)
	case errors.Is(err, jira.ErrPermissionDenied):
		return fmt.Errorf("not allowed to create issues in %s; check jira.email and jira.api_token: %w", project, err)
	case errors.Is(err, jira.ErrRemote):
		return fmt.Errorf("Jira could not create the issue, try again later: %w", err)
	default:
		return fmt.Errorf("creating issue: %w", err)
	}
}
