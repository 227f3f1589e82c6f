package interactive

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/gerunddev/repobrowse/api"
	"github.com/gerunddev/repobrowse/app"
	"github.com/gerunddev/repobrowse/ui/prefix"
)

func runCreate(ctx context.Context, client Client, out io.Writer) error {
	var name string
	err := huh.NewInput().
		Title("New repository name").
		Validate(app.ValidateRepositoryName).
		Value(&name).
		Run()

	if err != nil {
		return nil // User cancelled
	}

	return createRepository(ctx, client, out, name)
}

func runDelete(ctx context.Context, client Client, out io.Writer) error {
	name, err := pickRepository(ctx, client, out, "Select repository to delete")
	if err != nil || name == "" {
		return err
	}

	var confirmed bool
	err = huh.NewConfirm().
		Title(fmt.Sprintf("Delete repository %s?", name)).
		Description("This cannot be undone.").
		Affirmative("Delete").
		Negative("Cancel").
		Value(&confirmed).
		Run()

	if err != nil || !confirmed {
		return nil // Cancelled
	}

	return deleteRepository(ctx, client, out, name)
}

func runCommits(ctx context.Context, client Client, out io.Writer) error {
	name, err := pickRepository(ctx, client, out, "Select repository")
	if err != nil || name == "" {
		return err
	}
	return printCommits(ctx, client, out, name)
}

// pickRepository asks for one of the server's repositories. An empty name
// means the user cancelled or there was nothing to pick.
func pickRepository(ctx context.Context, client Client, out io.Writer, title string) (string, error) {
	names, err := client.Repositories(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get repositories: %w", err)
	}

	options := buildRepositoryOptions(names)
	if len(options) == 0 {
		fmt.Fprintln(out, "No repositories available")
		return "", nil
	}

	var name string
	err = huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&name).
		Run()

	if err != nil {
		return "", nil // User cancelled
	}
	return name, nil
}

func createRepository(ctx context.Context, client Client, out io.Writer, name string) error {
	if err := app.ValidateRepositoryName(name); err != nil {
		return err
	}
	if err := client.CreateRepository(ctx, name); err != nil {
		return mutationError(err, app.MsgCreateFailed(name))
	}
	fmt.Fprintln(out, app.MsgCreated(name))
	return nil
}

func deleteRepository(ctx context.Context, client Client, out io.Writer, name string) error {
	if err := client.DeleteRepository(ctx, name); err != nil {
		return mutationError(err, app.MsgDeleteFailed(name))
	}
	fmt.Fprintln(out, app.MsgDeleted(name))
	return nil
}

// mutationError words a failed create or delete the way the browser does,
// keeping the cause for errors.Is.
func mutationError(err error, rejected string) error {
	if api.IsUnreachable(err) {
		return fmt.Errorf("%s: %w", app.MsgUnreachable, err)
	}
	return fmt.Errorf("%s: %w", rejected, err)
}

func printCommits(ctx context.Context, client Client, out io.Writer, name string) error {
	commits, err := client.Commits(ctx, name)
	if err != nil {
		return fmt.Errorf("%s: %w", app.MsgCommitsFailed(name), err)
	}
	if len(commits) == 0 {
		fmt.Fprintf(out, "No commits in %s\n", name)
		return nil
	}

	shas := make([]string, len(commits))
	for i, c := range commits {
		shas[i] = c.SHA1
	}
	ids := prefix.NewIDSet(shas)
	for _, c := range app.SummarizeAll(commits) {
		fmt.Fprintf(out, "%s %s\n", ids.Short(c.SHA1), c.Summary)
	}
	return nil
}

func buildRepositoryOptions(names []string) []huh.Option[string] {
	var options []huh.Option[string]
	for _, name := range names {
		options = append(options, huh.NewOption(name, name))
	}
	return options
}
