package interactive

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/gerunddev/repobrowse/api"
)

// Client is the part of *api.Client the quick actions use.
type Client interface {
	Repositories(ctx context.Context) ([]string, error)
	CreateRepository(ctx context.Context, name string) error
	DeleteRepository(ctx context.Context, name string) error
	Commits(ctx context.Context, name string) ([]api.Commit, error)
}

// Run starts the interactive mode
func Run(ctx context.Context, client Client) error {
	return run(ctx, client, os.Stdout)
}

func run(ctx context.Context, client Client, out io.Writer) error {
	var action string

	err := huh.NewSelect[string]().
		Title("repobrowse - Quick Actions").
		Options(
			huh.NewOption("Create - Add a repository", "create"),
			huh.NewOption("Delete - Remove a repository", "delete"),
			huh.NewOption("Commits - Print the log of a repository", "commits"),
		).
		Value(&action).
		Run()

	if err != nil {
		return nil // User cancelled
	}

	switch action {
	case "create":
		return runCreate(ctx, client, out)
	case "delete":
		return runDelete(ctx, client, out)
	case "commits":
		return runCommits(ctx, client, out)
	}

	return nil
}
