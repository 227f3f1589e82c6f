package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/api"
	"github.com/gerunddev/repobrowse/app"
	"github.com/gerunddev/repobrowse/tree"
	"github.com/gerunddev/repobrowse/ui/messages"
)

// Backend is the part of *api.Client the UI needs.
type Backend interface {
	Repositories(ctx context.Context) ([]string, error)
	CreateRepository(ctx context.Context, name string) error
	DeleteRepository(ctx context.Context, name string) error
	Commits(ctx context.Context, name string) ([]api.Commit, error)
	Diffs(ctx context.Context, name, sha1 string) ([]string, error)
	DirTree(ctx context.Context, name, sha1 string) (tree.Tree, error)
	FileContents(ctx context.Context, name, sha1, path string) (string, error)
}

// effects turns store requests into commands. Every command reports back
// as a ResultMsg; superseded results are dropped by the store. Request
// timeouts are the backend's business.
type effects struct {
	backend Backend
}

func (e effects) run(reqs []app.Request) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, e.cmd(req))
	}
	return tea.Batch(cmds...)
}

func (e effects) cmd(req app.Request) tea.Cmd {
	return func() tea.Msg {
		action := e.perform(context.Background(), req)
		if action == nil {
			return nil
		}
		return messages.ResultMsg{Action: action}
	}
}

func (e effects) perform(ctx context.Context, req app.Request) app.Action {
	switch req.Kind {
	case app.LoadRepositories:
		names, err := e.backend.Repositories(ctx)
		return app.RepositoriesLoaded{Token: req.Token, Names: names, Err: err}

	case app.CreateRepo:
		err := e.backend.CreateRepository(ctx, req.Repo)
		return app.RepositoryCreated{Name: req.Repo, Err: err}

	case app.DeleteRepo:
		err := e.backend.DeleteRepository(ctx, req.Repo)
		return app.RepositoryDeleted{Name: req.Repo, Err: err}

	case app.LoadCommits:
		commits, err := e.backend.Commits(ctx, req.Repo)
		return app.CommitsLoaded{Token: req.Token, Commits: commits, Err: err}

	case app.LoadDiffs:
		diffs, err := e.backend.Diffs(ctx, req.Repo, req.SHA1)
		return app.DiffsLoaded{Token: req.Token, Diffs: diffs, Err: err}

	case app.LoadTree:
		t, err := e.backend.DirTree(ctx, req.Repo, req.SHA1)
		return app.TreeLoaded{Token: req.Token, Tree: t, Err: err}

	case app.LoadFile:
		contents, err := e.backend.FileContents(ctx, req.Repo, req.SHA1, req.Path)
		return app.FileLoaded{Token: req.Token, Path: req.Path, Contents: contents, Err: err}
	}
	return nil
}
