package messages

import "github.com/gerunddev/repobrowse/app"

// ResultMsg carries the action produced by a finished backend call.
type ResultMsg struct {
	Action app.Action
}

// RepositorySelectedMsg is sent when a repository is chosen in the
// repositories panel.
type RepositorySelectedMsg struct {
	Name string
}

// CommitSelectedMsg is sent when the cursor lands on a commit.
type CommitSelectedMsg struct {
	SHA1 string
}

// EntrySelectedMsg is sent when a row of the files panel is opened.
type EntrySelectedMsg struct {
	Entry app.Entry
}

// GoUpMsg leaves the current folder.
type GoUpMsg struct{}

// CloseFileMsg returns from the file view to the listing.
type CloseFileMsg struct{}

// CreateRequestedMsg asks for the new repository dialog.
type CreateRequestedMsg struct{}

// DeleteRequestedMsg asks for confirmation before deleting Name.
type DeleteRequestedMsg struct {
	Name string
}

// ShowCommitMsg opens the full message of a commit.
type ShowCommitMsg struct {
	Commit app.CommitSummary
}

// StatusMsg shows a line in the help bar until the next status.
type StatusMsg struct {
	Text string
	Err  bool
}
