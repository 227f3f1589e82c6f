package app

import (
	"strings"

	"github.com/gerunddev/repobrowse/api"
)

// CommitSummary is a commit split for display: the first line of the
// message is the summary, everything after the first newline the body.
type CommitSummary struct {
	SHA1    string
	Summary string
	Body    string
}

// Summarize splits a commit message. The body keeps its leading newline
// when the message has a blank separator line.
func Summarize(c api.Commit) CommitSummary {
	summary, body, _ := strings.Cut(c.Message, "\n")
	return CommitSummary{
		SHA1:    c.SHA1,
		Summary: summary,
		Body:    body,
	}
}

// SummarizeAll keeps backend order.
func SummarizeAll(commits []api.Commit) []CommitSummary {
	out := make([]CommitSummary, len(commits))
	for i, c := range commits {
		out[i] = Summarize(c)
	}
	return out
}

// Message reassembles the full commit message.
func (c CommitSummary) Message() string {
	if c.Body == "" {
		return c.Summary
	}
	return c.Summary + "\n" + c.Body
}
