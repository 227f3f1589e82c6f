package app

import (
	"fmt"

	"github.com/gerunddev/repobrowse/api"
)

// Display messages. Transport and rejection errors stop here and are
// only ever shown as one of these.
const (
	MsgUnreachable        = "Could not reach server."
	MsgRepositoriesFailed = "Could not get repositories from server."
	MsgTreeFailed         = "Could not reach server or repository/commit does not exist."
)

func MsgCreateFailed(name string) string  { return "Could not create repository " + name }
func MsgCreated(name string) string       { return "Created repository " + name }
func MsgDeleteFailed(name string) string  { return "Could not delete repository " + name }
func MsgDeleted(name string) string       { return "Deleted repository " + name }
func MsgFileFailed(path string) string    { return fmt.Sprintf("Could not load file %s.", path) }
func MsgCommitsFailed(repo string) string { return fmt.Sprintf("Could not get commits for repository %s.", repo) }

func MsgDiffsFailed(sha1 string) string {
	return fmt.Sprintf("Could not get diffs for commit %s.", ShortSHA(sha1))
}

// describe picks the message for a failed mutation: an unreachable backend
// reads the same for every operation, a rejection names the operation.
func describe(err error, rejected string) string {
	if api.IsUnreachable(err) {
		return MsgUnreachable
	}
	return rejected
}

// ShortSHA abbreviates a commit id for messages.
func ShortSHA(sha1 string) string {
	if len(sha1) > 8 {
		return sha1[:8]
	}
	return sha1
}
