// Package api provides a Go client for the repository browser backend.
// The backend exposes a small, fixed set of JSON endpoints under one base
// URL; every successful response is wrapped as {"data": ...}.
// Consumers of this package work with plain Go values and the typed
// errors in errors.go.
package api

// Commit is one entry of a repository's log, newest first.
type Commit struct {
	SHA1    string `json:"sha1"`
	Message string `json:"message"`
}

// Result is the payload of the mutating endpoints.
type Result struct {
	Success bool `json:"success"`
}
