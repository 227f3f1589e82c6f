package app

import (
	"errors"

	"github.com/gerunddev/repobrowse/tree"
)

// NavState is the phase of the directory browser.
type NavState int

const (
	Loading NavState = iota
	Browsing
	ViewingFile
)

func (s NavState) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case ViewingFile:
		return "viewing file"
	default:
		return "loading"
	}
}

// Identity selects the tree being browsed.
type Identity struct {
	Repo string
	SHA1 string
}

// Valid reports whether both parts are set.
func (id Identity) Valid() bool {
	return id.Repo != "" && id.SHA1 != ""
}

// Entry is one row of a directory listing. The Up entry is synthetic and
// only present below the root.
type Entry struct {
	ID   int
	Name string
	Dir  bool
	Up   bool
}

// UpEntry is the synthetic ".." row.
var UpEntry = Entry{ID: -1, Name: "..", Dir: true, Up: true}

// Navigation handles directory tree browsing for one (repository, commit).
// It is a value: every transition returns the next Navigation and, when a
// fetch is needed, the Request to issue. Fetch results are matched against
// the token current when they were requested and dropped otherwise.
type Navigation struct {
	identity Identity
	token    uint64
	state    NavState
	tree     tree.Tree
	path     []string // current folder
	target   []string // route path still to walk once the tree arrives
	pending  string   // file being fetched
	file     string   // file being viewed
	contents string
	err      string // last fetch failure, display only
	fatal    error  // tree inconsistency, see Fatal
}

// Identity returns the (repository, commit) being browsed.
func (n Navigation) Identity() Identity { return n.identity }

// Token identifies the current fetch generation.
func (n Navigation) Token() uint64 { return n.token }

// State returns the current phase.
func (n Navigation) State() NavState { return n.state }

// Path returns the current folder as segments from the root.
func (n Navigation) Path() []string { return clonePath(n.path) }

// Pending returns the path of the file being fetched, if any.
func (n Navigation) Pending() string { return n.pending }

// File returns the path of the file being viewed.
func (n Navigation) File() string { return n.file }

// Contents returns the contents of the file being viewed.
func (n Navigation) Contents() string { return n.contents }

// Err returns the last fetch failure message.
func (n Navigation) Err() string { return n.err }

// Fatal returns a PathNotFound or duplicate-entry error raised while
// walking the tree. It means client and backend disagree on the tree and
// browsing cannot continue until the tree is reloaded.
func (n Navigation) Fatal() error { return n.fatal }

// Open starts browsing id. A change of identity discards the loaded tree
// and any file fetch in flight and requests the new tree. target, if set,
// is walked once the tree has loaded; a trailing file is opened.
func (n Navigation) Open(id Identity, target []string) (Navigation, *Request) {
	if id == n.identity && n.token != 0 {
		if n.state == Loading {
			// The latest target wins once the tree arrives.
			n.target = clonePath(target)
			return n, nil
		}
		if len(target) > 0 {
			return n.walk(target)
		}
		return n, nil
	}
	return n.reset(id, target)
}

// Reload fetches the tree again for the current identity and walks back
// to the current folder.
func (n Navigation) Reload() (Navigation, *Request) {
	target := n.target
	if n.state != Loading {
		target = n.path
	}
	return n.reset(n.identity, target)
}

func (n Navigation) reset(id Identity, target []string) (Navigation, *Request) {
	next := Navigation{
		identity: id,
		token:    n.token + 1,
		state:    Loading,
		target:   clonePath(target),
	}
	if !id.Valid() {
		return next, nil
	}
	return next, &Request{Kind: LoadTree, Token: next.token, Repo: id.Repo, SHA1: id.SHA1}
}

// TreeLoaded applies a tree fetch result. On failure the browser stays
// Loading with the error set; it is not retried.
func (n Navigation) TreeLoaded(token uint64, t tree.Tree, err error) (Navigation, *Request) {
	if token != n.token || n.state != Loading {
		return n, nil
	}
	if err != nil {
		n.err = MsgTreeFailed
		return n, nil
	}

	n.tree = t
	n.state = Browsing
	n.path = nil
	n.err = ""
	target := n.target
	n.target = nil
	if len(target) == 0 {
		return n, nil
	}
	return n.walk(target)
}

// walk enters each folder of target from the root; a final file segment
// is opened.
func (n Navigation) walk(target []string) (Navigation, *Request) {
	n.state = Browsing
	n.path = nil
	n.file = ""
	n.contents = ""
	n.pending = ""
	for i, segment := range target {
		_, level, err := tree.Resolve(n.tree, n.path)
		if err != nil {
			n.fatal = err
			return n, nil
		}
		node, err := tree.Lookup(level, segment)
		if err != nil {
			n.fatal = &tree.PathError{Path: appendSegment(n.path, segment), Err: err}
			return n, nil
		}
		if node.IsDir() {
			n.path = appendSegment(n.path, segment)
			continue
		}
		if i != len(target)-1 {
			n.fatal = &tree.PathError{Path: appendSegment(n.path, segment), Detail: "names a file", Err: tree.ErrPathNotFound}
			return n, nil
		}
		return n.openFile(segment)
	}
	return n, nil
}

// Listing returns the entries of the current folder, led by the Up entry
// below the root.
func (n Navigation) Listing() ([]Entry, error) {
	if n.fatal != nil {
		return nil, n.fatal
	}
	if n.state == Loading {
		return nil, nil
	}
	_, level, err := tree.Resolve(n.tree, n.path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(level)+1)
	if len(n.path) > 0 {
		entries = append(entries, UpEntry)
	}
	for _, node := range level {
		entries = append(entries, Entry{ID: node.ID, Name: node.Name, Dir: node.IsDir()})
	}
	return entries, nil
}

// Select acts on a listing entry: folders are entered, the Up entry
// leaves the current folder and files are fetched.
func (n Navigation) Select(e Entry) (Navigation, *Request) {
	if e.Up {
		return n.Up(), nil
	}
	return n.Enter(e.Name)
}

// Enter acts on the entry named name in the current folder. Input is
// ignored while not browsing or while a file fetch is pending.
func (n Navigation) Enter(name string) (Navigation, *Request) {
	if n.state != Browsing || n.pending != "" || n.fatal != nil {
		return n, nil
	}
	_, level, err := tree.Resolve(n.tree, n.path)
	if err != nil {
		n.fatal = err
		return n, nil
	}
	node, err := tree.Lookup(level, name)
	if err != nil {
		n.fatal = &tree.PathError{Path: appendSegment(n.path, name), Err: err}
		return n, nil
	}
	if node.IsDir() {
		n.path = appendSegment(n.path, name)
		n.err = ""
		return n, nil
	}
	return n.openFile(name)
}

func (n Navigation) openFile(name string) (Navigation, *Request) {
	n.pending = tree.Join(n.path, name)
	n.err = ""
	return n, &Request{
		Kind:  LoadFile,
		Token: n.token,
		Repo:  n.identity.Repo,
		SHA1:  n.identity.SHA1,
		Path:  n.pending,
	}
}

// Up leaves the current folder. It does nothing at the root.
func (n Navigation) Up() Navigation {
	if n.state != Browsing || n.pending != "" || len(n.path) == 0 {
		return n
	}
	n.path = clonePath(n.path[:len(n.path)-1])
	n.err = ""
	return n
}

// FileLoaded applies a file fetch result. Results for another identity or
// for a file that is no longer pending are dropped.
func (n Navigation) FileLoaded(token uint64, path, contents string, err error) Navigation {
	if token != n.token || path != n.pending || path == "" {
		return n
	}
	n.pending = ""
	if err != nil {
		n.err = MsgFileFailed(path)
		return n
	}
	n.state = ViewingFile
	n.file = path
	n.contents = contents
	return n
}

// Back closes the file being viewed.
func (n Navigation) Back() Navigation {
	if n.state != ViewingFile {
		return n
	}
	n.state = Browsing
	n.file = ""
	n.contents = ""
	return n
}

// IsPathError reports whether err comes from walking the tree.
func IsPathError(err error) bool {
	return errors.Is(err, tree.ErrPathNotFound) || errors.Is(err, tree.ErrDuplicateEntry)
}

func clonePath(p []string) []string {
	if len(p) == 0 {
		return nil
	}
	out := make([]string, len(p))
	copy(out, p)
	return out
}

func appendSegment(p []string, segment string) []string {
	out := make([]string, len(p), len(p)+1)
	copy(out, p)
	return append(out, segment)
}
