package app

import (
	"slices"

	"github.com/gerunddev/repobrowse/api"
	"github.com/gerunddev/repobrowse/tree"
)

// RequestKind names the backend call a Request asks for.
type RequestKind int

const (
	LoadRepositories RequestKind = iota
	LoadCommits
	LoadDiffs
	LoadTree
	LoadFile
	CreateRepo
	DeleteRepo
)

func (k RequestKind) String() string {
	switch k {
	case LoadRepositories:
		return "load repositories"
	case LoadCommits:
		return "load commits"
	case LoadDiffs:
		return "load diffs"
	case LoadTree:
		return "load tree"
	case LoadFile:
		return "load file"
	case CreateRepo:
		return "create repository"
	case DeleteRepo:
		return "delete repository"
	default:
		return "unknown"
	}
}

// Request is a fetch the caller must perform. Its result is fed back as
// the matching *Loaded / *Created / *Deleted action carrying Token.
type Request struct {
	Kind  RequestKind
	Token uint64
	Repo  string
	SHA1  string
	Path  string
}

// Action is a discrete event applied by Reduce.
type Action interface {
	action()
}

type (
	// RefreshRepositories fetches the repository list.
	RefreshRepositories struct{}

	RepositoriesLoaded struct {
		Token uint64
		Names []string
		Err   error
	}

	CreateRepository struct{ Name string }

	RepositoryCreated struct {
		Name string
		Err  error
	}

	DeleteRepository struct{ Name string }

	RepositoryDeleted struct {
		Name string
		Err  error
	}

	// SelectRepository makes Name the selecting key of the commit list.
	// An empty name clears the selection.
	SelectRepository struct{ Name string }

	CommitsLoaded struct {
		Token   uint64
		Commits []api.Commit
		Err     error
	}

	// SelectCommit selects a commit of the selected repository; its diffs
	// and directory tree are fetched.
	SelectCommit struct{ SHA1 string }

	DiffsLoaded struct {
		Token uint64
		Diffs []string
		Err   error
	}

	TreeLoaded struct {
		Token uint64
		Tree  tree.Tree
		Err   error
	}

	// EnterEntry acts on a row of the current listing.
	EnterEntry struct{ Entry Entry }

	GoUp struct{}

	FileLoaded struct {
		Token    uint64
		Path     string
		Contents string
		Err      error
	}

	CloseFile struct{}

	// Navigate jumps to a route, selecting its repository and commit and
	// walking its path once the tree has loaded.
	Navigate struct{ Route Route }

	// Reload refetches every slice that has a selecting key.
	Reload struct{}
)

func (RefreshRepositories) action() {}
func (RepositoriesLoaded) action()  {}
func (CreateRepository) action()    {}
func (RepositoryCreated) action()   {}
func (DeleteRepository) action()    {}
func (RepositoryDeleted) action()   {}
func (SelectRepository) action()    {}
func (CommitsLoaded) action()       {}
func (SelectCommit) action()        {}
func (DiffsLoaded) action()         {}
func (TreeLoaded) action()          {}
func (EnterEntry) action()          {}
func (GoUp) action()                {}
func (FileLoaded) action()          {}
func (CloseFile) action()           {}
func (Navigate) action()            {}
func (Reload) action()              {}

// Repositories is the repository list slice. Status reports the outcome
// of the last create or delete; Failed marks it as an error.
type Repositories struct {
	Token   uint64
	Loading bool
	Items   []string
	Err     string
	Status  string
	Failed  bool
}

// State is the whole application state.
type State struct {
	Repositories Repositories
	Commits      List[CommitSummary]
	Diffs        List[string]
	Tree         Navigation

	Repo   string // selected repository
	Commit string // selected commit of Repo
}

// Route returns the location the state is showing.
func (s State) Route() Route {
	r := Route{Repo: s.Repo, SHA1: s.Commit}
	if s.Commit == "" {
		return r
	}
	switch s.Tree.State() {
	case ViewingFile:
		r.Path = tree.Split(s.Tree.File())
	case Browsing:
		r.Path = s.Tree.Path()
	}
	return r
}

// Reduce applies a to s. It never performs I/O; the fetches the
// transition needs are returned.
func Reduce(s State, a Action) (State, []Request) {
	switch a := a.(type) {
	case RefreshRepositories:
		return reduceRefresh(s)
	case RepositoriesLoaded:
		return reduceRepositoriesLoaded(s, a), nil
	case CreateRepository:
		if a.Name == "" {
			return s, nil
		}
		s.Repositories.Status = ""
		s.Repositories.Failed = false
		return s, []Request{{Kind: CreateRepo, Repo: a.Name}}
	case RepositoryCreated:
		return reduceCreated(s, a), nil
	case DeleteRepository:
		if a.Name == "" {
			return s, nil
		}
		s.Repositories.Status = ""
		s.Repositories.Failed = false
		return s, []Request{{Kind: DeleteRepo, Repo: a.Name}}
	case RepositoryDeleted:
		return reduceDeleted(s, a)
	case SelectRepository:
		return selectRepository(s, a.Name)
	case CommitsLoaded:
		return reduceCommitsLoaded(s, a), nil
	case SelectCommit:
		return selectCommit(s, a.SHA1, nil)
	case DiffsLoaded:
		return reduceDiffsLoaded(s, a), nil
	case TreeLoaded:
		var req *Request
		s.Tree, req = s.Tree.TreeLoaded(a.Token, a.Tree, a.Err)
		return s, requests(req)
	case EnterEntry:
		var req *Request
		s.Tree, req = s.Tree.Select(a.Entry)
		return s, requests(req)
	case GoUp:
		s.Tree = s.Tree.Up()
		return s, nil
	case FileLoaded:
		s.Tree = s.Tree.FileLoaded(a.Token, a.Path, a.Contents, a.Err)
		return s, nil
	case CloseFile:
		s.Tree = s.Tree.Back()
		return s, nil
	case Navigate:
		return navigate(s, a.Route)
	case Reload:
		return reduceReload(s)
	}
	return s, nil
}

func reduceRefresh(s State) (State, []Request) {
	s.Repositories.Token++
	s.Repositories.Loading = true
	s.Repositories.Err = ""
	return s, []Request{{Kind: LoadRepositories, Token: s.Repositories.Token}}
}

func reduceRepositoriesLoaded(s State, a RepositoriesLoaded) State {
	if a.Token != s.Repositories.Token || !s.Repositories.Loading {
		return s
	}
	s.Repositories.Loading = false
	if a.Err != nil {
		s.Repositories.Err = describe(a.Err, MsgRepositoriesFailed)
		return s
	}
	s.Repositories.Err = ""
	s.Repositories.Items = slices.Clone(a.Names)
	if s.Repositories.Items == nil {
		s.Repositories.Items = []string{}
	}
	return s
}

func reduceCreated(s State, a RepositoryCreated) State {
	if a.Err != nil {
		s.Repositories.Status = describe(a.Err, MsgCreateFailed(a.Name))
		s.Repositories.Failed = true
		return s
	}
	if !slices.Contains(s.Repositories.Items, a.Name) {
		s.Repositories.Items = append(slices.Clone(s.Repositories.Items), a.Name)
	}
	s.Repositories.Status = MsgCreated(a.Name)
	s.Repositories.Failed = false
	return s
}

func reduceDeleted(s State, a RepositoryDeleted) (State, []Request) {
	if a.Err != nil {
		s.Repositories.Status = describe(a.Err, MsgDeleteFailed(a.Name))
		s.Repositories.Failed = true
		return s, nil
	}
	s.Repositories.Items = slices.DeleteFunc(slices.Clone(s.Repositories.Items), func(n string) bool {
		return n == a.Name
	})
	s.Repositories.Status = MsgDeleted(a.Name)
	s.Repositories.Failed = false
	if s.Repo == a.Name {
		return selectRepository(s, "")
	}
	return s, nil
}

func selectRepository(s State, name string) (State, []Request) {
	if name == s.Repo && s.Commits.Token != 0 {
		return s, nil
	}
	s.Repo = name
	s.Commit = ""

	var reqs []Request
	var fetch bool
	s.Commits, fetch = s.Commits.Select(name)
	if fetch {
		reqs = append(reqs, Request{Kind: LoadCommits, Token: s.Commits.Token, Repo: name})
	}
	s.Diffs, _ = s.Diffs.Select("")
	s.Tree, _ = s.Tree.Open(Identity{}, nil)
	return s, reqs
}

func reduceCommitsLoaded(s State, a CommitsLoaded) State {
	errMsg := ""
	if a.Err != nil {
		errMsg = MsgCommitsFailed(s.Commits.Key)
	}
	s.Commits = s.Commits.Resolve(a.Token, SummarizeAll(a.Commits), errMsg)
	return s
}

func selectCommit(s State, sha1 string, path []string) (State, []Request) {
	if s.Repo == "" {
		return s, nil
	}
	s.Commit = sha1

	var reqs []Request
	var fetch bool
	s.Diffs, fetch = s.Diffs.Select(diffKey(s.Repo, sha1))
	if fetch {
		reqs = append(reqs, Request{Kind: LoadDiffs, Token: s.Diffs.Token, Repo: s.Repo, SHA1: sha1})
	}
	var req *Request
	s.Tree, req = s.Tree.Open(Identity{Repo: s.Repo, SHA1: sha1}, path)
	return s, append(reqs, requests(req)...)
}

func reduceDiffsLoaded(s State, a DiffsLoaded) State {
	errMsg := ""
	if a.Err != nil {
		errMsg = MsgDiffsFailed(s.Commit)
	}
	s.Diffs = s.Diffs.Resolve(a.Token, slices.Clone(a.Diffs), errMsg)
	return s
}

func navigate(s State, r Route) (State, []Request) {
	s, reqs := selectRepository(s, r.Repo)
	if r.Repo == "" {
		return s, reqs
	}
	if r.SHA1 == "" {
		s.Commit = ""
		s.Diffs, _ = s.Diffs.Select("")
		s.Tree, _ = s.Tree.Open(Identity{}, nil)
		return s, reqs
	}
	s, more := selectCommit(s, r.SHA1, r.Path)
	return s, append(reqs, more...)
}

func reduceReload(s State) (State, []Request) {
	s, reqs := reduceRefresh(s)
	var fetch bool
	s.Commits, fetch = s.Commits.Reload()
	if fetch {
		reqs = append(reqs, Request{Kind: LoadCommits, Token: s.Commits.Token, Repo: s.Repo})
	}
	if s.Commit != "" {
		s.Diffs, fetch = s.Diffs.Reload()
		if fetch {
			reqs = append(reqs, Request{Kind: LoadDiffs, Token: s.Diffs.Token, Repo: s.Repo, SHA1: s.Commit})
		}
		var req *Request
		s.Tree, req = s.Tree.Reload()
		reqs = append(reqs, requests(req)...)
	}
	return s, reqs
}

// diffKey keys the diff list on the commit within its repository; an empty
// commit clears it.
func diffKey(repo, sha1 string) string {
	if sha1 == "" {
		return ""
	}
	return repo + "\x00" + sha1
}

func requests(req *Request) []Request {
	if req == nil {
		return nil
	}
	return []Request{*req}
}

// Store owns the application state. It is not safe for concurrent use;
// the UI event loop is its only caller.
type Store struct {
	state State
}

// NewStore returns a Store with every slice empty.
func NewStore() *Store {
	return &Store{}
}

// State returns the current state.
func (s *Store) State() State {
	return s.state
}

// Dispatch applies a and returns the fetches to perform.
func (s *Store) Dispatch(a Action) []Request {
	next, reqs := Reduce(s.state, a)
	s.state = next
	return reqs
}
