package app

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gerunddev/repobrowse/api"
)

var (
	errUnreachable = &api.TransportError{Endpoint: api.DeleteRepository, Err: errors.New("connection refused")}
	errRejected    = &api.RejectionError{Endpoint: api.DeleteRepository, Reason: "success: false"}
)

func loadedStore(t *testing.T, names ...string) *Store {
	t.Helper()
	s := NewStore()
	reqs := s.Dispatch(RefreshRepositories{})
	if len(reqs) != 1 || reqs[0].Kind != LoadRepositories {
		t.Fatalf("expected one repositories request, got %+v", reqs)
	}
	s.Dispatch(RepositoriesLoaded{Token: reqs[0].Token, Names: names})
	return s
}

func TestStore_RepositoriesLoaded(t *testing.T) {
	s := loadedStore(t, "repoA", "repoB")
	repos := s.State().Repositories
	if repos.Loading || repos.Err != "" {
		t.Errorf("unexpected state %+v", repos)
	}
	if !reflect.DeepEqual(repos.Items, []string{"repoA", "repoB"}) {
		t.Errorf("items = %v", repos.Items)
	}
}

func TestStore_RepositoriesFailed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unreachable", errUnreachable, MsgUnreachable},
		{"rejected", errRejected, MsgRepositoriesFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			reqs := s.Dispatch(RefreshRepositories{})
			s.Dispatch(RepositoriesLoaded{Token: reqs[0].Token, Err: tc.err})

			repos := s.State().Repositories
			if repos.Loading {
				t.Error("loading should be cleared")
			}
			if repos.Err != tc.want {
				t.Errorf("err = %q, want %q", repos.Err, tc.want)
			}
		})
	}
}

func TestStore_SelectRepository_StaleCommitsDiscarded(t *testing.T) {
	s := loadedStore(t, "repoA", "repoB")

	reqA := s.Dispatch(SelectRepository{Name: "repoA"})
	reqB := s.Dispatch(SelectRepository{Name: "repoB"})
	if len(reqA) != 1 || len(reqB) != 1 {
		t.Fatalf("each selection should issue exactly one fetch, got %+v %+v", reqA, reqB)
	}

	s.Dispatch(CommitsLoaded{Token: reqA[0].Token, Commits: []api.Commit{{SHA1: "a1", Message: "from A"}}})
	commits := s.State().Commits
	if commits.Key != "repoB" || !commits.Loading || len(commits.Items) != 0 {
		t.Fatalf("stale repoA commits applied: %+v", commits)
	}

	s.Dispatch(CommitsLoaded{Token: reqB[0].Token, Commits: []api.Commit{{SHA1: "b1", Message: "from B"}}})
	commits = s.State().Commits
	if commits.Loading || len(commits.Items) != 1 || commits.Items[0].SHA1 != "b1" {
		t.Errorf("expected repoB commits, got %+v", commits)
	}
}

func TestStore_SelectSameRepositoryDoesNotRefetch(t *testing.T) {
	s := loadedStore(t, "repoA")
	s.Dispatch(SelectRepository{Name: "repoA"})
	if reqs := s.Dispatch(SelectRepository{Name: "repoA"}); len(reqs) != 0 {
		t.Errorf("expected no fetch, got %+v", reqs)
	}
}

func TestStore_CommitsFailed(t *testing.T) {
	s := loadedStore(t, "repoA")
	reqs := s.Dispatch(SelectRepository{Name: "repoA"})
	s.Dispatch(CommitsLoaded{Token: reqs[0].Token, Err: errUnreachable})

	commits := s.State().Commits
	if commits.Loading {
		t.Error("loading should be cleared")
	}
	if commits.Err != MsgCommitsFailed("repoA") {
		t.Errorf("err = %q", commits.Err)
	}
}

func TestStore_DeleteMissingRepository(t *testing.T) {
	s := loadedStore(t, "repoA", "repoB")

	reqs := s.Dispatch(DeleteRepository{Name: "repoX"})
	if len(reqs) != 1 || reqs[0] != (Request{Kind: DeleteRepo, Repo: "repoX"}) {
		t.Fatalf("unexpected requests %+v", reqs)
	}
	if items := s.State().Repositories.Items; !reflect.DeepEqual(items, []string{"repoA", "repoB"}) {
		t.Fatalf("list changed before confirmation: %v", items)
	}

	s.Dispatch(RepositoryDeleted{Name: "repoX", Err: errRejected})
	repos := s.State().Repositories
	if repos.Status != "Could not delete repository repoX" || !repos.Failed {
		t.Errorf("status = %q failed=%v", repos.Status, repos.Failed)
	}
	if !reflect.DeepEqual(repos.Items, []string{"repoA", "repoB"}) {
		t.Errorf("list changed after rejection: %v", repos.Items)
	}
}

func TestStore_DeleteUnreachable(t *testing.T) {
	s := loadedStore(t, "repoA")
	s.Dispatch(DeleteRepository{Name: "repoA"})
	s.Dispatch(RepositoryDeleted{Name: "repoA", Err: errUnreachable})

	if got := s.State().Repositories.Status; got != MsgUnreachable {
		t.Errorf("status = %q", got)
	}
}

func TestStore_DeleteSelectedRepository(t *testing.T) {
	s := loadedStore(t, "repoA", "repoB")
	reqs := s.Dispatch(SelectRepository{Name: "repoA"})
	s.Dispatch(CommitsLoaded{Token: reqs[0].Token, Commits: []api.Commit{{SHA1: "c1", Message: "m"}}})
	s.Dispatch(SelectCommit{SHA1: "c1"})

	s.Dispatch(RepositoryDeleted{Name: "repoA"})
	st := s.State()
	if !reflect.DeepEqual(st.Repositories.Items, []string{"repoB"}) {
		t.Errorf("items = %v", st.Repositories.Items)
	}
	if st.Repositories.Status != "Deleted repository repoA" {
		t.Errorf("status = %q", st.Repositories.Status)
	}
	if st.Repo != "" || st.Commit != "" || len(st.Commits.Items) != 0 || st.Diffs.Key != "" {
		t.Errorf("selection should be cleared, got %+v", st)
	}
}

func TestStore_CreateRepository(t *testing.T) {
	s := loadedStore(t, "repoA")

	reqs := s.Dispatch(CreateRepository{Name: "repoN"})
	if len(reqs) != 1 || reqs[0] != (Request{Kind: CreateRepo, Repo: "repoN"}) {
		t.Fatalf("unexpected requests %+v", reqs)
	}
	if len(s.State().Repositories.Items) != 1 {
		t.Fatal("repository added before confirmation")
	}

	s.Dispatch(RepositoryCreated{Name: "repoN"})
	repos := s.State().Repositories
	if !reflect.DeepEqual(repos.Items, []string{"repoA", "repoN"}) {
		t.Errorf("items = %v", repos.Items)
	}
	if repos.Status != MsgCreated("repoN") || repos.Failed {
		t.Errorf("status = %q", repos.Status)
	}

	s.Dispatch(RepositoryCreated{Name: "repoZ", Err: &api.RejectionError{Endpoint: api.CreateRepository, Reason: "success: false"}})
	repos = s.State().Repositories
	if repos.Status != "Could not create repository repoZ" || !repos.Failed {
		t.Errorf("status = %q", repos.Status)
	}
	if len(repos.Items) != 2 {
		t.Errorf("failed create changed the list: %v", repos.Items)
	}
}

func TestStore_SelectCommitFetchesDiffsAndTree(t *testing.T) {
	s := loadedStore(t, "repoA")
	s.Dispatch(SelectRepository{Name: "repoA"})

	reqs := s.Dispatch(SelectCommit{SHA1: "c1"})
	if len(reqs) != 2 {
		t.Fatalf("expected diff and tree requests, got %+v", reqs)
	}
	if reqs[0].Kind != LoadDiffs || reqs[0].Repo != "repoA" || reqs[0].SHA1 != "c1" {
		t.Errorf("unexpected diff request %+v", reqs[0])
	}
	if reqs[1].Kind != LoadTree || reqs[1].Repo != "repoA" || reqs[1].SHA1 != "c1" {
		t.Errorf("unexpected tree request %+v", reqs[1])
	}

	stale := reqs[0].Token
	reqs = s.Dispatch(SelectCommit{SHA1: "c2"})
	s.Dispatch(DiffsLoaded{Token: stale, Diffs: []string{"+old"}})
	if diffs := s.State().Diffs; !diffs.Loading || len(diffs.Items) != 0 {
		t.Fatalf("stale diffs applied: %+v", diffs)
	}
	s.Dispatch(DiffsLoaded{Token: reqs[0].Token, Diffs: []string{"+new"}})
	if diffs := s.State().Diffs; !reflect.DeepEqual(diffs.Items, []string{"+new"}) {
		t.Errorf("items = %v", diffs.Items)
	}
}

func TestStore_DiffsFailed(t *testing.T) {
	s := loadedStore(t, "repoA")
	s.Dispatch(SelectRepository{Name: "repoA"})
	reqs := s.Dispatch(SelectCommit{SHA1: "0123456789abcdef"})
	s.Dispatch(DiffsLoaded{Token: reqs[0].Token, Err: errUnreachable})

	diffs := s.State().Diffs
	if diffs.Loading || diffs.Err != "Could not get diffs for commit 01234567." {
		t.Errorf("unexpected diffs %+v", diffs)
	}
}

func TestStore_NavigateToFile(t *testing.T) {
	s := loadedStore(t, "repoA")

	reqs := s.Dispatch(Navigate{Route: Route{Repo: "repoA", SHA1: "c1", Path: []string{"A", "x"}}})
	kinds := make([]RequestKind, len(reqs))
	for i, r := range reqs {
		kinds[i] = r.Kind
	}
	if !reflect.DeepEqual(kinds, []RequestKind{LoadCommits, LoadDiffs, LoadTree}) {
		t.Fatalf("requests = %v", kinds)
	}

	reqs = s.Dispatch(TreeLoaded{Token: reqs[2].Token, Tree: sampleTree(t)})
	if len(reqs) != 1 || reqs[0].Kind != LoadFile || reqs[0].Path != "A/x" {
		t.Fatalf("expected file request, got %+v", reqs)
	}
	s.Dispatch(FileLoaded{Token: reqs[0].Token, Path: "A/x", Contents: "hello"})

	st := s.State()
	if st.Tree.State() != ViewingFile || st.Tree.Contents() != "hello" {
		t.Errorf("expected the file to be open, got %v", st.Tree.State())
	}
	if got := st.Route().String(); got != "/repo/repoA/c1/A/x" {
		t.Errorf("route = %q", got)
	}

	s.Dispatch(CloseFile{})
	if got := s.State().Route().String(); got != "/repo/repoA/c1/A" {
		t.Errorf("route after close = %q", got)
	}
}

func TestStore_NavigateAgainBeforeTreeLoads(t *testing.T) {
	s := loadedStore(t, "repoA")

	reqs := s.Dispatch(Navigate{Route: Route{Repo: "repoA", SHA1: "c1"}})
	if len(reqs) != 3 || reqs[2].Kind != LoadTree {
		t.Fatalf("unexpected requests %+v", reqs)
	}
	treeToken := reqs[2].Token

	if again := s.Dispatch(Navigate{Route: Route{Repo: "repoA", SHA1: "c1", Path: []string{"A", "B"}}}); len(again) != 0 {
		t.Fatalf("same commit must not refetch, got %+v", again)
	}

	s.Dispatch(TreeLoaded{Token: treeToken, Tree: sampleTree(t)})
	if got := s.State().Route().String(); got != "/repo/repoA/c1/A/B" {
		t.Errorf("route = %q, want /repo/repoA/c1/A/B", got)
	}
}

func TestStore_NavigateToRepositoryClearsCommit(t *testing.T) {
	s := loadedStore(t, "repoA")
	s.Dispatch(Navigate{Route: Route{Repo: "repoA", SHA1: "c1"}})

	if reqs := s.Dispatch(Navigate{Route: Route{Repo: "repoA"}}); len(reqs) != 0 {
		t.Errorf("same repository should not refetch commits, got %+v", reqs)
	}
	st := s.State()
	if st.Commit != "" || st.Diffs.Key != "" || st.Tree.Identity().Valid() {
		t.Errorf("commit selection should be cleared, got %+v", st)
	}
}

func TestStore_ReloadRefetchesSelection(t *testing.T) {
	s := loadedStore(t, "repoA")
	s.Dispatch(SelectRepository{Name: "repoA"})
	reqs := s.Dispatch(SelectCommit{SHA1: "c1"})
	s.Dispatch(TreeLoaded{Token: reqs[1].Token, Tree: sampleTree(t)})

	reqs = s.Dispatch(Reload{})
	kinds := make([]RequestKind, len(reqs))
	for i, r := range reqs {
		kinds[i] = r.Kind
	}
	want := []RequestKind{LoadRepositories, LoadCommits, LoadDiffs, LoadTree}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("requests = %v, want %v", kinds, want)
	}
}

func TestRequestKind_String(t *testing.T) {
	if got := LoadFile.String(); got != "load file" {
		t.Errorf("LoadFile.String() = %q", got)
	}
	if got := RequestKind(99).String(); got != "unknown" {
		t.Errorf("RequestKind(99).String() = %q", got)
	}
}
