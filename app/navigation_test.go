package app

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gerunddev/repobrowse/tree"
)

var testID = Identity{Repo: "repoA", SHA1: "c1"}

func sampleTree(t *testing.T) tree.Tree {
	t.Helper()
	tr, err := tree.Parse([]byte(`["README", {"A": ["x", {"B": ["y"]}]}]`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return tr
}

// browsing returns a navigation that has loaded sampleTree for testID.
func browsing(t *testing.T) Navigation {
	t.Helper()
	n, req := Navigation{}.Open(testID, nil)
	if req == nil {
		t.Fatal("expected a tree request")
	}
	n, _ = n.TreeLoaded(req.Token, sampleTree(t), nil)
	if n.State() != Browsing {
		t.Fatalf("expected Browsing, got %v", n.State())
	}
	return n
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestNavigation_OpenRequestsTree(t *testing.T) {
	n, req := Navigation{}.Open(testID, nil)
	if n.State() != Loading {
		t.Errorf("expected Loading, got %v", n.State())
	}
	want := Request{Kind: LoadTree, Token: n.Token(), Repo: "repoA", SHA1: "c1"}
	if req == nil || *req != want {
		t.Fatalf("expected %+v, got %+v", want, req)
	}

	again, req := n.Open(testID, nil)
	if req != nil {
		t.Errorf("same identity should not refetch, got %+v", req)
	}
	if again.Token() != n.Token() {
		t.Error("same identity should keep the token")
	}
}

func TestNavigation_TreeFailedStaysLoading(t *testing.T) {
	n, req := Navigation{}.Open(testID, nil)
	n, next := n.TreeLoaded(req.Token, nil, errors.New("boom"))
	if next != nil {
		t.Errorf("tree failure must not be retried, got %+v", next)
	}
	if n.State() != Loading {
		t.Errorf("expected Loading, got %v", n.State())
	}
	if n.Err() != MsgTreeFailed {
		t.Errorf("expected %q, got %q", MsgTreeFailed, n.Err())
	}
}

func TestNavigation_Walk(t *testing.T) {
	n := browsing(t)

	entries, err := n.Listing()
	if err != nil {
		t.Fatalf("Listing failed: %v", err)
	}
	if got := names(entries); !reflect.DeepEqual(got, []string{"README", "A"}) {
		t.Errorf("root listing = %v", got)
	}

	n, req := n.Enter("A")
	if req != nil {
		t.Errorf("entering a folder should not fetch, got %+v", req)
	}
	entries, _ = n.Listing()
	if got := names(entries); !reflect.DeepEqual(got, []string{"..", "x", "B"}) {
		t.Errorf("A listing = %v", got)
	}
	if !entries[0].Up {
		t.Error("first entry below root should be the up entry")
	}

	n, _ = n.Enter("B")
	if got := n.Path(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("path = %v", got)
	}

	n, _ = n.Select(UpEntry)
	n, _ = n.Select(UpEntry)
	if len(n.Path()) != 0 {
		t.Errorf("expected root, got %v", n.Path())
	}
	entries, _ = n.Listing()
	if entries[0].Up {
		t.Error("root listing must not have an up entry")
	}
}

func TestNavigation_UpAtRootIsNoop(t *testing.T) {
	n := browsing(t)
	up := n.Up()
	if !reflect.DeepEqual(up, n) {
		t.Error("Up at root should not change state")
	}
}

func TestNavigation_OpenFile(t *testing.T) {
	n := browsing(t)
	n, _ = n.Enter("A")

	n, req := n.Enter("x")
	want := Request{Kind: LoadFile, Token: n.Token(), Repo: "repoA", SHA1: "c1", Path: "A/x"}
	if req == nil || *req != want {
		t.Fatalf("expected %+v, got %+v", want, req)
	}
	if n.State() != Browsing {
		t.Errorf("no transition before the file arrives, got %v", n.State())
	}
	if n.Pending() != "A/x" {
		t.Errorf("pending = %q", n.Pending())
	}

	// input is ignored while the file is pending
	if blocked, req := n.Enter("B"); req != nil || !reflect.DeepEqual(blocked.Path(), []string{"A"}) {
		t.Error("input should be ignored while a file is pending")
	}

	n = n.FileLoaded(req.Token, "A/x", "hello", nil)
	if n.State() != ViewingFile || n.File() != "A/x" || n.Contents() != "hello" {
		t.Errorf("unexpected state %v file=%q contents=%q", n.State(), n.File(), n.Contents())
	}

	n = n.Back()
	if n.State() != Browsing || !reflect.DeepEqual(n.Path(), []string{"A"}) {
		t.Errorf("Back should return to A, got %v %v", n.State(), n.Path())
	}

	// contents are not cached
	if _, req := n.Enter("x"); req == nil {
		t.Error("opening the file again should fetch it again")
	}
}

func TestNavigation_FileFailed(t *testing.T) {
	n := browsing(t)
	n, req := n.Enter("README")
	n = n.FileLoaded(req.Token, req.Path, "", errors.New("boom"))
	if n.State() != Browsing {
		t.Errorf("expected Browsing, got %v", n.State())
	}
	if n.Err() != MsgFileFailed("README") {
		t.Errorf("err = %q", n.Err())
	}
	if n.Pending() != "" {
		t.Error("pending should be cleared")
	}
}

func TestNavigation_StaleFileDiscardedAfterIdentityChange(t *testing.T) {
	n := browsing(t)
	n, fileReq := n.Enter("README")

	n, treeReq := n.Open(Identity{Repo: "repoA", SHA1: "c2"}, nil)
	if treeReq == nil {
		t.Fatal("identity change should request the new tree")
	}
	if n.State() != Loading || n.Pending() != "" {
		t.Errorf("identity change should force Loading and drop the pending file")
	}

	n = n.FileLoaded(fileReq.Token, fileReq.Path, "stale", nil)
	if n.State() != Loading || n.Contents() != "" {
		t.Error("stale file response must be ignored")
	}

	n, _ = n.TreeLoaded(treeReq.Token, sampleTree(t), nil)
	n = n.FileLoaded(fileReq.Token, fileReq.Path, "stale", nil)
	if n.State() != Browsing {
		t.Errorf("stale file response applied after new tree loaded: %v", n.State())
	}
}

func TestNavigation_StaleTreeDiscarded(t *testing.T) {
	n, first := Navigation{}.Open(testID, nil)
	n, second := n.Open(Identity{Repo: "repoB", SHA1: "c9"}, nil)

	n, _ = n.TreeLoaded(first.Token, sampleTree(t), nil)
	if n.State() != Loading {
		t.Fatalf("stale tree applied: %v", n.State())
	}
	n, _ = n.TreeLoaded(second.Token, tree.Tree{}, nil)
	if n.State() != Browsing || n.Identity().Repo != "repoB" {
		t.Errorf("expected Browsing repoB, got %v %+v", n.State(), n.Identity())
	}
}

func TestNavigation_FileResponseForOtherPathIgnored(t *testing.T) {
	n := browsing(t)
	n, req := n.Enter("README")
	n = n.FileLoaded(req.Token, "A/x", "other", nil)
	if n.State() != Browsing || n.Pending() != "README" {
		t.Error("response for a path that is not pending must be ignored")
	}
}

func TestNavigation_Target(t *testing.T) {
	tests := []struct {
		name     string
		target   []string
		wantPath []string
		wantFile string
		wantErr  error
	}{
		{name: "root", target: nil},
		{name: "folder", target: []string{"A", "B"}, wantPath: []string{"A", "B"}},
		{name: "file", target: []string{"A", "x"}, wantPath: []string{"A"}, wantFile: "A/x"},
		{name: "missing", target: []string{"A", "nope"}, wantErr: tree.ErrPathNotFound},
		{name: "file in the middle", target: []string{"README", "y"}, wantErr: tree.ErrPathNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, req := Navigation{}.Open(testID, tc.target)
			n, fileReq := n.TreeLoaded(req.Token, sampleTree(t), nil)

			if tc.wantErr != nil {
				if !errors.Is(n.Fatal(), tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, n.Fatal())
				}
				if _, err := n.Listing(); !IsPathError(err) {
					t.Errorf("Listing should report the path error, got %v", err)
				}
				return
			}
			if n.Fatal() != nil {
				t.Fatalf("unexpected error: %v", n.Fatal())
			}
			if !reflect.DeepEqual(n.Path(), tc.wantPath) {
				t.Errorf("path = %v, want %v", n.Path(), tc.wantPath)
			}
			if tc.wantFile == "" {
				if fileReq != nil {
					t.Errorf("unexpected file request %+v", fileReq)
				}
				return
			}
			if fileReq == nil || fileReq.Path != tc.wantFile {
				t.Fatalf("expected file request for %q, got %+v", tc.wantFile, fileReq)
			}
		})
	}
}

func TestNavigation_DuplicateEntryIsFatal(t *testing.T) {
	tr, err := tree.Parse([]byte(`[{"A": []}, {"A": ["z"]}]`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	n, req := Navigation{}.Open(testID, nil)
	n, _ = n.TreeLoaded(req.Token, tr, nil)

	n, _ = n.Enter("A")
	if !errors.Is(n.Fatal(), tree.ErrDuplicateEntry) {
		t.Errorf("expected duplicate entry error, got %v", n.Fatal())
	}
}

func TestNavigation_ReloadKeepsFolder(t *testing.T) {
	n := browsing(t)
	n, _ = n.Enter("A")

	n, req := n.Reload()
	if req == nil || req.Kind != LoadTree {
		t.Fatalf("expected tree request, got %+v", req)
	}
	n, _ = n.TreeLoaded(req.Token, sampleTree(t), nil)
	if !reflect.DeepEqual(n.Path(), []string{"A"}) {
		t.Errorf("reload should return to A, got %v", n.Path())
	}
}

func TestNavigation_LatestTargetWinsWhileLoading(t *testing.T) {
	tests := []struct {
		name     string
		second   []string
		wantPath []string
	}{
		{name: "deeper folder", second: []string{"A", "B"}, wantPath: []string{"A", "B"}},
		{name: "back to root", second: nil, wantPath: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, req := Navigation{}.Open(testID, []string{"A"})
			n, again := n.Open(testID, tc.second)
			if again != nil {
				t.Fatalf("same identity must not refetch, got %+v", again)
			}

			n, _ = n.TreeLoaded(req.Token, sampleTree(t), nil)
			if !reflect.DeepEqual(n.Path(), tc.wantPath) {
				t.Errorf("path = %v, want %v", n.Path(), tc.wantPath)
			}
		})
	}
}
