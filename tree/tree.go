// Package tree models the directory listing of a repository at a commit.
//
// The backend sends a directory as an ordered JSON array whose elements are
// either a file name (a string) or a folder (an object mapping the folder name
// to its own array of children). Parse turns that into a Tree of tagged Nodes;
// Resolve walks a Tree along a path of folder names.
package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformed is returned when the raw listing does not have the
	// expected shape.
	ErrMalformed = errors.New("malformed directory tree")

	// ErrPathNotFound is returned when a path segment names a file or
	// matches nothing at its level.
	ErrPathNotFound = errors.New("path not found")

	// ErrDuplicateEntry is returned when two siblings share a name. The
	// backend guarantees unique names, so this is a contract violation.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Kind tags a Node as a file or a folder.
type Kind int

const (
	File Kind = iota
	Dir
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Dir:
		return "dir"
	default:
		return "unknown"
	}
}

// Node is one entry of a directory listing.
type Node struct {
	// ID is unique within the Tree it was parsed into. IDs are handed out
	// in depth-first pre-order starting at zero.
	ID       int
	Kind     Kind
	Name     string
	Children Tree // only set for Dir nodes
}

// IsDir reports whether the node is a folder.
func (n Node) IsDir() bool {
	return n.Kind == Dir
}

// Tree is the ordered contents of one directory.
type Tree []Node

// Names returns the entry names in listing order.
func (t Tree) Names() []string {
	names := make([]string, len(t))
	for i, n := range t {
		names[i] = n.Name
	}
	return names
}

// PathError records the path at which a lookup failed.
type PathError struct {
	Path   []string
	Detail string
	Err    error
}

func (e *PathError) Error() string {
	p := "/" + strings.Join(e.Path, "/")
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v (%s)", p, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s: %v", p, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// builder threads the ID counter through one Parse call.
type builder struct {
	next int
}

func (b *builder) id() int {
	id := b.next
	b.next++
	return id
}

// Parse builds a Tree from a raw listing array.
//
// Besides the `string | {name: children}` form, folders may also use the
// `{"name": "x", "children": [...]}` node form some backends emit; a node
// without children is a file.
func Parse(raw json.RawMessage) (Tree, error) {
	b := &builder{}
	return b.level(raw, nil)
}

// ParseEnvelope builds a Tree from the get_dirtree payload, which is either
// `{"/": [...]}` or a root node `{"name": "/", "children": [...]}`.
func ParseEnvelope(raw json.RawMessage) (Tree, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("%w: expected root object", ErrMalformed)
	}
	if root, ok := obj["/"]; ok && len(obj) == 1 {
		return Parse(root)
	}
	if name, ok := stringValue(obj["name"]); ok && name == "/" {
		children, ok := obj["children"]
		if !ok || isNull(children) {
			return Tree{}, nil
		}
		return Parse(children)
	}
	return nil, fmt.Errorf("%w: missing root entry", ErrMalformed)
}

func (b *builder) level(raw json.RawMessage, at []string) (Tree, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &PathError{Path: at, Detail: "expected array", Err: ErrMalformed}
	}
	t := make(Tree, 0, len(items))
	for _, item := range items {
		n, err := b.node(item, at)
		if err != nil {
			return nil, err
		}
		t = append(t, n)
	}
	return t, nil
}

func (b *builder) node(raw json.RawMessage, at []string) (Node, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Node{}, &PathError{Path: at, Detail: "empty entry", Err: ErrMalformed}
	}

	switch trimmed[0] {
	case '"':
		name, ok := stringValue(trimmed)
		if !ok {
			return Node{}, &PathError{Path: at, Detail: "bad file name", Err: ErrMalformed}
		}
		return Node{ID: b.id(), Kind: File, Name: name}, nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return Node{}, &PathError{Path: at, Detail: err.Error(), Err: ErrMalformed}
		}

		// {"name": "x", "children": [...]}
		if name, ok := stringValue(obj["name"]); ok {
			n := Node{ID: b.id(), Kind: File, Name: name}
			children, ok := obj["children"]
			if !ok || isNull(children) {
				return n, nil
			}
			n.Kind = Dir
			sub, err := b.level(children, appendPath(at, name))
			if err != nil {
				return Node{}, err
			}
			n.Children = sub
			return n, nil
		}

		// {"x": [...]}
		if len(obj) != 1 {
			return Node{}, &PathError{Path: at, Detail: fmt.Sprintf("folder object with %d keys", len(obj)), Err: ErrMalformed}
		}
		for name, children := range obj {
			n := Node{ID: b.id(), Kind: Dir, Name: name}
			sub, err := b.level(children, appendPath(at, name))
			if err != nil {
				return Node{}, err
			}
			n.Children = sub
			return n, nil
		}
	}

	return Node{}, &PathError{Path: at, Detail: "entry is neither a name nor a folder", Err: ErrMalformed}
}

// Lookup finds the single entry named name in t.
func Lookup(t Tree, name string) (Node, error) {
	var found *Node
	for i := range t {
		if t[i].Name != name {
			continue
		}
		if found != nil {
			return Node{}, ErrDuplicateEntry
		}
		found = &t[i]
	}
	if found == nil {
		return Node{}, ErrPathNotFound
	}
	return *found, nil
}

// Resolve walks path from the root of t and returns the consumed segments
// together with the listing of the folder the path names. Every segment
// must name a folder. Resolve never mutates t.
func Resolve(t Tree, path []string) ([]string, Tree, error) {
	consumed := make([]string, 0, len(path))
	current := t
	for _, segment := range path {
		n, err := Lookup(current, segment)
		if err != nil {
			return consumed, nil, &PathError{Path: appendPath(consumed, segment), Err: err}
		}
		if !n.IsDir() {
			return consumed, nil, &PathError{Path: appendPath(consumed, segment), Detail: "names a file", Err: ErrPathNotFound}
		}
		consumed = append(consumed, segment)
		current = n.Children
	}
	return consumed, current, nil
}

// Join builds the slash-separated repository path of name inside dir.
func Join(dir []string, name string) string {
	return strings.Join(appendPath(dir, name), "/")
}

// Split is the inverse of Join. Empty segments are dropped.
func Split(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// appendPath returns a new slice; path is never aliased.
func appendPath(path []string, segment string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, segment)
}

func stringValue(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
