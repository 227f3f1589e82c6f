package app

// List is a fetched list keyed on the selection it was fetched for:
// commits are keyed on a repository name, diffs on a commit. Selecting a
// different key discards the items and starts a new fetch generation so
// that a late response for the old key is dropped.
type List[T any] struct {
	Key     string
	Token   uint64
	Loading bool
	Items   []T
	Err     string
}

// Select keys the list on key. It reports whether a fetch must be issued.
// Re-selecting the current key keeps the list as is. An empty key clears
// the list and fetches nothing.
func (l List[T]) Select(key string) (List[T], bool) {
	if key == l.Key && l.Token != 0 {
		return l, false
	}
	return l.restart(key), key != ""
}

// Reload starts a new fetch generation for the current key.
func (l List[T]) Reload() (List[T], bool) {
	return l.restart(l.Key), l.Key != ""
}

func (l List[T]) restart(key string) List[T] {
	return List[T]{
		Key:     key,
		Token:   l.Token + 1,
		Loading: key != "",
	}
}

// Resolve applies a fetch result. Results from an older generation are
// ignored. On failure the list is left empty with errMsg set.
func (l List[T]) Resolve(token uint64, items []T, errMsg string) List[T] {
	if token != l.Token || !l.Loading {
		return l
	}
	l.Loading = false
	if errMsg != "" {
		l.Items = nil
		l.Err = errMsg
		return l
	}
	if items == nil {
		items = []T{}
	}
	l.Items = items
	l.Err = ""
	return l
}
