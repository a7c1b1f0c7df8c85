package report

import "sync"

// Focus tracks which identity's detail panel is expanded in the report
// view. At most one identity is focused at a time; re-selecting the
// focused identity collapses it.
type Focus struct {
	mu      sync.Mutex
	current string
}

// Toggle selects identity and reports whether it is now expanded.
// Selecting a different identity moves the focus; selecting the current
// one clears it.
func (f *Focus) Toggle(identity string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == identity {
		f.current = ""
		return false
	}
	f.current = identity
	return true
}

// Current returns the focused identity, or "" when nothing is expanded.
func (f *Focus) Current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}
