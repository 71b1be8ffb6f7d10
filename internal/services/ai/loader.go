package ai

import "sync"

// Loader constructs a Detector at most once per process, no matter how
// many requests race on the first access, and hands the same instance to
// every caller afterwards. A failed load is cached as well; each request
// sees the same error instead of retrying the expensive load.
type Loader struct {
	once     sync.Once
	factory  func() (Detector, error)
	detector Detector
	err      error
}

// NewLoader wraps a detector factory in a single-initialization guard.
func NewLoader(factory func() (Detector, error)) *Loader {
	return &Loader{factory: factory}
}

// Get returns the shared detector, constructing it on first use.
func (l *Loader) Get() (Detector, error) {
	l.once.Do(func() {
		l.detector, l.err = l.factory()
	})
	return l.detector, l.err
}
