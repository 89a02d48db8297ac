package candidate

import (
	"context"
	"sort"
	"sync"

	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

// Request is passed to a SourceFunc when the shell asks for on-the-fly candidates
type Request struct {
	// Target is the shell which asked for candidates
	Target string
	// Name is the source name carried by the on-the-fly token
	Name string
	// Words are the command-line words typed so far, without the executable
	Words []string
	// Command is the command the words address; nil at the root level
	Command *command.Node
	// Path is the matched command path
	Path []string
}

// SourceFunc computes candidates at completion time
type SourceFunc func(ctx context.Context, req Request) ([]Value, error)

// Sources maps on-the-fly source names to their functions. It is safe for concurrent use.
type Sources struct {
	mu      sync.RWMutex
	sources map[string]SourceFunc
}

// NewSources returns an empty registry
func NewSources() *Sources {
	return &Sources{sources: make(map[string]SourceFunc)}
}

// Register adds or replaces the source for name
func (s *Sources) Register(name string, fn SourceFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[name] = fn
}

// Get returns the source registered for name
func (s *Sources) Get(name string) (SourceFunc, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn, ok := s.sources[name]
	return fn, ok
}

// Names returns the registered source names in sorted order
func (s *Sources) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve runs the source registered for req.Name
func (s *Sources) Resolve(ctx context.Context, req Request) ([]Value, error) {
	fn, ok := s.Get(req.Name)
	if !ok {
		return nil, errs.ErrUnknownSource.WithArgs(req.Name)
	}

	values, err := fn(ctx, req)
	if err != nil {
		return nil, errs.ErrSourceFailed.WithArgs(req.Name).Wrap(err)
	}

	return values, nil
}
