// Package registry provides the lazy source/inference-component name to
// numeric id resolution the engine's shared filter gate needs. A real
// deployment supplies its own Resolver backed by the host's global
// service registry, an out-of-scope external collaborator here.
package registry

import (
	"sync"

	"go.uber.org/zap"
)

// Resolver resolves a source or inference-component name to its numeric
// id. The second return value reports whether resolution succeeded — a
// resolution miss is not a fatal error, the caller's filter simply stays
// unmatched.
type Resolver interface {
	SourceIDGet(name string) (int, bool)
	InferIDGet(name string) (int, bool)
}

// DefaultResolver is a simple in-memory, mutex-guarded Resolver good
// enough for tests and the demo binary.
type DefaultResolver struct {
	mu       sync.RWMutex
	sources  map[string]int
	inferers map[string]int
	log      *zap.Logger
}

// NewDefaultResolver builds an empty DefaultResolver. A nil logger falls
// back to zap.NewNop.
func NewDefaultResolver(log *zap.Logger) *DefaultResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &DefaultResolver{
		sources:  make(map[string]int),
		inferers: make(map[string]int),
		log:      log,
	}
}

// RegisterSource associates name with id for future SourceIDGet calls.
func (r *DefaultResolver) RegisterSource(name string, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = id
}

// RegisterInfer associates name with id for future InferIDGet calls.
func (r *DefaultResolver) RegisterInfer(name string, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inferers[name] = id
}

func (r *DefaultResolver) SourceIDGet(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.sources[name]
	if !ok {
		r.log.Debug("registry: source name not resolved", zap.String("name", name))
	}
	return id, ok
}

func (r *DefaultResolver) InferIDGet(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.inferers[name]
	if !ok {
		r.log.Debug("registry: infer component name not resolved", zap.String("name", name))
	}
	return id, ok
}
