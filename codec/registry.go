package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves codecs by name or ID. Names and IDs share one key
// space, so a key names at most one codec.
type Registry struct {
	mu     sync.RWMutex
	byKey  map[string]Codec
	codecs []Codec // sorted by name
}

var defaultRegistry = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byKey: make(map[string]Codec),
	}
}

// Register adds codec to the default registry
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get retrieves a codec by name or ID
func Get(nameOrID string) (Codec, error) {
	return defaultRegistry.Get(nameOrID)
}

// List returns all registered codecs
func List() []Codec {
	return defaultRegistry.List()
}

// Register adds codec under its name and its ID. Registering the same
// codec again is a no-op; it panics if either key already belongs to
// a different codec.
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := []string{codec.Name(), codec.ID()}
	registered := false
	for _, key := range keys {
		existing, ok := r.byKey[key]
		switch {
		case !ok:
		case existing == codec:
			registered = true
		default:
			panic(fmt.Sprintf("codec: %q is already registered by %s", key, existing.Name()))
		}
	}
	if registered {
		return
	}

	for _, key := range keys {
		r.byKey[key] = codec
	}
	i := sort.Search(len(r.codecs), func(i int) bool {
		return r.codecs[i].Name() >= codec.Name()
	})
	r.codecs = append(r.codecs, nil)
	copy(r.codecs[i+1:], r.codecs[i:])
	r.codecs[i] = codec
}

// Get retrieves a codec by name or ID
func (r *Registry) Get(nameOrID string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codec, ok := r.byKey[nameOrID]
	if !ok {
		return nil, ErrCodecNotFound
	}
	return codec, nil
}

// List returns all registered codecs sorted by name
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Codec(nil), r.codecs...)
}
