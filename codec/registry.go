package codec

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps codec names and transfer syntax UIDs to codecs
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Codec
	byUID  map[string]Codec
}

var defaultRegistry = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Codec),
		byUID:  make(map[string]Codec),
	}
}

// Register adds c to the default registry
func Register(c Codec) {
	defaultRegistry.Register(c)
}

// Get looks up a codec in the default registry
func Get(nameOrUID string) (Codec, error) {
	return defaultRegistry.Get(nameOrUID)
}

// List returns the codecs of the default registry
func List() []Codec {
	return defaultRegistry.List()
}

// Register adds c under its name and its UID. A later codec with the same
// name or UID replaces the earlier one.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byName[c.Name()]; ok {
		delete(r.byUID, old.UID())
	}
	if old, ok := r.byUID[c.UID()]; ok {
		delete(r.byName, old.Name())
	}
	r.byName[c.Name()] = c
	r.byUID[c.UID()] = c
}

// Get returns the codec registered under a name or a UID. Names match
// case-insensitively.
func (r *Registry) Get(nameOrUID string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.byUID[nameOrUID]; ok {
		return c, nil
	}
	if c, ok := r.byName[nameOrUID]; ok {
		return c, nil
	}
	for name, c := range r.byName {
		if strings.EqualFold(name, nameOrUID) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrCodecNotFound, nameOrUID)
}

// List returns every registered codec ordered by name
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codecs := make([]Codec, 0, len(r.byName))
	for _, c := range r.byName {
		codecs = append(codecs, c)
	}
	slices.SortFunc(codecs, func(a, b Codec) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return codecs
}
