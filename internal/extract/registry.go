package extract

import (
	"github.com/cleared-dev/smsparse/internal/source"
)

// Registry maps institution keys to profiles. It has no mutators, so a
// constructed Registry is safe for concurrent use.
type Registry struct {
	profiles map[source.Key]*Profile
}

// NewRegistry builds a registry from profiles. Panics on duplicate keys.
func NewRegistry(profiles ...*Profile) *Registry {
	r := &Registry{profiles: make(map[source.Key]*Profile, len(profiles))}
	for _, p := range profiles {
		if _, ok := r.profiles[p.Key]; ok {
			panic("duplicate profile: " + string(p.Key))
		}
		r.profiles[p.Key] = p
	}
	return r
}

// Get returns a copy of the profile for key.
func (r *Registry) Get(key source.Key) (Profile, bool) {
	p, ok := r.profiles[key]
	if !ok {
		return Profile{}, false
	}
	return *p, true
}

var defaultRegistry = NewRegistry(
	hdfcProfile(),
	sbiProfile(),
	iciciProfile(),
	axisProfile(),
	kotakProfile(),
	pnbProfile(),
	upiProfile(),
)

// DefaultRegistry returns the built-in profiles for every institution source
// can identify. The same instance is returned on every call.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
