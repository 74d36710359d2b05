package markers

import (
	"math"
	"sync"

	"github.com/OCAP2/weather/internal/geo"
	"github.com/OCAP2/weather/pkg/core"
)

// DefaultRadius is how far from the party a weather marker still counts.
const DefaultRadius = 25.0

// Registry holds the weather markers placed in the persistent world.
// Markers outlive missions; the simulation clears them on world load.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	markers map[string]core.Marker
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		markers: make(map[string]core.Marker),
	}
}

// Get retrieves a marker by name
func (r *Registry) Get(name string) (core.Marker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.markers[name]
	return m, ok
}

// Set stores a marker. Moving an existing marker keeps its registration slot.
func (r *Registry) Set(m core.Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.markers[m.Name]; !ok {
		r.order = append(r.order, m.Name)
	}
	r.markers[m.Name] = m
}

// Delete removes a marker by name
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.markers[name]; !ok {
		return
	}
	delete(r.markers, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Reset clears all markers
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.markers = make(map[string]core.Marker)
}

// Len returns the number of markers
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.markers)
}

// Nearest returns the closest marker within radius of pos, measured on the XY
// plane. Equal distances resolve to the marker registered first.
func (r *Registry) Nearest(pos core.Position3D, radius float64) (core.Marker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		best     core.Marker
		bestDist float64
		found    bool
	)
	for _, name := range r.order {
		m := r.markers[name]
		d := geo.PlanarDistance(pos, m.Position)
		if math.IsNaN(d) || d > radius {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = m, d, true
		}
	}
	return best, found
}
