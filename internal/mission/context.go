package mission

import (
	"sync"

	"github.com/OCAP2/weather/pkg/core"
)

// Context holds the current mission and the world state shared across
// missions: the dust-active flag and the operator's custom battle selection.
type Context struct {
	mu        sync.RWMutex
	mission   core.MissionContext
	running   bool
	dust      bool
	selection core.Optional[core.CustomSelection]
}

// NewContext creates a new Context with no mission loaded
func NewContext() *Context {
	return &Context{
		mission:   core.MissionContext{Name: "No mission loaded"},
		selection: core.None[core.CustomSelection](),
	}
}

// GetMission returns the current mission and whether one is running
func (c *Context) GetMission() (core.MissionContext, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mission, c.running
}

// SetMission marks mission as running
func (c *Context) SetMission(mission core.MissionContext) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mission = mission
	c.running = true
}

// EndMission marks the current mission as finished
func (c *Context) EndMission() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

// SetDust sets the world dust-storm flag
func (c *Context) SetDust(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dust = active
}

// Dust reports whether a dust storm is active
func (c *Context) Dust() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dust
}

// SetSelection stores the custom battle selection
func (c *Context) SetSelection(sel core.CustomSelection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = core.Some(sel)
}

// ClearSelection forgets the custom battle selection
func (c *Context) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = core.None[core.CustomSelection]()
}

// Selection returns the custom battle selection, which may be absent
func (c *Context) Selection() core.Optional[core.CustomSelection] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selection
}
