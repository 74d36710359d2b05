package bridge

import (
	"log/slog"
	"sync"

	"github.com/OCAP2/weather/internal/presentation"
)

// Audio hands out sound instances whose playback runs on the simulation side.
// Event ids are assigned on first lookup; instance handles are unique per process.
type Audio struct {
	out sender

	mu      sync.Mutex
	events  map[string]int
	names   map[int]string
	handles int
}

func NewAudio(emit Emitter, log *slog.Logger) *Audio {
	return &Audio{
		out:    newSender(emit, log),
		events: make(map[string]int),
		names:  make(map[int]string),
	}
}

func (a *Audio) EventID(name string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id, ok := a.events[name]; ok {
		return id
	}
	id := len(a.events) + 1
	a.events[name] = id
	a.names[id] = name
	return id
}

// Create returns a stopped instance. Unknown event ids yield nil.
func (a *Audio) Create(eventID int) presentation.Sound {
	a.mu.Lock()
	defer a.mu.Unlock()
	name, ok := a.names[eventID]
	if !ok {
		return nil
	}
	a.handles++
	return &Sound{out: a.out, handle: a.handles, name: name}
}

// Sound is one ambient sound instance.
type Sound struct {
	out    sender
	handle int
	name   string

	mu      sync.Mutex
	playing bool
}

func (s *Sound) Play() {
	s.mu.Lock()
	if s.playing {
		s.mu.Unlock()
		return
	}
	s.playing = true
	s.mu.Unlock()
	s.out.send(CmdSoundPlay, s.handle, s.name)
}

func (s *Sound) Stop() {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return
	}
	s.playing = false
	s.mu.Unlock()
	s.out.send(CmdSoundStop, s.handle)
}

// Playing reports whether the instance is currently playing.
func (s *Sound) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}
