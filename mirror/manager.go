// Package mirror fans channel updates out to the terminal and paints the pads
// onto a connected Launchpad.
package mirror

import (
	"context"
	"sync"
	"time"

	"go-surface/debug"
	"go-surface/midi"
	"go-surface/snapshot"
	"go-surface/statesync"
	"go-surface/theme"
)

// GridSize is the width and height of the Launchpad pad grid
const GridSize = 8

// DefaultFPS is the LED refresh rate used when none is configured
const DefaultFPS = 30

// Source is where the manager reads state from; *statesync.Channel is one
type Source interface {
	Updates() <-chan statesync.Update
	Close() error
}

// LEDState is the color of one hardware pad
type LEDState struct {
	Row, Col int
	Color    [3]uint8
}

// Manager forwards updates to the TUI and mirrors pads to the hardware
type Manager struct {
	mu         sync.RWMutex
	source     Source
	controller midi.Controller
	ramp       *theme.Palette
	latest     statesync.Update

	// LED rendering at fixed FPS
	fps      int
	ledDirty bool
	prevLEDs map[[2]int]LEDState // for diffing

	// Notify TUI of updates
	UpdateChan chan statesync.Update
}

// NewManager creates a manager painting with th's LED ramp
func NewManager(th theme.Theme, fps int) *Manager {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Manager{
		ramp:       th.LEDRamp(),
		fps:        fps,
		prevLEDs:   make(map[[2]int]LEDState),
		UpdateChan: make(chan statesync.Update, 16),
	}
}

// Attach sets the source Run reads from
func (m *Manager) Attach(src Source) {
	m.mu.Lock()
	m.source = src
	m.mu.Unlock()
}

// Disconnect closes the attached source
func (m *Manager) Disconnect() error {
	m.mu.RLock()
	src := m.source
	m.mu.RUnlock()
	if src == nil {
		return statesync.ErrNotConnected
	}
	return src.Close()
}

// SetTheme swaps the LED ramp, e.g. after a theme adjustment
func (m *Manager) SetTheme(th theme.Theme) {
	m.mu.Lock()
	m.ramp = th.LEDRamp()
	m.prevLEDs = make(map[[2]int]LEDState)
	m.ledDirty = true
	m.mu.Unlock()
}

// SetController sets the controller for LED output (nil to detach)
func (m *Manager) SetController(c midi.Controller) {
	debug.Log("mirror", "SetController, resetting diff state")
	m.mu.Lock()
	m.controller = c
	m.prevLEDs = make(map[[2]int]LEDState)
	m.ledDirty = c != nil
	m.mu.Unlock()
}

// WatchDevices follows hot-plug events, painting on the first Launchpad found
// (blocking - run in goroutine)
func (m *Manager) WatchDevices(ctx context.Context, events <-chan midi.DeviceEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			m.handleDevice(ev)
		}
	}
}

func (m *Manager) handleDevice(ev midi.DeviceEvent) {
	m.mu.RLock()
	current := m.controller
	m.mu.RUnlock()

	switch ev.Type {
	case midi.DeviceConnected:
		if current == nil {
			m.SetController(ev.Controller)
		}
	case midi.DeviceDisconnected:
		if current != nil && current.ID() == ev.ID {
			m.SetController(nil)
		}
	}
}

// Run consumes the source until its updates end (blocking - run in goroutine).
// UpdateChan is closed when it returns.
func (m *Manager) Run(ctx context.Context) {
	defer close(m.UpdateChan)

	m.mu.RLock()
	src := m.source
	m.mu.RUnlock()
	if src == nil {
		debug.Warn("mirror", "run without a source")
		return
	}

	stop := make(chan struct{})
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		m.ledLoop(ctx, stop)
	}()

	updates := src.Updates()
	for running := true; running; {
		select {
		case <-ctx.Done():
			running = false
		case u, ok := <-updates:
			if !ok {
				running = false
				break
			}
			m.handle(u)
		}
	}

	close(stop)
	<-loopDone
	// The last update has no snapshot; leave the grid dark
	m.flushLEDs()
}

// handle records u and passes it on to the TUI
func (m *Manager) handle(u statesync.Update) {
	m.mu.Lock()
	m.latest = u
	m.ledDirty = true
	m.mu.Unlock()

	// Latest wins: drop the oldest pending update if the TUI is behind
	for {
		select {
		case m.UpdateChan <- u:
			return
		default:
		}
		select {
		case <-m.UpdateChan:
		default:
		}
	}
}

// ledLoop runs at fixed FPS and flushes LED updates
func (m *Manager) ledLoop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(m.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			dirty := m.ledDirty
			m.ledDirty = false
			m.mu.Unlock()

			if dirty {
				m.flushLEDs()
			}
		}
	}
}

// flushLEDs sends only changed LEDs to the controller (diffing + batching)
func (m *Manager) flushLEDs() {
	m.mu.Lock()
	c := m.controller
	if c == nil {
		m.mu.Unlock()
		return
	}

	newLEDs := RenderLEDs(m.latest.Snapshot, m.ramp)
	newMap := make(map[[2]int]LEDState, len(newLEDs))

	var updates []midi.LEDUpdate

	for _, led := range newLEDs {
		key := [2]int{led.Row, led.Col}
		newMap[key] = led

		// Only send if changed
		if prev, ok := m.prevLEDs[key]; !ok || prev != led {
			updates = append(updates, midi.LEDUpdate{
				Row:   led.Row,
				Col:   led.Col,
				Color: led.Color,
			})
		}
	}

	// Clear LEDs that are no longer present
	for key := range m.prevLEDs {
		if _, ok := newMap[key]; !ok {
			updates = append(updates, midi.LEDUpdate{
				Row: key[0],
				Col: key[1],
			})
		}
	}
	prevCount := len(m.prevLEDs)
	m.prevLEDs = newMap
	m.mu.Unlock()

	if len(updates) == 0 {
		return
	}
	debug.Log("mirror", "flushLEDs: batch=%d prev=%d", len(updates), prevCount)
	if err := c.SetLEDBatch(updates); err != nil {
		debug.Warn("mirror", "led batch: %v", err)
	}
}

// LEDGrid returns the current LED colors indexed [row][col], row 0 at the
// bottom, for the on-screen preview
func (m *Manager) LEDGrid() [GridSize][GridSize][3]uint8 {
	m.mu.RLock()
	leds := RenderLEDs(m.latest.Snapshot, m.ramp)
	m.mu.RUnlock()

	var grid [GridSize][GridSize][3]uint8
	for _, led := range leds {
		grid[led.Row][led.Col] = led.Color
	}
	return grid
}

// RenderLEDs maps pads onto the grid. Pad i lands on row 7-i/8, column i%8,
// so the first pad is top-left as on screen. A pad's color is its first
// binding value on the ramp; pads without a binding stay off. Pads past the
// 64th are not shown.
func RenderLEDs(s *snapshot.Snapshot, ramp *theme.Palette) []LEDState {
	if s == nil {
		return nil
	}

	var leds []LEDState
	for i, p := range s.Pads {
		if i >= GridSize*GridSize {
			break
		}
		if len(p.Bindings) == 0 {
			continue
		}
		leds = append(leds, LEDState{
			Row:   GridSize - 1 - i/GridSize,
			Col:   i % GridSize,
			Color: ramp.Lookup(clamp01(p.Bindings[0].Value)),
		})
	}
	return leds
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
