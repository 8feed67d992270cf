package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-surface/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// Port is an output port as seen by the scanner
type Port struct {
	Name string
	Out  drivers.Out
}

// DeviceManager handles hot-plug detection of Launchpads
type DeviceManager struct {
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration

	match func(name string) bool
	ports func() []Port
	open  func(p Port) (Controller, error)
}

// NewDeviceManager creates a device manager that opens any Launchpad plus
// the explicitly named ports
func NewDeviceManager(portNames ...string) *DeviceManager {
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		match:       Matcher(portNames...),
		ports:       listOutPorts,
		open: func(p Port) (Controller, error) {
			return NewLaunchpadController(p.Name, p.Out)
		},
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

// listOutPorts gets the current MIDI outputs with a timeout (CoreMIDI can hang).
// Binaries register the driver with a blank import of rtmididrv.
func listOutPorts() []Port {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		ports := make([]Port, len(outs))
		for i, o := range outs {
			ports[i] = Port{Name: o.String(), Out: o}
		}
		return ports
	case <-time.After(3 * time.Second):
		debug.Warn("midi", "port scan timed out")
		return nil
	}
}

// PortNames lists output port names, for the ports command
func PortNames() []string {
	var names []string
	for _, p := range listOutPorts() {
		names = append(names, p.Name)
	}
	return names
}

func (dm *DeviceManager) scan() {
	ports := dm.ports()
	if ports == nil {
		// Scan failed - keep what we have
		return
	}

	// Build map of what we see now
	seenIDs := make(map[string]bool)

	for _, p := range ports {
		if !dm.match(p.Name) {
			continue
		}
		id := p.Name
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		c, err := dm.open(p)
		if err != nil {
			debug.Warn("midi", "open %s: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = c
		dm.mu.Unlock()

		debug.Log("midi", "connected %s", id)
		dm.events <- DeviceEvent{
			Type:       DeviceConnected,
			Controller: c,
			ID:         id,
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		debug.Log("midi", "disconnected %s", id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// Matcher accepts Launchpad MIDI ports and any of the given names
func Matcher(portNames ...string) func(name string) bool {
	named := make(map[string]bool, len(portNames))
	for _, n := range portNames {
		named[strings.ToLower(n)] = true
	}
	return func(name string) bool {
		name = strings.ToLower(name)
		return named[name] || isLaunchpad(name)
	}
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}
