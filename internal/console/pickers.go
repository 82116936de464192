package console

import (
	"context"
	"sync"

	"github.com/lodgemusic/lodgectl/internal/topology"
)

// RoomPicker holds one screen's room list and selection.
type RoomPicker struct {
	mu       sync.Mutex
	fetcher  topology.Fetcher
	rooms    []topology.Room
	selected string
}

// NewRoomPicker returns a picker that loads rooms from fetcher.
func NewRoomPicker(fetcher topology.Fetcher) *RoomPicker {
	return &RoomPicker{fetcher: fetcher}
}

// Load refreshes the room list. A failed fetch clears it.
func (p *RoomPicker) Load(ctx context.Context, journal *Journal) error {
	topo, err := p.fetcher.Fetch(ctx)

	p.mu.Lock()
	p.rooms = topo.Rooms
	if _, ok := topo.Room(p.selected); !ok {
		p.selected = ""
	}
	p.mu.Unlock()

	if err != nil {
		journal.Err("Devices API error: %v", err)
		return err
	}
	journal.OK("Loaded %d rooms", len(topo.Rooms))
	return nil
}

// Rooms returns the loaded rooms in backend order.
func (p *RoomPicker) Rooms() []topology.Room {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]topology.Room(nil), p.rooms...)
}

// Select chooses a room by name. Unknown names clear the selection.
func (p *RoomPicker) Select(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.rooms {
		if r.Name == name {
			p.selected = name
			return true
		}
	}
	p.selected = ""
	return false
}

// Cycle moves the selection by delta, wrapping around.
func (p *RoomPicker) Cycle(delta int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.rooms))
	for i, r := range p.rooms {
		names[i] = r.Name
	}
	p.selected = cycle(names, p.selected, delta)
	return p.selected
}

// Selected returns the chosen room or "".
func (p *RoomPicker) Selected() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// DevicePicker holds one screen's filtered device list and selection.
type DevicePicker struct {
	mu       sync.Mutex
	fetcher  topology.Fetcher
	filter   func(topology.Topology) []topology.Device
	devices  []topology.Device
	selected string
}

// NewDevicePicker returns a picker listing the devices filter selects.
func NewDevicePicker(fetcher topology.Fetcher, filter func(topology.Topology) []topology.Device) *DevicePicker {
	return &DevicePicker{fetcher: fetcher, filter: filter}
}

// Load refreshes the device list. A failed fetch clears it.
func (p *DevicePicker) Load(ctx context.Context, journal *Journal) error {
	topo, err := p.fetcher.Fetch(ctx)
	devices := p.filter(topo)

	p.mu.Lock()
	p.devices = devices
	if !containsDevice(devices, p.selected) {
		p.selected = ""
	}
	p.mu.Unlock()

	if err != nil {
		journal.Err("Devices API error: %v", err)
		return err
	}
	journal.OK("Found %d players", len(devices))
	return nil
}

// Devices returns the filtered devices in backend order.
func (p *DevicePicker) Devices() []topology.Device {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]topology.Device(nil), p.devices...)
}

// Select chooses a device by ID.
func (p *DevicePicker) Select(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if containsDevice(p.devices, id) {
		p.selected = id
		return true
	}
	p.selected = ""
	return false
}

// Cycle moves the selection by delta, wrapping around.
func (p *DevicePicker) Cycle(delta int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, len(p.devices))
	for i, d := range p.devices {
		ids[i] = d.ID
	}
	p.selected = cycle(ids, p.selected, delta)
	return p.selected
}

// Selected returns the chosen device ID or "".
func (p *DevicePicker) Selected() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// SelectedName returns the display name of the chosen device.
func (p *DevicePicker) SelectedName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, d := range p.devices {
		if d.ID == p.selected {
			return d.DisplayName()
		}
	}
	return p.selected
}

func containsDevice(devices []topology.Device, id string) bool {
	if id == "" {
		return false
	}
	for _, d := range devices {
		if d.ID == id {
			return true
		}
	}
	return false
}

func cycle(values []string, current string, delta int) string {
	if len(values) == 0 {
		return ""
	}
	idx := -1
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta < 0 {
			return values[len(values)-1]
		}
		return values[0]
	}
	n := len(values)
	return values[((idx+delta)%n+n)%n]
}
