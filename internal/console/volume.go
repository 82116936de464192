package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/lodgemusic/lodgectl/internal/services/volume"
	"github.com/lodgemusic/lodgectl/internal/state"
)

// VolumeSetter is the volume service surface.
type VolumeSetter interface {
	Get(ctx context.Context, id string) *volume.Level
	Up(ctx context.Context, id string, step int) error
	Down(ctx context.Context, id string, step int) error
	Mute(ctx context.Context, id string) error
	Unmute(ctx context.Context, id string) error
}

var _ VolumeSetter = (*volume.Client)(nil)

// VolumeAction names a relative volume change.
type VolumeAction string

const (
	VolumeUp     VolumeAction = "up"
	VolumeDown   VolumeAction = "down"
	VolumeMute   VolumeAction = "mute"
	VolumeUnmute VolumeAction = "unmute"
)

var errLevelUnavailable = errors.New("volume unavailable")

// VolumeControl adjusts the device chosen in a DevicePicker and journals the
// outcome to the owning screen. Current holds the last level read back.
type VolumeControl struct {
	Devices *DevicePicker
	Journal *Journal
	Current *state.Latest[volume.Level]
	setter  VolumeSetter
}

// NewVolumeControl binds setter to a screen's picker and journal.
func NewVolumeControl(devices *DevicePicker, journal *Journal, setter VolumeSetter) *VolumeControl {
	return &VolumeControl{
		Devices: devices,
		Journal: journal,
		Current: state.NewLatest[volume.Level](nil),
		setter:  setter,
	}
}

// Apply sends action to the selected device.
func (v *VolumeControl) Apply(ctx context.Context, action VolumeAction) error {
	device := v.Devices.Selected()
	if device == "" {
		v.Journal.Err("Select a device first")
		return ErrNoDevice
	}

	var err error
	switch action {
	case VolumeUp:
		err = v.setter.Up(ctx, device, volume.DefaultStep)
	case VolumeDown:
		err = v.setter.Down(ctx, device, volume.DefaultStep)
	case VolumeMute:
		err = v.setter.Mute(ctx, device)
	case VolumeUnmute:
		err = v.setter.Unmute(ctx, device)
	default:
		err = fmt.Errorf("unknown volume action %q", action)
	}
	if err != nil {
		v.Journal.Err("Volume %s failed: %v", action, err)
		return err
	}
	v.Journal.OK("Volume %s: %s", action, v.Devices.SelectedName())
	return nil
}

// RefreshLevel reads the selected device's volume into Current. A failed read
// keeps the previous level and counts toward staleness; a level belonging to
// another device is dropped first.
func (v *VolumeControl) RefreshLevel(ctx context.Context) {
	device := v.Devices.Selected()
	if device == "" {
		v.Current.Reset()
		return
	}
	if snap := v.Current.Snapshot(); snap.Has && snap.Value.DeviceID != device {
		v.Current.Reset()
	}
	level := v.setter.Get(ctx, device)
	if level == nil {
		v.Current.Fail(errLevelUnavailable)
		return
	}
	v.Current.Set(*level)
}

// LevelText renders Current for display: the level, "muted", or
// "unavailable" once reads keep failing.
func (v *VolumeControl) LevelText() string {
	snap := v.Current.Snapshot()
	switch {
	case snap.Stale(), !snap.Has && snap.LastError != nil:
		return "unavailable"
	case !snap.Has || snap.Value.DeviceID != v.Devices.Selected():
		return ""
	case snap.Value.Muted:
		return fmt.Sprintf("%d%% (muted)", snap.Value.Value)
	}
	return fmt.Sprintf("%d%%", snap.Value.Value)
}
