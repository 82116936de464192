package console

import (
	"context"
	"strings"

	"github.com/lodgemusic/lodgectl/internal/services/orchestrator"
	"github.com/lodgemusic/lodgectl/internal/topology"
)

// QuickCommand is a preset Amazon Music request.
type QuickCommand struct {
	Label string
	Query string
}

// AlexaQuickCommands are the one-press Amazon Music requests.
var AlexaQuickCommands = []QuickCommand{
	{Label: "90s Rock", Query: "90s rock"},
	{Label: "Jazz", Query: "jazz music"},
	{Label: "Classical", Query: "classical music"},
	{Label: "Chill Vibes", Query: "chill music"},
}

// AlexaScreen sends Amazon Music voice commands to Echo devices.
type AlexaScreen struct {
	Devices *DevicePicker
	Journal *Journal
	sender  AlexaSender
}

// NewAlexaScreen builds the screen.
func NewAlexaScreen(fetcher topology.Fetcher, sender AlexaSender) *AlexaScreen {
	return &AlexaScreen{
		Devices: NewDevicePicker(fetcher, topology.Topology.AlexaDevices),
		Journal: NewJournal(0),
		sender:  sender,
	}
}

// Load fetches the device list.
func (a *AlexaScreen) Load(ctx context.Context) error {
	return a.Devices.Load(ctx, a.Journal)
}

// Send asks the selected device to play query.
func (a *AlexaScreen) Send(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	device := a.Devices.Selected()
	if query == "" || device == "" {
		a.Journal.Err("Enter search query and select device")
		if device == "" {
			return ErrNoDevice
		}
		return ErrNoQuery
	}
	a.Journal.Info("Sending: %q to %s", orchestrator.AlexaPhrase(query), a.Devices.SelectedName())
	if _, err := a.sender.AlexaCommand(ctx, device, query); err != nil {
		a.Journal.Err("Error: %v", err)
		return err
	}
	a.Journal.OK("Command sent successfully!")
	return nil
}
