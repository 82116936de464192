package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lodgemusic/lodgectl/internal/app"
	"github.com/lodgemusic/lodgectl/internal/services/orchestrator"
)

type targetFlags struct {
	room   string
	device string
}

func (t *targetFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&t.room, "room", "r", "", "Room to play in")
	cmd.Flags().StringVarP(&t.device, "device", "d", "", "Single device to play on")
	cmd.MarkFlagsMutuallyExclusive("room", "device")
}

func (t *targetFlags) target() orchestrator.Target {
	return orchestrator.Target{Room: strings.TrimSpace(t.room), Device: strings.TrimSpace(t.device)}
}

type playResult struct {
	Source   string          `json:"source"`
	Ref      string          `json:"ref"`
	Target   string          `json:"target"`
	Response json.RawMessage `json:"response,omitempty"`
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start playback through the orchestrator",
	}
	cmd.AddCommand(newPlaySourceCommand(ctx, "spotify <uri>", "Play a Spotify URI", func(t orchestrator.Target, ref string, shuffle bool) orchestrator.PlayCommand {
		return orchestrator.SpotifyCommand(t, ref, shuffle)
	}))
	cmd.AddCommand(newPlaySourceCommand(ctx, "ytmusic <video-id>", "Play a YouTube Music video", func(t orchestrator.Target, ref string, _ bool) orchestrator.PlayCommand {
		return orchestrator.YouTubeMusicCommand(t, ref)
	}))
	cmd.AddCommand(newPlaySourceCommand(ctx, "calm <channel>", "Play a Calm Radio channel", func(t orchestrator.Target, ref string, _ bool) orchestrator.PlayCommand {
		return orchestrator.CalmCommand(t, ref)
	}))
	cmd.AddCommand(newPlayPresetCommand(ctx))
	return cmd
}

func newPlaySourceCommand(ctx *commandContext, use, short string, build func(orchestrator.Target, string, bool) orchestrator.PlayCommand) *cobra.Command {
	var target targetFlags
	var shuffle bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playCmd := build(target.target(), strings.TrimSpace(args[0]), shuffle)
			return runPlay(cmd, ctx, playCmd, args[0])
		},
	}
	target.bind(cmd)
	if strings.HasPrefix(use, "spotify") {
		cmd.Flags().BoolVar(&shuffle, "shuffle", false, "Shuffle the context")
	}
	return cmd
}

func newPlayPresetCommand(ctx *commandContext) *cobra.Command {
	var target targetFlags
	cmd := &cobra.Command{
		Use:   "preset <label>",
		Short: "Play a quick play preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, ok := findPreset(args[0])
			if !ok {
				return fmt.Errorf("unknown preset %q (available: %s)", args[0], strings.Join(presetLabels(), ", "))
			}
			return runPlay(cmd, ctx, preset.Command(target.target()), preset.Label)
		},
	}
	target.bind(cmd)
	return cmd
}

func runPlay(cmd *cobra.Command, ctx *commandContext, playCmd orchestrator.PlayCommand, ref string) error {
	return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
		resp, err := clients.Orchestrator.Play(c, playCmd)
		if err != nil {
			return err
		}
		target := playCmd.Target().String()
		return ctx.report(cmd, playResult{Source: playCmd.Source, Ref: ref, Target: target, Response: resp},
			"Playing %s on %s", ref, target)
	})
}

func findPreset(label string) (orchestrator.Preset, bool) {
	label = strings.TrimSpace(label)
	for _, p := range orchestrator.Presets() {
		if strings.EqualFold(p.Label, label) {
			return p, true
		}
	}
	return orchestrator.Preset{}, false
}

func presetLabels() []string {
	presets := orchestrator.Presets()
	out := make([]string, 0, len(presets))
	for _, p := range presets {
		out = append(out, p.Label)
	}
	return out
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	var target targetFlags
	var source string
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop playback in a room or on a device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				t := target.target()
				if err := clients.Orchestrator.Stop(c, t, source); err != nil {
					return err
				}
				src := strings.TrimSpace(source)
				if src == "" {
					src = orchestrator.SourceAll
				}
				return ctx.report(cmd, map[string]string{"target": t.String(), "source": src},
					"Stopped %s on %s", src, t)
			})
		},
	}
	target.bind(cmd)
	cmd.Flags().StringVar(&source, "source", "", "Source to stop (default all)")
	return cmd
}

func newAlexaCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "alexa <device> <query...>",
		Short: "Ask an Echo device to play from Amazon Music",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			device := args[0]
			query := strings.Join(args[1:], " ")
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				resp, err := clients.Orchestrator.AlexaCommand(c, device, query)
				if err != nil {
					return err
				}
				phrase := orchestrator.AlexaPhrase(strings.TrimSpace(query))
				return ctx.report(cmd, map[string]any{"device": device, "command": phrase, "response": resp},
					"Sent %q to %s", phrase, device)
			})
		},
	}
}
