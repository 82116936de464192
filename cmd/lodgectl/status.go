package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lodgemusic/lodgectl/internal/app"
	"github.com/lodgemusic/lodgectl/internal/health"
	"github.com/lodgemusic/lodgectl/internal/services/orchestrator"
)

type statusReport struct {
	Services     []health.ServiceHealth `json:"services"`
	Online       int                    `json:"online"`
	Total        int                    `json:"total"`
	Orchestrator []orchestrator.Field   `json:"orchestrator,omitempty"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe every backend and show its health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, ctx)
		},
	}
}

func runStatus(cmd *cobra.Command, ctx *commandContext) error {
	return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
		results := clients.Health.CheckAll(c)
		online, total := health.Summary(results)
		report := statusReport{
			Services:     results,
			Online:       online,
			Total:        total,
			Orchestrator: clients.Orchestrator.Status(c).Fields(),
		}
		return ctx.emit(cmd, report, func(w io.Writer) error {
			services := newListing("Service", "Status", "Latency (ms)", "Error")
			for _, r := range results {
				services.add(r.Label, string(r.Status), latencyCell(r), r.Error)
			}
			if err := services.write(w); err != nil {
				return err
			}
			fmt.Fprintf(w, "%d/%d services online\n", online, total)

			if len(report.Orchestrator) == 0 {
				return nil
			}
			fields := newListing("Orchestrator", "Value")
			for _, f := range report.Orchestrator {
				fields.add(f.Key, f.Value)
			}
			fmt.Fprintln(w)
			return fields.write(w)
		})
	})
}

// latencyCell is the round-trip in whole milliseconds, or "-" when offline.
func latencyCell(r health.ServiceHealth) any {
	if !r.Online() {
		return ""
	}
	return int(r.Latency.Round(time.Millisecond).Milliseconds())
}
