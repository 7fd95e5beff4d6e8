package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theoremus-urban-solutions/assettrack/asset"
	"github.com/theoremus-urban-solutions/assettrack/checkin"
	"github.com/theoremus-urban-solutions/assettrack/connection"
	"github.com/theoremus-urban-solutions/assettrack/formatter"
	"github.com/theoremus-urban-solutions/assettrack/tracking"
	"github.com/theoremus-urban-solutions/assettrack/tui"
)

var errConnectionClosed = errors.New("connection closed")

// runWatch prints every snapshot until ctx is cancelled or the connection ends
func runWatch(ctx context.Context, mgr *connection.Manager, client *tracking.Client, format string, out io.Writer) error {
	if _, err := formatter.Build(nil, format); err != nil {
		return err
	}
	updates := make(chan struct{}, 1)
	unsubscribe := client.Subscribe(func(e tracking.Event) {
		if e.Kind != tracking.EventSnapshot {
			return
		}
		select {
		case updates <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	mgr.Start(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-mgr.Done():
			return errConnectionClosed
		case <-updates:
			buf, err := formatter.Build(client.Snapshot(), format)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(buf))
		}
	}
}

// runCheckin waits for the connection to open, submits one candidate and reports the outcome
func runCheckin(ctx context.Context, mgr *connection.Manager, client *tracking.Client, o *options, out io.Writer) error {
	opened := make(chan struct{})
	mgr.OnOpen(func() { close(opened) })
	mgr.Start(ctx)

	timer := time.NewTimer(o.timeout)
	defer timer.Stop()
	select {
	case <-opened:
	case <-mgr.Done():
		return errConnectionClosed
	case <-timer.C:
		return fmt.Errorf("connection not open after %s", o.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	client.SetCandidate(asset.Candidate{ID: o.id, Lat: o.lat, Lng: o.lng})
	outcome := client.Submit()
	fmt.Fprintln(out, outcome)
	if outcome != checkin.OutcomeSent {
		return fmt.Errorf("check-in %s", outcome)
	}
	return nil
}

func runTUI(ctx context.Context, mgr *connection.Manager, client *tracking.Client) error {
	program := tea.NewProgram(
		tui.NewModel(client),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	stop := tui.Bridge(client, program)
	defer stop()

	mgr.Start(ctx)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
