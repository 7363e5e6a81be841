package main

import (
	"io"
	"strings"
	"testing"
	"time"

	"roostaboosta/internal/ipc"
)

func TestRenderStatusStopped(t *testing.T) {
	var buf strings.Builder
	renderStatus(&buf, &ipc.StatusResponse{DatabasePath: "/tmp/roosta.db"}, false)
	out := buf.String()
	for _, want := range []string{
		"daemon:    stopped",
		"playback:  idle",
		"alarm:     none scheduled",
		"wifi:      down",
		"database:  /tmp/roosta.db",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "snooze:") {
		t.Fatalf("did not expect snooze line when not snoozed:\n%s", out)
	}
}

func TestRenderStatusRunningWithColor(t *testing.T) {
	started := time.Date(2026, time.March, 5, 6, 30, 0, 0, time.UTC)
	st := &ipc.StatusResponse{
		Running:         true,
		PID:             4242,
		Playing:         true,
		PlaybackSound:   "rooster.pcm",
		PlaybackSession: "abc-123",
		PlaybackStarted: started,
		HasNextAlarm:    true,
		NextAlarmID:     7,
		NextAlarmAt:     time.Date(2026, time.March, 6, 6, 30, 0, 0, time.UTC),
		Snoozed:         true,
		SnoozedUntil:    started.Add(9 * time.Minute),
		WifiConnected:   true,
		WifiAddress:     "192.168.1.50",
		DatabasePath:    "/tmp/roosta.db",
	}

	var buf strings.Builder
	renderStatus(&buf, st, true)
	out := buf.String()
	if !strings.Contains(out, ansiGreen+"running"+ansiReset) {
		t.Fatalf("expected green running marker:\n%s", out)
	}
	if !strings.Contains(out, "(pid 4242)") {
		t.Fatalf("expected pid in daemon line:\n%s", out)
	}
	if !strings.Contains(out, "session abc-123") {
		t.Fatalf("expected playback session:\n%s", out)
	}
	if !strings.Contains(out, "alarm:     #7 at Fri Mar 6 06:30") {
		t.Fatalf("expected next alarm line:\n%s", out)
	}
	if !strings.Contains(out, ansiYellow+"until 6:39AM"+ansiReset) {
		t.Fatalf("expected snooze line:\n%s", out)
	}
	if !strings.Contains(out, "(192.168.1.50)") {
		t.Fatalf("expected wifi address:\n%s", out)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := renderTable(
		[]string{"ID", "Sound"},
		[][]string{{"1", "rooster.pcm"}, {"12", "gong.pcm"}},
		[]columnAlignment{alignRight, alignLeft},
	)
	if !strings.Contains(out, "rooster.pcm") || !strings.Contains(out, "gong.pcm") {
		t.Fatalf("expected rows in table:\n%s", out)
	}
	if !strings.Contains(out, " 1 ") || !strings.Contains(out, " 12 ") {
		t.Fatalf("expected right-aligned ids:\n%s", out)
	}
}
