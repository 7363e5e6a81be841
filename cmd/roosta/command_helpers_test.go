package main

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"
	"time"

	"roostaboosta/internal/ipc"
)

func TestPlaybackOutcome(t *testing.T) {
	started := time.Date(2026, time.March, 5, 6, 30, 0, 0, time.UTC)
	cases := []struct {
		name  string
		entry ipc.PlaybackEntry
		want  string
	}{
		{
			name:  "in flight",
			entry: ipc.PlaybackEntry{StartedAt: started},
			want:  "playing",
		},
		{
			name:  "finished",
			entry: ipc.PlaybackEntry{StartedAt: started, FinishedAt: started.Add(42 * time.Second)},
			want:  "done 42s",
		},
		{
			name:  "failed",
			entry: ipc.PlaybackEntry{StartedAt: started, Error: "no such sound"},
			want:  "error: no such sound",
		},
	}
	for _, tc := range cases {
		if got := playbackOutcome(tc.entry); got != tc.want {
			t.Fatalf("%s: playbackOutcome = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "(unset)"},
		{"abc", "****"},
		{"abcd", "****"},
		{"abcdef12", "abcd****"},
	}
	for _, tc := range cases {
		if got := maskSecret(tc.in); got != tc.want {
			t.Fatalf("maskSecret(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWrapDialErrorHints(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"missing socket", fmt.Errorf("dial unix: %w", syscall.ENOENT), "start roostad first"},
		{"refused", fmt.Errorf("dial unix: %w", syscall.ECONNREFUSED), "verify roostad is running"},
		{"other", errors.New("boom"), "connect to daemon: boom"},
	}
	for _, tc := range cases {
		got := wrapDialError(tc.err, "/tmp/roostad.sock")
		if got == nil || !strings.Contains(got.Error(), tc.want) {
			t.Fatalf("%s: wrapDialError = %v, want substring %q", tc.name, got, tc.want)
		}
	}
}
