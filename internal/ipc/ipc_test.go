package ipc_test

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"roostaboosta/internal/audio"
	"roostaboosta/internal/config"
	"roostaboosta/internal/daemon"
	"roostaboosta/internal/ipc"
	"roostaboosta/internal/logging"
	"roostaboosta/internal/store"
)

func startServer(t *testing.T) (*ipc.Client, *daemon.Daemon, chan struct{}) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Paths.DataDir = dir
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.SoundDir = filepath.Join(dir, "sounds")
	cfg.Paths.SocketPath = filepath.Join(dir, "roostad.sock")

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	sounds := fstest.MapFS{"rooster.pcm": {Data: make([]byte, 1024)}}
	player, err := audio.NewPlayer(audio.NewSimDevice(0, nil, false), sounds, logging.NewNop(), audio.Options{BankSize: 256})
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	d, err := daemon.New(&cfg, st, player, nil, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := d.Start(ctx); err != nil {
		t.Fatalf("start daemon: %v", err)
	}

	shutdown := make(chan struct{}, 1)
	srv, err := ipc.NewServer(ctx, cfg.Paths.SocketPath, d, logging.NewNop(), func() {
		shutdown <- struct{}{}
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv.Serve()
	t.Cleanup(func() {
		srv.Close()
		_ = d.Close()
		cancel()
	})

	client, err := ipc.Dial(cfg.Paths.SocketPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, d, shutdown
}

func TestStatusRoundTrip(t *testing.T) {
	client, _, _ := startServer(t)

	st, err := client.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !st.Running {
		t.Fatal("expected running daemon")
	}
	if st.PID == 0 || st.LockPath == "" || st.DatabasePath == "" {
		t.Fatalf("incomplete status: %+v", st)
	}
	if st.Playing || st.HasNextAlarm || st.Snoozed || st.WifiConnected {
		t.Fatalf("unexpected activity in fresh daemon: %+v", st)
	}
}

func TestAlarmLifecycleOverIPC(t *testing.T) {
	client, _, _ := startServer(t)

	set, err := client.AlarmSet(ipc.AlarmSetRequest{Hour: 6, Minute: 45})
	if err != nil {
		t.Fatalf("AlarmSet failed: %v", err)
	}
	if set.Alarm.ID == 0 || set.Alarm.Sound == "" || !set.Alarm.Enabled {
		t.Fatalf("unexpected alarm: %+v", set.Alarm)
	}
	if set.Alarm.DaysTag == "" {
		t.Fatal("expected days tag")
	}

	list, err := client.AlarmList()
	if err != nil {
		t.Fatalf("AlarmList failed: %v", err)
	}
	if len(list.Alarms) != 1 || list.Alarms[0].ID != set.Alarm.ID {
		t.Fatalf("unexpected list: %+v", list.Alarms)
	}

	if err := client.AlarmEnable(set.Alarm.ID, false); err != nil {
		t.Fatalf("AlarmEnable failed: %v", err)
	}
	list, err = client.AlarmList()
	if err != nil || list.Alarms[0].Enabled {
		t.Fatalf("alarm should be disabled: %v %+v", err, list.Alarms)
	}

	st, err := client.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.HasNextAlarm {
		t.Fatal("disabled alarm must not schedule a firing")
	}

	del, err := client.AlarmDelete(set.Alarm.ID)
	if err != nil || !del.Removed {
		t.Fatalf("AlarmDelete: %v removed=%v", err, del.Removed)
	}
	if _, err := client.AlarmDelete(0); err == nil {
		t.Fatal("expected error for id 0")
	}

	// Invalid hour is rejected by validation before it reaches sqlite.
	if _, err := client.AlarmSet(ipc.AlarmSetRequest{Hour: 24}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestPlayOverIPC(t *testing.T) {
	client, d, _ := startServer(t)

	play, err := client.Play("rooster.pcm", 0)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if play.Session == "" {
		t.Fatal("expected session id")
	}

	if _, err := client.StopPlayback(); err != nil {
		t.Fatalf("StopPlayback failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && d.Status(context.Background()).Playing {
		time.Sleep(5 * time.Millisecond)
	}

	log, err := client.PlaybackLog(5)
	if err != nil {
		t.Fatalf("PlaybackLog failed: %v", err)
	}
	if len(log.Entries) != 1 || log.Entries[0].Session != play.Session {
		t.Fatalf("unexpected log: %+v", log.Entries)
	}

	if _, err := client.Weather(); err == nil {
		t.Fatal("expected weather error without service")
	}
}

func TestSnoozeOverIPC(t *testing.T) {
	client, _, _ := startServer(t)

	resp, err := client.Snooze()
	if err != nil {
		t.Fatalf("Snooze failed: %v", err)
	}
	if !resp.Until.After(time.Now()) {
		t.Fatalf("snooze window in the past: %v", resp.Until)
	}

	st, err := client.Status()
	if err != nil || !st.Snoozed {
		t.Fatalf("expected snoozed status: %v %+v", err, st)
	}
}

func TestShutdownInvokesCallback(t *testing.T) {
	client, _, shutdown := startServer(t)

	resp, err := client.Shutdown()
	if err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !resp.Stopping {
		t.Fatal("expected stopping ack")
	}
	select {
	case <-shutdown:
	case <-time.After(time.Second):
		t.Fatal("shutdown callback never ran")
	}
}
