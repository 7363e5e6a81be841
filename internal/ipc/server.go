package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"roostaboosta/internal/daemon"
	"roostaboosta/internal/logging"
	"roostaboosta/internal/store"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path. shutdown is
// invoked when a client requests daemon exit; it may be nil.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger, shutdown func()) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "ipc")

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx, shutdown: shutdown}
	if err := rpcServer.RegisterName("Roosta", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon   *daemon.Daemon
	logger   *slog.Logger
	ctx      context.Context
	shutdown func()
}

func convertAlarm(a *store.Alarm) Alarm {
	return Alarm{
		ID:      a.ID,
		Hour:    a.Hour,
		Minute:  a.Minute,
		Days:    uint8(a.Days),
		DaysTag: a.Days.String(),
		Sound:   a.Sound,
		Speed:   a.Speed,
		Enabled: a.Enabled,
	}
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	st := s.daemon.Status(s.ctx)
	*resp = StatusResponse{
		Running:         st.Running,
		PID:             st.PID,
		LockPath:        st.LockPath,
		DatabasePath:    st.DatabasePath,
		Playing:         st.Playing,
		PlaybackSession: st.PlaybackSession,
		PlaybackSound:   st.PlaybackSound,
		PlaybackStarted: st.PlaybackStarted,
		HasNextAlarm:    st.HasNextAlarm,
		NextAlarmID:     st.NextAlarmID,
		NextAlarmAt:     st.NextAlarmAt,
		Snoozed:         st.Snoozed,
		SnoozedUntil:    st.SnoozedUntil,
		WifiConnected:   st.WifiConnected,
		WifiAddress:     st.WifiAddress,
	}
	return nil
}

func (s *service) Play(req PlayRequest, resp *PlayResponse) error {
	speed := req.Speed
	if speed == 0 {
		speed = 1.0
	}
	session, err := s.daemon.Play(s.ctx, req.Sound, speed)
	if err != nil {
		return err
	}
	resp.Session = session
	return nil
}

func (s *service) StopPlayback(_ StopPlaybackRequest, resp *StopPlaybackResponse) error {
	if err := s.daemon.StopPlayback(s.ctx); err != nil {
		return err
	}
	resp.Stopped = true
	return nil
}

func (s *service) Snooze(_ SnoozeRequest, resp *SnoozeResponse) error {
	until, err := s.daemon.Snooze(s.ctx)
	if err != nil {
		return err
	}
	resp.Until = until
	return nil
}

func (s *service) Weather(_ WeatherRequest, resp *WeatherResponse) error {
	data, err := s.daemon.WeatherNow(s.ctx)
	if err != nil {
		return err
	}
	*resp = WeatherResponse{
		Humidity:     data.Humidity,
		PrecipChance: data.PrecipChance,
		Temperature:  data.Temperature,
		WindSpeed:    data.WindSpeed,
		Condition:    data.Condition,
	}
	return nil
}

func (s *service) AlarmList(_ AlarmListRequest, resp *AlarmListResponse) error {
	alarms, err := s.daemon.Alarms(s.ctx)
	if err != nil {
		return err
	}
	resp.Alarms = make([]Alarm, 0, len(alarms))
	for _, a := range alarms {
		resp.Alarms = append(resp.Alarms, convertAlarm(a))
	}
	return nil
}

func (s *service) AlarmSet(req AlarmSetRequest, resp *AlarmSetResponse) error {
	a, err := s.daemon.AddAlarm(s.ctx, store.Alarm{
		Hour:   req.Hour,
		Minute: req.Minute,
		Days:   store.DayMask(req.Days),
		Sound:  req.Sound,
		Speed:  req.Speed,
	})
	if err != nil {
		return err
	}
	resp.Alarm = convertAlarm(a)
	s.logger.Info("alarm added via ipc", logging.Int64("alarm_id", a.ID))
	return nil
}

func (s *service) AlarmEnable(req AlarmEnableRequest, _ *AlarmEnableResponse) error {
	return s.daemon.SetAlarmEnabled(s.ctx, req.ID, req.Enabled)
}

func (s *service) AlarmDelete(req AlarmDeleteRequest, resp *AlarmDeleteResponse) error {
	if req.ID <= 0 {
		return fmt.Errorf("invalid alarm id %d", req.ID)
	}
	removed, err := s.daemon.RemoveAlarm(s.ctx, req.ID)
	if err != nil {
		return err
	}
	resp.Removed = removed
	return nil
}

func (s *service) PlaybackLog(req PlaybackLogRequest, resp *PlaybackLogResponse) error {
	entries, err := s.daemon.RecentPlayback(s.ctx, req.Limit)
	if err != nil {
		return err
	}
	resp.Entries = make([]PlaybackEntry, 0, len(entries))
	for _, e := range entries {
		resp.Entries = append(resp.Entries, PlaybackEntry{
			Session:    e.Session,
			File:       e.File,
			Speed:      e.Speed,
			Trigger:    e.Trigger,
			StartedAt:  e.StartedAt,
			FinishedAt: e.FinishedAt,
			Error:      e.Error,
		})
	}
	return nil
}

func (s *service) Shutdown(_ ShutdownRequest, resp *ShutdownResponse) error {
	s.logger.Info("shutdown requested via ipc")
	resp.Stopping = true
	if s.shutdown != nil {
		// Run async so the RPC reply reaches the client first.
		go s.shutdown()
	}
	return nil
}
