package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Roosta.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Play starts a playback session.
func (c *Client) Play(sound string, speed float64) (*PlayResponse, error) {
	var resp PlayResponse
	if err := c.client.Call("Roosta.Play", PlayRequest{Sound: sound, Speed: speed}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StopPlayback cancels the active playback session.
func (c *Client) StopPlayback() (*StopPlaybackResponse, error) {
	var resp StopPlaybackResponse
	if err := c.client.Call("Roosta.StopPlayback", StopPlaybackRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Snooze silences a ringing alarm.
func (c *Client) Snooze() (*SnoozeResponse, error) {
	var resp SnoozeResponse
	if err := c.client.Call("Roosta.Snooze", SnoozeRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Weather fetches the current observation.
func (c *Client) Weather() (*WeatherResponse, error) {
	var resp WeatherResponse
	if err := c.client.Call("Roosta.Weather", WeatherRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AlarmList returns the stored alarms.
func (c *Client) AlarmList() (*AlarmListResponse, error) {
	var resp AlarmListResponse
	if err := c.client.Call("Roosta.AlarmList", AlarmListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AlarmSet adds an alarm.
func (c *Client) AlarmSet(req AlarmSetRequest) (*AlarmSetResponse, error) {
	var resp AlarmSetResponse
	if err := c.client.Call("Roosta.AlarmSet", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AlarmEnable toggles an alarm.
func (c *Client) AlarmEnable(id int64, enabled bool) error {
	var resp AlarmEnableResponse
	return c.client.Call("Roosta.AlarmEnable", AlarmEnableRequest{ID: id, Enabled: enabled}, &resp)
}

// AlarmDelete removes an alarm.
func (c *Client) AlarmDelete(id int64) (*AlarmDeleteResponse, error) {
	var resp AlarmDeleteResponse
	if err := c.client.Call("Roosta.AlarmDelete", AlarmDeleteRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaybackLog fetches recent playback sessions.
func (c *Client) PlaybackLog(limit int) (*PlaybackLogResponse, error) {
	var resp PlaybackLogResponse
	if err := c.client.Call("Roosta.PlaybackLog", PlaybackLogRequest{Limit: limit}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Shutdown asks the daemon process to exit.
func (c *Client) Shutdown() (*ShutdownResponse, error) {
	var resp ShutdownResponse
	if err := c.client.Call("Roosta.Shutdown", ShutdownRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
