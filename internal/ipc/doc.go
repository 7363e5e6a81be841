// Package ipc exposes daemon control via JSON-RPC over a Unix domain
// socket. The server wraps the daemon's operations; the client is the
// transport used by the roosta CLI.
package ipc
