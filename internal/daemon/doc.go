// Package daemon coordinates the alarm clock's long-running services: the
// alarm scheduler, audio playback sessions, the weather service, and the
// Wi-Fi bridge. It enforces single-instance execution with a file lock and
// exposes the operations the IPC server and command console call into.
package daemon
