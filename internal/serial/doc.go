// Package serial opens and enumerates the serial links the daemon talks
// over: the wifi bridge modem and the Bluetooth console module.
//
// Callers program against the Port interface so tests can substitute an
// in-memory pair from Pipe.
package serial
