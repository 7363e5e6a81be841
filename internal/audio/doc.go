// Package audio streams PCM sample files to a DAC-style output device
// through two fixed banks that alternate between software fill and hardware
// drain. The producer refills a bank only after the device's completion
// callback has signaled it free, so the handoff needs no data lock — just
// strict turn-taking through an event flag.
package audio
