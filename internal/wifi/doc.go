// Package wifi drives an ESP8266 running the NodeMCU Lua firmware over a
// serial link.
//
// The module's Lua console doubles as the network bridge: station
// management is done with wifi.* calls and HTTP exchanges ride on net
// sockets whose receive handler frames inbound payload back over the UART.
// Bridge implements the transport contract the HTTP client programs
// against.
package wifi
