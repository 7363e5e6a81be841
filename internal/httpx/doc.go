// Package httpx implements a minimal HTTP/1.1 client core built for tiny
// transports: the request/response data model, resumable zero-allocation
// serialization cursors that render a request into small fixed buffers
// across multiple calls, an incremental response parser, and a client that
// runs the request lifecycle over an abstract byte transport.
//
// Only the header subset this application needs is modeled; TLS, persistent
// connections, and pipelining are out of scope.
package httpx
