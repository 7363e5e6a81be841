package httpx

import "errors"

var (
	// ErrInvalidRequest indicates a request failed validation before any
	// bytes were sent: the method or URI is empty or malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrTimeout indicates a wait elapsed without the transport signaling
	// data, or that no request slot became free within the send timeout.
	ErrTimeout = errors.New("timeout")

	// ErrNoData indicates a cursor was asked to serialize after it had
	// already emitted its final byte.
	ErrNoData = errors.New("no more data")

	// ErrEmptyBuffer indicates a zero-length buffer was passed to a
	// serialize call. The cursor stays usable; retry with a real buffer.
	ErrEmptyBuffer = errors.New("empty buffer")

	// ErrInactivePromise indicates a read through a promise that is not
	// associated with an in-flight request.
	ErrInactivePromise = errors.New("promise not associated with a request")

	// ErrTransportBusy indicates the transport's request pool is exhausted.
	ErrTransportBusy = errors.New("transport busy")
)
