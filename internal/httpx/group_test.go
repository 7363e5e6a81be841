package httpx_test

import (
	"errors"
	"strings"
	"testing"

	"roostaboosta/internal/httpx"
)

func TestEmptyGroupProducesNoBytes(t *testing.T) {
	var h httpx.GeneralHeader
	c := httpx.NewGeneralCursor(&h)
	buf := make([]byte, 64)
	n, err := c.Serialize(buf)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("empty group emitted %d bytes: %q", n, buf[:n])
	}
	if !c.EOF() {
		t.Fatal("expected EOF for empty group")
	}
}

func TestSingleFieldGroupSerializesExactly(t *testing.T) {
	h := httpx.RequestHeader{Host: "api.weatherapi.com"}
	c := httpx.NewRequestHeaderCursor(&h)
	got := drain(t, &c, 64)
	if got != "Host: api.weatherapi.com\r\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGroupSkipsEmptyFieldsWhole(t *testing.T) {
	// Empty fields must not leave orphaned separators or CRLFs behind,
	// including when the last field in schema order is the empty one.
	h := httpx.GeneralHeader{Connection: "close", Via: "proxy"}
	c := httpx.NewGeneralCursor(&h)
	got := drain(t, &c, 64)
	want := "Connection: close\r\nVia: proxy\r\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "\r\n\r\n") || strings.Contains(got, ": \r\n") {
		t.Fatalf("stray separators in %q", got)
	}
}

func TestGroupFixedFieldOrder(t *testing.T) {
	h := httpx.RequestHeader{UserAgent: "rb/1.0", Accept: "application/json", Host: "example.com"}
	c := httpx.NewRequestHeaderCursor(&h)
	got := drain(t, &c, 64)
	want := "Accept: application/json\r\nHost: example.com\r\nUser-Agent: rb/1.0\r\n"
	if got != want {
		t.Fatalf("field order wrong:\ngot  %q\nwant %q", got, want)
	}
}

func TestGroupChunkingInvariance(t *testing.T) {
	h := httpx.EntityHeader{ContentLength: "42", ContentType: "text/plain"}
	whole := func() string {
		c := httpx.NewEntityCursor(&h)
		return drain(t, &c, 256)
	}()
	for _, chunk := range []int{1, 2, 3, 7} {
		c := httpx.NewEntityCursor(&h)
		if got := drain(t, &c, chunk); got != whole {
			t.Fatalf("chunk %d output diverged:\ngot  %q\nwant %q", chunk, got, whole)
		}
	}
}

func TestGroupEOFTimingAtChunkBoundary(t *testing.T) {
	h := httpx.ResponseHeader{Server: "s"}
	c := httpx.NewResponseHeaderCursor(&h)
	want := "Server: s\r\n"
	buf := make([]byte, 1)
	for i := 0; i < len(want); i++ {
		if c.EOF() {
			t.Fatalf("EOF true before byte %d", i)
		}
		n, err := c.Serialize(buf)
		if err != nil || n != 1 {
			t.Fatalf("byte %d: n=%d err=%v", i, n, err)
		}
		if buf[0] != want[i] {
			t.Fatalf("byte %d: got %q want %q", i, buf[0], want[i])
		}
	}
	if !c.EOF() {
		t.Fatal("EOF false immediately after last byte")
	}
	if _, err := c.Serialize(buf); !errors.Is(err, httpx.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestGroupResetReproducesOutput(t *testing.T) {
	h := httpx.GeneralHeader{Date: "Tue, 25 Apr 2023 01:02:03 GMT", Pragma: "no-cache"}
	c := httpx.NewGeneralCursor(&h)
	first := drain(t, &c, 5)
	c.Reset()
	second := drain(t, &c, 64)
	if first != second {
		t.Fatalf("reset output differs:\nfirst  %q\nsecond %q", first, second)
	}
}

func TestEntityExtensionLineSerializesVerbatim(t *testing.T) {
	h := httpx.EntityHeader{
		ContentType: "application/json",
		Extension:   "X-Api-Key: abc123",
	}
	c := httpx.NewEntityCursor(&h)
	got := drain(t, &c, 16)
	want := "Content-Type: application/json\r\nX-Api-Key: abc123\r\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
