package httpx_test

import (
	"errors"
	"strings"
	"testing"

	"roostaboosta/internal/httpx"
)

// drain serializes the cursor to completion into chunks of the given size
// and returns the concatenated output.
func drain(t *testing.T, c httpx.Cursor, chunk int) string {
	t.Helper()
	var out strings.Builder
	buf := make([]byte, chunk)
	for !c.EOF() {
		n, err := c.Serialize(buf)
		if err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		out.Write(buf[:n])
		if n != c.Gcount() {
			t.Fatalf("Gcount mismatch: returned %d, recorded %d", n, c.Gcount())
		}
	}
	return out.String()
}

func TestTextCursorStreams(t *testing.T) {
	c := httpx.NewTextCursor("hello world")
	if got := drain(t, &c, 4); got != "hello world" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTextCursorEOFTiming(t *testing.T) {
	c := httpx.NewTextCursor("abc")
	buf := make([]byte, 1)
	for i := 0; i < 3; i++ {
		if c.EOF() {
			t.Fatalf("EOF true before byte %d emitted", i)
		}
		if _, err := c.Serialize(buf); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
	}
	if !c.EOF() {
		t.Fatal("EOF false after last byte emitted")
	}
	n, err := c.Serialize(buf)
	if !errors.Is(err, httpx.ErrNoData) {
		t.Fatalf("expected ErrNoData after EOF, got n=%d err=%v", n, err)
	}
	if c.Gcount() != 1 {
		t.Fatalf("Gcount corrupted by post-EOF serialize: %d", c.Gcount())
	}
}

func TestTextCursorEmptyBufferIsRecoverable(t *testing.T) {
	c := httpx.NewTextCursor("xy")
	if _, err := c.Serialize(nil); !errors.Is(err, httpx.ErrEmptyBuffer) {
		t.Fatalf("expected ErrEmptyBuffer, got %v", err)
	}
	if c.Err() == nil {
		t.Fatal("expected error recorded")
	}
	buf := make([]byte, 8)
	n, err := c.Serialize(buf)
	if err != nil || n != 2 {
		t.Fatalf("expected recovery after empty buffer, got n=%d err=%v", n, err)
	}
	if c.Err() != nil {
		t.Fatalf("error not cleared after recovery: %v", c.Err())
	}
}

func TestTextCursorReset(t *testing.T) {
	c := httpx.NewTextCursor("restart")
	first := drain(t, &c, 3)
	c.Reset()
	second := drain(t, &c, 5)
	if first != second {
		t.Fatalf("reset changed output: %q vs %q", first, second)
	}
}

func TestStatusCursorRenders404(t *testing.T) {
	c := httpx.NewStatusCursor(httpx.NewStatusCode(404, ""))
	buf := make([]byte, 8)
	n, err := c.Serialize(buf)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if string(buf[:n]) != "404" || n != 3 {
		t.Fatalf("expected exactly \"404\", got %q", buf[:n])
	}
	if !c.EOF() {
		t.Fatal("expected EOF after final digit")
	}
}

func TestStatusCursorChunked(t *testing.T) {
	c := httpx.NewStatusCursor(httpx.NewStatusCode(503, ""))
	if got := drain(t, &c, 1); got != "503" {
		t.Fatalf("unexpected chunked output %q", got)
	}
}

func TestMethodCursorCaseInsensitive(t *testing.T) {
	for _, in := range []string{"get", "GET", "gEt"} {
		c := httpx.NewMethodCursor(httpx.MethodFor(in))
		if got := drain(t, &c, 2); got != "GET" {
			t.Fatalf("MethodFor(%q) serialized %q, want GET", in, got)
		}
	}
}

func TestMethodForTable(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"", "", false},
		{"pUt", "PUT", true},
		{"delete", "DELETE", true},
		{"connect", "CONNECT", true},
		{"head", "HEAD", true},
		{"options", "OPTIONS", true},
		{"trace", "TRACE", true},
		{"post", "POST", true},
		{"BREW", "BREW", true}, // extension method keeps its spelling
	}
	for _, tc := range cases {
		m := httpx.MethodFor(tc.in)
		if m.Valid() != tc.valid {
			t.Fatalf("MethodFor(%q).Valid() = %v, want %v", tc.in, m.Valid(), tc.valid)
		}
		if m.Text() != tc.want {
			t.Fatalf("MethodFor(%q).Text() = %q, want %q", tc.in, m.Text(), tc.want)
		}
	}
}

func TestStatusCodeRanges(t *testing.T) {
	cases := []struct {
		code     int
		standard bool
		check    func(httpx.StatusCode) bool
	}{
		{0, false, func(s httpx.StatusCode) bool { return !s.Valid() }},
		{100, true, httpx.StatusCode.Informational},
		{206, true, httpx.StatusCode.Success},
		{307, true, httpx.StatusCode.Redirection},
		{417, true, httpx.StatusCode.ClientError},
		{505, true, httpx.StatusCode.ServerError},
		{299, false, func(s httpx.StatusCode) bool { return !s.Standard() }},
		{600, false, func(s httpx.StatusCode) bool { return !s.Standard() }},
	}
	for _, tc := range cases {
		s := httpx.NewStatusCode(tc.code, "")
		if s.Standard() != tc.standard {
			t.Fatalf("code %d: Standard() = %v, want %v", tc.code, s.Standard(), tc.standard)
		}
		if !tc.check(s) {
			t.Fatalf("code %d: range predicate failed", tc.code)
		}
	}
}

func TestStatusCodeReason(t *testing.T) {
	if got := httpx.NewStatusCode(404, "ignored").Reason(); got != "Not Found" {
		t.Fatalf("standard reason overridden: %q", got)
	}
	if got := httpx.NewStatusCode(299, "Custom Thing").Reason(); got != "Custom Thing" {
		t.Fatalf("custom reason lost: %q", got)
	}
	if got := httpx.NewStatusCode(299, "").Reason(); got != "Unknown" {
		t.Fatalf("default reason: %q", got)
	}
	if got := httpx.NewStatusCode(0, "x").Reason(); got != "Invalid Status Code" {
		t.Fatalf("invalid reason: %q", got)
	}
}
