package httpx_test

import (
	"testing"

	"roostaboosta/internal/httpx"
)

const sampleResponse = "HTTP/1.1 200 OK\r\n" +
	"Date: Tue, 25 Apr 2023 01:02:03 GMT\r\n" +
	"Server: nginx\r\n" +
	"Content-Type: application/json\r\n" +
	"Content-Length: 15\r\n" +
	"X-Cache: HIT\r\n" +
	"\r\n" +
	`{"temp_f":61.0}`

func TestParserFillsResponse(t *testing.T) {
	var resp httpx.Response
	p := httpx.NewResponseParser(&resp)
	if err := p.Feed([]byte(sampleResponse)); err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if !p.Done() {
		t.Fatal("expected parser done")
	}
	if resp.Status.Code() != 200 || !resp.Status.Success() {
		t.Fatalf("status: %+v", resp.Status)
	}
	if resp.General.Date != "Tue, 25 Apr 2023 01:02:03 GMT" {
		t.Fatalf("date: %q", resp.General.Date)
	}
	if resp.Header.Server != "nginx" {
		t.Fatalf("server: %q", resp.Header.Server)
	}
	if resp.Entity.ContentType != "application/json" {
		t.Fatalf("content type: %q", resp.Entity.ContentType)
	}
	if resp.Entity.Extension != "X-Cache: HIT" {
		t.Fatalf("extension line: %q", resp.Entity.Extension)
	}
	if resp.Body != `{"temp_f":61.0}` {
		t.Fatalf("body: %q", resp.Body)
	}
}

func TestParserHandlesByteAtATimeDelivery(t *testing.T) {
	var whole httpx.Response
	if err := httpx.NewResponseParser(&whole).Feed([]byte(sampleResponse)); err != nil {
		t.Fatalf("Feed failed: %v", err)
	}

	var resp httpx.Response
	p := httpx.NewResponseParser(&resp)
	for i := 0; i < len(sampleResponse); i++ {
		if err := p.Feed([]byte{sampleResponse[i]}); err != nil {
			t.Fatalf("Feed byte %d failed: %v", i, err)
		}
	}
	if !p.Done() {
		t.Fatal("expected parser done")
	}
	if resp != whole {
		t.Fatalf("fragmented parse diverged:\n%+v\nvs\n%+v", resp, whole)
	}
}

func TestParserMalformedStatusLine(t *testing.T) {
	var resp httpx.Response
	p := httpx.NewResponseParser(&resp)
	if err := p.Feed([]byte("garbage\r\n")); err == nil {
		t.Fatal("expected error for malformed status line")
	}
	// Errors are sticky.
	if err := p.Feed([]byte("HTTP/1.1 200 OK\r\n")); err == nil {
		t.Fatal("expected sticky error")
	}
}

func TestParserPartialFailureKeepsParsedFields(t *testing.T) {
	var resp httpx.Response
	p := httpx.NewResponseParser(&resp)
	_ = p.Feed([]byte("HTTP/1.1 404 Not Found\r\nServer: s\r\n"))
	if err := p.Feed([]byte("not a header\r\n")); err == nil {
		t.Fatal("expected header parse error")
	}
	if resp.Status.Code() != 404 || resp.Header.Server != "s" {
		t.Fatalf("fields parsed before failure were lost: %+v", resp)
	}
}

func TestParserNonStandardStatus(t *testing.T) {
	var resp httpx.Response
	p := httpx.NewResponseParser(&resp)
	if err := p.Feed([]byte("HTTP/1.1 218 This Is Fine\r\n\r\n")); err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if resp.Status.Code() != 218 || resp.Status.Reason() != "This Is Fine" {
		t.Fatalf("status: code=%d reason=%q", resp.Status.Code(), resp.Status.Reason())
	}
}
