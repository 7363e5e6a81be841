package httpx

// The four header groups of RFC 2616. Each is a fixed-schema struct: a small
// closed set of named fields rather than a general map, so a populated group
// costs no allocation and serializes in a fixed protocol order. An empty
// field means "absent" and contributes no output.

// headerGroup is the uniform view the serialization cursors use to walk a
// group field by field in its canonical order.
type headerGroup interface {
	fieldCount() int
	fieldName(i int) string
	fieldValue(i int) string
}

// groupEmpty reports whether no field of the group carries a value.
func groupEmpty(g headerGroup) bool {
	for i := 0; i < g.fieldCount(); i++ {
		if g.fieldValue(i) != "" {
			return false
		}
	}
	return true
}

// GeneralHeader holds the general-header fields of RFC 2616 section 4.5.
type GeneralHeader struct {
	CacheControl     string
	Connection       string
	Date             string
	Pragma           string
	Trailer          string
	TransferEncoding string
	Upgrade          string
	Via              string
	Warning          string
}

var generalNames = [...]string{
	"Cache-Control",
	"Connection",
	"Date",
	"Pragma",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
	"Via",
	"Warning",
}

// Field returns a settable pointer to the field named by tag, or nil when
// the tag is not a general-header name.
func (h *GeneralHeader) Field(tag string) *string {
	switch tag {
	case "Cache-Control":
		return &h.CacheControl
	case "Connection":
		return &h.Connection
	case "Date":
		return &h.Date
	case "Pragma":
		return &h.Pragma
	case "Trailer":
		return &h.Trailer
	case "Transfer-Encoding":
		return &h.TransferEncoding
	case "Upgrade":
		return &h.Upgrade
	case "Via":
		return &h.Via
	case "Warning":
		return &h.Warning
	}
	return nil
}

func (h *GeneralHeader) fieldCount() int        { return len(generalNames) }
func (h *GeneralHeader) fieldName(i int) string { return generalNames[i] }

func (h *GeneralHeader) fieldValue(i int) string {
	switch i {
	case 0:
		return h.CacheControl
	case 1:
		return h.Connection
	case 2:
		return h.Date
	case 3:
		return h.Pragma
	case 4:
		return h.Trailer
	case 5:
		return h.TransferEncoding
	case 6:
		return h.Upgrade
	case 7:
		return h.Via
	case 8:
		return h.Warning
	}
	return ""
}

// RequestHeader holds the request-header fields of RFC 2616 section 5.3.
type RequestHeader struct {
	Accept             string
	AcceptCharset      string
	AcceptEncoding     string
	AcceptLanguage     string
	Authorization      string
	Expect             string
	From               string
	Host               string
	IfMatch            string
	IfModifiedSince    string
	IfNoneMatch        string
	IfRange            string
	IfUnmodifiedSince  string
	MaxForwards        string
	ProxyAuthorization string
	Range              string
	Referer            string
	TE                 string
	UserAgent          string
}

var requestNames = [...]string{
	"Accept",
	"Accept-Charset",
	"Accept-Encoding",
	"Accept-Language",
	"Authorization",
	"Expect",
	"From",
	"Host",
	"If-Match",
	"If-Modified-Since",
	"If-None-Match",
	"If-Range",
	"If-Unmodified-Since",
	"Max-Forwards",
	"Proxy-Authorization",
	"Range",
	"Referer",
	"TE",
	"User-Agent",
}

// Field returns a settable pointer to the field named by tag, or nil when
// the tag is not a request-header name.
func (h *RequestHeader) Field(tag string) *string {
	switch tag {
	case "Accept":
		return &h.Accept
	case "Accept-Charset":
		return &h.AcceptCharset
	case "Accept-Encoding":
		return &h.AcceptEncoding
	case "Accept-Language":
		return &h.AcceptLanguage
	case "Authorization":
		return &h.Authorization
	case "Expect":
		return &h.Expect
	case "From":
		return &h.From
	case "Host":
		return &h.Host
	case "If-Match":
		return &h.IfMatch
	case "If-Modified-Since":
		return &h.IfModifiedSince
	case "If-None-Match":
		return &h.IfNoneMatch
	case "If-Range":
		return &h.IfRange
	case "If-Unmodified-Since":
		return &h.IfUnmodifiedSince
	case "Max-Forwards":
		return &h.MaxForwards
	case "Proxy-Authorization":
		return &h.ProxyAuthorization
	case "Range":
		return &h.Range
	case "Referer":
		return &h.Referer
	case "TE":
		return &h.TE
	case "User-Agent":
		return &h.UserAgent
	}
	return nil
}

func (h *RequestHeader) fieldCount() int        { return len(requestNames) }
func (h *RequestHeader) fieldName(i int) string { return requestNames[i] }

func (h *RequestHeader) fieldValue(i int) string {
	switch i {
	case 0:
		return h.Accept
	case 1:
		return h.AcceptCharset
	case 2:
		return h.AcceptEncoding
	case 3:
		return h.AcceptLanguage
	case 4:
		return h.Authorization
	case 5:
		return h.Expect
	case 6:
		return h.From
	case 7:
		return h.Host
	case 8:
		return h.IfMatch
	case 9:
		return h.IfModifiedSince
	case 10:
		return h.IfNoneMatch
	case 11:
		return h.IfRange
	case 12:
		return h.IfUnmodifiedSince
	case 13:
		return h.MaxForwards
	case 14:
		return h.ProxyAuthorization
	case 15:
		return h.Range
	case 16:
		return h.Referer
	case 17:
		return h.TE
	case 18:
		return h.UserAgent
	}
	return ""
}

// ResponseHeader holds the response-header fields of RFC 2616 section 6.2.
type ResponseHeader struct {
	AcceptRanges      string
	Age               string
	ETag              string
	Location          string
	ProxyAuthenticate string
	RetryAfter        string
	Server            string
	Vary              string
	WWWAuthenticate   string
}

var responseNames = [...]string{
	"Accept-Ranges",
	"Age",
	"ETag",
	"Location",
	"Proxy-Authenticate",
	"Retry-After",
	"Server",
	"Vary",
	"WWW-Authenticate",
}

// Field returns a settable pointer to the field named by tag, or nil when
// the tag is not a response-header name.
func (h *ResponseHeader) Field(tag string) *string {
	switch tag {
	case "Accept-Ranges":
		return &h.AcceptRanges
	case "Age":
		return &h.Age
	case "ETag":
		return &h.ETag
	case "Location":
		return &h.Location
	case "Proxy-Authenticate":
		return &h.ProxyAuthenticate
	case "Retry-After":
		return &h.RetryAfter
	case "Server":
		return &h.Server
	case "Vary":
		return &h.Vary
	case "WWW-Authenticate":
		return &h.WWWAuthenticate
	}
	return nil
}

func (h *ResponseHeader) fieldCount() int        { return len(responseNames) }
func (h *ResponseHeader) fieldName(i int) string { return responseNames[i] }

func (h *ResponseHeader) fieldValue(i int) string {
	switch i {
	case 0:
		return h.AcceptRanges
	case 1:
		return h.Age
	case 2:
		return h.ETag
	case 3:
		return h.Location
	case 4:
		return h.ProxyAuthenticate
	case 5:
		return h.RetryAfter
	case 6:
		return h.Server
	case 7:
		return h.Vary
	case 8:
		return h.WWWAuthenticate
	}
	return ""
}

// EntityHeader holds the entity-header fields of RFC 2616 section 7.1 plus a
// single slot for an extension header line.
type EntityHeader struct {
	Allow           string
	ContentEncoding string
	ContentLanguage string
	ContentLength   string
	ContentLocation string
	ContentMD5      string
	ContentRange    string
	ContentType     string
	Expires         string
	LastModified    string

	// Extension carries one pre-formatted "Name: value" line for headers
	// outside the standard set. It serializes as-is with a trailing CRLF.
	Extension string
}

// The final empty name marks the extension slot: its value is already a
// complete header line, so only the value and CRLF are emitted for it.
var entityNames = [...]string{
	"Allow",
	"Content-Encoding",
	"Content-Language",
	"Content-Length",
	"Content-Location",
	"Content-MD5",
	"Content-Range",
	"Content-Type",
	"Expires",
	"Last-Modified",
	"",
}

// Field returns a settable pointer to the field named by tag, or nil when
// the tag is not an entity-header name.
func (h *EntityHeader) Field(tag string) *string {
	switch tag {
	case "Allow":
		return &h.Allow
	case "Content-Encoding":
		return &h.ContentEncoding
	case "Content-Language":
		return &h.ContentLanguage
	case "Content-Length":
		return &h.ContentLength
	case "Content-Location":
		return &h.ContentLocation
	case "Content-MD5":
		return &h.ContentMD5
	case "Content-Range":
		return &h.ContentRange
	case "Content-Type":
		return &h.ContentType
	case "Expires":
		return &h.Expires
	case "Last-Modified":
		return &h.LastModified
	}
	return nil
}

func (h *EntityHeader) fieldCount() int        { return len(entityNames) }
func (h *EntityHeader) fieldName(i int) string { return entityNames[i] }

func (h *EntityHeader) fieldValue(i int) string {
	switch i {
	case 0:
		return h.Allow
	case 1:
		return h.ContentEncoding
	case 2:
		return h.ContentLanguage
	case 3:
		return h.ContentLength
	case 4:
		return h.ContentLocation
	case 5:
		return h.ContentMD5
	case 6:
		return h.ContentRange
	case 7:
		return h.ContentType
	case 8:
		return h.Expires
	case 9:
		return h.LastModified
	case 10:
		return h.Extension
	}
	return ""
}
