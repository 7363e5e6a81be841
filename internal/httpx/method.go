package httpx

// methodCode enumerates the request methods of RFC 2616 section 5.1.1.
type methodCode int

const (
	methodInvalid methodCode = iota
	methodConnect
	methodDelete
	methodGet
	methodHead
	methodOptions
	methodPost
	methodPut
	methodTrace
	methodExtension
)

var methodNames = [...]string{
	methodConnect: "CONNECT",
	methodDelete:  "DELETE",
	methodGet:     "GET",
	methodHead:    "HEAD",
	methodOptions: "OPTIONS",
	methodPost:    "POST",
	methodPut:     "PUT",
	methodTrace:   "TRACE",
}

// Method is an HTTP request method. The zero value is invalid.
type Method struct {
	code methodCode
	text string
}

// MethodFor matches a method string case-insensitively against the standard
// verbs. An unrecognized non-empty string becomes an extension method that
// serializes verbatim; the empty string is invalid.
func MethodFor(text string) Method {
	if text == "" {
		return Method{}
	}
	m := Method{code: methodExtension, text: text}
	for code, name := range methodNames {
		if name != "" && equalFold(text, name) {
			m.code = methodCode(code)
			break
		}
	}
	return m
}

// Valid reports whether the method was constructed from a non-empty string.
func (m Method) Valid() bool { return m.code != methodInvalid }

// Text returns the canonical method string: the upper-case standard verb, or
// the original text for extension methods. Invalid methods return "".
func (m Method) Text() string {
	switch {
	case m.code == methodInvalid:
		return ""
	case m.code == methodExtension:
		return m.text
	default:
		return methodNames[m.code]
	}
}

// equalFold is a byte-wise ASCII case-insensitive compare. Method names are
// ASCII by definition, so the unicode machinery in strings.EqualFold is not
// needed here.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
