package apiclient

import (
	"context"
	"net/url"
	"strings"

	"k8s.io/apimachinery/pkg/util/json"
)

// Param is a single query parameter. Parameters are kept as an ordered
// list & not as a map since the encoded query string must preserve the
// order in which parameters were supplied.
type Param struct {
	Key   string
	Value string
}

// RequestOptions describes a single API request relative to the server's
// base URL. The final request path is composed as:
//
//	{version-prefix}/{namespaces/<ns> if set}/{URL}?{Params}
//
// where the version prefix is /api/{Version} for the legacy core group
// & /apis/{Version} for everything else.
type RequestOptions struct {
	// Version is the API group/version e.g. "v1" or "batch/v1"
	Version string

	// Namespace scopes the request; empty for cluster scoped resources
	Namespace string

	// URL is the resource relative target e.g. "pods" or "pods/p1/exec"
	URL string

	// Params are encoded in the order supplied
	Params []Param

	// Headers are set on the outgoing request
	Headers map[string]string

	// Data is the request body if any
	Data []byte
}

// Path renders the absolute request path including the encoded query
// string if any
func (o RequestOptions) Path() string {
	var b strings.Builder
	if strings.Contains(o.Version, "/") {
		b.WriteString("/apis/")
	} else {
		b.WriteString("/api/")
	}
	b.WriteString(o.Version)
	if o.Namespace != "" {
		b.WriteString("/namespaces/")
		b.WriteString(o.Namespace)
	}
	b.WriteString("/")
	b.WriteString(o.URL)
	if len(o.Params) > 0 {
		b.WriteString("?")
		b.WriteString(EncodeParams(o.Params))
	}
	return b.String()
}

// EncodeParams encodes the parameters preserving their supplied order
//
// Note: url.Values is not used on purpose since it sorts keys while
// encoding
func EncodeParams(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteString("&")
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Response is the outcome of a completed API round trip
type Response struct {
	StatusCode int
	Body       []byte
}

// OK returns true for 2xx status codes
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON decodes the response body into the provided target
//
// Note: Decoding goes through apimachinery's json utility which keeps
// integral numbers as int64 instead of float64
func (r *Response) JSON(into interface{}) error {
	return json.Unmarshal(r.Body, into)
}

// Err returns a StatusError if the response carries a non 2xx status
// code & nil otherwise
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return &StatusError{
		Code: r.StatusCode,
		Body: r.Body,
	}
}

// Interface is the contract consumed by resource operations. One
// implementation talks HTTP to a real API server; tests substitute a
// fake that scripts responses.
type Interface interface {
	Get(ctx context.Context, options RequestOptions) (*Response, error)
	Post(ctx context.Context, options RequestOptions) (*Response, error)
	Patch(ctx context.Context, options RequestOptions) (*Response, error)
	Delete(ctx context.Context, options RequestOptions) (*Response, error)
}
