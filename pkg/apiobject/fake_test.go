package apiobject

import (
	"context"
	"net/http"

	"github.com/simplekube/objkit/pkg/apiclient"
)

type fakeCall struct {
	method  string
	options apiclient.RequestOptions
}

type fakeReply struct {
	resp *apiclient.Response
	err  error
}

// fakeClient scripts transport responses & records every request made
// through it. Replies are consumed in order across all methods; once
// exhausted every call succeeds with an empty JSON body.
type fakeClient struct {
	calls   []fakeCall
	replies []fakeReply
}

var _ apiclient.Interface = (*fakeClient)(nil)

func (f *fakeClient) next(method string, options apiclient.RequestOptions) (*apiclient.Response, error) {
	f.calls = append(f.calls, fakeCall{method: method, options: options})
	if len(f.replies) == 0 {
		return &apiclient.Response{StatusCode: http.StatusOK, Body: []byte("{}")}, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply.resp, reply.err
}

func (f *fakeClient) Get(ctx context.Context, options apiclient.RequestOptions) (*apiclient.Response, error) {
	return f.next(http.MethodGet, options)
}

func (f *fakeClient) Post(ctx context.Context, options apiclient.RequestOptions) (*apiclient.Response, error) {
	return f.next(http.MethodPost, options)
}

func (f *fakeClient) Patch(ctx context.Context, options apiclient.RequestOptions) (*apiclient.Response, error) {
	return f.next(http.MethodPatch, options)
}

func (f *fakeClient) Delete(ctx context.Context, options apiclient.RequestOptions) (*apiclient.Response, error) {
	return f.next(http.MethodDelete, options)
}

func (f *fakeClient) callsFor(method string) []fakeCall {
	var out []fakeCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func reply(code int, body string) fakeReply {
	return fakeReply{
		resp: &apiclient.Response{StatusCode: code, Body: []byte(body)},
	}
}
