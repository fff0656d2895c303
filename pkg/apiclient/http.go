package apiclient

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/simplekube/objkit/pkg/envutil"

	"github.com/pkg/errors"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Client talks to a Kubernetes API server over HTTP. Authentication,
// TLS & connection pooling are delegated to the transport built from
// the rest.Config.
type Client struct {
	base *url.URL
	http *http.Client
}

// compile time check to assert if the structure
// Client implements the interface Interface
var _ Interface = (*Client)(nil)

// NewForConfig builds a Client from the provided rest config
func NewForConfig(config *rest.Config) (*Client, error) {
	if config == nil {
		return nil, errors.New("nil rest config")
	}
	transport, err := rest.TransportFor(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transport")
	}
	base, err := url.Parse(config.Host)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse host %q", config.Host)
	}
	return &Client{
		base: base,
		http: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
	}, nil
}

// NewForKubeconfig builds a Client from the provided kubeconfig file
// path. An empty path falls back to $KUBECONFIG & then to the
// conventional ~/.kube/config location.
func NewForKubeconfig(path string) (*Client, error) {
	if path == "" {
		path = DefaultKubeconfigPath()
	}
	config, err := clientcmd.BuildConfigFromFlags("", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load kubeconfig %q", path)
	}
	return NewForConfig(config)
}

// NewInCluster builds a Client from the service account mounted into
// the pod this process runs in
func NewInCluster() (*Client, error) {
	config, err := rest.InClusterConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load in-cluster config")
	}
	return NewForConfig(config)
}

// DefaultKubeconfigPath resolves the kubeconfig location from the
// environment
func DefaultKubeconfigPath() string {
	return envutil.GetOrDefault(
		"KUBECONFIG",
		filepath.Join(homedir.HomeDir(), ".kube", "config"),
	)
}

func (c *Client) Get(ctx context.Context, options RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodGet, options)
}

func (c *Client) Post(ctx context.Context, options RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodPost, options)
}

func (c *Client) Patch(ctx context.Context, options RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodPatch, options)
}

func (c *Client) Delete(ctx context.Context, options RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodDelete, options)
}

func (c *Client) do(ctx context.Context, method string, options RequestOptions) (*Response, error) {
	target := strings.TrimSuffix(c.base.String(), "/") + options.Path()

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(options.Data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s request for %q", method, target)
	}
	req.Header.Set("Accept", "application/json")
	if len(options.Data) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range options.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to invoke %s %q", method, target)
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response of %s %q", method, target)
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       raw,
	}, nil
}
