package apiobject

import (
	"strings"

	"github.com/simplekube/objkit/pkg/apiclient"

	"github.com/pkg/errors"
)

// targetOptions are the modifiers accepted while mapping an object to
// a request target
type targetOptions struct {
	// collection targets the collection endpoint instead of the
	// singular resource; only create uses this
	collection bool

	// subresource appends a sub-resource segment e.g. "exec"
	subresource string

	// params are encoded in order as the query string
	params []apiclient.Param
}

// requestOptions maps this object's identity to a transport request
// target. The singular name is always taken from the snapshot. The
// namespace segment is contributed only for namespaced kinds.
func (o *Object) requestOptions(t targetOptions) (apiclient.RequestOptions, error) {
	segments := []string{o.descriptor.Endpoint}
	if !t.collection {
		name := o.snapshotName()
		if name == "" {
			return apiclient.RequestOptions{}, errors.Errorf("%s has no name", o.Kind())
		}
		segments = append(segments, name)
		if t.subresource != "" {
			segments = append(segments, t.subresource)
		}
	}

	options := apiclient.RequestOptions{
		Version: o.descriptor.APIVersion,
		URL:     strings.Join(segments, "/"),
		Params:  t.params,
	}
	if o.descriptor.Namespaced {
		options.Namespace = o.Namespace()
	}
	return options, nil
}
