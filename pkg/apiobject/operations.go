package apiobject

import (
	"context"
	"net/http"

	"github.com/simplekube/objkit/pkg/apiclient"
	"github.com/simplekube/objkit/pkg/patch"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/json"
)

// Exists checks the remote resource for existence. A 200 reads as
// true & a 404 as false; any other status is surfaced as an error.
// When ensure is set a missing resource is an error i.e. a
// NotFoundError instead of a false return.
func (o *Object) Exists(ctx context.Context, ensure bool) (bool, error) {
	options, err := o.requestOptions(targetOptions{})
	if err != nil {
		return false, err
	}
	resp, err := o.api.Get(ctx, options)
	if err != nil {
		return false, errors.Wrapf(err, "failed to check existence of %s %q", o.Kind(), o.Name())
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		if err := resp.Err(); err != nil {
			return false, errors.Wrapf(err, "failed to check existence of %s %q", o.Kind(), o.Name())
		}
	}
	if !resp.OK() {
		if ensure {
			return false, &NotFoundError{Kind: o.Kind(), Name: o.Name()}
		}
		return false, nil
	}
	return true, nil
}

// Create posts the full document against the collection endpoint. On
// success the document & snapshot are replaced with the server's
// response i.e. server assigned defaults & generated fields populate
// local state.
func (o *Object) Create(ctx context.Context) error {
	body, err := json.Marshal(o.doc)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s %q", o.Kind(), o.Name())
	}
	options, err := o.requestOptions(targetOptions{collection: true})
	if err != nil {
		return err
	}
	options.Data = body
	options.Headers = map[string]string{"Content-Type": "application/json"}

	resp, err := o.api.Post(ctx, options)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s %q", o.Kind(), o.Name())
	}
	if err := resp.Err(); err != nil {
		return errors.Wrapf(err, "failed to create %s %q", o.Kind(), o.Name())
	}
	return o.replaceFromResponse(resp)
}

// Reload fetches the remote resource & replaces the document &
// snapshot with the server's response discarding any local mutation
// not yet sent
func (o *Object) Reload(ctx context.Context) error {
	options, err := o.requestOptions(targetOptions{})
	if err != nil {
		return err
	}
	resp, err := o.api.Get(ctx, options)
	if err != nil {
		return errors.Wrapf(err, "failed to reload %s %q", o.Kind(), o.Name())
	}
	if err := resp.Err(); err != nil {
		return errors.Wrapf(err, "failed to reload %s %q", o.Kind(), o.Name())
	}
	return o.replaceFromResponse(resp)
}

// Update computes the edit script between the snapshot & the document
// & sends it as a JSON Patch request. The request is issued even when
// the script is empty. On success the document & snapshot are replaced
// with the server's response.
//
// Note: The script is computed fresh from the current snapshot on
// every call, never cached
func (o *Object) Update(ctx context.Context) error {
	patchDoc, err := patch.Diff(o.snapshot, o.doc)
	if err != nil {
		return errors.Wrapf(err, "failed to diff %s %q", o.Kind(), o.Name())
	}
	options, err := o.requestOptions(targetOptions{})
	if err != nil {
		return err
	}
	options.Data = patchDoc
	options.Headers = map[string]string{"Content-Type": "application/json-patch+json"}

	resp, err := o.api.Patch(ctx, options)
	if err != nil {
		return errors.Wrapf(err, "failed to update %s %q", o.Kind(), o.Name())
	}
	if err := resp.Err(); err != nil {
		return errors.Wrapf(err, "failed to update %s %q", o.Kind(), o.Name())
	}
	return o.replaceFromResponse(resp)
}

// Delete removes the remote resource. A 404 is tolerated i.e. deleting
// an already absent resource is a success. Local state is kept; the
// object remains inspectable but represents a no longer existing
// resource.
func (o *Object) Delete(ctx context.Context) error {
	options, err := o.requestOptions(targetOptions{})
	if err != nil {
		return err
	}
	resp, err := o.api.Delete(ctx, options)
	if err != nil {
		return errors.Wrapf(err, "failed to delete %s %q", o.Kind(), o.Name())
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if err := resp.Err(); err != nil {
		return errors.Wrapf(err, "failed to delete %s %q", o.Kind(), o.Name())
	}
	return nil
}

// replaceFromResponse decodes the server response & replaces document
// & snapshot wholesale. Local state is left untouched when decoding
// fails.
func (o *Object) replaceFromResponse(resp *apiclient.Response) error {
	var doc map[string]interface{}
	if err := resp.JSON(&doc); err != nil {
		return errors.Wrap(err, "failed to decode server response")
	}
	o.setDocument(doc)
	return nil
}

// OperationFn is a single resource operation; used to run one
// operation across many objects
type OperationFn func(ctx context.Context, object *Object) error

// InvokeForAll executes the operation against every provided object
// sequentially aggregating the failures; one object's failure does not
// stop the rest
func InvokeForAll(ctx context.Context, operation OperationFn, objects []*Object) error {
	var finalError error
	for _, object := range objects {
		if err := operation(ctx, object); err != nil {
			finalError = multierror.Append(finalError, err)
		}
	}
	return finalError
}

// CreateAll creates the provided objects in apply order i.e. kinds
// that others depend on first
func CreateAll(ctx context.Context, objects []*Object) error {
	SortByApplyOrder(objects)
	return InvokeForAll(ctx, func(ctx context.Context, object *Object) error {
		return object.Create(ctx)
	}, objects)
}

// ReloadAll reloads the provided objects
func ReloadAll(ctx context.Context, objects []*Object) error {
	return InvokeForAll(ctx, func(ctx context.Context, object *Object) error {
		return object.Reload(ctx)
	}, objects)
}

// DeleteAll deletes the provided objects in reverse apply order
func DeleteAll(ctx context.Context, objects []*Object) error {
	SortByApplyOrder(objects)
	reversed := make([]*Object, 0, len(objects))
	for i := len(objects) - 1; i >= 0; i-- {
		reversed = append(reversed, objects[i])
	}
	return InvokeForAll(ctx, func(ctx context.Context, object *Object) error {
		return object.Delete(ctx)
	}, reversed)
}
