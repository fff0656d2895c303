package apiobject

import (
	"strings"

	"github.com/simplekube/objkit/pkg/apiclient"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

// Object is a single remote resource held on the client side. The
// document is mutated directly by the caller; the snapshot is the
// document as last confirmed by the server & is only ever replaced
// wholesale by a successful operation.
//
// Note: An Object is meant for single-owner, single-threaded use;
// concurrent callers must add their own synchronisation
type Object struct {
	api        apiclient.Interface
	descriptor Descriptor
	doc        map[string]interface{}
	snapshot   map[string]interface{}
}

// New builds an Object from the provided descriptor & document
//
// Note: The document must hold JSON compatible values only i.e.
// map[string]interface{}, []interface{}, string, bool, int64, float64
// & nil
func New(api apiclient.Interface, descriptor Descriptor, doc map[string]interface{}) (*Object, error) {
	if api == nil {
		return nil, errors.New("nil api client")
	}
	if descriptor.Kind == "" {
		return nil, errors.New("empty descriptor")
	}
	if doc == nil {
		return nil, errors.New("nil document")
	}
	o := &Object{
		api:        api,
		descriptor: descriptor,
	}
	o.setDocument(doc)
	return o, nil
}

// NewForKind builds an Object for one of the registered kinds
func NewForKind(api apiclient.Interface, kind string, doc map[string]interface{}) (*Object, error) {
	d, err := DescriptorFor(kind)
	if err != nil {
		return nil, err
	}
	return New(api, d, doc)
}

// setDocument replaces document & snapshot wholesale. This is the only
// place the snapshot transitions.
func (o *Object) setDocument(doc map[string]interface{}) {
	o.doc = doc
	o.snapshot = runtime.DeepCopyJSON(doc)
}

// Document returns the mutable document; callers edit it in place &
// then invoke Update to push the divergence to the server
func (o *Object) Document() map[string]interface{} {
	return o.doc
}

// Snapshot returns a deep copy of the document as last confirmed by
// the server
func (o *Object) Snapshot() map[string]interface{} {
	return runtime.DeepCopyJSON(o.snapshot)
}

// Descriptor returns the static kind metadata of this object
func (o *Object) Descriptor() Descriptor {
	return o.descriptor
}

// Kind returns the display name of this object's kind
func (o *Object) Kind() string {
	return o.descriptor.Kind
}

// Name returns metadata.name of the document
func (o *Object) Name() string {
	name, _, _ := unstructured.NestedString(o.doc, "metadata", "name")
	return name
}

// snapshotName is the identity used to build request URLs. It is taken
// from the snapshot so that mutating the document's name cannot
// redirect an operation to a different resource.
func (o *Object) snapshotName() string {
	name, _, _ := unstructured.NestedString(o.snapshot, "metadata", "name")
	return name
}

// Namespace returns metadata.namespace of the document falling back to
// DefaultNamespace for namespaced kinds; cluster scoped kinds always
// report an empty namespace
func (o *Object) Namespace() string {
	if !o.descriptor.Namespaced {
		return ""
	}
	ns, _, _ := unstructured.NestedString(o.doc, "metadata", "namespace")
	if ns == "" {
		return DefaultNamespace
	}
	return ns
}

// Annotations returns metadata.annotations of the document; an empty
// map when absent
func (o *Object) Annotations() map[string]string {
	annotations, found, err := unstructured.NestedStringMap(o.doc, "metadata", "annotations")
	if !found || err != nil {
		return map[string]string{}
	}
	return annotations
}

// Labels returns metadata.labels of the document; an empty map when
// absent
func (o *Object) Labels() map[string]string {
	labels, found, err := unstructured.NestedStringMap(o.doc, "metadata", "labels")
	if !found || err != nil {
		return map[string]string{}
	}
	return labels
}

// IsReady reports the Ready condition found at status.conditions. A
// missing status or condition reads as not ready.
func (o *Object) IsReady() bool {
	conditions, found, err := unstructured.NestedSlice(o.doc, "status", "conditions")
	if !found || err != nil {
		return false
	}
	for _, c := range conditions {
		condition, ok := c.(map[string]interface{})
		if !ok {
			continue
		}
		if condition["type"] == "Ready" {
			return condition["status"] == "True"
		}
	}
	return false
}

// Scalable is the capability of kinds that carry a desired-count
// scalar e.g. spec.replicas of a Deployment or spec.parallelism of a
// Job
type Scalable interface {
	DesiredCount() (int64, error)
	SetDesiredCount(count int64) error
}

// compile time check to assert if the structure
// Object implements the interface Scalable
var _ Scalable = (*Object)(nil)

// DesiredCount reads the desired-count scalar from the document
func (o *Object) DesiredCount() (int64, error) {
	if !o.descriptor.IsScalable() {
		return 0, errors.Errorf("kind %q is not scalable", o.Kind())
	}
	value, found, err := unstructured.NestedFieldNoCopy(o.doc, o.descriptor.ScalePath...)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read %q", strings.Join(o.descriptor.ScalePath, "."))
	}
	if !found {
		return 0, errors.Errorf("missing %q", strings.Join(o.descriptor.ScalePath, "."))
	}
	count, err := toInt64(value)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read %q", strings.Join(o.descriptor.ScalePath, "."))
	}
	return count, nil
}

// SetDesiredCount sets the desired-count scalar on the document
func (o *Object) SetDesiredCount(count int64) error {
	if !o.descriptor.IsScalable() {
		return errors.Errorf("kind %q is not scalable", o.Kind())
	}
	err := unstructured.SetNestedField(o.doc, count, o.descriptor.ScalePath...)
	if err != nil {
		return errors.Wrapf(err, "failed to set %q", strings.Join(o.descriptor.ScalePath, "."))
	}
	return nil
}

func toInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, errors.Errorf("not a number: %T", value)
	}
}
