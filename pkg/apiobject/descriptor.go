package apiobject

import (
	"github.com/pkg/errors"
)

// DefaultNamespace is reported for namespaced kinds whose document
// does not carry metadata.namespace
const DefaultNamespace = "default"

// Descriptor is the static metadata of a resource kind. One descriptor
// exists per distinct remote kind & is immutable for the lifetime of
// the process.
type Descriptor struct {
	// APIVersion is the API group/version e.g. "v1" or "batch/v1"
	APIVersion string

	// Endpoint is the collection path segment e.g. "pods"
	Endpoint string

	// Kind is the display name e.g. "Pod"
	Kind string

	// Namespaced is true when identity requires a namespace component
	Namespaced bool

	// ScalePath locates the desired-count scalar within the document
	// for kinds that support scaling; nil for everything else
	ScalePath []string
}

// IsScalable returns true for kinds that carry a desired-count scalar
func (d Descriptor) IsScalable() bool {
	return len(d.ScalePath) > 0
}

var descriptors = []Descriptor{
	{APIVersion: "v1", Endpoint: "configmaps", Kind: "ConfigMap", Namespaced: true},
	{APIVersion: "extensions/v1beta1", Endpoint: "daemonsets", Kind: "DaemonSet", Namespaced: true},
	{APIVersion: "extensions/v1beta1", Endpoint: "deployments", Kind: "Deployment", Namespaced: true, ScalePath: []string{"spec", "replicas"}},
	{APIVersion: "v1", Endpoint: "endpoints", Kind: "Endpoint", Namespaced: true},
	{APIVersion: "extensions/v1beta1", Endpoint: "ingresses", Kind: "Ingress", Namespaced: true},
	{APIVersion: "batch/v1", Endpoint: "jobs", Kind: "Job", Namespaced: true, ScalePath: []string{"spec", "parallelism"}},
	{APIVersion: "v1", Endpoint: "namespaces", Kind: "Namespace"},
	{APIVersion: "v1", Endpoint: "nodes", Kind: "Node"},
	{APIVersion: "v1", Endpoint: "persistentvolumeclaims", Kind: "PersistentVolumeClaim", Namespaced: true},
	{APIVersion: "v1", Endpoint: "persistentvolumes", Kind: "PersistentVolume"},
	{APIVersion: "v1", Endpoint: "pods", Kind: "Pod", Namespaced: true},
	{APIVersion: "v1", Endpoint: "replicationcontrollers", Kind: "ReplicationController", Namespaced: true, ScalePath: []string{"spec", "replicas"}},
	{APIVersion: "extensions/v1beta1", Endpoint: "replicasets", Kind: "ReplicaSet", Namespaced: true, ScalePath: []string{"spec", "replicas"}},
	{APIVersion: "v1", Endpoint: "secrets", Kind: "Secret", Namespaced: true},
	{APIVersion: "v1", Endpoint: "services", Kind: "Service", Namespaced: true},
}

// DescriptorFor looks up the descriptor registered against the
// provided kind
func DescriptorFor(kind string) (Descriptor, error) {
	for _, d := range descriptors {
		if d.Kind == kind {
			return d, nil
		}
	}
	return Descriptor{}, errors.Errorf("unsupported kind %q", kind)
}

// Descriptors returns a copy of all registered descriptors
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}
