package apiobject

import (
	"github.com/simplekube/objkit/pkg/apiclient"
	"github.com/simplekube/objkit/pkg/manifest"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/scheme"
)

func NewConfigMap(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "ConfigMap", doc)
}

func NewDaemonSet(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "DaemonSet", doc)
}

func NewDeployment(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "Deployment", doc)
}

func NewEndpoint(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "Endpoint", doc)
}

func NewIngress(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "Ingress", doc)
}

func NewJob(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "Job", doc)
}

func NewNamespace(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "Namespace", doc)
}

func NewNode(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "Node", doc)
}

func NewPersistentVolume(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "PersistentVolume", doc)
}

func NewPersistentVolumeClaim(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "PersistentVolumeClaim", doc)
}

func NewPod(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "Pod", doc)
}

func NewReplicaSet(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "ReplicaSet", doc)
}

func NewReplicationController(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "ReplicationController", doc)
}

func NewSecret(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "Secret", doc)
}

func NewService(api apiclient.Interface, doc map[string]interface{}) (*Object, error) {
	return NewForKind(api, "Service", doc)
}

// FromObject builds an Object from a typed Kubernetes value e.g. a
// corev1.Pod. The kind is resolved through the native client-go scheme
// & the document's apiVersion is stamped from the registered
// descriptor so that it stays consistent with the endpoint in use.
func FromObject(api apiclient.Interface, object runtime.Object) (*Object, error) {
	if object == nil {
		return nil, errors.New("nil object")
	}
	gvks, _, err := scheme.Scheme.ObjectKinds(object)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve kind")
	}
	if len(gvks) == 0 {
		return nil, errors.Errorf("no kind registered for %T", object)
	}
	kind := gvks[0].Kind

	descriptor, err := DescriptorFor(kind)
	if err != nil {
		return nil, err
	}
	doc, err := runtime.DefaultUnstructuredConverter.ToUnstructured(object)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert object to document")
	}
	doc["apiVersion"] = descriptor.APIVersion
	doc["kind"] = descriptor.Kind
	return New(api, descriptor, doc)
}

// FromManifestFiles builds Objects from the provided YAML or JSON
// manifest paths; directories are walked recursively. Documents whose
// kind is not registered are reported as failures without stopping the
// rest.
func FromManifestFiles(api apiclient.Interface, filePaths []string) ([]*Object, error) {
	docs, err := manifest.LoadFiles(filePaths)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.Errorf("no kubernetes documents found: %q", filePaths)
	}

	var objects = make([]*Object, 0, len(docs))
	var finalError error
	for _, doc := range docs {
		kind, _ := doc["kind"].(string)
		object, err := NewForKind(api, kind, doc)
		if err != nil {
			finalError = multierror.Append(finalError, err)
			continue
		}
		objects = append(objects, object)
	}
	return objects, finalError
}
