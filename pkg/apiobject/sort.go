package apiobject

import (
	"sort"
	"strings"
)

// SortableObjects orders objects so that kinds others depend on come
// first e.g. a Namespace before anything placed inside it. Ties are
// broken on namespace & name so the order is consistent irrespective
// of input order.
type SortableObjects []*Object

var _ sort.Interface = SortableObjects{}

func (a SortableObjects) Len() int      { return len(a) }
func (a SortableObjects) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a SortableObjects) Less(i, j int) bool {
	first, second := a[i], a[j]
	if first.Kind() != second.Kind() {
		return isKindLessThan(first.descriptor, second.descriptor)
	}
	if first.Namespace() != second.Namespace() {
		return first.Namespace() < second.Namespace()
	}
	return first.Name() < second.Name()
}

// SortByApplyOrder sorts the provided objects in place
func SortByApplyOrder(objects []*Object) {
	sort.Sort(SortableObjects(objects))
}

var kind2index = computeKind2index()

func computeKind2index() map[string]int {
	// An attempt to order things to help k8s, e.g.
	// a Service should come before things that refer to it.
	// Namespace should be first.
	orderFirst := []string{
		"Namespace",
		"Node",
		"PersistentVolume",
		"PersistentVolumeClaim",
		"ConfigMap",
		"Secret",
		"Service",
		"Endpoint",
		"Deployment",
		"ReplicationController",
		"ReplicaSet",
		"DaemonSet",
		"Job",
	}
	orderLast := []string{
		"Ingress",
	}
	kind2indexResult := make(map[string]int, len(orderFirst)+len(orderLast))
	for i, n := range orderFirst {
		kind2indexResult[n] = -len(orderFirst) + i
	}
	for i, n := range orderLast {
		kind2indexResult[n] = 1 + i
	}
	return kind2indexResult
}

func isKindLessThan(i, j Descriptor) bool {
	indexI := kind2index[i.Kind]
	indexJ := kind2index[j.Kind]
	if indexI != indexJ {
		return indexI < indexJ
	}
	if group(i) != group(j) {
		return group(i) < group(j)
	}
	return i.Kind < j.Kind
}

// group extracts the API group from a group/version string; the legacy
// core group reads as ""
func group(d Descriptor) string {
	if idx := strings.Index(d.APIVersion, "/"); idx >= 0 {
		return d.APIVersion[:idx]
	}
	return ""
}
