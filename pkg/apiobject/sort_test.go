package apiobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByApplyOrder(t *testing.T) {
	t.Parallel()

	api := &fakeClient{}
	mustNew := func(kind, name string) *Object {
		object, err := NewForKind(api, kind, map[string]interface{}{
			"metadata": map[string]interface{}{"name": name},
		})
		assert.NoError(t, err)
		return object
	}

	objects := []*Object{
		mustNew("Ingress", "web"),
		mustNew("Pod", "p2"),
		mustNew("Pod", "p1"),
		mustNew("Service", "web"),
		mustNew("Namespace", "prod"),
	}

	SortByApplyOrder(objects)

	var kindsAndNames []string
	for _, object := range objects {
		kindsAndNames = append(kindsAndNames, object.Kind()+"/"+object.Name())
	}
	assert.Equal(t, []string{
		"Namespace/prod",
		"Service/web",
		"Pod/p1",
		"Pod/p2",
		"Ingress/web",
	}, kindsAndNames)
}
