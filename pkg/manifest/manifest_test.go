package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadDocuments(t *testing.T) {
	t.Parallel()

	var scenarios = []struct {
		name          string
		input         string
		expectedNames []string
		isError       bool
	}{
		{
			name:          "should read a single document",
			input:         "apiVersion: v1\nkind: Pod\nmetadata:\n  name: p1\n",
			expectedNames: []string{"p1"},
		},
		{
			name: "should read multiple documents separated by ---",
			input: "apiVersion: v1\nkind: Pod\nmetadata:\n  name: p1\n" +
				"---\n" +
				"apiVersion: v1\nkind: Service\nmetadata:\n  name: s1\n",
			expectedNames: []string{"p1", "s1"},
		},
		{
			name:          "should expand list manifests into their items",
			input:         `{"apiVersion": "v1", "kind": "PodList", "items": [{"apiVersion": "v1", "kind": "Pod", "metadata": {"name": "p1"}}, {"apiVersion": "v1", "kind": "Pod", "metadata": {"name": "p2"}}]}`,
			expectedNames: []string{"p1", "p2"},
		},
		{
			name:          "should skip documents that do not resemble kubernetes schemas",
			input:         "foo: bar\n---\napiVersion: v1\nkind: Pod\nmetadata:\n  name: p1\n",
			expectedNames: []string{"p1"},
		},
		{
			name:          "should read nothing from empty input",
			input:         "",
			expectedNames: nil,
		},
	}

	for _, scenario := range scenarios {
		scenario := scenario // pin it
		t.Run(scenario.name, func(t *testing.T) {
			t.Parallel()

			docs, err := ReadDocuments(strings.NewReader(scenario.input))
			if scenario.isError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)

			var names []string
			for _, doc := range docs {
				metadata := doc["metadata"].(map[string]interface{})
				names = append(names, metadata["name"].(string))
			}
			assert.Equal(t, scenario.expectedNames, names)
		})
	}
}

func TestLoadFiles(t *testing.T) {
	t.Parallel()

	var scenarios = []struct {
		name          string
		paths         []string
		expectedNames []string
		isError       bool
	}{
		{
			name:    "should error without paths",
			isError: true,
		},
		{
			name:    "should error for a missing path",
			paths:   []string{"testdata/does_not_exist.yaml"},
			isError: true,
		},
		{
			name:          "should load documents from a file",
			paths:         []string{"testdata/pod.yaml"},
			expectedNames: []string{"p1"},
		},
		{
			name:          "should load documents from a directory recursively",
			paths:         []string{"testdata"},
			expectedNames: []string{"p1", "prod", "web"},
		},
	}

	for _, scenario := range scenarios {
		scenario := scenario // pin it
		t.Run(scenario.name, func(t *testing.T) {
			t.Parallel()

			docs, err := LoadFiles(scenario.paths)
			if scenario.isError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)

			nameSet := map[string]bool{}
			for _, doc := range docs {
				metadata := doc["metadata"].(map[string]interface{})
				nameSet[metadata["name"].(string)] = true
			}
			for _, expected := range scenario.expectedNames {
				assert.True(t, nameSet[expected], "missing document %q", expected)
			}
			assert.Len(t, docs, len(scenario.expectedNames))
		})
	}
}

func TestIsKubernetesDocument(t *testing.T) {
	t.Parallel()

	assert.True(t, IsKubernetesDocument(map[string]interface{}{
		"apiVersion": "v1",
		"kind":       "Pod",
		"metadata":   map[string]interface{}{"name": "p1"},
	}))
	assert.False(t, IsKubernetesDocument(map[string]interface{}{
		"apiVersion": "v1",
		"kind":       "Pod",
	}))
	assert.False(t, IsKubernetesDocument(map[string]interface{}{
		"foo": "bar",
	}))
}
