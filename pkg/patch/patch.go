// Package patch computes & applies RFC 6902 JSON Patch documents
// between untyped Kubernetes resource documents. Generation is
// delegated to gomodules.xyz/jsonpatch & application to
// github.com/evanphx/json-patch.
package patch

import (
	stdjson "encoding/json"

	evanpatch "github.com/evanphx/json-patch"
	"github.com/pkg/errors"
	jsonpatch "gomodules.xyz/jsonpatch/v2"
	"k8s.io/apimachinery/pkg/util/json"
)

// Diff computes the edit script that transforms original into modified.
// The result is a JSON encoded list of add/remove/replace operations;
// an identical pair yields the empty list "[]".
//
// Note: Operation order amongst sibling fields is not stable across
// invocations; applying the script to original is guaranteed to
// reproduce modified either way
func Diff(original, modified map[string]interface{}) ([]byte, error) {
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal original document")
	}
	modifiedJSON, err := json.Marshal(modified)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal modified document")
	}
	operations, err := jsonpatch.CreatePatch(originalJSON, modifiedJSON)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute patch")
	}

	// The generator's Operation type marshals its value with omitempty
	// which would drop legitimate zero values e.g. a replace with 0;
	// encode the operations explicitly instead
	encoded := make([]map[string]interface{}, 0, len(operations))
	for _, op := range operations {
		entry := map[string]interface{}{
			"op":   op.Operation,
			"path": op.Path,
		}
		if op.Operation != "remove" {
			entry["value"] = op.Value
		}
		encoded = append(encoded, entry)
	}
	return json.Marshal(encoded)
}

// IsEmpty returns true if the provided patch document carries no
// operations
func IsEmpty(patchDoc []byte) (bool, error) {
	var operations []stdjson.RawMessage
	err := json.Unmarshal(patchDoc, &operations)
	if err != nil {
		return false, errors.Wrap(err, "failed to unmarshal patch document")
	}
	return len(operations) == 0, nil
}

// Apply runs the provided patch document against the original &
// returns the patched document. The original is left untouched.
func Apply(patchDoc []byte, original map[string]interface{}) (map[string]interface{}, error) {
	decoded, err := evanpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode patch document")
	}
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal original document")
	}
	patchedJSON, err := decoded.Apply(originalJSON)
	if err != nil {
		return nil, errors.Wrap(err, "failed to apply patch")
	}
	var patched map[string]interface{}
	err = json.Unmarshal(patchedJSON, &patched)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal patched document")
	}
	return patched, nil
}
