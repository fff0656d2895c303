// Package manifest reads YAML or JSON manifests into untyped resource
// documents that can be handed to apiobject constructors.
package manifest

import (
	"bufio"
	"io"
	"os"
	"path"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	yamlutil "k8s.io/apimachinery/pkg/util/yaml"
)

// ReadDocuments decodes the YAML or JSON documents from the provided
// reader. List manifests are expanded into their items. Documents that
// do not resemble a Kubernetes schema are skipped.
func ReadDocuments(r io.Reader) ([]map[string]interface{}, error) {
	reader := yamlutil.NewYAMLOrJSONDecoder(r, 2048)
	documents := make([]map[string]interface{}, 0)

	for {
		var doc map[string]interface{}
		err := reader.Decode(&doc)
		if err != nil {
			if err == io.EOF {
				break
			}
			return documents, errors.Wrap(err, "failed to decode document")
		}
		if doc == nil {
			continue
		}

		if isList(doc) {
			items, _ := doc["items"].([]interface{})
			for _, item := range items {
				itemDoc, ok := item.(map[string]interface{})
				if ok && IsKubernetesDocument(itemDoc) {
					documents = append(documents, itemDoc)
				}
			}
			continue
		}

		if IsKubernetesDocument(doc) {
			documents = append(documents, doc)
		}
	}

	return documents, nil
}

// LoadFiles builds documents from the provided file or directory paths
func LoadFiles(filePaths []string) ([]map[string]interface{}, error) {
	if len(filePaths) == 0 {
		return nil, errors.New("no file paths provided")
	}

	manifests, err := ScanForManifests(filePaths)
	if err != nil {
		return nil, err
	}

	var documents = make([]map[string]interface{}, 0)
	var errs = make([]error, 0, len(manifests))
	for _, m := range manifests {
		f, err := os.Open(m)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "manifest %q", m))
			continue
		}

		docs, err := ReadDocuments(bufio.NewReader(f))
		f.Close()
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "manifest %q", m))
			continue
		}
		documents = append(documents, docs...)
	}
	return documents, (&multierror.Error{Errors: errs}).ErrorOrNil()
}

// ScanForManifests scans for YAML files present in the provided paths;
// directories are walked recursively
func ScanForManifests(paths []string) ([]string, error) {
	var manifests []string

	var errs = make([]error, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "path %q", p))
			continue
		}

		switch mode := fi.Mode(); {
		case mode.IsDir():
			m, err := scanDir(p)
			if err != nil {
				errs = append(errs, errors.Wrapf(err, "path %q", p))
				continue
			}
			manifests = append(manifests, m...)
		case mode.IsRegular():
			if IsExtensionYML(fi.Name()) {
				manifests = append(manifests, p)
			}
		}
	}

	return manifests, (&multierror.Error{Errors: errs}).ErrorOrNil()
}

func scanDir(dir string) ([]string, error) {
	var manifests []string
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "dir %q", dir)
	}

	var errs = make([]error, 0, len(files))
	for _, file := range files {
		if file.IsDir() {
			m, err := scanDir(path.Join(dir, file.Name()))
			if err != nil {
				errs = append(errs, err)
				continue
			}
			manifests = append(manifests, m...)
		}
		if IsExtensionYML(file.Name()) {
			manifests = append(manifests, path.Join(dir, file.Name()))
		}
	}
	return manifests, (&multierror.Error{Errors: errs}).ErrorOrNil()
}

// IsExtensionYML returns true if provided file has yaml extension
func IsExtensionYML(f string) bool {
	ext := path.Ext(f)
	return ext == ".yaml" || ext == ".yml"
}

// IsKubernetesDocument returns true if the provided document resembles
// a Kubernetes schema i.e. carries apiVersion, kind & a metadata name
func IsKubernetesDocument(doc map[string]interface{}) bool {
	apiVersion, _ := doc["apiVersion"].(string)
	kind, _ := doc["kind"].(string)
	metadata, _ := doc["metadata"].(map[string]interface{})
	if metadata == nil {
		return false
	}
	name, _ := metadata["name"].(string)
	return apiVersion != "" && kind != "" && name != ""
}

func isList(doc map[string]interface{}) bool {
	kind, _ := doc["kind"].(string)
	_, hasItems := doc["items"]
	return hasItems && strings.HasSuffix(kind, "List")
}
