/*
Package yaml parses dataset metadata, also known as the data dictionary,
from YAML documents: the names of the feature positions, the expected
label pair and the expected feature-value alphabet.
*/
package yaml

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/nampas/decisiontree/dataset"
)

/*
Metadata describes a dataset: optional names for the feature positions,
in order, and the optional closed sets of labels and feature values the
records are expected to draw from. Empty fields are not validated
against.
*/
type Metadata struct {
	Features []string `yaml:"features"`
	Labels   string   `yaml:"labels"`
	Values   string   `yaml:"values"`
}

/*
ReadMetadata takes a slice of bytes with a metadata specification in
YAML and returns the Metadata parsed from it or an error. The YAML is
expected to be an object with an optional features property holding a
list of feature names, an optional labels property holding the two
labels as a string and an optional values property holding the
feature-value alphabet as a string.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	metadata := &Metadata{}
	err := yaml.Unmarshal(md, metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if metadata.Labels != "" && len(metadata.Labels) != 2 {
		return nil, fmt.Errorf("parsing yml metadata: labels %q must be exactly 2 bytes", metadata.Labels)
	}
	return metadata, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and
uses ReadMetadata to parse it and return the Metadata or an error. If
the file indicated by the filepath cannot be opened for reading an
error will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return metadata, err
}

/*
Validate checks a built dataset against the metadata: the number of
feature names, when given, must equal the dataset's feature count, and
the dataset's observed labels and feature values must be contained in
the declared labels and values, when given. It returns an error naming
the first violation, or nil.
*/
func (m *Metadata) Validate(ds *dataset.Dataset) error {
	if len(m.Features) > 0 && len(m.Features) != ds.NumFeatures() {
		return fmt.Errorf("metadata names %d features, dataset has %d", len(m.Features), ds.NumFeatures())
	}
	if m.Labels != "" {
		for _, l := range ds.Labels() {
			if !strings.ContainsRune(m.Labels, rune(l)) {
				return fmt.Errorf("dataset label %q is not among declared labels %q", l, m.Labels)
			}
		}
	}
	if m.Values != "" {
		for _, v := range ds.FeatureValues() {
			if !strings.ContainsRune(m.Values, rune(v)) {
				return fmt.Errorf("dataset feature value %q is not among declared values %q", v, m.Values)
			}
		}
	}
	return nil
}

/*
FeatureName returns the declared name of the feature at the given
index, or F<index> when the metadata does not name it.
*/
func (m *Metadata) FeatureName(i int) string {
	if m != nil && i < len(m.Features) {
		return m.Features[i]
	}
	return fmt.Sprintf("F%d", i)
}
