package layer

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadKeywords reads a YAML keyword sidecar file into the layer's metadata
// mapping. A missing file is not an error; the layer keeps its current
// keywords.
func LoadKeywords(l *Layer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrapf(err, "layer: read keywords %s", path)
	}

	keywords := map[string]any{}
	if err := yaml.Unmarshal(data, &keywords); err != nil {
		return eris.Wrapf(err, "layer: parse keywords %s", path)
	}

	for k, v := range keywords {
		l.Keywords[k] = v
	}
	return nil
}

// SaveKeywords writes the layer's keywords, and style descriptor if present,
// to a YAML sidecar file.
func SaveKeywords(l *Layer, path string) error {
	doc := map[string]any{}
	for k, v := range l.Keywords {
		doc[k] = v
	}
	if l.StyleInfo != nil {
		doc["style_info"] = l.StyleInfo
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return eris.Wrapf(err, "layer: marshal keywords for %s", l.Name)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "layer: write keywords %s", path)
	}
	return nil
}
