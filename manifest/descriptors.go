package manifest

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"

	"github.com/fermi-lat/tooldesc/log"
	"github.com/fermi-lat/tooldesc/tool"
)

type toolsFile struct {
	Tools []toolEntry `yaml:"tools"`
}

type toolEntry struct {
	Name    string   `yaml:"name"`
	Target  string   `yaml:"target"`
	Package string   `yaml:"package,omitempty"`
	Deps    []string `yaml:"deps"`
}

// ParseDescriptors decodes the contents of a TOOLS.yaml file.
func ParseDescriptors(data []byte) ([]tool.Descriptor, error) {
	var file toolsFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, err
	}

	descriptors := []tool.Descriptor{}
	for _, entry := range file.Tools {
		d := tool.Descriptor{
			Name:    entry.Name,
			Target:  entry.Target,
			Package: entry.Package,
			Deps:    entry.Deps,
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// LoadDescriptors reads and decodes the TOOLS.yaml file at `filePath`.
func LoadDescriptors(filePath string) ([]tool.Descriptor, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	descriptors, err := ParseDescriptors(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	log.Debug("Loaded %d descriptors from '%s'.\n", len(descriptors), filePath)
	return descriptors, nil
}

// LoadCatalog returns the builtin catalog extended by the descriptors in `filePaths`.
func LoadCatalog(filePaths ...string) (*tool.Catalog, error) {
	catalog := tool.Builtin()
	for _, filePath := range filePaths {
		descriptors, err := LoadDescriptors(filePath)
		if err != nil {
			return nil, err
		}
		for _, d := range descriptors {
			if err := catalog.Add(d); err != nil {
				return nil, fmt.Errorf("%s: %w", filePath, err)
			}
		}
	}
	return catalog, nil
}

// MarshalDescriptors encodes descriptors in the TOOLS.yaml format.
func MarshalDescriptors(descriptors []tool.Descriptor) ([]byte, error) {
	file := toolsFile{}
	for _, d := range descriptors {
		file.Tools = append(file.Tools, toolEntry{
			Name:    d.Name,
			Target:  d.Target,
			Package: d.Package,
			Deps:    d.Deps,
		})
	}
	return yaml.Marshal(file)
}
