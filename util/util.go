package util

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"

	"gopkg.in/yaml.v2"
)

// FileMode is the default FileMode used when creating files.
const FileMode = 0664

// ToolsFileName is the name of the file declaring tool descriptors.
const ToolsFileName = "TOOLS.yaml"

// FileExists checks whether some file exists.
func FileExists(file string) bool {
	stat, err := os.Stat(file)
	return err == nil && !stat.IsDir()
}

// FindToolsFile walks up from `dir` and returns the first TOOLS.yaml it finds.
func FindToolsFile(dir string) (string, error) {
	p := path.Clean(dir)
	for {
		toolsFilePath := path.Join(p, ToolsFileName)
		if FileExists(toolsFilePath) {
			return toolsFilePath, nil
		}
		if p == "/" || p == "." {
			return "", fmt.Errorf("no %s found above %s", ToolsFileName, dir)
		}
		p = path.Dir(p)
	}
}

// ReadYaml reads the YAML file at `filePath` into `v`.
func ReadYaml(filePath string, v interface{}) error {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return nil
}

// WriteYaml marshals `v` and writes it to `filePath`.
func WriteYaml(filePath string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filePath, err)
	}
	if err := ioutil.WriteFile(filePath, data, FileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	return nil
}
