package levels

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// DefaultLevel is where a new run starts.
const DefaultLevel = "hell_1"

//go:embed *.yaml
var LevelsFS embed.FS

// Default loads the levels embedded in the binary.
func Default() (*Registry, error) {
	return Load(LevelsFS)
}

func loadDescriptor(fsys fs.FS, name string) (*Descriptor, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if d.ID == "" {
		return nil, fmt.Errorf("level %s: missing id", name)
	}
	return &d, nil
}
