package prefabs

import (
	"embed"
	"os"
	"path"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk directory whose files shadow the embedded prefabs.
const Dir = "prefabs"

// Load reads Dir/<name> when that file exists, otherwise the embedded copy.
func Load(name string) ([]byte, error) {
	name = strings.TrimPrefix(path.Clean(strings.ReplaceAll(name, `\`, "/")), Dir+"/")
	if data, err := os.ReadFile(path.Join(Dir, name)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(name)
}
