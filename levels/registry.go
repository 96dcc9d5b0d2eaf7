package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

var ErrUnknownLevel = errors.New("levels: unknown level")

// Registry is the table of authored rooms keyed by id.
type Registry struct {
	levels map[string]*Descriptor
}

func NewRegistry(descriptors ...*Descriptor) *Registry {
	r := &Registry{levels: make(map[string]*Descriptor, len(descriptors))}
	for _, d := range descriptors {
		r.levels[d.ID] = d
	}
	return r
}

// Load reads every *.yaml file at the root of fsys.
func Load(fsys fs.FS) (*Registry, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	r := NewRegistry()
	for _, name := range names {
		d, err := loadDescriptor(fsys, name)
		if err != nil {
			return nil, err
		}
		if _, dup := r.levels[d.ID]; dup {
			return nil, fmt.Errorf("level %s: duplicate id %q", path.Base(name), d.ID)
		}
		r.levels[d.ID] = d
	}
	return r, nil
}

func (r *Registry) Get(id string) (*Descriptor, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.levels[id]
	return d, ok
}

func (r *Registry) Lookup(id string) (*Descriptor, error) {
	d, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
	}
	return d, nil
}

func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.levels))
	for id := range r.levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Problems lists authoring mistakes that do not stop the game: dangling
// destinations and sensors with no way back.
func (r *Registry) Problems() []string {
	var out []string
	for _, id := range r.IDs() {
		d := r.levels[id]
		for _, s := range d.Sensors {
			dest, ok := r.levels[s.To]
			if !ok {
				out = append(out, fmt.Sprintf("%s: sensor %d leads to unknown level %q", id, s.Index, s.To))
				continue
			}
			if s.Safe == nil && !hasIndex(dest, s.Index) {
				out = append(out, fmt.Sprintf("%s: sensor %d has no arrival in %s", id, s.Index, s.To))
			}
		}
		for _, door := range d.Doors {
			if _, ok := r.levels[door.To]; !ok {
				out = append(out, fmt.Sprintf("%s: door %d leads to unknown level %q", id, door.Index, door.To))
			}
		}
	}
	return out
}

func hasIndex(d *Descriptor, index int) bool {
	for _, s := range d.Sensors {
		if s.Index == index {
			return true
		}
	}
	return false
}
