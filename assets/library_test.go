package assets

import (
	"testing"
	"testing/fstest"
)

func TestResolveOverride(t *testing.T) {
	fsys := fstest.MapFS{
		"tiles/a.png":                {Data: []byte("regular-a")},
		"tiles/b.png":                {Data: []byte("regular-b")},
		"programmer-art/tiles/a.png": {Data: []byte("override-a")},
	}
	cases := []struct {
		name     string
		override bool
		path     string
		want     string
		ok       bool
	}{
		{"plain", false, "tiles/a.png", "regular-a", true},
		{"override_hit", true, "tiles/a.png", "override-a", true},
		{"override_fallback", true, "tiles/b.png", "regular-b", true},
		{"prefixed", true, "assets/tiles/a.png", "override-a", true},
		{"missing", true, "tiles/c.png", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := NewLibrary(fsys)
			l.SetOverride(c.override)
			data, err := l.ReadFile(c.path)
			if !c.ok {
				if !IsMissing(err) {
					t.Fatalf("expected missing error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(data) != c.want {
				t.Fatalf("expected %q, got %q", c.want, data)
			}
		})
	}
}

func TestToggleBumpsGeneration(t *testing.T) {
	l := NewLibrary(fstest.MapFS{})
	gen := l.Generation()
	if !l.ToggleOverride() {
		t.Fatal("expected override on")
	}
	if l.Generation() == gen {
		t.Fatal("expected generation change")
	}
	l.SetOverride(true)
	if l.Generation() != gen+1 {
		t.Fatal("setting the same value must not bump the generation")
	}
}
