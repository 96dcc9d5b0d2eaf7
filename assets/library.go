package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// OverrideDir holds replacement art read instead of the regular file
// while the override flag is on.
const OverrideDir = "programmer-art"

// Library resolves asset paths against the assets tree shipped next to
// the binary. It is the process-wide home of the asset override flag.
type Library struct {
	fsys     fs.FS
	override bool

	mu      sync.Mutex
	missing map[string]bool
	// Generation changes whenever the override flag flips so caches keyed
	// on resolved paths know to reload.
	generation int
}

func NewLibrary(fsys fs.FS) *Library {
	return &Library{fsys: fsys, missing: make(map[string]bool)}
}

// Open returns a library over the directory dir.
func Open(dir string) *Library {
	return NewLibrary(os.DirFS(dir))
}

func (l *Library) Override() bool {
	return l.override
}

func (l *Library) SetOverride(on bool) {
	if l.override == on {
		return
	}
	l.override = on
	l.generation++
}

func (l *Library) ToggleOverride() bool {
	l.SetOverride(!l.override)
	return l.override
}

func (l *Library) Generation() int {
	return l.generation
}

// Resolve returns the path that would be read for name, or false when
// neither the override nor the regular file exists.
func (l *Library) Resolve(name string) (string, bool) {
	clean := cleanAssetPath(name)
	if l.override {
		alt := path.Join(OverrideDir, clean)
		if l.exists(alt) {
			return alt, true
		}
	}
	if l.exists(clean) {
		return clean, true
	}
	return clean, false
}

// ReadFile reads name through Resolve. A missing file is logged once.
func (l *Library) ReadFile(name string) ([]byte, error) {
	resolved, ok := l.Resolve(name)
	if !ok {
		l.reportMissing(resolved)
		return nil, fmt.Errorf("assets: %s: %w", resolved, fs.ErrNotExist)
	}
	data, err := fs.ReadFile(l.fsys, resolved)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", resolved, err)
	}
	return data, nil
}

// IsMissing reports whether err came from an absent asset.
func IsMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func (l *Library) exists(name string) bool {
	if l.fsys == nil {
		return false
	}
	info, err := fs.Stat(l.fsys, name)
	return err == nil && !info.IsDir()
}

func (l *Library) reportMissing(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.missing[name] {
		return
	}
	l.missing[name] = true
	log.Printf("assets: missing %s", name)
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if filepath.IsAbs(p) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return path.Base(s)
	}
	s = strings.TrimPrefix(s, "./")
	return strings.TrimPrefix(s, "assets/")
}
