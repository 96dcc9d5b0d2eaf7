package levels

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/milk9111/puff/common"
)

const gatedLevel = `
id: gated
bgm: hell
bgm_variants:
  - {track: hell_late, when: {from: has_letter}}
floors:
  - {x: 0, y: 0, w: 100, h: 20, asset: a}
  - {x: 0, y: 50, w: 100, h: 20, asset: b, when: {from: met_milk}}
  - {x: 0, y: 90, w: 100, h: 20, asset: c, when: {until: met_milk}}
sensors:
  - {index: 3, x: 10, y: 10, w: 5, h: 5, to: other, safe: {x: 1, y: 2}}
npcs:
  - name: milk
    x: 0
    y: 0
    w: 10
    h: 10
    lines:
      - {speaker: milk, emotion: happy, text: hi}
    on_finish:
      progression: met_milk
      grant: [double_jump, dash]
      break_walls: [2]
`

const otherLevel = `
id: other
sensors:
  - {index: 3, x: 0, y: 0, w: 5, h: 5, to: gated, safe: {x: 7, y: 8}}
  - {index: 4, x: 0, y: 0, w: 5, h: 5, to: nowhere}
`

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Load(fstest.MapFS{
		"gated.yaml": {Data: []byte(gatedLevel)},
		"other.yaml": {Data: []byte(otherLevel)},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return r
}

func TestLayoutGating(t *testing.T) {
	r := testRegistry(t)
	d, ok := r.Get("gated")
	if !ok {
		t.Fatal("expected gated level")
	}

	cases := []struct {
		name   string
		p      common.Progression
		floors []string
		bgm    string
	}{
		{"start", common.ProgressionNone, []string{"a", "c"}, "hell"},
		{"met_milk", common.ProgressionMetMilk, []string{"a", "b"}, "hell"},
		{"late", common.ProgressionHasLetter, []string{"a", "b"}, "hell_late"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := d.Layout(c.p)
			if l.BGM != c.bgm {
				t.Fatalf("expected bgm %q, got %q", c.bgm, l.BGM)
			}
			if len(l.Floors) != len(c.floors) {
				t.Fatalf("expected %d floors, got %d", len(c.floors), len(l.Floors))
			}
			for i, f := range l.Floors {
				if f.Asset != c.floors[i] {
					t.Fatalf("floor %d: expected %q, got %q", i, c.floors[i], f.Asset)
				}
			}
		})
	}
}

func TestDescriptorDecoding(t *testing.T) {
	r := testRegistry(t)
	d, _ := r.Get("gated")

	s, ok := d.SensorByIndex(common.ProgressionNone, 3)
	if !ok || s.To != "other" || s.Safe == nil || *s.Safe != common.V(1, 2) {
		t.Fatalf("unexpected sensor %+v ok=%v", s, ok)
	}
	if s.Rect.W != 5 || s.Rect.X != 10 {
		t.Fatalf("inline rect not decoded: %+v", s.Rect)
	}

	npc := d.NPCs[0]
	if npc.OnFinish.Progression == nil || *npc.OnFinish.Progression != common.ProgressionMetMilk {
		t.Fatalf("unexpected progression %v", npc.OnFinish.Progression)
	}
	if len(npc.OnFinish.Grant) != 2 || npc.OnFinish.Grant[1] != AbilityDash {
		t.Fatalf("unexpected grants %v", npc.OnFinish.Grant)
	}
	if len(npc.Lines) != 1 || npc.Lines[0].Emotion != "happy" {
		t.Fatalf("unexpected lines %+v", npc.Lines)
	}
}

func TestLookupAndProblems(t *testing.T) {
	r := testRegistry(t)
	if _, err := r.Lookup("missing"); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
	problems := r.Problems()
	if len(problems) != 1 {
		t.Fatalf("expected one problem, got %v", problems)
	}
}

func TestLoadRejectsBadData(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"no_id", "bgm: hell\n"},
		{"bad_progression", "id: x\nfloors:\n  - {x: 0, y: 0, w: 1, h: 1, when: {from: nope}}\n"},
		{"bad_ability", "id: x\nnpcs:\n  - {name: a, on_finish: {grant: [fly]}}\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(fstest.MapFS{"x.yaml": {Data: []byte(c.data)}})
			if err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestEmbeddedLevelsLoad(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	for _, id := range []string{"hell_1", "hell_2", "factory_1", "factory_2", "sky_1"} {
		if _, ok := r.Get(id); !ok {
			t.Fatalf("missing level %s", id)
		}
	}
	if p := r.Problems(); len(p) != 0 {
		t.Fatalf("embedded levels have problems: %v", p)
	}
}
