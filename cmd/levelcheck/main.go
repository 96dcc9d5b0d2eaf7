// Command levelcheck loads the level descriptors, reports authoring
// problems and prints what each room contains at a progression.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/levels"
	"github.com/milk9111/puff/prefabs"
)

func main() {
	dir := flag.String("dir", "", "directory of level yaml files (default: the embedded levels)")
	progression := flag.String("p", "none", "progression to resolve gated elements at")
	graph := flag.Bool("graph", false, "print the sensor and door graph")
	flag.Parse()

	var (
		reg *levels.Registry
		err error
	)
	if *dir != "" {
		reg, err = levels.Load(os.DirFS(*dir))
	} else {
		reg, err = levels.Default()
	}
	if err != nil {
		log.Fatal(err)
	}
	p, err := common.ParseProgression(*progression)
	if err != nil {
		log.Fatal(err)
	}

	for _, id := range reg.IDs() {
		d, _ := reg.Get(id)
		l := d.Layout(p)
		fmt.Printf("%-12s bgm=%-10s floors=%d sensors=%d doors=%d npcs=%d modifiers=%d\n",
			id, l.BGM, len(l.Floors), len(l.Sensors), len(l.Doors), len(l.NPCs), len(l.Modifiers))
		if !*graph {
			continue
		}
		for _, s := range l.Sensors {
			fmt.Printf("  sensor %d -> %s\n", s.Index, s.To)
		}
		for _, door := range l.Doors {
			fmt.Printf("  door %d -> %s (%.0f, %.0f)\n", door.Index, door.To, door.Safe.X, door.Safe.Y)
		}
	}

	problems := reg.Problems()
	problems = append(problems, cheatProblems(reg)...)
	if len(problems) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, strings.Join(problems, "\n"))
	os.Exit(1)
}

// cheatProblems reports cheat letters whose prefix matches no level.
func cheatProblems(reg *levels.Registry) []string {
	spec, err := prefabs.LoadCheatsSpec()
	if err != nil {
		return []string{err.Error()}
	}
	var out []string
	for letter, cheat := range spec.Levels {
		found := false
		for d := 0; d <= 9 && !found; d++ {
			_, found = reg.Get(fmt.Sprintf("%s_%d", cheat.Prefix, d))
		}
		if !found {
			out = append(out, fmt.Sprintf("cheat %s: no level with prefix %q", letter, cheat.Prefix))
		}
	}
	return out
}
