package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"cubeviz/demo"
	"cubeviz/scene"
)

func main() {
	var (
		name = flag.String("scene", "", "Only dump the named scene.")
		edge = flag.Float64("edge", 1, "Cube edge length before transforms.")
	)
	flag.Parse()

	w := bufio.NewWriter(os.Stdout)
	if err := dump(w, *name, *edge); err != nil {
		fatalf("cubedump: %v", err)
	}
	if err := w.Flush(); err != nil {
		fatalf("cubedump: %v", err)
	}
}

// dump writes the matrix listing and transformed corners of each demo
// scene, or only of the one called name.
func dump(w io.Writer, name string, edge float64) error {
	defs, err := demo.Scenes()
	if err != nil {
		return err
	}
	found := false
	for _, def := range defs {
		if name != "" && !strings.EqualFold(name, def.Name) {
			continue
		}
		found = true
		s, err := scene.New(def.Name, def.Steps, def.Color, scene.WithEdgeLength(edge))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "== %s ==\n%s\n\ncorners:\n", s.Name(), s.Text())
		for i, p := range s.Points() {
			fmt.Fprintf(w, "  %d: (%9.6f, %9.6f, %9.6f)\n", i, p.X, p.Y, p.Z)
		}
		fmt.Fprintln(w)
	}
	if !found {
		return fmt.Errorf("unknown scene %q", name)
	}
	return nil
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
