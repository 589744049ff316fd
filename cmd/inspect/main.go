// Command inspect is an external devtools consumer of reactive.Hooks:
// it watches a graph from the outside and renders a live node table,
// the kind of integration the core itself deliberately stays out of.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/flowgraph/reactive"
	"github.com/flowgraph/reactive/internal/reportview"
)

// nodeInfo is what the inspector remembers about a node purely from
// watching hook callbacks; it never reaches into the graph itself.
type nodeInfo struct {
	id      uint64
	kind    string
	label   string
	version uint64
}

type inspector struct {
	nodes map[uint64]*nodeInfo
	order []uint64
}

func newInspector() *inspector {
	return &inspector{nodes: make(map[uint64]*nodeInfo)}
}

func (in *inspector) created(kind string) func(id uint64, label string) {
	return func(id uint64, label string) {
		in.nodes[id] = &nodeInfo{id: id, kind: kind, label: label}
		in.order = append(in.order, id)
	}
}

func (in *inspector) updated(id uint64, label string, _ any) {
	if n, ok := in.nodes[id]; ok {
		n.version++
	}
}

func (in *inspector) called(id uint64, label string) {
	if n, ok := in.nodes[id]; ok {
		n.version++
	}
}

// tag returns a short, stable per-label fingerprint, used to spot two
// differently-numbered nodes that share a label (a common sign of a
// rebuilt subgraph) without comparing the full label strings.
func tag(label string) string {
	if label == "" {
		return "--------"
	}
	h := xxhash.Sum64String(label)
	return fmt.Sprintf("%08x", uint32(h))
}

// reachableFrom walks a node set by id, deduplicating visited ids with
// a set instead of a map literal, matching the rest of this command's
// use of golang-set for membership tracking.
func reachableFrom(ids []uint64) mapset.Set[uint64] {
	seen := mapset.NewSet[uint64]()
	for _, id := range ids {
		seen.Add(id)
	}
	return seen
}

func main() {
	cmd := &cli.Command{
		Name:  "inspect",
		Usage: "watch a demo reactive graph and render its node table",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "html", Usage: "path to also write an HTML snapshot to"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(c.String("html"))
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(htmlPath string) error {
	g := reactive.NewGraph()
	in := newInspector()
	g.SetHooks(reactive.Hooks{
		OnSignalCreated:   in.created("signal"),
		OnComputedCreated: in.created("computed"),
		OnEffectCreated:   in.created("effect"),
		OnSignalUpdated:   in.updated,
		OnComputedUpdated: in.updated,
		OnEffectCalled:    in.called,
	})

	demo(g)

	seen := reachableFrom(in.order)
	ids := seen.ToSlice()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"id", "tag", "kind", "label", "version"})

	var rows []reportview.Row
	for _, id := range ids {
		n := in.nodes[id]
		tbl.AppendRow(table.Row{n.id, tag(n.label), n.kind, n.label, n.version})
		rows = append(rows, reportview.Row{ID: n.id, Kind: n.kind, Label: n.label, Tag: tag(n.label), Version: n.version})
	}
	tbl.Render()

	if htmlPath != "" {
		f, err := os.Create(htmlPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := reportview.Render(f, rows); err != nil {
			return err
		}
		log.Printf("wrote %s", htmlPath)
	}
	return nil
}

// demo builds a small signal/computed/effect graph and drives a few
// writes through it so there is something for the hooks to observe.
func demo(g *reactive.Graph) {
	width := reactive.NewSignal(g, 3, reactive.WithLabel("width"))
	height := reactive.NewSignal(g, 4, reactive.WithLabel("height"))
	area := reactive.NewComputed(g, func(int) int {
		return width.Read() * height.Read()
	}, reactive.WithLabel("area"))
	perimeter := reactive.NewComputed(g, func(int) int {
		return 2 * (width.Read() + height.Read())
	}, reactive.WithLabel("perimeter"))

	eff, err := reactive.NewEffect(g, func() func() {
		area.Read()
		perimeter.Read()
		return nil
	}, reactive.WithLabel("report"))
	if err != nil {
		log.Printf("demo effect failed: %v", err)
		return
	}
	defer eff.Dispose()

	_ = width.Write(5)
	_ = height.Write(6)
}
