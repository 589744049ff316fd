// Command bench measures write-to-effect propagation latency across a
// grid of dependency-chain widths and heights.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/flowgraph/reactive"
)

func main() {
	cmd := &cli.Command{
		Name:  "bench",
		Usage: "benchmark signal propagation latency across a grid of chain widths/heights",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "min-width", Value: 1},
			&cli.IntFlag{Name: "max-width", Value: 1000},
			&cli.IntFlag{Name: "min-height", Value: 1},
			&cli.IntFlag{Name: "max-height", Value: 1000},
			&cli.IntFlag{Name: "iterations", Aliases: []string{"n"}, Value: 100},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(gridConfig{
				widths:     logScale(c.Int("min-width"), c.Int("max-width")),
				heights:    logScale(c.Int("min-height"), c.Int("max-height")),
				iterations: int(c.Int("iterations")),
			})
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type gridConfig struct {
	widths, heights []int
	iterations      int
}

func logScale(min, max int64) []int {
	var out []int
	for v := min; v <= max; v *= 10 {
		out = append(out, int(v))
		if v == 0 {
			break
		}
	}
	return out
}

type gridResult struct {
	width, height int
	calc          *tachymeter.Metrics
}

// run builds, for every (width, height) pair, width independent chains
// of height computeds each feeding one effect, then times `iterations`
// writes to the chains' shared source signal.
func run(cfg gridConfig) error {
	tbl := table.NewWriter()
	tbl.SetTitle("reactive propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"shape", "avg", "min", "p75", "p99", "max"})

	var results []gridResult

	for _, w := range cfg.widths {
		for _, h := range cfg.heights {
			g := reactive.NewGraph()
			src := reactive.NewSignal(g, 1)

			var effects []*reactive.Effect
			for i := 0; i < w; i++ {
				var last *reactive.Computed[int]
				var prev any = src
				for j := 0; j < h; j++ {
					p := prev
					c := reactive.NewComputed(g, func(int) int {
						if cc, ok := p.(*reactive.Computed[int]); ok {
							return cc.Read() + 1
						}
						return p.(*reactive.Signal[int]).Read() + 1
					})
					last = c
					prev = c
				}
				l := last
				eff, err := reactive.NewEffect(g, func() func() {
					if l != nil {
						l.Read()
					} else {
						src.Read()
					}
					return nil
				})
				if err != nil {
					return err
				}
				effects = append(effects, eff)
			}

			tach := tachymeter.New(&tachymeter.Config{Size: cfg.iterations})
			for i := 0; i < cfg.iterations; i++ {
				start := time.Now()
				if err := src.Write(src.Read() + 1); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}

			for _, eff := range effects {
				eff.Dispose()
			}

			calc := tach.Calc()
			results = append(results, gridResult{width: w, height: h, calc: calc})
			tbl.AppendRow(table.Row{
				fmt.Sprintf("%d x %d", w, h),
				calc.Time.Avg, calc.Time.Min, calc.Time.P75, calc.Time.P99, calc.Time.Max,
			})
		}
	}
	tbl.Render()

	renderSummary(results)
	return nil
}

// renderSummary re-renders the same results through tablewriter with
// humanized throughput numbers, a second table idiom alongside go-pretty
// above so both rendering styles get exercised.
func renderSummary(results []gridResult) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"shape", "nodes", "writes/sec"})

	for _, r := range results {
		nodes := r.width * r.height
		perSec := float64(time.Second) / float64(r.calc.Time.Avg)
		tw.Append([]string{
			fmt.Sprintf("%d x %d", r.width, r.height),
			humanize.Comma(int64(nodes)),
			humanize.Comma(int64(perSec)),
		})
	}
	tw.Render()
}
