// Package plot renders cost-vs-iteration scatter plots for parsed log
// sections.
package plot

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"codeberg.org/iklabib/benchmon/costlog"
	"codeberg.org/iklabib/benchmon/util"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const size = 6 * vg.Inch

// Scatter writes <dir>/<case>.png. It returns an empty path when the section
// has no points.
func Scatter(section costlog.Section, dir string) (string, error) {
	if len(section.Points) == 0 {
		return "", nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cost vs Iteration for %s", section.Case)
	p.X.Label.Text = "Iteration Number"
	p.Y.Label.Text = "Cost"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(section.Points))
	for i, pt := range section.Points {
		xys[i].X = float64(pt.Iteration)
		xys[i].Y = float64(pt.Cost)
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return "", fmt.Errorf("case %s: %w", section.Case, err)
	}
	scatter.GlyphStyle.Radius = vg.Points(1)

	p.Add(scatter)
	p.Legend.Add(section.Case, scatter)
	p.Legend.Top = true

	path := filepath.Join(dir, section.Case+".png")
	if err := p.Save(size, size, path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}

	return path, nil
}

// RenderAll draws every section with points, a few at a time. The returned
// paths follow the section order; sections without points are skipped.
func RenderAll(ctx context.Context, sections []costlog.Section, dir string) ([]string, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, err
	}

	paths := make([]string, len(sections))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, section := range sections {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := Scatter(section, dir)
			paths[i] = path
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := paths[:0]
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
