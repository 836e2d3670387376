package main

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/snipshot/internal/export"
	"github.com/example/snipshot/internal/extract"
	"github.com/example/snipshot/internal/selection"
)

var errNoAction = errors.New("nothing to do: pass --save, --copy, --export or --search")

type regionOptions struct {
	rect   string
	scale  string
	input  string
	save   string
	copy   bool
	export bool
	search bool
}

func newRegionCmd() *cobra.Command {
	o := &regionOptions{}
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Extract a region without opening the view",
		Long: `Applies a selection given on the command line to a screen grab or to
--input and runs the requested actions in order: save, copy, export.

--rect is in canvas units. --scale is the ratio of capture pixels to canvas
units, either one value for both axes or "sx,sy".`,
		Example: `  snipshot region --rect 10,10,200,100 --save out.png
  snipshot region --input shot.png --rect 0,0,50,50 --scale 2 --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error { return runRegion(cmd, o) },
	}
	f := cmd.Flags()
	f.StringVar(&o.rect, "rect", "", "selection as left,top,width,height")
	f.StringVar(&o.scale, "scale", "1", "capture pixels per canvas unit: s or sx,sy")
	f.StringVar(&o.input, "input", "", "use an image file instead of grabbing the screen")
	f.StringVar(&o.save, "save", "", "save the selection to this path; the extension picks the format")
	f.BoolVar(&o.copy, "copy", false, "copy the selection to the clipboard")
	f.BoolVar(&o.export, "export", false, "hand the selection to the export window")
	f.BoolVar(&o.search, "search", false, "hand the selection to the export window for search")
	addSaveFlags(cmd)
	return cmd
}

func runRegion(cmd *cobra.Command, o *regionOptions) error {
	if o.save == "" && !o.copy && !o.export && !o.search {
		return errNoAction
	}
	sel, err := parseRect(o.rect)
	if err != nil {
		return err
	}
	scale, err := parseScale(o.scale)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	buf, err := a.buffer(o.input)
	if err != nil {
		return err
	}

	c := a.coordinator(export.PathDialog{Path: o.save}, buf.ScreenRect())
	out := cmd.OutOrStdout()
	c.AddObserver(export.ObserverFuncs{
		OnSaved: func(path string, img image.Image) {
			fmt.Fprintf(out, "saved %s (%dx%d)\n", path, img.Bounds().Dx(), img.Bounds().Dy())
		},
		OnCopied: func(img image.Image) {
			fmt.Fprintf(out, "copied %dx%d\n", img.Bounds().Dx(), img.Bounds().Dy())
		},
		OnExported: func(img image.Image, destination bool) {
			queue := "upload"
			if destination {
				queue = "search"
			}
			fmt.Fprintf(out, "queued %dx%d for %s\n", img.Bounds().Dx(), img.Bounds().Dy(), queue)
		},
	})

	s := export.NewSession(c, buf)
	s.Region.Set(sel)
	s.Scale = scale

	if o.save != "" {
		if err := s.Save(); err != nil {
			return err
		}
	}
	if o.copy {
		if err := s.Copy(); err != nil {
			return err
		}
	}
	if o.export {
		if err := s.Export(false); err != nil {
			return err
		}
	}
	if o.search {
		if err := s.Export(true); err != nil {
			return err
		}
	}
	return nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%q is not a finite non-negative number", p)
		}
		out[i] = v
	}
	return out, nil
}

// parseRect reads "left,top,width,height".
func parseRect(s string) (selection.Transform, error) {
	if strings.TrimSpace(s) == "" {
		return selection.Transform{}, fmt.Errorf("--rect is required")
	}
	v, err := parseFloats(s)
	if err != nil {
		return selection.Transform{}, fmt.Errorf("invalid --rect %q: %w", s, err)
	}
	if len(v) != 4 {
		return selection.Transform{}, fmt.Errorf("invalid --rect %q: want left,top,width,height", s)
	}
	return selection.Transform{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}, nil
}

// parseScale reads "s" or "sx,sy".
func parseScale(s string) (extract.Scale, error) {
	v, err := parseFloats(s)
	if err != nil {
		return extract.Scale{}, fmt.Errorf("invalid --scale %q: %w", s, err)
	}
	var sc extract.Scale
	switch len(v) {
	case 1:
		sc = extract.Scale{X: v[0], Y: v[0]}
	case 2:
		sc = extract.Scale{X: v[0], Y: v[1]}
	default:
		return extract.Scale{}, fmt.Errorf("invalid --scale %q: want s or sx,sy", s)
	}
	if sc.X == 0 || sc.Y == 0 {
		return extract.Scale{}, fmt.Errorf("invalid --scale %q: must be positive", s)
	}
	return sc, nil
}
