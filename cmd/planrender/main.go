// Command planrender draws apartment outlines over a floor plan and writes
// the result as PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"floorplan-annotator/internal/annotation"
	planimage "floorplan-annotator/internal/image"
	"floorplan-annotator/internal/logging"
	"floorplan-annotator/internal/render"
	"floorplan-annotator/internal/version"
)

func main() {
	imagePath := flag.String("image", "", "Path to floor plan image (PNG, JPEG, GIF, TIFF, BMP or WebP)")
	outPath := flag.String("out", "", "Output PNG path")
	var polys polyList
	flag.Var(&polys, "poly", `Outline as "x,y x,y x,y" (repeatable)`)
	statuses := flag.String("status", "", "Comma separated statuses per outline: available, reserved, sold")
	selectN := flag.Int("select", 0, "1-based outline to show as selected")
	hover := flag.String("hover", "", `Pointer position "x,y" for the rubber band`)
	draft := flag.String("draft", "", `In-progress outline as "x,y x,y"`)
	lineWidth := flag.Float64("line-width", render.DefaultOptions().LineWidth, "Outline stroke width")
	labelSize := flag.Float64("label-size", render.DefaultOptions().LabelSize, "Label font size")
	verbose := flag.Bool("v", false, "Log engine events")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *imagePath == "" || *outPath == "" {
		fmt.Println(`Usage: planrender -image <path> -out <out.png> -poly "x,y x,y x,y" [-poly ...] [-status sold,reserved] [-select N] [-hover x,y] [-draft "x,y x,y"]`)
		os.Exit(1)
	}
	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	sc, err := buildScene(polys, *statuses, *selectN, *hover, *draft)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid arguments: %v\n", err)
		os.Exit(1)
	}

	layer, err := planimage.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", layer.Format, layer.Width(), layer.Height())

	store := annotation.NewStore()
	if err := sc.apply(store, layer.Image); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid scene: %v\n", err)
		os.Exit(1)
	}

	opts := render.DefaultOptions()
	opts.LineWidth = *lineWidth
	opts.LabelSize = *labelSize
	r, err := render.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create renderer: %v\n", err)
		os.Exit(1)
	}
	frame := r.Render(store.Snapshot())

	if err := writePNG(*outPath, frame); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	snap := store.Snapshot()
	fmt.Printf("Rendered %d outlines to %s\n", len(snap.Polygons), *outPath)
	for _, p := range snap.Polygons {
		c := p.Centroid()
		marker := ""
		if snap.IsSelected(p.ID) {
			marker = " (selected)"
		}
		fmt.Printf("  %-10s %-10s %3d vertices  centroid (%.1f, %.1f)%s\n",
			p.Number, p.Status.Label(), len(p.Points), c.X, c.Y, marker)
	}
}

func buildScene(polys []string, statuses string, selectN int, hover, draft string) (scene, error) {
	var sc scene
	for _, s := range polys {
		pts, err := parsePoints(s)
		if err != nil {
			return sc, err
		}
		sc.Outlines = append(sc.Outlines, pts)
	}
	st, err := parseStatuses(statuses)
	if err != nil {
		return sc, err
	}
	sc.Statuses = st
	sc.Select = selectN
	if sc.Draft, err = parsePoints(draft); err != nil {
		return sc, err
	}
	if hover != "" {
		p, err := parsePoint(hover)
		if err != nil {
			return sc, err
		}
		sc.Hover = &p
	}
	return sc, nil
}

func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
