package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"floorplan-annotator/internal/annotation"
	"floorplan-annotator/pkg/geometry"
)

// polyList collects repeated -poly flags.
type polyList []string

func (p *polyList) String() string { return strings.Join(*p, "; ") }

func (p *polyList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// scene describes what to draw on top of the plan.
type scene struct {
	Outlines [][]geometry.Point2D
	Statuses []annotation.Status
	Select   int // 1-based index into Outlines, 0 for none
	Draft    []geometry.Point2D
	Hover    *geometry.Point2D
}

// parsePoint parses "x,y".
func parsePoint(s string) (geometry.Point2D, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return geometry.Point2D{}, fmt.Errorf("point %q: expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("point %q: %w", s, err)
	}
	return geometry.NewPoint2D(x, y), nil
}

// parsePoints parses a space separated list of "x,y" pairs.
func parsePoints(s string) ([]geometry.Point2D, error) {
	var pts []geometry.Point2D
	for _, field := range strings.Fields(s) {
		p, err := parsePoint(field)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// parseStatuses parses a comma separated status list. Empty entries keep the
// default status.
func parseStatuses(s string) ([]annotation.Status, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []annotation.Status
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			out = append(out, annotation.StatusAvailable)
			continue
		}
		st, err := annotation.ParseStatus(field)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// apply replays the scene through the store's public operations.
func (sc scene) apply(store *annotation.Store, img image.Image) error {
	if !store.LoadImage(img) {
		return fmt.Errorf("no plan image")
	}

	var ids []string
	for i, pts := range sc.Outlines {
		store.BeginPolygon()
		for _, p := range pts {
			store.AddPoint(p)
		}
		poly, ok := store.FinishPolygon()
		if !ok {
			return fmt.Errorf("outline %d: need at least %d points, got %d", i+1, annotation.MinPoints, len(pts))
		}
		ids = append(ids, poly.ID)
	}

	for i, st := range sc.Statuses {
		if i >= len(ids) {
			return fmt.Errorf("status %d given for %d outlines", i+1, len(ids))
		}
		store.SelectByID(ids[i])
		store.SetSelectedStatus(st)
	}
	store.ClearSelection()

	if sc.Select != 0 {
		if sc.Select < 0 || sc.Select > len(ids) {
			return fmt.Errorf("select %d: only %d outlines", sc.Select, len(ids))
		}
		store.SelectByID(ids[sc.Select-1])
	}

	if len(sc.Draft) > 0 || sc.Hover != nil {
		store.BeginPolygon()
		for _, p := range sc.Draft {
			store.AddPoint(p)
		}
		if sc.Hover != nil {
			store.SetHover(sc.Hover)
		}
	}
	return nil
}
