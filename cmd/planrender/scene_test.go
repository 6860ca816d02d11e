package main

import (
	"image"
	"testing"

	"floorplan-annotator/internal/annotation"
	"floorplan-annotator/pkg/geometry"
)

func TestParsePoints(t *testing.T) {
	pts, err := parsePoints(" 0,0  10.5,0 10,-3 ")
	if err != nil {
		t.Fatalf("parsePoints failed: %v", err)
	}
	want := []geometry.Point2D{{X: 0, Y: 0}, {X: 10.5, Y: 0}, {X: 10, Y: -3}}
	if len(pts) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(pts))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}

	for _, bad := range []string{"1", "a,2", "1,b"} {
		if _, err := parsePoints(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseStatuses(t *testing.T) {
	got, err := parseStatuses("sold,,reserved")
	if err != nil {
		t.Fatal(err)
	}
	want := []annotation.Status{annotation.StatusSold, annotation.StatusAvailable, annotation.StatusReserved}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("status %d = %s, want %s", i, got[i], want[i])
		}
	}
	if _, err := parseStatuses("leased"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestSceneApply(t *testing.T) {
	sc, err := buildScene(
		[]string{"0,0 50,0 50,50 0,50", "60,0 90,0 90,30"},
		"reserved,sold",
		2,
		"40,90",
		"10,80 30,80",
	)
	if err != nil {
		t.Fatal(err)
	}
	store := annotation.NewStore()
	if err := sc.apply(store, image.NewRGBA(image.Rect(0, 0, 100, 100))); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Polygons) != 2 {
		t.Fatalf("expected 2 outlines, got %d", len(snap.Polygons))
	}
	if snap.Polygons[0].Status != annotation.StatusReserved || snap.Polygons[1].Status != annotation.StatusSold {
		t.Errorf("unexpected statuses %s, %s", snap.Polygons[0].Status, snap.Polygons[1].Status)
	}
	if !snap.Drawing || len(snap.Current) != 2 || snap.Hover == nil {
		t.Error("expected an in-progress outline with hover")
	}
	// Starting the draft clears the selection, as in the editor.
	if snap.SelectedID != "" {
		t.Error("expected selection cleared by the draft")
	}
}

func TestSceneApplySelection(t *testing.T) {
	sc, _ := buildScene([]string{"0,0 50,0 50,50"}, "", 1, "", "")
	store := annotation.NewStore()
	if err := sc.apply(store, image.NewRGBA(image.Rect(0, 0, 60, 60))); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Snapshot().Selected(); !ok {
		t.Error("expected the outline selected")
	}
}

func TestSceneApplyErrors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	tests := []struct {
		name string
		sc   scene
	}{
		{"short outline", scene{Outlines: [][]geometry.Point2D{{{X: 0, Y: 0}, {X: 1, Y: 1}}}}},
		{"too many statuses", scene{Statuses: []annotation.Status{annotation.StatusSold}}},
		{"select out of range", scene{Select: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sc.apply(annotation.NewStore(), img); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
