// SPDX-License-Identifier: MPL-2.0

package atlas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeIcon(t *testing.T, dir, name string, c color.RGBA) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, CellWidth, CellHeight))
	for y := 0; y < CellHeight; y++ {
		for x := 0; x < CellWidth; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".png"), buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestBuild_BlankAlwaysAtCellZero(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeIcon(t, dir, "Wires", color.RGBA{R: 255, A: 255})
	writeIcon(t, dir, "blank", color.RGBA{A: 0})

	a, err := Build(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := a.Coordinate("blank"); got != (Coordinate{}) {
		t.Errorf("blank at %+v, want (0,0)", got)
	}
	if got := a.Coordinate("Wires"); got == (Coordinate{}) {
		t.Errorf("Wires should not share the blank cell: %+v", got)
	}
}

func TestBuild_DirectoryOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeIcon(t, dir, "Alpha", color.RGBA{R: 255, A: 255})
	writeIcon(t, dir, "Bravo", color.RGBA{G: 255, A: 255})
	writeIcon(t, dir, "Charlie", color.RGBA{B: 255, A: 255})

	a, err := Build(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ReadDir yields lexical order; cells follow it after the blank slot.
	want := map[string]Coordinate{
		"Alpha":   {X: 1, Y: 0},
		"Bravo":   {X: 2, Y: 0},
		"Charlie": {X: 3, Y: 0},
	}
	for name, cell := range want {
		if got := a.Coordinate(name); got != cell {
			t.Errorf("%s at %+v, want %+v", name, got, cell)
		}
	}
}

func TestBuild_UnknownNameResolvesToBlank(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeIcon(t, dir, "Wires", color.RGBA{R: 255, A: 255})

	a, err := Build(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Has("Nonexistent") {
		t.Error("Has should be false for a name without an icon")
	}
	if got := a.Coordinate("Nonexistent"); got != (Coordinate{}) {
		t.Errorf("unknown name at %+v, want the blank cell", got)
	}
}

func TestBuild_MissingBlankIconTolerated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeIcon(t, dir, "Wires", color.RGBA{R: 255, A: 255})

	a, err := Build(dir)
	if err != nil {
		t.Fatalf("a missing blank.png should not fail the build: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(a.PNG))
	if err != nil {
		t.Fatalf("decoding sheet: %v", err)
	}
	// Cell 0 stays fully transparent.
	if _, _, _, alpha := img.At(CellWidth/2, CellHeight/2).RGBA(); alpha != 0 {
		t.Errorf("blank cell should be transparent, alpha = %d", alpha)
	}
}

func TestBuild_CorruptIconIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatalf("writing corrupt icon: %v", err)
	}

	if _, err := Build(dir); err == nil {
		t.Fatal("a corrupt icon should fail the whole build")
	}
}

func TestBuild_SheetDimensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// 21 icons plus the blank slot spill into a second row.
	for i := 0; i < 21; i++ {
		writeIcon(t, dir, string(rune('A'+i)), color.RGBA{R: uint8(i * 10), A: 255})
	}

	a, err := Build(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(a.PNG))
	if err != nil {
		t.Fatalf("decoding sheet: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != Columns*CellWidth {
		t.Errorf("sheet width = %d, want %d", bounds.Dx(), Columns*CellWidth)
	}
	if bounds.Dy() != 2*CellHeight {
		t.Errorf("sheet height = %d, want two rows (%d)", bounds.Dy(), 2*CellHeight)
	}
}

func TestBuild_CSSEmbedsSheet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeIcon(t, dir, "Wires", color.RGBA{R: 255, A: 255})

	a, err := Build(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(a.CSS, ".mod-icon{background-image:url(data:image/png;base64,") {
		t.Errorf("CSS rule malformed: %.80s", a.CSS)
	}
	if !strings.HasSuffix(a.CSS, ")}") {
		t.Errorf("CSS rule unterminated: %.40s", a.CSS[len(a.CSS)-40:])
	}
}

func TestBuild_MissingDirectory(t *testing.T) {
	t.Parallel()

	if _, err := Build(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("missing icon directory should fail the build")
	}
}
