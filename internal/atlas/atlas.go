// SPDX-License-Identifier: MPL-2.0

// Package atlas composites the per-module icon images into one fixed-grid
// sprite sheet.
//
// The grid has a constant number of columns; the row count grows with the
// icon count. Cell 0 is reserved for the blank icon regardless of filename
// ordering, so any name that has no icon of its own can safely resolve to
// grid cell (0,0). The output is the flattened PNG, a one-line stylesheet
// rule embedding it as a data URI, and the per-name coordinate table.
package atlas

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Columns is the fixed grid width of the sprite sheet.
	Columns = 20
	// CellWidth and CellHeight are the icon cell dimensions in pixels.
	CellWidth  = 32
	CellHeight = 32

	// blankIconName is the base name of the reserved cell-0 icon.
	blankIconName = "blank"
)

type (
	// Coordinate is a grid cell in the sprite sheet. The zero value is the
	// blank icon.
	Coordinate struct {
		X int
		Y int
	}

	// Atlas is the composited sprite sheet plus its coordinate table.
	Atlas struct {
		// PNG is the flattened composite image.
		PNG []byte
		// CSS is the one-line stylesheet rule embedding PNG as a data URI.
		CSS string

		coords map[string]Coordinate
	}
)

// Coordinate returns the grid cell for an icon base name. Names with no icon
// resolve to (0,0), the blank icon.
func (a *Atlas) Coordinate(name string) Coordinate {
	return a.coords[name]
}

// Has reports whether name has an icon of its own in the sheet.
func (a *Atlas) Has(name string) bool {
	_, ok := a.coords[name]
	return ok
}

// Build composites every *.png in iconDir into the sprite sheet. The blank
// icon is drawn at cell 0 (its cell stays transparent when blank.png is
// absent); all other icons follow in directory order. Unlike descriptor
// loading, any failure here is fatal to the whole run: a broken sheet would
// mislabel every module icon.
func Build(iconDir string) (*Atlas, error) {
	dirEntries, err := os.ReadDir(iconDir)
	if err != nil {
		return nil, fmt.Errorf("reading icon directory: %w", err)
	}

	// Cell 0 is always the blank icon, present or not.
	names := []string{blankIconName}
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".png") {
			continue
		}
		base := strings.TrimSuffix(de.Name(), ".png")
		if base == blankIconName {
			continue
		}
		names = append(names, base)
	}

	rows := (len(names) + Columns - 1) / Columns
	dst := image.NewRGBA(image.Rect(0, 0, Columns*CellWidth, rows*CellHeight))
	coords := make(map[string]Coordinate, len(names))

	for i, name := range names {
		cell := Coordinate{X: i % Columns, Y: i / Columns}
		coords[name] = cell

		icon, err := readIcon(filepath.Join(iconDir, name+".png"))
		if err != nil {
			if name == blankIconName && os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("icon %s: %w", name, err)
		}

		rect := image.Rect(cell.X*CellWidth, cell.Y*CellHeight,
			(cell.X+1)*CellWidth, (cell.Y+1)*CellHeight)
		draw.Draw(dst, rect, icon, icon.Bounds().Min, draw.Src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding sprite sheet: %w", err)
	}

	return &Atlas{
		PNG:    buf.Bytes(),
		CSS:    cssRule(buf.Bytes()),
		coords: coords,
	}, nil
}

func readIcon(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }() // read-only file

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	return img, nil
}

// cssRule embeds the sheet as an inline data URI so the serving layer ships a
// single payload with no follow-up image request.
func cssRule(pngBytes []byte) string {
	return fmt.Sprintf(".mod-icon{background-image:url(data:image/png;base64,%s)}",
		base64.StdEncoding.EncodeToString(pngBytes))
}
