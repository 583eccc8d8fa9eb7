// Package report renders a learner's progress as a PNG image.
package report

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/korepetytor/internal/stats"
)

const (
	width   = 900
	margin  = 60.0
	rowH    = 40.0
	barMaxW = 360.0
)

var (
	colorTitle  = color.RGBA{0x1f, 0x77, 0xb4, 0xff}
	colorHeader = color.RGBA{0x80, 0x80, 0x80, 0xff}
	colorCell   = color.RGBA{0xf5, 0xf5, 0xdc, 0xff}
	colorGrid   = color.Black
	colorGood   = color.RGBA{0x2c, 0xa0, 0x2c, 0xff}
	colorWeak   = color.RGBA{0xd6, 0x27, 0x28, 0xff}
)

// FileName returns raport_<name>_<YYYYMMDD>.png.
func FileName(student string, at time.Time) string {
	name := strings.Join(strings.Fields(student), "_")
	return fmt.Sprintf("raport_%s_%s.png", name, at.Format("20060102"))
}

type faces struct {
	title, heading, body font.Face
}

func loadFaces() (faces, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return faces{}, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return faces{}, fmt.Errorf("parse bold font: %w", err)
	}
	return faces{
		title:   truetype.NewFace(bold, &truetype.Options{Size: 32, Hinting: font.HintingNone}),
		heading: truetype.NewFace(bold, &truetype.Options{Size: 20, Hinting: font.HintingNone}),
		body:    truetype.NewFace(regular, &truetype.Options{Size: 16, Hinting: font.HintingNone}),
	}, nil
}

// Render draws o as a PNG into w. at is the generation date printed on
// the report.
func Render(w io.Writer, o stats.Overview, at time.Time) error {
	f, err := loadFaces()
	if err != nil {
		return err
	}
	title := cases.Title(language.Polish)

	summary := [][]string{
		{"Wskaźnik", "Wartość"},
		{"Liczba sesji", fmt.Sprint(o.Totals.Sessions)},
		{"Łączna liczba zadań", fmt.Sprint(o.Totals.Attempted)},
		{"Poprawne odpowiedzi", fmt.Sprint(o.Totals.Correct)},
		{"Skuteczność", fmt.Sprintf("%.1f%%", o.Totals.Accuracy()*100)},
	}

	height := margin*2 + 110 + float64(len(summary))*rowH + 40
	if len(o.Topics) > 0 {
		height += 50 + float64(len(o.Topics))*rowH
	}

	dc := gg.NewContext(width, int(height))
	dc.SetColor(color.White)
	dc.DrawRectangle(0, 0, width, height)
	dc.Fill()

	y := margin
	dc.SetFontFace(f.title)
	dc.SetColor(colorTitle)
	dc.DrawStringAnchored("Raport postępów - "+title.String(o.Student), width/2, y, 0.5, 0.5)

	y += 45
	dc.SetFontFace(f.body)
	dc.SetColor(color.Black)
	dc.DrawString("Data wygenerowania: "+at.Format("02.01.2006"), margin, y)

	y += 50
	dc.SetFontFace(f.heading)
	dc.DrawString("Podsumowanie", margin, y)
	y += 15
	y = drawTable(dc, f, summary, []float64{300, 200}, y)

	if len(o.Topics) == 0 {
		return dc.EncodePNG(w)
	}

	y += 40
	dc.SetFontFace(f.heading)
	dc.SetColor(color.Black)
	dc.DrawString("Wyniki według tematów", margin, y)
	y += 20
	for _, t := range o.Topics {
		drawTopicBar(dc, f, title.String(t.Topic), t.Correct, t.Attempted, t.Accuracy(), y)
		y += rowH
	}
	return dc.EncodePNG(w)
}

func drawTable(dc *gg.Context, f faces, rows [][]string, cols []float64, y float64) float64 {
	for i, row := range rows {
		x := margin
		for j, cell := range row {
			fill := colorCell
			if i == 0 {
				fill = colorHeader
			}
			dc.SetColor(fill)
			dc.DrawRectangle(x, y, cols[j], rowH)
			dc.Fill()
			dc.SetColor(colorGrid)
			dc.SetLineWidth(1)
			dc.DrawRectangle(x, y, cols[j], rowH)
			dc.Stroke()

			if i == 0 {
				dc.SetFontFace(f.heading)
				dc.SetColor(color.White)
			} else {
				dc.SetFontFace(f.body)
				dc.SetColor(color.Black)
			}
			dc.DrawStringAnchored(cell, x+cols[j]/2, y+rowH/2, 0.5, 0.35)
			x += cols[j]
		}
		y += rowH
	}
	return y
}

func drawTopicBar(dc *gg.Context, f faces, label string, correct, attempted int, acc float64, y float64) {
	dc.SetFontFace(f.body)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(label, margin, y+rowH/2, 0, 0.35)

	x := margin + 180
	dc.SetColor(colorCell)
	dc.DrawRoundedRectangle(x, y+8, barMaxW, rowH-16, 4)
	dc.Fill()

	bar := colorGood
	if acc < stats.WeakAccuracy {
		bar = colorWeak
	}
	if acc > 0 {
		dc.SetColor(bar)
		dc.DrawRoundedRectangle(x, y+8, barMaxW*acc, rowH-16, 4)
		dc.Fill()
	}

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f%% (%d/%d)", acc*100, correct, attempted),
		x+barMaxW+20, y+rowH/2, 0, 0.35)
}

// Write renders o into dir/FileName(student, at) and returns the path.
func Write(dir string, o stats.Overview, at time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, o, at); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	path := filepath.Join(dir, FileName(o.Student, at))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
