package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"StrokePad/internal/sketch"
)

// pdfSurface paints onto the current page. Clearing is a no-op: the page
// is blank when the surface is created.
type pdfSurface struct {
	pdf *gofpdf.Fpdf
}

func (s pdfSurface) Clear() {}

func (s pdfSurface) Line(from, to sketch.Pos) {
	s.pdf.Line(from.X, from.Y, to.X, to.Y)
}

// WritePDF replays seq onto a single page the size of the canvas, one
// point per canvas unit.
func WritePDF(w io.Writer, seq sketch.Sequence, width, height float64, style sketch.Style) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("page size %vx%v", width, height)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetTitle("StrokePad drawing", true)
	pdf.SetCreator("StrokePad", true)
	pdf.AddPage()

	r, g, b, _ := style.Color.RGBA()
	pdf.SetDrawColor(int(r>>8), int(g>>8), int(b>>8))
	pdf.SetLineWidth(style.Width)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	sketch.Render(seq, pdfSurface{pdf: pdf}, sketch.Center(width, height))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
