package reports

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
)

const (
	chartWidth  = 150.0
	chartHeight = 60.0
	pointRadius = 0.9
)

type rgb struct {
	r, g, b int
}

var (
	leanColor = rgb{34, 139, 34}
	fatColor  = rgb{200, 50, 50}
)

// drawEvolutionChart plots lean and fat mass over time with line primitives.
func drawEvolutionChart(pdf *fpdf.Fpdf, tr func(string) string, top float64, points []EvolutionPoint) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(marginLeft, top, tr("Evolução da Composição Corporal"))

	left := marginLeft + 10
	chartTop := top + 6
	bottom := chartTop + chartHeight

	minY, maxY := valueRange(points)

	// axes
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(left, chartTop, left, bottom)
	pdf.Line(left, bottom, left+chartWidth, bottom)

	// y ticks
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetLineWidth(0.1)
	for i := 0; i <= 4; i++ {
		v := minY + (maxY-minY)*float64(i)/4
		y := bottom - chartHeight*float64(i)/4
		if i > 0 {
			pdf.Line(left, y, left+chartWidth, y)
		}
		pdf.Text(marginLeft-2, y+1, fmt.Sprintf("%.0f kg", v))
	}

	xAt := func(i int) float64 {
		if len(points) == 1 {
			return left + chartWidth/2
		}
		return left + 5 + (chartWidth-10)*float64(i)/float64(len(points)-1)
	}
	yAt := func(v float64) float64 {
		return bottom - (v-minY)/(maxY-minY)*chartHeight
	}

	drawSeries(pdf, points, leanColor, xAt, yAt, func(p EvolutionPoint) float64 { return p.LeanMassKg })
	drawSeries(pdf, points, fatColor, xAt, yAt, func(p EvolutionPoint) float64 { return p.FatMassKg })

	// x labels
	pdf.SetFont("Helvetica", "", 7)
	for i, p := range points {
		pdf.Text(xAt(i)-3.5, bottom+4, p.Date.Format("02/01"))
	}

	// legend
	legendY := bottom + 10
	drawLegendItem(pdf, tr, left, legendY, leanColor, "Massa Magra")
	drawLegendItem(pdf, tr, left+40, legendY, fatColor, "Massa Gorda")
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(255, 255, 255)
}

func drawSeries(
	pdf *fpdf.Fpdf,
	points []EvolutionPoint,
	c rgb,
	xAt func(int) float64,
	yAt func(float64) float64,
	value func(EvolutionPoint) float64,
) {
	pdf.SetDrawColor(c.r, c.g, c.b)
	pdf.SetFillColor(c.r, c.g, c.b)
	pdf.SetLineWidth(0.5)
	for i := range points {
		x, y := xAt(i), yAt(value(points[i]))
		if i > 0 {
			pdf.Line(xAt(i-1), yAt(value(points[i-1])), x, y)
		}
		pdf.Circle(x, y, pointRadius, "F")
	}
}

func drawLegendItem(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, c rgb, label string) {
	pdf.SetFillColor(c.r, c.g, c.b)
	pdf.Rect(x, y-2.5, 4, 3, "F")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(x+6, y, tr(label))
}

// valueRange returns a padded [min, max] covering both series, never empty.
func valueRange(points []EvolutionPoint) (float64, float64) {
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minV = math.Min(minV, math.Min(p.FatMassKg, p.LeanMassKg))
		maxV = math.Max(maxV, math.Max(p.FatMassKg, p.LeanMassKg))
	}
	if math.IsInf(minV, 0) {
		return 0, 1
	}

	pad := (maxV - minV) * 0.1
	if pad == 0 {
		pad = 1
	}
	lo := math.Floor(minV - pad)
	if lo < 0 {
		lo = 0
	}
	return lo, math.Ceil(maxV + pad)
}
