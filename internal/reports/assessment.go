package reports

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// A4 portrait, millimeters
const (
	pageWidth  = 210.0
	marginLeft = 20.0
	col2X      = 80.0
	col3X      = 140.0
	lineHeight = 6.0
)

func drawAssessment(pdf *fpdf.Fpdf, r AssessmentReport) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Avaliação Física #%d", r.AssessmentID), true)
	pdf.AddPage()

	drawHeader(pdf, tr, "Relatório de Avaliação Física")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(marginLeft, 40, tr("Aluno: "+r.StudentName))
	pdf.Text(marginLeft, 47, tr("Profissional: "+r.ProfessionalName))
	pdf.Text(marginLeft, 54, tr("Data da Avaliação: "+r.AssessedAt.Format("02/01/2006")))

	// main results
	pdf.SetFont("Helvetica", "", 11)
	y := 66.0
	pdf.Text(marginLeft, y, tr(fmt.Sprintf("Peso: %.2f kg", r.WeightKg)))
	pdf.Text(col2X, y, tr(fmt.Sprintf("Altura: %.2f m", r.HeightM)))
	pdf.Text(col3X, y, tr(fmt.Sprintf("IMC: %.2f", r.BMI)))
	y += lineHeight
	pdf.Text(marginLeft, y, tr(fmt.Sprintf("Gordura: %.2f%%", r.FatPercent)))
	pdf.Text(col2X, y, tr(fmt.Sprintf("Massa Gorda: %.2f kg", r.FatMassKg)))
	pdf.Text(col3X, y, tr(fmt.Sprintf("Massa Magra: %.2f kg", r.LeanMassKg)))
	if !r.PlausibleDensity {
		y += lineHeight
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(180, 30, 30)
		pdf.Text(marginLeft, y, tr("Atenção: densidade corporal fora da faixa esperada, confira as medidas."))
		pdf.SetTextColor(0, 0, 0)
	}

	y += 12
	y = drawMeasures(pdf, tr, y, "Dobras Cutâneas (mm)", r.Skinfolds)
	y += 4
	y = drawMeasures(pdf, tr, y, "Circunferências (cm)", r.Circumferences)

	if notes := strings.TrimSpace(r.Notes); notes != "" {
		y += 4
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(marginLeft, y, tr("Observações"))
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginLeft, y+2)
		pdf.MultiCell(pageWidth-2*marginLeft, 5, tr(notes), "", "L", false)
		y = pdf.GetY()
	}

	if len(r.Evolution) >= 2 {
		chartTop := y + 10
		if chartTop+chartHeight+20 > 297 {
			pdf.AddPage()
			chartTop = 30
		}
		drawEvolutionChart(pdf, tr, chartTop, r.Evolution)
	}

	drawFooter(pdf, tr)
}

// drawMeasures prints the measures three per row and returns the next free y.
func drawMeasures(pdf *fpdf.Fpdf, tr func(string) string, y float64, title string, measures []Measure) float64 {
	if len(measures) == 0 {
		return y
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(marginLeft, y, tr(title))
	y += lineHeight + 1

	pdf.SetFont("Helvetica", "", 10)
	columns := []float64{marginLeft, col2X, col3X}
	for i, m := range measures {
		pdf.Text(columns[i%3], y, tr(fmt.Sprintf("%s: %.1f", m.Label, m.Value)))
		if i%3 == 2 {
			y += lineHeight
		}
	}
	if len(measures)%3 != 0 {
		y += lineHeight
	}
	return y
}

func drawHeader(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(0, 0, pageWidth, 24, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(marginLeft, 15, tr(title))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(col3X+20, 15, tr(gymName))
	pdf.SetTextColor(0, 0, 0)
}

func drawFooter(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.2)
	pdf.Line(marginLeft, 282, pageWidth-marginLeft, 282)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.Text(marginLeft, 287, tr("Documento gerado automaticamente por "+gymName))
	pdf.SetTextColor(0, 0, 0)
}
