package reports

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

func drawMealPlan(pdf *fpdf.Fpdf, r MealPlanReport) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Plano Alimentar #%d", r.PlanID), true)
	pdf.AddPage()

	drawHeader(pdf, tr, "Plano Alimentar")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(marginLeft, 40, tr("Aluno: "+r.StudentName))
	pdf.Text(marginLeft, 47, tr("Nutricionista: "+r.NutritionistName))
	pdf.Text(marginLeft, 54, tr("Data: "+r.CreatedAt.Format("02/01/2006")))

	contact := r.NutritionistEmail
	if r.NutritionistPhone != "" {
		if contact != "" {
			contact += " | "
		}
		contact += r.NutritionistPhone
	}
	if contact != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(marginLeft, 61, tr("Contato: "+contact))
	}

	pdf.SetY(70)
	contentWidth := pageWidth - 2*marginLeft
	for _, meal := range r.Meals {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(contentWidth-40, 8, tr(meal.Title), "", 0, "L", true, 0, "")
		pdf.CellFormat(40, 8, tr(fmt.Sprintf("~%d kcal", meal.EstimatedCalories)), "", 1, "R", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, food := range meal.Foods {
			pdf.CellFormat(10, 6, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(contentWidth-40, 6, tr("- "+food.Name), "", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.0f g", food.Grams), "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentWidth, 8, tr(fmt.Sprintf("Total estimado: %d kcal", r.TotalCalories())), "T", 1, "R", false, 0, "")

	drawFooter(pdf, tr)
}
