package reports

import "time"

// Measure is a single labeled value printed in a report table.
type Measure struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type EvolutionPoint struct {
	Date       time.Time `json:"date"`
	FatMassKg  float64   `json:"fatMass"`
	LeanMassKg float64   `json:"leanMass"`
}

type AssessmentReport struct {
	AssessmentID     int       `json:"assessmentId"`
	Version          time.Time `json:"version"`
	StudentName      string    `json:"studentName"`
	ProfessionalName string    `json:"professionalName"`
	AssessedAt       time.Time `json:"assessedAt"`

	WeightKg   float64 `json:"weight"`
	HeightM    float64 `json:"height"`
	BMI        float64 `json:"bmi"`
	FatPercent float64 `json:"fatPercent"`
	FatMassKg  float64 `json:"fatMass"`
	LeanMassKg float64 `json:"leanMass"`
	// false when the body density falls outside the human range
	PlausibleDensity bool `json:"plausibleDensity"`

	Skinfolds      []Measure `json:"skinfolds"`
	Circumferences []Measure `json:"circumferences"`
	Notes          string    `json:"notes"`

	// chart is drawn only with at least two points
	Evolution []EvolutionPoint `json:"evolution"`
}

func (r AssessmentReport) FileName() string {
	return "avaliacao_" + itoa(r.AssessmentID) + ".pdf"
}

type Food struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

type Meal struct {
	Title             string `json:"title"`
	EstimatedCalories int    `json:"estimatedCalories"`
	Foods             []Food `json:"foods"`
}

type MealPlanReport struct {
	PlanID            int       `json:"planId"`
	Version           time.Time `json:"version"`
	StudentName       string    `json:"studentName"`
	NutritionistName  string    `json:"nutritionistName"`
	NutritionistEmail string    `json:"nutritionistEmail"`
	NutritionistPhone string    `json:"nutritionistPhone"`
	CreatedAt         time.Time `json:"createdAt"`
	Meals             []Meal    `json:"meals"`
}

func (r MealPlanReport) FileName() string {
	return "plano_alimentar_" + itoa(r.PlanID) + ".pdf"
}

func (r MealPlanReport) TotalCalories() int {
	total := 0
	for _, m := range r.Meals {
		total += m.EstimatedCalories
	}
	return total
}
