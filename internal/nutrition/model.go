package nutrition

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/gymapi/internal/reports"
)

var ErrInvalidPlan = errors.New("invalid plan")

type Food struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

type Meal struct {
	ID                int    `json:"id,omitempty"`
	Title             string `json:"title"`
	EstimatedCalories int    `json:"estimatedCalories"`
	Foods             []Food `json:"foods"`
}

type Plan struct {
	ID                int       `json:"id"`
	StudentID         int       `json:"studentId"`
	StudentName       string    `json:"studentName"`
	NutritionistID    int       `json:"nutritionistId"`
	NutritionistName  string    `json:"nutritionistName"`
	NutritionistEmail string    `json:"nutritionistEmail"`
	NutritionistPhone string    `json:"nutritionistPhone,omitempty"`
	NutritionistCRN   string    `json:"nutritionistCrn,omitempty"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	Meals             []Meal    `json:"meals"`
}

// PlanSummary is a list item: the plan header and its first meal title.
type PlanSummary struct {
	ID               int       `json:"id"`
	StudentID        int       `json:"studentId"`
	StudentName      string    `json:"studentName"`
	NutritionistName string    `json:"nutritionistName"`
	CreatedAt        time.Time `json:"createdAt"`
	FirstMealTitle   string    `json:"firstMealTitle"`
	TotalCalories    int       `json:"totalCalories"`
}

type FoodRequest struct {
	Name  string   `json:"name"`
	Grams *float64 `json:"grams"`
}

type MealRequest struct {
	Title             string        `json:"title"`
	EstimatedCalories int           `json:"estimatedCalories"`
	Foods             []FoodRequest `json:"foods"`
}

type PlanRequest struct {
	StudentID int           `json:"studentId"`
	Meals     []MealRequest `json:"meals"`
}

// ValidMeals returns the meals to store. Foods without a name or with non-positive
// grams are dropped; a plan without meals or with an untitled meal is rejected.
func (r PlanRequest) ValidMeals() ([]Meal, error) {
	if len(r.Meals) == 0 {
		return nil, fmt.Errorf("%w: meals are required", ErrInvalidPlan)
	}

	meals := make([]Meal, 0, len(r.Meals))
	for _, mr := range r.Meals {
		title := strings.TrimSpace(mr.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: meal title is required", ErrInvalidPlan)
		}
		if mr.EstimatedCalories < 0 {
			return nil, fmt.Errorf("%w: estimated calories cannot be negative", ErrInvalidPlan)
		}

		meal := Meal{
			Title:             title,
			EstimatedCalories: mr.EstimatedCalories,
			Foods:             []Food{},
		}
		for _, fr := range mr.Foods {
			name := strings.TrimSpace(fr.Name)
			if name == "" || fr.Grams == nil || *fr.Grams <= 0 {
				continue
			}
			meal.Foods = append(meal.Foods, Food{Name: name, Grams: *fr.Grams})
		}
		meals = append(meals, meal)
	}

	return meals, nil
}

func (p Plan) toReport() reports.MealPlanReport {
	r := reports.MealPlanReport{
		PlanID:            p.ID,
		Version:           p.UpdatedAt,
		StudentName:       p.StudentName,
		NutritionistName:  p.NutritionistName,
		NutritionistEmail: p.NutritionistEmail,
		NutritionistPhone: p.NutritionistPhone,
		CreatedAt:         p.CreatedAt,
	}
	for _, m := range p.Meals {
		meal := reports.Meal{
			Title:             m.Title,
			EstimatedCalories: m.EstimatedCalories,
		}
		for _, f := range m.Foods {
			meal.Foods = append(meal.Foods, reports.Food{Name: f.Name, Grams: f.Grams})
		}
		r.Meals = append(r.Meals, meal)
	}
	return r
}
