// Package bodycomp estimates body composition from anthropometric measurements:
// a generalized skinfold body density equation followed by the Siri conversion.
//
// All functions are pure and safe for concurrent use.
package bodycomp

import (
	"math"
)

const (
	// MaxHeightM guards against heights given in centimeters.
	MaxHeightM = 3.0
	MinHeightM = 0.5

	MaxWeightKg   = 500.0
	MaxAgeYears   = 120
	MaxSkinfoldMm = 100.0

	minPlausibleDensity = 1.0
	maxPlausibleDensity = 1.2
)

// Input holds the measurements of a single assessment.
// Heights are meters, skinfolds millimeters. A nil field means "not measured".
type Input struct {
	WeightKg *float64
	HeightM  *float64
	AgeYears *int

	Chest       *float64
	Triceps     *float64
	Subscapular *float64
	Biceps      *float64
	Midaxillary *float64
	Suprailiac  *float64
}

type Result struct {
	BodyDensity      float64 `json:"bodyDensity"`
	FatPercent       float64 `json:"fatPercent"`
	FatMassKg        float64 `json:"fatMass"`
	LeanMassKg       float64 `json:"leanMass"`
	BMI              float64 `json:"bmi"`
	SkinfoldSumMm    float64 `json:"skinfoldSum"`
	PlausibleDensity bool    `json:"plausibleDensity"`
}

// BMI returns weight / height², rounded to two decimals.
// Zero height yields 0 instead of an infinite value.
func BMI(weightKg, heightM float64) float64 {
	if heightM == 0 {
		return 0
	}
	return round2(weightKg / (heightM * heightM))
}

// BodyDensity applies the seven-site equation to the skinfold sum (mm) and age.
// The result is not rounded.
func BodyDensity(sumMm float64, age int) float64 {
	return 1.10938 - 0.0008267*sumMm + 0.0000016*sumMm*sumMm - 0.0002574*float64(age)
}

// FatPercent converts body density to fat percentage (Siri).
func FatPercent(density float64) float64 {
	return round2(495/density - 450)
}

func FatMass(weightKg, fatPercent float64) float64 {
	return round2(weightKg * (fatPercent / 100))
}

func LeanMass(weightKg, fatMassKg float64) float64 {
	return round2(weightKg - fatMassKg)
}

// Evaluate validates the input and runs the whole pipeline:
// skinfold sum, density, fat %, fat mass, lean mass and BMI.
func Evaluate(in Input) (Result, error) {
	m, err := validate(in)
	if err != nil {
		return Result{}, err
	}

	density := BodyDensity(m.skinfoldSum, m.age)
	fatPercent := FatPercent(density)
	fatMass := FatMass(m.weight, fatPercent)

	res := Result{
		BodyDensity:      density,
		FatPercent:       fatPercent,
		FatMassKg:        fatMass,
		LeanMassKg:       LeanMass(m.weight, fatMass),
		BMI:              BMI(m.weight, m.height),
		SkinfoldSumMm:    m.skinfoldSum,
		PlausibleDensity: IsPlausibleDensity(density),
	}
	if field, ok := res.nonFinite(); ok {
		return Result{}, invalid(field)
	}
	return res, nil
}

// nonFinite returns the first derived value that is NaN or infinite.
func (r Result) nonFinite() (string, bool) {
	for _, v := range []struct {
		field string
		value float64
	}{
		{"bodyDensity", r.BodyDensity},
		{"fatPercent", r.FatPercent},
		{"fatMass", r.FatMassKg},
		{"leanMass", r.LeanMassKg},
		{"bmi", r.BMI},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return v.field, true
		}
	}
	return "", false
}

// IsPlausibleDensity reports whether a density (g/cm³) lies in the physiological range.
func IsPlausibleDensity(density float64) bool {
	return density >= minPlausibleDensity && density <= maxPlausibleDensity
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
