package assessments

import (
	"strings"
	"time"

	"github.com/2beens/gymapi/internal/bodycomp"
	"github.com/2beens/gymapi/internal/reports"
)

// Skinfolds in millimeters; the six sites used by the density equation.
type Skinfolds struct {
	Chest       *float64 `json:"chest"`
	Triceps     *float64 `json:"triceps"`
	Subscapular *float64 `json:"subscapular"`
	Biceps      *float64 `json:"biceps"`
	Midaxillary *float64 `json:"midaxillary"`
	Suprailiac  *float64 `json:"suprailiac"`
}

// Circumferences in centimeters. All optional.
type Circumferences struct {
	Neck           *float64 `json:"neck,omitempty"`
	Shoulder       *float64 `json:"shoulder,omitempty"`
	Chest          *float64 `json:"chest,omitempty"`
	Waist          *float64 `json:"waist,omitempty"`
	Abdomen        *float64 `json:"abdomen,omitempty"`
	Hip            *float64 `json:"hip,omitempty"`
	RightArm       *float64 `json:"rightArm,omitempty"`
	LeftArm        *float64 `json:"leftArm,omitempty"`
	RightArmFlexed *float64 `json:"rightArmFlexed,omitempty"`
	LeftArmFlexed  *float64 `json:"leftArmFlexed,omitempty"`
	RightForearm   *float64 `json:"rightForearm,omitempty"`
	LeftForearm    *float64 `json:"leftForearm,omitempty"`
	RightThigh     *float64 `json:"rightThigh,omitempty"`
	LeftThigh      *float64 `json:"leftThigh,omitempty"`
	RightCalf      *float64 `json:"rightCalf,omitempty"`
	LeftCalf       *float64 `json:"leftCalf,omitempty"`
}

// Request is the body of create and update calls.
type Request struct {
	StudentID      int            `json:"studentId"`
	AssessedAt     *time.Time     `json:"assessedAt,omitempty"`
	Age            *int           `json:"age"`
	Weight         *float64       `json:"weight"`
	Height         *float64       `json:"height"`
	Skinfolds      Skinfolds      `json:"skinfolds"`
	Circumferences Circumferences `json:"circumferences"`
	Notes          string         `json:"notes"`
}

func (r Request) Input() bodycomp.Input {
	return bodycomp.Input{
		WeightKg:    r.Weight,
		HeightM:     r.Height,
		AgeYears:    r.Age,
		Chest:       r.Skinfolds.Chest,
		Triceps:     r.Skinfolds.Triceps,
		Subscapular: r.Skinfolds.Subscapular,
		Biceps:      r.Skinfolds.Biceps,
		Midaxillary: r.Skinfolds.Midaxillary,
		Suprailiac:  r.Skinfolds.Suprailiac,
	}
}

type Assessment struct {
	ID               int             `json:"id"`
	StudentID        int             `json:"studentId"`
	StudentName      string          `json:"studentName,omitempty"`
	ProfessionalID   int             `json:"professionalId"`
	ProfessionalName string          `json:"professionalName,omitempty"`
	AssessedAt       time.Time       `json:"assessedAt"`
	Age              int             `json:"age"`
	Weight           float64         `json:"weight"`
	Height           float64         `json:"height"`
	Skinfolds        Skinfolds       `json:"skinfolds"`
	Circumferences   Circumferences  `json:"circumferences"`
	Notes            string          `json:"notes"`
	Result           bodycomp.Result `json:"result"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// newAssessment builds the stored assessment from a validated request and its result.
func newAssessment(req Request, professionalID int, result bodycomp.Result, now time.Time) Assessment {
	assessedAt := now
	if req.AssessedAt != nil && !req.AssessedAt.IsZero() {
		assessedAt = *req.AssessedAt
	}
	return Assessment{
		StudentID:      req.StudentID,
		ProfessionalID: professionalID,
		AssessedAt:     assessedAt,
		Age:            *req.Age,
		Weight:         *req.Weight,
		Height:         *req.Height,
		Skinfolds:      req.Skinfolds,
		Circumferences: req.Circumferences,
		Notes:          strings.TrimSpace(req.Notes),
		Result:         result,
	}
}

type EvolutionPoint struct {
	AssessmentID   int            `json:"assessmentId"`
	AssessedAt     time.Time      `json:"assessedAt"`
	Weight         float64        `json:"weight"`
	BMI            float64        `json:"bmi"`
	FatPercent     float64        `json:"fatPercent"`
	FatMassKg      float64        `json:"fatMass"`
	LeanMassKg     float64        `json:"leanMass"`
	Skinfolds      Skinfolds      `json:"skinfolds"`
	Circumferences Circumferences `json:"circumferences"`
}

type Evolution struct {
	StudentID   int              `json:"studentId"`
	StudentName string           `json:"studentName"`
	Points      []EvolutionPoint `json:"points"`
}

func evolutionPoint(a Assessment) EvolutionPoint {
	return EvolutionPoint{
		AssessmentID:   a.ID,
		AssessedAt:     a.AssessedAt,
		Weight:         a.Weight,
		BMI:            a.Result.BMI,
		FatPercent:     a.Result.FatPercent,
		FatMassKg:      a.Result.FatMassKg,
		LeanMassKg:     a.Result.LeanMassKg,
		Skinfolds:      a.Skinfolds,
		Circumferences: a.Circumferences,
	}
}

// toReport maps an assessment and the student's history to the printable report.
func toReport(a Assessment, history []Assessment) reports.AssessmentReport {
	r := reports.AssessmentReport{
		AssessmentID:     a.ID,
		Version:          a.UpdatedAt,
		StudentName:      a.StudentName,
		ProfessionalName: a.ProfessionalName,
		AssessedAt:       a.AssessedAt,
		WeightKg:         a.Weight,
		HeightM:          a.Height,
		BMI:              a.Result.BMI,
		FatPercent:       a.Result.FatPercent,
		FatMassKg:        a.Result.FatMassKg,
		LeanMassKg:       a.Result.LeanMassKg,
		PlausibleDensity: a.Result.PlausibleDensity,
		Skinfolds:        a.Skinfolds.measures(),
		Circumferences:   a.Circumferences.measures(),
		Notes:            a.Notes,
	}
	for _, h := range history {
		r.Evolution = append(r.Evolution, reports.EvolutionPoint{
			Date:       h.AssessedAt,
			FatMassKg:  h.Result.FatMassKg,
			LeanMassKg: h.Result.LeanMassKg,
		})
	}
	return r
}

func (s Skinfolds) measures() []reports.Measure {
	return collectMeasures([]labeled{
		{"Peitoral", s.Chest},
		{"Tríceps", s.Triceps},
		{"Subescapular", s.Subscapular},
		{"Bíceps", s.Biceps},
		{"Axilar média", s.Midaxillary},
		{"Supra-ilíaca", s.Suprailiac},
	})
}

func (c Circumferences) measures() []reports.Measure {
	return collectMeasures([]labeled{
		{"Pescoço", c.Neck},
		{"Ombro", c.Shoulder},
		{"Tórax", c.Chest},
		{"Cintura", c.Waist},
		{"Abdômen", c.Abdomen},
		{"Quadril", c.Hip},
		{"Braço dir.", c.RightArm},
		{"Braço esq.", c.LeftArm},
		{"Braço dir. contr.", c.RightArmFlexed},
		{"Braço esq. contr.", c.LeftArmFlexed},
		{"Antebraço dir.", c.RightForearm},
		{"Antebraço esq.", c.LeftForearm},
		{"Coxa dir.", c.RightThigh},
		{"Coxa esq.", c.LeftThigh},
		{"Panturrilha dir.", c.RightCalf},
		{"Panturrilha esq.", c.LeftCalf},
	})
}

type labeled struct {
	label string
	value *float64
}

func collectMeasures(values []labeled) []reports.Measure {
	var measures []reports.Measure
	for _, v := range values {
		if v.value == nil {
			continue
		}
		measures = append(measures, reports.Measure{Label: v.label, Value: *v.value})
	}
	return measures
}
