package bodycomp

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrMissingMeasurement = errors.New("missing measurement")
	ErrInvalidMeasurement = errors.New("invalid measurement")
)

// MeasurementError names the field that failed validation.
type MeasurementError struct {
	Field string
	Err   error
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Field)
}

func (e *MeasurementError) Unwrap() error {
	return e.Err
}

func missing(field string) error {
	return &MeasurementError{Field: field, Err: ErrMissingMeasurement}
}

func invalid(field string) error {
	return &MeasurementError{Field: field, Err: ErrInvalidMeasurement}
}

type measurements struct {
	weight      float64
	height      float64
	age         int
	skinfoldSum float64
}

func validate(in Input) (measurements, error) {
	var m measurements

	weight, err := positive("weight", in.WeightKg)
	if err != nil {
		return m, err
	}
	if weight > MaxWeightKg {
		return m, invalid("weight")
	}
	height, err := positive("height", in.HeightM)
	if err != nil {
		return m, err
	}
	if height < MinHeightM || height > MaxHeightM {
		return m, invalid("height")
	}

	if in.AgeYears == nil || *in.AgeYears == 0 {
		return m, missing("age")
	}
	if *in.AgeYears < 0 || *in.AgeYears > MaxAgeYears {
		return m, invalid("age")
	}

	skinfolds := []struct {
		field string
		value *float64
	}{
		{"chest", in.Chest},
		{"triceps", in.Triceps},
		{"subscapular", in.Subscapular},
		{"biceps", in.Biceps},
		{"midaxillary", in.Midaxillary},
		{"suprailiac", in.Suprailiac},
	}
	sum := 0.0
	for _, sf := range skinfolds {
		v, err := positive(sf.field, sf.value)
		if err != nil {
			return m, err
		}
		if v > MaxSkinfoldMm {
			return m, invalid(sf.field)
		}
		sum += v
	}

	m.weight = weight
	m.height = height
	m.age = *in.AgeYears
	m.skinfoldSum = sum
	return m, nil
}

func positive(field string, v *float64) (float64, error) {
	if v == nil || *v == 0 {
		return 0, missing(field)
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return 0, invalid(field)
	}
	return *v, nil
}
