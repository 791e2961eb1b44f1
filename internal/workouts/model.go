package workouts

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidWorkout = errors.New("invalid workout")

type Exercise struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscleGroup"`
	Notes       string    `json:"notes"`
	VideoURL    string    `json:"videoUrl"`
	CreatedBy   int       `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ExerciseRequest struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	Notes       string `json:"notes"`
	VideoURL    string `json:"videoUrl"`
}

func (r ExerciseRequest) Exercise(createdBy int) (Exercise, error) {
	e := Exercise{
		Name:        strings.TrimSpace(r.Name),
		MuscleGroup: strings.ToLower(strings.TrimSpace(r.MuscleGroup)),
		Notes:       strings.TrimSpace(r.Notes),
		VideoURL:    strings.TrimSpace(r.VideoURL),
		CreatedBy:   createdBy,
	}
	if e.Name == "" || e.MuscleGroup == "" {
		return Exercise{}, fmt.Errorf("%w: exercise name and muscle group are required", ErrInvalidWorkout)
	}
	return e, nil
}

// Entry is an exercise as prescribed in a workout.
type Entry struct {
	ExerciseID  int    `json:"exerciseId"`
	Name        string `json:"name,omitempty"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	Notes       string `json:"notes"`
}

type Workout struct {
	ID          int       `json:"id"`
	StudentID   int       `json:"studentId"`
	StudentName string    `json:"studentName"`
	TrainerID   int       `json:"trainerId"`
	TrainerName string    `json:"trainerName"`
	Name        string    `json:"name"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Entries     []Entry   `json:"exercises"`
}

type Summary struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// StudentWorkouts groups a trainer's active workouts by student.
type StudentWorkouts struct {
	StudentID   int       `json:"studentId"`
	StudentName string    `json:"studentName"`
	Workouts    []Summary `json:"workouts"`
}

type EntryRequest struct {
	ExerciseID int    `json:"exerciseId"`
	Sets       int    `json:"sets"`
	Reps       string `json:"reps"`
	Notes      string `json:"notes"`
}

type WorkoutRequest struct {
	Name      string         `json:"name"`
	Exercises []EntryRequest `json:"exercises"`
}

type PlanRequest struct {
	StudentID int              `json:"studentId"`
	Workouts  []WorkoutRequest `json:"workouts"`
}

// Valid returns the workout name and its entries.
func (r WorkoutRequest) Valid() (string, []Entry, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return "", nil, fmt.Errorf("%w: workout name is required", ErrInvalidWorkout)
	}
	if len(r.Exercises) == 0 {
		return "", nil, fmt.Errorf("%w: workout %q has no exercises", ErrInvalidWorkout, name)
	}

	entries := make([]Entry, 0, len(r.Exercises))
	for i, er := range r.Exercises {
		if er.ExerciseID <= 0 || er.Sets <= 0 || strings.TrimSpace(er.Reps) == "" {
			return "", nil, fmt.Errorf("%w: exercise %d of %q needs exerciseId, sets and reps", ErrInvalidWorkout, i+1, name)
		}
		entries = append(entries, Entry{
			ExerciseID: er.ExerciseID,
			Sets:       er.Sets,
			Reps:       strings.TrimSpace(er.Reps),
			Notes:      strings.TrimSpace(er.Notes),
		})
	}
	return name, entries, nil
}

// ValidWorkouts skips workouts without a name or exercises, the remaining ones must be valid.
func (r PlanRequest) ValidWorkouts() ([]Workout, error) {
	if r.StudentID <= 0 {
		return nil, fmt.Errorf("%w: studentId is required", ErrInvalidWorkout)
	}

	var result []Workout
	for _, wr := range r.Workouts {
		if strings.TrimSpace(wr.Name) == "" || len(wr.Exercises) == 0 {
			continue
		}
		name, entries, err := wr.Valid()
		if err != nil {
			return nil, err
		}
		result = append(result, Workout{
			StudentID: r.StudentID,
			Name:      name,
			Entries:   entries,
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%w: no workout with a name and exercises", ErrInvalidWorkout)
	}
	return result, nil
}
