package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/pkg"
)

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddExercise(ctx context.Context, e Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercises (name, muscle_group, notes, video_url, created_by)
			VALUES ($1, $2, $3, $4, NULLIF($5, 0))
			RETURNING id, created_at;`,
		e.Name, e.MuscleGroup, e.Notes, e.VideoURL, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", e.ID))
	return &e, nil
}

func (r *Repo) ListExercises(ctx context.Context, muscleGroup string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if muscleGroup != "" {
		span.SetAttributes(attribute.String("params.muscleGroup", muscleGroup))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, muscle_group, notes, video_url, COALESCE(created_by, 0), created_at
			FROM exercises
			WHERE ($1::text = '' OR muscle_group = $1)
			ORDER BY muscle_group, name;`,
		muscleGroup,
	)
	if err != nil {
		return nil, fmt.Errorf("exercises [query]: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Notes, &e.VideoURL, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("exercises [rows scan]: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercises [rows error]: %w", err)
	}
	return exercises, nil
}

// AddPlan stores all workouts of a plan in one transaction and returns their ids.
func (r *Repo) AddPlan(ctx context.Context, studentID, trainerID int, workouts []Workout) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add_plan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("student.id", studentID), attribute.Int("workouts", len(workouts)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = finishTx(ctx, tx, err)
	}()

	ids := make([]int, 0, len(workouts))
	for _, w := range workouts {
		var id int
		err = tx.QueryRow(
			ctx,
			`INSERT INTO workouts (student_id, trainer_id, name, active)
				VALUES ($1, $2, $3, TRUE)
				RETURNING id;`,
			studentID, trainerID, w.Name,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert workout %q: %w", w.Name, err)
		}

		if err = insertEntries(ctx, tx, id, w.Entries); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// Update renames an active workout of the trainer and replaces its exercises.
func (r *Repo) Update(ctx context.Context, id, trainerID int, name string, entries []Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = finishTx(ctx, tx, err)
	}()

	tag, err := tx.Exec(
		ctx,
		`UPDATE workouts SET name = $1, updated_at = NOW()
			WHERE id = $2 AND trainer_id = $3 AND active;`,
		name, id, trainerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	if _, err = tx.Exec(ctx, `DELETE FROM workout_exercises WHERE workout_id = $1;`, id); err != nil {
		return fmt.Errorf("delete workout exercises: %w", err)
	}

	return insertEntries(ctx, tx, id, entries)
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	w := &Workout{}
	err = r.db.QueryRow(
		ctx,
		`SELECT w.id, w.student_id, s.name, w.trainer_id, t.name, w.name, w.active, w.created_at, w.updated_at
			FROM workouts w
			JOIN users s ON s.id = w.student_id
			JOIN users t ON t.id = w.trainer_id
			WHERE w.id = $1 AND w.active;`,
		id,
	).Scan(&w.ID, &w.StudentID, &w.StudentName, &w.TrainerID, &w.TrainerName, &w.Name, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	} else if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT e.id, e.name, e.muscle_group, e.video_url, we.sets, we.reps, we.notes
			FROM workout_exercises we
			JOIN exercises e ON e.id = we.exercise_id
			WHERE we.workout_id = $1
			ORDER BY we.position, we.id;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	w.Entries = []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ExerciseID, &e.Name, &e.MuscleGroup, &e.VideoURL, &e.Sets, &e.Reps, &e.Notes); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.Entries = append(w.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return w, nil
}

// ListByStudent returns the student's active workouts ordered by name.
func (r *Repo) ListByStudent(ctx context.Context, studentID int) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list_by_student")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("student.id", studentID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, created_at
			FROM workouts
			WHERE student_id = $1 AND active
			ORDER BY name, id;`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByTrainer returns the trainer's active workouts grouped by student, optionally
// filtered by a part of the student name.
func (r *Repo) ListByTrainer(ctx context.Context, trainerID int, studentName string) (_ []StudentWorkouts, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list_by_trainer")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("trainer.id", trainerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT s.id, s.name, w.id, w.name, w.created_at
			FROM workouts w
			JOIN users s ON s.id = w.student_id
			WHERE w.trainer_id = $1 AND w.active
				AND s.name ILIKE '%' || $2::text || '%'
			ORDER BY s.name, s.id, w.name;`,
		trainerID, studentName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2studentWorkouts(rows)
}

// Deactivate soft deletes an active workout of the trainer.
func (r *Repo) Deactivate(ctx context.Context, id, trainerID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.deactivate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workouts SET active = FALSE, updated_at = NOW()
			WHERE id = $1 AND trainer_id = $2 AND active;`,
		id, trainerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func insertEntries(ctx context.Context, tx pgx.Tx, workoutID int, entries []Entry) error {
	batch := &pgx.Batch{}
	for i, e := range entries {
		batch.Queue(
			`INSERT INTO workout_exercises (workout_id, exercise_id, position, sets, reps, notes)
				VALUES ($1, $2, $3, $4, $5, $6);`,
			workoutID, e.ExerciseID, i, e.Sets, e.Reps, e.Notes,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrExerciseNotFound
		}
		return fmt.Errorf("insert workout exercises: %w", err)
	}
	return nil
}

func finishTx(ctx context.Context, tx pgx.Tx, err error) error {
	if err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
		}
		return err
	}
	return tx.Commit(ctx)
}

func rows2studentWorkouts(rows pgx.Rows) ([]StudentWorkouts, error) {
	var result []StudentWorkouts
	for rows.Next() {
		var (
			studentID   int
			studentName string
			s           Summary
		)
		if err := rows.Scan(&studentID, &studentName, &s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if len(result) == 0 || result[len(result)-1].StudentID != studentID {
			result = append(result, StudentWorkouts{StudentID: studentID, StudentName: studentName})
		}
		last := &result[len(result)-1]
		last.Workouts = append(last.Workouts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
