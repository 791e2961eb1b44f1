package nutrition

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
	ErrPlanNotFound    = errors.New("plan not found")
	ErrStudentNotFound = errors.New("student not found")
)

// ListParams filters active plans; zero values are ignored.
type ListParams struct {
	StudentID      int
	NutritionistID int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores the plan and its meals in a single transaction.
func (r *Repo) Add(ctx context.Context, studentID, nutritionistID int, meals []Meal) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = finishTx(ctx, tx, err)
	}()

	var planID int
	err = tx.QueryRow(
		ctx,
		`INSERT INTO nutrition_plans (student_id, nutritionist_id, active)
			VALUES ($1, $2, TRUE)
			RETURNING id;`,
		studentID, nutritionistID,
	).Scan(&planID)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return 0, ErrStudentNotFound
		}
		return 0, fmt.Errorf("insert plan: %w", err)
	}

	if err = insertMeals(ctx, tx, planID, meals); err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int("plan.id", planID))
	return planID, nil
}

// ReplaceMeals swaps all meals of an active plan owned by the nutritionist.
func (r *Repo) ReplaceMeals(ctx context.Context, planID, nutritionistID int, meals []Meal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.replacemeals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", planID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = finishTx(ctx, tx, err)
	}()

	tag, err := tx.Exec(
		ctx,
		`UPDATE nutrition_plans SET updated_at = NOW()
			WHERE id = $1 AND nutritionist_id = $2 AND active;`,
		planID, nutritionistID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}

	// meal_foods go with their meals
	if _, err = tx.Exec(ctx, `DELETE FROM meals WHERE plan_id = $1;`, planID); err != nil {
		return fmt.Errorf("delete meals: %w", err)
	}

	return insertMeals(ctx, tx, planID, meals)
}

// Get returns an active plan with its meals and the nutritionist contact.
func (r *Repo) Get(ctx context.Context, id int) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	p := &Plan{}
	err = r.db.QueryRow(
		ctx,
		`SELECT p.id, p.student_id, s.name, p.nutritionist_id, n.name, n.email,
				COALESCE(n.phone, ''), COALESCE(n.crn, ''), p.active, p.created_at, p.updated_at
			FROM nutrition_plans p
			JOIN users s ON s.id = p.student_id
			JOIN users n ON n.id = p.nutritionist_id
			WHERE p.id = $1 AND p.active;`,
		id,
	).Scan(
		&p.ID, &p.StudentID, &p.StudentName, &p.NutritionistID, &p.NutritionistName, &p.NutritionistEmail,
		&p.NutritionistPhone, &p.NutritionistCRN, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	} else if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT m.id, m.title, m.estimated_calories, f.name, f.grams
			FROM meals m
			LEFT JOIN meal_foods f ON f.meal_id = m.id
			WHERE m.plan_id = $1
			ORDER BY m.position, m.id, f.position, f.id;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if p.Meals, err = rows2meals(rows); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns active plan summaries, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []PlanSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT p.id, p.student_id, s.name, n.name, p.created_at,
				COALESCE((SELECT m.title FROM meals m WHERE m.plan_id = p.id ORDER BY m.position LIMIT 1), ''),
				COALESCE((SELECT SUM(m.estimated_calories) FROM meals m WHERE m.plan_id = p.id), 0)
			FROM nutrition_plans p
			JOIN users s ON s.id = p.student_id
			JOIN users n ON n.id = p.nutritionist_id
			WHERE p.active
				AND ($1 = 0 OR p.student_id = $1)
				AND ($2 = 0 OR p.nutritionist_id = $2)
			ORDER BY p.created_at DESC, p.id DESC;`,
		params.StudentID, params.NutritionistID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PlanSummary
	for rows.Next() {
		var s PlanSummary
		if err := rows.Scan(&s.ID, &s.StudentID, &s.StudentName, &s.NutritionistName, &s.CreatedAt, &s.FirstMealTitle, &s.TotalCalories); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Deactivate soft deletes an active plan owned by the nutritionist.
func (r *Repo) Deactivate(ctx context.Context, planID, nutritionistID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.deactivate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", planID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE nutrition_plans SET active = FALSE, updated_at = NOW()
			WHERE id = $1 AND nutritionist_id = $2 AND active;`,
		planID, nutritionistID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func insertMeals(ctx context.Context, tx pgx.Tx, planID int, meals []Meal) error {
	var foodRows [][]any
	for i, m := range meals {
		var mealID int
		if err := tx.QueryRow(
			ctx,
			`INSERT INTO meals (plan_id, position, title, estimated_calories)
				VALUES ($1, $2, $3, $4)
				RETURNING id;`,
			planID, i, m.Title, m.EstimatedCalories,
		).Scan(&mealID); err != nil {
			return fmt.Errorf("insert meal %q: %w", m.Title, err)
		}
		for j, f := range m.Foods {
			foodRows = append(foodRows, []any{mealID, j, f.Name, f.Grams})
		}
	}

	if len(foodRows) == 0 {
		return nil
	}
	if _, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"meal_foods"},
		[]string{"meal_id", "position", "name", "grams"},
		pgx.CopyFromRows(foodRows),
	); err != nil {
		return fmt.Errorf("copy meal foods: %w", err)
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

func rows2meals(rows pgx.Rows) ([]Meal, error) {
	meals := []Meal{}
	for rows.Next() {
		var (
			mealID   int
			title    string
			calories int
			foodName *string
			grams    *float64
		)
		if err := rows.Scan(&mealID, &title, &calories, &foodName, &grams); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if len(meals) == 0 || meals[len(meals)-1].ID != mealID {
			meals = append(meals, Meal{ID: mealID, Title: title, EstimatedCalories: calories, Foods: []Food{}})
		}
		if foodName != nil && grams != nil {
			last := &meals[len(meals)-1]
			last.Foods = append(last.Foods, Food{Name: *foodName, Grams: *grams})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return meals, nil
}
