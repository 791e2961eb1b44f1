package assessments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymapi/internal/bodycomp"
	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/pkg"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrStudentNotFound    = errors.New("student not found")
)

const selectAssessments = `SELECT
		a.id, a.student_id, s.name, a.professional_id, p.name, a.assessed_at, a.age, a.weight, a.height,
		a.skinfold_chest, a.skinfold_triceps, a.skinfold_subscapular,
		a.skinfold_biceps, a.skinfold_midaxillary, a.skinfold_suprailiac,
		a.body_density, a.fat_percent, a.fat_mass, a.lean_mass, a.bmi,
		a.neck, a.shoulder, a.chest, a.waist, a.abdomen, a.hip,
		a.right_arm, a.left_arm, a.right_arm_flexed, a.left_arm_flexed,
		a.right_forearm, a.left_forearm, a.right_thigh, a.left_thigh, a.right_calf, a.left_calf,
		a.notes, a.updated_at
	FROM assessments a
	JOIN users s ON s.id = a.student_id
	JOIN users p ON p.id = a.professional_id`

// ListParams filters assessments; zero values are ignored.
type ListParams struct {
	StudentID      int
	ProfessionalID int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, a Assessment) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.assessments.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sf, c, res := a.Skinfolds, a.Circumferences, a.Result
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO assessments (
				student_id, professional_id, assessed_at, age, weight, height,
				skinfold_chest, skinfold_triceps, skinfold_subscapular,
				skinfold_biceps, skinfold_midaxillary, skinfold_suprailiac,
				body_density, fat_percent, fat_mass, lean_mass, bmi,
				neck, shoulder, chest, waist, abdomen, hip,
				right_arm, left_arm, right_arm_flexed, left_arm_flexed,
				right_forearm, left_forearm, right_thigh, left_thigh, right_calf, left_calf,
				notes
			) VALUES (
				$1, $2, $3, $4, $5, $6,
				$7, $8, $9, $10, $11, $12,
				$13, $14, $15, $16, $17,
				$18, $19, $20, $21, $22, $23,
				$24, $25, $26, $27, $28, $29, $30, $31, $32, $33,
				$34
			) RETURNING id, updated_at;`,
		a.StudentID, a.ProfessionalID, a.AssessedAt, a.Age, a.Weight, a.Height,
		sf.Chest, sf.Triceps, sf.Subscapular, sf.Biceps, sf.Midaxillary, sf.Suprailiac,
		res.BodyDensity, res.FatPercent, res.FatMassKg, res.LeanMassKg, res.BMI,
		c.Neck, c.Shoulder, c.Chest, c.Waist, c.Abdomen, c.Hip,
		c.RightArm, c.LeftArm, c.RightArmFlexed, c.LeftArmFlexed,
		c.RightForearm, c.LeftForearm, c.RightThigh, c.LeftThigh, c.RightCalf, c.LeftCalf,
		a.Notes,
	).Scan(&a.ID, &a.UpdatedAt)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("insert assessment: %w", err)
	}

	span.SetAttributes(attribute.Int("assessment.id", a.ID))
	return &a, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.assessments.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(ctx, selectAssessments+` WHERE a.id = $1;`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found, err := rows2assessments(rows)
	if err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, ErrAssessmentNotFound
	}
	return &found[0], nil
}

// List returns matching assessments, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.assessments.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("student.id", params.StudentID),
		attribute.Int("professional.id", params.ProfessionalID),
	)

	rows, err := r.db.Query(
		ctx,
		selectAssessments+`
			WHERE ($1 = 0 OR a.student_id = $1) AND ($2 = 0 OR a.professional_id = $2)
			ORDER BY a.assessed_at DESC, a.id DESC;`,
		params.StudentID, params.ProfessionalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2assessments(rows)
}

// Evolution returns all assessments of a student in chronological order.
func (r *Repo) Evolution(ctx context.Context, studentID int) (_ []Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.assessments.evolution")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("student.id", studentID))

	rows, err := r.db.Query(
		ctx,
		selectAssessments+` WHERE a.student_id = $1 ORDER BY a.assessed_at ASC, a.id ASC;`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2assessments(rows)
}

func (r *Repo) Update(ctx context.Context, a Assessment) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.assessments.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", a.ID))

	sf, c, res := a.Skinfolds, a.Circumferences, a.Result
	err = r.db.QueryRow(
		ctx,
		`UPDATE assessments SET
				assessed_at = $2, age = $3, weight = $4, height = $5,
				skinfold_chest = $6, skinfold_triceps = $7, skinfold_subscapular = $8,
				skinfold_biceps = $9, skinfold_midaxillary = $10, skinfold_suprailiac = $11,
				body_density = $12, fat_percent = $13, fat_mass = $14, lean_mass = $15, bmi = $16,
				neck = $17, shoulder = $18, chest = $19, waist = $20, abdomen = $21, hip = $22,
				right_arm = $23, left_arm = $24, right_arm_flexed = $25, left_arm_flexed = $26,
				right_forearm = $27, left_forearm = $28, right_thigh = $29, left_thigh = $30,
				right_calf = $31, left_calf = $32,
				notes = $33, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at;`,
		a.ID, a.AssessedAt, a.Age, a.Weight, a.Height,
		sf.Chest, sf.Triceps, sf.Subscapular, sf.Biceps, sf.Midaxillary, sf.Suprailiac,
		res.BodyDensity, res.FatPercent, res.FatMassKg, res.LeanMassKg, res.BMI,
		c.Neck, c.Shoulder, c.Chest, c.Waist, c.Abdomen, c.Hip,
		c.RightArm, c.LeftArm, c.RightArmFlexed, c.LeftArmFlexed,
		c.RightForearm, c.LeftForearm, c.RightThigh, c.LeftThigh, c.RightCalf, c.LeftCalf,
		a.Notes,
	).Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAssessmentNotFound
	} else if err != nil {
		return nil, fmt.Errorf("update assessment: %w", err)
	}

	return &a, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.assessments.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM assessments WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssessmentNotFound
	}
	return nil
}

func rows2assessments(rows pgx.Rows) ([]Assessment, error) {
	var result []Assessment
	for rows.Next() {
		var a Assessment
		sf, c, res := &a.Skinfolds, &a.Circumferences, &a.Result
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.StudentName, &a.ProfessionalID, &a.ProfessionalName,
			&a.AssessedAt, &a.Age, &a.Weight, &a.Height,
			&sf.Chest, &sf.Triceps, &sf.Subscapular, &sf.Biceps, &sf.Midaxillary, &sf.Suprailiac,
			&res.BodyDensity, &res.FatPercent, &res.FatMassKg, &res.LeanMassKg, &res.BMI,
			&c.Neck, &c.Shoulder, &c.Chest, &c.Waist, &c.Abdomen, &c.Hip,
			&c.RightArm, &c.LeftArm, &c.RightArmFlexed, &c.LeftArmFlexed,
			&c.RightForearm, &c.LeftForearm, &c.RightThigh, &c.LeftThigh, &c.RightCalf, &c.LeftCalf,
			&a.Notes, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		res.PlausibleDensity = bodycomp.IsPlausibleDensity(res.BodyDensity)
		res.SkinfoldSumMm = skinfoldSum(a.Skinfolds)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func skinfoldSum(s Skinfolds) float64 {
	sum := 0.0
	for _, v := range []*float64{s.Chest, s.Triceps, s.Subscapular, s.Biceps, s.Midaxillary, s.Suprailiac} {
		if v != nil {
			sum += *v
		}
	}
	return sum
}
