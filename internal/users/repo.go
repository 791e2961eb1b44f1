package users

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
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const userColumns = `id, name, email, password_hash, role, COALESCE(cref, ''), COALESCE(crn, ''),
	COALESCE(whatsapp, ''), COALESCE(phone, ''), active, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO users
				(name, email, password_hash, role, cref, crn, whatsapp, phone, active)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
			RETURNING id, created_at;`,
		user.Name, user.Email, user.PasswordHash, user.Role,
		user.CREF, user.CRN, user.WhatsApp, user.Phone, user.Active,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	return &user, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyemail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, pkg.NormalizeEmail(email))
}

// SearchStudents returns active students whose name contains the given fragment (case insensitive).
func (r *Repo) SearchStudents(ctx context.Context, name string) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.searchstudents")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("name", name))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+userColumns+` FROM users
			WHERE role = 'student' AND active
				AND ($1::text = '' OR name ILIKE '%' || $1 || '%')
			ORDER BY name
			LIMIT 50;`,
		name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2users(rows)
}

func (r *Repo) getOne(ctx context.Context, query string, arg any) (*User, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found, err := rows2users(rows)
	if err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, ErrUserNotFound
	}
	return &found[0], nil
}

func rows2users(rows pgx.Rows) ([]User, error) {
	var result []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CREF, &u.CRN,
			&u.WhatsApp, &u.Phone, &u.Active, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
