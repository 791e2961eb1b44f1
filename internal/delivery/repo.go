package delivery

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymapi/internal/telemetry/tracing"
)

const LogsPageSize = 10

type LogsFilter struct {
	Channel Channel
	UserID  int
	From    *time.Time
	To      *time.Time
	Offset  int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, entry LogEntry) (_ *LogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.delivery.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO delivery_logs
				(user_id, sender_id, kind, reference_id, channel, destination, content, status, error)
			VALUES (NULLIF($1, 0), NULLIF($2, 0), $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at;`,
		entry.UserID, entry.SenderID, entry.Kind, entry.ReferenceID, entry.Channel,
		entry.Destination, entry.Content, entry.Status, entry.Error,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert delivery log: %w", err)
	}

	span.SetAttributes(attribute.Int("delivery_log.id", entry.ID))
	return &entry, nil
}

// List returns a page of delivery logs, newest first.
func (r *Repo) List(ctx context.Context, filter LogsFilter) (_ []LogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.delivery.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("offset", filter.Offset))

	where, args := filter.whereClause()
	args = append(args, LogsPageSize, filter.Offset)
	query := `SELECT l.id, COALESCE(l.user_id, 0), COALESCE(u.name, ''), COALESCE(u.email, ''),
			COALESCE(l.sender_id, 0), l.kind, l.reference_id, l.channel,
			l.destination, l.content, l.status, l.error, l.created_at
		FROM delivery_logs l
		LEFT JOIN users u ON u.id = l.user_id` + where + `
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2logEntries(rows)
}

func (r *Repo) DeleteAll(ctx context.Context) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.delivery.deleteall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM delivery_logs;`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (f LogsFilter) whereClause() (string, []any) {
	var conditions []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if f.Channel != "" {
		add("l.channel = ?", f.Channel)
	}
	if f.UserID > 0 {
		add("l.user_id = ?", f.UserID)
	}
	if f.From != nil {
		add("l.created_at >= ?", *f.From)
	}
	if f.To != nil {
		add("l.created_at < ?", *f.To)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func rows2logEntries(rows pgx.Rows) ([]LogEntry, error) {
	var result []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.UserName, &e.UserEmail, &e.SenderID, &e.Kind, &e.ReferenceID, &e.Channel,
			&e.Destination, &e.Content, &e.Status, &e.Error, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
