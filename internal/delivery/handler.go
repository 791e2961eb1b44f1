package delivery

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/pkg"
)

const filterDateLayout = "2006-01-02"

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=delivery_test

type logsRepo interface {
	List(ctx context.Context, filter LogsFilter) ([]LogEntry, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// AdminHandler exposes the delivery log to administrators.
type AdminHandler struct {
	repo logsRepo
}

func NewAdminHandler(repo logsRepo) *AdminHandler {
	return &AdminHandler{
		repo: repo,
	}
}

func (handler *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.delivery.logs.list")
	defer span.End()

	filter, err := parseLogsFilter(r)
	if err != nil {
		log.Tracef("list delivery logs, bad filter: %s", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := handler.repo.List(ctx, filter)
	if err != nil {
		log.Errorf("failed to list delivery logs: %s", err)
		http.Error(w, "failed to list delivery logs", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []LogEntry{}
	}

	pkg.WriteJSON(w, entries, http.StatusOK)
}

func (handler *AdminHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.delivery.logs.deleteall")
	defer span.End()

	deleted, err := handler.repo.DeleteAll(ctx)
	if err != nil {
		log.Errorf("failed to delete delivery logs: %s", err)
		http.Error(w, "failed to delete delivery logs", http.StatusInternalServerError)
		return
	}

	log.Debugf("deleted %d delivery logs", deleted)
	pkg.WriteMessage(w, "Todos os logs foram apagados com sucesso.", http.StatusOK)
}

func parseLogsFilter(r *http.Request) (LogsFilter, error) {
	q := r.URL.Query()
	var filter LogsFilter

	if c := strings.TrimSpace(q.Get("channel")); c != "" {
		channel, err := ParseChannel(c)
		if err != nil || channel == ChannelBoth {
			return LogsFilter{}, fmt.Errorf("invalid channel: %s", c)
		}
		filter.Channel = channel
	}

	if u := q.Get("userId"); u != "" {
		userID, err := strconv.Atoi(u)
		if err != nil || userID <= 0 {
			return LogsFilter{}, fmt.Errorf("invalid userId: %s", u)
		}
		filter.UserID = userID
	}

	if f := q.Get("from"); f != "" {
		from, err := time.Parse(filterDateLayout, f)
		if err != nil {
			return LogsFilter{}, fmt.Errorf("invalid from date: %s", f)
		}
		filter.From = &from
	}

	if t := q.Get("to"); t != "" {
		to, err := time.Parse(filterDateLayout, t)
		if err != nil {
			return LogsFilter{}, fmt.Errorf("invalid to date: %s", t)
		}
		// inclusive of the whole day
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	if o := q.Get("offset"); o != "" {
		offset, err := strconv.Atoi(o)
		if err != nil || offset < 0 {
			return LogsFilter{}, fmt.Errorf("invalid offset: %s", o)
		}
		filter.Offset = offset
	}

	return filter, nil
}
