package users

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type studentsRepo interface {
	SearchStudents(ctx context.Context, name string) ([]User, error)
}

type StudentResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

type Handler struct {
	repo studentsRepo
}

func NewHandler(repo studentsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleSearchStudents(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.searchstudents")
	defer span.End()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	students, err := handler.repo.SearchStudents(ctx, name)
	if err != nil {
		log.Errorf("failed to search students [%s]: %s", name, err)
		http.Error(w, "failed to search students", http.StatusInternalServerError)
		return
	}

	resp := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		resp = append(resp, StudentResponse{
			ID:       s.ID,
			Name:     s.Name,
			Email:    s.Email,
			WhatsApp: s.WhatsApp,
		})
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal students: %s", err)
		http.Error(w, "failed to search students", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
