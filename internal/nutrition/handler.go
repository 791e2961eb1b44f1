package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal/auth"
	"github.com/2beens/gymapi/internal/delivery"
	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=nutrition_test

type plansService interface {
	Create(ctx context.Context, identity auth.Identity, req PlanRequest) (*Plan, error)
	Update(ctx context.Context, identity auth.Identity, id int, req PlanRequest) (*Plan, error)
	Get(ctx context.Context, identity auth.Identity, id int) (*Plan, error)
	List(ctx context.Context, identity auth.Identity) ([]PlanSummary, error)
	Delete(ctx context.Context, identity auth.Identity, id int) error
	Report(ctx context.Context, identity auth.Identity, id int) (string, []byte, error)
	Send(ctx context.Context, identity auth.Identity, id int, channel delivery.Channel) ([]delivery.Attempt, error)
}

type SendResponse struct {
	Message  string             `json:"message"`
	Attempts []delivery.Attempt `json:"attempts"`
}

type Handler struct {
	service plansService
}

func NewHandler(service plansService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.create")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	plan, err := handler.service.Create(ctx, identity, req)
	if err != nil {
		writeError(w, "create plan", err)
		return
	}

	pkg.WriteJSON(w, plan, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.list")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}

	plans, err := handler.service.List(ctx, identity)
	if err != nil {
		writeError(w, "list plans", err)
		return
	}
	if plans == nil {
		plans = []PlanSummary{}
	}

	pkg.WriteJSON(w, plans, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.get")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := idOrBadRequest(w, r)
	if !ok {
		return
	}

	plan, err := handler.service.Get(ctx, identity, id)
	if err != nil {
		writeError(w, "get plan", err)
		return
	}

	pkg.WriteJSON(w, plan, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.update")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := idOrBadRequest(w, r)
	if !ok {
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	plan, err := handler.service.Update(ctx, identity, id, req)
	if err != nil {
		writeError(w, "update plan", err)
		return
	}

	pkg.WriteJSON(w, plan, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.delete")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := idOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, identity, id); err != nil {
		writeError(w, "delete plan", err)
		return
	}

	pkg.WriteMessage(w, "Plano excluído com sucesso", http.StatusOK)
}

func (handler *Handler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.pdf")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := idOrBadRequest(w, r)
	if !ok {
		return
	}

	fileName, doc, err := handler.service.Report(ctx, identity, id)
	if err != nil {
		writeError(w, "render plan", err)
		return
	}

	pkg.WritePDF(w, fileName, doc)
}

func (handler *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.send")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := idOrBadRequest(w, r)
	if !ok {
		return
	}
	channel, err := delivery.ParseChannel(mux.Vars(r)["channel"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	attempts, err := handler.service.Send(ctx, identity, id, channel)
	if err != nil {
		if len(attempts) > 0 {
			log.Errorf("send plan %d via %s: %s", id, channel, err)
			pkg.WriteJSON(w, SendResponse{Message: "Erro ao enviar plano alimentar", Attempts: attempts}, http.StatusBadGateway)
			return
		}
		writeError(w, "send plan", err)
		return
	}

	pkg.WriteJSON(w, SendResponse{Message: "Plano alimentar enviado com sucesso", Attempts: attempts}, http.StatusOK)
}

func identityOrUnauthorized(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return auth.Identity{}, false
	}
	return *identity, true
}

func idOrBadRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (PlanRequest, bool) {
	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return PlanRequest{}, false
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("plan request, unmarshal json: %s", err)
		http.Error(w, "invalid plan request", http.StatusBadRequest)
		return PlanRequest{}, false
	}
	return req, true
}

func writeError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, ErrInvalidPlan):
		log.Tracef("%s: %s", action, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPlanNotFound):
		http.Error(w, "plan not found", http.StatusNotFound)
	case errors.Is(err, ErrStudentNotFound):
		http.Error(w, "student not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		log.Tracef("%s: forbidden", action)
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, delivery.ErrNoContact), errors.Is(err, delivery.ErrUnknownChannel):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", action, err)
		http.Error(w, action+" failed", http.StatusInternalServerError)
	}
}
