package assessments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal/auth"
	"github.com/2beens/gymapi/internal/bodycomp"
	"github.com/2beens/gymapi/internal/delivery"
	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=assessments_test

type assessmentsService interface {
	Create(ctx context.Context, identity auth.Identity, req Request) (*Assessment, error)
	Get(ctx context.Context, identity auth.Identity, id int) (*Assessment, error)
	List(ctx context.Context, identity auth.Identity) ([]Assessment, error)
	Update(ctx context.Context, identity auth.Identity, id int, req Request) (*Assessment, error)
	Delete(ctx context.Context, identity auth.Identity, id int) error
	Evolution(ctx context.Context, identity auth.Identity, studentID int) (*Evolution, error)
	Report(ctx context.Context, identity auth.Identity, id int) (string, []byte, error)
	Send(ctx context.Context, identity auth.Identity, id int, channel delivery.Channel) ([]delivery.Attempt, error)
}

type SendResponse struct {
	Message  string             `json:"message"`
	Attempts []delivery.Attempt `json:"attempts"`
}

type Handler struct {
	service assessmentsService
}

func NewHandler(service assessmentsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.create")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}

	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	if req.StudentID <= 0 {
		http.Error(w, "studentId is required", http.StatusBadRequest)
		return
	}

	a, err := handler.service.Create(ctx, identity, req)
	if err != nil {
		writeError(w, "create assessment", err)
		return
	}

	pkg.WriteJSON(w, a, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.list")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}

	list, err := handler.service.List(ctx, identity)
	if err != nil {
		writeError(w, "list assessments", err)
		return
	}
	if list == nil {
		list = []Assessment{}
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.get")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := idOrBadRequest(w, r, "id")
	if !ok {
		return
	}

	a, err := handler.service.Get(ctx, identity, id)
	if err != nil {
		writeError(w, "get assessment", err)
		return
	}

	pkg.WriteJSON(w, a, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.update")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := idOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	a, err := handler.service.Update(ctx, identity, id, req)
	if err != nil {
		writeError(w, "update assessment", err)
		return
	}

	pkg.WriteJSON(w, a, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.delete")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := idOrBadRequest(w, r, "id")
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, identity, id); err != nil {
		writeError(w, "delete assessment", err)
		return
	}

	pkg.WriteMessage(w, "Avaliação excluída com sucesso", http.StatusOK)
}

func (handler *Handler) HandleEvolution(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.evolution")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	studentID, ok := idOrBadRequest(w, r, "studentId")
	if !ok {
		return
	}

	evolution, err := handler.service.Evolution(ctx, identity, studentID)
	if err != nil {
		writeError(w, "get evolution", err)
		return
	}

	pkg.WriteJSON(w, evolution, http.StatusOK)
}

func (handler *Handler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.pdf")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := idOrBadRequest(w, r, "id")
	if !ok {
		return
	}

	fileName, doc, err := handler.service.Report(ctx, identity, id)
	if err != nil {
		writeError(w, "render assessment", err)
		return
	}

	pkg.WritePDF(w, fileName, doc)
}

func (handler *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.send")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := idOrBadRequest(w, r, "id")
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
			// partially or fully failed delivery, attempts tell which channel failed
			log.Errorf("send assessment %d via %s: %s", id, channel, err)
			pkg.WriteJSON(w, SendResponse{Message: "Erro ao enviar avaliação", Attempts: attempts}, http.StatusBadGateway)
			return
		}
		writeError(w, "send assessment", err)
		return
	}

	pkg.WriteJSON(w, SendResponse{Message: "Avaliação enviada com sucesso", Attempts: attempts}, http.StatusOK)
}

func identityOrUnauthorized(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return auth.Identity{}, false
	}
	return *identity, true
}

func idOrBadRequest(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := pkg.IntPathVar(r, name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (Request, bool) {
	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return Request{}, false
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("assessment request, unmarshal json: %s", err)
		http.Error(w, "invalid assessment request", http.StatusBadRequest)
		return Request{}, false
	}
	return req, true
}

func writeError(w http.ResponseWriter, action string, err error) {
	var measurementErr *bodycomp.MeasurementError
	switch {
	case errors.As(err, &measurementErr):
		log.Tracef("%s: %s", action, err)
		http.Error(w, measurementErr.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAssessmentNotFound):
		http.Error(w, "assessment not found", http.StatusNotFound)
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
