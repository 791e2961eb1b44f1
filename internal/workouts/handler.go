package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal/auth"
	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	AddExercise(ctx context.Context, identity auth.Identity, req ExerciseRequest) (*Exercise, error)
	ListExercises(ctx context.Context, muscleGroup string) ([]Exercise, error)
	CreatePlan(ctx context.Context, identity auth.Identity, req PlanRequest) ([]int, error)
	Update(ctx context.Context, identity auth.Identity, id int, req WorkoutRequest) (*Workout, error)
	Delete(ctx context.Context, identity auth.Identity, id int) error
	Get(ctx context.Context, identity auth.Identity, id int) (*Workout, error)
	StudentWorkouts(ctx context.Context, identity auth.Identity, studentID int) ([]Summary, error)
	TrainerWorkouts(ctx context.Context, identity auth.Identity, studentName string) ([]StudentWorkouts, error)
}

type PlanCreatedResponse struct {
	Message    string `json:"message"`
	WorkoutIDs []int  `json:"workoutIds"`
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add_exercise")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	var req ExerciseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	e, err := handler.service.AddExercise(ctx, identity, req)
	if err != nil {
		writeError(w, "add exercise", err)
		return
	}

	pkg.WriteJSON(w, e, http.StatusCreated)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list_exercises")
	defer span.End()

	muscleGroup := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("muscleGroup")))
	exercises, err := handler.service.ListExercises(ctx, muscleGroup)
	if err != nil {
		writeError(w, "list exercises", err)
		return
	}
	if exercises == nil {
		exercises = []Exercise{}
	}

	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (handler *Handler) HandleCreatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create_plan")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	var req PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ids, err := handler.service.CreatePlan(ctx, identity, req)
	if err != nil {
		writeError(w, "create workout plan", err)
		return
	}

	pkg.WriteJSON(w, PlanCreatedResponse{
		Message:    "Plano de treino criado com sucesso",
		WorkoutIDs: ids,
	}, http.StatusCreated)
}

func (handler *Handler) HandleTrainerWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.trainer")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}

	grouped, err := handler.service.TrainerWorkouts(ctx, identity, strings.TrimSpace(r.URL.Query().Get("name")))
	if err != nil {
		writeError(w, "list trainer workouts", err)
		return
	}
	if grouped == nil {
		grouped = []StudentWorkouts{}
	}

	pkg.WriteJSON(w, grouped, http.StatusOK)
}

// HandleOwnWorkouts lists the workouts of the logged in student.
func (handler *Handler) HandleOwnWorkouts(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	handler.studentWorkouts(w, r, identity, identity.UserID)
}

func (handler *Handler) HandleStudentWorkouts(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	studentID, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	handler.studentWorkouts(w, r, identity, studentID)
}

func (handler *Handler) studentWorkouts(w http.ResponseWriter, r *http.Request, identity auth.Identity, studentID int) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.student")
	defer span.End()

	list, err := handler.service.StudentWorkouts(ctx, identity, studentID)
	if err != nil {
		writeError(w, "list student workouts", err)
		return
	}
	if list == nil {
		list = []Summary{}
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.service.Get(ctx, identity, id)
	if err != nil {
		writeError(w, "get workout", err)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req WorkoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	workout, err := handler.service.Update(ctx, identity, id, req)
	if err != nil {
		writeError(w, "update workout", err)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, identity, id); err != nil {
		writeError(w, "delete workout", err)
		return
	}

	pkg.WriteMessage(w, "Treino excluído com sucesso", http.StatusOK)
}

func identityOrUnauthorized(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return auth.Identity{}, false
	}
	return *identity, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Tracef("workouts request, unmarshal json: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, ErrInvalidWorkout):
		log.Tracef("%s: %s", action, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusBadRequest)
	case errors.Is(err, ErrWorkoutNotFound):
		http.Error(w, "workout not found", http.StatusNotFound)
	case errors.Is(err, ErrStudentNotFound):
		http.Error(w, "student not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		log.Tracef("%s: forbidden", action)
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		log.Errorf("%s: %s", action, err)
		http.Error(w, action+" failed", http.StatusInternalServerError)
	}
}
