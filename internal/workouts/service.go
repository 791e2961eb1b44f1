package workouts

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal/auth"
	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/internal/users"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

var (
	ErrForbidden       = errors.New("not allowed")
	ErrStudentNotFound = errors.New("student not found")
)

type workoutsRepo interface {
	AddExercise(ctx context.Context, e Exercise) (*Exercise, error)
	ListExercises(ctx context.Context, muscleGroup string) ([]Exercise, error)
	AddPlan(ctx context.Context, studentID, trainerID int, workouts []Workout) ([]int, error)
	Update(ctx context.Context, id, trainerID int, name string, entries []Entry) error
	Get(ctx context.Context, id int) (*Workout, error)
	ListByStudent(ctx context.Context, studentID int) ([]Summary, error)
	ListByTrainer(ctx context.Context, trainerID int, studentName string) ([]StudentWorkouts, error)
	Deactivate(ctx context.Context, id, trainerID int) error
}

type usersGetter interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type Service struct {
	repo  workoutsRepo
	users usersGetter
}

func NewService(repo workoutsRepo, usersRepo usersGetter) *Service {
	return &Service{
		repo:  repo,
		users: usersRepo,
	}
}

func (s *Service) AddExercise(ctx context.Context, identity auth.Identity, req ExerciseRequest) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.add_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !identity.HasRole(users.RoleTrainer, users.RoleAdmin) {
		return nil, ErrForbidden
	}
	e, err := req.Exercise(identity.UserID)
	if err != nil {
		return nil, err
	}
	return s.repo.AddExercise(ctx, e)
}

func (s *Service) ListExercises(ctx context.Context, muscleGroup string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.list_exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.ListExercises(ctx, muscleGroup)
}

// CreatePlan stores the plan's workouts for a student and returns the created ids.
func (s *Service) CreatePlan(ctx context.Context, identity auth.Identity, req PlanRequest) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.create_plan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if identity.Role != users.RoleTrainer {
		return nil, ErrForbidden
	}
	workouts, err := req.ValidWorkouts()
	if err != nil {
		return nil, err
	}
	if err := s.checkStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	ids, err := s.repo.AddPlan(ctx, req.StudentID, identity.UserID, workouts)
	if err != nil {
		return nil, err
	}
	log.Debugf("workout plan with %d workouts created for student %d by %d", len(ids), req.StudentID, identity.UserID)
	return ids, nil
}

func (s *Service) Update(ctx context.Context, identity auth.Identity, id int, req WorkoutRequest) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name, entries, err := req.Valid()
	if err != nil {
		return nil, err
	}
	if err := s.owned(ctx, identity, id); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, identity.UserID, name, entries); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, identity auth.Identity, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.owned(ctx, identity, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id, identity.UserID)
}

func (s *Service) Get(ctx context.Context, identity auth.Identity, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	w, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.Role == users.RoleStudent && w.StudentID != identity.UserID {
		return nil, ErrForbidden
	}
	return w, nil
}

// StudentWorkouts lists the active workouts of a student. Students can only see their own.
func (s *Service) StudentWorkouts(ctx context.Context, identity auth.Identity, studentID int) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.student_workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	switch identity.Role {
	case users.RoleStudent:
		if studentID != identity.UserID {
			return nil, ErrForbidden
		}
	case users.RoleTrainer, users.RoleAdmin:
	default:
		return nil, ErrForbidden
	}

	return s.repo.ListByStudent(ctx, studentID)
}

func (s *Service) TrainerWorkouts(ctx context.Context, identity auth.Identity, studentName string) (_ []StudentWorkouts, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.trainer_workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if identity.Role != users.RoleTrainer {
		return nil, ErrForbidden
	}
	return s.repo.ListByTrainer(ctx, identity.UserID, studentName)
}

func (s *Service) owned(ctx context.Context, identity auth.Identity, id int) error {
	if identity.Role != users.RoleTrainer {
		return ErrForbidden
	}
	w, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if w.TrainerID != identity.UserID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) checkStudent(ctx context.Context, id int) error {
	student, err := s.users.Get(ctx, id)
	if errors.Is(err, users.ErrUserNotFound) {
		return ErrStudentNotFound
	} else if err != nil {
		return fmt.Errorf("get student %d: %w", id, err)
	}
	if student.Role != users.RoleStudent || !student.Active {
		return ErrStudentNotFound
	}
	return nil
}
