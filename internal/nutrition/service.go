package nutrition

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymapi/internal/auth"
	"github.com/2beens/gymapi/internal/delivery"
	"github.com/2beens/gymapi/internal/reports"
	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/internal/users"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=nutrition_test

var ErrForbidden = errors.New("not allowed")

type plansRepo interface {
	Add(ctx context.Context, studentID, nutritionistID int, meals []Meal) (int, error)
	ReplaceMeals(ctx context.Context, planID, nutritionistID int, meals []Meal) error
	Get(ctx context.Context, id int) (*Plan, error)
	List(ctx context.Context, params ListParams) ([]PlanSummary, error)
	Deactivate(ctx context.Context, planID, nutritionistID int) error
}

type usersGetter interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type reportRenderer interface {
	RenderMealPlan(report reports.MealPlanReport) ([]byte, error)
}

type documentSender interface {
	Send(ctx context.Context, req delivery.Request) ([]delivery.Attempt, error)
}

type Service struct {
	repo     plansRepo
	users    usersGetter
	renderer reportRenderer
	sender   documentSender
}

func NewService(repo plansRepo, usersRepo usersGetter, renderer reportRenderer, sender documentSender) *Service {
	return &Service{
		repo:     repo,
		users:    usersRepo,
		renderer: renderer,
		sender:   sender,
	}
}

func (s *Service) Create(ctx context.Context, identity auth.Identity, req PlanRequest) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if identity.Role != users.RoleNutritionist {
		return nil, ErrForbidden
	}
	if req.StudentID <= 0 {
		return nil, fmt.Errorf("%w: studentId is required", ErrInvalidPlan)
	}
	meals, err := req.ValidMeals()
	if err != nil {
		return nil, err
	}

	if err := s.checkStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	planID, err := s.repo.Add(ctx, req.StudentID, identity.UserID, meals)
	if err != nil {
		return nil, fmt.Errorf("add plan: %w", err)
	}
	span.SetAttributes(attribute.Int("plan.id", planID))
	log.Debugf("nutrition plan %d created for student %d by %d", planID, req.StudentID, identity.UserID)

	return s.repo.Get(ctx, planID)
}

// Update replaces the meals of a plan; only its nutritionist may do it.
func (s *Service) Update(ctx context.Context, identity auth.Identity, id int, req PlanRequest) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	meals, err := req.ValidMeals()
	if err != nil {
		return nil, err
	}

	if _, err := s.owned(ctx, identity, id); err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceMeals(ctx, id, identity.UserID, meals); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, identity auth.Identity, id int) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.Role == users.RoleStudent && p.StudentID != identity.UserID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, identity auth.Identity) (_ []PlanSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var params ListParams
	switch identity.Role {
	case users.RoleStudent:
		params.StudentID = identity.UserID
	case users.RoleNutritionist:
		params.NutritionistID = identity.UserID
	case users.RoleAdmin:
	default:
		return nil, ErrForbidden
	}

	return s.repo.List(ctx, params)
}

// Delete deactivates the plan, it stays in the database.
func (s *Service) Delete(ctx context.Context, identity auth.Identity, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.owned(ctx, identity, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id, identity.UserID)
}

func (s *Service) Report(ctx context.Context, identity auth.Identity, id int) (_ string, _ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.report")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.Get(ctx, identity, id)
	if err != nil {
		return "", nil, err
	}

	report := p.toReport()
	doc, err := s.renderer.RenderMealPlan(report)
	if err != nil {
		return "", nil, fmt.Errorf("render plan %d: %w", id, err)
	}
	return report.FileName(), doc, nil
}

func (s *Service) Send(ctx context.Context, identity auth.Identity, id int, channel delivery.Channel) (_ []delivery.Attempt, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("channel", string(channel)))

	if identity.Role != users.RoleNutritionist {
		return nil, ErrForbidden
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	student, err := s.users.Get(ctx, p.StudentID)
	if err != nil {
		return nil, fmt.Errorf("get student %d: %w", p.StudentID, err)
	}

	report := p.toReport()
	doc, err := s.renderer.RenderMealPlan(report)
	if err != nil {
		return nil, fmt.Errorf("render plan %d: %w", id, err)
	}

	return s.sender.Send(ctx, delivery.Request{
		SenderID: identity.UserID,
		Channel:  channel,
		Recipient: delivery.Recipient{
			UserID:   student.ID,
			Name:     student.Name,
			Email:    student.Email,
			WhatsApp: student.WhatsApp,
		},
		Document: delivery.Document{
			Kind:        reports.KindMealPlan,
			ReferenceID: p.ID,
			FileName:    report.FileName(),
			Content:     doc,
		},
	})
}

func (s *Service) owned(ctx context.Context, identity auth.Identity, id int) (*Plan, error) {
	if identity.Role != users.RoleNutritionist {
		return nil, ErrForbidden
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.NutritionistID != identity.UserID {
		return nil, ErrForbidden
	}
	return p, nil
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
