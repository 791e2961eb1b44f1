package assessments

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymapi/internal/auth"
	"github.com/2beens/gymapi/internal/bodycomp"
	"github.com/2beens/gymapi/internal/delivery"
	"github.com/2beens/gymapi/internal/reports"
	"github.com/2beens/gymapi/internal/telemetry/metrics"
	"github.com/2beens/gymapi/internal/telemetry/tracing"
	"github.com/2beens/gymapi/internal/users"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=assessments_test

var ErrForbidden = errors.New("not allowed")

type assessmentsRepo interface {
	Add(ctx context.Context, a Assessment) (*Assessment, error)
	Get(ctx context.Context, id int) (*Assessment, error)
	List(ctx context.Context, params ListParams) ([]Assessment, error)
	Evolution(ctx context.Context, studentID int) ([]Assessment, error)
	Update(ctx context.Context, a Assessment) (*Assessment, error)
	Delete(ctx context.Context, id int) error
}

type usersGetter interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type reportRenderer interface {
	RenderAssessment(report reports.AssessmentReport) ([]byte, error)
}

type documentSender interface {
	Send(ctx context.Context, req delivery.Request) ([]delivery.Attempt, error)
}

type Service struct {
	repo           assessmentsRepo
	users          usersGetter
	renderer       reportRenderer
	sender         documentSender
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	repo assessmentsRepo,
	usersRepo usersGetter,
	renderer reportRenderer,
	sender documentSender,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		users:          usersRepo,
		renderer:       renderer,
		sender:         sender,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) Create(ctx context.Context, identity auth.Identity, req Request) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !identity.Role.IsProfessional() {
		return nil, ErrForbidden
	}

	result, err := bodycomp.Evaluate(req.Input())
	if err != nil {
		return nil, err
	}

	student, err := s.student(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	a := newAssessment(req, identity.UserID, result, s.now())
	added, err := s.repo.Add(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("add assessment: %w", err)
	}
	added.StudentName = student.Name
	added.ProfessionalName = identity.Name

	if s.metricsManager != nil {
		s.metricsManager.CounterAssessments.Inc()
	}
	span.SetAttributes(attribute.Int("assessment.id", added.ID))
	log.Debugf("assessment %d created for student %d by %d", added.ID, added.StudentID, identity.UserID)

	return added, nil
}

func (s *Service) Get(ctx context.Context, identity auth.Identity, id int) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.Role == users.RoleStudent && a.StudentID != identity.UserID {
		return nil, ErrForbidden
	}
	return a, nil
}

// List returns the assessments visible to the caller: students see their own,
// professionals the ones they authored, admins all of them.
func (s *Service) List(ctx context.Context, identity auth.Identity) (_ []Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var params ListParams
	switch {
	case identity.Role == users.RoleStudent:
		params.StudentID = identity.UserID
	case identity.Role.IsProfessional():
		params.ProfessionalID = identity.UserID
	case identity.Role == users.RoleAdmin:
	default:
		return nil, ErrForbidden
	}

	return s.repo.List(ctx, params)
}

func (s *Service) Update(ctx context.Context, identity auth.Identity, id int, req Request) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.ProfessionalID != identity.UserID {
		return nil, ErrForbidden
	}

	result, err := bodycomp.Evaluate(req.Input())
	if err != nil {
		return nil, err
	}

	// the student of an assessment never changes
	req.StudentID = existing.StudentID
	if req.AssessedAt == nil {
		req.AssessedAt = &existing.AssessedAt
	}
	a := newAssessment(req, existing.ProfessionalID, result, s.now())
	a.ID = existing.ID

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	updated.StudentName = existing.StudentName
	updated.ProfessionalName = existing.ProfessionalName
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, identity auth.Identity, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.ProfessionalID != identity.UserID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Evolution(ctx context.Context, identity auth.Identity, studentID int) (_ *Evolution, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.evolution")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if identity.Role == users.RoleStudent && identity.UserID != studentID {
		return nil, ErrForbidden
	}

	student, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.Evolution(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get evolution: %w", err)
	}

	evolution := &Evolution{
		StudentID:   student.ID,
		StudentName: student.Name,
		Points:      make([]EvolutionPoint, 0, len(history)),
	}
	for _, a := range history {
		evolution.Points = append(evolution.Points, evolutionPoint(a))
	}
	return evolution, nil
}

// Report renders the PDF of an assessment, charting the student's history up to it.
func (s *Service) Report(ctx context.Context, identity auth.Identity, id int) (_ string, _ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.report")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	a, err := s.Get(ctx, identity, id)
	if err != nil {
		return "", nil, err
	}

	report, err := s.report(ctx, *a)
	if err != nil {
		return "", nil, err
	}

	doc, err := s.renderer.RenderAssessment(report)
	if err != nil {
		return "", nil, fmt.Errorf("render assessment %d: %w", id, err)
	}
	return report.FileName(), doc, nil
}

// Send renders the assessment and delivers it to the student over the given channel.
func (s *Service) Send(ctx context.Context, identity auth.Identity, id int, channel delivery.Channel) (_ []delivery.Attempt, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("channel", string(channel)))

	if !identity.Role.IsProfessional() {
		return nil, ErrForbidden
	}

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	student, err := s.users.Get(ctx, a.StudentID)
	if err != nil {
		return nil, fmt.Errorf("get student %d: %w", a.StudentID, err)
	}

	report, err := s.report(ctx, *a)
	if err != nil {
		return nil, err
	}
	doc, err := s.renderer.RenderAssessment(report)
	if err != nil {
		return nil, fmt.Errorf("render assessment %d: %w", id, err)
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
			Kind:        reports.KindAssessment,
			ReferenceID: a.ID,
			FileName:    report.FileName(),
			Content:     doc,
		},
	})
}

func (s *Service) report(ctx context.Context, a Assessment) (reports.AssessmentReport, error) {
	history, err := s.repo.Evolution(ctx, a.StudentID)
	if err != nil {
		return reports.AssessmentReport{}, fmt.Errorf("get evolution: %w", err)
	}

	upToThis := history[:0:0]
	for _, h := range history {
		if !h.AssessedAt.After(a.AssessedAt) {
			upToThis = append(upToThis, h)
		}
	}
	return toReport(a, upToThis), nil
}

func (s *Service) student(ctx context.Context, id int) (*users.User, error) {
	student, err := s.users.Get(ctx, id)
	if errors.Is(err, users.ErrUserNotFound) {
		return nil, ErrStudentNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get student %d: %w", id, err)
	}
	if student.Role != users.RoleStudent || !student.Active {
		return nil, ErrStudentNotFound
	}
	return student, nil
}
