package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/repository"
)

const (
	DefaultMaxDocumentBytes int64 = 10 << 20

	textDocumentsDir  = "candidates/texts"
	proofDocumentsDir = "candidates/proofs"

	tracerName = "github.com/vietanh2810/eloquence-api/internal/service"
)

var errNoDishChosen = errors.New("choose at least one dish or untick the meal option")

type SettingsReader interface {
	FindByKey(ctx context.Context, key string) (domain.EventSettings, error)
}

type ActiveFoodCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type AdmissionRepository interface {
	CandidateEmailExists(ctx context.Context, email string) (bool, error)
	WithinAdmission(ctx context.Context, fn func(tx repository.AdmissionTx) error) error
}

type DocumentWriter interface {
	Put(ctx context.Context, dir, ext string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

type AdmissionOption func(s *AdmissionService)

func WithPublishers(publishers ...EventPublisher) AdmissionOption {
	return func(s *AdmissionService) {
		s.publishers = append(s.publishers, publishers...)
	}
}

func WithMaxDocumentBytes(max int64) AdmissionOption {
	return func(s *AdmissionService) {
		if max > 0 {
			s.maxDocumentBytes = max
		}
	}
}

func WithClock(now func() time.Time) AdmissionOption {
	return func(s *AdmissionService) {
		s.now = now
	}
}

// AdmissionService accepts or rejects registrations against the capacity of
// their pool. Decisions for both pools are serialized on the settings row
// lock taken by the repository.
type AdmissionService struct {
	settings SettingsReader
	foods    ActiveFoodCounter
	repo     AdmissionRepository
	docs     DocumentWriter

	publishers       []EventPublisher
	maxDocumentBytes int64
	now              func() time.Time
	tracer           trace.Tracer
}

func NewAdmissionService(settings SettingsReader, foods ActiveFoodCounter, repo AdmissionRepository, docs DocumentWriter, opts ...AdmissionOption) *AdmissionService {
	s := &AdmissionService{
		settings:         settings,
		foods:            foods,
		repo:             repo,
		docs:             docs,
		maxDocumentBytes: DefaultMaxDocumentBytes,
		now:              time.Now,
		tracer:           otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *AdmissionService) RegisterSpectator(ctx context.Context, req request.SpectatorRegistrationRequest) (domain.SpectatorRegistration, domain.Availability, error) {
	ctx, span := s.tracer.Start(ctx, "admission.RegisterSpectator",
		trace.WithAttributes(attribute.String("pool", string(domain.PoolSpectators))))
	defer span.End()

	registration, event, err := s.registerSpectator(ctx, req)
	s.record(span, domain.PoolSpectators, registration.SeatsRequested(), event.Availability, err)
	if err != nil {
		return domain.SpectatorRegistration{}, domain.Availability{}, err
	}

	publish(ctx, s.publishers, event)

	return registration, event.Availability, nil
}

func (s *AdmissionService) registerSpectator(ctx context.Context, req request.SpectatorRegistrationRequest) (domain.SpectatorRegistration, domain.RegistrationEvent, error) {
	if err := req.Validate(); err != nil {
		return domain.SpectatorRegistration{}, domain.RegistrationEvent{}, newValidationError(err)
	}
	req = req.Trimmed()

	selection := req.FoodSelection()
	if req.FoodWanted && selection.Kind == domain.FoodNone {
		active, err := s.foods.CountActive(ctx)
		if err != nil {
			return domain.SpectatorRegistration{}, domain.RegistrationEvent{}, fmt.Errorf("s.foods.CountActive -> %w", err)
		}
		if active > 0 {
			return domain.SpectatorRegistration{}, domain.RegistrationEvent{}, fieldError("food_quantities", errNoDishChosen)
		}
	}

	if err := s.checkOpen(ctx, domain.PoolSpectators, "full_name"); err != nil {
		return domain.SpectatorRegistration{}, domain.RegistrationEvent{}, err
	}

	registration := domain.SpectatorRegistration{
		FullName:           req.FullName,
		Email:              req.Email,
		Phone:              req.Phone,
		AccompanyingCount:  req.AccompanyingCount,
		AccompanyingPeople: req.People(),
		Food:               selection,
		AcceptedPrivacy:    req.AcceptedPrivacy,
		AcceptedRules:      req.AcceptedRules,
	}
	seats := registration.SeatsRequested()

	var (
		created domain.SpectatorRegistration
		event   domain.RegistrationEvent
	)
	err := s.repo.WithinAdmission(ctx, func(tx repository.AdmissionTx) error {
		settings, err := tx.LockSettings(ctx)
		if err != nil {
			return fmt.Errorf("tx.LockSettings -> %w", err)
		}
		if err := closedError(settings, domain.PoolSpectators, s.now(), "full_name"); err != nil {
			return err
		}

		used, err := tx.SeatsUsed(ctx)
		if err != nil {
			return fmt.Errorf("tx.SeatsUsed -> %w", err)
		}
		if settings.SpectatorCapacity-used < seats {
			return reject("full_name", ErrCapacityExceeded)
		}

		label, err := resolveFood(ctx, tx, selection)
		if err != nil {
			return err
		}
		registration.FoodLabel = label

		created, err = tx.CreateSpectator(ctx, registration)
		if err != nil {
			return fmt.Errorf("tx.CreateSpectator -> %w", err)
		}

		event = domain.RegistrationEvent{
			Seq:            nextEventSeq(),
			Type:           domain.RegistrationAdmitted,
			Pool:           domain.PoolSpectators,
			RegistrationID: created.ID,
			FullName:       created.FullName,
			Email:          created.Email,
			Units:          seats,
			Availability:   domain.NewAvailability(settings, domain.PoolSpectators, used+seats, s.now()),
			OccurredAt:     s.now(),
		}

		return nil
	})
	if err != nil {
		return domain.SpectatorRegistration{}, domain.RegistrationEvent{}, fmt.Errorf("s.repo.WithinAdmission -> %w", err)
	}

	return created, event, nil
}

// resolveFood checks every referenced option in one query and renders the
// label. The quantities form only accepts active options; the legacy single
// option only has to exist.
func resolveFood(ctx context.Context, tx repository.AdmissionTx, selection domain.FoodSelection) (string, error) {
	ids := selection.OptionIDs()
	if len(ids) == 0 {
		return "", nil
	}

	activeOnly := selection.Kind == domain.FoodQuantities
	options, err := tx.FoodOptionsByIDs(ctx, ids, activeOnly)
	if err != nil {
		return "", fmt.Errorf("tx.FoodOptionsByIDs -> %w", err)
	}
	if len(options) != len(ids) {
		field := "food_quantities"
		if selection.Kind == domain.FoodSingle {
			field = "food_option_id"
		}

		return "", reject(field, ErrInvalidFoodSelection)
	}

	return selection.Label(options), nil
}

func (s *AdmissionService) RegisterCandidate(ctx context.Context, req request.CandidateRegistrationRequest) (domain.CandidateRegistration, domain.Availability, error) {
	ctx, span := s.tracer.Start(ctx, "admission.RegisterCandidate",
		trace.WithAttributes(attribute.String("pool", string(domain.PoolCandidates))))
	defer span.End()

	registration, event, err := s.registerCandidate(ctx, req)
	s.record(span, domain.PoolCandidates, 1, event.Availability, err)
	if err != nil {
		return domain.CandidateRegistration{}, domain.Availability{}, err
	}

	publish(ctx, s.publishers, event)

	return registration, event.Availability, nil
}

func (s *AdmissionService) registerCandidate(ctx context.Context, req request.CandidateRegistrationRequest) (domain.CandidateRegistration, domain.RegistrationEvent, error) {
	if err := s.validateCandidate(req); err != nil {
		return domain.CandidateRegistration{}, domain.RegistrationEvent{}, err
	}

	if err := s.checkOpen(ctx, domain.PoolCandidates, "first_name"); err != nil {
		return domain.CandidateRegistration{}, domain.RegistrationEvent{}, err
	}

	email := req.NormalizedEmail()
	exists, err := s.repo.CandidateEmailExists(ctx, email)
	if err != nil {
		return domain.CandidateRegistration{}, domain.RegistrationEvent{}, fmt.Errorf("s.repo.CandidateEmailExists -> %w", err)
	}
	if exists {
		return domain.CandidateRegistration{}, domain.RegistrationEvent{}, reject("email", ErrDuplicateEmail)
	}

	registration := domain.CandidateRegistration{
		FullName:        req.FullName(),
		Email:           email,
		Phone:           req.TrimmedPhone(),
		Faculty:         req.Faculty,
		StudyYear:       req.StudyYear,
		AcceptedPrivacy: req.AcceptedPrivacy.Accepted(),
		AcceptedRules:   req.AcceptedRules.Accepted(),
	}

	var (
		created domain.CandidateRegistration
		event   domain.RegistrationEvent
		written []string
	)
	err = s.repo.WithinAdmission(ctx, func(tx repository.AdmissionTx) error {
		settings, err := tx.LockSettings(ctx)
		if err != nil {
			return fmt.Errorf("tx.LockSettings -> %w", err)
		}
		if err := closedError(settings, domain.PoolCandidates, s.now(), "first_name"); err != nil {
			return err
		}

		used, err := tx.CountCandidates(ctx)
		if err != nil {
			return fmt.Errorf("tx.CountCandidates -> %w", err)
		}
		if used >= settings.CandidateCapacity {
			return reject("first_name", ErrCapacityExceeded)
		}

		registration.TextPath, err = s.docs.Put(ctx, textDocumentsDir, documentExtension(req.Text, ".pdf"), bytes.NewReader(req.Text.Data))
		if err != nil {
			return fmt.Errorf("s.docs.Put -> %w", err)
		}
		written = append(written, registration.TextPath)

		registration.ProofPath, err = s.docs.Put(ctx, proofDocumentsDir, documentExtension(req.Proof, ".pdf"), bytes.NewReader(req.Proof.Data))
		if err != nil {
			return fmt.Errorf("s.docs.Put -> %w", err)
		}
		written = append(written, registration.ProofPath)

		created, err = tx.CreateCandidate(ctx, registration)
		if err != nil {
			if errors.Is(err, repository.ErrCandidateEmailExists) {
				return reject("email", ErrDuplicateEmail)
			}

			return fmt.Errorf("tx.CreateCandidate -> %w", err)
		}

		event = domain.RegistrationEvent{
			Seq:            nextEventSeq(),
			Type:           domain.RegistrationAdmitted,
			Pool:           domain.PoolCandidates,
			RegistrationID: created.ID,
			FullName:       created.FullName,
			Email:          created.Email,
			Units:          1,
			Availability:   domain.NewAvailability(settings, domain.PoolCandidates, used+1, s.now()),
			OccurredAt:     s.now(),
		}

		return nil
	})
	if err != nil {
		removeDocuments(ctx, s.docs, written, "failed to remove orphaned document")
		return domain.CandidateRegistration{}, domain.RegistrationEvent{}, fmt.Errorf("s.repo.WithinAdmission -> %w", err)
	}

	return created, event, nil
}

func (s *AdmissionService) validateCandidate(req request.CandidateRegistrationRequest) error {
	fields := validation.Errors{}

	if err := req.Validate(); err != nil {
		var verrs validation.Errors
		if !errors.As(err, &verrs) {
			return err
		}
		for k, v := range verrs {
			fields[k] = v
		}
	}

	tooLarge := fmt.Errorf("the file must not exceed %d bytes", s.maxDocumentBytes)
	if int64(len(req.Text.Data)) > s.maxDocumentBytes {
		fields["text_pdf"] = tooLarge
	}
	if int64(len(req.Proof.Data)) > s.maxDocumentBytes {
		fields["proof_pdf"] = tooLarge
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// checkOpen is the fast path run before taking the lock. The same rule is
// evaluated again once the settings row is locked.
func (s *AdmissionService) checkOpen(ctx context.Context, pool domain.Pool, field string) error {
	settings, err := s.settings.FindByKey(ctx, domain.DefaultSettingsKey)
	if err != nil {
		return fmt.Errorf("s.settings.FindByKey -> %w", err)
	}

	return closedError(settings, pool, s.now(), field)
}

func closedError(settings domain.EventSettings, pool domain.Pool, now time.Time, field string) error {
	if url := settings.ExternalFormURL(pool); url != "" {
		return &ExternalFormError{URL: url}
	}
	if !settings.RegistrationsOpen(pool, now) {
		return reject(field, ErrRegistrationClosed)
	}

	return nil
}

type documentRemover interface {
	Delete(ctx context.Context, path string) error
}

// removeDocuments deletes stored documents after the database outcome is
// settled. Failures leave an orphaned file behind and are only logged.
func removeDocuments(ctx context.Context, docs documentRemover, paths []string, msg string) {
	ctx = context.WithoutCancel(ctx)
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := docs.Delete(ctx, p); err != nil {
			zap.L().Error(msg, zap.String("path", p), zap.Error(err))
		}
	}
}

func (s *AdmissionService) record(span trace.Span, pool domain.Pool, units int, availability domain.Availability, err error) {
	outcome := outcomeOf(err)
	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("units", units),
	)

	switch outcome {
	case "admitted":
		span.SetAttributes(attribute.Int("remaining", availability.Remaining))
		zap.L().Info("registration admitted",
			zap.String("pool", string(pool)),
			zap.Int("units", units),
			zap.Int("remaining", availability.Remaining),
		)
	case "error":
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	default:
		zap.L().Warn("registration rejected",
			zap.String("pool", string(pool)),
			zap.String("outcome", outcome),
			zap.Int("units", units),
			zap.Error(err),
		)
	}
}

func outcomeOf(err error) string {
	var verr *ValidationError

	switch {
	case err == nil:
		return "admitted"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, ErrRegistrationClosed):
		return "closed"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, ErrInvalidFoodSelection):
		return "invalid_food"
	default:
		return "error"
	}
}

func documentExtension(doc domain.Document, fallback string) string {
	if doc.Extension != "" {
		return doc.Extension
	}

	return fallback
}
