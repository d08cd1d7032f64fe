package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gymdesk/gymdesk-backend/internal/clock"
	"github.com/gymdesk/gymdesk-backend/internal/model"
	"github.com/gymdesk/gymdesk-backend/internal/repository"
	"github.com/gymdesk/gymdesk-backend/internal/schedule"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ErrClassNotFound is returned when the class ID does not resolve to a
// catalog entry. Business-rule rejections are Outcome values, not errors.
var ErrClassNotFound = errors.New("class not found")

// Booking windows, relative to the occurrence start.
const (
	// EnrollCutoff: a seat can only be taken strictly more than 30 minutes
	// before the class starts.
	EnrollCutoff = 30 * time.Minute
	// CancelGrace: a seat can be freed any time up to and including 60
	// minutes after the class starts.
	CancelGrace = 60 * time.Minute
)

// Outcome is the result of a toggle call. Every value is an expected
// business result; none of them is a fault.
type Outcome string

const (
	OutcomeEnrolled        Outcome = "ENROLLED"
	OutcomeUnsubscribed    Outcome = "UNSUBSCRIBED"
	OutcomeAlreadyEnrolled Outcome = "ALREADY_ENROLLED"
	OutcomeNotEnrolled     Outcome = "NOT_ENROLLED"
	OutcomeEnrollClosed    Outcome = "ENROLL_WINDOW_CLOSED"
	OutcomeCancelClosed    Outcome = "CANCEL_WINDOW_CLOSED"
	OutcomeClassFull       Outcome = "CLASS_FULL"
)

// ToggleResult reports what happened and which occurrence it happened to.
type ToggleResult struct {
	Outcome        Outcome   `json:"outcome"`
	ClassID        int       `json:"class_id"`
	MemberID       int       `json:"member_id"`
	OccurrenceDate string    `json:"occurrence_date"`
	StartsAt       time.Time `json:"starts_at"`
}

// classCatalog and enrollmentLedger are the engine's store dependencies,
// narrowed to interfaces so the window/capacity state machine can be unit
// tested against in-memory fakes with a pinned clock.
type classCatalog interface {
	GetByID(ctx context.Context, id int) (*model.Class, error)
}

type enrollmentLedger interface {
	Exists(ctx context.Context, classID, memberID int, date time.Time) (bool, error)
	Insert(ctx context.Context, classID, memberID int, date time.Time) error
	Delete(ctx context.Context, classID, memberID int, date time.Time) (bool, error)
}

// EnrollmentService is the booking engine: it composes the occurrence
// calculator, the class catalog and the enrollment ledger to enroll and
// unsubscribe members subject to window and capacity rules.
type EnrollmentService struct {
	classes classCatalog
	ledger  enrollmentLedger
	clk     clock.Clock
	board   *BoardPublisher
	log     zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService. board may be nil
// when no live board is wired (tests, CLI tools).
func NewEnrollmentService(classes classCatalog, ledger enrollmentLedger, clk clock.Clock, board *BoardPublisher, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		classes: classes,
		ledger:  ledger,
		clk:     clk,
		board:   board,
		log:     log.With().Str("component", "enrollment_service").Logger(),
	}
}

// currentOccurrence keeps a just-started occurrence current until its cancel
// grace runs out. A member cancelling at 18:30 for a class that started at
// 18:00 must still hit today's occurrence, not next week's.
func currentOccurrence(class *model.Class, now time.Time) schedule.Occurrence {
	return schedule.NextOccurrence(class.Weekday, class.StartTime, now.Add(-CancelGrace))
}

// Toggle enrolls the member into the class's current occurrence, or frees
// their seat when unsubscribe is set. At most one ledger write happens per
// call, and the whole call is idempotent-checked: retrying a successful
// enroll yields AlreadyEnrolled, never a duplicate row.
func (s *EnrollmentService) Toggle(ctx context.Context, classID, memberID int, unsubscribe bool) (*ToggleResult, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("load class: %w", err)
	}

	now := s.clk.Now()
	occ := currentOccurrence(class, now)

	result := &ToggleResult{
		ClassID:        classID,
		MemberID:       memberID,
		OccurrenceDate: occ.Date.Format("2006-01-02"),
		StartsAt:       occ.Start,
	}

	if unsubscribe {
		result.Outcome, err = s.unsubscribe(ctx, classID, memberID, occ, now)
	} else {
		result.Outcome, err = s.enroll(ctx, classID, memberID, occ, now)
	}
	if err != nil {
		return nil, err
	}

	switch result.Outcome {
	case OutcomeEnrolled, OutcomeUnsubscribed:
		s.board.Publish(ctx, BoardEvent{
			Type:           string(result.Outcome),
			ClassID:        classID,
			MemberID:       memberID,
			OccurrenceDate: result.OccurrenceDate,
		})
		s.log.Info().
			Int("class_id", classID).
			Int("member_id", memberID).
			Str("occurrence", result.OccurrenceDate).
			Str("outcome", string(result.Outcome)).
			Msg("Ledger updated")
	}

	return result, nil
}

// enroll runs NotEnrolled -> Enrolled. The duplicate check runs before the
// window check so that a retried enroll keeps answering AlreadyEnrolled
// even after the window closes.
func (s *EnrollmentService) enroll(ctx context.Context, classID, memberID int, occ schedule.Occurrence, now time.Time) (Outcome, error) {
	taken, err := s.ledger.Exists(ctx, classID, memberID, occ.Date)
	if err != nil {
		return "", fmt.Errorf("check seat: %w", err)
	}
	if taken {
		return OutcomeAlreadyEnrolled, nil
	}

	if occ.Start.Sub(now) <= EnrollCutoff {
		return OutcomeEnrollClosed, nil
	}

	err = s.ledger.Insert(ctx, classID, memberID, occ.Date)
	switch {
	case err == nil:
		return OutcomeEnrolled, nil
	case errors.Is(err, repository.ErrClassFull):
		return OutcomeClassFull, nil
	case errors.Is(err, repository.ErrAlreadyEnrolled):
		// Lost a race against our own retry; same answer either way.
		return OutcomeAlreadyEnrolled, nil
	case errors.Is(err, repository.ErrClassMissing):
		return "", ErrClassNotFound
	default:
		return "", fmt.Errorf("take seat: %w", err)
	}
}

// unsubscribe runs Enrolled -> NotEnrolled within the cancel grace window.
func (s *EnrollmentService) unsubscribe(ctx context.Context, classID, memberID int, occ schedule.Occurrence, now time.Time) (Outcome, error) {
	taken, err := s.ledger.Exists(ctx, classID, memberID, occ.Date)
	if err != nil {
		return "", fmt.Errorf("check seat: %w", err)
	}
	if !taken {
		// No seat on the current occurrence. If the member holds one on the
		// previous week's, that occurrence's cancel grace has already run
		// out, which is a different answer than never having enrolled.
		stale, err := s.ledger.Exists(ctx, classID, memberID, occ.Date.AddDate(0, 0, -7))
		if err != nil {
			return "", fmt.Errorf("check seat: %w", err)
		}
		if stale {
			return OutcomeCancelClosed, nil
		}
		return OutcomeNotEnrolled, nil
	}

	if now.After(occ.Start.Add(CancelGrace)) {
		return OutcomeCancelClosed, nil
	}

	removed, err := s.ledger.Delete(ctx, classID, memberID, occ.Date)
	if err != nil {
		return "", fmt.Errorf("free seat: %w", err)
	}
	if !removed {
		// Row vanished between the check and the delete; treat as not enrolled.
		return OutcomeNotEnrolled, nil
	}

	return OutcomeUnsubscribed, nil
}
