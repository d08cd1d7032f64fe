package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gymdesk/gymdesk-backend/internal/clock"
	"github.com/gymdesk/gymdesk-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// UnknownMemberName is shown when the directory cannot resolve a member.
// A broken lookup must degrade a single roster entry, never the listing.
const UnknownMemberName = "(unknown member)"

// NameResolver is the member directory boundary the roster depends on.
type NameResolver interface {
	ResolveName(ctx context.Context, memberID int) (string, error)
}

type rosterCatalog interface {
	GetByID(ctx context.Context, id int) (*model.Class, error)
	List(ctx context.Context) ([]model.Class, error)
}

type rosterLedger interface {
	ListForOccurrence(ctx context.Context, classID int, date time.Time) ([]int, error)
}

// RosterEntry is one seat on the board, resolved to a display name.
type RosterEntry struct {
	MemberID int    `json:"member_id"`
	Name     string `json:"name"`
}

// ClassBoard is the denormalized front-desk view of one class: its
// definition plus the upcoming occurrence and who holds a seat in it.
type ClassBoard struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Weekday        model.Weekday   `json:"weekday"`
	StartTime      model.TimeOfDay `json:"start_time"`
	Capacity       int             `json:"capacity"`
	OccurrenceDate string          `json:"occurrence_date"`
	StartsAt       time.Time       `json:"starts_at"`
	EnrolledCount  int             `json:"enrolled_count"`
	Roster         []RosterEntry   `json:"roster"`
}

// RosterService projects catalog + ledger + directory into board views.
// Read-only and side-effect free.
type RosterService struct {
	classes rosterCatalog
	ledger  rosterLedger
	names   NameResolver
	clk     clock.Clock
	log     zerolog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(classes rosterCatalog, ledger rosterLedger, names NameResolver, clk clock.Clock, log zerolog.Logger) *RosterService {
	return &RosterService{
		classes: classes,
		ledger:  ledger,
		names:   names,
		clk:     clk,
		log:     log.With().Str("component", "roster_service").Logger(),
	}
}

// Board returns the board view for every class in the catalog.
func (s *RosterService) Board(ctx context.Context) ([]ClassBoard, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	now := s.clk.Now()
	boards := make([]ClassBoard, 0, len(classes))
	for i := range classes {
		board, err := s.project(ctx, &classes[i], now)
		if err != nil {
			return nil, err
		}
		boards = append(boards, *board)
	}
	return boards, nil
}

// ClassRoster returns the board view for a single class.
func (s *RosterService) ClassRoster(ctx context.Context, classID int) (*ClassBoard, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("load class: %w", err)
	}
	return s.project(ctx, class, s.clk.Now())
}

func (s *RosterService) project(ctx context.Context, class *model.Class, now time.Time) (*ClassBoard, error) {
	occ := currentOccurrence(class, now)

	memberIDs, err := s.ledger.ListForOccurrence(ctx, class.ID, occ.Date)
	if err != nil {
		return nil, fmt.Errorf("list seats for class %d: %w", class.ID, err)
	}

	roster := make([]RosterEntry, 0, len(memberIDs))
	for _, id := range memberIDs {
		name, err := s.names.ResolveName(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Int("member_id", id).Msg("Name lookup failed")
			name = UnknownMemberName
		}
		roster = append(roster, RosterEntry{MemberID: id, Name: name})
	}

	return &ClassBoard{
		ID:             class.ID,
		Name:           class.Name,
		Weekday:        class.Weekday,
		StartTime:      class.StartTime,
		Capacity:       class.Capacity,
		OccurrenceDate: occ.Date.Format("2006-01-02"),
		StartsAt:       occ.Start,
		EnrolledCount:  len(memberIDs),
		Roster:         roster,
	}, nil
}
