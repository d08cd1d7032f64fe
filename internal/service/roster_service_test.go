package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/gymdesk/gymdesk-backend/internal/clock"
	"github.com/gymdesk/gymdesk-backend/internal/model"
	"github.com/rs/zerolog"
)

func (f *fakeLedger) ListForOccurrence(_ context.Context, classID int, date time.Time) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int, 0)
	for id := range f.seats[seatKey(classID, date)] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

type fakeResolver struct {
	names map[int]string
}

func (f *fakeResolver) ResolveName(_ context.Context, memberID int) (string, error) {
	name, ok := f.names[memberID]
	if !ok {
		return "", fmt.Errorf("member %d not found", memberID)
	}
	return name, nil
}

func newTestRoster() (*RosterService, *fakeLedger, *fakeResolver) {
	catalog := &fakeCatalog{classes: map[int]*model.Class{
		1: {ID: 1, Name: "Yoga", Weekday: model.Monday, StartTime: model.TimeOfDay{Hour: 18}, Capacity: 2},
		2: {ID: 2, Name: "Spinning", Weekday: model.Tuesday, StartTime: model.TimeOfDay{Hour: 7, Minute: 30}, Capacity: 15},
	}}
	ledger := newFakeLedger(map[int]int{1: 2, 2: 15})
	resolver := &fakeResolver{names: map[int]string{1: "Valentina Rojas", 2: "Mateo Fernandez"}}
	clk := clock.NewFixed(testMonday.Add(10 * time.Hour))
	svc := NewRosterService(catalog, ledger, resolver, clk, zerolog.Nop())
	return svc, ledger, resolver
}

func TestBoard(t *testing.T) {
	svc, ledger, _ := newTestRoster()
	ctx := context.Background()

	if err := ledger.Insert(ctx, 1, 1, testMonday); err != nil {
		t.Fatalf("seed seat: %v", err)
	}
	if err := ledger.Insert(ctx, 1, 2, testMonday); err != nil {
		t.Fatalf("seed seat: %v", err)
	}

	boards, err := svc.Board(ctx)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("got %d boards, want 2", len(boards))
	}

	yoga := boards[0]
	if yoga.Name != "Yoga" {
		t.Fatalf("boards[0] = %q, want Yoga", yoga.Name)
	}
	if yoga.OccurrenceDate != "2026-08-31" {
		t.Errorf("yoga occurrence = %s, want 2026-08-31", yoga.OccurrenceDate)
	}
	if !yoga.StartsAt.Equal(testMonday.Add(18 * time.Hour)) {
		t.Errorf("yoga starts at %v, want 18:00", yoga.StartsAt)
	}
	if yoga.EnrolledCount != 2 {
		t.Errorf("yoga enrolled = %d, want 2", yoga.EnrolledCount)
	}
	wantNames := []string{"Valentina Rojas", "Mateo Fernandez"}
	for i, entry := range yoga.Roster {
		if entry.Name != wantNames[i] {
			t.Errorf("roster[%d] = %q, want %q", i, entry.Name, wantNames[i])
		}
	}

	// Spinning runs Tuesday and has no seats taken.
	spinning := boards[1]
	if spinning.OccurrenceDate != "2026-09-01" {
		t.Errorf("spinning occurrence = %s, want 2026-09-01", spinning.OccurrenceDate)
	}
	if spinning.EnrolledCount != 0 || len(spinning.Roster) != 0 {
		t.Errorf("spinning should be empty, got count %d roster %v", spinning.EnrolledCount, spinning.Roster)
	}
}

func TestClassRosterUnknownMember(t *testing.T) {
	svc, ledger, _ := newTestRoster()
	ctx := context.Background()

	// Member 7 has no directory entry; the listing must not fail because of it.
	if err := ledger.Insert(ctx, 1, 1, testMonday); err != nil {
		t.Fatalf("seed seat: %v", err)
	}
	if err := ledger.Insert(ctx, 1, 7, testMonday); err != nil {
		t.Fatalf("seed seat: %v", err)
	}

	board, err := svc.ClassRoster(ctx, 1)
	if err != nil {
		t.Fatalf("ClassRoster: %v", err)
	}
	if board.EnrolledCount != 2 {
		t.Fatalf("enrolled = %d, want 2", board.EnrolledCount)
	}

	byID := make(map[int]string, len(board.Roster))
	for _, entry := range board.Roster {
		byID[entry.MemberID] = entry.Name
	}
	if byID[1] != "Valentina Rojas" {
		t.Errorf("member 1 = %q, want resolved name", byID[1])
	}
	if byID[7] != UnknownMemberName {
		t.Errorf("member 7 = %q, want %q", byID[7], UnknownMemberName)
	}
}

func TestClassRosterNotFound(t *testing.T) {
	svc, _, _ := newTestRoster()

	_, err := svc.ClassRoster(context.Background(), 99)
	if !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("err = %v, want %v", err, ErrClassNotFound)
	}
}
