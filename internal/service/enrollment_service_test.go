package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gymdesk/gymdesk-backend/internal/clock"
	"github.com/gymdesk/gymdesk-backend/internal/model"
	"github.com/gymdesk/gymdesk-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var testLoc = time.FixedZone("ART", -3*60*60)

// 2026-08-31 is a Monday.
var testMonday = time.Date(2026, 8, 31, 0, 0, 0, 0, testLoc)

type fakeCatalog struct {
	classes map[int]*model.Class
}

func (f *fakeCatalog) GetByID(_ context.Context, id int) (*model.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeCatalog) List(_ context.Context) ([]model.Class, error) {
	out := make([]model.Class, 0, len(f.classes))
	for _, c := range f.classes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeLedger mirrors the store's contract: insert checks capacity and
// uniqueness under one lock, like the real transaction does under FOR UPDATE.
type fakeLedger struct {
	mu       sync.Mutex
	capacity map[int]int
	seats    map[string]map[int]bool
}

func newFakeLedger(capacity map[int]int) *fakeLedger {
	return &fakeLedger{capacity: capacity, seats: make(map[string]map[int]bool)}
}

func seatKey(classID int, date time.Time) string {
	return fmt.Sprintf("%d|%s", classID, date.Format("2006-01-02"))
}

func (f *fakeLedger) Exists(_ context.Context, classID, memberID int, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seats[seatKey(classID, date)][memberID], nil
}

func (f *fakeLedger) Insert(_ context.Context, classID, memberID int, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cap, ok := f.capacity[classID]
	if !ok {
		return repository.ErrClassMissing
	}
	key := seatKey(classID, date)
	if f.seats[key][memberID] {
		return repository.ErrAlreadyEnrolled
	}
	if len(f.seats[key]) >= cap {
		return repository.ErrClassFull
	}
	if f.seats[key] == nil {
		f.seats[key] = make(map[int]bool)
	}
	f.seats[key][memberID] = true
	return nil
}

func (f *fakeLedger) Delete(_ context.Context, classID, memberID int, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := seatKey(classID, date)
	if !f.seats[key][memberID] {
		return false, nil
	}
	delete(f.seats[key], memberID)
	return true, nil
}

func (f *fakeLedger) count(classID int, date time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seats[seatKey(classID, date)])
}

// newTestEngine builds the engine around one class: Yoga, Monday 18:00.
func newTestEngine(capacity int, now time.Time) (*EnrollmentService, *fakeLedger, *clock.Fixed) {
	yoga := &model.Class{
		ID:        1,
		Name:      "Yoga",
		Weekday:   model.Monday,
		StartTime: model.TimeOfDay{Hour: 18, Minute: 0},
		Capacity:  capacity,
	}
	catalog := &fakeCatalog{classes: map[int]*model.Class{1: yoga}}
	ledger := newFakeLedger(map[int]int{1: capacity})
	clk := clock.NewFixed(now)
	svc := NewEnrollmentService(catalog, ledger, clk, nil, zerolog.Nop())
	return svc, ledger, clk
}

func mustToggle(t *testing.T, svc *EnrollmentService, memberID int, unsubscribe bool) *ToggleResult {
	t.Helper()
	res, err := svc.Toggle(context.Background(), 1, memberID, unsubscribe)
	if err != nil {
		t.Fatalf("Toggle(member %d): %v", memberID, err)
	}
	return res
}

func TestToggleScenario(t *testing.T) {
	svc, ledger, clk := newTestEngine(2, testMonday.Add(10*time.Hour))

	if res := mustToggle(t, svc, 1, false); res.Outcome != OutcomeEnrolled {
		t.Fatalf("enroll(A) = %s, want %s", res.Outcome, OutcomeEnrolled)
	}
	if res := mustToggle(t, svc, 2, false); res.Outcome != OutcomeEnrolled {
		t.Fatalf("enroll(B) = %s, want %s", res.Outcome, OutcomeEnrolled)
	}
	if res := mustToggle(t, svc, 3, false); res.Outcome != OutcomeClassFull {
		t.Fatalf("enroll(C) = %s, want %s", res.Outcome, OutcomeClassFull)
	}

	// Half an hour into the class, A can still cancel.
	clk.Set(testMonday.Add(18*time.Hour + 30*time.Minute))
	res := mustToggle(t, svc, 1, true)
	if res.Outcome != OutcomeUnsubscribed {
		t.Fatalf("unsubscribe(A) = %s, want %s", res.Outcome, OutcomeUnsubscribed)
	}
	if res.OccurrenceDate != "2026-08-31" {
		t.Fatalf("unsubscribe hit occurrence %s, want 2026-08-31", res.OccurrenceDate)
	}

	// The freed seat does not let C in: enrollment closed at 17:30.
	clk.Set(testMonday.Add(18*time.Hour + 29*time.Minute))
	res = mustToggle(t, svc, 3, false)
	if res.Outcome != OutcomeEnrollClosed {
		t.Fatalf("late enroll(C) = %s, want %s", res.Outcome, OutcomeEnrollClosed)
	}
	if res.OccurrenceDate != "2026-08-31" {
		t.Fatalf("late enroll hit occurrence %s, want 2026-08-31", res.OccurrenceDate)
	}

	// Only B holds a seat for Monday's occurrence.
	if got := ledger.count(1, testMonday); got != 1 {
		t.Fatalf("final seat count = %d, want 1", got)
	}
	if taken, _ := ledger.Exists(context.Background(), 1, 2, testMonday); !taken {
		t.Fatal("B lost their seat")
	}
}

func TestEnrollWindowBoundaries(t *testing.T) {
	start := testMonday.Add(18 * time.Hour)

	tests := []struct {
		name string
		now  time.Time
		want Outcome
	}{
		{"31 minutes before start", start.Add(-31 * time.Minute), OutcomeEnrolled},
		{"exactly 30 minutes before start", start.Add(-30 * time.Minute), OutcomeEnrollClosed},
		{"29 minutes before start", start.Add(-29 * time.Minute), OutcomeEnrollClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestEngine(5, tt.now)
			if res := mustToggle(t, svc, 1, false); res.Outcome != tt.want {
				t.Errorf("enroll = %s, want %s", res.Outcome, tt.want)
			}
		})
	}
}

func TestUnsubscribeWindowBoundaries(t *testing.T) {
	start := testMonday.Add(18 * time.Hour)

	tests := []struct {
		name string
		now  time.Time
		want Outcome
	}{
		{"59 minutes after start", start.Add(59 * time.Minute), OutcomeUnsubscribed},
		{"exactly 60 minutes after start", start.Add(60 * time.Minute), OutcomeUnsubscribed},
		{"61 minutes after start", start.Add(61 * time.Minute), OutcomeCancelClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ledger, clk := newTestEngine(5, testMonday.Add(10*time.Hour))
			mustToggle(t, svc, 1, false)

			clk.Set(tt.now)
			res := mustToggle(t, svc, 1, true)
			if res.Outcome != tt.want {
				t.Errorf("unsubscribe = %s, want %s", res.Outcome, tt.want)
			}
			if tt.want == OutcomeUnsubscribed && ledger.count(1, testMonday) != 0 {
				t.Error("seat was not freed")
			}
		})
	}
}

// A class that started stays the current occurrence through its cancel
// grace, so cancelling mid-class still hits today's row.
func TestCancelDuringClass(t *testing.T) {
	svc, ledger, clk := newTestEngine(5, testMonday.Add(10*time.Hour))
	mustToggle(t, svc, 1, false)

	clk.Set(testMonday.Add(18*time.Hour + 45*time.Minute))
	res := mustToggle(t, svc, 1, true)
	if res.Outcome != OutcomeUnsubscribed {
		t.Fatalf("unsubscribe = %s, want %s", res.Outcome, OutcomeUnsubscribed)
	}
	if res.OccurrenceDate != "2026-08-31" {
		t.Fatalf("cancelled occurrence %s, want 2026-08-31", res.OccurrenceDate)
	}
	if ledger.count(1, testMonday) != 0 {
		t.Fatal("seat was not freed")
	}
}

func TestEnrollIdempotent(t *testing.T) {
	svc, ledger, clk := newTestEngine(5, testMonday.Add(10*time.Hour))

	if res := mustToggle(t, svc, 1, false); res.Outcome != OutcomeEnrolled {
		t.Fatalf("first enroll = %s, want %s", res.Outcome, OutcomeEnrolled)
	}
	if res := mustToggle(t, svc, 1, false); res.Outcome != OutcomeAlreadyEnrolled {
		t.Fatalf("second enroll = %s, want %s", res.Outcome, OutcomeAlreadyEnrolled)
	}

	// A retry after the window closed keeps answering the same way.
	clk.Set(testMonday.Add(17*time.Hour + 45*time.Minute))
	if res := mustToggle(t, svc, 1, false); res.Outcome != OutcomeAlreadyEnrolled {
		t.Fatalf("retried enroll = %s, want %s", res.Outcome, OutcomeAlreadyEnrolled)
	}
	if got := ledger.count(1, testMonday); got != 1 {
		t.Fatalf("seat count = %d, want 1", got)
	}
}

func TestUnsubscribeNotEnrolled(t *testing.T) {
	svc, ledger, _ := newTestEngine(5, testMonday.Add(10*time.Hour))

	if res := mustToggle(t, svc, 1, true); res.Outcome != OutcomeNotEnrolled {
		t.Fatalf("unsubscribe = %s, want %s", res.Outcome, OutcomeNotEnrolled)
	}
	if got := ledger.count(1, testMonday); got != 0 {
		t.Fatalf("ledger mutated: count = %d", got)
	}
}

func TestToggleUnknownClass(t *testing.T) {
	svc, _, _ := newTestEngine(5, testMonday.Add(10*time.Hour))

	_, err := svc.Toggle(context.Background(), 99, 1, false)
	if !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("Toggle(unknown class) err = %v, want %v", err, ErrClassNotFound)
	}
}

func TestOccurrenceAdvancesAfterGrace(t *testing.T) {
	// 19:01 Monday: the 18:00 class plus its grace is over, so an enroll
	// lands on next Monday's occurrence.
	svc, ledger, _ := newTestEngine(5, testMonday.Add(19*time.Hour+time.Minute))

	res := mustToggle(t, svc, 1, false)
	if res.Outcome != OutcomeEnrolled {
		t.Fatalf("enroll = %s, want %s", res.Outcome, OutcomeEnrolled)
	}
	if res.OccurrenceDate != "2026-09-07" {
		t.Fatalf("occurrence = %s, want 2026-09-07", res.OccurrenceDate)
	}
	if got := ledger.count(1, testMonday.AddDate(0, 0, 7)); got != 1 {
		t.Fatalf("next week seat count = %d, want 1", got)
	}
}

func TestConcurrentEnrollCapacity(t *testing.T) {
	const capacity = 5
	const contenders = 20

	svc, ledger, _ := newTestEngine(capacity, testMonday.Add(10*time.Hour))

	var wg sync.WaitGroup
	outcomes := make([]Outcome, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(memberID int) {
			defer wg.Done()
			res, err := svc.Toggle(context.Background(), 1, memberID+1, false)
			if err != nil {
				t.Errorf("Toggle(member %d): %v", memberID+1, err)
				return
			}
			outcomes[memberID] = res.Outcome
		}(i)
	}
	wg.Wait()

	var enrolled, full int
	for _, o := range outcomes {
		switch o {
		case OutcomeEnrolled:
			enrolled++
		case OutcomeClassFull:
			full++
		default:
			t.Errorf("unexpected outcome %q", o)
		}
	}
	if enrolled != capacity {
		t.Errorf("enrolled = %d, want exactly %d", enrolled, capacity)
	}
	if full != contenders-capacity {
		t.Errorf("rejected = %d, want %d", full, contenders-capacity)
	}
	if got := ledger.count(1, testMonday); got != capacity {
		t.Errorf("final seat count = %d, want %d", got, capacity)
	}
}
