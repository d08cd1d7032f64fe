package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger outcomes surfaced as sentinel errors so callers can errors.Is them.
var (
	ErrClassFull       = errors.New("class occurrence is at capacity")
	ErrAlreadyEnrolled = errors.New("member already enrolled for this occurrence")
	ErrClassMissing    = errors.New("class does not exist")
)

// EnrollmentRepository is the enrollment ledger: one row per seat taken in
// one concrete occurrence of a class.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// CountForOccurrence returns the number of seats taken for one occurrence.
func (r *EnrollmentRepository) CountForOccurrence(ctx context.Context, classID int, date time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE class_id = $1 AND occurrence_date = $2`,
		classID, date,
	).Scan(&count)
	return count, err
}

// Exists reports whether the member already holds a seat for the occurrence.
func (r *EnrollmentRepository) Exists(ctx context.Context, classID, memberID int, date time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM enrollments
			WHERE class_id = $1 AND member_id = $2 AND occurrence_date = $3
		 )`,
		classID, memberID, date,
	).Scan(&exists)
	return exists, err
}

// Insert takes a seat for the member in one transaction. The class row is
// locked first so concurrent inserts for the same class serialize; the
// capacity count below it is therefore race-free, and the unique index on
// (class_id, member_id, occurrence_date) backstops duplicates.
//
// Returns ErrClassFull, ErrAlreadyEnrolled, or ErrClassMissing as business
// outcomes; any other error is a store fault and safe to retry.
func (r *EnrollmentRepository) Insert(ctx context.Context, classID, memberID int, date time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM classes WHERE id = $1 FOR UPDATE`, classID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrClassMissing
		}
		return fmt.Errorf("lock class: %w", err)
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE class_id = $1 AND occurrence_date = $2`,
		classID, date,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("count seats: %w", err)
	}
	if count >= capacity {
		return ErrClassFull
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO enrollments (class_id, member_id, occurrence_date)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (class_id, member_id, occurrence_date) DO NOTHING`,
		classID, memberID, date,
	)
	if err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyEnrolled
	}

	return tx.Commit(ctx)
}

// Delete frees the member's seat for the occurrence. Returns false if no
// matching row existed.
func (r *EnrollmentRepository) Delete(ctx context.Context, classID, memberID int, date time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM enrollments
		 WHERE class_id = $1 AND member_id = $2 AND occurrence_date = $3`,
		classID, memberID, date,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListForOccurrence returns the member IDs enrolled for one occurrence,
// oldest enrollment first.
func (r *EnrollmentRepository) ListForOccurrence(ctx context.Context, classID int, date time.Time) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT member_id FROM enrollments
		 WHERE class_id = $1 AND occurrence_date = $2
		 ORDER BY created_at, id`,
		classID, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		memberIDs = append(memberIDs, id)
	}
	return memberIDs, rows.Err()
}

// DeleteOlderThan purges ledger rows whose occurrence date is before the
// cutoff. Used by the retention worker; returns rows removed.
func (r *EnrollmentRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM enrollments WHERE occurrence_date < $1`, cutoff,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
