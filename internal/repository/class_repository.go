package repository

import (
	"context"
	"fmt"

	"github.com/gymdesk/gymdesk-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClassRepository handles class catalog data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanClass reads one class row, normalizing the weekday column.
// Legacy rows may store the weekday as a number or a day name; rows written
// by this repository always carry the canonical name.
func scanClass(row rowScanner) (*model.Class, error) {
	c := &model.Class{}
	var weekday, startTime string

	if err := row.Scan(&c.ID, &c.Name, &weekday, &startTime, &c.Capacity, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	day, err := model.ParseWeekday(weekday)
	if err != nil {
		return nil, fmt.Errorf("class %d: %w", c.ID, err)
	}
	c.Weekday = day

	tod, err := model.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, fmt.Errorf("class %d: %w", c.ID, err)
	}
	c.StartTime = tod

	return c, nil
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, weekday, start_time, capacity, created_at, updated_at
		 FROM classes WHERE id = $1`, id)
	return scanClass(row)
}

// List retrieves all classes ordered by day and start time.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, weekday, start_time, capacity, created_at, updated_at
		 FROM classes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, *c)
	}
	return classes, rows.Err()
}

// Create inserts a new class. The weekday is stored as its canonical name.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, weekday, start_time, capacity)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Weekday.String(), c.StartTime.String(), c.Capacity,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE classes SET name = $1, weekday = $2, start_time = $3, capacity = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		c.Name, c.Weekday.String(), c.StartTime.String(), c.Capacity, c.ID,
	)
	return err
}

// Delete removes a class by its ID. Enrollment rows cascade.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return err
}
