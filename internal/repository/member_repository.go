package repository

import (
	"context"
	"errors"

	"github.com/gymdesk/gymdesk-backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateEmail = errors.New("member with this email already exists")

// MemberRepository handles member directory data access.
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// GetByID retrieves a member by ID.
func (r *MemberRepository) GetByID(ctx context.Context, id int) (*model.Member, error) {
	m := &model.Member{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, active, created_at, updated_at
		 FROM members WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListPaginated retrieves members with pagination and optional active filter.
func (r *MemberRepository) ListPaginated(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Member, int, error) {
	countQuery := `SELECT COUNT(*) FROM members`
	if activeOnly {
		countQuery += ` WHERE active`
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, email, phone, active, created_at, updated_at FROM members`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
	return members, total, rows.Err()
}

// Create inserts a new member.
func (r *MemberRepository) Create(ctx context.Context, m *model.Member) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO members (name, email, phone, active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		m.Name, m.Email, m.Phone, m.Active,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Update modifies a member's directory record.
func (r *MemberRepository) Update(ctx context.Context, m *model.Member) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE members SET name = $1, email = $2, phone = $3, active = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		m.Name, m.Email, m.Phone, m.Active, m.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Delete removes a member by ID. Their enrollment rows cascade.
func (r *MemberRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	return err
}
