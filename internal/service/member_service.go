package service

import (
	"context"

	"github.com/gymdesk/gymdesk-backend/internal/model"
	"github.com/gymdesk/gymdesk-backend/internal/repository"
)

// MemberService handles the member directory. It also serves as the
// roster's NameResolver.
type MemberService struct {
	memberRepo *repository.MemberRepository
}

// NewMemberService creates a new MemberService.
func NewMemberService(memberRepo *repository.MemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

// GetByID retrieves a member by ID.
func (s *MemberService) GetByID(ctx context.Context, id int) (*model.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

// ListPaginated retrieves members with pagination.
func (s *MemberService) ListPaginated(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Member, int, error) {
	return s.memberRepo.ListPaginated(ctx, activeOnly, limit, offset)
}

// Create creates a new member record.
func (s *MemberService) Create(ctx context.Context, m *model.Member) error {
	return s.memberRepo.Create(ctx, m)
}

// Update modifies a member record.
func (s *MemberService) Update(ctx context.Context, m *model.Member) error {
	return s.memberRepo.Update(ctx, m)
}

// Delete removes a member and, via FK cascade, their ledger rows.
func (s *MemberService) Delete(ctx context.Context, id int) error {
	return s.memberRepo.Delete(ctx, id)
}

// ResolveName returns the member's display name for roster projection.
func (s *MemberService) ResolveName(ctx context.Context, memberID int) (string, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return "", err
	}
	return m.Name, nil
}
