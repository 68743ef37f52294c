package group

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
	ErrNotAdmin            = errors.New("only a group admin can manage members")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group and adds the creator as admin
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*Group, error) {
	group, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.AddMember(ctx, group.ID, creatorID, MemberRoleAdmin); err != nil {
		return nil, err
	}

	return group, nil
}

// GetByIDWithMembers retrieves a group with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id int64) (*Group, []*GroupMember, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, ErrGroupNotFound
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// ListByUserID retrieves all groups a user belongs to
func (s *Service) ListByUserID(ctx context.Context, userID int64) ([]*Group, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// AddMember adds a user to a group. Only admins can add members.
func (s *Service) AddMember(ctx context.Context, groupID, actorID int64, req *AddMemberRequest) (*GroupMember, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	if err := s.requireAdmin(ctx, groupID, actorID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetMember(ctx, groupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	return s.repo.AddMember(ctx, groupID, req.UserID, MemberRoleMember)
}

// RemoveMember removes a user from a group. Only admins can remove
// members; a member can always remove themselves.
func (s *Service) RemoveMember(ctx context.Context, groupID, actorID, userID int64) error {
	if actorID != userID {
		if err := s.requireAdmin(ctx, groupID, actorID); err != nil {
			return err
		}
	}

	member, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	return s.repo.RemoveMember(ctx, groupID, userID)
}

func (s *Service) requireAdmin(ctx context.Context, groupID, userID int64) error {
	member, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member == nil || member.Role != MemberRoleAdmin {
		return ErrNotAdmin
	}
	return nil
}
