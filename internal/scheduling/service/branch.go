package service

import (
	"context"
	"strings"

	"github.com/aljoud/shifts-backend/internal/scheduling/events"
	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/pkg/errors"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// BranchService manages restaurant branches.
type BranchService struct {
	branches *repository.BranchRepository
	bus      *events.Bus
	logger   *logger.Logger
}

// NewBranchService creates a new branch service
func NewBranchService(branches *repository.BranchRepository, bus *events.Bus, log *logger.Logger) *BranchService {
	return &BranchService{
		branches: branches,
		bus:      bus,
		logger:   log.WithComponent("branch"),
	}
}

// Create creates a branch. Names are trimmed; a blank or duplicate name is
// rejected.
func (s *BranchService) Create(ctx context.Context, name string) (*repository.Branch, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.Validation(map[string]string{
			"name": "must not be blank",
		})
	}

	branch, err := s.branches.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Entity: events.EntityBranch, Op: events.OpCreated, ID: branch.ID})
	s.logger.Info().Int64("branch_id", branch.ID).Str("name", branch.Name).Msg("branch created")

	return branch, nil
}

// Get returns a branch by ID
func (s *BranchService) Get(ctx context.Context, id int64) (*repository.Branch, error) {
	return s.branches.GetByID(ctx, id)
}

// List lists all branches ordered by name
func (s *BranchService) List(ctx context.Context) ([]*repository.Branch, error) {
	return s.branches.List(ctx)
}

// Delete deletes a branch and, through the cascading foreign keys, its
// employees and their shifts.
func (s *BranchService) Delete(ctx context.Context, id int64) error {
	if err := s.branches.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityBranch, Op: events.OpDeleted, ID: id})
	s.logger.Info().Int64("branch_id", id).Msg("branch deleted")

	return nil
}

// Clear deletes all branches and, through the cascades, everything scheduled
// under them.
func (s *BranchService) Clear(ctx context.Context) error {
	if err := s.branches.Clear(ctx); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityBranch, Op: events.OpDeleted})
	s.logger.Info().Msg("all branches cleared")

	return nil
}
