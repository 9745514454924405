package service

import (
	"context"

	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// Seeder populates an empty store with the default branches and shift
// templates on startup. Seeding never overwrites existing records.
type Seeder struct {
	branches  *repository.BranchRepository
	templates *repository.TemplateRepository
	logger    *logger.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(branches *repository.BranchRepository, templates *repository.TemplateRepository, log *logger.Logger) *Seeder {
	return &Seeder{
		branches:  branches,
		templates: templates,
		logger:    log.WithComponent("seed"),
	}
}

// Run seeds default branches when no branch exists and default templates when
// no template exists. The two checks are independent.
func (s *Seeder) Run(ctx context.Context) error {
	branchCount, err := s.branches.Count(ctx)
	if err != nil {
		return err
	}
	if branchCount == 0 {
		for _, name := range []string{"BerlinerTor", "Eiffestraße", "Hansaplatz"} {
			if _, err := s.branches.Create(ctx, name); err != nil {
				return err
			}
		}
		s.logger.Info().Msg("default branches seeded")
	}

	templateCount, err := s.templates.Count(ctx)
	if err != nil {
		return err
	}
	if templateCount == 0 {
		defaults := []repository.ShiftTemplate{
			{Name: "Frühschicht", StartTime: "07:00:00", EndTime: "15:00:00"},
			{Name: "Spätschicht", StartTime: "15:00:00", EndTime: "23:00:00"},
			{Name: "Nachtschicht", StartTime: "23:00:00", EndTime: "07:00:00"},
		}
		for i := range defaults {
			if err := s.templates.Create(ctx, &defaults[i]); err != nil {
				return err
			}
		}
		s.logger.Info().Msg("default shift templates seeded")
	}

	return nil
}
