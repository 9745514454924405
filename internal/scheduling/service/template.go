package service

import (
	"context"
	"strings"

	"github.com/aljoud/shifts-backend/internal/scheduling/events"
	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/pkg/errors"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

// TemplateService manages reusable shift templates. Unlike shifts, a template
// may describe an overnight window (end before start); it is stored as
// entered and only prefills forms.
type TemplateService struct {
	templates *repository.TemplateRepository
	bus       *events.Bus
	logger    *logger.Logger
}

// NewTemplateService creates a new shift template service
func NewTemplateService(templates *repository.TemplateRepository, bus *events.Bus, log *logger.Logger) *TemplateService {
	return &TemplateService{
		templates: templates,
		bus:       bus,
		logger:    log.WithComponent("template"),
	}
}

// Create creates a shift template. Times must be well-formed clock values but
// end is not required to be after start.
func (s *TemplateService) Create(ctx context.Context, name, start, end string) (*repository.ShiftTemplate, error) {
	details := map[string]string{}
	if strings.TrimSpace(name) == "" {
		details["name"] = "must not be blank"
	}
	if _, err := parseClock(start); err != nil {
		details["start_time"] = "must be a HH:MM:SS clock time"
	}
	if _, err := parseClock(end); err != nil {
		details["end_time"] = "must be a HH:MM:SS clock time"
	}
	if len(details) > 0 {
		return nil, errors.Validation(details)
	}

	tmpl := &repository.ShiftTemplate{
		Name:      name,
		StartTime: start,
		EndTime:   end,
	}
	if err := s.templates.Create(ctx, tmpl); err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Entity: events.EntityTemplate, Op: events.OpCreated, ID: tmpl.ID})
	s.logger.Info().
		Int64("template_id", tmpl.ID).
		Str("name", tmpl.Name).
		Str("start", tmpl.StartTime).
		Str("end", tmpl.EndTime).
		Msg("shift template created")

	return tmpl, nil
}

// List lists all templates ordered by name
func (s *TemplateService) List(ctx context.Context) ([]*repository.ShiftTemplate, error) {
	return s.templates.List(ctx)
}

// Delete deletes a template. Shifts already created from it are unaffected.
func (s *TemplateService) Delete(ctx context.Context, id int64) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityTemplate, Op: events.OpDeleted, ID: id})
	s.logger.Info().Int64("template_id", id).Msg("shift template deleted")

	return nil
}

// Clear deletes all templates
func (s *TemplateService) Clear(ctx context.Context) error {
	if err := s.templates.Clear(ctx); err != nil {
		return err
	}

	s.bus.Publish(events.Change{Entity: events.EntityTemplate, Op: events.OpDeleted})
	s.logger.Info().Msg("all shift templates cleared")

	return nil
}
