// Package layout provides business logic for layout persistence, folder
// listing, and the publication state machine.
package layout

import (
	"context"
	"fmt"

	"pinya-planner/internal/domain"
)

// Service provides layout persistence and publication operations.
type Service struct {
	repo domain.LayoutRepository
}

// New creates a new Service.
func New(repo domain.LayoutRepository) *Service {
	return &Service{repo: repo}
}

// Save stores a layout, upserting by (name, folder). The report tells
// the caller whether an existing record was replaced.
func (s *Service) Save(ctx context.Context, l *domain.Layout) (*domain.SaveLayoutReport, error) {
	if l.CastellType == "" {
		l.CastellType = domain.DefaultCastellType
	}
	report, err := s.repo.Save(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("save layout: %w", err)
	}
	return report, nil
}

// Update replaces a previously loaded layout in place. Concurrent
// updates of the same layout are last-write-wins: there is no conflict
// token, matching the one-operator-at-a-time usage the tool assumes.
func (s *Service) Update(ctx context.Context, l *domain.Layout) (*domain.Layout, error) {
	return s.repo.Update(ctx, l)
}

// Get returns a layout by ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Layout, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all layouts, or only those in the given folder.
func (s *Service) List(ctx context.Context, folder *string) ([]domain.Layout, error) {
	return s.repo.List(ctx, folder)
}

// Delete removes a layout. Publication state needs no separate cleanup:
// the overview query can no longer see a record that does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Publish unions a date (or the GLOBAL sentinel) into each target
// layout's publication set. Publishing the same entry twice is a no-op.
func (s *Service) Publish(ctx context.Context, req domain.PublishRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	entry := domain.GlobalSentinel
	if req.Mode == domain.PublishDated {
		entry = req.Date
	}
	for _, id := range req.LayoutIDs {
		l, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("publish layout %s: %w", id, err)
		}
		dates := domain.UnionPublished(l.PublishedDates, entry)
		if len(dates) == len(l.PublishedDates) {
			continue // already published for this entry
		}
		if err := s.repo.SetPublishedDates(ctx, id, dates); err != nil {
			return fmt.Errorf("publish layout %s: %w", id, err)
		}
	}
	return nil
}

// Unpublish resets each target layout's publication set to empty. This
// is a total clear: dated and global entries go together.
func (s *Service) Unpublish(ctx context.Context, layoutIDs []string) error {
	if len(layoutIDs) == 0 {
		return domain.ErrValidation("layout ids are required")
	}
	for _, id := range layoutIDs {
		if err := s.repo.SetPublishedDates(ctx, id, nil); err != nil {
			return fmt.Errorf("unpublish layout %s: %w", id, err)
		}
	}
	return nil
}

// VisibleOn returns the layouts published for an ISO date, including
// globally published ones.
func (s *Service) VisibleOn(ctx context.Context, date string) ([]domain.Layout, error) {
	return s.repo.VisibleOn(ctx, date)
}
