package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
	"github.com/custodia-labs/graha/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService manages saved reports.
type HistoryService struct {
	store driven.ReportStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.ReportStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns saved reports, newest first.
func (s *HistoryService) List(ctx context.Context) ([]domain.ReportSummary, error) {
	summaries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return summaries, nil
}

// Get returns a saved report. A unique ID prefix is accepted.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Report, error) {
	full, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, full)
}

// Delete removes a saved report. A unique ID prefix is accepted.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	full, err := s.resolveID(ctx, id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, full)
}

// resolveID expands a unique prefix of a report ID.
func (s *HistoryService) resolveID(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.NewError("history", domain.KindValidation, "report id is required")
	}

	summaries, err := s.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list reports: %w", err)
	}

	var matches []string
	for _, r := range summaries {
		if r.ID == id {
			return id, nil
		}
		if strings.HasPrefix(r.ID, id) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("report %s: %w", id, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", domain.NewError("history", domain.KindValidation, "report id prefix %q is ambiguous (%d matches)", id, len(matches))
	}
}
