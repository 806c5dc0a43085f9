package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// Accepted layouts for period boundaries, most specific first.
var periodLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// SalesService provides read-only sales windows in UTC.
type SalesService struct {
	repo ports.SalesRepository
	now  func() time.Time
}

func NewSalesService(repo ports.SalesRepository) *SalesService {
	return &SalesService{repo: repo, now: time.Now}
}

func (s *SalesService) Today(ctx context.Context) ([]*domain.Order, error) {
	from, to := dayWindow(s.now())
	return s.repo.ListOrders(ctx, ports.SalesFilter{From: from, To: to})
}

func (s *SalesService) Month(ctx context.Context) ([]*domain.Order, error) {
	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.repo.ListOrders(ctx, ports.SalesFilter{From: from, To: from.AddDate(0, 1, 0)})
}

// UserToday returns today's orders placed by userID.
func (s *SalesService) UserToday(ctx context.Context, userID uint) ([]*domain.Order, error) {
	from, to := dayWindow(s.now())
	return s.repo.ListOrders(ctx, ports.SalesFilter{From: from, To: to, CreatedBy: &userID})
}

// Period returns orders between From and To. A bare-date To covers the
// whole day.
func (s *SalesService) Period(ctx context.Context, in ports.PeriodInput) ([]*domain.Order, error) {
	from, _, err := parseBoundary(in.From)
	if err != nil {
		return nil, fmt.Errorf("periodFrom: %w", err)
	}
	to, dateOnly, err := parseBoundary(in.To)
	if err != nil {
		return nil, fmt.Errorf("periodTo: %w", err)
	}
	if dateOnly {
		to = to.AddDate(0, 0, 1)
	} else {
		to = to.Add(time.Nanosecond)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("period start is after its end: %w", domain.ErrInvalidInput)
	}
	return s.repo.ListOrders(ctx, ports.SalesFilter{From: from, To: to})
}

func dayWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

// parseBoundary parses raw in UTC and reports whether it was a bare date.
func parseBoundary(raw string) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, fmt.Errorf("date is required: %w", domain.ErrInvalidInput)
	}
	for _, layout := range periodLayouts {
		t, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			return t.UTC(), layout == "2006-01-02", nil
		}
	}
	return time.Time{}, false, fmt.Errorf("cannot parse date %q: %w", raw, domain.ErrInvalidInput)
}
