package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/aussiebroadwan/lectern/internal/auth/store"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// LectureService stores and serves lecture page text.
type LectureService struct {
	Store store.Store
	Now   func() time.Time
}

// SavePage inserts the page or overwrites the data of an existing one.
func (s *LectureService) SavePage(ctx context.Context, p domain.LecturePage) error {
	p.Subject = strings.TrimSpace(p.Subject)
	p.Lecture = strings.TrimSpace(p.Lecture)
	if err := validateLectureKey(p.Subject, p.Lecture); err != nil {
		return err
	}
	if p.Page < 1 {
		return fmt.Errorf("%w: page must be at least 1", ErrInvalidLecture)
	}

	p.UpdatedAt = time.Now()
	if s.Now != nil {
		p.UpdatedAt = s.Now()
	}

	if err := s.Store.Lectures().UpsertPage(ctx, p); err != nil {
		slogx.FromContext(ctx).Error("failed to save lecture page", slog.Any("error", err))
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	slogx.FromContext(ctx).Info("lecture page saved",
		slog.String("subject", p.Subject),
		slog.String("lecture", p.Lecture),
		slog.Int64("page", p.Page),
	)
	return nil
}

// Pages returns the lecture's pages in page order. A lecture with no pages
// yields an empty slice.
func (s *LectureService) Pages(ctx context.Context, subject, lecture string) ([]domain.LecturePage, error) {
	subject = strings.TrimSpace(subject)
	lecture = strings.TrimSpace(lecture)
	if err := validateLectureKey(subject, lecture); err != nil {
		return nil, err
	}

	pages, err := s.Store.Lectures().ListPages(ctx, subject, lecture)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return pages, nil
}

func validateLectureKey(subject, lecture string) error {
	if subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidLecture)
	}
	if lecture == "" {
		return fmt.Errorf("%w: lecture is required", ErrInvalidLecture)
	}
	return nil
}
