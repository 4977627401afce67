package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/aussiebroadwan/lectern/internal/auth/store/drivers/sqlite/gen"
)

type lecturesRepo struct {
	q *gen.Queries
}

func (r *lecturesRepo) UpsertPage(ctx context.Context, p domain.LecturePage) error {
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	return r.q.UpsertLecturePage(ctx, gen.UpsertLecturePageParams{
		Subject:   p.Subject,
		Lecture:   p.Lecture,
		Page:      p.Page,
		Data:      p.Data,
		UpdatedAt: updatedAt.UTC(),
	})
}

func (r *lecturesRepo) ListPages(ctx context.Context, subject, lecture string) ([]domain.LecturePage, error) {
	rows, err := r.q.ListLecturePages(ctx, gen.ListLecturePagesParams{
		Subject: subject,
		Lecture: lecture,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.LecturePage, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapLecturePage(row))
	}
	return out, nil
}
