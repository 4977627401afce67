package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestLectureService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := &LectureService{Store: f.store, Now: f.clock.Now}

	pages, err := svc.Pages(ctx, "Maths", "Limits")
	require.NoError(t, err)
	require.Empty(t, pages)

	require.NoError(t, svc.SavePage(ctx, domain.LecturePage{Subject: " Maths ", Lecture: "Limits", Page: 2, Data: "b"}))
	require.NoError(t, svc.SavePage(ctx, domain.LecturePage{Subject: "Maths", Lecture: "Limits", Page: 1, Data: "a"}))
	require.NoError(t, svc.SavePage(ctx, domain.LecturePage{Subject: "Maths", Lecture: "Limits", Page: 1, Data: "a2"}))

	pages, err = svc.Pages(ctx, "Maths", "Limits")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.Equal(t, "a2", pages[0].Data)
	require.Equal(t, "b", pages[1].Data)
}

func TestLectureService_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := &LectureService{Store: f.store}

	tests := []struct {
		name string
		p    domain.LecturePage
	}{
		{"missing subject", domain.LecturePage{Lecture: "L", Page: 1}},
		{"missing lecture", domain.LecturePage{Subject: "S", Page: 1}},
		{"page zero", domain.LecturePage{Subject: "S", Lecture: "L"}},
		{"negative page", domain.LecturePage{Subject: "S", Lecture: "L", Page: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, svc.SavePage(ctx, tt.p), ErrInvalidLecture)
		})
	}

	_, err := svc.Pages(ctx, "", "L")
	require.ErrorIs(t, err, ErrInvalidLecture)
}
