package http

import (
	"context"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
)

// Gateway is the login and token-check surface of service.AuthGateway.
type Gateway interface {
	Login(ctx context.Context, username, password string) (domain.LoginResult, error)
	CheckToken(ctx context.Context, token string) (domain.TokenCheckResult, error)
}

// Menus is the navigation menu surface of service.MenuService.
type Menus interface {
	Menu(ctx context.Context) (domain.Menu, error)
	AddSubject(ctx context.Context, label string) (domain.Menu, error)
	AddLecture(ctx context.Context, subject, label string) (domain.Menu, error)
}

// Lectures is the content surface of service.LectureService.
type Lectures interface {
	SavePage(ctx context.Context, p domain.LecturePage) error
	Pages(ctx context.Context, subject, lecture string) ([]domain.LecturePage, error)
}
