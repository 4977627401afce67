package authsdk

import (
	"context"
	"net/http"
	"sync"
)

// Session holds the tokens of a logged in user and performs the
// operations that need a bearer access token. Sessions do not refresh
// tokens; once the access token expires calls fail with ErrInvalidToken
// and the caller logs in again.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	user         UserInfo
	accessToken  string
	refreshToken string
}

func newSession(client *SDKClient, login *LoginResponse) *Session {
	return &Session{
		client:       client,
		user:         login.UserInfo,
		accessToken:  login.AccessToken,
		refreshToken: login.RefreshToken,
	}
}

// User returns the identity returned at login. It is empty for sessions
// built with NewSessionFromTokens.
func (s *Session) User() UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Valid reports whether the service still accepts the access token.
func (s *Session) Valid(ctx context.Context) (bool, error) {
	check, err := s.client.CheckToken(ctx, s.AccessToken())
	if err != nil {
		return false, err
	}
	return check.IsValid, nil
}

// AddSubject appends a subject to the menu and returns the updated menu.
func (s *Session) AddSubject(ctx context.Context, label string) (*Menu, error) {
	return s.postMenu(ctx, "/subjects/add", AddSubjectRequest{Label: label})
}

// AddLecture appends a lecture under subject and returns the updated menu.
// An unknown subject yields ErrSubjectNotFound.
func (s *Session) AddLecture(ctx context.Context, subject, label string) (*Menu, error) {
	return s.postMenu(ctx, "/lectures/add", AddLectureRequest{Label: label, Subject: subject})
}

// AddLecturePage stores the content of one page, replacing any earlier
// content for the same page.
func (s *Session) AddLecturePage(ctx context.Context, page LecturePageRequest) (*MessageResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/lectures/data/add", page)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Session) postMenu(ctx context.Context, path string, payload any) (*Menu, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}

	var menus []Menu
	if err := decodeJSON(resp, &menus, http.StatusOK); err != nil {
		return nil, err
	}
	return firstMenu(menus)
}
