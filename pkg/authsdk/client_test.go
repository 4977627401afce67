package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *SDKClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSDKClient(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_Success(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice", req.Username)
		require.Equal(t, "pw123", req.Password)

		writeJSON(w, http.StatusOK, LoginResponse{
			UserInfo:     UserInfo{ID: 1, FullName: "Alice A", Username: "alice", Email: "a@x.com"},
			AccessToken:  "access",
			RefreshToken: "refresh",
		})
	})

	session, err := client.AuthenticateWithPassword(context.Background(), "alice", "pw123")
	require.NoError(t, err)
	require.Equal(t, "access", session.AccessToken())
	require.Equal(t, "refresh", session.RefreshToken())
	require.Equal(t, int64(1), session.User().ID)
	require.Equal(t, "a@x.com", session.User().Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		ErrInvalidCredentials.WriteError(w)
	})

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "Invalid username or password", apiErr.Description)
}

func TestCheckToken(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req CheckTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Token == "good" {
			writeJSON(w, http.StatusOK, CheckTokenResponse{IsValid: true})
			return
		}
		writeJSON(w, http.StatusOK, CheckTokenResponse{IsValid: false, Error: "expired"})
	})

	ok, err := client.CheckToken(context.Background(), "good")
	require.NoError(t, err)
	require.True(t, ok.IsValid)
	require.Empty(t, ok.Error)

	bad, err := client.CheckToken(context.Background(), "stale")
	require.NoError(t, err)
	require.False(t, bad.IsValid)
	require.Equal(t, "expired", bad.Error)

	session := client.NewSessionFromTokens("good", "")
	valid, err := session.Valid(context.Background())
	require.NoError(t, err)
	require.True(t, valid)
}

func TestGetMenu(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/menu-items", r.URL.Path)
		writeJSON(w, http.StatusOK, []Menu{{Items: []MenuSubject{{Label: "Maths", Items: []MenuLecture{}}}}})
	})

	menu, err := client.GetMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu.Items, 1)
	require.Equal(t, "Maths", menu.Items[0].Label)
}

func TestGetMenu_RejectsWrongShape(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []Menu{})
	})

	_, err := client.GetMenu(context.Background())
	require.Error(t, err)
}

func TestGetLecturePages_Empty(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req GetLecturePagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Maths", req.Subject)
		require.Equal(t, "Limits", req.Lecture)
		writeJSON(w, http.StatusOK, []LecturePage{})
	})

	pages, err := client.GetLecturePages(context.Background(), "Maths", "Limits")
	require.NoError(t, err)
	require.NotNil(t, pages)
	require.Empty(t, pages)
}

func TestSession_SendsBearerToken(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access" {
			ErrInvalidToken.WriteError(w)
			return
		}
		switch r.URL.Path {
		case "/subjects/add":
			var req AddSubjectRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, http.StatusOK, []Menu{{Items: []MenuSubject{{Label: req.Label, Items: []MenuLecture{}}}}})
		case "/lectures/add":
			ErrSubjectNotFound.WriteError(w)
		case "/lectures/data/add":
			var req LecturePageRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, int64(2), req.Page)
			writeJSON(w, http.StatusOK, MessageResponse{Message: "Data added successfully"})
		default:
			http.NotFound(w, r)
		}
	})

	session := client.NewSessionFromTokens("access", "refresh")

	menu, err := session.AddSubject(context.Background(), "Maths")
	require.NoError(t, err)
	require.Equal(t, "Maths", menu.Items[0].Label)

	_, err = session.AddLecture(context.Background(), "Physics", "Waves")
	require.ErrorIs(t, err, ErrSubjectNotFound)

	msg, err := session.AddLecturePage(context.Background(), LecturePageRequest{
		Subject: "Maths", Lecture: "Limits", Page: 2, Data: "x",
	})
	require.NoError(t, err)
	require.Equal(t, "Data added successfully", msg.Message)

	stale := client.NewSessionFromTokens("stale", "")
	_, err = stale.AddSubject(context.Background(), "Maths")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHealth(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/livez":
			writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Uptime: "1s"})
		case "/readyz":
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "degraded",
				Checks: &HealthChecks{Database: "error", Signer: "ok", Menu: "ok"},
			})
		}
	})

	live, err := client.GetLiveness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.GetReadiness(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, "degraded", ready.Status)
	require.Equal(t, "error", ready.Checks.Database)
}

func TestParseErrorResponse_NonEnvelope(t *testing.T) {
	t.Parallel()

	resp := &http.Response{StatusCode: http.StatusBadGateway}
	err := parseErrorResponse(resp, []byte("<html>bad gateway</html>"))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}

func TestAPIError_WriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewAPIError(http.StatusConflict, ErrorCodeConflict, "subject Maths already exists").WriteError(rec)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, ErrorCodeConflict, body.Error)
	require.Equal(t, "subject Maths already exists", body.ErrorDescription)
}
