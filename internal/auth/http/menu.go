package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/aussiebroadwan/lectern/internal/auth/service"
	"github.com/aussiebroadwan/lectern/pkg/authsdk"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

type MenuHandler struct {
	Menus Menus
}

// HandleGet returns the navigation menu.
//
//	@Summary		Get the navigation menu
//	@Description	Returns a one-element array holding the menu document.
//	@Tags			Menu
//	@Produce		json
//	@Success		200	{array}		authsdk.Menu			"Menu document"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Menu unavailable"
//	@Router			/menu-items [get].
func (h *MenuHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Menus.Menu(r.Context())
	h.respond(w, r, menu, err)
}

// HandleAddSubject appends a subject to the menu.
//
//	@Summary		Add a subject
//	@Tags			Menu
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.AddSubjectRequest	true	"Subject label"
//	@Success		200		{array}		authsdk.Menu				"Updated menu"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Malformed request"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Missing or invalid access token"
//	@Failure		409		{object}	authsdk.ErrorResponse		"Subject already exists"
//	@Router			/subjects/add [post].
func (h *MenuHandler) HandleAddSubject(w http.ResponseWriter, r *http.Request) {
	var req authsdk.AddSubjectRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	menu, err := h.Menus.AddSubject(r.Context(), req.Label)
	h.respond(w, r, menu, err)
}

// HandleAddLecture appends a lecture under an existing subject.
//
//	@Summary		Add a lecture
//	@Tags			Menu
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.AddLectureRequest	true	"Lecture label and subject"
//	@Success		200		{array}		authsdk.Menu				"Updated menu"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Malformed request"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Missing or invalid access token"
//	@Failure		404		{object}	authsdk.ErrorResponse		"Subject not found"
//	@Failure		409		{object}	authsdk.ErrorResponse		"Lecture already exists"
//	@Router			/lectures/add [post].
func (h *MenuHandler) HandleAddLecture(w http.ResponseWriter, r *http.Request) {
	var req authsdk.AddLectureRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	menu, err := h.Menus.AddLecture(r.Context(), req.Subject, req.Label)
	h.respond(w, r, menu, err)
}

func (h *MenuHandler) respond(w http.ResponseWriter, r *http.Request, menu domain.Menu, err error) {
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, []authsdk.Menu{toMenu(menu)})
	case errors.Is(err, service.ErrInvalidMenuLabel):
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "label is required").WriteError(w)
	case errors.Is(err, service.ErrMenuSubjectNotFound):
		authsdk.ErrSubjectNotFound.WriteError(w)
	case errors.Is(err, service.ErrMenuDuplicate):
		authsdk.ErrAlreadyExists.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("menu request failed", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
	}
}

func toMenu(m domain.Menu) authsdk.Menu {
	out := authsdk.Menu{Items: make([]authsdk.MenuSubject, len(m.Items))}
	for i, s := range m.Items {
		lectures := make([]authsdk.MenuLecture, len(s.Items))
		for j, l := range s.Items {
			lectures[j] = authsdk.MenuLecture{Label: l.Label, Icon: l.Icon, To: l.To}
		}
		out.Items[i] = authsdk.MenuSubject{Label: s.Label, Items: lectures}
	}
	return out
}
