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

type LecturesHandler struct {
	Lectures Lectures
}

// HandleAddPage stores one page of lecture content.
//
//	@Summary		Store a lecture page
//	@Description	Creates or replaces the content stored for (subject, lecture, page).
//	@Tags			Lectures
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LecturePageRequest	true	"Page content"
//	@Success		200		{object}	authsdk.MessageResponse		"Stored"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Malformed request or page below 1"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Missing or invalid access token"
//	@Failure		500		{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/lectures/data/add [post].
func (h *LecturesHandler) HandleAddPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.LecturePageRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.Lectures.SavePage(ctx, domain.LecturePage{
		Subject: req.Subject,
		Lecture: req.Lecture,
		Page:    req.Page,
		Data:    req.Data,
	})
	switch {
	case errors.Is(err, service.ErrInvalidLecture):
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
		return
	case err != nil:
		slogx.FromContext(ctx).Error("failed to store lecture page", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Data added successfully"})
}

// HandleGetPages lists the pages of a lecture.
//
//	@Summary		Get lecture pages
//	@Description	Returns every stored page of the lecture ordered by page number, or an empty array.
//	@Tags			Lectures
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.GetLecturePagesRequest	true	"Subject and lecture"
//	@Success		200		{array}		authsdk.LecturePage				"Pages"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Malformed request"
//	@Failure		500		{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/lectures/data/get [post].
func (h *LecturesHandler) HandleGetPages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.GetLecturePagesRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pages, err := h.Lectures.Pages(ctx, req.Subject, req.Lecture)
	switch {
	case errors.Is(err, service.ErrInvalidLecture):
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
		return
	case err != nil:
		slogx.FromContext(ctx).Error("failed to list lecture pages", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]authsdk.LecturePage, len(pages))
	for i, p := range pages {
		out[i] = authsdk.LecturePage{Page: p.Page, Data: p.Data}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
