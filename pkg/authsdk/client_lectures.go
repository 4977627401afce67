package authsdk

import (
	"context"
	"net/http"
)

// GetMenu fetches the navigation menu.
func (c *SDKClient) GetMenu(ctx context.Context) (*Menu, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/menu-items", nil, nil)
	if err != nil {
		return nil, err
	}

	var menus []Menu
	if err := decodeJSON(resp, &menus, http.StatusOK); err != nil {
		return nil, err
	}
	return firstMenu(menus)
}

// GetLecturePages fetches every page of a lecture in page order. A lecture
// with no content yields an empty slice.
func (c *SDKClient) GetLecturePages(ctx context.Context, subject, lecture string) ([]LecturePage, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/lectures/data/get", GetLecturePagesRequest{
		Subject: subject,
		Lecture: lecture,
	}, nil)
	if err != nil {
		return nil, err
	}

	pages := []LecturePage{}
	if err := decodeJSON(resp, &pages, http.StatusOK); err != nil {
		return nil, err
	}
	return pages, nil
}
