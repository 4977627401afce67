/*
Package authsdk provides a Go client for the Lectern service.

# Overview

The SDK has two entry points:

  - SDKClient: unauthenticated operations (login, token checks, reading the
    menu and lecture content, health checks)
  - Session: operations that need a bearer access token (editing the menu
    and storing lecture pages)

The request and response types double as the wire types of the HTTP
server, so both sides share one definition.

# Usage

	client := authsdk.NewSDKClient("http://localhost:8080")

	session, err := client.AuthenticateWithPassword(ctx, "alice", "pw123")
	if errors.Is(err, authsdk.ErrInvalidCredentials) {
		// wrong username or password
	}

	menu, err := session.AddSubject(ctx, "Maths")
	menu, err = session.AddLecture(ctx, "Maths", "Limits")

	_, err = session.AddLecturePage(ctx, authsdk.LecturePageRequest{
		Subject: "Maths",
		Lecture: "Limits",
		Page:    1,
		Data:    "# Limits",
	})

	pages, err := client.GetLecturePages(ctx, "Maths", "Limits")

# Errors

Non-2xx responses are returned as *APIError. The predefined values
(ErrInvalidCredentials, ErrInvalidToken, ErrSubjectNotFound, ...) match
with errors.Is on status code and error code.

# Thread Safety

SDKClient and Session are safe for concurrent use.
*/
package authsdk
