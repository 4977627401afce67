//go:build e2e

package lectern_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/lectern/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainer(t, relaxedLimits))

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.Equal(t, "ok", health.Checks.Database)
}

func TestLoginAndTokenCheck(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainer(t, relaxedLimits))
	ctx := t.Context()

	session := login(t, client)
	require.Equal(t, authsdk.UserInfo{ID: 1, FullName: testFullName, Username: testUsername, Email: testEmail}, session.User())

	check, err := client.CheckToken(ctx, session.AccessToken())
	require.NoError(t, err)
	require.True(t, check.IsValid)

	check, err = client.CheckToken(ctx, session.RefreshToken())
	require.NoError(t, err)
	require.False(t, check.IsValid)
	require.Equal(t, "wrong_token_type", check.Error)

	_, err = client.Login(ctx, testUsername, "wrong")
	require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)
	_, err = client.Login(ctx, "mallory", testPassword)
	require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)
}

func TestAccessTokenExpires(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainer(t, relaxedLimits))
	session := login(t, client)

	time.Sleep(3 * time.Second)

	check, err := client.CheckToken(t.Context(), session.AccessToken())
	require.NoError(t, err)
	require.False(t, check.IsValid)
	require.Equal(t, "expired", check.Error)

	_, err = session.AddSubject(t.Context(), "Maths")
	require.ErrorIs(t, err, authsdk.ErrInvalidToken)
}

func TestMenuAndLectureContent(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainer(t, relaxedLimits))
	ctx := t.Context()
	session := login(t, client)

	menu, err := client.GetMenu(ctx)
	require.NoError(t, err)
	require.Empty(t, menu.Items)

	_, err = session.AddSubject(ctx, "Maths")
	require.NoError(t, err)
	_, err = session.AddSubject(ctx, "Maths")
	require.ErrorIs(t, err, authsdk.ErrAlreadyExists)

	menu, err = session.AddLecture(ctx, "Maths", "Limits")
	require.NoError(t, err)
	require.Equal(t, []authsdk.MenuLecture{{
		Label: "Limits", Icon: "pi pi-fw pi-bookmark", To: "/lectures/Maths/Limits",
	}}, menu.Items[0].Items)

	_, err = session.AddLecture(ctx, "Physics", "Waves")
	require.ErrorIs(t, err, authsdk.ErrSubjectNotFound)

	for page, data := range []string{"# Intro", "# Epsilon-delta"} {
		_, err := session.AddLecturePage(ctx, authsdk.LecturePageRequest{
			Subject: "Maths", Lecture: "Limits", Page: int64(page + 1), Data: data,
		})
		require.NoError(t, err)
	}

	pages, err := client.GetLecturePages(ctx, "Maths", "Limits")
	require.NoError(t, err)
	require.Equal(t, []authsdk.LecturePage{{Page: 1, Data: "# Intro"}, {Page: 2, Data: "# Epsilon-delta"}}, pages)

	pages, err = client.GetLecturePages(ctx, "Maths", "Derivatives")
	require.NoError(t, err)
	require.Empty(t, pages)
}

func TestLoginRateLimit(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainer(t, nil))
	ctx := t.Context()

	var limited bool
	for range 10 {
		_, err := client.Login(ctx, testUsername, "wrong")
		var apiErr *authsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		if apiErr.Code == authsdk.ErrorCodeRateLimited {
			limited = true
			break
		}
		require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)
	}
	require.True(t, limited, "login attempts should be rate limited")
}
