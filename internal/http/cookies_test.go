package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfinder/jobfinder-api/config"
	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
)

func devCookies() *TokenCookies {
	return NewTokenCookies(config.AuthConfig{CookieSecret: "test-cookie-secret"}, true)
}

func testPair() domainauth.TokenPair {
	return domainauth.TokenPair{
		AccessToken:      "header.payload.signature",
		RefreshToken:     "rheader.rpayload.rsignature",
		AccessExpiresAt:  time.Now().Add(time.Hour),
		RefreshExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func requestWithCookies(t *testing.T, c *TokenCookies, pair domainauth.TokenPair) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	c.SetPair(rec, pair)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	return req
}

func TestTokenCookies_RoundTrip(t *testing.T) {
	c := devCookies()
	req := requestWithCookies(t, c, testPair())

	access, ok := c.Access(req)
	require.True(t, ok)
	assert.Equal(t, "header.payload.signature", access)

	refresh, ok := c.Refresh(req)
	require.True(t, ok)
	assert.Equal(t, "rheader.rpayload.rsignature", refresh)
}

func TestTokenCookies_RejectsTampering(t *testing.T) {
	c := devCookies()

	t.Run("forged value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: accessCookieName, Value: "forged.token.here"})
		_, ok := c.Access(req)
		assert.False(t, ok)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenCookies(config.AuthConfig{CookieSecret: "different-secret"}, true)
		req := requestWithCookies(t, other, testPair())
		_, ok := c.Access(req)
		assert.False(t, ok)
	})

	t.Run("missing cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := c.Access(req)
		assert.False(t, ok)
	})
}

func TestTokenCookies_Attributes(t *testing.T) {
	rec := httptest.NewRecorder()
	devCookies().SetPair(rec, testPair())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, ck := range cookies {
		assert.True(t, ck.HttpOnly)
		assert.False(t, ck.Secure, "dev mode stays on plain http")
		assert.Equal(t, "localhost", ck.Domain)
		assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
		assert.Positive(t, ck.MaxAge)
	}

	t.Run("production forces secure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		prod := NewTokenCookies(config.AuthConfig{
			CookieSecret: "s",
			CookieDomain: "jobs.example.ir",
		}, false)
		prod.SetPair(rec, testPair())
		for _, ck := range rec.Result().Cookies() {
			assert.True(t, ck.Secure)
			assert.Equal(t, "jobs.example.ir", ck.Domain)
		}
	})
}

func TestTokenCookies_Clear(t *testing.T) {
	rec := httptest.NewRecorder()
	devCookies().Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	names := []string{cookies[0].Name, cookies[1].Name}
	assert.ElementsMatch(t, []string{accessCookieName, refreshCookieName}, names)
	for _, ck := range cookies {
		assert.Equal(t, -1, ck.MaxAge)
		assert.Empty(t, ck.Value)
	}
}
