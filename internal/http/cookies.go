package httpx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/jobfinder/jobfinder-api/config"
	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
)

// Cookie names the frontend reads and the middleware expects.
const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// TokenCookies writes and reads the signed token cookies. Values are stored
// as "<token>.<base64url(hmac-sha256(token))>"; a cookie whose signature does
// not verify is treated as absent.
type TokenCookies struct {
	secret []byte
	domain string
	secure bool
}

// NewTokenCookies builds the cookie transport from auth config. In dev mode
// cookies are scoped to localhost and sent over plain HTTP.
func NewTokenCookies(cfg config.AuthConfig, isDev bool) *TokenCookies {
	domain := cfg.CookieDomain
	if isDev && domain == "" {
		domain = "localhost"
	}
	return &TokenCookies{
		secret: []byte(cfg.CookieSecret),
		domain: domain,
		secure: !isDev,
	}
}

// SetPair writes both token cookies, each expiring with its token.
func (c *TokenCookies) SetPair(w http.ResponseWriter, pair domainauth.TokenPair) {
	c.set(w, accessCookieName, pair.AccessToken, time.Until(pair.AccessExpiresAt))
	c.set(w, refreshCookieName, pair.RefreshToken, time.Until(pair.RefreshExpiresAt))
}

// Access returns the verified access token from the request, if present.
func (c *TokenCookies) Access(r *http.Request) (string, bool) {
	return c.read(r, accessCookieName)
}

// Refresh returns the verified refresh token from the request, if present.
func (c *TokenCookies) Refresh(r *http.Request) (string, bool) {
	return c.read(r, refreshCookieName)
}

// Clear expires both token cookies. It mirrors the attributes used when
// setting cookies to maximize compatibility across browsers during deletion.
func (c *TokenCookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{accessCookieName, refreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   c.domain,
			HttpOnly: true,
			Secure:   c.secure,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0).UTC(),
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (c *TokenCookies) set(w http.ResponseWriter, name, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    c.sign(token),
		Path:     "/",
		Domain:   c.domain,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

func (c *TokenCookies) read(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	return c.verify(cookie.Value)
}

func (c *TokenCookies) sign(token string) string {
	return token + "." + base64.RawURLEncoding.EncodeToString(c.mac(token))
}

// verify splits at the last dot: JWTs themselves contain dots.
func (c *TokenCookies) verify(value string) (string, bool) {
	idx := strings.LastIndexByte(value, '.')
	if idx < 0 {
		return "", false
	}
	token := value[:idx]
	sig, err := base64.RawURLEncoding.DecodeString(value[idx+1:])
	if err != nil {
		return "", false
	}
	if !hmac.Equal(sig, c.mac(token)) {
		return "", false
	}
	return token, true
}

func (c *TokenCookies) mac(token string) []byte {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(token))
	return h.Sum(nil)
}
