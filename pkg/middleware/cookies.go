package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const signedCookiesKey contextKey = "signedCookies"

// NewCookieSigner returns a signer keyed by the server secret. Cookies are
// signed, not encrypted.
func NewCookieSigner(secret string) *securecookie.SecureCookie {
	return securecookie.New([]byte(secret), nil)
}

// SignedCookies decodes every cookie that carries a valid signature and
// exposes the values through GetSignedCookie. Tampered or unsigned cookies
// are left out.
func SignedCookies(sc *securecookie.SecureCookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			values := make(map[string]string)
			for _, c := range r.Cookies() {
				var v string
				if err := sc.Decode(c.Name, c.Value, &v); err == nil {
					values[c.Name] = v
				}
			}
			ctx := context.WithValue(r.Context(), signedCookiesKey, values)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSignedCookie returns a verified cookie value from the request context.
func GetSignedCookie(ctx context.Context, name string) (string, bool) {
	values, _ := ctx.Value(signedCookiesKey).(map[string]string)
	v, ok := values[name]
	return v, ok
}

// SetSignedCookie writes an HTTP-only signed cookie.
func SetSignedCookie(w http.ResponseWriter, sc *securecookie.SecureCookie, name, value string, maxAge time.Duration) error {
	encoded, err := sc.Encode(name, value)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return nil
}

// ClearCookie expires the named cookie.
func ClearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
