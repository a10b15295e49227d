// Package session keeps the browsing session in an HMAC-signed cookie: the
// bearer credential for the storefront API, the signed-in user's display
// details, and a one-shot flash message.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/oklog/ulid/v2"

	"github.com/buysphere/storefront/internal/platform/config"
)

const cookieName = "BUYSPHERE_SESSION"

// Data is the per-browser session state.
type Data struct {
	ID        string    `json:"id"`
	Token     string    `json:"tok,omitempty"`
	UserID    string    `json:"uid,omitempty"`
	UserName  string    `json:"name,omitempty"`
	IsAdmin   bool      `json:"admin,omitempty"`
	Coupon    string    `json:"coupon,omitempty"`
	Flash     string    `json:"flash,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	dirty bool
}

// SignedIn reports whether the session carries a credential.
func (d *Data) SignedIn() bool { return d.Token != "" }

// MarkDirty flags the session for persisting at the end of the request.
func (d *Data) MarkDirty() {
	d.dirty = true
	d.UpdatedAt = time.Now().UTC()
}

// SignIn stores the credential and user details, regenerating the session id
// to prevent fixation.
func (d *Data) SignIn(token, userID, userName string, isAdmin bool) {
	d.Token = token
	d.UserID = userID
	d.UserName = userName
	d.IsAdmin = isAdmin
	d.ID = randID()
	d.MarkDirty()
}

// SignOut clears the credential, preserving the anonymous session.
func (d *Data) SignOut() {
	d.Token = ""
	d.UserID = ""
	d.UserName = ""
	d.IsAdmin = false
	d.Coupon = ""
	d.ID = randID()
	d.MarkDirty()
}

// SetCoupon stores the discount code applied to the cart. An empty code
// clears it. Validation is the caller's job; the session only carries it.
func (d *Data) SetCoupon(code string) {
	d.Coupon = code
	d.MarkDirty()
}

// SetFlash stores a one-shot message for the next rendered page.
func (d *Data) SetFlash(message string) {
	d.Flash = message
	d.MarkDirty()
}

// PopFlash returns and clears the pending flash message.
func (d *Data) PopFlash() string {
	if d.Flash == "" {
		return ""
	}
	message := d.Flash
	d.Flash = ""
	d.MarkDirty()
	return message
}

// Expired reports whether the stored bearer token has passed its expiry
// claim. The token is not verified here; verification is the server's job,
// this only avoids sending credentials known to be dead.
func (d *Data) Expired(now time.Time) bool {
	if d.Token == "" {
		return false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(d.Token, &claims); err != nil {
		return true
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(now)
}

// Manager signs, verifies, and round-trips session cookies.
type Manager struct {
	key    []byte
	secure bool
	ttl    time.Duration
}

// NewManager builds a manager from configuration. An empty signing key gets
// a process-ephemeral replacement, which invalidates sessions on restart and
// is only suitable for development.
func NewManager(cfg config.SessionConfig) (*Manager, error) {
	key := []byte(cfg.SigningKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, errors.New("session: unable to generate ephemeral signing key")
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Manager{key: key, secure: cfg.Secure, ttl: ttl}, nil
}

type ctxKey struct{}

// Middleware loads or initializes the session, exposes it (and the bearer
// token) through the request context, and persists it before the first
// response byte when it changed.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, fromCookie := m.read(r)
		if data.ID == "" {
			data.ID = randID()
			data.CreatedAt = time.Now().UTC()
			data.UpdatedAt = data.CreatedAt
			data.dirty = true
		}
		if data.Expired(time.Now().UTC()) {
			data.SignOut()
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, data)
		rw := &cookieWriter{ResponseWriter: w, before: func(w http.ResponseWriter) {
			if data.dirty || !fromCookie {
				m.write(w, data)
			}
		}}
		next.ServeHTTP(rw, r.WithContext(ctx))
		if !rw.wroteHeader && (data.dirty || !fromCookie) {
			m.write(w, data)
		}
	})
}

// Get returns the session for the request, or an empty one outside the
// middleware.
func Get(r *http.Request) *Data {
	if data, ok := r.Context().Value(ctxKey{}).(*Data); ok {
		return data
	}
	return &Data{}
}

// TokenFromContext yields the bearer credential for outgoing API calls. It
// satisfies api.TokenSourceFunc, making the session the request-decorating
// credential source.
func TokenFromContext(ctx context.Context) (string, bool) {
	if data, ok := ctx.Value(ctxKey{}).(*Data); ok && data.Token != "" {
		return data.Token, true
	}
	return "", false
}

func (m *Manager) read(r *http.Request) (*Data, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return &Data{}, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return &Data{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return &Data{}, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return &Data{}, false
	}
	mac := hmac.New(sha256.New, m.key)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return &Data{}, false
	}
	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return &Data{}, false
	}
	return &data, true
}

func (m *Manager) write(w http.ResponseWriter, data *Data) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	mac := hmac.New(sha256.New, m.key)
	mac.Write(payload)
	value := base64.RawURLEncoding.EncodeToString(payload) + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(m.ttl),
	})
	data.dirty = false
}

// cookieWriter defers cookie emission until the first header write so
// handlers can keep mutating the session while building the response.
type cookieWriter struct {
	http.ResponseWriter
	before      func(http.ResponseWriter)
	wroteHeader bool
}

func (w *cookieWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if w.before != nil {
			w.before(w.ResponseWriter)
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func randID() string {
	return ulid.Make().String()
}
