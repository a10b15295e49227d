package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/buysphere/storefront/internal/platform/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager(config.SessionConfig{
		SigningKey: "0123456789abcdef0123456789abcdef",
		TTL:        time.Hour,
	})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	return mgr
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	mgr := newTestManager(t)

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Get(r).SignIn("tok-1", "u1", "Asha", false)
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	mgr.Middleware(handler).ServeHTTP(rec, httptest.NewRequest("POST", "/login", nil))

	cookie := findCookie(rec.Result().Cookies(), cookieName)
	if cookie == nil {
		t.Fatalf("expected session cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}

	// Replay the cookie on a second request.
	var got *Data
	handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Get(r)
	})
	req := httptest.NewRequest("GET", "/cart", nil)
	req.AddCookie(cookie)
	mgr.Middleware(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || !got.SignedIn() {
		t.Fatalf("expected signed-in session on replay")
	}
	if got.Token != "tok-1" || got.UserName != "Asha" {
		t.Fatalf("unexpected session data: %+v", got)
	}
}

func TestTamperedCookieIsRejected(t *testing.T) {
	mgr := newTestManager(t)

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Get(r).SignIn("tok-1", "u1", "Asha", true)
	})
	rec := httptest.NewRecorder()
	mgr.Middleware(handler).ServeHTTP(rec, httptest.NewRequest("POST", "/login", nil))
	cookie := findCookie(rec.Result().Cookies(), cookieName)
	if cookie == nil {
		t.Fatalf("expected session cookie")
	}
	cookie.Value = "x" + cookie.Value

	var got *Data
	handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Get(r)
	})
	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(cookie)
	mgr.Middleware(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got.SignedIn() || got.IsAdmin {
		t.Fatalf("tampered cookie must yield an anonymous session, got %+v", got)
	}
}

func TestFlashIsOneShot(t *testing.T) {
	d := &Data{}
	d.SetFlash("saved")
	if got := d.PopFlash(); got != "saved" {
		t.Fatalf("PopFlash = %q", got)
	}
	if got := d.PopFlash(); got != "" {
		t.Fatalf("flash must clear after one read, got %q", got)
	}
}

func TestSignOutClearsCredentialAndCoupon(t *testing.T) {
	d := &Data{}
	d.SignIn("tok", "u1", "Asha", true)
	d.SetCoupon("SAVE10")
	oldID := d.ID

	d.SignOut()
	if d.SignedIn() || d.IsAdmin || d.Coupon != "" {
		t.Fatalf("sign-out must clear credential state: %+v", d)
	}
	if d.ID == oldID {
		t.Fatalf("sign-out must rotate the session id")
	}
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})
	signed, err := token.SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestExpiredTokenIsDroppedOnLoad(t *testing.T) {
	mgr := newTestManager(t)
	now := time.Now()

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Get(r).SignIn(signedToken(t, now.Add(-time.Minute)), "u1", "Asha", false)
	})
	rec := httptest.NewRecorder()
	mgr.Middleware(handler).ServeHTTP(rec, httptest.NewRequest("POST", "/login", nil))
	cookie := findCookie(rec.Result().Cookies(), cookieName)

	var got *Data
	handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Get(r)
	})
	req := httptest.NewRequest("GET", "/orders", nil)
	req.AddCookie(cookie)
	mgr.Middleware(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got.SignedIn() {
		t.Fatalf("expired credential must be dropped on load")
	}
}

func TestFreshTokenSurvivesLoad(t *testing.T) {
	mgr := newTestManager(t)

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Get(r).SignIn(signedToken(t, time.Now().Add(time.Hour)), "u1", "Asha", false)
	})
	rec := httptest.NewRecorder()
	mgr.Middleware(handler).ServeHTTP(rec, httptest.NewRequest("POST", "/login", nil))
	cookie := findCookie(rec.Result().Cookies(), cookieName)

	var got *Data
	handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Get(r)
	})
	req := httptest.NewRequest("GET", "/orders", nil)
	req.AddCookie(cookie)
	mgr.Middleware(handler).ServeHTTP(httptest.NewRecorder(), req)

	if !got.SignedIn() {
		t.Fatalf("unexpired credential must survive the round trip")
	}
}

func TestTokenFromContextFeedsAPIClient(t *testing.T) {
	mgr := newTestManager(t)

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Get(r).Token = "tok-9"
		token, ok := TokenFromContext(r.Context())
		if !ok || token != "tok-9" {
			t.Errorf("TokenFromContext = %q, %v", token, ok)
		}
	})
	mgr.Middleware(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}
