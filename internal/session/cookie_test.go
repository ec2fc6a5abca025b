package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSetCookieShape(t *testing.T) {
	rec := httptest.NewRecorder()
	Set(rec, "admin")

	res := rec.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Name != CookieName || c.Value != "admin" {
		t.Errorf("cookie = %s=%s, want user=admin", c.Name, c.Value)
	}
	if c.Path != "/" {
		t.Errorf("cookie path = %q, want /", c.Path)
	}
	// 10-day expiry, with slack for test runtime.
	want := time.Now().Add(TTL)
	if c.Expires.Before(want.Add(-time.Minute)) || c.Expires.After(want.Add(time.Minute)) {
		t.Errorf("cookie expires %v, want about %v", c.Expires, want)
	}
}

func TestPresent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if Present(r) {
		t.Error("request without cookie should not be present")
	}

	// Presence gates access regardless of value.
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "anything"})
	if !Present(r) {
		t.Error("request with cookie should be present")
	}
}

func TestClear(t *testing.T) {
	rec := httptest.NewRecorder()
	Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Error("Clear should expire the marker cookie")
	}
}
