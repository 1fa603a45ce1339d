package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server message", 401, `{"error":"Invalid username or password"}`, "Invalid username or password"},
		{"empty body", 500, ``, "Request failed (500)"},
		{"non-json body", 502, `<html>Bad Gateway</html>`, "Request failed (502)"},
		{"json without error field", 404, `{"detail":"nope"}`, "Request failed (404)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			_, err := c.Call(context.Background(), http.MethodGet, "/x", nil)

			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("err = %v, want *RequestError", err)
			}
			if reqErr.Status != tc.status {
				t.Fatalf("status = %d, want %d", reqErr.Status, tc.status)
			}
			if reqErr.Message != tc.want {
				t.Fatalf("message = %q, want %q", reqErr.Message, tc.want)
			}
		})
	}
}

func TestInvalidSuccessBodyDegradesToEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	data, err := c.Call(context.Background(), http.MethodGet, "/x", nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("data = %q, want {}", data)
	}
}

func TestSessionCookieCarriesAcrossCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
			w.Write([]byte(`{"user":{"id":1,"username":"nisar"}}`))
		case "/auth/me":
			if c, err := r.Cookie("session"); err != nil || c.Value != "abc123" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Not logged in"}`))
				return
			}
			w.Write([]byte(`{"user":{"id":1,"username":"nisar"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	user, err := c.Login(ctx, "nisar", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "nisar" {
		t.Fatalf("user = %+v", user)
	}

	user, err = c.Me(ctx)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if user == nil || user.ID != 1 {
		t.Fatalf("me user = %+v", user)
	}
}

func TestRequestHeadersAndBody(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"news_items":[],"count":0,"message":"nothing"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.FetchNews(context.Background(), "golang")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content-type = %q", gotContentType)
	}
	if gotBody != `{"keyword":"golang"}` {
		t.Fatalf("body = %q", gotBody)
	}
	if res.Message != "nothing" || len(res.NewsItems) != 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	c := New("http://localhost:5000/api/")
	if c.BaseURL() != "http://localhost:5000/api" {
		t.Fatalf("base = %q", c.BaseURL())
	}
}
