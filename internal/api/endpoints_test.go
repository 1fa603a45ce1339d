package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestMeWithoutSessionReturnsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":null}`))
	})

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if user != nil {
		t.Fatalf("user = %+v, want nil", user)
	}
}

func TestAnalyzeDecodesFullResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"news_text": "Summit reaches emissions deal",
			"full_text": "Summit reaches emissions deal after long talks",
			"topic": "Climate Change",
			"sentiment": {"positive": 61.2, "neutral": 28.1, "negative": 10.7},
			"classification": "positive",
			"confidence": 61.2,
			"explanation": "The text expresses optimism.",
			"key_words": {"positive": ["deal"], "negative": []}
		}`))
	})

	res, err := c.Analyze(context.Background(), "Summit reaches emissions deal", "Climate Change")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if res.Sentiment.Positive != 61.2 || res.Classification != "positive" {
		t.Fatalf("result = %+v", res)
	}
	if len(res.KeyWords.Positive) != 1 || res.KeyWords.Positive[0] != "deal" {
		t.Fatalf("key words = %+v", res.KeyWords)
	}
}

func TestAdminActivityQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"activities":[{"id":1,"action":"login","actor_type":"user"}],"total":250,"limit":100,"offset":200}`))
	})

	page, err := c.AdminActivity(context.Background(), 100, 200)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if gotQuery != "limit=100&offset=200" {
		t.Fatalf("query = %q", gotQuery)
	}
	if page.Total != 250 || page.Offset != 200 || len(page.Activities) != 1 {
		t.Fatalf("page = %+v", page)
	}
}

func TestAdminExportReturnsRawBytes(t *testing.T) {
	payload := `{"users":[{"id":1,"username":"nisar","is_admin":0}],"searches":[],"activity_log":[]}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})

	bundle, raw, err := c.AdminExport(context.Background())
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if string(raw) != payload {
		t.Fatalf("raw = %q", raw)
	}
	if len(bundle.Users) != 1 || bundle.Users[0].Username != "nisar" {
		t.Fatalf("bundle = %+v", bundle)
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2026-08-30 14:02:11", "Aug 30, 2026 14:02"},
		{"2026-08-30T14:02:11", "Aug 30, 2026 14:02"},
		{"garbage", "garbage"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.in); got != tc.want {
			t.Errorf("FormatTimestamp(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
