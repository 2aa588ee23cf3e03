package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const journalPageHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Journal search</title>
  <style>body { color: red; }</style>
  <script>trackPageView();</script>
</head>
<body>
  <div class="menu">Homepage</div>
  <h2>Scope</h2>
  <p>The journal publishes peer-reviewed research on computational
  biology and systems modeling for the life sciences.</p>
  <div>Join the conversation about this journal</div>
</body>
</html>`

func TestFlattenHTMLText(t *testing.T) {
	text, err := FlattenHTMLText(strings.NewReader(journalPageHTML))
	if err != nil {
		t.Fatalf("FlattenHTMLText failed: %v", err)
	}
	if strings.Contains(text, "trackPageView") || strings.Contains(text, "color: red") {
		t.Fatalf("script or style text leaked: %q", text)
	}
	if !strings.Contains(text, "biology and systems modeling for the life sciences") {
		t.Fatalf("visible text missing: %q", text)
	}
}

func TestFetchPageText(t *testing.T) {
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(journalPageHTML))
	}))
	defer server.Close()

	gormDB, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewScopeScrapeService(gormDB, server.Client(), time.Millisecond)
	service.baseURL = server.URL

	text, fatal, err := service.fetchPageText(context.Background(), "28773")
	if err != nil {
		t.Fatalf("fetchPageText failed (fatal=%v): %v", fatal, err)
	}
	if gotQuery != "q=28773&tip=sid" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if gotAgent == "" || strings.Contains(gotAgent, "Go-http-client") {
		t.Errorf("request must carry a browser user agent, got %q", gotAgent)
	}

	scope := ExtractScopeDescription(text)
	if !strings.HasPrefix(scope, "The journal publishes peer-reviewed research") {
		t.Errorf("unexpected scope %q", scope)
	}
	if strings.Contains(scope, "Join the conversation") {
		t.Errorf("navigation text leaked into scope: %q", scope)
	}
}

func TestFetchPageTextNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	gormDB, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewScopeScrapeService(gormDB, server.Client(), time.Millisecond)
	service.baseURL = server.URL

	_, fatal, err := service.fetchPageText(context.Background(), "28773")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if fatal {
		t.Fatal("a non-OK status must not abort the whole run")
	}
}

func TestRunForTargetsContinuesAfterPageFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	gormDB, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewScopeScrapeService(gormDB, server.Client(), time.Millisecond)
	service.baseURL = server.URL

	targets := []ScrapeTarget{
		{SourceID: "28773", Title: "First"},
		{SourceID: "19434", Title: "Second"},
	}

	summary, err := service.RunForTargets(context.Background(), targets)
	if err != nil {
		t.Fatalf("RunForTargets failed: %v", err)
	}
	if summary.JournalsFailed != 2 || summary.JournalsProcessed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Failed) != 2 || summary.Failed[0].SourceID != "28773" {
		t.Fatalf("unexpected failure list: %+v", summary.Failed)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRunForTargetsAbortsOnTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	gormDB, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewScopeScrapeService(gormDB, nil, time.Millisecond)
	service.baseURL = serverURL

	if _, err := service.RunForTargets(context.Background(), []ScrapeTarget{{SourceID: "28773"}}); err == nil {
		t.Fatal("expected transport failure to abort the run")
	}
}
