package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testSyllabus = `
	<html><body><main>
		<div><h1>Course syllabus for Databases</h1></div>
		<div>
			<h3>Examination dates</h3>
			<table><tbody><tr>
				<td>Examination</td><td></td><td></td><td></td><td></td><td></td><td></td>
				<td><div><span>14 jan 2025 am</span><span>02 jun 2025 pm</span></div></td>
			</tr></tbody></table>
		</div>
	</main></body></html>
`

// newTestScraper points a scraper at a test server and makes retries fast
func newTestScraper(serverURL string) *Scraper {
	s := New()
	s.baseURL = serverURL
	s.retryInterval = time.Millisecond
	return s
}

func TestCourseURL(t *testing.T) {
	s := New()

	got := s.CourseURL("TDA357", 2024)
	want := SyllabusBaseURL + "/TDA357/?acYear=2024%2F2025"
	if got != want {
		t.Errorf("CourseURL() = %q, want %q", got, want)
	}
}

func TestLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "syllacalc") {
			t.Errorf("User-Agent = %q, should contain 'syllacalc'", userAgent)
		}
		if !strings.Contains(r.URL.RawQuery, "acYear=2024") {
			t.Errorf("query = %q, should carry the academic year", r.URL.RawQuery)
		}
		fmt.Fprint(w, testSyllabus)
	}))
	defer server.Close()

	result := newTestScraper(server.URL).Lookup(context.Background(), "TDA357", 2024)

	if result.Err != nil {
		t.Fatalf("Lookup() unexpected error: %v", result.Err)
	}
	if result.NotFound {
		t.Fatal("Lookup() reported not found for a valid page")
	}
	if result.Title != "Databases" {
		t.Errorf("title = %q, want Databases", result.Title)
	}
	if len(result.Exams) != 2 {
		t.Errorf("parsed %d exams, want 2", len(result.Exams))
	}
}

func TestLookup_NotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result := newTestScraper(server.URL).Lookup(context.Background(), "XXX000", 2024)

	if !result.NotFound {
		t.Error("Lookup() should report not found on 404")
	}
	if result.Err != nil {
		t.Errorf("Lookup() error = %v, want nil for a missing course", result.Err)
	}
}

func TestLookup_NotFoundPage(t *testing.T) {
	// The site answers unknown codes with a 200 page without syllabus content
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div>Nothing here</div></body></html>`)
	}))
	defer server.Close()

	result := newTestScraper(server.URL).Lookup(context.Background(), "XXX000", 2024)

	if !result.NotFound {
		t.Error("Lookup() should report not found for a page without syllabus content")
	}
}

func TestLookup_ServerErrorRetriesThenFails(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result := newTestScraper(server.URL).Lookup(context.Background(), "TDA357", 2024)

	if result.Err == nil {
		t.Fatal("Lookup() expected error for persistent 500")
	}

	var fetchErr *FetchError
	if !errors.As(result.Err, &fetchErr) {
		t.Fatalf("error = %T, want *FetchError", result.Err)
	}
	if fetchErr.Code != "TDA357" {
		t.Errorf("FetchError.Code = %q, want TDA357", fetchErr.Code)
	}
	if !strings.Contains(fetchErr.URL, "TDA357") {
		t.Errorf("FetchError.URL = %q, should name the course URL", fetchErr.URL)
	}

	if want := int(MaxRetries) + 1; requests != want {
		t.Errorf("server saw %d requests, want %d (initial + retries)", requests, want)
	}
}

func TestLookup_ServerErrorRecovers(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, testSyllabus)
	}))
	defer server.Close()

	result := newTestScraper(server.URL).Lookup(context.Background(), "TDA357", 2024)

	if result.Err != nil {
		t.Fatalf("Lookup() should recover after a transient 500, got %v", result.Err)
	}
	if len(result.Exams) != 2 {
		t.Errorf("parsed %d exams, want 2", len(result.Exams))
	}
	if requests != 2 {
		t.Errorf("server saw %d requests, want 2", requests)
	}
}

func TestLookup_ClientErrorIsPermanent(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	result := newTestScraper(server.URL).Lookup(context.Background(), "TDA357", 2024)

	var fetchErr *FetchError
	if !errors.As(result.Err, &fetchErr) {
		t.Fatalf("error = %v (%T), want *FetchError", result.Err, result.Err)
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1 (4xx is not retried)", requests)
	}
}

func TestLookup_UnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	result := newTestScraper(server.URL).Lookup(context.Background(), "TDA357", 2024)

	var fetchErr *FetchError
	if !errors.As(result.Err, &fetchErr) {
		t.Fatalf("error = %v (%T), want *FetchError", result.Err, result.Err)
	}
}

func TestLookup_ParseFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `
			<html><body><main>
				<div><h1>Course syllabus for Databases</h1></div>
				<div><h3>Examination dates</h3></div>
			</main></body></html>
		`)
	}))
	defer server.Close()

	result := newTestScraper(server.URL).Lookup(context.Background(), "TDA357", 2024)

	var parseErr *ParseError
	if !errors.As(result.Err, &parseErr) {
		t.Fatalf("error = %v (%T), want *ParseError", result.Err, result.Err)
	}
}

func TestNew(t *testing.T) {
	s := New()

	if s.client == nil {
		t.Error("scraper client is nil")
	}
	if s.baseURL != SyllabusBaseURL {
		t.Errorf("scraper baseURL = %q, want %q", s.baseURL, SyllabusBaseURL)
	}
	if s.client.Timeout != Timeout {
		t.Errorf("client timeout = %v, want %v", s.client.Timeout, Timeout)
	}
}
