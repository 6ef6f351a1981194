package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/gasparyanartur/syllacalc/internal/exam"
	"github.com/gasparyanartur/syllacalc/internal/logger"
)

const (
	SyllabusBaseURL = "https://www.chalmers.se/en/education/your-studies/find-course-and-programme-syllabi/course-syllabus"
	UserAgent       = "syllacalc/1.0 (github.com/gasparyanartur/syllacalc)"
	Timeout         = 15 * time.Second
	MaxRetries      = 2
)

// Scraper handles fetching and parsing course syllabus pages
type Scraper struct {
	client        *http.Client
	baseURL       string
	retries       uint64
	retryInterval time.Duration
}

// New creates a new Scraper instance
func New() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL:       SyllabusBaseURL,
		retries:       MaxRetries,
		retryInterval: 500 * time.Millisecond,
	}
}

// CourseURL builds the syllabus URL for a course code and academic start
// year. The site keys syllabus pages on the academic year span, so a start
// year of 2024 queries acYear=2024/2025.
func (s *Scraper) CourseURL(code string, year int) string {
	return fmt.Sprintf("%s/%s/?acYear=%d%%2F%d", s.baseURL, url.PathEscape(code), year, year+1)
}

// Lookup fetches and parses the syllabus for one course. Failures never
// escape as errors: a missing page sets NotFound, a fetch or parse failure
// is carried in the result's Err for the report.
func (s *Scraper) Lookup(ctx context.Context, code string, year int) *exam.CourseResult {
	reqURL := s.CourseURL(code, year)

	logger.Debug("Looking up course", logger.Fields{
		"course": code,
		"url":    reqURL,
	})

	start := time.Now()
	body, err := s.fetch(ctx, reqURL)
	logger.RecordTiming("scraper.fetch", time.Since(start))

	if err != nil {
		if errors.Is(err, errCourseNotFound) {
			logger.Warn("Course not found", logger.Fields{"course": code})
			logger.IncrCounter("scraper.not_found")
			return &exam.CourseResult{Code: code, NotFound: true}
		}
		logger.IncrCounter("scraper.fetch_errors")
		return &exam.CourseResult{
			Code: code,
			Err:  &FetchError{Code: code, URL: reqURL, Err: err},
		}
	}

	title, exams, err := parseSyllabus(bytes.NewReader(body), code)
	if err != nil {
		if errors.Is(err, errNoSyllabus) {
			logger.Warn("Course not found", logger.Fields{"course": code})
			logger.IncrCounter("scraper.not_found")
			return &exam.CourseResult{Code: code, NotFound: true}
		}
		logger.IncrCounter("scraper.parse_errors")
		return &exam.CourseResult{Code: code, Err: err}
	}

	logger.Info("Parsed syllabus", logger.Fields{
		"course": code,
		"title":  title,
		"exams":  len(exams),
	})

	return exam.NewCourseResult(code, title, exams)
}

// fetch retrieves a page body. Transport errors and 5xx answers are retried
// with exponential backoff; 404 means the course does not exist and other
// non-success statuses are permanent failures.
func (s *Scraper) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			// fall through to read the body
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(errCourseNotFound)
		case resp.StatusCode >= http.StatusInternalServerError:
			logger.IncrCounter("scraper.retries")
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading page: %w", err)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryInterval

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, s.retries), ctx))
	if err != nil {
		return nil, err
	}
	return body, nil
}
