// Package report renders the outcome of a run as deterministic text or
// JSON. Every course from the input list appears exactly once, in the order
// first encountered, with its upcoming exam dates ascending or an explicit
// note when none were found or the lookup failed.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gasparyanartur/syllacalc/internal/exam"
	"github.com/gasparyanartur/syllacalc/internal/scraper"
)

// Format specifies the output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Status classifies the outcome of one course lookup
type Status string

const (
	StatusOK          Status = "ok"
	StatusNoUpcoming  Status = "no-upcoming-exams"
	StatusNotFound    Status = "not-found"
	StatusFetchFailed Status = "fetch-failed"
	StatusParseFailed Status = "parse-failed"
)

// Options control how results are turned into a report
type Options struct {
	// IncludePast disables the upcoming-only filter
	IncludePast bool
	// Now anchors the upcoming-only filter; zero means time.Now()
	Now time.Time
}

// Report is the full outcome of a run
type Report struct {
	CheckedAt time.Time      `json:"checked_at"`
	Year      int            `json:"year"`
	Courses   []CourseReport `json:"courses"`
	ExamCount int            `json:"exam_count"`
}

// CourseReport is one course section of the report
type CourseReport struct {
	Code   string      `json:"code"`
	Title  string      `json:"title,omitempty"`
	Status Status      `json:"status"`
	Exams  []exam.Exam `json:"exams,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Build assembles a report from the lookup results, one section per course
// in input order.
func Build(results []*exam.CourseResult, year int, opts Options) *Report {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	r := &Report{
		CheckedAt: now.UTC(),
		Year:      year,
		Courses:   make([]CourseReport, 0, len(results)),
	}

	for _, result := range results {
		section := CourseReport{
			Code:  result.Code,
			Title: result.Title,
		}

		switch {
		case result.Err != nil:
			section.Status = classify(result.Err)
			section.Error = result.Err.Error()
		case result.NotFound:
			section.Status = StatusNotFound
		default:
			exams := exam.Upcoming(result.Exams, now)
			if opts.IncludePast {
				exams = exam.Dedupe(result.Exams)
			}
			if len(exams) == 0 {
				section.Status = StatusNoUpcoming
			} else {
				section.Status = StatusOK
				section.Exams = exams
				r.ExamCount += len(exams)
			}
		}

		r.Courses = append(r.Courses, section)
	}

	return r
}

func classify(err error) Status {
	var parseErr *scraper.ParseError
	if errors.As(err, &parseErr) {
		return StatusParseFailed
	}
	return StatusFetchFailed
}

// Write renders the report in the specified format
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return r.writeJSON(w)
	case FormatText:
		return r.writeText(w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the report as indented JSON
func (r *Report) writeJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// writeText outputs the report as human-readable text
func (r *Report) writeText(w io.Writer) error {
	if len(r.Courses) == 0 {
		fmt.Fprintln(w, "No courses provided.")
		return nil
	}

	for i, course := range r.Courses {
		if i > 0 {
			fmt.Fprintln(w)
		}

		if course.Title != "" {
			fmt.Fprintf(w, "%s - %s\n", course.Code, course.Title)
		} else {
			fmt.Fprintf(w, "%s\n", course.Code)
		}

		switch course.Status {
		case StatusOK:
			for _, e := range course.Exams {
				fmt.Fprintf(w, "  %s  %s\n", e.Date.Format("2006-01-02 15:04"), e.Kind)
			}
		case StatusNoUpcoming:
			fmt.Fprintln(w, "  no upcoming exams found")
		case StatusNotFound:
			fmt.Fprintln(w, "  course not found")
		case StatusFetchFailed:
			fmt.Fprintf(w, "  unavailable: %s\n", course.Error)
		case StatusParseFailed:
			fmt.Fprintf(w, "  could not parse: %s\n", course.Error)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d exams across %d courses\n", r.ExamCount, len(r.Courses))
	return nil
}
