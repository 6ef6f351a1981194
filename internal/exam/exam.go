package exam

import (
	"fmt"
	"sort"
	"time"
)

// Exam represents a single examination occasion for a course
type Exam struct {
	Code  string    `json:"code"`
	Title string    `json:"title,omitempty"`
	Kind  string    `json:"kind,omitempty"`
	Date  time.Time `json:"date"`
}

// String formats an exam the way the report prints it
func (e Exam) String() string {
	return fmt.Sprintf("%s - %s - %s", e.Date.Format("2006-01-02 15:04"), e.Code, e.Title)
}

// CourseResult is the outcome of looking up one course. Err holds a
// FetchError or ParseError when the lookup failed; NotFound is set when the
// site has no syllabus page for the code. Exactly one course result exists
// per input course, whatever happened to it.
type CourseResult struct {
	Code     string
	Title    string
	Exams    []Exam
	NotFound bool
	Err      error
}

// NewCourseResult creates a result for a course that was looked up
// successfully
func NewCourseResult(code, title string, exams []Exam) *CourseResult {
	return &CourseResult{
		Code:  code,
		Title: title,
		Exams: exams,
	}
}

// SortByDate sorts exams by date ascending, breaking ties on course code
func SortByDate(exams []Exam) {
	sort.Slice(exams, func(i, j int) bool {
		if !exams[i].Date.Equal(exams[j].Date) {
			return exams[i].Date.Before(exams[j].Date)
		}
		return exams[i].Code < exams[j].Code
	})
}

// Upcoming returns the future-dated exams, deduplicated by course code and
// date, sorted date-ascending. Syllabus pages repeat the same occasion in
// every module table, so duplicates are the norm rather than the exception.
func Upcoming(exams []Exam, now time.Time) []Exam {
	return dedupe(filter(exams, func(e Exam) bool {
		return e.Date.After(now)
	}))
}

// Dedupe returns the exams deduplicated by course code and date, sorted
// date-ascending, without any time filtering
func Dedupe(exams []Exam) []Exam {
	return dedupe(exams)
}

func filter(exams []Exam, keep func(Exam) bool) []Exam {
	out := make([]Exam, 0, len(exams))
	for _, e := range exams {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func dedupe(exams []Exam) []Exam {
	seen := make(map[string]bool, len(exams))
	unique := make([]Exam, 0, len(exams))
	for _, e := range exams {
		key := e.Code + "|" + e.Date.Format(time.RFC3339)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, e)
	}
	SortByDate(unique)
	return unique
}
