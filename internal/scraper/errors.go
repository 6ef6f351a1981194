package scraper

import (
	"errors"
	"fmt"
)

// errNoSyllabus marks a fetched page with no syllabus content (no <main>
// element), which is how the site answers an unknown course code.
var errNoSyllabus = errors.New("no syllabus content on page")

// errCourseNotFound marks a 404 answer for a course URL.
var errCourseNotFound = errors.New("course not found")

// FetchError reports a failed page retrieval for one course. It is
// recoverable: the course is reported as unavailable and the run continues.
type FetchError struct {
	Code string
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s (%s): %v", e.Code, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports a syllabus page whose structure did not match the
// pinned layout. Also recoverable; the course is reported as unparsable.
type ParseError struct {
	Code string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing syllabus for %s: %v", e.Code, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
