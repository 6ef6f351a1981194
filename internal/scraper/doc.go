// Package scraper fetches and parses Chalmers course syllabus pages.
//
// The scraper builds the public syllabus URL for a course code and academic
// start year, retrieves the page with a shared HTTP client (with a small
// exponential-backoff retry for transient failures), and extracts the
// course title and examination dates from the module tables. Page layout
// knowledge is confined to parser.go so a site change only touches that
// file. LookupAll fans the per-course lookups out over a bounded worker
// group; every failure is captured in the course's own result so one broken
// page never aborts the run.
package scraper
