// Package cli implements the command-line interface for syllacalc.
//
// The cli package provides the Cobra-based CLI: it validates the year and
// output flags, loads the course list (from courses.txt or from arguments),
// runs the bounded-concurrency syllabus lookups, and writes the report to
// stdout and optionally an iCalendar file. Fatal configuration problems
// exit non-zero; per-course fetch and parse failures are folded into the
// report and the run still exits zero.
package cli
