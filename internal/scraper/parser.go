package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gasparyanartur/syllacalc/internal/exam"
)

const (
	// examDatesHeading anchors the module tables that list exam occasions
	examDatesHeading = "Examination dates"

	// examRowLabel selects the table rows that are examination modules
	// (as opposed to laboratory or project modules)
	examRowLabel = "Examination"

	// dateCellIndex is the column holding the exam date strings
	dateCellIndex = 7
)

// parseSyllabus extracts the course title and examination occasions from a
// syllabus page. A page without a <main> element carries no syllabus and
// yields errNoSyllabus; a page whose exam tables do not match the pinned
// layout yields a *ParseError.
func parseSyllabus(r io.Reader, code string) (string, []exam.Exam, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", nil, &ParseError{Code: code, Err: fmt.Errorf("parsing HTML: %w", err)}
	}

	main := doc.Find("main").First()
	if main.Length() == 0 {
		return "", nil, errNoSyllabus
	}

	title := courseTitle(main)

	exams, err := examDates(main, code, title)
	if err != nil {
		return "", nil, err
	}

	return title, exams, nil
}

// courseTitle reads the page heading. Headings look like
// "Course syllabus for Databases"; the three-word prefix is dropped.
func courseTitle(main *goquery.Selection) string {
	heading := strings.Join(strings.Fields(main.Find("h1").First().Text()), " ")
	words := strings.Fields(heading)
	if len(words) > 3 {
		return strings.Join(words[3:], " ")
	}
	return heading
}

// examDates walks every module table announced by an "Examination dates"
// heading and collects the dates of its examination rows.
func examDates(main *goquery.Selection, code, title string) ([]exam.Exam, error) {
	var exams []exam.Exam
	var parseErr error

	main.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if parseErr != nil {
			return
		}
		// Only the innermost element carrying the heading text anchors
		// a table; its styled wrappers repeat the same text.
		if sel.Children().Length() > 0 {
			return
		}
		if strings.TrimSpace(sel.Text()) != examDatesHeading {
			return
		}

		tbody := nearestTableBody(sel)
		if tbody == nil {
			parseErr = fmt.Errorf("%q heading without a table body", examDatesHeading)
			return
		}

		tbody.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if parseErr != nil {
				return
			}
			cells := row.Find("td")
			if cells.Length() <= dateCellIndex {
				return
			}
			kind := strings.TrimSpace(cells.Eq(0).Text())
			if !strings.Contains(kind, examRowLabel) {
				return
			}

			dateNodes(cells.Eq(dateCellIndex)).Each(func(_ int, node *goquery.Selection) {
				text := strings.TrimSpace(node.Text())
				if text == "" {
					return
				}
				when, err := exam.ParseDate(text)
				if err != nil {
					parseErr = err
					return
				}
				exams = append(exams, exam.Exam{
					Code:  code,
					Title: title,
					Kind:  kind,
					Date:  when,
				})
			})
		})
	})

	if parseErr != nil {
		return nil, &ParseError{Code: code, Err: parseErr}
	}
	return exams, nil
}

// nearestTableBody climbs from a heading element to the closest ancestor
// that wraps a table, returning that table's body. The heading and its
// table share a wrapper div a few levels up; climbing keeps the parser
// working when the site adds or removes intermediate divs.
func nearestTableBody(sel *goquery.Selection) *goquery.Selection {
	for parent := sel.Parent(); parent.Length() > 0; parent = parent.Parent() {
		if tbody := parent.Find("tbody").First(); tbody.Length() > 0 {
			return tbody
		}
	}
	return nil
}

// dateNodes returns the elements of a date cell that each hold one date
// string. Cells wrap their dates in a list container; occasionally the
// dates sit directly in the first child.
func dateNodes(cell *goquery.Selection) *goquery.Selection {
	first := cell.Children().First()
	if first.Length() == 0 {
		return first
	}
	if nodes := first.Children(); nodes.Length() > 0 {
		return nodes
	}
	return first
}
