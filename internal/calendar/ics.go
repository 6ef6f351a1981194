// Package calendar exports exam occasions as an iCalendar file so they can
// be imported into a calendar application.
package calendar

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/gasparyanartur/syllacalc/internal/exam"
)

// SittingDuration is how long an exam sitting is blocked out for
const SittingDuration = 4 * time.Hour

// GenerateICS writes the exams as an iCalendar document with one VEVENT per
// exam occasion.
func GenerateICS(exams []exam.Exam, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//syllacalc//syllacalc//EN")

	for i, e := range exams {
		event := cal.AddEvent(fmt.Sprintf("%s-%s-%d@syllacalc", e.Code, e.Date.Format("20060102T150405"), i))
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetStartAt(e.Date)
		event.SetEndAt(e.Date.Add(SittingDuration))

		summary := fmt.Sprintf("%s exam", e.Code)
		if e.Title != "" {
			summary = fmt.Sprintf("%s exam - %s", e.Code, e.Title)
		}
		event.SetSummary(summary)

		kind := e.Kind
		if kind == "" {
			kind = "Examination"
		}
		event.SetDescription(fmt.Sprintf("%s for %s", kind, e.Code))
	}

	return cal.SerializeTo(w)
}
