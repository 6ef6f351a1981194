package scraper

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gasparyanartur/syllacalc/internal/exam"
)

// DefaultConcurrency bounds the number of syllabus requests in flight
const DefaultConcurrency = 4

// LookupAll fetches every course with at most limit requests in flight and
// returns one result per code, in input order. Lookups are independent;
// a failed course carries its error in its own result and never stops the
// others.
func (s *Scraper) LookupAll(ctx context.Context, codes []string, year, limit int) []*exam.CourseResult {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]*exam.CourseResult, len(codes))
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			results[i] = s.Lookup(ctx, code, year)
			return nil
		})
	}

	// Workers record failures in their own slot and never return errors
	_ = g.Wait()

	return results
}
