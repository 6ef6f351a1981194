package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gasparyanartur/syllacalc/internal/calendar"
	"github.com/gasparyanartur/syllacalc/internal/courselist"
	"github.com/gasparyanartur/syllacalc/internal/exam"
	"github.com/gasparyanartur/syllacalc/internal/logger"
	"github.com/gasparyanartur/syllacalc/internal/report"
	"github.com/gasparyanartur/syllacalc/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Years outside this range are taken for typos rather than real queries
const (
	minYear = 2000
	maxYear = 2100
)

var (
	flagYear        int
	flagCourses     string
	flagFormat      string
	flagICS         string
	flagAll         bool
	flagConcurrency int
	flagLogLevel    string
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syllacalc [course codes...]",
		Short: "List upcoming Chalmers exam dates for a set of courses",
		Long: `Scrapes the Chalmers course syllabus pages and reports upcoming
examination dates for the courses in courses.txt (or the course codes given
as arguments), for a given academic start year.`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntVarP(&flagYear, "year", "y", 0, "Academic start year, e.g. 2024 (required)")
	cmd.Flags().StringVarP(&flagCourses, "courses", "c", "courses.txt", "Course code list file")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagICS, "ics", "", "Also write upcoming exams to this iCalendar file")
	cmd.Flags().BoolVar(&flagAll, "all", false, "Include past exam dates")
	cmd.Flags().IntVar(&flagConcurrency, "concurrency", scraper.DefaultConcurrency, "Maximum concurrent page fetches")
	cmd.Flags().StringVarP(&flagLogLevel, "log-level", "l", "warn", "Log level: debug, info, warn or error")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Print a run summary to stderr")

	cmd.MarkFlagRequired("year") // nolint:errcheck

	return cmd
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	if flagYear < minYear || flagYear > maxYear {
		return fmt.Errorf("invalid year: %d (expected %d-%d)", flagYear, minYear, maxYear)
	}

	level, err := logger.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	format := report.Format(flagFormat)
	if format != report.FormatText && format != report.FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	codes, err := loadCodes(args)
	if err != nil {
		return err
	}

	logger.Info("Looking up courses", logger.Fields{
		"courses": len(codes),
		"year":    flagYear,
	})

	results := scraper.New().LookupAll(cmd.Context(), codes, flagYear, flagConcurrency)

	rep := report.Build(results, flagYear, report.Options{IncludePast: flagAll})

	if flagICS != "" {
		if err := writeICS(rep, flagICS); err != nil {
			return err
		}
	}

	if err := rep.Write(cmd.OutOrStdout(), format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if flagVerbose {
		writeSummary(cmd.ErrOrStderr())
	}

	return nil
}

// loadCodes resolves the course list: codes given as arguments win over the
// course file.
func loadCodes(args []string) ([]string, error) {
	if len(args) > 0 {
		return courselist.NormalizeAll(args), nil
	}
	return courselist.Load(flagCourses)
}

// writeICS collects the reported exams and writes them as a calendar file
func writeICS(rep *report.Report, path string) error {
	var exams []exam.Exam
	for _, course := range rep.Courses {
		exams = append(exams, course.Exams...)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating calendar file: %w", err)
	}
	defer f.Close()

	if err := calendar.GenerateICS(exams, f); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}

	logger.Info("Wrote calendar", logger.Fields{
		"path":  path,
		"exams": len(exams),
	})
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
