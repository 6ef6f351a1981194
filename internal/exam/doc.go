// Package exam defines the domain model for Chalmers examination occasions.
//
// The exam package holds the Exam and CourseResult types produced by the
// scraper, parses the Swedish date strings the syllabus tables use
// ("14 jan 2025 am"), and provides filtering and ordering helpers used when
// building the final report.
package exam
