// Package validation scores scraped job-posting content and extracted job
// details. Scores are 0..100; each validator has its own acceptance
// threshold. Validators are pure functions over their inputs.
package validation

// Result is the outcome of a validation pass. Reasons is the evaluation
// trail, one entry per criterion in the order checked, covering both the
// points awarded and the problems found.
type Result struct {
	IsValid bool     `json:"is_valid"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}
