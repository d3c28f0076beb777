// Package compat estimates candidate-to-posting compatibility from lexical
// keyword overlap. It is a deterministic heuristic, not a model call: the
// resulting insights ride along with generated materials so the user sees
// which posting keywords their resume already covers.
package compat

import (
	"math"

	"github.com/vagacerta/career-agent/internal/keywords"
)

// Label values returned on Insights.
const (
	LabelHigh         = "Alta compatibilidade"
	LabelModerate     = "Compatibilidade moderada"
	LabelLow          = "Compatibilidade baixa"
	LabelInsufficient = "Dados insuficientes"
)

// topKeywordCount bounds the posting vocabulary considered, avoiding
// dilution from long postings.
const topKeywordCount = 30

// Insights is a heuristic compatibility estimation between a resume and a
// job description.
type Insights struct {
	Score         int      `json:"score"`
	Label         string   `json:"label"`
	Strengths     []string `json:"strengths"`
	Gaps          []string `json:"gaps"`
	CoverageRatio float64  `json:"coverage_ratio"`
}

// Compute scores resume text against a job description. Scores range 5..100
// for scoreable inputs; postings with too little keyword signal produce the
// neutral 50 / "Dados insuficientes" result.
func Compute(resume, jobDescription string) Insights {
	jobSet := keywords.Extract(jobDescription)
	resumeSet := keywords.Extract(resume)

	if jobSet.Len() == 0 {
		return Insights{
			Score:     50,
			Label:     LabelInsufficient,
			Strengths: []string{},
			Gaps:      []string{},
		}
	}

	ranked := jobSet.MostCommon(topKeywordCount)

	if len(ranked) < 5 || jobSet.Total() < 10 {
		gaps := ranked
		if len(gaps) > 5 {
			gaps = gaps[:5]
		}
		return Insights{
			Score:     50,
			Label:     LabelInsufficient,
			Strengths: []string{},
			Gaps:      gaps,
		}
	}

	matched := 0
	strengths := make([]string, 0, 5)
	gaps := make([]string, 0, 5)
	for _, kw := range ranked {
		if resumeSet.Contains(kw) {
			matched++
			if len(strengths) < 5 {
				strengths = append(strengths, kw)
			}
		} else if len(gaps) < 5 {
			gaps = append(gaps, kw)
		}
	}

	coverage := float64(matched) / float64(len(ranked))
	matchPoints := min(60, matched*12)
	coveragePoints := min(40, int(math.Round(coverage*40)))
	score := max(5, matchPoints+coveragePoints)

	label := LabelLow
	switch {
	case score >= 75:
		label = LabelHigh
	case score >= 45:
		label = LabelModerate
	}

	return Insights{
		Score:         score,
		Label:         label,
		Strengths:     strengths,
		Gaps:          gaps,
		CoverageRatio: math.Round(coverage*1000) / 1000,
	}
}
