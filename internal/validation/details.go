package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DetailsThreshold requires both the title and the company to be valid.
const DetailsThreshold = 90

// genericTerms are placeholder values that extraction sometimes produces
// instead of a real title or company name. Matching is exact after
// normalization, so "Companhia ABC" is fine while "N/A" is not.
var genericTerms = []string{
	"not found", "n/a", "na", "unknown", "tbd", "to be determined",
	"não encontrado", "desconhecido", "error", "none", "null", "company",
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeGenericTerm lower-cases and strips everything but letters and
// digits so punctuation variants ("N/A", "n.a.") compare equal.
func normalizeGenericTerm(value string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(value), "")
}

var normalizedGenerics = func() map[string]struct{} {
	set := make(map[string]struct{}, len(genericTerms))
	for _, term := range genericTerms {
		set[normalizeGenericTerm(term)] = struct{}{}
	}
	return set
}()

func isGenericTerm(value string) bool {
	_, ok := normalizedGenerics[normalizeGenericTerm(value)]
	return ok
}

// ScoreDetails validates an extracted job title and company name. Missing
// or generic values fail immediately with score 0; otherwise each field in
// its length range contributes 50 points and acceptance requires
// DetailsThreshold.
func ScoreDetails(jobTitle, company string) Result {
	var reasons []string
	score := 0

	titleLower := strings.ToLower(strings.TrimSpace(jobTitle))
	companyLower := strings.ToLower(strings.TrimSpace(company))

	if titleLower == "" {
		return Result{IsValid: false, Score: 0, Reasons: []string{"Título da vaga ausente"}}
	}
	if isGenericTerm(jobTitle) {
		return Result{IsValid: false, Score: 0, Reasons: []string{
			fmt.Sprintf("Título genérico/inválido: %q", jobTitle),
		}}
	}

	switch titleLen := utf8.RuneCountInString(titleLower); {
	case titleLen < 5:
		reasons = append(reasons, fmt.Sprintf("Título muito curto: %q", jobTitle))
	case titleLen > 100:
		reasons = append(reasons, fmt.Sprintf("Título muito longo: %q", jobTitle))
	default:
		score += 50
		reasons = append(reasons, "✓ Título válido")
	}

	if companyLower == "" {
		return Result{IsValid: false, Score: 0, Reasons: []string{"Nome da empresa ausente"}}
	}
	if isGenericTerm(company) {
		return Result{IsValid: false, Score: 0, Reasons: []string{
			fmt.Sprintf("Empresa genérica/inválida: %q", company),
		}}
	}

	switch companyLen := utf8.RuneCountInString(companyLower); {
	case companyLen < 2:
		reasons = append(reasons, fmt.Sprintf("Nome da empresa muito curto: %q", company))
	case companyLen > 100:
		reasons = append(reasons, fmt.Sprintf("Nome da empresa muito longo: %q", company))
	default:
		score += 50
		reasons = append(reasons, "✓ Empresa válida")
	}

	return Result{IsValid: score >= DetailsThreshold, Score: score, Reasons: reasons}
}
