package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ContentThreshold is the minimum score for scraped posting text to be
// accepted. Kept low so sparse but genuine postings still pass.
const ContentThreshold = 30

// criticalKeywords mark sections every real posting tends to carry.
// Each hit is worth 5 points, capped at 20.
var criticalKeywords = []string{
	"responsibilities", "requirements", "qualifications", "experience",
	"responsabilidades", "requisitos", "qualificações", "experiência",
}

// contextKeywords signal recruiting context. Each hit is worth 2 points,
// capped at 20.
var contextKeywords = []string{
	"apply", "application", "candidate", "candidatar", "aplicar",
	"join", "team", "position", "role", "vaga", "cargo", "equipe",
}

// errorIndicators are substrings typical of error and placeholder pages.
// Any hit costs 30 points.
var errorIndicators = []string{
	"page not found", "404", "error", "not available",
	"página não encontrada", "erro", "indisponível", "access denied",
}

var listStructurePattern = regexp.MustCompile(`(?m)[-•*]\s|^\d+\.\s`)

// ScoreContent validates scraped posting text through three layers:
// structural (length, 30 pts), semantic (keywords, 40 pts) and heuristic
// (lexical diversity, error indicators, list structure, 30 pts).
// Accepted when the score reaches ContentThreshold.
func ScoreContent(content string) Result {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Result{IsValid: false, Score: 0, Reasons: []string{"Conteúdo vazio"}}
	}

	var reasons []string
	score := 0
	length := utf8.RuneCountInString(trimmed)

	switch {
	case length < 500:
		reasons = append(reasons, fmt.Sprintf("Conteúdo muito curto (%d chars, mínimo 500)", length))
	case length < 1000:
		score += 10
		reasons = append(reasons, "Tamanho aceitável mas curto")
	case length < 3000:
		score += 20
		reasons = append(reasons, "Tamanho adequado")
	default:
		score += 30
		reasons = append(reasons, "Tamanho excelente")
	}

	contentLower := strings.ToLower(content)

	foundCritical := 0
	for _, kw := range criticalKeywords {
		if strings.Contains(contentLower, kw) {
			foundCritical++
		}
	}
	criticalScore := min(20, foundCritical*5)
	score += criticalScore
	reasons = append(reasons, fmt.Sprintf(
		"%d/%d palavras-chave críticas encontradas (%d pts)",
		foundCritical, len(criticalKeywords), criticalScore))

	foundContext := 0
	for _, kw := range contextKeywords {
		if strings.Contains(contentLower, kw) {
			foundContext++
		}
	}
	contextScore := min(20, foundContext*2)
	score += contextScore
	reasons = append(reasons, fmt.Sprintf(
		"%d/%d palavras de contexto encontradas (%d pts)",
		foundContext, len(contextKeywords), contextScore))

	// Lexical diversity over words longer than 3 chars catches repetitive
	// boilerplate and scraped navigation soup.
	var words []string
	for _, w := range strings.Fields(content) {
		if utf8.RuneCountInString(w) > 3 {
			words = append(words, w)
		}
	}
	if len(words) > 0 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[strings.ToLower(w)] = struct{}{}
		}
		diversity := float64(len(unique)) / float64(len(words))

		switch {
		case diversity > 0.5:
			score += 15
			reasons = append(reasons, fmt.Sprintf("Boa diversidade lexical (%.1f%%)", diversity*100))
		case diversity > 0.3:
			score += 8
			reasons = append(reasons, fmt.Sprintf("Diversidade lexical moderada (%.1f%%)", diversity*100))
		default:
			reasons = append(reasons, fmt.Sprintf(
				"Baixa diversidade lexical (%.1f%%) - possível texto repetitivo", diversity*100))
		}
	}

	hasErrors := false
	for _, indicator := range errorIndicators {
		if strings.Contains(contentLower, indicator) {
			hasErrors = true
			break
		}
	}
	if hasErrors {
		score = max(0, score-30)
		reasons = append(reasons, "⚠️ Detectados indicadores de erro na página")
	} else {
		score += 15
		reasons = append(reasons, "Nenhum indicador de erro detectado")
	}

	if listStructurePattern.MatchString(content) {
		score = min(100, score+5)
		reasons = append(reasons, "✓ Estrutura de lista detectada (típico de vagas)")
	}

	return Result{IsValid: score >= ContentThreshold, Score: score, Reasons: reasons}
}
