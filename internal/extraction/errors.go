package extraction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vagacerta/career-agent/internal/validation"
)

// ErrContentTooShort rejects ExtractDetails input below the minimum size.
var ErrContentTooShort = errors.New("conteúdo da vaga muito curto ou vazio")

// ContentFallbackError means the model-produced content also failed
// validation, so both acquisition strategies are exhausted for this URL.
type ContentFallbackError struct {
	URL     string
	Score   int
	Reasons []string
}

func (e *ContentFallbackError) Error() string {
	return fmt.Sprintf(
		"IA não conseguiu extrair conteúdo válido da URL: %s\n"+
			"Score: %d/100 (mínimo: %d)\n"+
			"Motivos: %s\n\n"+
			"A URL pode estar protegida ou o conteúdo pode não estar acessível.\n"+
			"Sugestões:\n"+
			"1. Abra a URL no navegador e copie o conteúdo manualmente\n"+
			"2. Tente uma URL diferente da mesma vaga\n"+
			"3. Verifique se a vaga ainda está disponível",
		e.URL, e.Score, validation.ContentThreshold, strings.Join(e.Reasons, ", "))
}

// ExhaustionError wraps the final failure after scraping and the model
// fallback both failed, with remediation guidance for the user.
type ExhaustionError struct {
	URL   string
	Cause error
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf(
		"falha completa ao extrair conteúdo da URL: %s\n\n"+
			"Tentativas realizadas:\n"+
			"1. ✗ Web scraping direto\n"+
			"2. ✗ Extração via IA\n\n"+
			"Erro: %v\n\n"+
			"Ações sugeridas:\n"+
			"• Cole o conteúdo da vaga manualmente\n"+
			"• Verifique se a URL está correta e acessível\n"+
			"• Tente novamente em alguns minutos",
		e.URL, e.Cause)
}

func (e *ExhaustionError) Unwrap() error { return e.Cause }

// DetailsValidationError means the extracted title/company pair failed the
// strict details validation.
type DetailsValidationError struct {
	Title   string
	Company string
	Score   int
	Reasons []string
}

func (e *DetailsValidationError) Error() string {
	return fmt.Sprintf(
		"IA não conseguiu extrair dados válidos.\n"+
			"Score: %d/100 (mínimo: 90)\n"+
			"Motivos: %s\n"+
			"Título extraído: '%s'\n"+
			"Empresa extraída: '%s'",
		e.Score, strings.Join(e.Reasons, ", "), e.Title, e.Company)
}

// ParseError means the model returned something that is not JSON.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("IA retornou JSON inválido: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }
