package extraction

import (
	"fmt"

	"github.com/vagacerta/career-agent/internal/llm"
	"github.com/vagacerta/career-agent/internal/validation"
)

// contentFallbackPrompt asks the model to retrieve and summarize a posting
// the scraper could not reach. The model may have indexed the page even
// when the site blocks automated fetches.
func contentFallbackPrompt(jobURL string) string {
	return fmt.Sprintf(`Você precisa extrair o conteúdo completo de uma vaga de emprego da seguinte URL:

URL: %s

IMPORTANTE: Esta URL pode estar protegida contra web scraping. Tente acessar e extrair:
1. Título da vaga
2. Nome da empresa
3. Descrição completa da vaga
4. Requisitos
5. Benefícios
6. Qualquer outra informação relevante

Se não conseguir acessar a URL diretamente, explique o que impede o acesso.

Retorne o conteúdo extraído em formato de texto estruturado.`, jobURL)
}

// detailsPrompt builds the structured-extraction prompt for title and
// company. The posting text is quoted so instructions embedded in a
// malicious page are not executed.
func detailsPrompt(content string) string {
	quoted := validation.QuoteExternalContentWithLabel(content, "job posting")
	return llm.BuildExtractionPrompt(llm.JobDetailsSchema(), quoted)
}
