package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSections(t *testing.T) {
	response := `### OPTIMIZED CV ###
# Maria Silva
## Summary
Engenheira experiente.

### COVER LETTER ###
Prezada equipe de contratação,
Tenho grande interesse na vaga.

### NETWORKING MESSAGE ###
Olá! Vi a vaga de engenheira na Acme.

### INTERVIEW TIPS ###
- Estude a arquitetura da empresa.
- Prepare exemplos com métricas.`

	m := ParseSections(response)

	assert.Contains(t, m.OptimizedCV, "# Maria Silva")
	assert.NotContains(t, m.OptimizedCV, "COVER LETTER")
	assert.Contains(t, m.CoverLetter, "Prezada equipe")
	assert.Contains(t, m.NetworkingMessage, "vaga de engenheira")
	assert.Contains(t, m.InterviewTips, "Prepare exemplos")
}

func TestParseSectionsMissingMarker(t *testing.T) {
	response := `### OPTIMIZED CV ###
Conteúdo do CV.

### COVER LETTER ###
Carta aqui.

### INTERVIEW TIPS ###
Dicas aqui.`

	m := ParseSections(response)

	assert.Equal(t, "Erro: Seção ### NETWORKING MESSAGE ### não encontrada", m.NetworkingMessage)
	assert.Contains(t, m.CoverLetter, "Carta aqui.")
	assert.Contains(t, m.InterviewTips, "Dicas aqui.")
}

func TestParseSectionsEmptyResponse(t *testing.T) {
	m := ParseSections("")

	assert.Contains(t, m.OptimizedCV, "não encontrada")
	assert.Contains(t, m.CoverLetter, "não encontrada")
	assert.Contains(t, m.NetworkingMessage, "não encontrada")
	assert.Contains(t, m.InterviewTips, "não encontrada")
}

func TestParseSectionsPreambleIgnored(t *testing.T) {
	response := "Claro! Aqui estão seus materiais:\n\n### OPTIMIZED CV ###\nCV aqui.\n### COVER LETTER ###\nCarta.\n### NETWORKING MESSAGE ###\nMensagem.\n### INTERVIEW TIPS ###\nDicas."

	m := ParseSections(response)

	assert.Equal(t, "CV aqui.", m.OptimizedCV)
	assert.Equal(t, "Dicas.", m.InterviewTips)
}
