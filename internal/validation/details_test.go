package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreDetailsValid(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		company string
	}{
		{name: "english", title: "Senior Backend Engineer", company: "Acme Corp"},
		{name: "portuguese", title: "Engenheiro de Dados Pleno", company: "Nubank"},
		{name: "short company", title: "Desenvolvedor Go", company: "XP"},
		{name: "company containing generic word", title: "Analista de Sistemas", company: "Companhia ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScoreDetails(tt.title, tt.company)
			assert.True(t, res.IsValid)
			assert.Equal(t, 100, res.Score)
			assert.Equal(t, []string{"✓ Título válido", "✓ Empresa válida"}, res.Reasons)
		})
	}
}

func TestScoreDetailsMissingTitle(t *testing.T) {
	for _, title := range []string{"", "   "} {
		res := ScoreDetails(title, "Acme Corp")
		assert.False(t, res.IsValid)
		assert.Equal(t, 0, res.Score)
		assert.Equal(t, []string{"Título da vaga ausente"}, res.Reasons)
	}
}

func TestScoreDetailsGenericTitle(t *testing.T) {
	tests := []string{"Not Found", "N/A", "n.a.", "TBD", "Desconhecido", "None", "null", "Company"}

	for _, title := range tests {
		t.Run(title, func(t *testing.T) {
			res := ScoreDetails(title, "Acme Corp")
			assert.False(t, res.IsValid)
			assert.Equal(t, 0, res.Score)
			assert.Len(t, res.Reasons, 1)
			assert.Contains(t, res.Reasons[0], "Título genérico/inválido")
		})
	}
}

func TestScoreDetailsMissingCompanyShortCircuits(t *testing.T) {
	res := ScoreDetails("Engenheiro de Software", "")

	assert.False(t, res.IsValid)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []string{"Nome da empresa ausente"}, res.Reasons)
}

func TestScoreDetailsGenericCompany(t *testing.T) {
	res := ScoreDetails("Engenheiro de Software", "Unknown")

	assert.False(t, res.IsValid)
	assert.Equal(t, 0, res.Score)
	assert.Contains(t, res.Reasons[0], "Empresa genérica/inválida")
}

func TestScoreDetailsLengthBounds(t *testing.T) {
	longName := strings.Repeat("a", 101)

	tests := []struct {
		name    string
		title   string
		company string
		reason  string
	}{
		{name: "title too short", title: "Dev", company: "Acme Corp", reason: "Título muito curto"},
		{name: "title too long", title: longName, company: "Acme Corp", reason: "Título muito longo"},
		{name: "company too long", title: "Engenheiro de Software", company: longName, reason: "Nome da empresa muito longo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScoreDetails(tt.title, tt.company)
			assert.False(t, res.IsValid, "one invalid field must fail the 90 threshold")
			assert.Equal(t, 50, res.Score)

			found := false
			for _, r := range res.Reasons {
				if strings.Contains(r, tt.reason) {
					found = true
				}
			}
			assert.True(t, found, "reasons %v should mention %q", res.Reasons, tt.reason)
		})
	}
}

func TestScoreDetailsBothFieldsRequired(t *testing.T) {
	// A single valid field scores 50, below the 90 threshold.
	res := ScoreDetails("Dev", "Acme Corp")
	assert.False(t, res.IsValid)
	assert.Equal(t, 50, res.Score)
}
