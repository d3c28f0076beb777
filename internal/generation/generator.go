// Package generation produces personalized career materials (CV, cover
// letter, networking message, interview tips) from a resume and an
// extracted job posting.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/vagacerta/career-agent/internal/compat"
	"github.com/vagacerta/career-agent/internal/llm"
	"github.com/vagacerta/career-agent/internal/validation"
)

// Input gates. Anything below these sizes cannot produce useful materials.
const (
	minCVLength          = 50
	minDescriptionLength = 100
)

// Defaults applied when the request leaves tone or language unset.
const (
	DefaultTone          = "Profissional mas entusiasmado"
	DefaultLanguage      = "Português Brasileiro"
	defaultCustomContext = "Nenhuma instrução adicional fornecida."
)

// Input validation errors.
var (
	ErrCVTooShort          = errors.New("CV muito curto ou vazio")
	ErrMissingJobIdentity  = errors.New("título da vaga e empresa são obrigatórios")
	ErrDescriptionTooShort = errors.New("descrição da vaga muito curta ou vazia")
)

// Request carries everything needed to generate materials.
type Request struct {
	CV             string
	JobTitle       string
	Company        string
	JobDescription string
	Tone           string
	Language       string
	CustomContext  string
	// ThinkingMode switches generation to the advanced model tier.
	ThinkingMode bool
}

// Metadata records how a generation was produced.
type Metadata struct {
	Model        string `json:"model"`
	ThinkingMode bool   `json:"use_thinking_mode"`
	Tone         string `json:"tone"`
	Language     string `json:"language"`
}

// Result is the full generation output.
type Result struct {
	Materials
	Compatibility compat.Insights `json:"compatibility"`
	Metadata      Metadata        `json:"metadata"`
}

// Generator produces career materials through the model.
type Generator struct {
	client llm.Client
	log    *zap.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(client llm.Client, log *zap.Logger) *Generator {
	return &Generator{client: client, log: log}
}

// Generate validates the request, computes compatibility insights and asks
// the model for the four materials.
func (g *Generator) Generate(ctx context.Context, req *Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	applyDefaults(req)

	tier := llm.TierStandard
	if req.ThinkingMode {
		tier = llm.TierAdvanced
	}

	g.log.Info("generating career materials",
		zap.String("job_title", req.JobTitle),
		zap.String("company", req.Company),
		zap.String("model", g.client.GetModel(tier)))

	insights := compat.Compute(req.CV, req.JobDescription)

	// The description often comes straight from a scraped page. Quoting in
	// the prompt is the primary defense; suspicious content is flagged and
	// redacted on top of that.
	if check := validation.CheckBasicHeuristics(req.JobDescription); !check.IsSafe {
		validation.LogInjectionWarning(g.log, check, "job description")
		req.JobDescription = validation.StripInjectionAttempts(req.JobDescription)
	}

	response, err := g.client.GenerateCreative(ctx, buildPrompt(req), tier)
	if err != nil {
		g.log.Error("materials generation failed", zap.Error(err))
		return nil, fmt.Errorf("falha ao gerar materiais: %w", err)
	}

	materials := ParseSections(response)
	g.log.Info("career materials generated",
		zap.String("company", req.Company),
		zap.Int("compatibility_score", insights.Score))

	return &Result{
		Materials:     materials,
		Compatibility: insights,
		Metadata: Metadata{
			Model:        g.client.GetModel(tier),
			ThinkingMode: req.ThinkingMode,
			Tone:         req.Tone,
			Language:     req.Language,
		},
	}, nil
}

func validateRequest(req *Request) error {
	if utf8.RuneCountInString(strings.TrimSpace(req.CV)) < minCVLength {
		return ErrCVTooShort
	}
	if strings.TrimSpace(req.JobTitle) == "" || strings.TrimSpace(req.Company) == "" {
		return ErrMissingJobIdentity
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.JobDescription)) < minDescriptionLength {
		return ErrDescriptionTooShort
	}
	return nil
}

func applyDefaults(req *Request) {
	if strings.TrimSpace(req.Tone) == "" {
		req.Tone = DefaultTone
	}
	if strings.TrimSpace(req.Language) == "" {
		req.Language = DefaultLanguage
	}
	if strings.TrimSpace(req.CustomContext) == "" {
		req.CustomContext = defaultCustomContext
	}
}
