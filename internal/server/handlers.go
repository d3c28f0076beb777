package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/vagacerta/career-agent/internal/compat"
	"github.com/vagacerta/career-agent/internal/extraction"
	"github.com/vagacerta/career-agent/internal/generation"
	"github.com/vagacerta/career-agent/internal/validation"
)

// Request DTOs. Length floors mirror the generation gates so bad input is
// rejected before any model call.
type extractRequest struct {
	JobURL string `json:"job_url" validate:"required,url"`
}

type generateMaterialsRequest struct {
	CV              string `json:"cv" validate:"required,min=50"`
	JobTitle        string `json:"job_title" validate:"required,min=3"`
	Company         string `json:"company" validate:"required,min=2"`
	JobDescription  string `json:"job_description" validate:"required,min=100"`
	Tone            string `json:"tone"`
	Language        string `json:"language"`
	CustomContext   string `json:"custom_context"`
	UseThinkingMode bool   `json:"use_thinking_mode"`
}

type generateCompleteRequest struct {
	CV            string `json:"cv" validate:"required,min=50"`
	JobURL        string `json:"job_url" validate:"required,url"`
	Tone          string `json:"tone"`
	Language      string `json:"language"`
	CustomContext string `json:"custom_context"`
}

// validationEnvelope pairs the two validator verdicts in responses.
type validationEnvelope struct {
	Content validation.Result `json:"content"`
	Details validation.Result `json:"details"`
}

type jobDetailsResponse struct {
	JobTitle       string             `json:"job_title"`
	Company        string             `json:"company"`
	JobDescription string             `json:"job_description"`
	Validation     validationEnvelope `json:"validation"`
	Source         string             `json:"source"`
	ContentScore   int                `json:"content_score"`
}

type generatedContentResponse struct {
	OptimizedCV       string              `json:"optimized_cv"`
	CoverLetter       string              `json:"cover_letter"`
	NetworkingMessage string              `json:"networking_message"`
	InterviewTips     string              `json:"interview_tips"`
	Compatibility     compat.Insights     `json:"compatibility"`
	Metadata          generation.Metadata `json:"metadata"`
}

// completeResponse nests details and materials the way the web client
// consumes them, hence the camelCase keys.
type completeResponse struct {
	JobDetails completeJobDetails `json:"jobDetails"`
	Materials  completeMaterials  `json:"materials"`
}

type completeJobDetails struct {
	JobTitle       string             `json:"jobTitle"`
	Company        string             `json:"company"`
	JobDescription string             `json:"jobDescription"`
	Validation     validationEnvelope `json:"validation"`
}

type completeMaterials struct {
	generation.Materials
	Compatibility compat.Insights     `json:"compatibility"`
	Metadata      generation.Metadata `json:"metadata"`
}

// decodeAndValidate decodes the body into dst and runs the DTO rules.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.badRequest(w, "corpo da requisição inválido: JSON malformado")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.badRequest(w, validationDetail(err))
		return false
	}
	return true
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.settings.RequestTimeout)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Vaga Certa API",
		"status":  "ok",
		"version": ServiceVersion,
		"endpoints": map[string]string{
			"health":             "/health",
			"extract_job":        "/extract-job-details",
			"generate_materials": "/generate-materials",
			"generate_complete":  "/generate-complete",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	configured := s.settings.IsConfigured()

	status := "healthy"
	if !configured {
		status = "misconfigured"
	}

	response := map[string]any{
		"status":      status,
		"environment": s.settings.Environment,
		"version":     ServiceVersion,
		"config": map[string]any{
			"gemini_api_configured": configured,
			"agents_initialized":    s.extractor != nil && s.generator != nil,
		},
	}
	if !configured {
		response["error"] = map[string]string{
			"code":    "MISSING_API_KEY",
			"message": "GEMINI_API_KEY não configurada",
		}
	}

	s.jsonResponse(w, http.StatusOK, response)
}

// extractJob runs the two extraction steps shared by the extract and
// complete endpoints.
func (s *Server) extractJob(ctx context.Context, jobURL string) (*extraction.ContentResult, *extraction.DetailsResult, error) {
	content, err := s.extractor.ExtractContent(ctx, jobURL)
	if err != nil {
		return nil, nil, err
	}
	details, err := s.extractor.ExtractDetails(ctx, content.Content, jobURL)
	if err != nil {
		return nil, nil, err
	}
	return content, details, nil
}

func (s *Server) handleExtractJobDetails(w http.ResponseWriter, r *http.Request) {
	if !s.configured() {
		s.serviceUnavailable(w)
		return
	}

	var req extractRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	s.log.Info("extracting job details", zap.String("url", req.JobURL))

	content, details, err := s.extractJob(ctx, req.JobURL)
	if err != nil {
		s.log.Warn("extraction failed", zap.String("url", req.JobURL), zap.Error(err))
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, jobDetailsResponse{
		JobTitle:       details.JobTitle,
		Company:        details.Company,
		JobDescription: content.Content,
		Validation: validationEnvelope{
			Content: content.Validation,
			Details: details.Validation,
		},
		Source:       content.Source + " + " + details.Source,
		ContentScore: content.Validation.Score,
	})
}

func (s *Server) handleGenerateMaterials(w http.ResponseWriter, r *http.Request) {
	if !s.configured() {
		s.serviceUnavailable(w)
		return
	}

	var req generateMaterialsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	s.log.Info("generating materials",
		zap.String("job_title", req.JobTitle),
		zap.String("company", req.Company),
		zap.Bool("use_thinking_mode", req.UseThinkingMode))

	result, err := s.generator.Generate(ctx, &generation.Request{
		CV:             req.CV,
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		JobDescription: req.JobDescription,
		Tone:           req.Tone,
		Language:       req.Language,
		CustomContext:  req.CustomContext,
		ThinkingMode:   req.UseThinkingMode,
	})
	if err != nil {
		s.log.Warn("generation failed", zap.String("company", req.Company), zap.Error(err))
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, generatedContentResponse{
		OptimizedCV:       result.OptimizedCV,
		CoverLetter:       result.CoverLetter,
		NetworkingMessage: result.NetworkingMessage,
		InterviewTips:     result.InterviewTips,
		Compatibility:     result.Compatibility,
		Metadata:          result.Metadata,
	})
}

func (s *Server) handleGenerateComplete(w http.ResponseWriter, r *http.Request) {
	if !s.configured() {
		s.serviceUnavailable(w)
		return
	}

	var req generateCompleteRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	s.log.Info("complete flow started", zap.String("url", req.JobURL))

	content, details, err := s.extractJob(ctx, req.JobURL)
	if err != nil {
		s.log.Warn("complete flow extraction failed", zap.String("url", req.JobURL), zap.Error(err))
		s.errorResponse(w, err)
		return
	}

	result, err := s.generator.Generate(ctx, &generation.Request{
		CV:             req.CV,
		JobTitle:       details.JobTitle,
		Company:        details.Company,
		JobDescription: content.Content,
		Tone:           req.Tone,
		Language:       req.Language,
		CustomContext:  req.CustomContext,
	})
	if err != nil {
		s.log.Warn("complete flow generation failed", zap.String("url", req.JobURL), zap.Error(err))
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, completeResponse{
		JobDetails: completeJobDetails{
			JobTitle:       details.JobTitle,
			Company:        details.Company,
			JobDescription: content.Content,
			Validation: validationEnvelope{
				Content: content.Validation,
				Details: details.Validation,
			},
		},
		Materials: completeMaterials{
			Materials:     result.Materials,
			Compatibility: result.Compatibility,
			Metadata:      result.Metadata,
		},
	})
}
