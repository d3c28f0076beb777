package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vagacerta/career-agent/internal/extraction"
	"github.com/vagacerta/career-agent/internal/fetch"
	"github.com/vagacerta/career-agent/internal/generation"
	"github.com/vagacerta/career-agent/internal/scrape"
)

// errorBody is the standard error envelope.
type errorBody struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// HTTPStatus maps pipeline errors to status codes. Anything the caller can
// fix (bad URL, unextractable page, too-short inputs) is a 400; the rest is
// a 500.
func HTTPStatus(err error) int {
	var (
		fallbackErr   *extraction.ContentFallbackError
		exhaustionErr *extraction.ExhaustionError
		detailsErr    *extraction.DetailsValidationError
		parseErr      *extraction.ParseError
		scrapeErr     *scrape.FailedError
	)

	switch {
	case errors.Is(err, fetch.ErrInvalidURL),
		errors.Is(err, extraction.ErrContentTooShort),
		errors.Is(err, generation.ErrCVTooShort),
		errors.Is(err, generation.ErrMissingJobIdentity),
		errors.Is(err, generation.ErrDescriptionTooShort),
		errors.As(err, &fallbackErr),
		errors.As(err, &exhaustionErr),
		errors.As(err, &detailsErr),
		errors.As(err, &parseErr),
		errors.As(err, &scrapeErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes a pipeline error with its mapped status.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	body := errorBody{Error: "Erro interno do servidor", ErrorCode: "INTERNAL_ERROR"}
	if status == http.StatusBadRequest {
		body = errorBody{Error: "Erro de validação", ErrorCode: "VALIDATION_ERROR"}
	}
	body.Detail = err.Error()
	s.jsonResponse(w, status, body)
}

// badRequest writes a request-shape error (malformed JSON, failed DTO
// validation).
func (s *Server) badRequest(w http.ResponseWriter, detail string) {
	s.jsonResponse(w, http.StatusBadRequest, errorBody{
		Error:     "Erro de validação",
		Detail:    detail,
		ErrorCode: "VALIDATION_ERROR",
	})
}

// serviceUnavailable reports a deploy without a usable model API key.
func (s *Server) serviceUnavailable(w http.ResponseWriter) {
	s.jsonResponse(w, http.StatusServiceUnavailable, errorBody{
		Error:     "Serviço não configurado",
		Detail:    "GEMINI_API_KEY não está configurada no servidor",
		ErrorCode: "MISSING_API_KEY",
	})
}

// validationDetail flattens validator errors into a readable message.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("campo %q inválido: falhou na regra %q (%s)", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("campo %q inválido: falhou na regra %q", fe.Field(), fe.Tag())
}
