package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
	"github.com/baditaflorin/go_issue_similarity/internal/ports"
	"github.com/baditaflorin/go_issue_similarity/internal/service"
	"github.com/baditaflorin/go_issue_similarity/pkg/duplicates"
	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"
)

// requestTimeout bounds candidate lookups made on behalf of one request.
const requestTimeout = 10 * time.Second

// NormalizeRequest asks for the normalized form of a text.
type NormalizeRequest struct {
	Text string `json:"text" validate:"max=10000"`
}

// SimilarityRequest compares two titles.
type SimilarityRequest struct {
	A string `json:"a" validate:"max=1000"`
	B string `json:"b" validate:"max=1000"`
}

// SimilarRequest ranks caller-supplied candidates. Candidate payloads are
// arbitrary JSON and are echoed back unchanged.
type SimilarRequest struct {
	Query      string                              `json:"query" validate:"max=1000"`
	Candidates []domain.Candidate[json.RawMessage] `json:"candidates" validate:"max=1000"`
	Threshold  *float64                            `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// IssueRequest checks a title against the issues of a city.
type IssueRequest struct {
	City      string `json:"city" validate:"required,max=128"`
	Title     string `json:"title" validate:"required,max=255"`
	Confirmed bool   `json:"confirmed"`
}

// SimilarityResponse carries both metrics, the combined score and the duplicate verdict.
type SimilarityResponse struct {
	domain.Score
	Duplicate bool `json:"duplicate"`
}

// SimilarResponse lists ranked candidates.
type SimilarResponse struct {
	Matches []domain.Match[json.RawMessage] `json:"matches"`
}

// SuggestResponse lists ranked issues for live suggestions.
type SuggestResponse struct {
	Matches []domain.Match[domain.Issue] `json:"matches"`
}

// CheckResponse adds the submission verdict to a duplicate check.
type CheckResponse struct {
	service.CheckResult
	// Allowed is false when a duplicate was found and the user has not confirmed.
	Allowed bool `json:"allowed"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// app holds the dependencies shared by all handlers.
type app struct {
	generic  *duplicates.Engine[json.RawMessage]
	issues   *service.Service
	logger   ports.Logger
	validate *validator.Validate
}

func newApp(generic *duplicates.Engine[json.RawMessage], issues *service.Service, logger ports.Logger) *app {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names in validation messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "-" || tag == "" {
			return fld.Name
		}
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		return tag
	})

	return &app{
		generic:  generic,
		issues:   issues,
		logger:   logger,
		validate: v,
	}
}

// requestHandler is the main fasthttp request handler
func (a *app) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "IssueSimilarityServer")

	switch string(ctx.Path()) {
	case "/health":
		a.handleHealthCheck(ctx)
	case "/normalize":
		a.handleNormalize(ctx)
	case "/similarity":
		a.handleSimilarity(ctx)
	case "/similar":
		a.handleSimilar(ctx)
	case "/issues/suggest":
		a.handleSuggest(ctx)
	case "/issues/check":
		a.handleCheck(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		a.writeJSONError(ctx, "Not found")
	}

	a.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (a *app) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	a.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (a *app) handleNormalize(ctx *fasthttp.RequestCtx) {
	var req NormalizeRequest
	if !a.bind(ctx, &req) {
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	a.writeJSONResponse(ctx, map[string]string{
		"normalized": a.generic.Normalize(req.Text),
	})
}

func (a *app) handleSimilarity(ctx *fasthttp.RequestCtx) {
	var req SimilarityRequest
	if !a.bind(ctx, &req) {
		return
	}
	score := a.generic.Score(req.A, req.B)
	ctx.SetStatusCode(fasthttp.StatusOK)
	a.writeJSONResponse(ctx, SimilarityResponse{
		Score:     score,
		Duplicate: score.Combined > a.generic.DuplicateThreshold(),
	})
}

func (a *app) handleSimilar(ctx *fasthttp.RequestCtx) {
	var req SimilarRequest
	if !a.bind(ctx, &req) {
		return
	}
	threshold := a.generic.SuggestionThreshold()
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	a.writeJSONResponse(ctx, SimilarResponse{
		Matches: a.generic.Rank(req.Query, req.Candidates, threshold),
	})
}

func (a *app) handleSuggest(ctx *fasthttp.RequestCtx) {
	var req IssueRequest
	if !a.bind(ctx, &req) {
		return
	}

	c, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	matches, err := a.issues.Suggest(c, req.City, req.Title)
	if err != nil {
		a.writeServiceError(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	a.writeJSONResponse(ctx, SuggestResponse{Matches: matches})
}

func (a *app) handleCheck(ctx *fasthttp.RequestCtx) {
	var req IssueRequest
	if !a.bind(ctx, &req) {
		return
	}

	c, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	result, err := a.issues.Check(c, req.City, req.Title)
	if err != nil {
		a.writeServiceError(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	a.writeJSONResponse(ctx, CheckResponse{
		CheckResult: result,
		Allowed:     !result.Duplicate || req.Confirmed,
	})
}

// bind accepts only POST, decodes the JSON body into dst and validates it.
// It writes the error response itself and reports whether to continue.
func (a *app) bind(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		a.writeJSONError(ctx, "Method not allowed")
		return false
	}
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		a.writeJSONError(ctx, "Invalid request: "+err.Error())
		return false
	}
	if err := a.validate.Struct(dst); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		a.writeJSONError(ctx, "Invalid request: "+validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func (a *app) writeServiceError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, service.ErrTitleTooShort), errors.Is(err, service.ErrCityRequired):
		ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
		a.writeJSONError(ctx, err.Error())
	default:
		a.logger.Error("Duplicate lookup failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		a.writeJSONError(ctx, "Candidate source unavailable")
	}
}

// writeJSONResponse writes a JSON response to the context
func (a *app) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		a.logger.Error("Error marshaling JSON response", "error", err)
		a.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (a *app) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		a.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
