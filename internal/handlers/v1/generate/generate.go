package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/generator"
)

type templateGenerator interface {
	Generate(ctx context.Context, templateID int64) (*generator.Result, error)
	GenerateAll(ctx context.Context) generator.Summary
}

// Handler exposes on-demand generation next to the periodic sweep.
type Handler struct {
	Generator templateGenerator
}

func NewHandler(g templateGenerator) *Handler {
	return &Handler{Generator: g}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-template",
		Method:      http.MethodPost,
		Path:        "/v1/template/{id}/generate",
		Summary:     "Generate one template",
		Description: "Creates the transactions a template owes up to today and advances its watermark.",
		Tags:        []string{"Generation"},
	}, h.handleGenerate)

	huma.Register(api, huma.Operation{
		OperationID: "generate-all",
		Method:      http.MethodPost,
		Path:        "/v1/generate",
		Summary:     "Generate all templates",
		Description: "Catches every template up to today. Failing templates are reported, not fatal.",
		Tags:        []string{"Generation"},
	}, h.handleGenerateAll)
}

type GenerateInput struct {
	ID int64 `path:"id" doc:"Template ID"`
}

type GenerateResponse struct {
	TemplateID     int64    `json:"templateID"`
	Created        []int64  `json:"created" doc:"IDs of the transactions created by this run"`
	Dates          []string `json:"dates" doc:"Execution dates of the created transactions"`
	GeneratedUntil string   `json:"generatedUntil,omitempty" format:"date"`
	Skipped        bool     `json:"skipped" doc:"Nothing was due"`
}

type GenerateOutput struct {
	Body GenerateResponse
}

func (h *Handler) handleGenerate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	res, err := h.Generator.Generate(ctx, input.ID)
	if errors.Is(err, generator.ErrTemplateNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "template not found")
	}
	var genErr *generator.GenerationError
	if errors.As(err, &genErr) {
		return nil, huma.NewError(http.StatusInternalServerError, fmt.Sprintf("generation failed for template %d", genErr.TemplateID))
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "An unexpected error occurred.")
	}

	out := &GenerateOutput{Body: GenerateResponse{
		TemplateID: res.TemplateID,
		Created:    res.Created,
		Dates:      make([]string, len(res.Dates)),
		Skipped:    res.Skipped,
	}}
	if out.Body.Created == nil {
		out.Body.Created = []int64{}
	}
	for i, d := range res.Dates {
		out.Body.Dates[i] = d.String()
	}
	if gu, ok := res.GeneratedUntil.Get(); ok {
		out.Body.GeneratedUntil = gu.String()
	}
	return out, nil
}

type GenerateAllResponse struct {
	Attempted int     `json:"attempted"`
	Succeeded int     `json:"succeeded"`
	Failed    int     `json:"failed"`
	Created   int     `json:"created"`
	FailedIDs []int64 `json:"failedIDs"`
}

type GenerateAllOutput struct {
	Body GenerateAllResponse
}

func (h *Handler) handleGenerateAll(ctx context.Context, _ *struct{}) (*GenerateAllOutput, error) {
	summary := h.Generator.GenerateAll(ctx)

	failed := summary.FailedIDs
	if failed == nil {
		failed = []int64{}
	}
	return &GenerateAllOutput{Body: GenerateAllResponse{
		Attempted: summary.Attempted,
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
		Created:   summary.Created,
		FailedIDs: failed,
	}}, nil
}
