package template

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Template is the API response model for a monthly template.
type Template struct {
	ID             int64  `json:"id" doc:"Template ID"`
	Name           string `json:"name"`
	Amount         string `json:"amount" doc:"Non-negative decimal amount"`
	Kind           string `json:"kind" enum:"income,expense"`
	DayOfMonth     int    `json:"dayOfMonth" doc:"Target day, clamped to the month length"`
	StartDate      string `json:"startDate" format:"date"`
	EndDate        string `json:"endDate,omitempty" format:"date" doc:"Absent for open-ended templates"`
	Category       string `json:"category"`
	GeneratedUntil string `json:"generatedUntil,omitempty" format:"date" doc:"Date up to which transactions have been generated"`
}

// TemplateBody is the request body for creating or editing a template.
type TemplateBody struct {
	Name       string `json:"name" required:"true" minLength:"1"`
	Amount     string `json:"amount" required:"true" doc:"Non-negative decimal amount"`
	Kind       string `json:"kind" required:"true" enum:"income,expense"`
	DayOfMonth int    `json:"dayOfMonth" required:"true" minimum:"1" maximum:"31"`
	StartDate  string `json:"startDate" required:"true" format:"date"`
	EndDate    string `json:"endDate,omitempty" format:"date" doc:"Leave out for an open-ended template"`
	Category   string `json:"category" required:"true" minLength:"1"`
}

// TemplateResponse is returned by create and edit.
type TemplateResponse struct {
	ID               int64     `json:"id"`
	Template         *Template `json:"template,omitempty" doc:"Absent if the template was deleted again before it could be read back"`
	Generated        int       `json:"generated" doc:"Transactions generated right after saving"`
	GenerationFailed bool      `json:"generationFailed" doc:"Saved, but generation failed and will be retried by the next sweep"`
	Recreated        bool      `json:"recreated" doc:"The edited template no longer existed and was created anew"`
}

type templateService interface {
	Create(ctx context.Context, in service.TemplateInput) (*service.TemplateResult, error)
	Edit(ctx context.Context, id int64, in service.TemplateInput) (*service.TemplateResult, error)
	Delete(ctx context.Context, id int64, cascadeTransactions bool) (*service.TemplateDeleteResult, error)
	Get(ctx context.Context, id int64) (*service.Template, error)
	List(ctx context.Context, category *string) ([]*service.Template, error)
}

// Handler serves /v1/template.
type Handler struct {
	TemplateService templateService
}

func NewHandler(svc templateService) *Handler {
	return &Handler{TemplateService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-template",
		Method:        http.MethodPost,
		Path:          "/v1/template",
		Summary:       "Create monthly template",
		Description:   "Saves a monthly template and generates every month that has already elapsed.",
		Tags:          []string{"Templates"},
		DefaultStatus: http.StatusCreated,
	}, h.handleCreate)

	huma.Register(api, huma.Operation{
		OperationID: "edit-template",
		Method:      http.MethodPut,
		Path:        "/v1/template/{id}",
		Summary:     "Edit monthly template",
		Description: "Updates a template and the transactions it generated. Execution dates are never rewritten.",
		Tags:        []string{"Templates"},
	}, h.handleEdit)

	huma.Register(api, huma.Operation{
		OperationID: "delete-template",
		Method:      http.MethodDelete,
		Path:        "/v1/template/{id}",
		Summary:     "Delete monthly template",
		Tags:        []string{"Templates"},
	}, h.handleDelete)

	huma.Register(api, huma.Operation{
		OperationID: "get-template",
		Method:      http.MethodGet,
		Path:        "/v1/template/{id}",
		Summary:     "Get monthly template",
		Tags:        []string{"Templates"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID: "list-templates",
		Method:      http.MethodGet,
		Path:        "/v1/template",
		Summary:     "List monthly templates",
		Tags:        []string{"Templates"},
	}, h.handleList)
}

func fromService(t *service.Template) Template {
	return Template{
		ID:             t.ID,
		Name:           t.Name,
		Amount:         t.Amount.String(),
		Kind:           t.Kind.String(),
		DayOfMonth:     t.DayOfMonth,
		StartDate:      t.StartDate.String(),
		EndDate:        handlerutil.FormatOptionalDate(t.EndDate),
		Category:       t.Category,
		GeneratedUntil: handlerutil.FormatOptionalDate(t.GeneratedUntil),
	}
}

func toResponse(res *service.TemplateResult) TemplateResponse {
	out := TemplateResponse{
		ID:               res.ID,
		Generated:        res.Generated,
		GenerationFailed: res.GenerationFailed,
		Recreated:        res.Recreated,
	}
	if res.Template != nil {
		t := fromService(res.Template)
		out.Template = &t
	}
	return out
}

func parseTemplateBody(body *TemplateBody) (service.TemplateInput, error) {
	amount, err := handlerutil.ParseAmount(body.Amount)
	if err != nil {
		return service.TemplateInput{}, err
	}
	start, err := handlerutil.ParseDate("startDate", body.StartDate)
	if err != nil {
		return service.TemplateInput{}, err
	}
	end, err := handlerutil.ParseOptionalDate("endDate", body.EndDate)
	if err != nil {
		return service.TemplateInput{}, err
	}
	return service.TemplateInput{
		Name:       body.Name,
		Amount:     amount,
		Kind:       service.Kind(body.Kind),
		DayOfMonth: body.DayOfMonth,
		StartDate:  start,
		EndDate:    end,
		Category:   body.Category,
	}, nil
}

type CreateTemplateInput struct {
	Body TemplateBody
}

type CreateTemplateOutput struct {
	Status int
	Body   TemplateResponse
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateTemplateInput) (*CreateTemplateOutput, error) {
	in, err := parseTemplateBody(&input.Body)
	if err != nil {
		return nil, err
	}

	res, err := h.TemplateService.Create(ctx, in)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}
	return &CreateTemplateOutput{Status: http.StatusCreated, Body: toResponse(res)}, nil
}

type EditTemplateInput struct {
	ID   int64 `path:"id"`
	Body TemplateBody
}

type TemplateOutput struct {
	Body TemplateResponse
}

func (h *Handler) handleEdit(ctx context.Context, input *EditTemplateInput) (*TemplateOutput, error) {
	in, err := parseTemplateBody(&input.Body)
	if err != nil {
		return nil, err
	}

	res, err := h.TemplateService.Edit(ctx, input.ID, in)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}
	return &TemplateOutput{Body: toResponse(res)}, nil
}

type DeleteTemplateInput struct {
	ID                  int64 `path:"id"`
	CascadeTransactions bool  `query:"cascadeTransactions" doc:"Also delete the transactions this template generated"`
}

type DeleteTemplateResponse struct {
	TransactionsDeleted  int64 `json:"transactionsDeleted"`
	TransactionsDetached int64 `json:"transactionsDetached"`
}

type DeleteTemplateOutput struct {
	Body DeleteTemplateResponse
}

func (h *Handler) handleDelete(ctx context.Context, input *DeleteTemplateInput) (*DeleteTemplateOutput, error) {
	res, err := h.TemplateService.Delete(ctx, input.ID, input.CascadeTransactions)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}
	return &DeleteTemplateOutput{Body: DeleteTemplateResponse{
		TransactionsDeleted:  res.TransactionsDeleted,
		TransactionsDetached: res.TransactionsDetached,
	}}, nil
}

type GetTemplateInput struct {
	ID int64 `path:"id"`
}

type GetTemplateOutput struct {
	Body Template
}

func (h *Handler) handleGet(ctx context.Context, input *GetTemplateInput) (*GetTemplateOutput, error) {
	t, err := h.TemplateService.Get(ctx, input.ID)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}
	return &GetTemplateOutput{Body: fromService(t)}, nil
}

type ListTemplatesInput struct {
	Category string `query:"category" doc:"Only list templates in this category"`
}

type ListTemplatesResponse struct {
	Templates []Template `json:"templates"`
}

type ListTemplatesOutput struct {
	Body ListTemplatesResponse
}

func (h *Handler) handleList(ctx context.Context, input *ListTemplatesInput) (*ListTemplatesOutput, error) {
	var category *string
	if input.Category != "" {
		category = &input.Category
	}

	rows, err := h.TemplateService.List(ctx, category)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}

	out := &ListTemplatesOutput{Body: ListTemplatesResponse{Templates: make([]Template, len(rows))}}
	for i, row := range rows {
		out.Body.Templates[i] = fromService(row)
	}
	return out, nil
}
