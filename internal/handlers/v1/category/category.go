package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Category is the API model for a category.
type Category struct {
	Name string `json:"name" doc:"Unique category name"`
	Kind string `json:"kind" enum:"income,expense" doc:"Kind shared by every transaction in the category"`
}

type categoryService interface {
	Create(ctx context.Context, name string, kind service.Kind) (*service.Category, error)
	Rename(ctx context.Context, oldName, newName string) (*service.CategoryRenameResult, error)
	Delete(ctx context.Context, name string) (*service.CategoryDeleteResult, error)
	List(ctx context.Context, kind *service.Kind) ([]service.Category, error)
}

// Handler serves /v1/category.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/category",
		Summary:       "Create category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.handleCreate)

	huma.Register(api, huma.Operation{
		OperationID: "rename-category",
		Method:      http.MethodPut,
		Path:        "/v1/category/{name}",
		Summary:     "Rename category",
		Description: "Renames a category and moves its transactions and templates along.",
		Tags:        []string{"Categories"},
	}, h.handleRename)

	huma.Register(api, huma.Operation{
		OperationID: "delete-category",
		Method:      http.MethodDelete,
		Path:        "/v1/category/{name}",
		Summary:     "Delete category",
		Description: "Deletes a category with all its templates and transactions.",
		Tags:        []string{"Categories"},
	}, h.handleDelete)

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/category",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.handleList)
}

type CreateCategoryInput struct {
	Body Category
}

type CreateCategoryOutput struct {
	Status int
	Body   Category
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	c, err := h.CategoryService.Create(ctx, input.Body.Name, service.Kind(input.Body.Kind))
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}
	return &CreateCategoryOutput{Status: http.StatusCreated, Body: Category{Name: c.Name, Kind: c.Kind.String()}}, nil
}

type RenameCategoryBody struct {
	Name string `json:"name" required:"true" doc:"New category name"`
}

type RenameCategoryInput struct {
	Name string `path:"name" doc:"Current category name"`
	Body RenameCategoryBody
}

type RenameCategoryResponse struct {
	Category          Category `json:"category"`
	TransactionsMoved int64    `json:"transactionsMoved"`
	TemplatesMoved    int64    `json:"templatesMoved"`
}

type RenameCategoryOutput struct {
	Body RenameCategoryResponse
}

func (h *Handler) handleRename(ctx context.Context, input *RenameCategoryInput) (*RenameCategoryOutput, error) {
	res, err := h.CategoryService.Rename(ctx, input.Name, input.Body.Name)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}
	return &RenameCategoryOutput{Body: RenameCategoryResponse{
		Category:          Category{Name: res.Category.Name, Kind: res.Category.Kind.String()},
		TransactionsMoved: res.TransactionsMoved,
		TemplatesMoved:    res.TemplatesMoved,
	}}, nil
}

type DeleteCategoryInput struct {
	Name string `path:"name" doc:"Category name"`
}

type DeleteCategoryResponse struct {
	TemplatesDeleted    int64 `json:"templatesDeleted"`
	TransactionsDeleted int64 `json:"transactionsDeleted"`
}

type DeleteCategoryOutput struct {
	Body DeleteCategoryResponse
}

func (h *Handler) handleDelete(ctx context.Context, input *DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	res, err := h.CategoryService.Delete(ctx, input.Name)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}
	return &DeleteCategoryOutput{Body: DeleteCategoryResponse{
		TemplatesDeleted:    res.TemplatesDeleted,
		TransactionsDeleted: res.TransactionsDeleted,
	}}, nil
}

type ListCategoriesInput struct {
	Kind string `query:"kind" enum:"income,expense" doc:"Only list categories of this kind"`
}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type ListCategoriesOutput struct {
	Body ListCategoriesResponse
}

func (h *Handler) handleList(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	var kind *service.Kind
	if input.Kind != "" {
		k := service.Kind(input.Kind)
		kind = &k
	}

	rows, err := h.CategoryService.List(ctx, kind)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}

	out := &ListCategoriesOutput{Body: ListCategoriesResponse{Categories: make([]Category, len(rows))}}
	for i, c := range rows {
		out.Body.Categories[i] = Category{Name: c.Name, Kind: c.Kind.String()}
	}
	return out, nil
}
