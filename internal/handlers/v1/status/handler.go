package status

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	DB pinger
}

func NewHandler(db pinger) *Handler {
	return &Handler{DB: db}
}

type StatusResponse struct {
	Status string `json:"status" enum:"ok" doc:"Always ok when the server can reach its database"`
}

type StatusOutput struct {
	Body StatusResponse
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Health check",
		Tags:        []string{"Status"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	if err := h.DB.PingContext(ctx); err != nil {
		if logData := logging.GetLogData(ctx); logData != nil {
			logData.AddData("pingError", err.Error())
		}
		return nil, huma.NewError(http.StatusServiceUnavailable, "database unavailable")
	}
	return &StatusOutput{Body: StatusResponse{Status: "ok"}}, nil
}
