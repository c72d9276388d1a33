package report

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/handlerutil"
	"github.com/carson-networks/ledger-server/internal/service"
)

type reportService interface {
	MonthSummary(ctx context.Context, year int, month time.Month) (*service.MonthSummary, error)
	YearTrend(ctx context.Context, year int) (*service.YearTrend, error)
	ExpenseDistribution(ctx context.Context, year int) ([]service.CategoryTotal, error)
}

type Handler struct {
	ReportService reportService
}

func NewHandler(svc reportService) *Handler {
	return &Handler{ReportService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-month",
		Method:      http.MethodGet,
		Path:        "/v1/report/month",
		Summary:     "Month summary",
		Description: "Income and expense totals of one month, overall and per day.",
		Tags:        []string{"Reports"},
	}, h.handleMonth)

	huma.Register(api, huma.Operation{
		OperationID: "report-trend",
		Method:      http.MethodGet,
		Path:        "/v1/report/trend",
		Summary:     "Year trend",
		Description: "Income and expense totals of one year, overall and per month.",
		Tags:        []string{"Reports"},
	}, h.handleTrend)

	huma.Register(api, huma.Operation{
		OperationID: "report-distribution",
		Method:      http.MethodGet,
		Path:        "/v1/report/distribution",
		Summary:     "Expense distribution",
		Description: "Expense total per category for one year, largest first.",
		Tags:        []string{"Reports"},
	}, h.handleDistribution)
}

type Totals struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

func totals(t service.Totals) Totals {
	return Totals{Income: t.Income.String(), Expense: t.Expense.String(), Net: t.Net().String()}
}

type MonthInput struct {
	Year  int `query:"year" required:"true" minimum:"1" maximum:"9999"`
	Month int `query:"month" required:"true" minimum:"1" maximum:"12"`
}

type DayTotals struct {
	Day int `json:"day"`
	Totals
}

type MonthResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Totals
	Days []DayTotals `json:"days"`
}

type MonthOutput struct {
	Body MonthResponse
}

func (h *Handler) handleMonth(ctx context.Context, input *MonthInput) (*MonthOutput, error) {
	summary, err := h.ReportService.MonthSummary(ctx, input.Year, time.Month(input.Month))
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}

	out := &MonthOutput{Body: MonthResponse{
		Year:   summary.Year,
		Month:  int(summary.Month),
		Totals: totals(summary.Totals),
		Days:   make([]DayTotals, len(summary.Days)),
	}}
	for i, d := range summary.Days {
		out.Body.Days[i] = DayTotals{Day: d.Day, Totals: totals(d.Totals)}
	}
	return out, nil
}

type YearInput struct {
	Year int `query:"year" required:"true" minimum:"1" maximum:"9999"`
}

type MonthTotals struct {
	Month int `json:"month"`
	Totals
}

type TrendResponse struct {
	Year int `json:"year"`
	Totals
	Months []MonthTotals `json:"months"`
}

type TrendOutput struct {
	Body TrendResponse
}

func (h *Handler) handleTrend(ctx context.Context, input *YearInput) (*TrendOutput, error) {
	trend, err := h.ReportService.YearTrend(ctx, input.Year)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}

	out := &TrendOutput{Body: TrendResponse{
		Year:   trend.Year,
		Totals: totals(trend.Totals),
		Months: make([]MonthTotals, len(trend.Months)),
	}}
	for i, m := range trend.Months {
		out.Body.Months[i] = MonthTotals{Month: int(m.Month), Totals: totals(m.Totals)}
	}
	return out, nil
}

type CategoryTotal struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type DistributionResponse struct {
	Year       int             `json:"year"`
	Categories []CategoryTotal `json:"categories"`
}

type DistributionOutput struct {
	Body DistributionResponse
}

func (h *Handler) handleDistribution(ctx context.Context, input *YearInput) (*DistributionOutput, error) {
	dist, err := h.ReportService.ExpenseDistribution(ctx, input.Year)
	if err != nil {
		return nil, handlerutil.ServiceError(err)
	}

	out := &DistributionOutput{Body: DistributionResponse{Year: input.Year, Categories: make([]CategoryTotal, len(dist))}}
	for i, c := range dist {
		out.Body.Categories[i] = CategoryTotal{Category: c.Category, Amount: c.Amount.String()}
	}
	return out, nil
}
