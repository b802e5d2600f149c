package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/infrastructure/metrics"
	"github.com/iho/bankcore/internal/usecase"
)

const dateLayout = "2006-01-02"

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GenerateStatement(ctx context.Context, input usecase.GenerateStatementInput) (*usecase.Statement, error)
}

// ReportHandler serves account statement reports.
type ReportHandler struct {
	statementUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(statementUC ReportService) *ReportHandler {
	return &ReportHandler{statementUC: statementUC}
}

// Statement generates a client statement for a date range. Dates are
// YYYY-MM-DD; the end date covers the whole day.
func (h *ReportHandler) Statement(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "missing client_id", "")
		return
	}

	start, err := time.Parse(dateLayout, r.URL.Query().Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", "expected YYYY-MM-DD")
		return
	}

	end, err := time.Parse(dateLayout, r.URL.Query().Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", "expected YYYY-MM-DD")
		return
	}

	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "invalid date range", "end_date precedes start_date")
		return
	}

	statement, err := h.statementUC.GenerateStatement(r.Context(), usecase.GenerateStatementInput{
		ClientID:  clientID,
		StartDate: start,
		EndDate:   end.Add(24*time.Hour - time.Nanosecond),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to generate statement", err.Error())
		return
	}

	groups := make([]*dto.StatementGroupResponse, 0, len(statement.Groups))
	for _, g := range statement.Groups {
		groups = append(groups, dto.StatementGroupFromDomain(g))
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].AccountNumber < groups[j].AccountNumber
	})

	metrics.StatementsGenerated.Inc()
	writeJSON(w, http.StatusOK, dto.StatementResponse{
		Client:    dto.ClientFromDomain(statement.Client),
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Accounts:  groups,
		Totals: dto.StatementTotalsResponse{
			OpeningBalance:   statement.Totals.OpeningBalance,
			TotalDeposits:    statement.Totals.TotalDeposits,
			TotalWithdrawals: statement.Totals.TotalWithdrawals,
			ClosingBalance:   statement.Totals.ClosingBalance,
		},
	})
}
