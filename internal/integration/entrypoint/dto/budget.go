package dto

import (
	"github.com/spendsync/backend/internal/application/usecase/budget"
	"github.com/spendsync/backend/internal/domain/entity"
)

// SetBudgetRequest represents the request body for setting the default budget.
type SetBudgetRequest struct {
	Amount   *float64 `json:"amount" binding:"required"`
	UserID   *string  `json:"user_id,omitempty"`
	Username *string  `json:"username,omitempty"`
}

// SetMonthlyBudgetRequest represents the request body for a monthly override.
type SetMonthlyBudgetRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
	UserID *string  `json:"user_id,omitempty"`
}

// BudgetResponse acknowledges a budget change.
type BudgetResponse struct {
	UserID string  `json:"user_id"`
	Month  string  `json:"month,omitempty"`
	Amount float64 `json:"amount"`
}

// SummaryResponse represents a monthly budget summary.
type SummaryResponse struct {
	UserID           string  `json:"user_id,omitempty"`
	Month            string  `json:"month"`
	Budget           float64 `json:"budget"`
	Spent            float64 `json:"spent"`
	Remaining        float64 `json:"remaining"`
	Percentage       float64 `json:"percentage"`
	Count            int     `json:"count"`
	DisplayCurrency  string  `json:"display_currency,omitempty"`
	BudgetDisplay    string  `json:"budget_display,omitempty"`
	SpentDisplay     string  `json:"spent_display,omitempty"`
	RemainingDisplay string  `json:"remaining_display,omitempty"`
}

// SavingsResponse represents accumulated savings.
type SavingsResponse struct {
	UserID             string  `json:"user_id"`
	CurrentMonth       string  `json:"current_month"`
	AccumulatedSavings float64 `json:"accumulated_savings"`
	RemainingThisMonth float64 `json:"remaining_this_month"`
}

// HistoryResponse lists monthly summaries, newest first.
type HistoryResponse struct {
	UserID string            `json:"user_id"`
	Months []SummaryResponse `json:"months"`
}

// MemberResponse is one person in the group summary.
type MemberResponse struct {
	UserID   string  `json:"user_id,omitempty"`
	Username string  `json:"username"`
	Budget   float64 `json:"budget"`
	Spent    float64 `json:"spent"`
}

// GroupSummaryResponse represents the group budget for a month.
type GroupSummaryResponse struct {
	Summary SummaryResponse  `json:"summary"`
	Members []MemberResponse `json:"members"`
}

// MonthlyBudgetResponse represents a monthly override.
type MonthlyBudgetResponse struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// MonthlyBudgetListResponse lists a user's overrides.
type MonthlyBudgetListResponse struct {
	UserID    string                  `json:"user_id"`
	Overrides []MonthlyBudgetResponse `json:"overrides"`
}

// ToSummaryResponse converts a ledger Summary to a SummaryResponse DTO.
func ToSummaryResponse(userID string, s budget.Summary) SummaryResponse {
	return SummaryResponse{
		UserID:     userID,
		Month:      s.Month.String(),
		Budget:     s.Budget,
		Spent:      s.Spent,
		Remaining:  s.Remaining,
		Percentage: s.Percentage,
		Count:      s.Count,
	}
}

// ToHistoryResponse converts monthly summaries to a HistoryResponse DTO.
func ToHistoryResponse(userID string, months []budget.Summary) HistoryResponse {
	out := make([]SummaryResponse, len(months))
	for i, m := range months {
		out[i] = ToSummaryResponse("", m)
	}
	return HistoryResponse{UserID: userID, Months: out}
}

// ToGroupSummaryResponse converts the group summary to a DTO.
func ToGroupSummaryResponse(s budget.Summary, members []budget.Member) GroupSummaryResponse {
	out := make([]MemberResponse, len(members))
	for i, m := range members {
		out[i] = MemberResponse{
			UserID:   m.UserID,
			Username: m.Username,
			Budget:   m.Budget,
			Spent:    m.Spent,
		}
	}
	return GroupSummaryResponse{
		Summary: ToSummaryResponse("", s),
		Members: out,
	}
}

// ToMonthlyBudgetListResponse converts overrides to a DTO.
func ToMonthlyBudgetListResponse(userID string, overrides []*entity.MonthlyBudget) MonthlyBudgetListResponse {
	out := make([]MonthlyBudgetResponse, len(overrides))
	for i, o := range overrides {
		out[i] = MonthlyBudgetResponse{Month: o.Month.String(), Amount: o.Amount}
	}
	return MonthlyBudgetListResponse{UserID: userID, Overrides: out}
}
