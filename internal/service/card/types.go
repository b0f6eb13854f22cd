// Package card fronts the card upstream service: lookups by id, user and
// masked card number, balance aggregates, and the full soft-delete
// mutation set, all executed through the call facade.
package card

// Card is the card entity as returned to gateway clients.
type Card struct {
	ID           int     `json:"id"`
	UserID       int     `json:"user_id"`
	CardNumber   string  `json:"card_number"`
	CardType     string  `json:"card_type"`
	ExpireDate   string  `json:"expire_date"`
	CVV          string  `json:"cvv"`
	CardProvider string  `json:"card_provider"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	DeletedAt    *string `json:"deleted_at,omitempty"`
}

// PageMeta carries pagination totals on list responses.
type PageMeta struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// CardsPage is one page of cards.
type CardsPage struct {
	Cards []Card   `json:"cards"`
	Meta  PageMeta `json:"meta"`
}

// DashboardTotals aggregates balances and flows across all cards.
type DashboardTotals struct {
	TotalBalance  int64 `json:"total_balance"`
	TotalTopup    int64 `json:"total_topup"`
	TotalWithdraw int64 `json:"total_withdraw"`
	TotalTransfer int64 `json:"total_transfer"`
}

// MonthlyBalance is one month's balance bucket.
type MonthlyBalance struct {
	Month   string `json:"month"`
	Balance int64  `json:"balance"`
}

// YearlyBalance is one year's balance bucket.
type YearlyBalance struct {
	Year    string `json:"year"`
	Balance int64  `json:"balance"`
}

// ListParams selects a page of cards.
type ListParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

// CreateCardRequest creates a card for a user.
type CreateCardRequest struct {
	UserID       int    `json:"user_id"`
	CardType     string `json:"card_type"`
	ExpireDate   string `json:"expire_date"`
	CVV          string `json:"cvv"`
	CardProvider string `json:"card_provider"`
}

// UpdateCardRequest updates an existing card.
type UpdateCardRequest struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	CardType     string `json:"card_type"`
	ExpireDate   string `json:"expire_date"`
	CVV          string `json:"cvv"`
	CardProvider string `json:"card_provider"`
}
