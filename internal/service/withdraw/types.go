// Package withdraw fronts the withdrawal upstream service.
package withdraw

// Withdraw is the withdrawal entity as returned to gateway clients.
type Withdraw struct {
	ID             int     `json:"id"`
	CardNumber     string  `json:"card_number"`
	WithdrawNo     string  `json:"withdraw_no"`
	WithdrawAmount int64   `json:"withdraw_amount"`
	WithdrawTime   string  `json:"withdraw_time"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	DeletedAt      *string `json:"deleted_at,omitempty"`
}

// PageMeta carries pagination totals on list responses.
type PageMeta struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// WithdrawsPage is one page of withdrawals.
type WithdrawsPage struct {
	Withdraws []Withdraw `json:"withdraws"`
	Meta      PageMeta   `json:"meta"`
}

// YearlyAmount is one year's withdrawal amount bucket.
type YearlyAmount struct {
	Year        string `json:"year"`
	TotalAmount int64  `json:"total_amount"`
}

// ListParams selects a page of withdrawals.
type ListParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

// CreateWithdrawRequest withdraws balance from a card.
type CreateWithdrawRequest struct {
	CardNumber     string `json:"card_number"`
	WithdrawAmount int64  `json:"withdraw_amount"`
	WithdrawTime   string `json:"withdraw_time"`
}

// UpdateWithdrawRequest updates an existing withdrawal.
type UpdateWithdrawRequest struct {
	ID             int    `json:"id"`
	CardNumber     string `json:"card_number"`
	WithdrawAmount int64  `json:"withdraw_amount"`
	WithdrawTime   string `json:"withdraw_time"`
}
