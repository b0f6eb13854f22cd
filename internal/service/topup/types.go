// Package topup fronts the top-up upstream service.
package topup

// Topup is the top-up entity as returned to gateway clients.
type Topup struct {
	ID          int     `json:"id"`
	CardNumber  string  `json:"card_number"`
	TopupNo     string  `json:"topup_no"`
	TopupAmount int64   `json:"topup_amount"`
	TopupMethod string  `json:"topup_method"`
	TopupTime   string  `json:"topup_time"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	DeletedAt   *string `json:"deleted_at,omitempty"`
}

// PageMeta carries pagination totals on list responses.
type PageMeta struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// TopupsPage is one page of top-ups.
type TopupsPage struct {
	Topups []Topup  `json:"topups"`
	Meta   PageMeta `json:"meta"`
}

// MonthlyAmount is one month's top-up amount bucket.
type MonthlyAmount struct {
	Month       string `json:"month"`
	TotalAmount int64  `json:"total_amount"`
}

// YearlyAmount is one year's top-up amount bucket.
type YearlyAmount struct {
	Year        string `json:"year"`
	TotalAmount int64  `json:"total_amount"`
}

// ListParams selects a page of top-ups.
type ListParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

// CreateTopupRequest tops up a card.
type CreateTopupRequest struct {
	CardNumber  string `json:"card_number"`
	TopupAmount int64  `json:"topup_amount"`
	TopupMethod string `json:"topup_method"`
}

// UpdateTopupRequest updates an existing top-up.
type UpdateTopupRequest struct {
	ID          int    `json:"id"`
	CardNumber  string `json:"card_number"`
	TopupAmount int64  `json:"topup_amount"`
	TopupMethod string `json:"topup_method"`
}
