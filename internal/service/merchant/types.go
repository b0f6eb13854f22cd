// Package merchant fronts the merchant upstream service: lookups by id,
// owning user and masked API key, payment-method aggregates, and the full
// soft-delete mutation set, all executed through the call facade.
package merchant

// Merchant is the merchant entity as returned to gateway clients.
type Merchant struct {
	ID        int     `json:"id"`
	UserID    int     `json:"user_id"`
	Name      string  `json:"name"`
	APIKey    string  `json:"api_key"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	DeletedAt *string `json:"deleted_at,omitempty"`
}

// PageMeta carries pagination totals on list responses.
type PageMeta struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// MerchantsPage is one page of merchants.
type MerchantsPage struct {
	Merchants []Merchant `json:"merchants"`
	Meta      PageMeta   `json:"meta"`
}

// MonthlyPaymentMethod is one month's amount bucket for a payment method.
type MonthlyPaymentMethod struct {
	Month         string `json:"month"`
	PaymentMethod string `json:"payment_method"`
	TotalAmount   int64  `json:"total_amount"`
}

// YearlyPaymentMethod is one year's amount bucket for a payment method.
type YearlyPaymentMethod struct {
	Year          string `json:"year"`
	PaymentMethod string `json:"payment_method"`
	TotalAmount   int64  `json:"total_amount"`
}

// ListParams selects a page of merchants.
type ListParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

// CreateMerchantRequest registers a merchant for a user.
type CreateMerchantRequest struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// UpdateMerchantRequest updates an existing merchant.
type UpdateMerchantRequest struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
