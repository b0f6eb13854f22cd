// Package transaction fronts the transaction upstream service.
package transaction

// Transaction is the payment transaction entity as returned to gateway clients.
type Transaction struct {
	ID              int     `json:"id"`
	CardNumber      string  `json:"card_number"`
	TransactionNo   string  `json:"transaction_no"`
	Amount          int64   `json:"amount"`
	PaymentMethod   string  `json:"payment_method"`
	MerchantID      int     `json:"merchant_id"`
	TransactionTime string  `json:"transaction_time"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
	DeletedAt       *string `json:"deleted_at,omitempty"`
}

// PageMeta carries pagination totals on list responses.
type PageMeta struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// TransactionsPage is one page of transactions.
type TransactionsPage struct {
	Transactions []Transaction `json:"transactions"`
	Meta         PageMeta      `json:"meta"`
}

// MonthlyAmount is one month's transaction amount bucket.
type MonthlyAmount struct {
	Month       string `json:"month"`
	TotalAmount int64  `json:"total_amount"`
}

// YearlyAmount is one year's transaction amount bucket.
type YearlyAmount struct {
	Year        string `json:"year"`
	TotalAmount int64  `json:"total_amount"`
}

// ListParams selects a page of transactions.
type ListParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

// CreateTransactionRequest records a payment at a merchant.
type CreateTransactionRequest struct {
	CardNumber      string `json:"card_number"`
	Amount          int64  `json:"amount"`
	PaymentMethod   string `json:"payment_method"`
	MerchantID      int    `json:"merchant_id"`
	TransactionTime string `json:"transaction_time"`
}

// UpdateTransactionRequest updates an existing transaction.
type UpdateTransactionRequest struct {
	ID              int    `json:"id"`
	CardNumber      string `json:"card_number"`
	Amount          int64  `json:"amount"`
	PaymentMethod   string `json:"payment_method"`
	MerchantID      int    `json:"merchant_id"`
	TransactionTime string `json:"transaction_time"`
}
