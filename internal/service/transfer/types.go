// Package transfer fronts the transfer upstream service.
package transfer

// Transfer is the card-to-card transfer entity as returned to gateway clients.
type Transfer struct {
	ID             int     `json:"id"`
	TransferNo     string  `json:"transfer_no"`
	TransferFrom   string  `json:"transfer_from"`
	TransferTo     string  `json:"transfer_to"`
	TransferAmount int64   `json:"transfer_amount"`
	TransferTime   string  `json:"transfer_time"`
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

// TransfersPage is one page of transfers.
type TransfersPage struct {
	Transfers []Transfer `json:"transfers"`
	Meta      PageMeta   `json:"meta"`
}

// YearlyAmount is one year's transfer amount bucket.
type YearlyAmount struct {
	Year        string `json:"year"`
	TotalAmount int64  `json:"total_amount"`
}

// ListParams selects a page of transfers.
type ListParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

// CreateTransferRequest moves balance between two cards.
type CreateTransferRequest struct {
	TransferFrom   string `json:"transfer_from"`
	TransferTo     string `json:"transfer_to"`
	TransferAmount int64  `json:"transfer_amount"`
}

// UpdateTransferRequest updates an existing transfer.
type UpdateTransferRequest struct {
	ID             int    `json:"id"`
	TransferFrom   string `json:"transfer_from"`
	TransferTo     string `json:"transfer_to"`
	TransferAmount int64  `json:"transfer_amount"`
}
