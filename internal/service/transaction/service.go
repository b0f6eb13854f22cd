package transaction

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

const upstreamService = "transaction"

// Service executes transaction operations through the call facade.
type Service struct {
	client Client
	facade *upstream.Facade
	ttl    *config.TTLPolicy
}

// NewService creates the transaction service.
func NewService(client Client, facade *upstream.Facade, ttl *config.TTLPolicy) *Service {
	return &Service{client: client, facade: facade, ttl: ttl}
}

func listAttrs(params ListParams) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("page", params.Page),
		attribute.Int("page_size", params.PageSize),
		attribute.String("search", params.Search),
	}
}

// FindAll lists transactions with pagination and search.
func (s *Service) FindAll(ctx context.Context, params ListParams) (TransactionsPage, error) {
	op := upstream.Operation{
		Name:       "transaction.FindAll",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_all", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*TransactionsPage, error) { return s.client.FindAll(ctx, params) },
		func(raw *TransactionsPage) (TransactionsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindActive lists non-trashed transactions.
func (s *Service) FindActive(ctx context.Context, params ListParams) (TransactionsPage, error) {
	op := upstream.Operation{
		Name:       "transaction.FindActive",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_active", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*TransactionsPage, error) { return s.client.FindActive(ctx, params) },
		func(raw *TransactionsPage) (TransactionsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindTrashed lists soft-deleted transactions.
func (s *Service) FindTrashed(ctx context.Context, params ListParams) (TransactionsPage, error) {
	op := upstream.Operation{
		Name:       "transaction.FindTrashed",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_trashed", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*TransactionsPage, error) { return s.client.FindTrashed(ctx, params) },
		func(raw *TransactionsPage) (TransactionsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByID fetches one transaction by id.
func (s *Service) FindByID(ctx context.Context, id int) (Transaction, error) {
	op := upstream.Operation{
		Name:     "transaction.FindByID",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Detail("find_by_id", id),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.Int("transaction.id", id),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*Transaction, error) { return s.client.FindByID(ctx, id) },
		func(raw *Transaction) (Transaction, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByMerchantID lists the transactions recorded at a merchant.
func (s *Service) FindByMerchantID(ctx context.Context, merchantID int) ([]Transaction, error) {
	op := upstream.Operation{
		Name:     "transaction.FindByMerchantID",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Op("find_by_merchant", "merchant_id", strconv.Itoa(merchantID)),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.Int("merchant.id", merchantID),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*[]Transaction, error) { return s.client.FindByMerchantID(ctx, merchantID) },
		func(raw *[]Transaction) ([]Transaction, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// MonthlyAmounts fetches per-month transaction amounts for a year.
func (s *Service) MonthlyAmounts(ctx context.Context, year int) ([]MonthlyAmount, error) {
	op := upstream.Operation{
		Name:     "transaction.MonthlyAmounts",
		Service:  upstreamService,
		Class:    upstream.ClassMonthly,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Yearly("monthly_amounts", year),
		TTL:      s.ttl.Monthly(),
		Attributes: []attribute.KeyValue{
			attribute.Int("year", year),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*[]MonthlyAmount, error) { return s.client.MonthlyAmounts(ctx, year) },
		func(raw *[]MonthlyAmount) ([]MonthlyAmount, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// YearlyAmounts fetches yearly transaction amounts.
func (s *Service) YearlyAmounts(ctx context.Context, year int) ([]YearlyAmount, error) {
	op := upstream.Operation{
		Name:     "transaction.YearlyAmounts",
		Service:  upstreamService,
		Class:    upstream.ClassYearly,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Yearly("yearly_amounts", year),
		TTL:      s.ttl.Yearly(),
		Attributes: []attribute.KeyValue{
			attribute.Int("year", year),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*[]YearlyAmount, error) { return s.client.YearlyAmounts(ctx, year) },
		func(raw *[]YearlyAmount) ([]YearlyAmount, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Create records a transaction and purges the list/aggregate views.
func (s *Service) Create(ctx context.Context, req CreateTransactionRequest) (Transaction, error) {
	op := upstream.Operation{
		Name:    "transaction.Create",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPost,
		Attributes: []attribute.KeyValue{
			attribute.String("card.number", cache.MaskCardNumber(req.CardNumber)),
			attribute.Int("merchant.id", req.MerchantID),
		},
		Invalidate: createTarget(),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Transaction, error) { return s.client.Create(ctx, req) },
		func(raw *Transaction) (Transaction, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Update updates a transaction and purges its detail and list views.
func (s *Service) Update(ctx context.Context, req UpdateTransactionRequest) (Transaction, error) {
	op := upstream.Operation{
		Name:    "transaction.Update",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("transaction.id", req.ID),
		},
		Invalidate: idTarget(req.ID),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Transaction, error) { return s.client.Update(ctx, req) },
		func(raw *Transaction) (Transaction, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Trash soft-deletes a transaction.
func (s *Service) Trash(ctx context.Context, id int) (Transaction, error) {
	op := upstream.Operation{
		Name:    "transaction.Trash",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("transaction.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Transaction, error) { return s.client.Trash(ctx, id) },
		func(raw *Transaction) (Transaction, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Restore restores a soft-deleted transaction.
func (s *Service) Restore(ctx context.Context, id int) (Transaction, error) {
	op := upstream.Operation{
		Name:    "transaction.Restore",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("transaction.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Transaction, error) { return s.client.Restore(ctx, id) },
		func(raw *Transaction) (Transaction, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// DeletePermanent removes a trashed transaction for good.
func (s *Service) DeletePermanent(ctx context.Context, id int) (bool, error) {
	op := upstream.Operation{
		Name:    "transaction.DeletePermanent",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("transaction.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*bool, error) { return s.client.DeletePermanent(ctx, id) },
		func(raw *bool) (bool, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// RestoreAll restores every trashed transaction.
func (s *Service) RestoreAll(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "transaction.RestoreAll",
		Service:    upstreamService,
		Class:      upstream.ClassCommand,
		Verb:       upstream.VerbPut,
		Invalidate: familyTarget(),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*bool, error) { return s.client.RestoreAll(ctx) },
		func(raw *bool) (bool, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// DeleteAllPermanent removes every trashed transaction for good.
func (s *Service) DeleteAllPermanent(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "transaction.DeleteAllPermanent",
		Service:    upstreamService,
		Class:      upstream.ClassCommand,
		Verb:       upstream.VerbDelete,
		Invalidate: familyTarget(),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*bool, error) { return s.client.DeleteAllPermanent(ctx) },
		func(raw *bool) (bool, error) { return upstream.RequireItem(raw, op.Name) },
	)
}
