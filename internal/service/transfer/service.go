package transfer

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

const upstreamService = "transfer"

// Service executes transfer operations through the call facade.
type Service struct {
	client Client
	facade *upstream.Facade
	ttl    *config.TTLPolicy
}

// NewService creates the transfer service.
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

// FindAll lists transfers with pagination and search.
func (s *Service) FindAll(ctx context.Context, params ListParams) (TransfersPage, error) {
	op := upstream.Operation{
		Name:       "transfer.FindAll",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_all", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*TransfersPage, error) { return s.client.FindAll(ctx, params) },
		func(raw *TransfersPage) (TransfersPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindActive lists non-trashed transfers.
func (s *Service) FindActive(ctx context.Context, params ListParams) (TransfersPage, error) {
	op := upstream.Operation{
		Name:       "transfer.FindActive",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_active", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*TransfersPage, error) { return s.client.FindActive(ctx, params) },
		func(raw *TransfersPage) (TransfersPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindTrashed lists soft-deleted transfers.
func (s *Service) FindTrashed(ctx context.Context, params ListParams) (TransfersPage, error) {
	op := upstream.Operation{
		Name:       "transfer.FindTrashed",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_trashed", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*TransfersPage, error) { return s.client.FindTrashed(ctx, params) },
		func(raw *TransfersPage) (TransfersPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByID fetches one transfer by id.
func (s *Service) FindByID(ctx context.Context, id int) (Transfer, error) {
	op := upstream.Operation{
		Name:     "transfer.FindByID",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Detail("find_by_id", id),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.Int("transfer.id", id),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*Transfer, error) { return s.client.FindByID(ctx, id) },
		func(raw *Transfer) (Transfer, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByTransferFrom lists transfers sent from a card. The card number is
// masked before it becomes a cache key or span attribute.
func (s *Service) FindByTransferFrom(ctx context.Context, cardNumber string) ([]Transfer, error) {
	masked := cache.MaskCardNumber(cardNumber)
	op := upstream.Operation{
		Name:     "transfer.FindByTransferFrom",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Op("find_by_from", "card_number", masked),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.String("card.number", masked),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*[]Transfer, error) { return s.client.FindByTransferFrom(ctx, cardNumber) },
		func(raw *[]Transfer) ([]Transfer, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByTransferTo lists transfers received by a card.
func (s *Service) FindByTransferTo(ctx context.Context, cardNumber string) ([]Transfer, error) {
	masked := cache.MaskCardNumber(cardNumber)
	op := upstream.Operation{
		Name:     "transfer.FindByTransferTo",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Op("find_by_to", "card_number", masked),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.String("card.number", masked),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*[]Transfer, error) { return s.client.FindByTransferTo(ctx, cardNumber) },
		func(raw *[]Transfer) ([]Transfer, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// YearlyAmounts fetches yearly transfer amounts.
func (s *Service) YearlyAmounts(ctx context.Context, year int) ([]YearlyAmount, error) {
	op := upstream.Operation{
		Name:     "transfer.YearlyAmounts",
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

// Create moves balance between two cards and purges the list/aggregate views.
func (s *Service) Create(ctx context.Context, req CreateTransferRequest) (Transfer, error) {
	op := upstream.Operation{
		Name:    "transfer.Create",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPost,
		Attributes: []attribute.KeyValue{
			attribute.String("transfer.from", cache.MaskCardNumber(req.TransferFrom)),
			attribute.String("transfer.to", cache.MaskCardNumber(req.TransferTo)),
		},
		Invalidate: createTarget(),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Transfer, error) { return s.client.Create(ctx, req) },
		func(raw *Transfer) (Transfer, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Update updates a transfer and purges its detail and list views.
func (s *Service) Update(ctx context.Context, req UpdateTransferRequest) (Transfer, error) {
	op := upstream.Operation{
		Name:    "transfer.Update",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("transfer.id", req.ID),
		},
		Invalidate: idTarget(req.ID),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Transfer, error) { return s.client.Update(ctx, req) },
		func(raw *Transfer) (Transfer, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Trash soft-deletes a transfer.
func (s *Service) Trash(ctx context.Context, id int) (Transfer, error) {
	op := upstream.Operation{
		Name:    "transfer.Trash",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("transfer.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Transfer, error) { return s.client.Trash(ctx, id) },
		func(raw *Transfer) (Transfer, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Restore restores a soft-deleted transfer.
func (s *Service) Restore(ctx context.Context, id int) (Transfer, error) {
	op := upstream.Operation{
		Name:    "transfer.Restore",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("transfer.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Transfer, error) { return s.client.Restore(ctx, id) },
		func(raw *Transfer) (Transfer, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// DeletePermanent removes a trashed transfer for good.
func (s *Service) DeletePermanent(ctx context.Context, id int) (bool, error) {
	op := upstream.Operation{
		Name:    "transfer.DeletePermanent",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("transfer.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*bool, error) { return s.client.DeletePermanent(ctx, id) },
		func(raw *bool) (bool, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// RestoreAll restores every trashed transfer.
func (s *Service) RestoreAll(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "transfer.RestoreAll",
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

// DeleteAllPermanent removes every trashed transfer for good.
func (s *Service) DeleteAllPermanent(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "transfer.DeleteAllPermanent",
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
