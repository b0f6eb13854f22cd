package withdraw

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

const upstreamService = "withdraw"

// Service executes withdrawal operations through the call facade.
type Service struct {
	client Client
	facade *upstream.Facade
	ttl    *config.TTLPolicy
}

// NewService creates the withdrawal service.
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

// FindAll lists withdrawals with pagination and search.
func (s *Service) FindAll(ctx context.Context, params ListParams) (WithdrawsPage, error) {
	op := upstream.Operation{
		Name:       "withdraw.FindAll",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_all", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*WithdrawsPage, error) { return s.client.FindAll(ctx, params) },
		func(raw *WithdrawsPage) (WithdrawsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindActive lists non-trashed withdrawals.
func (s *Service) FindActive(ctx context.Context, params ListParams) (WithdrawsPage, error) {
	op := upstream.Operation{
		Name:       "withdraw.FindActive",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_active", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*WithdrawsPage, error) { return s.client.FindActive(ctx, params) },
		func(raw *WithdrawsPage) (WithdrawsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindTrashed lists soft-deleted withdrawals.
func (s *Service) FindTrashed(ctx context.Context, params ListParams) (WithdrawsPage, error) {
	op := upstream.Operation{
		Name:       "withdraw.FindTrashed",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_trashed", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*WithdrawsPage, error) { return s.client.FindTrashed(ctx, params) },
		func(raw *WithdrawsPage) (WithdrawsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByID fetches one withdrawal by id.
func (s *Service) FindByID(ctx context.Context, id int) (Withdraw, error) {
	op := upstream.Operation{
		Name:     "withdraw.FindByID",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Detail("find_by_id", id),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.Int("withdraw.id", id),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*Withdraw, error) { return s.client.FindByID(ctx, id) },
		func(raw *Withdraw) (Withdraw, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByCardNumber lists the withdrawals for a card. The card number is
// masked before it becomes a cache key or span attribute.
func (s *Service) FindByCardNumber(ctx context.Context, cardNumber string) ([]Withdraw, error) {
	masked := cache.MaskCardNumber(cardNumber)
	op := upstream.Operation{
		Name:     "withdraw.FindByCardNumber",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Op("find_by_card", "card_number", masked),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.String("card.number", masked),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*[]Withdraw, error) { return s.client.FindByCardNumber(ctx, cardNumber) },
		func(raw *[]Withdraw) ([]Withdraw, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// YearlyAmounts fetches yearly withdrawal amounts.
func (s *Service) YearlyAmounts(ctx context.Context, year int) ([]YearlyAmount, error) {
	op := upstream.Operation{
		Name:     "withdraw.YearlyAmounts",
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

// Create records a withdrawal and purges the list/aggregate views.
func (s *Service) Create(ctx context.Context, req CreateWithdrawRequest) (Withdraw, error) {
	op := upstream.Operation{
		Name:    "withdraw.Create",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPost,
		Attributes: []attribute.KeyValue{
			attribute.String("card.number", cache.MaskCardNumber(req.CardNumber)),
		},
		Invalidate: createTarget(),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Withdraw, error) { return s.client.Create(ctx, req) },
		func(raw *Withdraw) (Withdraw, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Update updates a withdrawal and purges its detail and list views.
func (s *Service) Update(ctx context.Context, req UpdateWithdrawRequest) (Withdraw, error) {
	op := upstream.Operation{
		Name:    "withdraw.Update",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("withdraw.id", req.ID),
		},
		Invalidate: idTarget(req.ID),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Withdraw, error) { return s.client.Update(ctx, req) },
		func(raw *Withdraw) (Withdraw, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Trash soft-deletes a withdrawal.
func (s *Service) Trash(ctx context.Context, id int) (Withdraw, error) {
	op := upstream.Operation{
		Name:    "withdraw.Trash",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("withdraw.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Withdraw, error) { return s.client.Trash(ctx, id) },
		func(raw *Withdraw) (Withdraw, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Restore restores a soft-deleted withdrawal.
func (s *Service) Restore(ctx context.Context, id int) (Withdraw, error) {
	op := upstream.Operation{
		Name:    "withdraw.Restore",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("withdraw.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Withdraw, error) { return s.client.Restore(ctx, id) },
		func(raw *Withdraw) (Withdraw, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// DeletePermanent removes a trashed withdrawal for good.
func (s *Service) DeletePermanent(ctx context.Context, id int) (bool, error) {
	op := upstream.Operation{
		Name:    "withdraw.DeletePermanent",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("withdraw.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*bool, error) { return s.client.DeletePermanent(ctx, id) },
		func(raw *bool) (bool, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// RestoreAll restores every trashed withdrawal.
func (s *Service) RestoreAll(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "withdraw.RestoreAll",
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

// DeleteAllPermanent removes every trashed withdrawal for good.
func (s *Service) DeleteAllPermanent(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "withdraw.DeleteAllPermanent",
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
