package topup

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

const upstreamService = "topup"

// Service executes top-up operations through the call facade.
type Service struct {
	client Client
	facade *upstream.Facade
	ttl    *config.TTLPolicy
}

// NewService creates the top-up service.
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

// FindAll lists top-ups with pagination and search.
func (s *Service) FindAll(ctx context.Context, params ListParams) (TopupsPage, error) {
	op := upstream.Operation{
		Name:       "topup.FindAll",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_all", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*TopupsPage, error) { return s.client.FindAll(ctx, params) },
		func(raw *TopupsPage) (TopupsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindActive lists non-trashed top-ups.
func (s *Service) FindActive(ctx context.Context, params ListParams) (TopupsPage, error) {
	op := upstream.Operation{
		Name:       "topup.FindActive",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_active", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*TopupsPage, error) { return s.client.FindActive(ctx, params) },
		func(raw *TopupsPage) (TopupsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindTrashed lists soft-deleted top-ups.
func (s *Service) FindTrashed(ctx context.Context, params ListParams) (TopupsPage, error) {
	op := upstream.Operation{
		Name:       "topup.FindTrashed",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_trashed", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*TopupsPage, error) { return s.client.FindTrashed(ctx, params) },
		func(raw *TopupsPage) (TopupsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByID fetches one top-up by id.
func (s *Service) FindByID(ctx context.Context, id int) (Topup, error) {
	op := upstream.Operation{
		Name:     "topup.FindByID",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Detail("find_by_id", id),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.Int("topup.id", id),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*Topup, error) { return s.client.FindByID(ctx, id) },
		func(raw *Topup) (Topup, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByCardNumber lists the top-ups for a card. The card number is
// masked before it becomes a cache key or span attribute.
func (s *Service) FindByCardNumber(ctx context.Context, cardNumber string) ([]Topup, error) {
	masked := cache.MaskCardNumber(cardNumber)
	op := upstream.Operation{
		Name:     "topup.FindByCardNumber",
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
		func(ctx context.Context) (*[]Topup, error) { return s.client.FindByCardNumber(ctx, cardNumber) },
		func(raw *[]Topup) ([]Topup, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// MonthlyAmounts fetches per-month top-up amounts for a year.
func (s *Service) MonthlyAmounts(ctx context.Context, year int) ([]MonthlyAmount, error) {
	op := upstream.Operation{
		Name:     "topup.MonthlyAmounts",
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

// YearlyAmounts fetches yearly top-up amounts.
func (s *Service) YearlyAmounts(ctx context.Context, year int) ([]YearlyAmount, error) {
	op := upstream.Operation{
		Name:     "topup.YearlyAmounts",
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

// Create records a top-up and purges the list/aggregate views.
func (s *Service) Create(ctx context.Context, req CreateTopupRequest) (Topup, error) {
	op := upstream.Operation{
		Name:    "topup.Create",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPost,
		Attributes: []attribute.KeyValue{
			attribute.String("card.number", cache.MaskCardNumber(req.CardNumber)),
		},
		Invalidate: createTarget(),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Topup, error) { return s.client.Create(ctx, req) },
		func(raw *Topup) (Topup, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Update updates a top-up and purges its detail and list views.
func (s *Service) Update(ctx context.Context, req UpdateTopupRequest) (Topup, error) {
	op := upstream.Operation{
		Name:    "topup.Update",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("topup.id", req.ID),
		},
		Invalidate: idTarget(req.ID),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Topup, error) { return s.client.Update(ctx, req) },
		func(raw *Topup) (Topup, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Trash soft-deletes a top-up.
func (s *Service) Trash(ctx context.Context, id int) (Topup, error) {
	op := upstream.Operation{
		Name:    "topup.Trash",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("topup.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Topup, error) { return s.client.Trash(ctx, id) },
		func(raw *Topup) (Topup, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Restore restores a soft-deleted top-up.
func (s *Service) Restore(ctx context.Context, id int) (Topup, error) {
	op := upstream.Operation{
		Name:    "topup.Restore",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("topup.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Topup, error) { return s.client.Restore(ctx, id) },
		func(raw *Topup) (Topup, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// DeletePermanent removes a trashed top-up for good.
func (s *Service) DeletePermanent(ctx context.Context, id int) (bool, error) {
	op := upstream.Operation{
		Name:    "topup.DeletePermanent",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("topup.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*bool, error) { return s.client.DeletePermanent(ctx, id) },
		func(raw *bool) (bool, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// RestoreAll restores every trashed top-up.
func (s *Service) RestoreAll(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "topup.RestoreAll",
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

// DeleteAllPermanent removes every trashed top-up for good.
func (s *Service) DeleteAllPermanent(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "topup.DeleteAllPermanent",
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
