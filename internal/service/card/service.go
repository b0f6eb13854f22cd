package card

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

const upstreamService = "card"

// Service executes card operations through the call facade.
type Service struct {
	client Client
	facade *upstream.Facade
	ttl    *config.TTLPolicy
}

// NewService creates the card service.
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

// FindAll lists cards with pagination and search.
func (s *Service) FindAll(ctx context.Context, params ListParams) (CardsPage, error) {
	op := upstream.Operation{
		Name:       "card.FindAll",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_all", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*CardsPage, error) { return s.client.FindAll(ctx, params) },
		func(raw *CardsPage) (CardsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindActive lists non-trashed cards.
func (s *Service) FindActive(ctx context.Context, params ListParams) (CardsPage, error) {
	op := upstream.Operation{
		Name:       "card.FindActive",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_active", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*CardsPage, error) { return s.client.FindActive(ctx, params) },
		func(raw *CardsPage) (CardsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindTrashed lists soft-deleted cards.
func (s *Service) FindTrashed(ctx context.Context, params ListParams) (CardsPage, error) {
	op := upstream.Operation{
		Name:       "card.FindTrashed",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_trashed", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*CardsPage, error) { return s.client.FindTrashed(ctx, params) },
		func(raw *CardsPage) (CardsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByID fetches one card by id.
func (s *Service) FindByID(ctx context.Context, id int) (Card, error) {
	op := upstream.Operation{
		Name:     "card.FindByID",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Detail("find_by_id", id),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.Int("card.id", id),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*Card, error) { return s.client.FindByID(ctx, id) },
		func(raw *Card) (Card, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByUserID fetches the card owned by a user.
func (s *Service) FindByUserID(ctx context.Context, userID int) (Card, error) {
	op := upstream.Operation{
		Name:     "card.FindByUserID",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Op("find_by_user", "user_id", strconv.Itoa(userID)),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.Int("user.id", userID),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*Card, error) { return s.client.FindByUserID(ctx, userID) },
		func(raw *Card) (Card, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByCardNumber fetches a card by its number. The number is masked
// before it becomes a cache key or span attribute.
func (s *Service) FindByCardNumber(ctx context.Context, cardNumber string) (Card, error) {
	masked := cache.MaskCardNumber(cardNumber)
	op := upstream.Operation{
		Name:     "card.FindByCardNumber",
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
		func(ctx context.Context) (*Card, error) { return s.client.FindByCardNumber(ctx, cardNumber) },
		func(raw *Card) (Card, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// DashboardTotals fetches the global card dashboard aggregates.
func (s *Service) DashboardTotals(ctx context.Context) (DashboardTotals, error) {
	op := upstream.Operation{
		Name:     "card.DashboardTotals",
		Service:  upstreamService,
		Class:    upstream.ClassMonthly,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Op("dashboard", "totals"),
		TTL:      s.ttl.Monthly(),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*DashboardTotals, error) { return s.client.DashboardTotals(ctx) },
		func(raw *DashboardTotals) (DashboardTotals, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// MonthlyBalance fetches the per-month balance buckets of a year.
func (s *Service) MonthlyBalance(ctx context.Context, year int) ([]MonthlyBalance, error) {
	op := upstream.Operation{
		Name:     "card.MonthlyBalance",
		Service:  upstreamService,
		Class:    upstream.ClassMonthly,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Yearly("monthly_balance", year),
		TTL:      s.ttl.Monthly(),
		Attributes: []attribute.KeyValue{
			attribute.Int("year", year),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*[]MonthlyBalance, error) { return s.client.MonthlyBalance(ctx, year) },
		func(raw *[]MonthlyBalance) ([]MonthlyBalance, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// YearlyBalance fetches the yearly balance aggregates up to a year.
func (s *Service) YearlyBalance(ctx context.Context, year int) ([]YearlyBalance, error) {
	op := upstream.Operation{
		Name:     "card.YearlyBalance",
		Service:  upstreamService,
		Class:    upstream.ClassYearly,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Yearly("yearly_balance", year),
		TTL:      s.ttl.Yearly(),
		Attributes: []attribute.KeyValue{
			attribute.Int("year", year),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*[]YearlyBalance, error) { return s.client.YearlyBalance(ctx, year) },
		func(raw *[]YearlyBalance) ([]YearlyBalance, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Create creates a card and purges the list/aggregate views.
func (s *Service) Create(ctx context.Context, req CreateCardRequest) (Card, error) {
	op := upstream.Operation{
		Name:    "card.Create",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPost,
		Attributes: []attribute.KeyValue{
			attribute.Int("user.id", req.UserID),
		},
		Invalidate: createTarget(),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Card, error) { return s.client.Create(ctx, req) },
		func(raw *Card) (Card, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Update updates a card and purges its detail and list views.
func (s *Service) Update(ctx context.Context, req UpdateCardRequest) (Card, error) {
	op := upstream.Operation{
		Name:    "card.Update",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("card.id", req.ID),
		},
		Invalidate: idTarget(req.ID),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Card, error) { return s.client.Update(ctx, req) },
		func(raw *Card) (Card, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Trash soft-deletes a card. The record moves from the active views to
// the trashed views, so both are in the purge set.
func (s *Service) Trash(ctx context.Context, id int) (Card, error) {
	op := upstream.Operation{
		Name:    "card.Trash",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("card.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Card, error) { return s.client.Trash(ctx, id) },
		func(raw *Card) (Card, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Restore restores a soft-deleted card.
func (s *Service) Restore(ctx context.Context, id int) (Card, error) {
	op := upstream.Operation{
		Name:    "card.Restore",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("card.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Card, error) { return s.client.Restore(ctx, id) },
		func(raw *Card) (Card, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// DeletePermanent removes a trashed card for good.
func (s *Service) DeletePermanent(ctx context.Context, id int) (bool, error) {
	op := upstream.Operation{
		Name:    "card.DeletePermanent",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("card.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*bool, error) { return s.client.DeletePermanent(ctx, id) },
		func(raw *bool) (bool, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// RestoreAll restores every trashed card.
func (s *Service) RestoreAll(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "card.RestoreAll",
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

// DeleteAllPermanent removes every trashed card for good.
func (s *Service) DeleteAllPermanent(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "card.DeleteAllPermanent",
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
