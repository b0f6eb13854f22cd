package merchant

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

const upstreamService = "merchant"

// Service executes merchant operations through the call facade.
type Service struct {
	client Client
	facade *upstream.Facade
	ttl    *config.TTLPolicy
}

// NewService creates the merchant service.
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

// FindAll lists merchants with pagination and search.
func (s *Service) FindAll(ctx context.Context, params ListParams) (MerchantsPage, error) {
	op := upstream.Operation{
		Name:       "merchant.FindAll",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_all", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*MerchantsPage, error) { return s.client.FindAll(ctx, params) },
		func(raw *MerchantsPage) (MerchantsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindActive lists non-trashed merchants.
func (s *Service) FindActive(ctx context.Context, params ListParams) (MerchantsPage, error) {
	op := upstream.Operation{
		Name:       "merchant.FindActive",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_active", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*MerchantsPage, error) { return s.client.FindActive(ctx, params) },
		func(raw *MerchantsPage) (MerchantsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindTrashed lists soft-deleted merchants.
func (s *Service) FindTrashed(ctx context.Context, params ListParams) (MerchantsPage, error) {
	op := upstream.Operation{
		Name:       "merchant.FindTrashed",
		Service:    upstreamService,
		Class:      upstream.ClassList,
		Verb:       upstream.VerbGet,
		CacheKey:   keys.List("find_trashed", params.Page, params.PageSize, params.Search),
		TTL:        s.ttl.List(),
		Attributes: listAttrs(params),
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*MerchantsPage, error) { return s.client.FindTrashed(ctx, params) },
		func(raw *MerchantsPage) (MerchantsPage, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByID fetches one merchant by id.
func (s *Service) FindByID(ctx context.Context, id int) (Merchant, error) {
	op := upstream.Operation{
		Name:     "merchant.FindByID",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Detail("find_by_id", id),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.Int("merchant.id", id),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*Merchant, error) { return s.client.FindByID(ctx, id) },
		func(raw *Merchant) (Merchant, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByAPIKey fetches a merchant by its API key. The key is masked
// before it becomes a cache key or span attribute.
func (s *Service) FindByAPIKey(ctx context.Context, apiKey string) (Merchant, error) {
	masked := cache.MaskAPIKey(apiKey)
	op := upstream.Operation{
		Name:     "merchant.FindByAPIKey",
		Service:  upstreamService,
		Class:    upstream.ClassDetail,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Op("find_by_api_key", "api_key", masked),
		TTL:      s.ttl.Detail(),
		Attributes: []attribute.KeyValue{
			attribute.String("merchant.api_key", masked),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*Merchant, error) { return s.client.FindByAPIKey(ctx, apiKey) },
		func(raw *Merchant) (Merchant, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// FindByUserID lists the merchants owned by a user.
func (s *Service) FindByUserID(ctx context.Context, userID int) ([]Merchant, error) {
	op := upstream.Operation{
		Name:     "merchant.FindByUserID",
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
		func(ctx context.Context) (*[]Merchant, error) { return s.client.FindByUserID(ctx, userID) },
		func(raw *[]Merchant) ([]Merchant, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// MonthlyPaymentMethods fetches per-month payment-method amounts.
func (s *Service) MonthlyPaymentMethods(ctx context.Context, year int) ([]MonthlyPaymentMethod, error) {
	op := upstream.Operation{
		Name:     "merchant.MonthlyPaymentMethods",
		Service:  upstreamService,
		Class:    upstream.ClassMonthly,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Yearly("monthly_payment_methods", year),
		TTL:      s.ttl.Monthly(),
		Attributes: []attribute.KeyValue{
			attribute.Int("year", year),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*[]MonthlyPaymentMethod, error) {
			return s.client.MonthlyPaymentMethods(ctx, year)
		},
		func(raw *[]MonthlyPaymentMethod) ([]MonthlyPaymentMethod, error) {
			return upstream.RequireItem(raw, op.Name)
		},
	)
}

// YearlyPaymentMethods fetches yearly payment-method amounts.
func (s *Service) YearlyPaymentMethods(ctx context.Context, year int) ([]YearlyPaymentMethod, error) {
	op := upstream.Operation{
		Name:     "merchant.YearlyPaymentMethods",
		Service:  upstreamService,
		Class:    upstream.ClassYearly,
		Verb:     upstream.VerbGet,
		CacheKey: keys.Yearly("yearly_payment_methods", year),
		TTL:      s.ttl.Yearly(),
		Attributes: []attribute.KeyValue{
			attribute.Int("year", year),
		},
	}
	return upstream.Fetch(ctx, s.facade, op,
		func(ctx context.Context) (*[]YearlyPaymentMethod, error) {
			return s.client.YearlyPaymentMethods(ctx, year)
		},
		func(raw *[]YearlyPaymentMethod) ([]YearlyPaymentMethod, error) {
			return upstream.RequireItem(raw, op.Name)
		},
	)
}

// Create registers a merchant and purges the list/aggregate views.
func (s *Service) Create(ctx context.Context, req CreateMerchantRequest) (Merchant, error) {
	op := upstream.Operation{
		Name:    "merchant.Create",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPost,
		Attributes: []attribute.KeyValue{
			attribute.Int("user.id", req.UserID),
		},
		Invalidate: createTarget(),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Merchant, error) { return s.client.Create(ctx, req) },
		func(raw *Merchant) (Merchant, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Update updates a merchant and purges its detail and list views.
func (s *Service) Update(ctx context.Context, req UpdateMerchantRequest) (Merchant, error) {
	op := upstream.Operation{
		Name:    "merchant.Update",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("merchant.id", req.ID),
		},
		Invalidate: idTarget(req.ID),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Merchant, error) { return s.client.Update(ctx, req) },
		func(raw *Merchant) (Merchant, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Trash soft-deletes a merchant.
func (s *Service) Trash(ctx context.Context, id int) (Merchant, error) {
	op := upstream.Operation{
		Name:    "merchant.Trash",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("merchant.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Merchant, error) { return s.client.Trash(ctx, id) },
		func(raw *Merchant) (Merchant, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// Restore restores a soft-deleted merchant.
func (s *Service) Restore(ctx context.Context, id int) (Merchant, error) {
	op := upstream.Operation{
		Name:    "merchant.Restore",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbPut,
		Attributes: []attribute.KeyValue{
			attribute.Int("merchant.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*Merchant, error) { return s.client.Restore(ctx, id) },
		func(raw *Merchant) (Merchant, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// DeletePermanent removes a trashed merchant for good.
func (s *Service) DeletePermanent(ctx context.Context, id int) (bool, error) {
	op := upstream.Operation{
		Name:    "merchant.DeletePermanent",
		Service: upstreamService,
		Class:   upstream.ClassCommand,
		Verb:    upstream.VerbDelete,
		Attributes: []attribute.KeyValue{
			attribute.Int("merchant.id", id),
		},
		Invalidate: idTarget(id),
	}
	return upstream.Mutate(ctx, s.facade, op,
		func(ctx context.Context) (*bool, error) { return s.client.DeletePermanent(ctx, id) },
		func(raw *bool) (bool, error) { return upstream.RequireItem(raw, op.Name) },
	)
}

// RestoreAll restores every trashed merchant.
func (s *Service) RestoreAll(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "merchant.RestoreAll",
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

// DeleteAllPermanent removes every trashed merchant for good.
func (s *Service) DeleteAllPermanent(ctx context.Context) (bool, error) {
	op := upstream.Operation{
		Name:       "merchant.DeleteAllPermanent",
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
