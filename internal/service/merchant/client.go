package merchant

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

// Client is the merchant upstream boundary.
type Client interface {
	FindAll(ctx context.Context, params ListParams) (*MerchantsPage, error)
	FindActive(ctx context.Context, params ListParams) (*MerchantsPage, error)
	FindTrashed(ctx context.Context, params ListParams) (*MerchantsPage, error)
	FindByID(ctx context.Context, id int) (*Merchant, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*Merchant, error)
	FindByUserID(ctx context.Context, userID int) (*[]Merchant, error)
	MonthlyPaymentMethods(ctx context.Context, year int) (*[]MonthlyPaymentMethod, error)
	YearlyPaymentMethods(ctx context.Context, year int) (*[]YearlyPaymentMethod, error)

	Create(ctx context.Context, req CreateMerchantRequest) (*Merchant, error)
	Update(ctx context.Context, req UpdateMerchantRequest) (*Merchant, error)
	Trash(ctx context.Context, id int) (*Merchant, error)
	Restore(ctx context.Context, id int) (*Merchant, error)
	DeletePermanent(ctx context.Context, id int) (*bool, error)
	RestoreAll(ctx context.Context) (*bool, error)
	DeleteAllPermanent(ctx context.Context) (*bool, error)
}

const serviceName = "/merchant.MerchantService/"

type idRequest struct {
	ID int `json:"id"`
}

type yearRequest struct {
	Year int `json:"year"`
}

type apiKeyRequest struct {
	APIKey string `json:"api_key"`
}

type emptyRequest struct{}

type grpcClient struct {
	conn *grpc.ClientConn
}

// NewClient creates a merchant client over the given upstream connection.
func NewClient(conn *grpc.ClientConn) Client {
	return &grpcClient{conn: conn}
}

func (c *grpcClient) FindAll(ctx context.Context, params ListParams) (*MerchantsPage, error) {
	return upstream.Call[MerchantsPage](ctx, c.conn, serviceName+"FindAll", params)
}

func (c *grpcClient) FindActive(ctx context.Context, params ListParams) (*MerchantsPage, error) {
	return upstream.Call[MerchantsPage](ctx, c.conn, serviceName+"FindActive", params)
}

func (c *grpcClient) FindTrashed(ctx context.Context, params ListParams) (*MerchantsPage, error) {
	return upstream.Call[MerchantsPage](ctx, c.conn, serviceName+"FindTrashed", params)
}

func (c *grpcClient) FindByID(ctx context.Context, id int) (*Merchant, error) {
	return upstream.Call[Merchant](ctx, c.conn, serviceName+"FindById", idRequest{ID: id})
}

func (c *grpcClient) FindByAPIKey(ctx context.Context, apiKey string) (*Merchant, error) {
	return upstream.Call[Merchant](ctx, c.conn, serviceName+"FindByApiKey", apiKeyRequest{APIKey: apiKey})
}

func (c *grpcClient) FindByUserID(ctx context.Context, userID int) (*[]Merchant, error) {
	return upstream.Call[[]Merchant](ctx, c.conn, serviceName+"FindByMerchantUserId", idRequest{ID: userID})
}

func (c *grpcClient) MonthlyPaymentMethods(ctx context.Context, year int) (*[]MonthlyPaymentMethod, error) {
	return upstream.Call[[]MonthlyPaymentMethod](ctx, c.conn, serviceName+"FindMonthlyPaymentMethodsMerchant",
		yearRequest{Year: year})
}

func (c *grpcClient) YearlyPaymentMethods(ctx context.Context, year int) (*[]YearlyPaymentMethod, error) {
	return upstream.Call[[]YearlyPaymentMethod](ctx, c.conn, serviceName+"FindYearlyPaymentMethodMerchant",
		yearRequest{Year: year})
}

func (c *grpcClient) Create(ctx context.Context, req CreateMerchantRequest) (*Merchant, error) {
	return upstream.Call[Merchant](ctx, c.conn, serviceName+"CreateMerchant", req)
}

func (c *grpcClient) Update(ctx context.Context, req UpdateMerchantRequest) (*Merchant, error) {
	return upstream.Call[Merchant](ctx, c.conn, serviceName+"UpdateMerchant", req)
}

func (c *grpcClient) Trash(ctx context.Context, id int) (*Merchant, error) {
	return upstream.Call[Merchant](ctx, c.conn, serviceName+"TrashedMerchant", idRequest{ID: id})
}

func (c *grpcClient) Restore(ctx context.Context, id int) (*Merchant, error) {
	return upstream.Call[Merchant](ctx, c.conn, serviceName+"RestoreMerchant", idRequest{ID: id})
}

func (c *grpcClient) DeletePermanent(ctx context.Context, id int) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteMerchantPermanent", idRequest{ID: id})
}

func (c *grpcClient) RestoreAll(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"RestoreAllMerchant", emptyRequest{})
}

func (c *grpcClient) DeleteAllPermanent(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteAllMerchantPermanent", emptyRequest{})
}
