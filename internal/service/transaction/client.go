package transaction

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

// Client is the transaction upstream boundary.
type Client interface {
	FindAll(ctx context.Context, params ListParams) (*TransactionsPage, error)
	FindActive(ctx context.Context, params ListParams) (*TransactionsPage, error)
	FindTrashed(ctx context.Context, params ListParams) (*TransactionsPage, error)
	FindByID(ctx context.Context, id int) (*Transaction, error)
	FindByMerchantID(ctx context.Context, merchantID int) (*[]Transaction, error)
	MonthlyAmounts(ctx context.Context, year int) (*[]MonthlyAmount, error)
	YearlyAmounts(ctx context.Context, year int) (*[]YearlyAmount, error)

	Create(ctx context.Context, req CreateTransactionRequest) (*Transaction, error)
	Update(ctx context.Context, req UpdateTransactionRequest) (*Transaction, error)
	Trash(ctx context.Context, id int) (*Transaction, error)
	Restore(ctx context.Context, id int) (*Transaction, error)
	DeletePermanent(ctx context.Context, id int) (*bool, error)
	RestoreAll(ctx context.Context) (*bool, error)
	DeleteAllPermanent(ctx context.Context) (*bool, error)
}

const serviceName = "/transaction.TransactionService/"

type idRequest struct {
	ID int `json:"id"`
}

type yearRequest struct {
	Year int `json:"year"`
}

type merchantIDRequest struct {
	MerchantID int `json:"merchant_id"`
}

type emptyRequest struct{}

type grpcClient struct {
	conn *grpc.ClientConn
}

// NewClient creates a transaction client over the given upstream connection.
func NewClient(conn *grpc.ClientConn) Client {
	return &grpcClient{conn: conn}
}

func (c *grpcClient) FindAll(ctx context.Context, params ListParams) (*TransactionsPage, error) {
	return upstream.Call[TransactionsPage](ctx, c.conn, serviceName+"FindAll", params)
}

func (c *grpcClient) FindActive(ctx context.Context, params ListParams) (*TransactionsPage, error) {
	return upstream.Call[TransactionsPage](ctx, c.conn, serviceName+"FindActive", params)
}

func (c *grpcClient) FindTrashed(ctx context.Context, params ListParams) (*TransactionsPage, error) {
	return upstream.Call[TransactionsPage](ctx, c.conn, serviceName+"FindTrashed", params)
}

func (c *grpcClient) FindByID(ctx context.Context, id int) (*Transaction, error) {
	return upstream.Call[Transaction](ctx, c.conn, serviceName+"FindById", idRequest{ID: id})
}

func (c *grpcClient) FindByMerchantID(ctx context.Context, merchantID int) (*[]Transaction, error) {
	return upstream.Call[[]Transaction](ctx, c.conn, serviceName+"FindByMerchantId",
		merchantIDRequest{MerchantID: merchantID})
}

func (c *grpcClient) MonthlyAmounts(ctx context.Context, year int) (*[]MonthlyAmount, error) {
	return upstream.Call[[]MonthlyAmount](ctx, c.conn, serviceName+"FindMonthlyTransactionAmounts",
		yearRequest{Year: year})
}

func (c *grpcClient) YearlyAmounts(ctx context.Context, year int) (*[]YearlyAmount, error) {
	return upstream.Call[[]YearlyAmount](ctx, c.conn, serviceName+"FindYearlyTransactionAmounts",
		yearRequest{Year: year})
}

func (c *grpcClient) Create(ctx context.Context, req CreateTransactionRequest) (*Transaction, error) {
	return upstream.Call[Transaction](ctx, c.conn, serviceName+"CreateTransaction", req)
}

func (c *grpcClient) Update(ctx context.Context, req UpdateTransactionRequest) (*Transaction, error) {
	return upstream.Call[Transaction](ctx, c.conn, serviceName+"UpdateTransaction", req)
}

func (c *grpcClient) Trash(ctx context.Context, id int) (*Transaction, error) {
	return upstream.Call[Transaction](ctx, c.conn, serviceName+"TrashedTransaction", idRequest{ID: id})
}

func (c *grpcClient) Restore(ctx context.Context, id int) (*Transaction, error) {
	return upstream.Call[Transaction](ctx, c.conn, serviceName+"RestoreTransaction", idRequest{ID: id})
}

func (c *grpcClient) DeletePermanent(ctx context.Context, id int) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteTransactionPermanent", idRequest{ID: id})
}

func (c *grpcClient) RestoreAll(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"RestoreAllTransaction", emptyRequest{})
}

func (c *grpcClient) DeleteAllPermanent(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteAllTransactionPermanent", emptyRequest{})
}
