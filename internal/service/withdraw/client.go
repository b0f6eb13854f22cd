package withdraw

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

// Client is the withdrawal upstream boundary.
type Client interface {
	FindAll(ctx context.Context, params ListParams) (*WithdrawsPage, error)
	FindActive(ctx context.Context, params ListParams) (*WithdrawsPage, error)
	FindTrashed(ctx context.Context, params ListParams) (*WithdrawsPage, error)
	FindByID(ctx context.Context, id int) (*Withdraw, error)
	FindByCardNumber(ctx context.Context, cardNumber string) (*[]Withdraw, error)
	YearlyAmounts(ctx context.Context, year int) (*[]YearlyAmount, error)

	Create(ctx context.Context, req CreateWithdrawRequest) (*Withdraw, error)
	Update(ctx context.Context, req UpdateWithdrawRequest) (*Withdraw, error)
	Trash(ctx context.Context, id int) (*Withdraw, error)
	Restore(ctx context.Context, id int) (*Withdraw, error)
	DeletePermanent(ctx context.Context, id int) (*bool, error)
	RestoreAll(ctx context.Context) (*bool, error)
	DeleteAllPermanent(ctx context.Context) (*bool, error)
}

const serviceName = "/withdraw.WithdrawService/"

type idRequest struct {
	ID int `json:"id"`
}

type yearRequest struct {
	Year int `json:"year"`
}

type cardNumberRequest struct {
	CardNumber string `json:"card_number"`
}

type emptyRequest struct{}

type grpcClient struct {
	conn *grpc.ClientConn
}

// NewClient creates a withdrawal client over the given upstream connection.
func NewClient(conn *grpc.ClientConn) Client {
	return &grpcClient{conn: conn}
}

func (c *grpcClient) FindAll(ctx context.Context, params ListParams) (*WithdrawsPage, error) {
	return upstream.Call[WithdrawsPage](ctx, c.conn, serviceName+"FindAll", params)
}

func (c *grpcClient) FindActive(ctx context.Context, params ListParams) (*WithdrawsPage, error) {
	return upstream.Call[WithdrawsPage](ctx, c.conn, serviceName+"FindActive", params)
}

func (c *grpcClient) FindTrashed(ctx context.Context, params ListParams) (*WithdrawsPage, error) {
	return upstream.Call[WithdrawsPage](ctx, c.conn, serviceName+"FindTrashed", params)
}

func (c *grpcClient) FindByID(ctx context.Context, id int) (*Withdraw, error) {
	return upstream.Call[Withdraw](ctx, c.conn, serviceName+"FindById", idRequest{ID: id})
}

func (c *grpcClient) FindByCardNumber(ctx context.Context, cardNumber string) (*[]Withdraw, error) {
	return upstream.Call[[]Withdraw](ctx, c.conn, serviceName+"FindByCardNumber",
		cardNumberRequest{CardNumber: cardNumber})
}

func (c *grpcClient) YearlyAmounts(ctx context.Context, year int) (*[]YearlyAmount, error) {
	return upstream.Call[[]YearlyAmount](ctx, c.conn, serviceName+"FindYearlyWithdrawAmounts",
		yearRequest{Year: year})
}

func (c *grpcClient) Create(ctx context.Context, req CreateWithdrawRequest) (*Withdraw, error) {
	return upstream.Call[Withdraw](ctx, c.conn, serviceName+"CreateWithdraw", req)
}

func (c *grpcClient) Update(ctx context.Context, req UpdateWithdrawRequest) (*Withdraw, error) {
	return upstream.Call[Withdraw](ctx, c.conn, serviceName+"UpdateWithdraw", req)
}

func (c *grpcClient) Trash(ctx context.Context, id int) (*Withdraw, error) {
	return upstream.Call[Withdraw](ctx, c.conn, serviceName+"TrashedWithdraw", idRequest{ID: id})
}

func (c *grpcClient) Restore(ctx context.Context, id int) (*Withdraw, error) {
	return upstream.Call[Withdraw](ctx, c.conn, serviceName+"RestoreWithdraw", idRequest{ID: id})
}

func (c *grpcClient) DeletePermanent(ctx context.Context, id int) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteWithdrawPermanent", idRequest{ID: id})
}

func (c *grpcClient) RestoreAll(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"RestoreAllWithdraw", emptyRequest{})
}

func (c *grpcClient) DeleteAllPermanent(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteAllWithdrawPermanent", emptyRequest{})
}
