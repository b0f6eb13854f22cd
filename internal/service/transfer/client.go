package transfer

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

// Client is the transfer upstream boundary.
type Client interface {
	FindAll(ctx context.Context, params ListParams) (*TransfersPage, error)
	FindActive(ctx context.Context, params ListParams) (*TransfersPage, error)
	FindTrashed(ctx context.Context, params ListParams) (*TransfersPage, error)
	FindByID(ctx context.Context, id int) (*Transfer, error)
	FindByTransferFrom(ctx context.Context, cardNumber string) (*[]Transfer, error)
	FindByTransferTo(ctx context.Context, cardNumber string) (*[]Transfer, error)
	YearlyAmounts(ctx context.Context, year int) (*[]YearlyAmount, error)

	Create(ctx context.Context, req CreateTransferRequest) (*Transfer, error)
	Update(ctx context.Context, req UpdateTransferRequest) (*Transfer, error)
	Trash(ctx context.Context, id int) (*Transfer, error)
	Restore(ctx context.Context, id int) (*Transfer, error)
	DeletePermanent(ctx context.Context, id int) (*bool, error)
	RestoreAll(ctx context.Context) (*bool, error)
	DeleteAllPermanent(ctx context.Context) (*bool, error)
}

const serviceName = "/transfer.TransferService/"

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

// NewClient creates a transfer client over the given upstream connection.
func NewClient(conn *grpc.ClientConn) Client {
	return &grpcClient{conn: conn}
}

func (c *grpcClient) FindAll(ctx context.Context, params ListParams) (*TransfersPage, error) {
	return upstream.Call[TransfersPage](ctx, c.conn, serviceName+"FindAll", params)
}

func (c *grpcClient) FindActive(ctx context.Context, params ListParams) (*TransfersPage, error) {
	return upstream.Call[TransfersPage](ctx, c.conn, serviceName+"FindActive", params)
}

func (c *grpcClient) FindTrashed(ctx context.Context, params ListParams) (*TransfersPage, error) {
	return upstream.Call[TransfersPage](ctx, c.conn, serviceName+"FindTrashed", params)
}

func (c *grpcClient) FindByID(ctx context.Context, id int) (*Transfer, error) {
	return upstream.Call[Transfer](ctx, c.conn, serviceName+"FindById", idRequest{ID: id})
}

func (c *grpcClient) FindByTransferFrom(ctx context.Context, cardNumber string) (*[]Transfer, error) {
	return upstream.Call[[]Transfer](ctx, c.conn, serviceName+"FindByTransferFrom",
		cardNumberRequest{CardNumber: cardNumber})
}

func (c *grpcClient) FindByTransferTo(ctx context.Context, cardNumber string) (*[]Transfer, error) {
	return upstream.Call[[]Transfer](ctx, c.conn, serviceName+"FindByTransferTo",
		cardNumberRequest{CardNumber: cardNumber})
}

func (c *grpcClient) YearlyAmounts(ctx context.Context, year int) (*[]YearlyAmount, error) {
	return upstream.Call[[]YearlyAmount](ctx, c.conn, serviceName+"FindYearlyTransferAmounts",
		yearRequest{Year: year})
}

func (c *grpcClient) Create(ctx context.Context, req CreateTransferRequest) (*Transfer, error) {
	return upstream.Call[Transfer](ctx, c.conn, serviceName+"CreateTransfer", req)
}

func (c *grpcClient) Update(ctx context.Context, req UpdateTransferRequest) (*Transfer, error) {
	return upstream.Call[Transfer](ctx, c.conn, serviceName+"UpdateTransfer", req)
}

func (c *grpcClient) Trash(ctx context.Context, id int) (*Transfer, error) {
	return upstream.Call[Transfer](ctx, c.conn, serviceName+"TrashedTransfer", idRequest{ID: id})
}

func (c *grpcClient) Restore(ctx context.Context, id int) (*Transfer, error) {
	return upstream.Call[Transfer](ctx, c.conn, serviceName+"RestoreTransfer", idRequest{ID: id})
}

func (c *grpcClient) DeletePermanent(ctx context.Context, id int) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteTransferPermanent", idRequest{ID: id})
}

func (c *grpcClient) RestoreAll(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"RestoreAllTransfer", emptyRequest{})
}

func (c *grpcClient) DeleteAllPermanent(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteAllTransferPermanent", emptyRequest{})
}
