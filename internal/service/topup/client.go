package topup

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

// Client is the top-up upstream boundary.
type Client interface {
	FindAll(ctx context.Context, params ListParams) (*TopupsPage, error)
	FindActive(ctx context.Context, params ListParams) (*TopupsPage, error)
	FindTrashed(ctx context.Context, params ListParams) (*TopupsPage, error)
	FindByID(ctx context.Context, id int) (*Topup, error)
	FindByCardNumber(ctx context.Context, cardNumber string) (*[]Topup, error)
	MonthlyAmounts(ctx context.Context, year int) (*[]MonthlyAmount, error)
	YearlyAmounts(ctx context.Context, year int) (*[]YearlyAmount, error)

	Create(ctx context.Context, req CreateTopupRequest) (*Topup, error)
	Update(ctx context.Context, req UpdateTopupRequest) (*Topup, error)
	Trash(ctx context.Context, id int) (*Topup, error)
	Restore(ctx context.Context, id int) (*Topup, error)
	DeletePermanent(ctx context.Context, id int) (*bool, error)
	RestoreAll(ctx context.Context) (*bool, error)
	DeleteAllPermanent(ctx context.Context) (*bool, error)
}

const serviceName = "/topup.TopupService/"

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

// NewClient creates a top-up client over the given upstream connection.
func NewClient(conn *grpc.ClientConn) Client {
	return &grpcClient{conn: conn}
}

func (c *grpcClient) FindAll(ctx context.Context, params ListParams) (*TopupsPage, error) {
	return upstream.Call[TopupsPage](ctx, c.conn, serviceName+"FindAll", params)
}

func (c *grpcClient) FindActive(ctx context.Context, params ListParams) (*TopupsPage, error) {
	return upstream.Call[TopupsPage](ctx, c.conn, serviceName+"FindActive", params)
}

func (c *grpcClient) FindTrashed(ctx context.Context, params ListParams) (*TopupsPage, error) {
	return upstream.Call[TopupsPage](ctx, c.conn, serviceName+"FindTrashed", params)
}

func (c *grpcClient) FindByID(ctx context.Context, id int) (*Topup, error) {
	return upstream.Call[Topup](ctx, c.conn, serviceName+"FindById", idRequest{ID: id})
}

func (c *grpcClient) FindByCardNumber(ctx context.Context, cardNumber string) (*[]Topup, error) {
	return upstream.Call[[]Topup](ctx, c.conn, serviceName+"FindByCardNumber",
		cardNumberRequest{CardNumber: cardNumber})
}

func (c *grpcClient) MonthlyAmounts(ctx context.Context, year int) (*[]MonthlyAmount, error) {
	return upstream.Call[[]MonthlyAmount](ctx, c.conn, serviceName+"FindMonthlyTopupAmounts",
		yearRequest{Year: year})
}

func (c *grpcClient) YearlyAmounts(ctx context.Context, year int) (*[]YearlyAmount, error) {
	return upstream.Call[[]YearlyAmount](ctx, c.conn, serviceName+"FindYearlyTopupAmounts",
		yearRequest{Year: year})
}

func (c *grpcClient) Create(ctx context.Context, req CreateTopupRequest) (*Topup, error) {
	return upstream.Call[Topup](ctx, c.conn, serviceName+"CreateTopup", req)
}

func (c *grpcClient) Update(ctx context.Context, req UpdateTopupRequest) (*Topup, error) {
	return upstream.Call[Topup](ctx, c.conn, serviceName+"UpdateTopup", req)
}

func (c *grpcClient) Trash(ctx context.Context, id int) (*Topup, error) {
	return upstream.Call[Topup](ctx, c.conn, serviceName+"TrashedTopup", idRequest{ID: id})
}

func (c *grpcClient) Restore(ctx context.Context, id int) (*Topup, error) {
	return upstream.Call[Topup](ctx, c.conn, serviceName+"RestoreTopup", idRequest{ID: id})
}

func (c *grpcClient) DeletePermanent(ctx context.Context, id int) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteTopupPermanent", idRequest{ID: id})
}

func (c *grpcClient) RestoreAll(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"RestoreAllTopup", emptyRequest{})
}

func (c *grpcClient) DeleteAllPermanent(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteAllTopupPermanent", emptyRequest{})
}
