package card

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/upstream"
)

// Client is the card upstream boundary. Implementations own the wire
// format; the service layer only sees typed requests and responses.
type Client interface {
	FindAll(ctx context.Context, params ListParams) (*CardsPage, error)
	FindActive(ctx context.Context, params ListParams) (*CardsPage, error)
	FindTrashed(ctx context.Context, params ListParams) (*CardsPage, error)
	FindByID(ctx context.Context, id int) (*Card, error)
	FindByUserID(ctx context.Context, userID int) (*Card, error)
	FindByCardNumber(ctx context.Context, cardNumber string) (*Card, error)
	DashboardTotals(ctx context.Context) (*DashboardTotals, error)
	MonthlyBalance(ctx context.Context, year int) (*[]MonthlyBalance, error)
	YearlyBalance(ctx context.Context, year int) (*[]YearlyBalance, error)

	Create(ctx context.Context, req CreateCardRequest) (*Card, error)
	Update(ctx context.Context, req UpdateCardRequest) (*Card, error)
	Trash(ctx context.Context, id int) (*Card, error)
	Restore(ctx context.Context, id int) (*Card, error)
	DeletePermanent(ctx context.Context, id int) (*bool, error)
	RestoreAll(ctx context.Context) (*bool, error)
	DeleteAllPermanent(ctx context.Context) (*bool, error)
}

const serviceName = "/card.CardService/"

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

// NewClient creates a card client over the given upstream connection.
func NewClient(conn *grpc.ClientConn) Client {
	return &grpcClient{conn: conn}
}

func (c *grpcClient) FindAll(ctx context.Context, params ListParams) (*CardsPage, error) {
	return upstream.Call[CardsPage](ctx, c.conn, serviceName+"FindAll", params)
}

func (c *grpcClient) FindActive(ctx context.Context, params ListParams) (*CardsPage, error) {
	return upstream.Call[CardsPage](ctx, c.conn, serviceName+"FindActive", params)
}

func (c *grpcClient) FindTrashed(ctx context.Context, params ListParams) (*CardsPage, error) {
	return upstream.Call[CardsPage](ctx, c.conn, serviceName+"FindTrashed", params)
}

func (c *grpcClient) FindByID(ctx context.Context, id int) (*Card, error) {
	return upstream.Call[Card](ctx, c.conn, serviceName+"FindById", idRequest{ID: id})
}

func (c *grpcClient) FindByUserID(ctx context.Context, userID int) (*Card, error) {
	return upstream.Call[Card](ctx, c.conn, serviceName+"FindByUserId", idRequest{ID: userID})
}

func (c *grpcClient) FindByCardNumber(ctx context.Context, cardNumber string) (*Card, error) {
	return upstream.Call[Card](ctx, c.conn, serviceName+"FindByCardNumber",
		cardNumberRequest{CardNumber: cardNumber})
}

func (c *grpcClient) DashboardTotals(ctx context.Context) (*DashboardTotals, error) {
	return upstream.Call[DashboardTotals](ctx, c.conn, serviceName+"DashboardCard", emptyRequest{})
}

func (c *grpcClient) MonthlyBalance(ctx context.Context, year int) (*[]MonthlyBalance, error) {
	return upstream.Call[[]MonthlyBalance](ctx, c.conn, serviceName+"FindMonthlyBalance",
		yearRequest{Year: year})
}

func (c *grpcClient) YearlyBalance(ctx context.Context, year int) (*[]YearlyBalance, error) {
	return upstream.Call[[]YearlyBalance](ctx, c.conn, serviceName+"FindYearlyBalance",
		yearRequest{Year: year})
}

func (c *grpcClient) Create(ctx context.Context, req CreateCardRequest) (*Card, error) {
	return upstream.Call[Card](ctx, c.conn, serviceName+"CreateCard", req)
}

func (c *grpcClient) Update(ctx context.Context, req UpdateCardRequest) (*Card, error) {
	return upstream.Call[Card](ctx, c.conn, serviceName+"UpdateCard", req)
}

func (c *grpcClient) Trash(ctx context.Context, id int) (*Card, error) {
	return upstream.Call[Card](ctx, c.conn, serviceName+"TrashedCard", idRequest{ID: id})
}

func (c *grpcClient) Restore(ctx context.Context, id int) (*Card, error) {
	return upstream.Call[Card](ctx, c.conn, serviceName+"RestoreCard", idRequest{ID: id})
}

func (c *grpcClient) DeletePermanent(ctx context.Context, id int) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteCardPermanent", idRequest{ID: id})
}

func (c *grpcClient) RestoreAll(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"RestoreAllCard", emptyRequest{})
}

func (c *grpcClient) DeleteAllPermanent(ctx context.Context) (*bool, error) {
	return upstream.Call[bool](ctx, c.conn, serviceName+"DeleteAllCardPermanent", emptyRequest{})
}
