package upstream

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// jsonCodecName is the gRPC content-subtype the gateway and its upstream
// services exchange. The generated message layer is owned by the
// services; the gateway only needs a codec both sides agree on.
const jsonCodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// Call invokes a unary upstream method and decodes the response into
// Resp. Entity client implementations are one-line wrappers over this.
func Call[Resp any](ctx context.Context, conn *grpc.ClientConn, method string, req any) (*Resp, error) {
	var resp Resp
	err := conn.Invoke(ctx, method, req, &resp, grpc.CallContentSubtype(jsonCodecName))
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
