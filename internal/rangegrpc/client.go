package rangegrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/signalsfoundry/slant-range/model"
)

// Client calls slantrange.v1.RangeService on an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// SlantRange returns the distance in metres between observer and target.
func (c *Client) SlantRange(ctx context.Context, observer model.GeodeticPosition, target model.CartesianPosition, opts ...grpc.CallOption) (float64, error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		ObserverField: structpb.NewStructValue(GeodeticStruct(observer)),
		TargetField:   structpb.NewStructValue(CartesianStruct(target)),
	}}
	out := new(wrapperspb.DoubleValue)
	if err := c.cc.Invoke(ctx, SlantRangeMethod, req, out, opts...); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

// GeodeticToCartesian converts observer to ECEF metres.
func (c *Client) GeodeticToCartesian(ctx context.Context, observer model.GeodeticPosition, opts ...grpc.CallOption) (model.CartesianPosition, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GeodeticToCartesianMethod, wrap(ObserverField, GeodeticStruct(observer)), out, opts...); err != nil {
		return model.CartesianPosition{}, err
	}
	return cartesianFromFlat(out)
}

// CartesianToGeodetic converts target to geodetic coordinates.
func (c *Client) CartesianToGeodetic(ctx context.Context, target model.CartesianPosition, opts ...grpc.CallOption) (model.GeodeticPosition, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CartesianToGeodeticMethod, wrap(TargetField, CartesianStruct(target)), out, opts...); err != nil {
		return model.GeodeticPosition{}, err
	}
	return geodeticFromFlat(out)
}

// Responses are flat objects; reuse the request decoders by nesting them.
func cartesianFromFlat(s *structpb.Struct) (model.CartesianPosition, error) {
	return CartesianFromStruct(wrap("result", s), "result")
}

func geodeticFromFlat(s *structpb.Struct) (model.GeodeticPosition, error) {
	return GeodeticFromStruct(wrap("result", s), "result")
}
