package rangegrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "slantrange.v1.RangeService"

// Full method names.
const (
	SlantRangeMethod          = "/" + ServiceName + "/SlantRange"
	GeodeticToCartesianMethod = "/" + ServiceName + "/GeodeticToCartesian"
	CartesianToGeodeticMethod = "/" + ServiceName + "/CartesianToGeodetic"
)

// RangeServiceServer is the server API of slantrange.v1.RangeService.
// Messages are protobuf well-known types so no generated code is needed.
type RangeServiceServer interface {
	SlantRange(context.Context, *structpb.Struct) (*wrapperspb.DoubleValue, error)
	GeodeticToCartesian(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CartesianToGeodetic(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterRangeServiceServer registers srv on s.
func RegisterRangeServiceServer(s grpc.ServiceRegistrar, srv RangeServiceServer) {
	s.RegisterService(&RangeServiceDesc, srv)
}

// RangeServiceDesc describes slantrange.v1.RangeService for grpc.ServiceRegistrar.
var RangeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RangeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SlantRange", Handler: slantRangeHandler},
		{MethodName: "GeodeticToCartesian", Handler: geodeticToCartesianHandler},
		{MethodName: "CartesianToGeodetic", Handler: cartesianToGeodeticHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "slantrange/v1/range_service.proto",
}

func slantRangeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RangeServiceServer).SlantRange(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SlantRangeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RangeServiceServer).SlantRange(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func geodeticToCartesianHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RangeServiceServer).GeodeticToCartesian(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GeodeticToCartesianMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RangeServiceServer).GeodeticToCartesian(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func cartesianToGeodeticHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RangeServiceServer).CartesianToGeodetic(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CartesianToGeodeticMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RangeServiceServer).CartesianToGeodetic(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
