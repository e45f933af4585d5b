// Package modesvc exposes a mode manager to other local processes over gRPC.
package modesvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	serviceName = "thememode.v1.ModeService"

	methodGet   = "/" + serviceName + "/Get"
	methodSet   = "/" + serviceName + "/Set"
	methodWatch = "/" + serviceName + "/Watch"
)

// ModeServiceServer is the server API for the mode service. Responses carry
// a Struct with string fields "mode" and "theme".
type ModeServiceServer interface {
	Get(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Set(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Watch(*emptypb.Empty, WatchStream) error
}

// WatchStream is the server side of a Watch call.
type WatchStream interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

// RegisterModeServiceServer registers srv on s.
func RegisterModeServiceServer(s grpc.ServiceRegistrar, srv ModeServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ModeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Get", Handler: getHandler},
		{MethodName: "Set", Handler: setHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Watch", Handler: watchHandler, ServerStreams: true},
	},
	Metadata: "thememode/v1/mode.proto",
}

func getHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ModeServiceServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGet}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ModeServiceServer).Get(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func setHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ModeServiceServer).Set(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSet}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ModeServiceServer).Set(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ModeServiceServer).Watch(in, &watchStream{stream})
}

type watchStream struct {
	grpc.ServerStream
}

func (x *watchStream) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}
