package modesvc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/opencode-ai/thememode/internal/binding"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client errors.
var (
	ErrMalformedState = errors.New("malformed state")
)

// Client calls a remote mode service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial creates a client for the service at addr. The connection is
// established lazily on the first call.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Get returns the remote mode and theme.
func (c *Client) Get(ctx context.Context) (binding.State, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, methodGet, &emptypb.Empty{}, out); err != nil {
		return binding.State{}, err
	}
	return decodeState(out)
}

// Set requests a mode change and returns the resulting state.
func (c *Client) Set(ctx context.Context, requested string) (binding.State, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, methodSet, wrapperspb.String(requested), out); err != nil {
		return binding.State{}, err
	}
	return decodeState(out)
}

// Watch calls fn with the remote state until ctx is done or the stream ends.
// Cancellation through ctx is not reported as an error.
func (c *Client) Watch(ctx context.Context, fn func(binding.State)) error {
	stream, err := c.conn.NewStream(ctx, &serviceDesc.Streams[0], methodWatch)
	if err != nil {
		return err
	}
	if err := stream.SendMsg(&emptypb.Empty{}); err != nil {
		return err
	}
	if err := stream.CloseSend(); err != nil {
		return err
	}

	for {
		out := new(structpb.Struct)
		if err := stream.RecvMsg(out); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if status.Code(err) == codes.Canceled && ctx.Err() != nil {
				return nil
			}
			return err
		}

		state, err := decodeState(out)
		if err != nil {
			return err
		}
		fn(state)
	}
}
