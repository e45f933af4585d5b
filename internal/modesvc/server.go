package modesvc

import (
	"context"
	"fmt"
	"sync"

	"github.com/opencode-ai/thememode/internal/binding"
	"github.com/opencode-ai/thememode/internal/mode"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server implements ModeServiceServer on top of a mode.Manager.
type Server struct {
	manager *mode.Manager
	logger  zerolog.Logger
}

// NewServer creates the service implementation.
func NewServer(manager *mode.Manager, logger zerolog.Logger) *Server {
	return &Server{manager: manager, logger: logger}
}

// Get returns the current mode and theme.
func (s *Server) Get(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return encodeState(binding.State{Mode: s.manager.Mode(), Theme: s.manager.Theme()})
}

// Set forwards the requested mode to the manager. Any string is accepted and
// sanitized.
func (s *Server) Set(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	requested := req.GetValue()
	s.manager.SetMode(requested)

	s.logger.Info().
		Str("requested", requested).
		Str("mode", string(s.manager.Mode())).
		Str("theme", string(s.manager.Theme())).
		Msg("mode set via rpc")

	return encodeState(binding.State{Mode: s.manager.Mode(), Theme: s.manager.Theme()})
}

// Watch streams the current state and then the state after every
// notification, in order. States queue per stream while a send is in flight.
func (s *Server) Watch(_ *emptypb.Empty, stream WatchStream) error {
	var (
		mu      sync.Mutex
		pending []binding.State
	)
	wake := make(chan struct{}, 1)

	provider := binding.NewProvider(s.manager)
	stop := provider.Start(func(state binding.State) {
		mu.Lock()
		pending = append(pending, state)
		mu.Unlock()

		select {
		case wake <- struct{}{}:
		default:
		}
	})
	defer stop()

	ctx := stream.Context()
	s.logger.Debug().Msg("watch stream opened")
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Msg("watch stream closed")
			return nil
		case <-wake:
			mu.Lock()
			batch := pending
			pending = nil
			mu.Unlock()

			for _, state := range batch {
				msg, err := encodeState(state)
				if err != nil {
					return err
				}
				if err := stream.Send(msg); err != nil {
					return err
				}
			}
		}
	}
}

func encodeState(state binding.State) (*structpb.Struct, error) {
	msg, err := structpb.NewStruct(map[string]any{
		"mode":  string(state.Mode),
		"theme": string(state.Theme),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode state: %v", err))
	}
	return msg, nil
}

// decodeState reads a state from a response. Unknown modes fold to system.
func decodeState(msg *structpb.Struct) (binding.State, error) {
	fields := msg.GetFields()
	theme := mode.Theme(fields["theme"].GetStringValue())
	if theme != mode.ThemeLight && theme != mode.ThemeDark {
		return binding.State{}, fmt.Errorf("%w: theme %q", ErrMalformedState, theme)
	}
	return binding.State{
		Mode:  mode.Sanitize(fields["mode"].GetStringValue()),
		Theme: theme,
	}, nil
}
