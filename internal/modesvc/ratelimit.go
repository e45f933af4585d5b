package modesvc

import (
	"context"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Limit is a token bucket configuration.
type Limit struct {
	// PerSecond is the sustained refill rate.
	PerSecond float64

	// Burst is the bucket capacity.
	Burst int
}

// DefaultLimits keeps a misbehaving client from flooding subscribers with
// forced notifications. Get is unlimited.
var DefaultLimits = map[string]Limit{
	methodSet:   {PerSecond: 20, Burst: 40},
	methodWatch: {PerSecond: 5, Burst: 10},
}

type bucket struct {
	mu      sync.Mutex
	tokens  float64
	updated time.Time
	limit   Limit
	denied  int64
	now     func() time.Time
}

func newBucket(limit Limit, now func() time.Time) *bucket {
	return &bucket{
		tokens:  float64(limit.Burst),
		updated: now(),
		limit:   limit,
		now:     now,
	}
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.tokens += now.Sub(b.updated).Seconds() * b.limit.PerSecond
	if max := float64(b.limit.Burst); b.tokens > max {
		b.tokens = max
	}
	b.updated = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	b.denied++
	return false
}

// RateLimiter applies per-method token buckets to incoming calls.
type RateLimiter struct {
	mu      sync.Mutex
	limits  map[string]Limit
	buckets map[string]*bucket
	now     func() time.Time
}

// NewRateLimiter creates a limiter. A nil limits map means DefaultLimits.
func NewRateLimiter(limits map[string]Limit) *RateLimiter {
	if limits == nil {
		limits = DefaultLimits
	}
	return &RateLimiter{
		limits:  limits,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow consumes a token for method. Methods without a limit always pass.
func (rl *RateLimiter) Allow(method string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[method]
	if !ok {
		limit, limited := rl.limits[method]
		if !limited {
			rl.mu.Unlock()
			return true
		}
		b = newBucket(limit, rl.now)
		rl.buckets[method] = b
	}
	rl.mu.Unlock()

	return b.allow()
}

// Denied returns how many calls to method were rejected.
func (rl *RateLimiter) Denied(method string) int64 {
	rl.mu.Lock()
	b, ok := rl.buckets[method]
	rl.mu.Unlock()
	if !ok {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.denied
}

// UnaryServerInterceptor rejects unary calls over their limit.
func (rl *RateLimiter) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !rl.Allow(info.FullMethod) {
			return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded for %s", info.FullMethod)
		}
		return handler(ctx, req)
	}
}

// StreamServerInterceptor limits how often streams are opened, not the
// messages sent on them.
func (rl *RateLimiter) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if !rl.Allow(info.FullMethod) {
			return status.Errorf(codes.ResourceExhausted, "rate limit exceeded for %s", info.FullMethod)
		}
		return handler(srv, ss)
	}
}
