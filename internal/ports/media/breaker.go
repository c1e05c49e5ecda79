package media

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// BreakerSink fails fast while the wrapped sink keeps failing. It never retries.
type BreakerSink struct {
	next Sink
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerSink wraps next in a circuit breaker named name.
func NewBreakerSink(next Sink, name string) *BreakerSink {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is at least 50% after 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Media sink circuit breaker changed state")
		},
	}

	return &BreakerSink{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerSink) Store(ctx context.Context, name string, content io.Reader, size int64, contentType string) (string, error) {
	url, err := b.cb.Execute(func() (interface{}, error) {
		ref, err := b.next.Store(ctx, name, content, size, contentType)
		return ref, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.Ctx(ctx).Warn().Str("name", name).Msg("Circuit breaker is open; skipping media upload")
		}
		return "", err
	}
	return url.(string), nil
}
