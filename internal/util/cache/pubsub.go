package cache_utils

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"receipthub/internal/cache"
	"receipthub/internal/util/logger"

	"github.com/valkey-io/valkey-go"
)

// PubSubService is the realtime push channel between log writers and
// active log stream viewers. Every insert is published on a per-table
// channel; viewer sessions subscribe while they are live.
type PubSubService struct {
	client valkey.Client
	logger *slog.Logger
}

func NewPubSubService() *PubSubService {
	return &PubSubService{
		client: cache.GetCache(),
		logger: logger.GetLogger(),
	}
}

func (p *PubSubService) Publish(channel string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultCacheTimeout)
	defer cancel()

	cmd := p.client.B().Publish().Channel(channel).Message(string(payload)).Build()
	return p.client.Do(ctx, cmd).Error()
}

type PubSubSubscription struct {
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// Subscribe delivers every message published on the channel to onMessage,
// in publish order, until Close is called. A dropped connection ends the
// subscription without retrying; reconnection is the caller's decision.
func (p *PubSubService) Subscribe(channel string, onMessage func(payload []byte)) *PubSubSubscription {
	ctx, cancel := context.WithCancel(context.Background())

	subscription := &PubSubSubscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(subscription.done)

		err := p.client.Receive(ctx, p.client.B().Subscribe().Channel(channel).Build(),
			func(msg valkey.PubSubMessage) {
				onMessage([]byte(msg.Message))
			})

		if err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Error("Pub/sub subscription dropped",
				slog.String("channel", channel),
				slog.String("error", err.Error()))
		}
	}()

	return subscription
}

// Close is idempotent and safe to call when the subscription already ended.
func (s *PubSubSubscription) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
	})
}
