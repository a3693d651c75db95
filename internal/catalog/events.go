// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/catalogd/internal/logging"
	"github.com/tomtom215/catalogd/internal/models"
)

// TopicReloaded carries one message per successful catalog load.
const TopicReloaded = "catalog.reloaded"

// eventBufferSize bounds reload events waiting for the consumer.
const eventBufferSize = 16

// ReloadedEvent is the payload published on TopicReloaded.
type ReloadedEvent struct {
	ReportID   string `json:"report_id"`
	Generation uint64 `json:"generation"`
	Products   int    `json:"products"`
	Searchable int    `json:"searchable"`
}

// eventBus is an in-process watermill pub/sub used to react to reloads
// off the reload path.
type eventBus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	// handled counts consumed reload events.
	handled atomic.Uint64
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newEventBus(logger zerolog.Logger, onReload func(generation uint64)) (*eventBus, error) {
	logger = logger.With().Str("component", "catalog-events").Logger()

	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: eventBufferSize},
		watermill.NewSlogLogger(logging.NewSlogLogger(logger)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	messages, err := pubsub.Subscribe(ctx, TopicReloaded)
	if err != nil {
		cancel()
		_ = pubsub.Close() //nolint:errcheck // best effort cleanup on failed setup
		return nil, fmt.Errorf("subscribe to %s: %w", TopicReloaded, err)
	}

	b := &eventBus{pubsub: pubsub, logger: logger, cancel: cancel}
	b.wg.Add(1)
	go b.consume(messages, onReload)
	return b, nil
}

func (b *eventBus) consume(messages <-chan *message.Message, onReload func(generation uint64)) {
	defer b.wg.Done()
	for msg := range messages {
		var event ReloadedEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			b.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed reload event")
			msg.Ack()
			continue
		}
		onReload(event.Generation)
		b.handled.Add(1)
		msg.Ack()
	}
}

// PublishReloaded announces a successful load. Failures are logged; a
// missed event only delays reclaiming stale cache entries.
func (b *eventBus) PublishReloaded(report *models.LoadReport) {
	payload, err := json.Marshal(ReloadedEvent{
		ReportID:   report.ID,
		Generation: report.Generation,
		Products:   report.Products,
		Searchable: report.Searchable,
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to encode reload event")
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("trigger", report.Trigger)
	if err := b.pubsub.Publish(TopicReloaded, msg); err != nil {
		b.logger.Warn().Err(err).Uint64("generation", report.Generation).Msg("Failed to publish reload event")
	}
}

// Close stops the subscriber and waits for the consumer to drain, or for
// ctx to end.
func (b *eventBus) Close(ctx context.Context) error {
	var closeErr error
	b.once.Do(func() {
		b.cancel()
		closeErr = b.pubsub.Close()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}
