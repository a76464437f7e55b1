package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/partsflow/catalog-pipeline/internal/platform/rabbitmq"
	"github.com/partsflow/catalog-pipeline/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Resolver --filename resolver.go
//go:generate mockery --name Refresher --filename refresher.go

// Resolver resolves canonical product records by SKU.
type Resolver interface {
	Resolve(ctx context.Context, sku string) (models.CanonicalProduct, bool, error)
}

// Refresher re-scrapes stale cached records.
type Refresher interface {
	RefreshStale(ctx context.Context, maxAgeHours int) (succeeded, failed, total int, err error)
}

// RMQHandler handles RMQ pipeline commands.
type RMQHandler struct {
	rmq       *rabbitmq.RabbitMQ
	resolver  Resolver
	refresher Refresher
	logger    *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(rmq *rabbitmq.RabbitMQ, resolver Resolver, refresher Refresher, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:       rmq,
		resolver:  resolver,
		refresher: refresher,
		logger:    logger,
	}
}

// Start starts consuming and handling pipeline commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// Handle handles a single command message.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	cmd, err := decodeCommand(message)
	if err != nil {
		return err
	}

	switch cmd.Command {
	case commander.CommandRefresh:
		return h.handleRefresh(ctx, cmd.MaxAgeHours)
	case commander.CommandWarm:
		return h.handleWarm(ctx, cmd.SKU)
	default:
		return fmt.Errorf("unknown command %q", cmd.Command)
	}
}

func (h *RMQHandler) handleRefresh(ctx context.Context, maxAgeHours int) error {
	h.logger.Debug().
		Int("maxAgeHours", maxAgeHours).
		Msg("refresh started")

	succeeded, failed, total, err := h.refresher.RefreshStale(ctx, maxAgeHours)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	h.logger.Debug().
		Int("succeeded", succeeded).
		Int("failed", failed).
		Int("total", total).
		Msg("refresh finished")

	return nil
}

func (h *RMQHandler) handleWarm(ctx context.Context, sku string) error {
	_, found, err := h.resolver.Resolve(ctx, sku)
	if err != nil {
		return fmt.Errorf("warm-up failed: %w", err)
	}

	h.logger.Debug().
		Str("sku", sku).
		Bool("found", found).
		Msg("warm-up finished")

	return nil
}

func decodeCommand(msg []byte) (*commander.Command, error) {
	var cmd commander.Command
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode pipeline command: %w", err)
	}

	return &cmd, nil
}
