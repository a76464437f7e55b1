package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Publisher --filename publisher.go

// Publisher publishes messages to a routing key.
type Publisher interface {
	Publish(context.Context, string, []byte) error
}

// PipelineCommander publishes catalog pipeline commands to one routing key.
type PipelineCommander struct {
	publisher  Publisher
	routingKey string
}

// NewPipelineCommander returns new PipelineCommander publishing commands to provided routing key.
func NewPipelineCommander(publisher Publisher, routingKey string) PipelineCommander {
	return PipelineCommander{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// SendRefreshCommand sends command to re-scrape records older than maxAgeHours.
func (c PipelineCommander) SendRefreshCommand(ctx context.Context, maxAgeHours int) error {
	return c.send(ctx, Command{
		Command:     CommandRefresh,
		MaxAgeHours: maxAgeHours,
	})
}

// SendWarmCommand sends command to resolve sku, warming the product cache.
func (c PipelineCommander) SendWarmCommand(ctx context.Context, sku string) error {
	return c.send(ctx, Command{
		Command: CommandWarm,
		SKU:     sku,
	})
}

func (c PipelineCommander) send(ctx context.Context, cmd Command) error {
	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal %s command: %w", cmd.Command, err)
	}

	return c.publisher.Publish(ctx, c.routingKey, cmdMsg)
}
