package notifyinfra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/remora-hq/staffdesk/pkg/notify"
)

// RedisCampaignPublisher implementación en Redis pub/sub del CampaignNotifier
type RedisCampaignPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisCampaignPublisher crea un publisher de campañas sobre Redis
func NewRedisCampaignPublisher(client *redis.Client, channel string) notify.CampaignNotifier {
	return &RedisCampaignPublisher{
		client:  client,
		channel: channel,
	}
}

// CampaignSent publica el evento en el canal configurado
func (p *RedisCampaignPublisher) CampaignSent(ctx context.Context, event notify.CampaignEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish campaign event: %w", err)
	}

	return nil
}
