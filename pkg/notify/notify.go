package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/remora-hq/staffdesk/pkg/logx"
)

// ============================================================================
// Campaign Notifier Port
// ============================================================================

// CampaignEvent es la señal que se emite cuando una posición entra en
// CAMPAIGN_SENT. Fire-and-forget: el consumidor real vive fuera del core.
type CampaignEvent struct {
	PositionID string    `json:"position_id"`
	Reference  string    `json:"reference"`
	Title      string    `json:"title"`
	SentBy     string    `json:"sent_by"`
	SentAt     time.Time `json:"sent_at"`
}

// CampaignNotifier define el contrato del sink de notificaciones
type CampaignNotifier interface {
	CampaignSent(ctx context.Context, event CampaignEvent) error
}

// ============================================================================
// Console Notifier (Development)
// ============================================================================

// ConsoleNotifier implements CampaignNotifier by printing the event
// to the terminal/console
type ConsoleNotifier struct{}

// NewConsoleNotifier creates a new console-based campaign notifier
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

// CampaignSent prints the campaign event to the terminal
func (n *ConsoleNotifier) CampaignSent(ctx context.Context, event CampaignEvent) error {
	fmt.Println("==================================================")
	fmt.Printf("📣 CAMPAIGN NOTIFICATION\n")
	fmt.Printf("Position: %s (%s)\n", event.Title, event.Reference)
	fmt.Printf("Sent by: %s\n", event.SentBy)
	fmt.Println("==================================================")

	logx.Infof("Campaign notification for position %s (%s)", event.Reference, event.PositionID)
	return nil
}
