package config

import "time"

type HiringConfig struct {
	Archival ArchivalConfig
	Campaign CampaignConfig
}

// ArchivalConfig controla el barrido que archiva campañas terminadas
type ArchivalConfig struct {
	DwellTime     time.Duration
	SweepInterval time.Duration
	SweepEnabled  bool
}

// CampaignConfig controla la señal de notificación de campañas
type CampaignConfig struct {
	Channel string
}

func loadHiringConfig() HiringConfig {
	return HiringConfig{
		Archival: ArchivalConfig{
			DwellTime:     getEnvDuration("ARCHIVAL_DWELL_TIME", 14*24*time.Hour),
			SweepInterval: getEnvDuration("ARCHIVAL_SWEEP_INTERVAL", 1*time.Hour),
			SweepEnabled:  getEnvBool("ARCHIVAL_SWEEP_ENABLED", true),
		},
		Campaign: CampaignConfig{
			Channel: getEnv("CAMPAIGN_NOTIFY_CHANNEL", "staffdesk:campaigns"),
		},
	}
}
