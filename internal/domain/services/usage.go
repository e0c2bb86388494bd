package services

import (
	"sync/atomic"
	"time"

	"fraudlens/internal/domain/models"
)

// UsageTracker keeps per-channel analysis counters. Counters are atomic
// so handlers can record from concurrent requests without locking.
type UsageTracker struct {
	started time.Time

	smsAnalyzed   atomic.Int64
	smsFlagged    atomic.Int64
	emailAnalyzed atomic.Int64
	emailFlagged  atomic.Int64
	chatAnalyzed  atomic.Int64
	chatFlagged   atomic.Int64
	cacheHits     atomic.Int64
}

func NewUsageTracker() *UsageTracker {
	return &UsageTracker{started: time.Now()}
}

// Record counts one completed analysis
func (t *UsageTracker) Record(result models.AnalysisResult) {
	var analyzed, flagged *atomic.Int64
	switch result.Channel {
	case models.ChannelSMS:
		analyzed, flagged = &t.smsAnalyzed, &t.smsFlagged
	case models.ChannelEmail:
		analyzed, flagged = &t.emailAnalyzed, &t.emailFlagged
	case models.ChannelChat:
		analyzed, flagged = &t.chatAnalyzed, &t.chatFlagged
	default:
		return
	}
	analyzed.Add(1)
	if result.Flagged {
		flagged.Add(1)
	}
	if result.CacheHit {
		t.cacheHits.Add(1)
	}
}

// ChannelUsage is one channel's counter pair
type ChannelUsage struct {
	Analyzed int64 `json:"analyzed"`
	Flagged  int64 `json:"flagged"`
}

// UsageSnapshot is a point-in-time view of the counters
type UsageSnapshot struct {
	SMS           ChannelUsage `json:"sms"`
	Email         ChannelUsage `json:"email"`
	Chat          ChannelUsage `json:"chat"`
	TotalAnalyzed int64        `json:"total_analyzed"`
	TotalFlagged  int64        `json:"total_flagged"`
	CacheHits     int64        `json:"cache_hits"`
	UptimeSeconds int64        `json:"uptime_seconds"`
}

// Snapshot returns the current counter values
func (t *UsageTracker) Snapshot() UsageSnapshot {
	s := UsageSnapshot{
		SMS:           ChannelUsage{t.smsAnalyzed.Load(), t.smsFlagged.Load()},
		Email:         ChannelUsage{t.emailAnalyzed.Load(), t.emailFlagged.Load()},
		Chat:          ChannelUsage{t.chatAnalyzed.Load(), t.chatFlagged.Load()},
		CacheHits:     t.cacheHits.Load(),
		UptimeSeconds: int64(time.Since(t.started).Seconds()),
	}
	s.TotalAnalyzed = s.SMS.Analyzed + s.Email.Analyzed + s.Chat.Analyzed
	s.TotalFlagged = s.SMS.Flagged + s.Email.Flagged + s.Chat.Flagged
	return s
}
