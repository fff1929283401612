// Package keepalive periodically pings the service's own public URL so
// free-tier hosts don't idle the process out between requests.
package keepalive

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
)

type Service struct {
	url      string
	schedule string
	client   *http.Client
	cron     *cron.Cron
}

func New(url, schedule string) *Service {
	return &Service{
		url:      url,
		schedule: schedule,
		client:   &http.Client{Timeout: 30 * time.Second},
		cron:     cron.New(),
	}
}

func (s *Service) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.ping); err != nil {
		return fmt.Errorf("scheduling keepalive: %w", err)
	}
	s.cron.Start()
	slog.Info("keepalive started", "url", s.url, "schedule", s.schedule)
	return nil
}

func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("keepalive stopped")
}

func (s *Service) ping() {
	resp, err := s.client.Get(s.url)
	if err != nil {
		slog.Error("keepalive ping failed", "error", err, "url", s.url)
		return
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("keepalive ping returned non-200", "status", resp.StatusCode, "url", s.url)
		return
	}
	slog.Debug("keepalive ping ok", "url", s.url)
}
