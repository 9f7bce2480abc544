package main

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Session runs one observer per interface for a fixed observation window.
type Session struct {
	Duration time.Duration
	Observer ObserverConfig

	open    captureOpener
	metrics *sessionMetrics
}

func NewSession(cfg Config) *Session {
	return &Session{
		Duration: cfg.Duration,
		Observer: cfg.Observer,
		open:     openLive,
		metrics:  newSessionMetrics(),
	}
}

// Run captures on ifaces until the window elapses or ctx is cancelled, and
// returns the report once every observer has stopped.
func (s *Session) Run(ctx context.Context, ifaces []string) *Report {
	report := NewReport()
	if len(ifaces) == 0 {
		log.Warn("no interfaces to observe")
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, s.Duration)
	defer cancel()

	s.metrics.interfaces.Set(float64(len(ifaces)))

	counter := new(atomic.Uint64)
	wg := &sync.WaitGroup{}
	for _, iface := range ifaces {
		o := &observer{
			iface:   iface,
			cfg:     s.Observer,
			report:  report,
			open:    s.open,
			counter: counter,
			metrics: s.metrics,
		}

		wg.Add(1)
		go o.run(ctx, wg)
	}

	<-ctx.Done()
	wg.Wait()

	s.metrics.recordReport(report)
	return report
}

// runSession enumerates interfaces once and observes them for cfg.Duration.
// The metrics textfile, if configured, is written before returning.
func runSession(ctx context.Context, cfg Config) *Report {
	ifaces := listInterfaces(cfg.SysfsPath, cfg.IncludeVirtual)
	log.WithField("interfaces", ifaces).Debug("interfaces to observe")

	s := NewSession(cfg)
	report := s.Run(ctx, ifaces)

	if cfg.MetricsFile != "" {
		if err := s.metrics.writeTextfile(cfg.MetricsFile); err != nil {
			log.WithError(err).WithField("path", cfg.MetricsFile).Error("failed to write metrics")
		}
	}
	return report
}
