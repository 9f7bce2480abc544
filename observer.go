package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// ObserverConfig controls what an observer prints besides recording VLANs.
type ObserverConfig struct {
	Capture CaptureConfig

	// ShowInterfaces prints the interface name when capturing starts.
	ShowInterfaces bool
	// ShowTraffic prints every matched packet with its VLAN ID.
	ShowTraffic bool
	// Out receives interface and traffic lines.
	Out io.Writer
}

// observer captures tagged traffic on one interface and feeds the session
// report until its context is done.
type observer struct {
	iface   string
	cfg     ObserverConfig
	report  *Report
	open    captureOpener
	counter *atomic.Uint64
	metrics *sessionMetrics
}

func (o *observer) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := log.WithField("interface", o.iface)

	handle, err := o.open(o.iface, o.cfg.Capture)
	if err != nil {
		o.fail(logger, err)
		return
	}
	defer handle.Close()

	if o.cfg.ShowInterfaces {
		fmt.Fprintf(o.cfg.Out, "looking %s...\n", o.iface)
	}
	logger.Debug("capture started")

	for {
		select {
		case <-ctx.Done():
			logger.Debug("capture stopped")
			return
		default:
		}

		data, _, err := handle.ReadPacketData()
		switch {
		case err == nil:
			o.handlePacket(data)
		case errors.Is(err, errReadTimeout):
			continue
		case errors.Is(err, io.EOF):
			logger.Debug("capture source exhausted")
			return
		default:
			o.fail(logger, &captureError{stage: stageRead, err: err})
			return
		}
	}
}

func (o *observer) handlePacket(data []byte) {
	id, ok := vlanID(data)
	if !ok {
		return
	}

	o.report.Add(o.iface, id)
	o.metrics.packets.WithLabelValues(o.iface).Inc()

	if o.cfg.ShowTraffic {
		n := o.counter.Add(1) - 1
		fmt.Fprintf(o.cfg.Out, "%d %s: %d\n", n, o.iface, id)
	}
}

func (o *observer) fail(logger *logrus.Entry, err error) {
	stage := stageOpen
	var cerr *captureError
	if errors.As(err, &cerr) {
		stage = cerr.stage
	}

	o.metrics.captureErrors.WithLabelValues(o.iface, string(stage)).Inc()
	logger.WithField("stage", stage).Error(err)
}
