package main

import (
	"fmt"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

// vlanFilter selects received frames carrying an 802.1Q tag.
const vlanFilter = "inbound and vlan"

// errReadTimeout is returned by a capture read when no packet arrived within
// the read timeout.
var errReadTimeout error = pcap.NextErrorTimeoutExpired

// captureHandle is a live capture bound to one interface.
type captureHandle interface {
	gopacket.PacketDataSource
	Close()
}

// captureOpener opens a filtered capture on an interface.
type captureOpener func(iface string, cfg CaptureConfig) (captureHandle, error)

// captureStage names the step of opening a capture that failed.
type captureStage string

const (
	stageOpen    captureStage = "open"
	stageCompile captureStage = "compile"
	stageInstall captureStage = "install"
	stageRead    captureStage = "read"
)

type captureError struct {
	stage captureStage
	err   error
}

func (e *captureError) Error() string {
	switch e.stage {
	case stageOpen:
		return fmt.Sprintf("failed to open device: %s", e.err)
	case stageCompile:
		return fmt.Sprintf("failed to parse filter %q: %s", vlanFilter, e.err)
	case stageInstall:
		return fmt.Sprintf("failed to install filter %q: %s", vlanFilter, e.err)
	default:
		return fmt.Sprintf("capture %s failed: %s", e.stage, e.err)
	}
}

func (e *captureError) Unwrap() error {
	return e.err
}

// CaptureConfig holds the pcap parameters shared by all observers.
type CaptureConfig struct {
	SnapLen     int32
	ReadTimeout time.Duration
}

// openLive opens a non-promiscuous pcap handle on iface and installs vlanFilter.
func openLive(iface string, cfg CaptureConfig) (captureHandle, error) {
	handle, err := pcap.OpenLive(iface, cfg.SnapLen, false, cfg.ReadTimeout)
	if err != nil {
		return nil, &captureError{stage: stageOpen, err: err}
	}

	insns, err := handle.CompileBPFFilter(vlanFilter)
	if err != nil {
		handle.Close()
		return nil, &captureError{stage: stageCompile, err: err}
	}

	if err := handle.SetBPFInstructionFilter(insns); err != nil {
		handle.Close()
		return nil, &captureError{stage: stageInstall, err: err}
	}

	return handle, nil
}
