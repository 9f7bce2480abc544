package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"

	// minSnapLen covers the Ethernet header and the 802.1Q tag.
	minSnapLen = tciOffset + 2
)

type CLI struct {
	ShowInterfaces bool          `short:"i" help:"Show the interfaces that are being viewed"`
	ShowTraffic    bool          `short:"o" help:"Show traffic online"`
	ViewingTime    int           `short:"t" help:"Interface sniffing time in seconds" default:"2" placeholder:"SECONDS"`
	ReadTimeout    time.Duration `help:"Capture read timeout" default:"100ms"`
	SnapLen        int32         `help:"Capture snapshot length in bytes" default:"128"`
	Sysfs          string        `help:"Network device metadata directory" default:"/sys/class/net"`
	IncludeVirtual bool          `help:"Also observe virtual Ethernet devices (bridges, veth, bonds)"`
	Format         string        `short:"f" help:"Report format [text|json|yaml]" enum:"text,json,yaml" default:"text"`
	MetricsFile    string        `help:"Write Prometheus metrics to this textfile after the run" type:"path"`

	LogLevel  string `short:"l" help:"Log level [error|warn|info|debug|trace]" default:"info" enum:"error,warn,info,debug,trace"`
	LogFormat string `help:"Log format [default|json]" default:"default" enum:"default,json"`

	Version kong.VersionFlag `short:"v" help:"Print version and exit"`
}

// Config is the validated run configuration.
type Config struct {
	Duration       time.Duration
	Observer       ObserverConfig
	SysfsPath      string
	IncludeVirtual bool
	Format         string
	MetricsFile    string
}

// newConfig validates the parsed arguments.
func newConfig(cli CLI) (Config, error) {
	if cli.ViewingTime <= 0 {
		return Config{}, fmt.Errorf("--viewing-time must be a positive number of seconds, got %d", cli.ViewingTime)
	}
	if cli.ReadTimeout <= 0 {
		return Config{}, fmt.Errorf("--read-timeout must be positive, got %s", cli.ReadTimeout)
	}
	if cli.SnapLen < minSnapLen {
		return Config{}, fmt.Errorf("--snap-len must be at least %d, got %d", minSnapLen, cli.SnapLen)
	}

	return Config{
		Duration: time.Duration(cli.ViewingTime) * time.Second,
		Observer: ObserverConfig{
			Capture: CaptureConfig{
				SnapLen:     cli.SnapLen,
				ReadTimeout: cli.ReadTimeout,
			},
			ShowInterfaces: cli.ShowInterfaces,
			ShowTraffic:    cli.ShowTraffic,
			Out:            os.Stdout,
		},
		SysfsPath:      cli.Sysfs,
		IncludeVirtual: cli.IncludeVirtual,
		Format:         cli.Format,
		MetricsFile:    cli.MetricsFile,
	}, nil
}

func setupLogging(cli CLI) {
	log = logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		DisableLevelTruncation: true,
		PadLevelText:           true,
		FullTimestamp:          true,
	})

	lvl, err := logrus.ParseLevel(cli.LogLevel)
	if err != nil {
		log.WithError(err).Warn("invalid log level, using info")
		lvl = logrus.InfoLevel
	}
	if cli.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	log.SetLevel(lvl)
}
