// sniffvlan reports the VLAN IDs seen on inbound traffic of every active
// physical Ethernet interface during a short capture window.
package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

var (
	Version string = "unknown"
	log            = logrus.New()
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("sniffvlan"),
		kong.Description("Show VLAN IDs of inbound traffic per interface"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	setupLogging(cli)

	cfg, err := newConfig(cli)
	kctx.FatalIfErrorf(err)

	if err := run(GetApplicationContext(), cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg Config) error {
	report := runSession(ctx, cfg)
	return render(os.Stdout, report, cfg.Format)
}
