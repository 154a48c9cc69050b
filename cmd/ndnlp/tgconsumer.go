package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/urfave/cli/v2"
	"github.com/usnistgov/ndnlp/app/tgconsumer"
	"github.com/usnistgov/ndnlp/core/macaddr"
	"github.com/usnistgov/ndnlp/core/subtract"
	"github.com/usnistgov/ndnlp/core/yamlflag"
	"github.com/usnistgov/ndnlp/ndn/l3"
	"github.com/usnistgov/ndnlp/ndn/packettransport"
	"github.com/usnistgov/ndnlp/ndn/packettransport/afpacket"
	"github.com/usnistgov/ndnlp/ndn/sockettransport"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const tgconsumerSchema = `{
	"type": "object",
	"required": ["patterns"],
	"properties": {
		"rxQueueCapacity": { "type": "integer", "minimum": 0 },
		"interval": { "type": ["integer", "string"] },
		"patterns": {
			"type": "array",
			"minItems": 1,
			"maxItems": 128,
			"items": {
				"type": "object",
				"required": ["prefix"],
				"properties": {
					"weight": { "type": "integer", "minimum": 0 },
					"prefix": { "type": "string" },
					"canBePrefix": { "type": "boolean" },
					"mustBeFresh": { "type": "boolean" },
					"interestLifetime": { "type": ["integer", "string"] },
					"hopLimit": { "type": "integer", "minimum": 0, "maximum": 255 },
					"seqNumOffset": { "type": "integer", "minimum": 0 }
				}
			}
		}
	}
}`

var errNoFace = errors.New("either --ether or --remote is required")

func init() {
	var cfg tgconsumer.Config
	var network, local, remote, ifname string
	var etherRemote macaddr.Flag
	var vlan, mtu int
	var cntInterval, duration time.Duration

	openTransport := func() (l3.Transport, error) {
		switch {
		case ifname != "":
			var ptc packettransport.Config
			ptc.Remote = etherRemote
			ptc.VLAN = vlan
			ptc.MTU = mtu
			return afpacket.NewTransport(ifname, ptc)
		case remote != "":
			dialer := sockettransport.Dialer{Config: sockettransport.Config{MTU: mtu}}
			return dialer.Dial(network, local, remote)
		}
		return nil, errNoFace
	}

	defineCommand(&cli.Command{
		Name:  "tgconsumer",
		Usage: "Traffic generator consumer: send Interests and measure Data/Nack replies.",
		Flags: []cli.Flag{
			&cli.GenericFlag{
				Name:     "config",
				Usage:    "Consumer configuration `YAML/JSON`, or @filename.",
				Value:    yamlflag.New(&cfg, []byte(tgconsumerSchema)),
				Required: true,
			},
			&cli.StringFlag{
				Name:        "network",
				Usage:       "Socket `network`: udp, tcp, or unix.",
				Value:       "udp",
				Destination: &network,
			},
			&cli.StringFlag{
				Name:        "local",
				Usage:       "Socket local `address`.",
				Destination: &local,
			},
			&cli.StringFlag{
				Name:        "remote",
				Usage:       "Socket remote `address`.",
				Destination: &remote,
			},
			&cli.StringFlag{
				Name:        "ether",
				Usage:       "Ethernet interface `name`; overrides socket options.",
				Destination: &ifname,
			},
			&cli.GenericFlag{
				Name:  "ether-remote",
				Usage: "Ethernet remote `MAC` address; default is NDN multicast.",
				Value: &etherRemote,
			},
			&cli.IntFlag{
				Name:        "vlan",
				Usage:       "Ethernet VLAN `ID`.",
				Destination: &vlan,
			},
			&cli.IntFlag{
				Name:        "mtu",
				Usage:       "Transport `MTU`; 0 uses the transport default.",
				Destination: &mtu,
			},
			&cli.DurationFlag{
				Name:        "cnt-interval",
				Usage:       "Counters printing `interval`.",
				Value:       time.Second,
				Destination: &cntInterval,
			},
			&cli.DurationFlag{
				Name:        "duration",
				Usage:       "Stop after `duration`; 0 runs until interrupted.",
				Destination: &duration,
			},
		},
		Action: func(c *cli.Context) (e error) {
			tr, e := openTransport()
			if e != nil {
				return cli.Exit(e, 2)
			}
			face, e := l3.NewFace(tr, l3.FaceConfig{})
			if e != nil {
				return cli.Exit(multierr.Append(e, tr.Close()), 1)
			}
			consumer, e := tgconsumer.New(face, cfg)
			if e != nil {
				close(face.Tx())
				return cli.Exit(e, 2)
			}
			defer consumer.Close()

			face.OnStateChange(func(st l3.TransportState) {
				logger.Info("transport state", zap.Stringer("state", st))
			})

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, unix.SIGINT, unix.SIGTERM)
			var timeout <-chan time.Time
			if duration > 0 {
				timeout = time.After(duration)
			}

			consumer.Launch()
			daemon.SdNotify(false, daemon.SdNotifyReady)
			logger.Info("consumer started",
				zap.Int("mtu", tr.MTU()),
				zap.Duration("interval", consumer.Interval()),
			)

			ticker := time.NewTicker(cntInterval)
			defer ticker.Stop()
			var prev tgconsumer.PacketCounters
		LOOP:
			for {
				select {
				case <-ticker.C:
					cnt := consumer.Counters().PacketCounters
					fmt.Fprintln(c.App.Writer, cnt, "+", subtract.Sub(cnt, prev))
					prev = cnt
				case sig := <-interrupt:
					logger.Info("stopping on signal", zap.Stringer("signal", sig))
					break LOOP
				case <-timeout:
					break LOOP
				}
			}

			daemon.SdNotify(false, daemon.SdNotifyStopping)
			e = consumer.StopDelay(100 * time.Millisecond)
			cnt := consumer.Counters()
			fmt.Fprintln(c.App.Writer, cnt)
			return multierr.Append(e, printJSON(c, struct {
				Consumer tgconsumer.Counters `json:"consumer"`
				Face     l3.FaceCounters     `json:"face"`
			}{cnt, face.Counters()}))
		},
	})
}
