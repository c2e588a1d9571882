package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pumpsim-xyz/go-pumpsim/results"
	"github.com/pumpsim-xyz/go-pumpsim/telemetry"
)

func publish(args []string) error {
	fs := flag.NewFlagSet("publish", flag.ExitOnError)
	broker := fs.String("broker", "", "MQTT broker URL (default: PUMPSIM_MQTT_BROKER)")
	clientID := fs.String("client-id", "pumpsim", "MQTT client ID")
	prefix := fs.String("prefix", telemetry.DefaultTopicPrefix, "Topic prefix")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pumpsim publish <results.json> [options]

Stream a run's series to an MQTT broker, one message per sample on a
per-case topic, plus a retained run announcement.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("results file required")
	}

	url := *broker
	if url == "" {
		url = envOr("PUMPSIM_MQTT_BROKER", "")
	}
	if url == "" {
		return fmt.Errorf("--broker or PUMPSIM_MQTT_BROKER required")
	}

	res, err := results.ReadJSON(fs.Arg(0))
	if err != nil {
		return err
	}

	pub, err := telemetry.NewPublisher(url, *clientID, *prefix)
	if err != nil {
		return err
	}
	defer pub.Close()

	if err := pub.PublishRun(res); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Run %s published to %s\n", res.Metadata.RunID, url)
	return nil
}
