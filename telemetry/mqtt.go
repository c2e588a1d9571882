// Package telemetry streams simulated series to an MQTT broker so external
// dashboards can consume runs the same way they consume live sensor feeds.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/pumpsim-xyz/go-pumpsim/results"
)

// DefaultTopicPrefix roots all published topics.
const DefaultTopicPrefix = "pumpsim"

// Message represents an outgoing MQTT message.
type Message struct {
	Topic   string
	Payload []byte
	QoS     byte
	Retain  bool
}

// SamplePayload is the JSON shape of one published sample.
type SamplePayload struct {
	RunID string  `json:"runId"`
	Case  string  `json:"case"`
	Time  float64 `json:"time"`
	Flow  float64 `json:"flow"`
	Power float64 `json:"power"`
}

// RunPayload is the JSON shape of the run announcement message.
type RunPayload struct {
	RunID      string   `json:"runId"`
	StartFlow  float64  `json:"startFlow"`
	TargetFlow float64  `json:"targetFlow"`
	Cases      []string `json:"cases"`
	Samples    int      `json:"samples"`
}

// Publisher publishes run telemetry to a broker.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// NewPublisher connects to the broker and returns a publisher.
func NewPublisher(brokerURL, clientID, topicPrefix string) (*Publisher, error) {
	if topicPrefix == "" {
		topicPrefix = DefaultTopicPrefix
	}

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", brokerURL, err)
	}

	return &Publisher{client: client, topicPrefix: topicPrefix}, nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

// PublishRun announces a run and streams every case's samples, one message
// per sample on a per-case topic.
func (p *Publisher) PublishRun(res *results.Results) error {
	for _, msg := range BuildRunMessages(res, p.topicPrefix) {
		token := p.client.Publish(msg.Topic, msg.QoS, msg.Retain, msg.Payload)
		token.Wait()
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish to %s: %w", msg.Topic, err)
		}
	}
	log.Printf("published run %s (%d cases)", res.Metadata.RunID, len(res.Cases))
	return nil
}

// BuildRunMessages assembles the message sequence for a run: one retained
// announcement, then every sample of every case. Split out from publishing
// so the wire shape is testable without a broker.
func BuildRunMessages(res *results.Results, topicPrefix string) []Message {
	if topicPrefix == "" {
		topicPrefix = DefaultTopicPrefix
	}

	labels := make([]string, 0, len(res.Cases))
	samples := 0
	for _, c := range res.Cases {
		labels = append(labels, c.Label)
		samples += len(c.Series)
	}

	announce, _ := json.Marshal(RunPayload{
		RunID:      res.Metadata.RunID,
		StartFlow:  res.Scenario.StartFlow,
		TargetFlow: res.Scenario.TargetFlow,
		Cases:      labels,
		Samples:    samples,
	})

	msgs := []Message{{
		Topic:   topicPrefix + "/runs/" + res.Metadata.RunID,
		Payload: announce,
		QoS:     1,
		Retain:  true,
	}}

	for _, c := range res.Cases {
		topic := topicPrefix + "/runs/" + res.Metadata.RunID + "/" + c.Label
		for _, s := range c.Series {
			payload, _ := json.Marshal(SamplePayload{
				RunID: res.Metadata.RunID,
				Case:  c.Label,
				Time:  s.Time,
				Flow:  s.Flow,
				Power: s.Power,
			})
			msgs = append(msgs, Message{Topic: topic, Payload: payload, QoS: 0})
		}
	}

	return msgs
}
