// Package telemetry publishes DMX link status over MQTT so reception
// health can be watched from anywhere on the network.
package telemetry

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/codewriterbv/DMX512-Pico/dmx"
)

// Publisher publishes link events and reception statistics to an
// MQTT broker.
type Publisher struct {
	client paho.Client
	prefix string
}

// linkStatus is the retained status payload.
type linkStatus struct {
	Connected     bool   `json:"connected"`
	Frames        uint32 `json:"frames"`
	Breaks        uint32 `json:"breaks"`
	BadStartCodes uint32 `json:"bad_start_codes"`
	OverrunBytes  uint32 `json:"overrun_bytes"`
	Timestamp     int64  `json:"timestamp"`
}

// NewPublisher connects to the broker. The client identity is derived
// from the machine ID so restarts keep a stable session name.
func NewPublisher(brokerURL, prefix string) (*Publisher, error) {
	clientID := "dmxmon-"
	if id, err := machineid.ID(); err == nil {
		clientID += id
	} else {
		clientID += strconv.FormatInt(time.Now().Unix(), 10)
	}

	opts := paho.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := paho.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}

	return &Publisher{client: client, prefix: prefix}, nil
}

// PublishStatus publishes a retained status snapshot.
func (p *Publisher) PublishStatus(connected bool, s dmx.Stats) error {
	payload, err := json.Marshal(linkStatus{
		Connected:     connected,
		Frames:        s.Frames,
		Breaks:        s.Breaks,
		BadStartCodes: s.BadStartCodes,
		OverrunBytes:  s.OverrunBytes,
		Timestamp:     time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	token := p.client.Publish(p.prefix+"status", 0, true, payload)
	token.Wait()
	return token.Error()
}

// PublishEvent publishes a non-retained link transition event,
// e.g. "link_up" or "link_down".
func (p *Publisher) PublishEvent(name string) error {
	token := p.client.Publish(p.prefix+"events", 0, false, name)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
