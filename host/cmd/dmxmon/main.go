package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/codewriterbv/DMX512-Pico/dmx"
	"github.com/codewriterbv/DMX512-Pico/host/serial"
	"github.com/codewriterbv/DMX512-Pico/host/telemetry"
)

var (
	device   = flag.String("device", "/dev/ttyUSB0", "Serial device of the RS-485 adapter")
	stopBits = flag.Int("stopbits", 2, "Stop bits (2 per DMX512, 1 for adapters that cannot do 2)")
	channels = flag.Int("channels", 16, "Number of channels to print (1-512)")
	probe    = flag.Bool("probe", false, "Run the wiring probe and exit")
	mqttURL  = flag.String("mqtt", "", "MQTT broker URL for telemetry (empty = disabled)")
	prefix   = flag.String("prefix", "dmx/", "MQTT topic prefix")
)

// monoClock derives microsecond timestamps from the runtime's
// monotonic clock.
type monoClock struct {
	start time.Time
}

func (c monoClock) Micros() uint64 {
	return uint64(time.Since(c.start).Microseconds())
}

func main() {
	flag.Parse()
	if *channels < 1 || *channels > dmx.ChannelsPerFrame {
		fmt.Fprintln(os.Stderr, "Error: -channels must be 1..512")
		os.Exit(1)
	}

	dmx.SetStatusWriter(func(s string) { fmt.Println(s) })

	clk := monoClock{start: time.Now()}
	drv := serial.NewDriver(*device)
	defer drv.Close()

	if *probe {
		if _, err := dmx.RunProbe(drv, clk, 10*1000*1000); err != nil {
			fmt.Fprintf(os.Stderr, "Error: probe failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	err := drv.Configure(dmx.UARTConfig{BaudRate: dmx.BaudRate, StopBits: uint8(*stopBits)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rx := dmx.NewReceiver()
	mon := dmx.NewMonitor(drv, clk, rx)

	var pub *telemetry.Publisher
	if *mqttURL != "" {
		pub, err = telemetry.NewPublisher(*mqttURL, *prefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: mqtt connect failed: %v\n", err)
			os.Exit(1)
		}
		defer pub.Close()

		mon.OnLinkUp = func() { pub.PublishEvent("link_up") }
		mon.OnLinkDown = func() { pub.PublishEvent("link_down") }
	}

	fmt.Printf("Listening for DMX512 on %s (8N%d at %d baud)\n", *device, *stopBits, dmx.BaudRate)

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)

	poll := time.NewTicker(time.Millisecond)
	defer poll.Stop()
	report := time.NewTicker(time.Second)
	defer report.Stop()

	vals := make([]byte, *channels)
	for {
		select {
		case <-interrupted:
			return

		case <-poll.C:
			mon.Poll()
			mon.Tick()

		case <-report.C:
			connected := rx.Connected(clk.Micros())
			if connected {
				rx.Channels(vals, 1)
				fmt.Printf("ch 1-%d:", *channels)
				for _, v := range vals {
					fmt.Printf(" %3d", v)
				}
				fmt.Println()
			}
			if pub != nil {
				if err := pub.PublishStatus(connected, rx.Stats()); err != nil {
					fmt.Fprintf(os.Stderr, "mqtt publish failed: %v\n", err)
				}
			}
		}
	}
}
