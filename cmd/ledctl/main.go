// Command ledctl drives an LED's intensity with software PWM, reacting
// to three push-buttons and a potentiometer, and reports duty cycle over
// a serial line with an MQTT mirror.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/controller"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/fsm"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/hw"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/mqtt"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/pwm"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/sched"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/status"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/telemetry"
	"github.com/ramos-ahron/Led-Intensity-Controller/internal/web"
)

func main() {
	poll := flag.Duration("poll", controller.DefaultPollInterval, "Control loop interval")
	period := flag.Int("period", int(pwm.DefaultPeriod), "PWM frame length in fast ticks (1-255)")
	fastTick := flag.Duration("fast-tick", pwm.DefaultTickPeriod, "PWM comparator tick period")
	slowTick := flag.Duration("slow-tick", pwm.DefaultBlinkPeriod, "Blink half-cycle period")
	settle := flag.Duration("settle", fsm.DefaultSettleDelay, "Delay before shutting the output down in the off mode")
	pinLED := flag.Int("pin-led", hw.DefaultPinLED, "BCM pin number for the LED output")
	pinB0 := flag.Int("pin-b0", hw.DefaultPinButton0, "BCM pin number for button 0")
	pinB1 := flag.Int("pin-b1", hw.DefaultPinButton1, "BCM pin number for button 1")
	pinB2 := flag.Int("pin-b2", hw.DefaultPinButton2, "BCM pin number for button 2")
	adcPath := flag.String("adc", hw.DefaultAnalogPath, "IIO sysfs attribute for the potentiometer")
	serialDev := flag.String("serial", "/dev/serial0", `Serial device for telemetry ("stdout" writes to stdout)`)
	baud := flag.Int("baud", 9600, "Serial baud rate")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", `MQTT broker address ("off" disables the mirror)`)
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	printState := flag.Bool("print-state", false, "Print current inputs and exit")

	flag.Parse()

	if *period < 1 || *period > 255 {
		log.Fatalf("fatal: -period %d out of range (1-255)", *period)
	}

	cfg := config{
		poll:      *poll,
		period:    uint8(*period),
		fastTick:  *fastTick,
		slowTick:  *slowTick,
		settle:    *settle,
		pins:      [3]int{*pinB0, *pinB1, *pinB2},
		pinLED:    *pinLED,
		adcPath:   *adcPath,
		serialDev: *serialDev,
		baud:      *baud,
		broker:    *broker,
		httpAddr:  *httpAddr,
	}
	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

type config struct {
	poll      time.Duration
	period    uint8
	fastTick  time.Duration
	slowTick  time.Duration
	settle    time.Duration
	pins      [3]int
	pinLED    int
	adcPath   string
	serialDev string
	baud      int
	broker    string
	httpAddr  string
}

func run(cfg config, printState bool) error {
	gpioDev, err := hw.NewRealIO(cfg.pinLED, cfg.pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer gpioDev.Close()

	adc := hw.NewSysfsAnalog(cfg.adcPath)

	if printState {
		return printInputs(os.Stdout, gpioDev, adc, cfg.period)
	}

	tx, err := newTransmitter(cfg.serialDev, cfg.baud)
	if err != nil {
		return fmt.Errorf("init serial: %w", err)
	}
	defer tx.Close()

	var publisher *mqtt.RealPublisher
	if cfg.broker != "" && cfg.broker != "off" {
		publisher = mqtt.NewRealPublisher(cfg.broker)
		defer publisher.Close()
	}

	state := pwm.NewState(cfg.period)
	fast := sched.NewTickerSource()
	slow := sched.NewTickerSource()
	engine := pwm.NewEngine(state, gpioDev, fast, cfg.fastTick)
	blink := pwm.NewBlink(state, slow, cfg.slowTick)
	bright := pwm.NewBrightness(state, adc, engine)

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:     cfg.poll.Milliseconds(),
		FastTickUs: cfg.fastTick.Microseconds(),
		SlowTickMs: cfg.slowTick.Milliseconds(),
		SettleMs:   cfg.settle.Milliseconds(),
		Period:     cfg.period,
		Broker:     cfg.broker,
		HTTPPort:   cfg.httpAddr,
		SerialDev:  cfg.serialDev,
		AnalogPath: cfg.adcPath,
	})

	var machine *fsm.Machine
	var mirror telemetry.Mirror
	if publisher != nil {
		mirror = publisher
	}
	emitter := telemetry.NewEmitter(state, tx, mirror, func() string {
		return machine.Mode().String()
	})
	machine = fsm.NewMachine(fsm.Config{
		Period: cfg.period,
		Settle: cfg.settle,
		Bright: bright,
		Blink:  blink,
		Engine: engine,
		Telemetry: controller.TelemetryCounter{
			Emitter: emitter,
			Tracker: tracker,
		},
	})
	loop := controller.NewLoop(controller.Config{
		IO:       gpioDev,
		Machine:  machine,
		State:    state,
		Tracker:  tracker,
		Interval: cfg.poll,
	})

	if publisher != nil {
		publishSystem(publisher, "STARTUP", "", machine)
	}

	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.httpAddr)
	}

	log.Printf("started: poll=%v period=%d fast=%v slow=%v serial=%s broker=%s",
		cfg.poll, cfg.period, cfg.fastTick, cfg.slowTick, cfg.serialDev, cfg.broker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var reason string
	g.Go(func() error {
		select {
		case s := <-sigCh:
			log.Printf("received %v, shutting down", s)
			reason = signalName(s)
			cancel()
		case <-ctx.Done():
		}
		return nil
	})
	g.Go(func() error { return engine.Run(ctx) })
	g.Go(func() error { return blink.Run(ctx) })
	g.Go(func() error { return loop.Run(ctx) })

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	// Leave the pin low whatever mode we were in.
	blink.Stop()
	if stopErr := engine.Stop(); stopErr != nil {
		log.Printf("stop pwm: %v", stopErr)
	}

	if publisher != nil {
		tracker.SetMQTTConnected(publisher.IsConnected())
		publishSystem(publisher, "SHUTDOWN", reason, machine)
	}
	return err
}

// newTransmitter opens the telemetry channel. "stdout" is for running on
// a dev machine without a wired UART.
func newTransmitter(device string, baud int) (telemetry.Transmitter, error) {
	if device == "stdout" {
		return telemetry.NewWriterTransmitter(os.Stdout), nil
	}
	return telemetry.NewSerialTransmitter(device, baud)
}

func publishSystem(p *mqtt.RealPublisher, event, reason string, machine *fsm.Machine) {
	e := mqtt.SystemEvent{
		Timestamp: time.Now(),
		Event:     event,
		Reason:    reason,
		Mode:      machine.Mode().String(),
		Retained:  true,
	}
	if err := p.PublishSystem(e); err != nil {
		log.Printf("failed to publish %s event: %v", event, err)
	} else {
		log.Printf("published %s event", event)
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

// printInputs samples the buttons and the potentiometer once and prints
// them, for wiring checks.
func printInputs(w io.Writer, dev hw.IO, adc hw.Analog, period uint8) error {
	levels, err := dev.Buttons()
	if err != nil {
		return fmt.Errorf("read buttons: %w", err)
	}
	raw, err := adc.Read()
	if err != nil {
		return fmt.Errorf("read adc: %w", err)
	}
	for i, level := range levels {
		fmt.Fprintf(w, "B%d: %s\n", i, levelString(level))
	}
	fmt.Fprintf(w, "ADC: %d (duty %d/%d)\n", raw, uint32(raw)*uint32(period)/hw.AnalogMax, period)
	return nil
}

func levelString(high bool) string {
	if high {
		return "released"
	}
	return "pressed"
}
