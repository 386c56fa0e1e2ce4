// cslogixd is a headless gateway that polls tags from configured Logix
// controllers and republishes changed values to MQTT, Kafka, and Valkey,
// while exposing a session-gated HTTP API for ad-hoc reads and writes.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dhunt84971/cslogix/config"
	"github.com/dhunt84971/cslogix/kafka"
	"github.com/dhunt84971/cslogix/logging"
	"github.com/dhunt84971/cslogix/logix"
	"github.com/dhunt84971/cslogix/mqtt"
	"github.com/dhunt84971/cslogix/tui"
	"github.com/dhunt84971/cslogix/valkey"
	"github.com/dhunt84971/cslogix/web"
)

var (
	configPath = flag.String("config", config.DefaultPath(), "Path to configuration file")
	logDebug   = flag.String("log-debug", "", "Enable debug logging (protocol name, or 'all')")
	logFile    = flag.String("log", "debug.log", "Path to debug log file when -log-debug is set")
	runTUI     = flag.Bool("tui", false, "Launch the interactive tag browser instead of running headless")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if *logDebug != "" {
		dl, err := logging.NewDebugLogger(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to open debug log: %v\n", err)
		} else {
			filter := *logDebug
			if filter == "all" {
				filter = ""
			}
			dl.SetFilter(filter)
			logging.SetGlobalDebugLogger(dl)
			defer dl.Close()
		}
	}

	poller := newPoller()

	mqttMgr := mqtt.NewManager()
	mqttMgr.LoadFromConfig(cfg.Namespace, cfg.MQTT)
	mqttMgr.SetWriteHandler(poller.writeTag)
	mqttMgr.SetWriteValidator(poller.isWritable)
	mqttMgr.SetTagTypeLookup(poller.tagType)

	valkeyMgr := valkey.NewManager()
	valkeyMgr.LoadFromConfig(cfg.Valkey, cfg.Namespace)
	valkeyMgr.SetWriteHandler(poller.writeTag)
	valkeyMgr.SetWriteValidator(poller.isWritable)
	valkeyMgr.SetTagTypeLookup(poller.tagType)

	kafkaMgr := kafka.NewManager()
	for i := range cfg.Kafka {
		kc := cfg.Kafka[i]
		kafkaMgr.AddCluster(&kafka.Config{
			Name:             kc.Name,
			Enabled:          kc.Enabled,
			Brokers:          kc.Brokers,
			UseTLS:           kc.UseTLS,
			TLSSkipVerify:    kc.TLSSkipVerify,
			SASLMechanism:    kafka.SASLMechanism(kc.SASLMechanism),
			Username:         kc.Username,
			Password:         kc.Password,
			RequiredAcks:     kc.RequiredAcks,
			MaxRetries:       kc.MaxRetries,
			RetryBackoff:     kc.RetryBackoff,
			PublishChanges:   kc.PublishChanges,
			Selector:         kc.Selector,
			AutoCreateTopics: kc.AutoCreateTopics == nil || *kc.AutoCreateTopics,
			EnableWriteback:  kc.EnableWriteback,
			ConsumerGroup:    kc.ConsumerGroup,
			WriteMaxAge:      kc.WriteMaxAge,
		}, cfg.Namespace)
	}
	kafkaMgr.SetWriteHandler(poller.writeTag)
	kafkaMgr.SetWriteValidator(poller.isWritable)
	kafkaMgr.SetTagTypeLookup(poller.tagType)

	poller.setPublishers(mqttMgr, valkeyMgr, kafkaMgr)

	plcRegistry := web.NewPLCRegistry()
	var webServer *web.Server
	if cfg.Web.Enabled {
		webServer = web.NewServer(&cfg.Web, plcRegistry, cfg.FindWebUser)
		if err := webServer.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to start web server: %v\n", err)
			webServer = nil
		} else {
			fmt.Printf("Web server at %s\n", webServer.Address())
		}
	}

	for i := range cfg.PLCs {
		plcCfg := &cfg.PLCs[i]
		if !plcCfg.Enabled {
			continue
		}
		client, err := connectPLC(plcCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to connect to %s (%s): %v\n", plcCfg.Name, plcCfg.Address, err)
			continue
		}
		poller.addPLC(plcCfg, client)
		plcRegistry.Put(plcCfg.Name, client)
		fmt.Printf("Connected to %s at %s\n", plcCfg.Name, plcCfg.Address)
	}

	mqttMgr.StartAll()
	valkeyMgr.StartAll()
	go kafkaMgr.ConnectEnabled()

	go poller.run(cfg.PollRate)
	go healthLoop(poller, valkeyMgr, kafkaMgr)

	if *runTUI {
		browser := tui.NewApp(plcRegistry.List(), plcRegistry.Get)
		if err := browser.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "tag browser exited: %v\n", err)
		}
	} else {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		fmt.Printf("\nReceived %v, shutting down...\n", sig)
	}

	poller.stop()
	mqttMgr.StopAll()
	valkeyMgr.StopAll()
	kafkaMgr.StopAll()
	if webServer != nil {
		webServer.Stop()
	}
	poller.disconnectAll()
}

func connectPLC(cfg *config.PLCConfig) (*logix.Client, error) {
	opts := []logix.Option{}
	if len(cfg.Route) > 0 {
		opts = append(opts, logix.WithRoutePath(cfg.Route))
	} else if !cfg.Micro800 {
		opts = append(opts, logix.WithSlot(cfg.Slot))
	}
	return logix.Connect(cfg.Address, opts...)
}

// healthLoop periodically republishes PLC connection health to the Valkey
// and Kafka publishers (MQTT has no health channel), independent of the tag
// poll cadence.
func healthLoop(p *poller, valkeyMgr *valkey.Manager, kafkaMgr *kafka.Manager) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	publish := func() {
		p.mu.RLock()
		defer p.mu.RUnlock()
		for name, pp := range p.plcs {
			if !pp.cfg.IsHealthCheckEnabled() {
				continue
			}
			online := pp.client.IsConnected()
			status := "connected"
			if !online {
				status = "disconnected"
			}
			valkeyMgr.PublishHealth(name, "logix", online, status, "")
			kafkaMgr.PublishHealth(name, "logix", online, status, "")
		}
	}

	publish()
	for range ticker.C {
		publish()
	}
}

// poller periodically reads each configured PLC's selected tags and
// forwards changed values to the publish managers.
type poller struct {
	mu       sync.RWMutex
	plcs     map[string]*polledPLC
	stopChan chan struct{}

	mqttMgr   *mqtt.Manager
	valkeyMgr *valkey.Manager
	kafkaMgr  *kafka.Manager
}

type polledPLC struct {
	cfg        *config.PLCConfig
	client     *logix.Client
	lastValues map[string]interface{}
}

func newPoller() *poller {
	return &poller{
		plcs:     make(map[string]*polledPLC),
		stopChan: make(chan struct{}),
	}
}

func (p *poller) setPublishers(m *mqtt.Manager, v *valkey.Manager, k *kafka.Manager) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mqttMgr = m
	p.valkeyMgr = v
	p.kafkaMgr = k
}

func (p *poller) addPLC(cfg *config.PLCConfig, client *logix.Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plcs[cfg.Name] = &polledPLC{cfg: cfg, client: client, lastValues: make(map[string]interface{})}
}

func (p *poller) disconnectAll() {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, pp := range p.plcs {
		pp.client.Close()
	}
}

func (p *poller) stop() {
	close(p.stopChan)
}

func (p *poller) run(rate time.Duration) {
	if rate <= 0 {
		rate = time.Second
	}
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.pollOnce()
		}
	}
}

func (p *poller) pollOnce() {
	p.mu.RLock()
	plcs := make([]*polledPLC, 0, len(p.plcs))
	for _, pp := range p.plcs {
		plcs = append(plcs, pp)
	}
	mqttMgr, valkeyMgr, kafkaMgr := p.mqttMgr, p.valkeyMgr, p.kafkaMgr
	p.mu.RUnlock()

	for _, pp := range plcs {
		names := make([]string, 0, len(pp.cfg.Tags))
		sels := make([]config.TagSelection, 0, len(pp.cfg.Tags))
		for _, t := range pp.cfg.Tags {
			if t.Enabled {
				names = append(names, t.Name)
				sels = append(sels, t)
			}
		}
		if len(names) == 0 {
			continue
		}

		values, err := pp.client.Read(names...)
		if err != nil {
			logging.DebugError("logix", "poll "+pp.cfg.Name, err)
			continue
		}

		for i, v := range values {
			if v.Error != nil {
				continue
			}
			sel := sels[i]
			decoded := v.GoValueDecoded(pp.client)

			if pp.lastValues[v.Name] == decoded {
				continue
			}
			pp.lastValues[v.Name] = decoded

			typeName := v.TypeName()
			if mqttMgr != nil && !sel.NoMQTT {
				mqttMgr.Publish(pp.cfg.Name, v.Name, typeName, decoded, false)
			}
			if valkeyMgr != nil && !sel.NoValkey {
				valkeyMgr.Publish(pp.cfg.Name, v.Name, sel.Alias, "", typeName, decoded, sel.Writable)
			}
			if kafkaMgr != nil && !sel.NoKafka {
				kafkaMgr.Publish(pp.cfg.Name, v.Name, sel.Alias, "", typeName, decoded, sel.Writable, false)
			}
		}
	}
}

func (p *poller) isWritable(plcName, tagName string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pp, ok := p.plcs[plcName]
	if !ok {
		return false
	}
	for _, t := range pp.cfg.Tags {
		if t.Name == tagName && t.Writable {
			return true
		}
	}
	return false
}

func (p *poller) tagType(plcName, tagName string) uint16 {
	p.mu.RLock()
	pp, ok := p.plcs[plcName]
	p.mu.RUnlock()
	if !ok {
		return 0
	}
	values, err := pp.client.Read(tagName)
	if err != nil || len(values) != 1 || values[0].Error != nil {
		return 0
	}
	return values[0].DataType
}

func (p *poller) writeTag(plcName, tagName string, value interface{}) error {
	p.mu.RLock()
	pp, ok := p.plcs[plcName]
	p.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown PLC %q", plcName)
	}
	return pp.client.Write(tagName, value)
}
