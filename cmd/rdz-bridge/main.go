// cmd/rdz-bridge/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/rdz-bridge/internal/api"
	"github.com/tamzrod/rdz-bridge/internal/bridge"
	"github.com/tamzrod/rdz-bridge/internal/config"
	"github.com/tamzrod/rdz-bridge/internal/device"
	"github.com/tamzrod/rdz-bridge/internal/engine"
	"github.com/tamzrod/rdz-bridge/internal/metrics"
	"github.com/tamzrod/rdz-bridge/internal/state"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: rdz-bridge <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	b := cfg.Bridge
	ctx := context.Background()

	// --------------------
	// Device + engine
	// --------------------

	dev := device.New(b.Host, b.Port)
	defer dev.Close()

	eng := engine.New(dev, b.ZoneTable())
	eng.OnSyncError = func(realID, virtualID int, err error) {
		metrics.SyncWriteFailed()
	}

	metrics.Register()

	if err := eng.Probe(); err != nil {
		log.Printf("device: initial probe failed: %v (will retry on poll)", err)
	}

	// --------------------
	// MQTT bridge
	// --------------------

	br := bridge.New(eng, b.Host, b.Mqtt.TopicPrefix)

	mqttOpts := mqtt.NewClientOptions().
		AddBroker(b.Mqtt.Broker).
		SetUsername(b.Mqtt.Username).
		SetPassword(b.Mqtt.Password).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(client mqtt.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})
	// Subscriptions live in the connect handler so they survive reconnects.
	mqttOpts.SetOnConnectHandler(func(client mqtt.Client) {
		br.Subscribe(client)
	})

	mqttClient := mqtt.NewClient(mqttOpts)
	if t := mqttClient.Connect(); t.Wait() && t.Error() != nil {
		log.Fatalf("mqtt: connect: %v", t.Error())
	}

	if err := br.RegisterEntities(mqttClient); err != nil {
		log.Fatalf("mqtt: discovery registration: %v", err)
	}

	// --------------------
	// HTTP state + metrics
	// --------------------

	router := httprouter.New()
	router.GET("/state", api.State(eng))
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	go func() {
		log.Printf("http: listening on %s", b.HTTP.Listen)
		if err := http.ListenAndServe(b.HTTP.Listen, router); err != nil {
			log.Fatalf("http: %v", err)
		}
	}()

	// --------------------
	// Poll loop
	// --------------------

	interval := time.Duration(b.PollIntervalMs) * time.Millisecond

	eng.Run(ctx, interval, func(snap *state.Snapshot, err error, d time.Duration) {
		metrics.ObserveCycle(snap, err, d)
		if err == nil {
			br.PublishState(mqttClient, snap)
		}
	})
}
