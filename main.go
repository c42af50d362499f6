package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	world := newWorld(defaultPlanets())
	metrics := NewMetrics()
	hub := newHub(world, cfg.BroadcastRate, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go (&clock{world: world, tickRate: cfg.TickRate, metrics: metrics}).Run(ctx)

	if cfg.TelemetryEnabled {
		sink := newKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer sink.Close()
		publisher := &telemetryPublisher{
			world:    world,
			sink:     sink,
			interval: cfg.TelemetryInterval,
			metrics:  metrics,
		}
		go publisher.Run(ctx)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("/auth-api-url", withCORS(func(w http.ResponseWriter, r *http.Request) {
		payload := apiURLs{
			BackendURL:   cfg.BackendURL,
			WebsocketURL: cfg.WebsocketURL,
		}
		data, err := json.Marshal(payload)
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade failed: %v", err)
			return
		}

		sess, err := hub.Connect(ctx, conn)
		if err != nil {
			log.Printf("failed to open session: %v", err)
			conn.Close()
			return
		}

		log.Printf("websocket opened, ship %s", sess.shipID)
		hub.runRead(sess)
	})

	log.Printf("server listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// withCORS applies the permissive policy the browser client needs and
// answers preflight requests directly.
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}
