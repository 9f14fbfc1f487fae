package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/common/database"
	"github.com/kaigoApp/kaigo-app/internal/common/logger"
	commonmqtt "github.com/kaigoApp/kaigo-app/internal/common/mqtt"
	commonredis "github.com/kaigoApp/kaigo-app/internal/common/redis"
	"github.com/kaigoApp/kaigo-app/internal/config"
	"github.com/kaigoApp/kaigo-app/internal/export"
	httpapi "github.com/kaigoApp/kaigo-app/internal/http"
	"github.com/kaigoApp/kaigo-app/internal/migrations"
	"github.com/kaigoApp/kaigo-app/internal/notify"
	"github.com/kaigoApp/kaigo-app/internal/repository"
	"github.com/kaigoApp/kaigo-app/internal/service"
	"github.com/kaigoApp/kaigo-app/internal/store"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger 还没建好
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.MustNewLogger(cfg.Log.Level, cfg.Log.Format, "kaigo-data")
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DBDriver, &cfg.Database, &cfg.SQLite)
	if err != nil {
		log.Fatal("Failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), time.Minute)
	err = migrations.Up(migrateCtx, db, cfg.DBDriver, log)
	migrateCancel()
	if err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	st := repository.NewStore(db, repository.ParseDialect(cfg.DBDriver))

	var kv store.KV = store.NewMemoryKV()
	var sinks []notify.Sink

	// Redis：画面选择状态 + 申し送り事件流；连不上则退回内存
	if cfg.Redis.Enabled {
		rc, err := commonredis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory selection store", zap.Error(err))
		} else {
			defer func() { _ = rc.Close() }()
			kv = store.NewRedisKV(rc)
			if cfg.Notify.HandoverStream != "" {
				sinks = append(sinks, notify.NewStreamSink(rc, cfg.Notify.HandoverStream))
			}
		}
	}

	if cfg.MQTT.Enabled {
		mc, err := commonmqtt.NewClient(&cfg.MQTT, log)
		if err != nil {
			log.Warn("MQTT unavailable, handover events will not be published", zap.Error(err))
		} else {
			defer mc.Disconnect()
			sinks = append(sinks, notify.NewMQTTSink(mc, cfg.MQTT.Topic, cfg.MQTT.QoS))
		}
	}

	if cfg.Notify.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhookSink(cfg.Notify.WebhookURL))
	}

	notifier := notify.NewNotifier(log, 0, sinks...)
	log.Info("Handover notifier ready", zap.Strings("sinks", notifier.Sinks()))

	opts := service.Options{OpTimeout: cfg.OpTimeout, Notifier: notifier}
	directory := service.NewDirectoryService(st, log, opts)
	records := service.NewRecordService(st, log, opts)
	handovers := service.NewHandoverService(st, log, opts)
	acks := service.NewAcknowledgementService(st, log, opts)

	router := httpapi.NewRouter(log)
	router.RegisterDirectoryRoutes(httpapi.NewDirectoryHandler(directory, log))
	router.RegisterRecordRoutes(httpapi.NewRecordHandler(records, log))
	router.RegisterHandoverRoutes(httpapi.NewHandoverHandler(handovers, acks, log))
	router.RegisterExportRoutes(httpapi.NewExportHandler(export.NewCollector(st, log), log))
	router.RegisterSelectionRoutes(httpapi.NewSelectionHandler(store.NewSelectionStore(kv), log))
	router.RegisterHealth(db.PingContext)

	srv := service.NewServer(cfg.HTTP.Addr, router.Handler(), log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server stopped", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server", zap.Error(err))
	}
}
