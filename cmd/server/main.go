// Command server runs the citizen benefits portal: scheme catalog, profile
// and eligibility discovery, application lifecycle, payment settlement
// simulation, and the notification inbox.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"janseva/internal/application"
	"janseva/internal/application/adapters"
	applicationhandler "janseva/internal/application/handler"
	applicationmetrics "janseva/internal/application/metrics"
	"janseva/internal/citizen"
	citizenhandler "janseva/internal/citizen/handler"
	"janseva/internal/jwttoken"
	"janseva/internal/notification"
	notificationhandler "janseva/internal/notification/handler"
	notificationmetrics "janseva/internal/notification/metrics"
	"janseva/internal/payment"
	paymenthandler "janseva/internal/payment/handler"
	paymentmetrics "janseva/internal/payment/metrics"
	"janseva/internal/platform/config"
	"janseva/internal/platform/httpserver"
	"janseva/internal/platform/logger"
	"janseva/internal/platform/metrics"
	"janseva/internal/platform/middleware"
	"janseva/internal/platform/postgres"
	platformredis "janseva/internal/platform/redis"
	"janseva/internal/scheme"
	schemehandler "janseva/internal/scheme/handler"
	httptransport "janseva/internal/transport/http"
	"janseva/pkg/platform/audit"
	auditkafka "janseva/pkg/platform/audit/kafka"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage backends: SQL catalog and Redis inbox when configured,
	// in-memory otherwise.
	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}

	var schemeStore scheme.Store
	if db != nil {
		pgStore := scheme.NewPostgresStore(db)
		if err := pgStore.Schema(ctx); err != nil {
			log.Error("scheme schema migration failed", "error", err)
			os.Exit(1)
		}
		schemeStore = pgStore
		log.Info("scheme catalog backed by postgres")
	} else {
		schemeStore = scheme.NewInMemoryStore()
		log.Warn("DATABASE_URL not set, scheme catalog is in-memory")
	}

	rdb, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	var notificationStore notification.Store
	if rdb != nil {
		notificationStore = notification.NewRedisStore(rdb.Client)
		log.Info("notification inbox backed by redis")
	} else {
		notificationStore = notification.NewInMemoryStore()
		log.Warn("REDIS_URL not set, notification inbox is in-memory")
	}

	// Audit trail: always kept in memory for the admin surface, fanned out
	// to Kafka when brokers are configured.
	auditMemory := audit.NewInMemoryStore()
	auditSink := audit.Store(auditMemory)
	var kafkaStore *auditkafka.Store
	if len(cfg.KafkaBrokers) > 0 {
		kafkaStore, err = auditkafka.New(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("kafka audit sink failed", "error", err)
			os.Exit(1)
		}
		auditSink = audit.NewFanout(auditMemory, kafkaStore)
		log.Info("audit events published to kafka", "topic", cfg.KafkaAuditTopic)
	}
	auditor := audit.NewPublisher(auditSink, audit.WithAsyncBuffer(256))

	httpMetrics := metrics.New()

	// Domain services.
	schemeSvc := scheme.NewService(schemeStore, auditor)
	citizenSvc := citizen.NewService(citizen.NewInMemoryStore())
	notificationSvc := notification.NewService(notificationStore, notificationmetrics.New())

	paymentInitiator := adapters.NewPaymentInitiator()
	applicationSvc := application.NewService(
		application.NewInMemoryStore(),
		schemeSvc,
		notificationSvc,
		paymentInitiator,
		auditor,
		applicationmetrics.New(),
	)
	paymentSvc := payment.NewService(
		payment.NewInMemoryStore(),
		applicationSvc,
		schemeSvc,
		notificationSvc,
		auditor,
		paymentmetrics.New(),
		payment.WithSettleDelay(cfg.SettleDelay),
		payment.WithSuccessRate(cfg.SettleSuccessRate),
		payment.WithLogger(log),
	)
	paymentInitiator.Bind(paymentSvc)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	officerOnly := middleware.RequireOfficer(log)

	router := httptransport.NewRouter(log, httpMetrics, tokens,
		schemehandler.New(schemeSvc, log, officerOnly),
		citizenhandler.New(citizenSvc, schemeSvc, log),
		applicationhandler.New(applicationSvc, log, officerOnly),
		paymenthandler.New(paymentSvc, log),
		notificationhandler.New(notificationSvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting janseva server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
	}

	auditor.Close()
	if kafkaStore != nil {
		kafkaStore.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if db != nil {
		_ = db.Close()
	}
	log.Info("server stopped")
}
