package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/23121005-sketch/D-arlet/config"
	"github.com/23121005-sketch/D-arlet/internal/cache"
	"github.com/23121005-sketch/D-arlet/internal/events"
	"github.com/23121005-sketch/D-arlet/internal/hashing"
	"github.com/23121005-sketch/D-arlet/internal/migrate"
	"github.com/23121005-sketch/D-arlet/internal/notifier"
	"github.com/23121005-sketch/D-arlet/internal/repository"
	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/token"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/router"
	"github.com/23121005-sketch/D-arlet/pkg/database"
	"github.com/23121005-sketch/D-arlet/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()
	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.MigrateDB(ctx, db, log, migrate.DefaultMigrateOptions()); err != nil {
		log.Fatal("migración fallida", zap.Error(err))
	}

	repo := repository.New(db)

	var sessions service.SessionCache = cache.Noop{}
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("redis habilitado pero inaccesible", zap.Error(err))
		}
		defer rc.Close()
		sessions = rc
	} else {
		log.Info("redis deshabilitado, sin rate limit ni lista negra de tokens")
	}

	hub := events.NewHub()
	var bus service.EventBus = hub
	if cfg.Kafka.Enabled {
		producer := events.NewCambioProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		bus = producer

		consumer := events.NewCambioConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, hub, log)
		defer consumer.Close()
		go func() {
			if err := consumer.Run(ctx); err != nil {
				log.Error("consumer de cambios terminó con error", zap.Error(err))
			}
		}()
	} else {
		log.Info("kafka deshabilitado, los cambios se reparten solo dentro del proceso")
	}

	mailer, err := notifier.NewEmailSender(notifier.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal("inicializar el envío de correos", zap.Error(err))
	}

	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.AccessExp)
	hasher := hashing.NewBcrypt(0)
	audit := service.NewAuditWriter(repo.Auditoria, log)

	pedidoSvc := service.NewPedidoService(repo.Pedidos, repo.PedidoItems, audit, bus, log)
	cocinaSvc := service.NewCocinaService(repo.Pedidos, pedidoSvc)
	reservaSvc := service.NewReservaService(repo.Reservas, repo.Mesas, audit, bus, log)
	reclamacionSvc := service.NewReclamacionService(repo.Reclamaciones, audit, mailer, bus, log)
	empleadoSvc := service.NewEmpleadoService(repo.Empleados, hasher, tokens, sessions, audit, log)
	auditSvc := service.NewAuditService(repo.Auditoria)

	r := router.Router(router.Deps{
		Pedidos:       pedidoSvc,
		Cocina:        cocinaSvc,
		Reservas:      reservaSvc,
		Reclamaciones: reclamacionSvc,
		Empleados:     empleadoSvc,
		Auditoria:     auditSvc,
		Tokens:        tokens,
		Sessions:      sessions,
		Hub:           hub,
		Log:           log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("servidor HTTP escuchando", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("servidor HTTP cayó", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("señal de apagado recibida, cerrando")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("apagado del servidor HTTP", zap.Error(err))
	}
}
