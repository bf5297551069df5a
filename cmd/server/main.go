package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Atharva2908/task-manager/internal/api"
	"github.com/Atharva2908/task-manager/internal/api/handlers"
	"github.com/Atharva2908/task-manager/internal/backend"
	"github.com/Atharva2908/task-manager/internal/config"
	"github.com/Atharva2908/task-manager/internal/infrastructure/auth"
	"github.com/Atharva2908/task-manager/internal/infrastructure/client"
	"github.com/Atharva2908/task-manager/internal/usecase"
	"github.com/Atharva2908/task-manager/internal/worker"
)

func main() {
	var wg sync.WaitGroup

	cfg := config.Load()

	backendClient := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey)

	// RabbitMQ is optional: without it, mutations simply skip the audit
	// trail
	var auditPublisher usecase.AuditPublisher
	var rabbitMQ *client.RabbitMQClient
	if cfg.RabbitMQ.URL != "" {
		// the worker authenticates every forwarded record with this token;
		// without it each message would be rejected with a 401
		if cfg.Backend.ServiceToken == "" {
			log.Fatal("BACKEND_SERVICE_TOKEN is required when RABBITMQ_URL is set")
		}

		var err error
		rabbitMQ, err = client.NewRabbitMQClient(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer rabbitMQ.Close()
		auditPublisher = rabbitMQ
		log.Println("connected to RabbitMQ")
	}

	taskService := usecase.NewTaskService(backendClient, auditPublisher)
	timeService := usecase.NewTimeTrackingService(backendClient)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if rabbitMQ != nil {
		auditWorker := worker.NewAuditWorker(rabbitMQ, backendClient, cfg.Backend.ServiceToken)
		wg.Add(1)
		go func() {
			defer wg.Done()
			auditWorker.Start(workerCtx)
		}()
	}

	router := api.NewRouter(api.Handlers{
		Tasks:         handlers.NewTaskHandler(taskService),
		TimeLogs:      handlers.NewTimeLogHandler(timeService),
		Users:         handlers.NewUserHandler(backendClient),
		Comments:      handlers.NewCommentHandler(backendClient),
		Notifications: handlers.NewNotificationHandler(backendClient),
	}, jwtManager)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("server listening on :%s (backend %s)", cfg.Server.Port, cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	}()

	waitForShutdown(srv, workerCancel)
	wg.Wait()
	log.Println("shutdown complete")
}

func waitForShutdown(srv *http.Server, workerCancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	log.Println("shutting down...")

	workerCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}
