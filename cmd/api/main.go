package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hugohenrick/go-chat/internal/infrastructure/config"
	"github.com/hugohenrick/go-chat/pkg/logger"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro na configuração: %v", err)
	}

	lg := logger.NewLogger()

	// Criar aplicação
	app, err := NewApp(cfg, lg)
	if err != nil {
		log.Fatalf("Erro ao criar aplicação: %v", err)
	}
	defer app.Close()

	// Iniciar o loop de eventos do canal de tempo real
	go app.Hub().Run()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: app.Router(),
	}

	serverErr := make(chan error, 1)
	go func() {
		lg.Info("servidor iniciado", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		lg.Info("sinal de encerramento recebido")
	case err := <-serverErr:
		// Falha irrecuperável de inicialização (ex.: porta ocupada)
		log.Fatalf("Erro no servidor HTTP: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("erro ao encerrar o servidor HTTP", "err", err)
	}

	if err := app.Hub().Shutdown(cfg.ShutdownTimeout); err != nil {
		lg.Warn("timeout ao encerrar conexões do chat", "err", err)
	}
}
