package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hugohenrick/go-chat/docs"
	"github.com/hugohenrick/go-chat/internal/adapter/api/controller"
	"github.com/hugohenrick/go-chat/internal/adapter/api/route"
	"github.com/hugohenrick/go-chat/internal/adapter/repository"
	"github.com/hugohenrick/go-chat/internal/chat"
	"github.com/hugohenrick/go-chat/internal/domain/message"
	"github.com/hugohenrick/go-chat/internal/domain/user"
	"github.com/hugohenrick/go-chat/internal/infrastructure/config"
	"github.com/hugohenrick/go-chat/internal/infrastructure/database"
	"github.com/hugohenrick/go-chat/pkg/logger"
	"github.com/hugohenrick/go-chat/pkg/session"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App representa a aplicação e suas dependências, criadas na inicialização
// e liberadas no encerramento
type App struct {
	config            *config.Config
	log               logger.Logger
	router            *gin.Engine
	db                *pgxpool.Pool
	hub               *chat.Hub
	dispatcher        *chat.Dispatcher
	sessions          *session.Service
	userRepository    user.Repository
	messageRepository message.Repository
	authController    *controller.AuthController
	chatController    *controller.ChatController
}

// NewApp cria uma nova instância do aplicativo
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	// Configurar banco de dados
	db, err := database.NewPostgresDB()
	if err != nil {
		if db == nil {
			return nil, err
		}
		// Banco fora do ar não derruba o processo; as operações seguintes
		// tentam de novo e falham individualmente até ele voltar
		log.Error("banco de dados indisponível na inicialização", "err", err)
	}

	// Criar repositórios
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Criar serviço de sessão
	sessions, err := session.NewService(cfg.SessionSecret, cfg.SessionDuration)
	if err != nil {
		return nil, err
	}

	// Criar hub e dispatcher do canal de tempo real
	hub := chat.NewHub(log)
	dispatcher := chat.NewDispatcher(messageRepo, hub, log)

	// Criar controllers
	authController := controller.NewAuthController(userRepo, sessions, log)
	chatController := controller.NewChatController(messageRepo, hub, dispatcher, cfg.AllowedOrigins, cfg.MaxMessageSize, log)

	// Configurar router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	router.LoadHTMLGlob("templates/*.html")

	a := &App{
		config:            cfg,
		log:               log,
		router:            router,
		db:                db,
		hub:               hub,
		dispatcher:        dispatcher,
		sessions:          sessions,
		userRepository:    userRepo,
		messageRepository: messageRepo,
		authController:    authController,
		chatController:    chatController,
	}

	a.setupRoutes()

	return a, nil
}

// setupRoutes configura as rotas da aplicação
func (a *App) setupRoutes() {
	// Health check
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.SetupAuthRoutes(a.router, a.authController, a.sessions)
	route.SetupChatRoutes(a.router, a.chatController, a.authController, a.sessions)

	// Documentação da API
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// corsConfig monta a configuração de CORS a partir das origens permitidas
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// Router retorna o router da aplicação
func (a *App) Router() *gin.Engine {
	return a.router
}

// Hub retorna o hub do canal de tempo real
func (a *App) Hub() *chat.Hub {
	return a.hub
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
