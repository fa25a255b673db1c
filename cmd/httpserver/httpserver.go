// Package httpserver manages server creation and api routing.
package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-bank/internal/accountdelivery"
	"github.com/go-petr/pet-bank/internal/bank"
	"github.com/go-petr/pet-bank/internal/middleware"
	"github.com/go-petr/pet-bank/internal/sessiondelivery"
	"github.com/go-petr/pet-bank/internal/transferdelivery"
	"github.com/go-petr/pet-bank/internal/userdelivery"
	"github.com/go-petr/pet-bank/pkg/configpkg"
)

// Server holds the bank, handlers router and configuration.
type Server struct {
	Bank   *bank.System
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("accountkind", accountdelivery.ValidAccountKind); err != nil {
		return fmt.Errorf("cannot register accountkind validator: %w", err)
	}

	if err := v.RegisterValidation("amount", accountdelivery.ValidAmount); err != nil {
		return fmt.Errorf("cannot register amount validator: %w", err)
	}

	return nil
}

// New creates Server type with a fresh bank and its routes.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	system, err := bank.New(config)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize bank: %w", err)
	}

	if err := registerValidators(); err != nil {
		return nil, err
	}

	userHandler := userdelivery.NewHandler(system.Users(), system.Sessions())
	accountHandler := accountdelivery.NewHandler(system.Accounts())
	transferHandler := transferdelivery.NewHandler(system.Transfers())
	sessionHandler := sessiondelivery.NewHandler(system.Sessions())

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.Use(gin.Recovery())

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.POST("/accounts", accountHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)
	engine.POST("/sessions/logout", sessionHandler.Logout)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(system.Sessions().TokenMaker()))

	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:number", accountHandler.Get)
	authRoutes.POST("/accounts/:number/deposits", accountHandler.Deposit)
	authRoutes.POST("/accounts/:number/withdrawals", accountHandler.Withdraw)
	authRoutes.POST("/accounts/:number/interest", accountHandler.ApplyInterest)

	authRoutes.POST("/transfers", transferHandler.Create)

	server := &Server{
		Bank:   system,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
