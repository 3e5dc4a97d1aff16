package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sutanlim/blogify/internal/blogservice"
	"github.com/sutanlim/blogify/internal/common"
	"github.com/sutanlim/blogify/internal/mailservice"
	"github.com/sutanlim/blogify/internal/userservice"
)

// insecureDevSecret is the fallback signing secret outside production. loadConfig
// refuses an empty JWT_SECRET in production, so this never signs production tokens.
const insecureDevSecret = "insecure-dev-secret"

type application struct {
	config      *Config
	logger      *slog.Logger
	cache       *common.Cache
	userService *userservice.UserService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
	broker      *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = insecureDevSecret
		logger.Warn("JWT_SECRET is not set, using an insecure development secret")
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		cache:       common.NewCache(5*time.Minute, 10*time.Minute),
		userService: userservice.NewUserService(db, broker, cfg.JWTSecret, logger),
		blogService: blogservice.NewBlogService(db),
		mailService: mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
		broker:      broker,
	}

	app.mailService.SendWelcomeEmail()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
