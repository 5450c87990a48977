package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gather.link/configs"
	"gather.link/configs/configsdatabase"
	"gather.link/configs/configslog"
	"gather.link/middlewares"
	"gather.link/routes"
	"gather.link/services"
	"gather.link/services/delivery"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg, err := configs.Load()
	if err != nil {
		configslog.SLog.Fatalf("Config load failed: %v", err)
	}

	db, err := configsdatabase.Connect(cfg)
	if err != nil {
		configslog.SLog.Fatalf("Database connection failed: %v", err)
	}
	defer configsdatabase.Close(db)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		configslog.SLog.Fatalf("AWS config load failed: %v", err)
	}
	provider := delivery.NewGatewayProvider(
		delivery.NewEmailSender(sesv2.NewFromConfig(awsCfg), cfg.SESFromAddress),
		delivery.NewSMSSender(sns.NewFromConfig(awsCfg), cfg.SMSSenderID),
	)
	presigner := s3.NewPresignClient(s3.NewFromConfig(awsCfg))

	deps := routes.Dependencies{
		SessionStore:    middlewares.NewSessionStore(),
		UserService:     services.NewUserService(db),
		EventService:    services.NewEventService(db),
		GuestService:    services.NewGuestService(db),
		DispatchService: services.NewDispatchService(db, provider, cfg.BaseURL),
		RSVPService:     services.NewRSVPService(db),
		MediaService:    services.NewMediaService(presigner, cfg.S3Bucket),
	}

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		AppName:     "gather.link",
	})
	routes.SetupRoutes(app, deps)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			configslog.Log.Fatal("Server stopped", zap.Error(err))
		}
	}()
	configslog.SLog.Infof("gather.link listening on port %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("Shutting down...")
	if err := app.Shutdown(); err != nil {
		configslog.Log.Error("Shutdown error", zap.Error(err))
	}
}
