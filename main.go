package main

import (
	"os"
	"os/signal"
	"syscall"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configscache"
	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/routes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.LoadConfig()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	configscache.InitRedis()
	defer configscache.CloseRedis()

	app := fiber.New(fiber.Config{
		AppName: "etkinlik.link",
	})

	routes.SetupRoutes(app)

	// Graceful shutdown: SIGINT/SIGTERM geldiğinde açık istekler tamamlanır.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu %s portunda başlatılıyor...", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	configslog.SLog.Info("Sunucu durduruldu.")
}
