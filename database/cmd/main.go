package main

import (
	"flag"

	"gather.link/configs"
	"gather.link/configs/configsdatabase"
	"gather.link/configs/configslog"
	"gather.link/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "run database migrations")
	seedFlag := flag.Bool("seed", false, "run database seeders")
	flag.Parse()

	cfg, err := configs.Load()
	if err != nil {
		configslog.SLog.Fatalf("Config load failed: %v", err)
	}

	db, err := configsdatabase.Connect(cfg)
	if err != nil {
		configslog.SLog.Fatalf("Database connection failed: %v", err)
	}
	defer configsdatabase.Close(db)

	if err := database.Initialize(db, cfg, *migrateFlag, *seedFlag); err != nil {
		configslog.SLog.Fatalf("Database initialization failed: %v", err)
	}
	configslog.SLog.Info("Database initialization complete.")
}
