package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/evigdia/evigdia-backend/internal/config"
	"github.com/evigdia/evigdia-backend/internal/migration"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configPath := flag.String("config", "", "config file path (defaults to configs/config.<APP_ENV>.yaml)")
	flag.Parse()

	config.LoadDotEnv()

	path := *configPath
	if path == "" {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "local"
		}
		path = fmt.Sprintf("configs/config.%s.yaml", env)
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration complete")
}
