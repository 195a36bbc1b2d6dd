package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/techstock/inventory/internal/models"
	"github.com/techstock/inventory/pkg/config"
	"github.com/techstock/inventory/pkg/logger"
)

// extraStatements covers what gorm struct tags cannot express. All are
// idempotent so the migrator can run on every deploy.
var extraStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_resource_tags_json ON resource USING GIN (tags_json)`,
}

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Parents before children so foreign keys resolve.
	err = db.AutoMigrate(
		&models.Subscription{},
		&models.ResourceGroup{},
		&models.Application{},
		&models.Resource{},
		&models.ResourceTag{},
		&models.ResourceApplicationMap{},
	)
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	for _, stmt := range extraStatements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Fatal("migration statement failed", zap.String("stmt", stmt), zap.Error(err))
		}
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
