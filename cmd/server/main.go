package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"puantaj-backend/internal/config"
	"puantaj-backend/internal/db"
	"puantaj-backend/internal/ledger"
	"puantaj-backend/internal/models"
	"puantaj-backend/internal/resolve"
	"puantaj-backend/internal/riskscore"
	"puantaj-backend/internal/routes"
	"puantaj-backend/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := bootstrapAdmin(cfg, database); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}

	led := ledger.NewService(database, cfg.AnnualOvertimeCapMin)
	resolver, err := resolve.NewService(database, cfg, led)
	if err != nil {
		log.Fatalf("resolver: %v", err)
	}
	scorer := riskscore.NewService(database, resolver)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	routes.Register(r, database, cfg, resolver, led, scorer)

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// bootstrapAdmin creates the first admin account on an empty user table so
// a fresh deployment can log in. The generated password is printed once.
func bootstrapAdmin(cfg config.Config, database *gorm.DB) error {
	if cfg.AdminBootstrap == "" {
		return nil
	}

	var count int64
	if err := database.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password, err := utils.GenerateRefreshToken()
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        cfg.AdminBootstrap,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         "admin",
	}
	if err := database.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("bootstrap admin %s created, initial password: %s", admin.Email, password)
	return nil
}
