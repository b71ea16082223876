package dao

import (
	"fmt"

	"github.com/bennypn/ai-kop-indosat/config"
	"github.com/bennypn/ai-kop-indosat/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() error {
	cfg := config.Cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.PDF{},
		&model.PDFPage{},
		&model.PageAnalysis{},
		&model.GroupAnalysis{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}

	DB = db
	return nil
}
