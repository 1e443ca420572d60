package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/config"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Account-related entities
		&entity.Account{},
		&entity.Role{},
		&entity.Permission{},
		&entity.PasswordResetToken{},

		// Profile and refraction entities
		&entity.Profile{},
		&entity.RefractionRecord{},
		&entity.MeasurementRecord{},

		// Catalog entities
		&entity.LensType{},
		&entity.Lens{},
		&entity.EyeGlass{},
		&entity.ProductGlass{},

		// Store entities
		&entity.Kiosk{},
		&entity.Voucher{},

		// Transaction entities
		&entity.Order{},
		&entity.OrderDetail{},
		&entity.Payment{},
		&entity.ExchangeRequest{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions, admin account)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "manage-catalog", GuardName: "web"},
		{Name: "manage-orders", GuardName: "web"},
		{Name: "manage-exchanges", GuardName: "web"},
		{Name: "manage-kiosks", GuardName: "web"},
		{Name: "manage-vouchers", GuardName: "web"},
		{Name: "manage-accounts", GuardName: "web"},
		{Name: "record-refractions", GuardName: "web"},
		{Name: "view-reports", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	// Create admin role with all permissions
	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		adminRole = entity.Role{
			Name:        "admin",
			GuardName:   "web",
			Permissions: allPermissions,
		}
		if err := db.Create(&adminRole).Error; err != nil {
			log.Printf("Warning: failed to create admin role: %v", err)
		}
	}

	// Create staff role with kiosk-floor permissions
	staffPermissions := []string{
		"view-dashboard",
		"manage-orders",
		"manage-exchanges",
		"record-refractions",
	}
	var staffPerms []entity.Permission
	for _, name := range staffPermissions {
		for _, p := range allPermissions {
			if p.Name == name {
				staffPerms = append(staffPerms, p)
				break
			}
		}
	}

	var staffRole entity.Role
	if err := db.Where("name = ?", "staff").First(&staffRole).Error; err != nil {
		staffRole = entity.Role{
			Name:        "staff",
			GuardName:   "web",
			Permissions: staffPerms,
		}
		if err := db.Create(&staffRole).Error; err != nil {
			log.Printf("Warning: failed to create staff role: %v", err)
		}
	}

	// Create customer role for new registrants; customers need no staff
	// permissions, route guards check role only
	var customerRole entity.Role
	if err := db.Where("name = ?", "customer").First(&customerRole).Error; err != nil {
		customerRole = entity.Role{
			Name:      "customer",
			GuardName: "web",
		}
		if err := db.Create(&customerRole).Error; err != nil {
			log.Printf("Warning: failed to create customer role: %v", err)
		}
	}

	// Create admin account if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.Account
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var aRole entity.Role
				if err := db.Where("name = ?", "admin").First(&aRole).Error; err == nil {
					if adminName == "" {
						adminName = "Administrator"
					}
					adminAccount := entity.Account{
						ID:       uuid.New(),
						FullName: adminName,
						Username: "admin",
						Email:    adminEmail,
						Password: string(hashedPassword),
						Roles:    []entity.Role{aRole},
					}
					if err := db.Create(&adminAccount).Error; err != nil {
						log.Printf("Warning: failed to create admin account: %v", err)
					} else {
						log.Printf("Admin account created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Admin account already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
