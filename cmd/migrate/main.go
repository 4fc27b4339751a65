package main

import (
	"log"
	"os"

	"cutclub-be/internal/model"
	"cutclub-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do perfectly)
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'subscription_status') THEN CREATE TYPE subscription_status AS ENUM ('active', 'inactive', 'cancelled', 'pending'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'withdraw_status') THEN CREATE TYPE withdraw_status AS ENUM ('pending', 'approved', 'paid', 'rejected'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'app_role') THEN CREATE TYPE app_role AS ENUM ('subscriber', 'salon_owner', 'admin'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Profile{},
		&model.Plan{},
		&model.Salon{},
		&model.Subscription{},
		&model.HaircutCode{},
		&model.HaircutHistory{},
		&model.WithdrawRequest{},
		&model.FinancialLog{},
		&model.Payment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: constraints AutoMigrate cannot express
	log.Println("Step 3: Creating constraints...")

	postMigrationSQL := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_salons_commission_range') THEN ALTER TABLE salons ADD CONSTRAINT chk_salons_commission_range CHECK (commission_rate >= 0 AND commission_rate <= 100); END IF; END $$;`,
		`CREATE INDEX IF NOT EXISTS idx_haircut_codes_live ON haircut_codes (code, expires_at) WHERE is_used = false;`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_subscriptions_active_user ON subscriptions (user_id) WHERE status = 'active';`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_withdraw_requests_open_salon ON withdraw_requests (salon_id) WHERE status IN ('pending', 'approved');`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Migration completed successfully!")
}
