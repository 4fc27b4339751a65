package main

import (
	"log"
	"os"

	"cutclub-be/internal/config"
	"cutclub-be/internal/entity"
	"cutclub-be/internal/model"
	"cutclub-be/internal/pkg/serverutils"
	"cutclub-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type demoUser struct {
	email    string
	fullName string
	role     entity.UserRole
}

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding plan catalog...")
	seedPlans(db)

	// Demo accounts are only for local environments
	if cfg.IsProduction() || os.Getenv("SEED_DEMO") != "true" {
		color.Green("Seeding completed!")
		return
	}

	color.Cyan("Seeding demo accounts...")
	users := []demoUser{
		{email: "admin@cutclub.local", fullName: "Platform Admin", role: entity.UserRoleAdmin},
		{email: "owner@cutclub.local", fullName: "Salon Owner", role: entity.UserRoleSalonOwner},
		{email: "client@cutclub.local", fullName: "Demo Subscriber", role: entity.UserRoleSubscriber},
	}
	for _, u := range users {
		id := seedProfile(db, u)
		if u.role == entity.UserRoleSalonOwner {
			seedSalon(db, id)
		}
		if cfg.Keys.JwtSecret == "" {
			continue
		}
		token, err := serverutils.IssueToken(cfg.Keys.JwtSecret, id, u.role)
		if err != nil {
			color.Red("Failed to sign token for %s: %v", u.email, err)
			continue
		}
		color.Yellow("%s (%s)", u.email, u.role)
		log.Printf("  Bearer %s", token)
	}

	color.Green("Seeding completed!")
}

func seedPlans(db *gorm.DB) {
	plans := []model.Plan{
		{Name: "Basic", Description: "Two haircuts per month", Price: decimal.NewFromInt(59), CreditsPerMonth: 2, DurationDays: 30, IsActive: true},
		{Name: "Plus", Description: "Four haircuts per month", Price: decimal.NewFromInt(99), CreditsPerMonth: 4, DurationDays: 30, IsActive: true},
		{Name: "Premium", Description: "Eight haircuts per month", Price: decimal.NewFromInt(179), CreditsPerMonth: 8, DurationDays: 30, IsActive: true},
	}

	for _, p := range plans {
		var existing model.Plan
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			log.Printf("Plan '%s' already exists, skipping...", p.Name)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating plan '%s': %v", p.Name, err)
		} else {
			log.Printf("Created plan: %s (%s / %d credits)", p.Name, p.Price.StringFixed(2), p.CreditsPerMonth)
		}
	}
}

func seedProfile(db *gorm.DB, u demoUser) uuid.UUID {
	var existing model.Profile
	if err := db.Where("email = ?", u.email).First(&existing).Error; err == nil {
		return existing.Id
	}

	profile := model.Profile{
		Id:       uuid.New(),
		Email:    u.email,
		FullName: u.fullName,
		Role:     string(u.role),
	}
	if err := db.Create(&profile).Error; err != nil {
		color.Red("Error creating profile '%s': %v", u.email, err)
	}
	return profile.Id
}

func seedSalon(db *gorm.DB, ownerId uuid.UUID) {
	var existing model.Salon
	if err := db.Where("owner_id = ?", ownerId).First(&existing).Error; err == nil {
		return
	}

	salon := model.Salon{
		OwnerId:        ownerId,
		Name:           "Demo Barbershop",
		City:           "Sao Paulo",
		State:          "SP",
		IsApproved:     true,
		IsActive:       true,
		CommissionRate: decimal.NewFromInt(70),
	}
	if err := db.Create(&salon).Error; err != nil {
		color.Red("Error creating salon: %v", err)
	}
}
