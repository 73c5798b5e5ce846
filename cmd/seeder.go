package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with roles, an admin account and default settings for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			for _, table := range []string{"payouts", "sales", "staff", "roles", "settings", "clients", "service_presets"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		roles := []struct {
			Name        string
			Permissions string
		}{
			{"Administrator", `["all"]`},
			{"Cashier", `["view_sales","create_sales"]`},
			{"Accountant", `["view_sales","view_payroll","process_payouts","view_reports"]`},
		}

		for _, r := range roles {
			var id int64
			row := db.Raw("SELECT id FROM roles WHERE name = ?", r.Name).Row()
			if err := row.Scan(&id); err == nil {
				fmt.Println("role already exists:", r.Name)
				continue
			}
			if err := db.Exec("INSERT INTO roles (name, permissions, created_at, updated_at) VALUES (?, ?, now(), now())", r.Name, r.Permissions).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", r.Name, err)
			}
			fmt.Println("Seeded role:", r.Name)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Security.DefaultStaffPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash default password: %v", err)
		}

		adminEmail := "admin@opolo.ng"
		var exists int
		row := db.Raw("SELECT 1 FROM staff WHERE email = ?", adminEmail).Row()
		if err := row.Scan(&exists); err != nil {
			if err := db.Exec(`INSERT INTO staff (name, email, password_hash, base_salary, commission_kind, commission_rate, role_id, is_active, created_at, updated_at)
				VALUES (?, ?, ?, 0, 'percentage', 0, (SELECT id FROM roles WHERE name = 'Administrator'), true, now(), now())`,
				"Administrator", adminEmail, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert admin account: %v", err)
			}
			fmt.Println("Seeded admin account:", adminEmail)
		} else {
			fmt.Println("admin account already exists")
		}

		row = db.Raw("SELECT 1 FROM settings").Row()
		if err := row.Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO settings (business_name, global_commission_rate, updated_at) VALUES (?, ?, now())",
				cfg.Payroll.BusinessName, cfg.Payroll.DefaultCommissionRate).Error; err != nil {
				log.Fatalf("failed to insert settings: %v", err)
			}
			fmt.Println("Seeded settings row")
		} else {
			fmt.Println("settings row already exists")
		}

		presets := []struct {
			Name   string
			Amount string
			Split  string
		}{
			{"JAMB Registration", "7000", "4700"},
			{"WAEC Result Checker", "3500", "3000"},
			{"Passport Photograph", "500", "0"},
		}

		for _, p := range presets {
			row := db.Raw("SELECT 1 FROM service_presets WHERE service_name = ?", p.Name).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Println("service preset already exists:", p.Name)
				continue
			}
			if err := db.Exec("INSERT INTO service_presets (service_name, total_amount, institution_split, created_at) VALUES (?, ?, ?, now())",
				p.Name, p.Amount, p.Split).Error; err != nil {
				log.Fatalf("failed to insert service preset %s: %v", p.Name, err)
			}
			fmt.Println("Seeded service preset:", p.Name)
		}
	},
}
