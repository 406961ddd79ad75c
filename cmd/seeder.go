package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"history_updates", "assets", "categories", "sites", "areas", "departments", "positions", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		seedUser(db, "admin", "Administrator", "admin@mail.com", string(hash), "admin")
		seedUser(db, "budi", "Budi Santoso", "budi@mail.com", string(hash), "user")

		categories := []string{"Laptop", "Desktop", "Monitor", "Printer", "Networking"}
		for _, name := range categories {
			seedNamedRow(db, "categories", name)
		}

		sites := []struct{ Name, Address string }{
			{"Head Office", "Jl. Sudirman No. 1, Jakarta"},
			{"Warehouse", "Jl. Industri Raya No. 8, Bekasi"},
		}
		for _, s := range sites {
			var exists int
			if err := db.Raw("SELECT 1 FROM sites WHERE name = ?", s.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO sites (name, address, created_at, updated_at) VALUES (?, ?, now(), now())", s.Name, s.Address).Error; err != nil {
				log.Fatalf("failed to insert site %s: %v", s.Name, err)
			}
			fmt.Println("Seeded site:", s.Name)
		}

		for _, name := range []string{"Floor 1", "Floor 2", "Server Room"} {
			seedNamedRow(db, "areas", name)
		}
		for _, name := range []string{"Finance", "Engineering", "Operations", "Human Resources"} {
			seedNamedRow(db, "departments", name)
		}
		for _, name := range []string{"Staff", "Supervisor", "Manager"} {
			seedNamedRow(db, "positions", name)
		}

		fmt.Println("Seeding complete. Default password for all accounts:", password)
	},
}

func seedUser(db *gorm.DB, username, name, email, hash, role string) {
	var exists int
	if err := db.Raw("SELECT 1 FROM users WHERE email = ?", email).Row().Scan(&exists); err == nil {
		fmt.Println("user already exists:", email)
		return
	}

	err := db.Exec(
		"INSERT INTO users (username, name, email, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
		username, name, email, hash, role,
	).Error
	if err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email, "role:", role)
}

func seedNamedRow(db *gorm.DB, table, name string) {
	var exists int
	if err := db.Raw("SELECT 1 FROM "+table+" WHERE name = ?", name).Row().Scan(&exists); err == nil {
		return
	}

	if err := db.Exec("INSERT INTO "+table+" (name, created_at, updated_at) VALUES (?, now(), now())", name).Error; err != nil {
		log.Fatalf("failed to insert into %s: %v", table, err)
	}
	fmt.Printf("Seeded %s: %s\n", table, name)
}
