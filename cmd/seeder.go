package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with an initial admin account and salary categories",
	Long:  `Seed the database with a bootstrap admin login plus the default salary categories so a fresh deployment is usable.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		password := "ChangeMe123"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash bootstrap password: %v", err)
		}

		users := []struct {
			Email string
			Name  string
			Role  string
		}{
			{"admin@example.com", "Bootstrap Admin", "admin"},
			{"manager@example.com", "Branch Manager", "manager"},
		}

		for _, u := range users {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM app_users WHERE email = $1", u.Email).Scan(&exists); err == nil {
				fmt.Printf("user %s already exists; skipping\n", u.Email)
				continue
			}

			if _, err := db.Exec(
				"INSERT INTO app_users (id, email, full_name, role, password_hash, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, true, now(), now())",
				uuid.NewString(), u.Email, u.Name, u.Role, string(hash),
			); err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded %s user: %s (password %q)\n", u.Role, u.Email, password)
		}

		categories := []struct {
			Key  string
			Name string
		}{
			{"base", "Base salary"},
			{"overtime", "Overtime pay"},
			{"bonus", "Performance bonus"},
			{"allowance", "Travel allowance"},
			{"deduction", "Standard deduction"},
		}

		for _, c := range categories {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM salary_categories WHERE key = $1", c.Key).Scan(&exists); err == nil {
				continue
			}

			if _, err := db.Exec(
				"INSERT INTO salary_categories (id, key, name, created_at) VALUES ($1, $2, $3, now())",
				uuid.NewString(), c.Key, c.Name,
			); err != nil {
				log.Fatalf("failed to insert salary category %s: %v", c.Key, err)
			}
			fmt.Printf("Seeded salary category: %s\n", c.Key)
		}

		fmt.Println("Seeding complete")
	},
}
