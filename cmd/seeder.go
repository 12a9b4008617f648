package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sobrinN/DASH.rh/internal/company"
	companyDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/company"
	employeeDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/employee"
	userDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/user"
	"github.com/sobrinN/DASH.rh/internal/employee"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
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

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"employees", "talent_requests", "companies", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		demoEmail := "demo@dashrh.dev"
		var count int64
		if err := db.Model(&userDatamodel.User{}).Where("email = ?", demoEmail).Count(&count).Error; err != nil {
			log.Fatalf("failed to check demo user: %v", err)
		}
		if count > 0 {
			fmt.Println("demo user already exists:", demoEmail)
			return
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		now := time.Now()

		demoUser := &userDatamodel.User{
			ID:           uuid.NewString(),
			Email:        demoEmail,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := db.Create(demoUser).Error; err != nil {
			log.Fatalf("failed to insert demo user: %v", err)
		}

		demoCompany := &companyDatamodel.Company{
			ID:        uuid.NewString(),
			Name:      "Demo Recruiting Co",
			OwnerID:   demoUser.ID,
			Plan:      company.PlanFree,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(demoCompany).Error; err != nil {
			log.Fatalf("failed to insert demo company: %v", err)
		}

		seedEmployees := []struct {
			Name     string
			Position string
			Stage    string
		}{
			{"Ana Souza", "Backend Engineer", employee.StageCaptacao},
			{"Bruno Lima", "Product Designer", employee.StageEntrevista},
			{"Carla Mendes", "Data Analyst", employee.StageTeste},
			{"Diego Alves", "Frontend Engineer", employee.StageContratado},
		}

		for _, e := range seedEmployees {
			row := &employeeDatamodel.Employee{
				ID:        uuid.NewString(),
				CompanyID: demoCompany.ID,
				Name:      e.Name,
				Position:  e.Position,
				Stage:     e.Stage,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := db.Create(row).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Name, err)
			}
		}

		fmt.Println("Seeded demo account:", demoEmail, "(password: password)")
	},
}
