package seed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/suhaniparashar/internhub-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type internshipSeed struct {
	Title        string
	Company      string
	Location     string
	Duration     string
	Stipend      string
	Description  string
	Requirements []string
	Skills       []string
	Type         string
	Deadline     string
}

var internships = []internshipSeed{
	{
		Title:        "Full Stack Development Internship",
		Company:      "Tech Innovations Ltd.",
		Location:     "Bangalore",
		Duration:     "3 months",
		Stipend:      "₹15,000/month",
		Description:  "Work on cutting-edge web applications using React and Node.js",
		Requirements: []string{"Strong knowledge of JavaScript", "Experience with React", "Understanding of RESTful APIs"},
		Skills:       []string{"React", "Node.js", "MongoDB", "Express"},
		Type:         "Hybrid",
		Deadline:     "2025-12-31",
	},
	{
		Title:        "UI/UX Design Internship",
		Company:      "Creative Studios",
		Location:     "Mumbai",
		Duration:     "2 months",
		Stipend:      "₹12,000/month",
		Description:  "Create beautiful and intuitive user interfaces for web and mobile applications",
		Requirements: []string{"Proficiency in Figma", "Basic HTML/CSS knowledge", "Portfolio required"},
		Skills:       []string{"Figma", "Adobe XD", "UI Design", "Prototyping"},
		Type:         "Remote",
	},
	{
		Title:        "Data Science Internship",
		Company:      "Analytics Pro",
		Location:     "Hyderabad",
		Duration:     "6 months",
		Stipend:      "₹20,000/month",
		Description:  "Work on machine learning projects and data analysis",
		Requirements: []string{"Python programming", "Knowledge of ML algorithms", "Statistics background"},
		Skills:       []string{"Python", "TensorFlow", "Pandas", "Machine Learning"},
		Type:         "On-site",
	},
	{
		Title:        "Mobile App Development",
		Company:      "AppWorks Solutions",
		Location:     "Delhi",
		Duration:     "4 months",
		Stipend:      "₹18,000/month",
		Description:  "Develop mobile applications for Android and iOS platforms",
		Requirements: []string{"React Native or Flutter experience", "Mobile UI/UX understanding"},
		Skills:       []string{"React Native", "Flutter", "Firebase", "Mobile Development"},
		Type:         "Remote",
	},
	{
		Title:        "DevOps Internship",
		Company:      "CloudTech Services",
		Location:     "Pune",
		Duration:     "3 months",
		Stipend:      "₹16,000/month",
		Description:  "Learn and implement CI/CD pipelines and cloud infrastructure",
		Requirements: []string{"Basic Linux knowledge", "Understanding of Docker", "AWS basics"},
		Skills:       []string{"Docker", "Kubernetes", "AWS", "Jenkins"},
		Type:         "Hybrid",
	},
}

// Run seeds the admin account, a demo student and the internship catalog.
// Each table is only seeded when empty, so a restart never duplicates or
// clobbers live data.
func Run(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return err
	}
	return seedInternships(db)
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	demoHash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	users := []models.User{
		{
			ID:       uuid.New(),
			Username: "admin",
			Email:    "admin@internhub.com",
			Password: string(adminHash),
			FullName: "Admin User",
			Role:     models.RoleAdmin,
		},
		{
			ID:       uuid.New(),
			Username: "demo",
			Email:    "demo@internhub.com",
			Password: string(demoHash),
			FullName: "Demo Student",
			Role:     models.RoleStudent,
			College:  "Demo University",
			Branch:   "Computer Science",
		},
	}

	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	slog.Info("seeded users", "count", len(users))
	return nil
}

func seedInternships(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Internship{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	records := make([]models.Internship, 0, len(internships))
	for _, seed := range internships {
		requirements, err := json.Marshal(seed.Requirements)
		if err != nil {
			return err
		}
		skills, err := json.Marshal(seed.Skills)
		if err != nil {
			return err
		}

		record := models.Internship{
			ID:           uuid.New(),
			Title:        seed.Title,
			Company:      seed.Company,
			Location:     seed.Location,
			Duration:     seed.Duration,
			Stipend:      seed.Stipend,
			Description:  seed.Description,
			Requirements: datatypes.JSON(requirements),
			Skills:       datatypes.JSON(skills),
			Type:         seed.Type,
		}
		if seed.Deadline != "" {
			if deadline, err := time.Parse("2006-01-02", seed.Deadline); err == nil {
				record.Deadline = &deadline
			}
		}
		records = append(records, record)
	}

	if err := db.Create(&records).Error; err != nil {
		return fmt.Errorf("failed to seed internships: %w", err)
	}
	slog.Info("seeded internships", "count", len(records))
	return nil
}
