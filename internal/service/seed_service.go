package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"practicas/internal/model"
)

// SeedService loads the demo fixtures the platform ships with. It talks to
// GORM directly because resetting tables is tooling, not domain logic.
type SeedService interface {
	ResetDemo(ctx context.Context) error
}

type seedService struct {
	db *gorm.DB
}

// NewSeedService creates a seed service bound to the database.
func NewSeedService(db *gorm.DB) SeedService {
	return &seedService{db: db}
}

// ResetDemo wipes the three tables and reloads the demo dataset: one admin,
// two companies, two students, one teacher, four offers and three
// applications covering each stage of the review workflow.
func (s *seedService) ResetDemo(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	for _, m := range []interface{}{&model.Application{}, &model.Offer{}, &model.User{}} {
		if err := db.Where("1 = 1").Delete(m).Error; err != nil {
			return fmt.Errorf("clear table: %w", err)
		}
	}

	users, err := DemoUsers()
	if err != nil {
		return err
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	offers := DemoOffers(users)
	if err := db.Create(&offers).Error; err != nil {
		return fmt.Errorf("seed offers: %w", err)
	}

	apps := DemoApplications(users, offers)
	if err := db.Create(&apps).Error; err != nil {
		return fmt.Errorf("seed applications: %w", err)
	}

	// DemoApplications set the applicant counters on the offer rows.
	if err := db.Save(&offers).Error; err != nil {
		return fmt.Errorf("update applicant counters: %w", err)
	}

	return nil
}

// DemoUsers returns the demo accounts with freshly hashed passwords.
func DemoUsers() ([]model.User, error) {
	type account struct {
		user     model.User
		password string
	}
	accounts := []account{
		{model.User{Name: "Administrador Sistema", Email: "admin@pascualbravo.edu.co", Role: model.RoleAdmin, Phone: "3001234567"}, "admin123"},
		{model.User{Name: "TechCorp S.A.", Email: "empresa@example.com", Role: model.RoleCompany, Phone: "3002345678", CompanyName: "TechCorp S.A.", NIT: "900123456-7"}, "empresa123"},
		{model.User{Name: "Juan Pérez Estudiante", Email: "estudiante@pascualbravo.edu.co", Role: model.RoleStudent, Phone: "3003456789", StudentID: "1234567890", Career: "Ingeniería de Sistemas"}, "estudiante123"},
		{model.User{Name: "Profesor Carlos Gómez", Email: "profesor@pascualbravo.edu.co", Role: model.RoleTeacher, Phone: "3004567890", Department: "Ingeniería"}, "profesor123"},
		{model.User{Name: "Innovación Digital Ltda", Email: "innovacion@example.com", Role: model.RoleCompany, Phone: "3005678901", CompanyName: "Innovación Digital Ltda", NIT: "900234567-8"}, "empresa123"},
		{model.User{Name: "María García", Email: "maria.garcia@pascualbravo.edu.co", Role: model.RoleStudent, Phone: "3006789012", StudentID: "9876543210", Career: "Tecnología en Desarrollo de Software"}, "estudiante123"},
	}

	users := make([]model.User, 0, len(accounts))
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash demo password: %w", err)
		}
		a.user.PasswordHash = string(hash)
		users = append(users, a.user)
	}
	return users, nil
}

// DemoOffers returns the demo postings owned by the two company accounts.
func DemoOffers(users []model.User) []model.Offer {
	techCorp := users[1]
	innovacion := users[4]
	now := time.Now()

	return []model.Offer{
		{
			Title:        "Desarrollador Full Stack Junior",
			Description:  "Buscamos estudiante para desarrollar aplicaciones web con React y Node.js. Trabajarás en proyectos reales con nuestro equipo de desarrollo.",
			Requirements: "Conocimientos en JavaScript, HTML, CSS. Deseable: React, Node.js, bases de datos SQL.",
			Deadline:     now.AddDate(0, 0, 30),
			Type:         model.OfferTypePractice,
			Career:       "Ingeniería de Sistemas",
			CompanyID:    techCorp.ID,
			CompanyName:  techCorp.CompanyName,
			Status:       model.OfferStatusApproved,
		},
		{
			Title:        "Asistente de Gestión Administrativa",
			Description:  "Apoyo en procesos administrativos y gestión documental. Excelente oportunidad para aprender sobre gestión empresarial.",
			Requirements: "Manejo de Office, organización, capacidad de trabajo en equipo.",
			Deadline:     now.AddDate(0, 0, 45),
			Type:         model.OfferTypeInternship,
			Career:       "Tecnología en Gestión Administrativa",
			CompanyID:    innovacion.ID,
			CompanyName:  innovacion.CompanyName,
			Status:       model.OfferStatusApproved,
		},
		{
			Title:        "Desarrollador Mobile React Native",
			Description:  "Desarrollo de aplicaciones móviles multiplataforma. Participarás en el ciclo completo de desarrollo de apps móviles.",
			Requirements: "Conocimientos en JavaScript, React. Deseable: React Native, Git.",
			Deadline:     now.AddDate(0, 0, 60),
			Type:         model.OfferTypeProject,
			Career:       "Tecnología en Desarrollo de Software",
			CompanyID:    techCorp.ID,
			CompanyName:  techCorp.CompanyName,
			Status:       model.OfferStatusPending,
		},
		{
			Title:        "Analista de Procesos Industriales",
			Description:  "Apoyo en optimización de procesos de producción y control de calidad.",
			Requirements: "Conocimientos en estadística, Excel avanzado, gestión de procesos.",
			Deadline:     now.AddDate(0, 0, 40),
			Type:         model.OfferTypePractice,
			Career:       "Ingeniería Industrial",
			CompanyID:    innovacion.ID,
			CompanyName:  innovacion.CompanyName,
			Status:       model.OfferStatusApproved,
		},
	}
}

// DemoApplications returns one application per workflow stage and sets the
// offers' applicant counters to match.
func DemoApplications(users []model.User, offers []model.Offer) []model.Application {
	juan, maria, teacher := users[2], users[5], users[3]
	now := time.Now()
	days := func(n int) *time.Time {
		t := now.AddDate(0, 0, -n)
		return &t
	}

	offers[0].ApplicantsCount = 2
	offers[1].ApplicantsCount = 1

	return []model.Application{
		{
			OfferID:     offers[0].ID,
			OfferTitle:  offers[0].Title,
			StudentID:   juan.ID,
			StudentName: juan.Name,
			CompanyID:   offers[0].CompanyID,
			CompanyName: offers[0].CompanyName,
			Status:      model.ApplicationStatusPending,
			ProfileSnapshot: model.ProfileSnapshot{
				Name: juan.Name, Email: juan.Email, Phone: juan.Phone,
				StudentID: juan.StudentID, Career: juan.Career,
			},
		},
		{
			OfferID:           offers[1].ID,
			OfferTitle:        offers[1].Title,
			StudentID:         maria.ID,
			StudentName:       maria.Name,
			CompanyID:         offers[1].CompanyID,
			CompanyName:       offers[1].CompanyName,
			Status:            model.ApplicationStatusCompanyAccepted,
			CompanyReviewedAt: days(2),
			ProfileSnapshot: model.ProfileSnapshot{
				Name: maria.Name, Email: maria.Email, Phone: maria.Phone,
				StudentID: maria.StudentID, Career: maria.Career,
			},
		},
		{
			OfferID:             offers[0].ID,
			OfferTitle:          offers[0].Title,
			StudentID:           maria.ID,
			StudentName:         maria.Name,
			CompanyID:           offers[0].CompanyID,
			CompanyName:         offers[0].CompanyName,
			Status:              model.ApplicationStatusApproved,
			CompanyReviewedAt:   days(7),
			AdminReviewedAt:     days(3),
			AssignedTeacherID:   &teacher.ID,
			AssignedTeacherName: teacher.Name,
			StartDate:           days(2),
			ProfileSnapshot: model.ProfileSnapshot{
				Name: maria.Name, Email: maria.Email, Phone: maria.Phone,
				StudentID: maria.StudentID, Career: maria.Career,
			},
		},
	}
}
