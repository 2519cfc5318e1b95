package service

import (
	"go.uber.org/zap"

	"schoolsync/backend/config"
	"schoolsync/backend/internal/calendar"
	"schoolsync/backend/internal/repository"
	"schoolsync/backend/pkg/jwt"
	"schoolsync/backend/pkg/redis"
)

// Service aggregates every business service behind one handle.
type Service struct {
	Auth        AuthService
	Student     StudentService
	Teacher     TeacherService
	Class       ClassService
	Reservation ReservationService
	Billing     BillingService
	Export      ExportService
}

// NewService wires all services. cache may be nil when Redis is down;
// only token blacklisting degrades.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	gateway calendar.Gateway,
	sessions *calendar.SessionManager,
	tokens *jwt.Manager,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(&cfg.Auth, tokens, cache, sessions, logger),
		Student:     NewStudentService(repo, logger),
		Teacher:     NewTeacherService(repo, logger),
		Class:       NewClassService(repo, gateway, logger),
		Reservation: NewReservationService(repo, gateway, logger),
		Billing:     NewBillingService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
