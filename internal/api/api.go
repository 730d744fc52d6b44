package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"employee-registry/internal/dto"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// @title           Employee Registry API
// @version         1.0
// @description     Employee records service: validated CRUD over Postgres with a Kafka change feed (created/updated/deleted events, idempotent materialisation, DLQ).
//
// @BasePath  /
// @schemes   http
// @accept    json
// @produce   json

type EmployeeRepository interface {
	Create(ctx context.Context, e dto.Employee) error
	Update(ctx context.Context, e dto.Employee) error
	Delete(ctx context.Context, employeeID string) error
	Get(ctx context.Context, employeeID string) (*dto.Employee, error)
	List(ctx context.Context) ([]dto.Employee, error)
}

type EventsRepository interface {
	ListEvents(ctx context.Context) ([]dto.ChangeEvent, error)
	ListDLQ(ctx context.Context) ([]dto.DLQMessage, error)
	ResetAll(ctx context.Context) error
}

type Producer interface {
	ProduceCreated(ctx context.Context, messageID uuid.UUID, e dto.Employee) error
	ProduceUpdated(ctx context.Context, messageID uuid.UUID, e dto.Employee) error
	ProduceDeleted(ctx context.Context, messageID uuid.UUID, employeeID string) error
}

type ServiceDeps struct {
	Port int

	EmployeeRepo EmployeeRepository
	EventsRepo   EventsRepository

	Producer Producer
}

type Service struct {
	r      *router.Router
	server *fasthttp.Server
	port   int

	employees EmployeeRepository
	events    EventsRepository
	producer  Producer
}

func NewService(d ServiceDeps) *Service {
	rt := router.New()

	s := &Service{
		r:         rt,
		port:      d.Port,
		employees: d.EmployeeRepo,
		events:    d.EventsRepo,
		producer:  d.Producer,
	}

	s.mountRoutes()

	s.server = &fasthttp.Server{
		Handler:            RecoveryMiddleware(LoggingMiddleware(CORS(s.r.Handler))),
		Name:               "employee-registry-api",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		MaxRequestBodySize: 2 << 20, // 2 MiB
	}

	return s
}

func (s *Service) Start(ctx context.Context) error {
	log.Info().Int("port", s.port).Msg("starting employee API")

	emergencyShutdown := make(chan error)
	go func() {
		err := s.server.ListenAndServe(fmt.Sprintf(":%d", s.port))
		emergencyShutdown <- err
	}()

	select {
	case <-ctx.Done():
		return s.server.Shutdown()
	case e := <-emergencyShutdown:
		return e
	}
}

func (s *Service) mountRoutes() {
	// Employees
	s.r.GET("/employees", s.listEmployees)
	s.r.POST("/employees", s.createEmployee)
	s.r.POST("/employees/validate", s.validateHandler)
	s.r.GET("/employees/{employee_id}", s.getEmployee)
	s.r.PUT("/employees/{employee_id}", s.updateEmployee)
	s.r.DELETE("/employees/{employee_id}", s.deleteEmployee)

	// Change feed
	s.r.GET("/events", s.listEvents)
	s.r.GET("/dlq", s.listDLQ)

	// Admin & Health
	s.r.GET("/health", s.healthHandler)
	s.r.POST("/admin/reset", s.resetHandler)
}
