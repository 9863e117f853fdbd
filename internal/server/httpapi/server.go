// Package httpapi exposes the application's operations over HTTP. Routing is
// built on chi, every response uses the shared JSON envelope, and all book
// and section routes sit behind the bearer-token middleware.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/fablehq/fable-server/internal/logging"
	"github.com/fablehq/fable-server/internal/server/models"
	"github.com/fablehq/fable-server/internal/server/services"
)

// UserService is the account surface the handlers depend on.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// BookService is the book surface the handlers depend on.
type BookService interface {
	Create(ctx context.Context, userID, title, description string) (*models.Book, error)
	List(ctx context.Context, userID string) ([]*models.Book, error)
	Update(ctx context.Context, bookID, userID string, params services.UpdateBookParams) (*models.Book, error)
	Delete(ctx context.Context, bookID, userID string) error
}

// SectionService is the section surface the handlers depend on.
type SectionService interface {
	Create(ctx context.Context, bookID, userID, title, story string) (models.SectionView, error)
	ListForBook(ctx context.Context, bookID, userID string) (models.BookView, []models.SectionView, error)
	Update(ctx context.Context, bookID, sectionID, userID string, params services.UpdateSectionParams) (models.SectionView, error)
	Delete(ctx context.Context, bookID, sectionID, userID string) error
}

// Server wires the services into an HTTP handler.
type Server struct {
	users     UserService
	books     BookService
	sections  SectionService
	jwtSecret []byte
	logger    logging.Logger
	validate  *validator.Validate
	router    *chi.Mux
}

// NewServer builds the HTTP surface over the given services.
func NewServer(users UserService, books BookService, sections SectionService, jwtSecret []byte, logger logging.Logger) *Server {
	s := &Server{
		users:     users,
		books:     books,
		sections:  sections,
		jwtSecret: jwtSecret,
		logger:    logger,
		validate:  newValidator(),
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/me", s.handleMe)
			})
		})

		r.Route("/books", func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/", s.handleCreateBook)
			r.Get("/", s.handleListBooks)

			r.Route("/{bookID}", func(r chi.Router) {
				r.Get("/", s.handleGetBook)
				r.Put("/", s.handleUpdateBook)
				r.Delete("/", s.handleDeleteBook)

				r.Route("/sections", func(r chi.Router) {
					r.Post("/", s.handleCreateSection)
					r.Get("/", s.handleListSections)
					r.Put("/{sectionID}", s.handleUpdateSection)
					r.Delete("/{sectionID}", s.handleDeleteSection)
				})
			})
		})
	})
}

// ServeHTTP makes the server a http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}
