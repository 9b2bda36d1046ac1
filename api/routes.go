package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/webert/crm/internal/config"
	"github.com/webert/crm/internal/db"
	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, conn *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(conn, logger)

	// Create handlers
	systemHandler := NewSystemHandler(version, buildTime)
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	usersHandler := NewUsersHandler(repo, repo, repo, repo, repo)
	companiesHandler := NewCompaniesHandler(repo, repo, repo)
	industriesHandler := NewIndustriesHandler(repo)
	contactsHandler := NewContactsHandler(repo)
	notesHandler := NewNotesHandler(repo)
	rolesHandler := NewRolesHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.Version).Methods("GET")
	r.HandleFunc("/health", systemHandler.Health).Methods("GET")
	r.HandleFunc("/api/auth", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/users", usersHandler.Register).Methods("POST")

	// Protected routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(TokenAuthWithSecret(cfg.JWTSecret))

	adminOnly := RequireRole(models.RoleAdministrator)

	// Auth
	api.HandleFunc("/auth", authHandler.Profile).Methods("GET")

	// Users
	api.HandleFunc("/users/all", usersHandler.List).Methods("POST")
	api.HandleFunc("/users/{id}", usersHandler.Get).Methods("GET")
	api.HandleFunc("/users/{id}", usersHandler.Update).Methods("PUT")
	api.Handle("/users/{id}", adminOnly(http.HandlerFunc(usersHandler.Delete))).Methods("DELETE")
	api.HandleFunc("/users/{id}/companies", usersHandler.Companies).Methods("GET")
	api.HandleFunc("/users/{id}/notes", usersHandler.Notes).Methods("GET")
	api.HandleFunc("/users/{id}/contact-persons", usersHandler.Contacts).Methods("GET")

	// Companies
	api.HandleFunc("/companies", companiesHandler.Create).Methods("POST")
	api.HandleFunc("/companies/all", companiesHandler.List).Methods("POST")
	api.HandleFunc("/companies/{id}", companiesHandler.Get).Methods("GET")
	api.HandleFunc("/companies/{id}", companiesHandler.Update).Methods("PUT")
	api.HandleFunc("/companies/{id}", companiesHandler.Delete).Methods("DELETE")
	api.HandleFunc("/companies/{id}/notes", companiesHandler.Notes).Methods("POST")
	api.HandleFunc("/companies/{id}/contact-people", companiesHandler.Contacts).Methods("POST")

	// Industries
	api.HandleFunc("/industries", industriesHandler.Create).Methods("POST")
	api.HandleFunc("/industries/all", industriesHandler.ListAll).Methods("GET")
	api.HandleFunc("/industries/all", industriesHandler.Search).Methods("POST")
	api.HandleFunc("/industries/{id}", industriesHandler.Get).Methods("GET")
	api.HandleFunc("/industries/{id}", industriesHandler.Update).Methods("PUT")
	api.HandleFunc("/industries/{id}", industriesHandler.Delete).Methods("DELETE")

	// Contact persons
	api.HandleFunc("/contact-persons", contactsHandler.Create).Methods("POST")
	api.HandleFunc("/contact-persons/all", contactsHandler.List).Methods("POST")
	api.HandleFunc("/contact-persons/{id}", contactsHandler.Get).Methods("GET")
	api.HandleFunc("/contact-persons/{id}", contactsHandler.Update).Methods("PUT")
	api.HandleFunc("/contact-persons/{id}", contactsHandler.Delete).Methods("DELETE")

	// Notes
	api.HandleFunc("/notes", notesHandler.Create).Methods("POST")
	api.HandleFunc("/notes/all", notesHandler.List).Methods("POST")
	api.HandleFunc("/notes/{id}", notesHandler.Get).Methods("GET")
	api.HandleFunc("/notes/{id}", notesHandler.Update).Methods("PUT")
	api.HandleFunc("/notes/{id}", notesHandler.Delete).Methods("DELETE")

	// Roles
	api.HandleFunc("/roles", rolesHandler.List).Methods("GET")
	api.HandleFunc("/roles/all", rolesHandler.List).Methods("GET")

	return r
}
