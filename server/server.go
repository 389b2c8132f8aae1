package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/lifelinkhq/donor-portal/api"
	"github.com/lifelinkhq/donor-portal/auth"
	"github.com/lifelinkhq/donor-portal/geo"
	"github.com/lifelinkhq/donor-portal/internal/config"
	"github.com/lifelinkhq/donor-portal/session"
)

// Server is the donor portal's HTTP front end: public marketing pages,
// login and registration forms, and the role-gated dashboards.
type Server struct {
	env        string // Environment (e.g. "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	fileServer http.Handler
	config     config.Config
	auth       *auth.Service
	sessions   *session.Store
	backend    *api.Client
	geo        *geo.Resolver

	donorFlows    *flowRepo[donorFlow]
	hospitalFlows *flowRepo[hospitalFlow]
}

// New wires the server over its collaborators and registers all routes.
func New(cfg config.Config, authService *auth.Service, sessions *session.Store, backend *api.Client, resolver *geo.Resolver) (*Server, error) {
	if authService == nil {
		return nil, fmt.Errorf("[Server New] auth service is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("[Server New] session store is required")
	}
	if backend == nil {
		return nil, fmt.Errorf("[Server New] backend client is required")
	}

	s := &Server{
		env:           cfg.Env,
		mux:           http.NewServeMux(),
		config:        cfg,
		auth:          authService,
		sessions:      sessions,
		backend:       backend,
		geo:           resolver,
		donorFlows:    newFlowRepo[donorFlow](),
		hospitalFlows: newFlowRepo[hospitalFlow](),
	}
	s.fileServer = FileServerHandler()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
