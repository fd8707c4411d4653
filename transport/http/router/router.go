package router

import (
	"todoapp/internal/handlers/todo"
	"todoapp/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

// API prefixes. /api is kept for clients built against the unversioned paths.
var prefixes = []string{"/v1", "/api"}

type DomainHandlers struct {
	Todo todo.Handler
	User user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	for _, prefix := range prefixes {
		router.Route(prefix, func(routerGroup chi.Router) {
			r.DomainHandlers.Todo.Router(routerGroup)
			r.DomainHandlers.User.Router(routerGroup)
		})
	}
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
