package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/techstock/inventory/internal/api/handlers"
	mw "github.com/techstock/inventory/internal/api/middleware"
)

type Dependencies struct {
	// HMACSecret enables JWT auth on mutating routes when non-empty.
	HMACSecret []byte

	RateLimitRPS   float64
	RateLimitBurst int

	DashboardHandler      *handlers.DashboardHandler
	ResourcesHandler      *handlers.ResourcesHandler
	SubscriptionsHandler  *handlers.SubscriptionsHandler
	ResourceGroupsHandler *handlers.ResourceGroupsHandler
	ApplicationsHandler   *handlers.ApplicationsHandler
	TagsHandler           *handlers.TagsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	r.Use(chimid.Compress(5))

	r.Get("/health", dep.DashboardHandler.Health)
	r.Get("/stats", dep.DashboardHandler.Stats)

	// Reads are always public; writes go through the auth guard when a
	// secret is configured.
	guard := func(next http.Handler) http.Handler { return next }
	if len(dep.HMACSecret) > 0 {
		guard = mw.Auth(dep.HMACSecret)
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/resources", func(rr chi.Router) {
			rr.Get("/", dep.ResourcesHandler.List)
			rr.Get("/stats", dep.ResourcesHandler.Stats)
			rr.Get("/types", dep.ResourcesHandler.Types)
			rr.Get("/{id}", dep.ResourcesHandler.Get)
			rr.Group(func(wr chi.Router) {
				wr.Use(guard)
				wr.Post("/", dep.ResourcesHandler.Create)
				wr.Put("/{id}", dep.ResourcesHandler.Update)
				wr.Delete("/{id}", dep.ResourcesHandler.Delete)
			})
		})

		api.Route("/subscriptions", func(sr chi.Router) {
			sr.Get("/", dep.SubscriptionsHandler.List)
			sr.Get("/{id}", dep.SubscriptionsHandler.Get)
			sr.Get("/{id}/resources", dep.SubscriptionsHandler.Resources)
			sr.Get("/{id}/resource-groups", dep.SubscriptionsHandler.ResourceGroups)
			sr.Group(func(wr chi.Router) {
				wr.Use(guard)
				wr.Post("/", dep.SubscriptionsHandler.Create)
				wr.Put("/{id}", dep.SubscriptionsHandler.Update)
				wr.Delete("/{id}", dep.SubscriptionsHandler.Delete)
			})
		})

		api.Route("/resource-groups", func(gr chi.Router) {
			gr.Get("/", dep.ResourceGroupsHandler.List)
			gr.Get("/{id}", dep.ResourceGroupsHandler.Get)
			gr.Get("/{id}/resources", dep.ResourceGroupsHandler.Resources)
			gr.Group(func(wr chi.Router) {
				wr.Use(guard)
				wr.Post("/", dep.ResourceGroupsHandler.Create)
				wr.Put("/{id}", dep.ResourceGroupsHandler.Update)
				wr.Delete("/{id}", dep.ResourceGroupsHandler.Delete)
			})
		})

		api.Route("/applications", func(ar chi.Router) {
			ar.Get("/", dep.ApplicationsHandler.List)
			ar.Get("/{id}", dep.ApplicationsHandler.Get)
			ar.Get("/{id}/resources", dep.ApplicationsHandler.Resources)
			ar.Group(func(wr chi.Router) {
				wr.Use(guard)
				wr.Post("/", dep.ApplicationsHandler.Create)
				wr.Put("/{id}", dep.ApplicationsHandler.Update)
				wr.Delete("/{id}", dep.ApplicationsHandler.Delete)
			})
		})

		api.Route("/tags", func(tr chi.Router) {
			tr.Get("/", dep.TagsHandler.Overview)
			tr.Get("/suggestions", dep.TagsHandler.Suggestions)
		})

		api.Get("/dashboard/summary", dep.DashboardHandler.Summary)
	})

	return r
}
