package chi

import "github.com/go-chi/chi/v5"

// Routes mounts every API endpoint on r. Static paths under /api/search
// are registered before the {contentType} catch-all; chi matches them
// first.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/search", func(r chi.Router) {
		r.Get("/", s.Search)
		r.Post("/advanced", s.SearchAdvanced)
		r.Get("/suggestions", s.Suggestions)
		r.Get("/tags/popular", s.PopularTags)
		r.Get("/stats", s.Stats)
		r.Get("/recent", s.Recent)
		r.Get("/high-rated", s.HighRated)

		r.Route("/index", func(r chi.Router) {
			r.Post("/", s.CreateRecord)
			r.Post("/bulk", s.BulkIndex)
			r.Put("/{id}", s.UpdateRecord)
			r.Delete("/{id}", s.DeleteRecord)
			r.Post("/{id}/tags", s.AddTags)
			r.Delete("/{id}/tags", s.RemoveTags)
			r.Post("/{id}/reindex", s.Reindex)
		})

		r.Get("/{contentType}", s.SearchByType)
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/ready", s.Ready)
	r.Get("/metrics", s.Metrics)
}
