package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/undercover/internal/packs"
	"github.com/DoyleJ11/undercover/internal/table"
	"github.com/DoyleJ11/undercover/internal/ws"
)

// SetupRoutes mounts the REST surface and the screen socket. catalog may be
// nil, in which case only the built-in packs are listed.
func SetupRoutes(tb *table.Table, catalog packs.Lister, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if catalog == nil {
		catalog = packs.Static{}
	}
	log = log.Named("http")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(tb, log))

	r.Route("/session", func(r chi.Router) {
		r.Get("/", GetSession(tb))
		r.Post("/", StartSession(tb))
		r.Delete("/", ResetSession(tb))
		r.Post("/picks", PickCard(tb))
		r.Post("/eliminations", Eliminate(tb))
		r.Post("/guesses", SubmitGuess(tb))
		r.Post("/names", RenamePlayer(tb))
	})
	r.Get("/packs", ListPacks(catalog))
	r.Delete("/packs/{packId}/history", ResetPackHistory(tb))
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
