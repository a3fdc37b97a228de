package handlers

import (
	"log/slog"
	"net/http"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "dessert-api/docs"
	"dessert-api/middlewares"
)

type RouterOptions struct {
	// AuthSecret guards the write routes when non-empty.
	AuthSecret     string
	AllowedOrigins []string

	// Registry receives request metrics and backs /metrics. Nil disables both.
	Registry *prometheus.Registry
}

// NewRouter wires every route and the middleware chain.
func NewRouter(desserts *DessertHandler, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	if opts.Registry != nil {
		r.Use(middlewares.NewMetrics(opts.Registry).Middleware)
		r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	auth := middlewares.RequireAuth(opts.AuthSecret)

	r.HandleFunc("/", desserts.ListDesserts).Methods(http.MethodGet)
	r.HandleFunc("/healthy", Healthy).Methods(http.MethodGet)
	r.HandleFunc("/desserts/{id}", desserts.GetDessert).Methods(http.MethodGet)
	r.Handle("/create-dessert", auth(http.HandlerFunc(desserts.CreateDessert))).Methods(http.MethodPost)
	r.Handle("/dessert/{id}", auth(http.HandlerFunc(desserts.UpdateDessert))).Methods(http.MethodPut)
	r.Handle("/dessert/{id}", auth(http.HandlerFunc(desserts.DeleteDessert))).Methods(http.MethodDelete)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins(origins),
		ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		ghandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	recovery := ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError)),
		ghandlers.PrintRecoveryStack(true),
	)

	return recovery(cors(middlewares.Logging(r)))
}
