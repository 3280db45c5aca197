package api

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/nisha-chat/nisha/internal/config"
	"github.com/nisha-chat/nisha/internal/database"
	"github.com/nisha-chat/nisha/internal/stats"
	"github.com/nisha-chat/nisha/internal/weather"
)

type NishaApp struct {
	log         *log.Logger
	db          database.NishaRepository
	weather     *weather.Client
	stats       stats.StatsProvider
	tc          map[string]*template.Template
	mux         *http.Server
	signingKey  []byte
	defaultCity string
}

func NewNishaApp(mux *http.ServeMux, logger *log.Logger, db database.NishaRepository, wc *weather.Client, su stats.StatsProvider, cfg *config.Config) (*NishaApp, error) {
	tc, err := NewTemplateCache(cfg.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("template cache: %w", err)
	}

	s := &NishaApp{
		log:         logger,
		db:          db,
		weather:     wc,
		stats:       su,
		tc:          tc,
		signingKey:  cfg.SigningKey,
		defaultCity: cfg.DefaultCity,
	}

	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("GET /home/{$}", s.home)
	mux.HandleFunc("GET /home/about/{$}", s.about)
	mux.HandleFunc("GET /home/features/{$}", s.features)
	mux.HandleFunc("GET /login/{$}", s.loginPage)
	mux.HandleFunc("POST /login/{$}", s.login)
	mux.HandleFunc("POST /logout/{$}", s.logout)
	mux.HandleFunc("GET /signup/{$}", s.signupPage)
	mux.HandleFunc("POST /signup/{$}", s.signup)
	mux.Handle("GET /chat/{$}", s.withUser(s.legacyChat))
	mux.Handle("GET /chat/whatsapp/{$}", s.withUser(s.whatsapp))
	mux.Handle("POST /chat/send/{$}", s.requireAuth(s.sendMessage))
	mux.HandleFunc("GET /chat/messages/{$}", s.getMessages)
	mux.HandleFunc("GET /chat/room/{id}/messages/{$}", s.getRoomMessages)
	mux.HandleFunc("GET /chat/room/{id}/members/{$}", s.getRoomMembers)
	mux.Handle("POST /chat/create-room/{$}", s.requireAuth(s.createRoom))
	mux.Handle("POST /chat/join-room/{id}/{$}", s.requireAuth(s.joinRoom))
	mux.Handle("GET /chat/users/{$}", s.withUser(s.getUsers))
	mux.Handle("GET /chat/{room_name}/{$}", s.withUser(s.legacyChat))
	mux.HandleFunc("GET /healthz", s.healthCheck)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("./static"))))

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = handlers.CombinedLoggingHandler(os.Stdout, h)
	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s, nil
}

func (s *NishaApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *NishaApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *NishaApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
