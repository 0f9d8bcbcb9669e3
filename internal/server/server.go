package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/quill/internal/handler"
	"github.com/dukerupert/quill/internal/middleware"
	"github.com/dukerupert/quill/internal/store"
	"github.com/dukerupert/quill/internal/token"
	ws "github.com/dukerupert/quill/internal/websocket"
)

type Server struct {
	db        *sql.DB
	hub       *ws.Hub
	authH     *handler.AuthHandler
	noteH     *handler.NoteHandler
	userStore *store.UserStore
	tokens    *token.Service
	logger    *slog.Logger
}

func New(db *sql.DB, secret []byte, tokenTTL time.Duration, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	tokens := token.New(secret, tokenTTL)

	userStore := store.NewUserStore(db)
	noteStore := store.NewNoteStore(db)

	return &Server{
		db:        db,
		hub:       hub,
		authH:     handler.NewAuthHandler(userStore, tokens, logger.With("component", "auth")),
		noteH:     handler.NewNoteHandler(noteStore, hub, logger.With("component", "note")),
		userStore: userStore,
		tokens:    tokens,
		logger:    logger,
	}
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /auth/register", s.authH.Register)
	outerMux.HandleFunc("POST /auth/login", s.authH.Login)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("POST /notes", s.noteH.Create)
	protectedMux.HandleFunc("GET /notes", s.noteH.List)
	protectedMux.HandleFunc("GET /notes/{id}", s.noteH.Get)
	protectedMux.HandleFunc("PUT /notes/{id}", s.noteH.Update)
	protectedMux.HandleFunc("DELETE /notes/{id}", s.noteH.Delete)
	protectedMux.Handle("GET /ws", ws.HandleEvents(s.hub, s.logger.With("component", "websocket")))

	authMiddleware := middleware.RequireAuth(s.tokens, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	// Apply request logging middleware
	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
