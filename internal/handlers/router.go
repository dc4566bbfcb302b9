package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/innovatex/hub/internal/config"
	"github.com/innovatex/hub/internal/realtime"
	"github.com/innovatex/hub/internal/repositories"
	"github.com/innovatex/hub/internal/services"
)

// NewRouter wires the REST collaborator surface and the /ws realtime endpoint.
func NewRouter(
	cfg *config.Config,
	auth *services.AuthService,
	messaging *services.MessagingService,
	notifications *services.NotificationService,
	presence realtime.Presence,
	lastSeen repositories.LastSeenRepository,
	hub *realtime.Hub,
) *chi.Mux {
	authHandler := NewAuthHandler(auth)
	messageHandler := NewMessageHandler(messaging)
	notificationHandler := NewNotificationHandler(notifications)
	presenceHandler := NewPresenceHandler(presence, lastSeen)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(CORS(cfg.ClientURL))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Post("/logout-all", authHandler.LogoutAll)
	})

	router.Route("/api/messages", func(r chi.Router) {
		r.Use(RequireAuth(auth))
		r.Get("/conversations", messageHandler.ListConversations)
		r.Get("/conversations/{userID}", messageHandler.GetOrCreateConversation)
		r.Get("/{conversationID}", messageHandler.ListMessages)
		r.Post("/", messageHandler.SendMessage)
		r.Put("/{messageID}/seen", messageHandler.MarkMessageSeen)
		r.Put("/conversation/{conversationID}/seen", messageHandler.MarkConversationSeen)
	})

	router.Route("/api/notifications", func(r chi.Router) {
		r.Use(RequireAuth(auth))
		r.Get("/", notificationHandler.List)
		r.Put("/{notificationID}/read", notificationHandler.MarkRead)
		r.Put("/read-all", notificationHandler.MarkAllRead)
	})

	router.Route("/api/presence", func(r chi.Router) {
		r.Use(RequireAuth(auth))
		r.Get("/online", presenceHandler.Online)
		r.Get("/{userID}", presenceHandler.Get)
	})

	// The websocket handshake authenticates itself (token query parameter),
	// so it sits outside RequireAuth.
	router.Get("/ws", hub.HandleWS)

	return router
}
