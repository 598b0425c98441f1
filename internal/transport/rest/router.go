package rest

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	"medfeedback/internal/service"
	"medfeedback/internal/transport/rest/handler"
	"medfeedback/internal/transport/rest/middleware"
	"medfeedback/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	QuestionService *service.QuestionService
	FeedbackService *service.FeedbackService
	WSHub           *ws.Hub
	AllowedOrigins  string
	Logger          *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, logger)
	questionHandler := handler.NewQuestionHandler(c.QuestionService, logger)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService, logger)
	adminHandler := handler.NewAdminHandler(feedbackHandler)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.AllowedOrigins, logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.AllowedOrigins))
	r.Use(accessLog(logger))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/otp/request", authHandler.RequestOTP).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/otp/verify", authHandler.VerifyOTP).Methods("POST", "OPTIONS")
	v1.HandleFunc("/departments", questionHandler.Departments).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions", questionHandler.Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/categorize", feedbackHandler.Preview).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/feed", wsHandler.StaffFeed).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", swaggerDoc(logger)).Methods("GET")

	// Patient routes (require patient auth)
	patientRoutes := v1.NewRoute().Subrouter()
	patientRoutes.Use(authMW.RequirePatient)

	patientRoutes.HandleFunc("/feedback/draft", feedbackHandler.SaveDraft).Methods("PUT", "OPTIONS")
	patientRoutes.HandleFunc("/feedback/draft", feedbackHandler.Draft).Methods("GET", "OPTIONS")
	patientRoutes.HandleFunc("/feedback/draft", feedbackHandler.DiscardDraft).Methods("DELETE", "OPTIONS")
	patientRoutes.HandleFunc("/feedback", feedbackHandler.Submit).Methods("POST", "OPTIONS")
	patientRoutes.HandleFunc("/feedback", feedbackHandler.History).Methods("GET", "OPTIONS")
	patientRoutes.HandleFunc("/feedback/{id}", feedbackHandler.Get).Methods("GET", "OPTIONS")
	patientRoutes.HandleFunc("/feedback/{id}", feedbackHandler.Delete).Methods("DELETE", "OPTIONS")

	// Staff routes (require staff auth)
	staffRoutes := v1.PathPrefix("/admin").Subrouter()
	staffRoutes.Use(authMW.RequireStaff)

	staffRoutes.HandleFunc("/feedback", adminHandler.List).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/feedback/{id}", adminHandler.Get).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/stats", adminHandler.Stats).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/attention", adminHandler.Attention).Methods("GET", "OPTIONS")

	return r
}

func swaggerDoc(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			logger.Warn("swagger doc unavailable", zap.Error(err))
			http.Error(w, `{"error":"swagger doc unavailable"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}
}

func accessLog(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		})
	}
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	allowedOrigins = strings.TrimSpace(allowedOrigins)
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
