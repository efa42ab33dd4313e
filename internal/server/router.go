package server

import (
	"crypto/rand"
	"html/template"
	"net/http"
	"time"

	"examen-portal/internal/config"
	"examen-portal/internal/credentials"
	"examen-portal/internal/handlers"
	"examen-portal/internal/middleware"
	"examen-portal/internal/storage"
	"examen-portal/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const sessionCookieName = "examen_session"

// Deps are the collaborators the HTTP layer needs. A nil Limiter selects the
// in-memory login throttle.
type Deps struct {
	Users   storage.UserStore
	Pinger  storage.Pinger
	Limiter middleware.Limiter
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())

	r.SetHTMLTemplate(template.Must(web.Templates()))

	store := cookie.NewStore(sessionSecret(cfg))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	r.Use(middleware.InjectUser())

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewMemoryLimiter(cfg.LoginRateLimit, time.Minute)
	}

	authH := handlers.NewAuthHandler(credentials.NewService(deps.Users, cfg.BcryptCost))

	r.GET("/", handlers.Home)

	r.GET("/register", authH.ShowRegister)
	r.POST("/register", authH.Register)
	r.GET("/login", authH.ShowLogin)
	r.POST("/login", middleware.LoginRateLimiter(limiter), authH.Login)
	r.GET("/logout", authH.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())
	auth.GET("/dashboard", handlers.Dashboard)

	r.GET("/health", handlers.Health(deps.Pinger))

	return r
}

// sessionSecret falls back to a random per-process key, which logs every
// user out on restart.
func sessionSecret(cfg *config.Config) []byte {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatal().Err(err).Msg("failed to generate session key")
	}
	log.Warn().Msg("SESSION_SECRET is not set; using a random key, sessions will not survive a restart")
	return key
}
