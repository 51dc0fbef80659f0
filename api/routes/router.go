package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blu-networking/blu-backend/api/controllers"
	"github.com/blu-networking/blu-backend/api/middleware"
	"github.com/blu-networking/blu-backend/internal/auth"
	"github.com/blu-networking/blu-backend/internal/chapters"
	"github.com/blu-networking/blu-backend/internal/events"
	"github.com/blu-networking/blu-backend/internal/goals"
	"github.com/blu-networking/blu-backend/internal/leads"
	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/internal/messages"
	"github.com/blu-networking/blu-backend/internal/minutes"
	"github.com/blu-networking/blu-backend/internal/spotlights"
	"github.com/blu-networking/blu-backend/internal/stats"
	"github.com/blu-networking/blu-backend/internal/tips"
	"github.com/blu-networking/blu-backend/pkg/auth/session"
	"github.com/blu-networking/blu-backend/pkg/config"
	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/blu-networking/blu-backend/pkg/metrics"
	"github.com/blu-networking/blu-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// notifier is the email surface the router wires into controllers. Nil
// disables every notification without touching the write paths.
type notifier interface {
	RegistrationConfirmed(user *models.User, event *models.Event)
	SpotlightFeatured(user *models.User, spotlight *models.MemberSpotlight)
	RemindUpcomingEvents(ctx context.Context) error
	RemindLeadFollowUps(ctx context.Context) error
}

// Deps carries everything the router mounts. Optional adapters (Notifier,
// TipsService) may be nil and their routes degrade gracefully.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
	Sessions    sessionManager
	AuthService auth.Service
	Members     members.Service
	Chapters    chapters.Service
	Events      events.Service
	Leads       leads.Service
	Goals       goals.Service
	Spotlights  spotlights.Service
	Messages    messages.Service
	Minutes     minutes.Service
	Stats       stats.Service
	Tips        tips.Service
	Notifier    notifier
}

// NewRouter mounts the full HTTP surface.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(d.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.AuthRegister(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(d.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireLevel(enums.UserLevelMember, logg))

		r.Route("/members", func(r chi.Router) {
			r.Get("/", controllers.MembersList(d.Members, logg))
			r.Get("/{memberId}", controllers.MemberGet(d.Members, logg))
		})
		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(d.Members, logg))
			r.Patch("/", controllers.ProfileUpdate(d.Members, logg))
		})
		r.Route("/chapters", func(r chi.Router) {
			r.Get("/", controllers.ChaptersList(d.Chapters, logg))
			r.Get("/{chapterId}", controllers.ChapterGet(d.Chapters, logg))

			r.With(middleware.RequireLevel(enums.UserLevelExecutiveBoard, logg)).
				Post("/", controllers.ChapterCreate(d.Chapters, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.EventsList(d.Events, logg))
			r.Get("/{eventId}", controllers.EventGet(d.Events, logg))
			r.Delete("/{eventId}/registration", controllers.RegistrationCancel(d.Events, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireLevel(enums.UserLevelBoardMember, logg))
				r.Post("/", controllers.EventCreate(d.Events, logg))
				r.Patch("/{eventId}", controllers.EventUpdate(d.Events, logg))
				r.Delete("/{eventId}", controllers.EventDelete(d.Events, logg))
				r.Get("/{eventId}/registrations", controllers.EventRegistrations(d.Events, logg))
				r.Post("/{eventId}/check-in", controllers.EventCheckIn(d.Events, logg))
			})
		})
		r.Post("/event-registrations", controllers.EventRegister(d.Events, d.Members, d.Notifier, logg))
		r.Get("/my-registrations", controllers.MyRegistrations(d.Events, logg))

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", controllers.LeadsList(d.Leads, logg))
			r.Post("/", controllers.LeadCreate(d.Leads, logg))
			r.Get("/stats", controllers.LeadStats(d.Leads, logg))
			r.Get("/{leadId}", controllers.LeadGet(d.Leads, logg))
			r.Patch("/{leadId}", controllers.LeadUpdate(d.Leads, logg))
			r.Delete("/{leadId}", controllers.LeadDelete(d.Leads, logg))
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", controllers.GoalCurrent(d.Goals, logg))
			r.Put("/", controllers.GoalUpsert(d.Goals, logg))
			r.Get("/history", controllers.GoalsList(d.Goals, logg))
			r.Patch("/{goalId}", controllers.GoalUpdate(d.Goals, logg))
			r.Delete("/{goalId}", controllers.GoalDelete(d.Goals, logg))
		})

		r.Get("/spotlight", controllers.SpotlightCurrent(d.Spotlights, logg))
		r.Get("/stats", controllers.StatsMember(d.Stats, logg))
		r.Post("/networking-tips", controllers.NetworkingTips(d.Tips, d.Members, logg))

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", controllers.MessageInbox(d.Messages, logg))
			r.Post("/", controllers.MessageSend(d.Messages, logg))
			r.Get("/inbox", controllers.MessageInbox(d.Messages, logg))
			r.Get("/sent", controllers.MessageSent(d.Messages, logg))
			r.Get("/unread-count", controllers.MessageUnreadCount(d.Messages, logg))
			r.Get("/{messageId}", controllers.MessageGet(d.Messages, logg))
			r.Post("/{messageId}/read", controllers.MessageMarkRead(d.Messages, logg))
		})

		r.Route("/minutes", func(r chi.Router) {
			r.Get("/", controllers.MinutesList(d.Minutes, logg))
			r.Get("/{minutesId}", controllers.MinutesGet(d.Minutes, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireLevel(enums.UserLevelBoardMember, logg))
				r.Post("/", controllers.MinutesCreate(d.Minutes, logg))
				r.Patch("/{minutesId}", controllers.MinutesUpdate(d.Minutes, logg))
				r.Post("/{minutesId}/publish", controllers.MinutesPublish(d.Minutes, logg))
				r.Delete("/{minutesId}", controllers.MinutesDelete(d.Minutes, logg))
			})
		})

		r.Route("/spotlights", func(r chi.Router) {
			r.Use(middleware.RequireLevel(enums.UserLevelBoardMember, logg))
			r.Get("/", controllers.SpotlightsList(d.Spotlights, logg))
			r.Post("/", controllers.SpotlightCreate(d.Spotlights, d.Members, d.Notifier, logg))
			r.Patch("/{spotlightId}", controllers.SpotlightUpdate(d.Spotlights, logg))
			r.Delete("/{spotlightId}", controllers.SpotlightDelete(d.Spotlights, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireLevel(enums.UserLevelBoardMember, logg))

		r.Get("/members", controllers.AdminMembersList(d.Members, logg))
		r.Get("/stats", controllers.StatsChapter(d.Stats, logg))
		r.Post("/reminders/run", controllers.AdminRunReminders(d.Notifier, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLevel(enums.UserLevelExecutiveBoard, logg))
			r.Patch("/members/{memberId}/level", controllers.AdminMemberSetLevel(d.Members, logg))
			r.Patch("/members/{memberId}/active", controllers.AdminMemberSetActive(d.Members, logg))
			r.Patch("/chapters/{chapterId}", controllers.ChapterUpdate(d.Chapters, logg))
		})
	})

	return r
}
