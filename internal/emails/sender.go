package emails

import (
	"context"
	"time"

	"github.com/blu-networking/blu-backend/internal/events"
	"github.com/blu-networking/blu-backend/internal/leads"
	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/blu-networking/blu-backend/pkg/mailer"
	"github.com/google/uuid"
)

// sendTimeout bounds each background delivery so a slow provider cannot pin
// goroutines open-ended.
const sendTimeout = 15 * time.Second

// Sender delivers notification emails in the background. Email failures are
// logged and never propagate to the request that triggered them.
type Sender struct {
	client *mailer.Client
	db     *db.Client
	logg   *logger.Logger
}

// NewSender wires the email sender. A client without credentials is accepted;
// every send is then skipped with a warning.
func NewSender(client *mailer.Client, dbClient *db.Client, logg *logger.Logger) (*Sender, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer client required")
	}
	if dbClient == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &Sender{client: client, db: dbClient, logg: logg}, nil
}

// deliver sends one message on a fresh goroutine with its own deadline.
func (s *Sender) deliver(kind string, msg mailer.Message) {
	if !s.client.Enabled() {
		ctx := s.logg.WithField(context.Background(), "email", kind)
		s.logg.Warn(ctx, "email skipped: no provider credentials configured")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		ctx = s.logg.WithField(ctx, "email", kind)

		sent, err := s.client.Send(ctx, msg)
		if err != nil {
			s.logg.Error(ctx, "email delivery failed", err)
			return
		}
		if sent {
			s.logg.Info(ctx, "email delivered")
		}
	}()
}

// Welcome greets a new member.
func (s *Sender) Welcome(user *models.User) {
	s.deliver("welcome", WelcomeMessage(user))
}

// RegistrationConfirmed confirms an event registration.
func (s *Sender) RegistrationConfirmed(user *models.User, event *models.Event) {
	s.deliver("registration_confirmation", RegistrationConfirmation(user, event))
}

// SpotlightFeatured congratulates the featured member.
func (s *Sender) SpotlightFeatured(user *models.User, spotlight *models.MemberSpotlight) {
	s.deliver("spotlight_notification", SpotlightNotification(user, spotlight))
}

// FollowUpDue reminds a member about a lead follow-up.
func (s *Sender) FollowUpDue(user *models.User, lead *models.Lead) {
	s.deliver("follow_up_reminder", FollowUpReminder(user, lead))
}

// MessageReceived implements the messages notifier: it loads both parties and
// emails the recipient. Lookup failures are logged and swallowed.
func (s *Sender) MessageReceived(ctx context.Context, message *models.MemberMessage) {
	repo := members.NewRepository(s.db.DB())

	recipient, err := repo.FindByID(ctx, message.ToUserID)
	if err != nil {
		s.logg.Error(ctx, "message notification: load recipient", err)
		return
	}
	senderName := "A fellow member"
	if from, err := repo.FindByID(ctx, message.FromUserID); err == nil {
		senderName = from.FullName
	}

	s.deliver("message_notification", MessageNotification(recipient, senderName, message))
}

// RemindUpcomingEvents emails every registrant of events starting within the
// reminder window. Intended for a periodic scheduler tick.
func (s *Sender) RemindUpcomingEvents(ctx context.Context) error {
	now := time.Now().UTC()
	eventRepo := events.NewRepository(s.db.DB())
	memberRepo := members.NewRepository(s.db.DB())

	upcoming, err := eventRepo.ListStartingBetween(ctx, now, now.Add(reminderWindow))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list upcoming events")
	}

	for i := range upcoming {
		event := upcoming[i]
		registrations, err := eventRepo.ListRegistrationsForEvent(ctx, event.ID)
		if err != nil {
			s.logg.Error(s.logg.WithField(ctx, "event_id", event.ID.String()), "event reminder: list registrations", err)
			continue
		}
		for _, reg := range registrations {
			s.remindRegistrant(ctx, memberRepo, &event, reg.UserID)
		}
	}
	return nil
}

// RemindLeadFollowUps emails every member whose lead has a follow-up due
// within the reminder window. Intended for the same scheduler tick as event
// reminders.
func (s *Sender) RemindLeadFollowUps(ctx context.Context) error {
	now := time.Now().UTC()
	memberRepo := members.NewRepository(s.db.DB())

	due, err := leads.NewRepository(s.db.DB()).ListFollowUpsDue(ctx, now, now.Add(reminderWindow))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list due follow-ups")
	}

	for i := range due {
		lead := due[i]
		user, err := memberRepo.FindByID(ctx, lead.UserID)
		if err != nil {
			s.logg.Error(s.logg.WithField(ctx, "lead_id", lead.ID.String()), "follow-up reminder: load owner", err)
			continue
		}
		s.FollowUpDue(user, &lead)
	}
	return nil
}

func (s *Sender) remindRegistrant(ctx context.Context, repo *members.Repository, event *models.Event, userID uuid.UUID) {
	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "user_id", userID.String()), "event reminder: load registrant", err)
		return
	}
	s.deliver("event_reminder", EventReminder(user, event))
}
