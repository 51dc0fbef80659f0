package emails

import (
	"fmt"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/mailer"
)

// WelcomeMessage greets a freshly registered member.
func WelcomeMessage(user *models.User) mailer.Message {
	return mailer.Message{
		ToEmail: user.Email,
		ToName:  user.FullName,
		Subject: "Welcome to BLU Networking",
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Welcome to BLU Networking! Your account is ready. "+
				"Log in to complete your profile, browse the member directory, and "+
				"register for upcoming events.</p><p>See you at the next mixer,<br>The BLU Team</p>",
			user.FullName),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nWelcome to BLU Networking! Your account is ready. "+
				"Log in to complete your profile, browse the member directory, and "+
				"register for upcoming events.\n\nSee you at the next mixer,\nThe BLU Team",
			user.FullName),
	}
}

// RegistrationConfirmation confirms an event spot.
func RegistrationConfirmation(user *models.User, event *models.Event) mailer.Message {
	when := event.StartsAt.Format("Monday, January 2 at 3:04 PM MST")
	location := "TBD"
	if event.Location != nil && *event.Location != "" {
		location = *event.Location
	}
	return mailer.Message{
		ToEmail: user.Email,
		ToName:  user.FullName,
		Subject: fmt.Sprintf("You're registered: %s", event.Title),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>You're confirmed for <strong>%s</strong>.</p>"+
				"<p>When: %s<br>Where: %s</p>",
			user.FullName, event.Title, when, location),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYou're confirmed for %s.\n\nWhen: %s\nWhere: %s\n",
			user.FullName, event.Title, when, location),
	}
}

// EventReminder nudges a registered member before an event.
func EventReminder(user *models.User, event *models.Event) mailer.Message {
	when := event.StartsAt.Format("Monday, January 2 at 3:04 PM MST")
	return mailer.Message{
		ToEmail: user.Email,
		ToName:  user.FullName,
		Subject: fmt.Sprintf("Reminder: %s is coming up", event.Title),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>A reminder that <strong>%s</strong> starts %s. "+
				"We look forward to seeing you there.</p>",
			user.FullName, event.Title, when),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nA reminder that %s starts %s. We look forward to seeing you there.\n",
			user.FullName, event.Title, when),
	}
}

// SpotlightNotification tells a member they are being featured.
func SpotlightNotification(user *models.User, spotlight *models.MemberSpotlight) mailer.Message {
	return mailer.Message{
		ToEmail: user.Email,
		ToName:  user.FullName,
		Subject: "You're in the member spotlight!",
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Congratulations! You've been selected for the member "+
				"spotlight:</p><blockquote>%s</blockquote>",
			user.FullName, spotlight.Description),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nCongratulations! You've been selected for the member spotlight:\n\n%s\n",
			user.FullName, spotlight.Description),
	}
}

// FollowUpReminder reminds a member that a lead is due for a follow-up.
func FollowUpReminder(user *models.User, lead *models.Lead) mailer.Message {
	due := "today"
	if lead.FollowUpOn != nil {
		due = lead.FollowUpOn.Format("January 2, 2006")
	}
	return mailer.Message{
		ToEmail: user.Email,
		ToName:  user.FullName,
		Subject: fmt.Sprintf("Follow up with %s", lead.Name),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your lead <strong>%s</strong> is due for a follow-up on %s. "+
				"Don't let it go cold.</p>",
			user.FullName, lead.Name, due),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour lead %s is due for a follow-up on %s. Don't let it go cold.\n",
			user.FullName, lead.Name, due),
	}
}

// MessageNotification alerts a recipient to a new direct message.
func MessageNotification(recipient *models.User, senderName string, message *models.MemberMessage) mailer.Message {
	return mailer.Message{
		ToEmail: recipient.Email,
		ToName:  recipient.FullName,
		Subject: fmt.Sprintf("New message from %s", senderName),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>%s sent you a message: <strong>%s</strong></p>"+
				"<p>Log in to read and reply.</p>",
			recipient.FullName, senderName, message.Subject),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\n%s sent you a message: %s\n\nLog in to read and reply.\n",
			recipient.FullName, senderName, message.Subject),
	}
}

// reminderWindow is how far ahead event reminders look.
const reminderWindow = 24 * time.Hour
