package messages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier is told about new messages so the recipient can be emailed. Nil
// disables notifications.
type Notifier interface {
	MessageReceived(ctx context.Context, message *models.MemberMessage)
}

// Service defines member-to-member messaging operations.
type Service interface {
	Send(ctx context.Context, params SendParams) (*models.MemberMessage, error)
	Get(ctx context.Context, userID, messageID uuid.UUID) (*models.MemberMessage, error)
	Inbox(ctx context.Context, params InboxParams) ([]models.MemberMessage, error)
	Sent(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.MemberMessage, error)
	MarkRead(ctx context.Context, userID, messageID uuid.UUID) (*models.MemberMessage, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	db       *db.Client
	notifier Notifier
}

// NewService wires messaging dependencies. The notifier may be nil.
func NewService(client *db.Client, notifier Notifier) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	return &service{db: client, notifier: notifier}, nil
}

// SendParams describes an outgoing message.
type SendParams struct {
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Subject    string
	Body       string
}

func (s *service) Send(ctx context.Context, params SendParams) (*models.MemberMessage, error) {
	if params.FromUserID == uuid.Nil || params.ToUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sender and recipient required")
	}
	if params.FromUserID == params.ToUserID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot message yourself")
	}
	subject := strings.TrimSpace(params.Subject)
	body := strings.TrimSpace(params.Body)
	if subject == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message subject required")
	}
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body required")
	}

	recipient, err := members.NewRepository(s.db.DB()).FindByID(ctx, params.ToUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipient")
	}
	if !recipient.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipient not found")
	}

	message := &models.MemberMessage{
		FromUserID: params.FromUserID,
		ToUserID:   params.ToUserID,
		Subject:    subject,
		Body:       body,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create message")
	}

	if s.notifier != nil {
		s.notifier.MessageReceived(ctx, message)
	}
	return message, nil
}

func (s *service) Get(ctx context.Context, userID, messageID uuid.UUID) (*models.MemberMessage, error) {
	if userID == uuid.Nil || messageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and message id required")
	}

	message, err := NewRepository(s.db.DB()).FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load message")
	}
	if message.FromUserID != userID && message.ToUserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
	}
	return message, nil
}

// InboxParams bounds an inbox listing.
type InboxParams struct {
	UserID     uuid.UUID
	UnreadOnly bool
	Limit      int
	Offset     int
}

func (s *service) Inbox(ctx context.Context, params InboxParams) ([]models.MemberMessage, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := NewRepository(s.db.DB()).ListInbox(ctx, params.UserID, params.UnreadOnly, params.Limit, params.Offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inbox")
	}
	return rows, nil
}

func (s *service) Sent(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.MemberMessage, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := NewRepository(s.db.DB()).ListSent(ctx, userID, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sent messages")
	}
	return rows, nil
}

// MarkRead stamps the read time. Only the recipient can mark a message read.
func (s *service) MarkRead(ctx context.Context, userID, messageID uuid.UUID) (*models.MemberMessage, error) {
	if userID == uuid.Nil || messageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and message id required")
	}

	repo := NewRepository(s.db.DB())
	message, err := repo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load message")
	}
	if message.ToUserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
	}

	if message.ReadAt == nil {
		if err := repo.MarkRead(ctx, messageID, time.Now().UTC()); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark message read")
		}
		message, err = repo.FindByID(ctx, messageID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload message")
		}
	}
	return message, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	count, err := NewRepository(s.db.DB()).CountUnread(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread messages")
	}
	return count, nil
}
