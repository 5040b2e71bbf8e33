package notification

import (
	"context"
	"net/mail"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/scadhub/portal/core"
)

var (
	// errors
	ErrNotFound          = errors.New("notification not found")
	ErrInvalidAddressing = errors.New("exactly one of email, user_role or global must be set")
)

type (
	Repository interface {
		CreateNotification(ctx context.Context, n Notification) error
		GetNotification(ctx context.Context, id string) (Notification, error)
		PutNotification(ctx context.Context, n Notification) error
		DeleteNotification(ctx context.Context, id string) error
		QueryAllNotifications(ctx context.Context) ([]Notification, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

// Notify persists a new notification and, for directly-addressed ones, fans
// out an email to the recipient. The addressing invariant is enforced here:
// enqueueing fails unless exactly one addressing mode is set.
func (svc *Service) Notify(ctx context.Context, nn NewNotification) (Notification, error) {
	if !nn.HasOneAddress() {
		return Notification{}, ErrInvalidAddressing
	}

	n := Notification{
		ID:       uuid.NewString(),
		Message:  nn.Message,
		Email:    core.CleanString(nn.Email, true /* lower */),
		UserRole: nn.UserRole,
		Global:   nn.Global,
		Link:     nn.Link,
		Date:     time.Now().UTC(),
	}
	if err := svc.repo.CreateNotification(ctx, n); err != nil {
		return Notification{}, err
	}

	if n.Email != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Address: n.Email}},
			Subject:      "You have a new notification",
			TemplateName: "notification",
			TemplateData: n,
		})
	}
	return n, nil
}

// QueryForRecipient returns every notification visible to (email, role):
// direct messages, role broadcasts and globals, newest first.
func (svc *Service) QueryForRecipient(ctx context.Context, email, role string) ([]Notification, error) {
	all, err := svc.repo.QueryAllNotifications(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]Notification, 0, len(all))
	for _, n := range all {
		if n.AddressedTo(email, role) {
			visible = append(visible, n)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].Date.After(visible[j].Date) })
	return visible, nil
}

func (svc *Service) MarkRead(ctx context.Context, id string) (Notification, error) {
	n, err := svc.repo.GetNotification(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	if n.Read {
		return n, nil
	}
	n.Read = true
	if err = svc.repo.PutNotification(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// Dismiss removes a notification for good.
func (svc *Service) Dismiss(ctx context.Context, id string) error {
	return svc.repo.DeleteNotification(ctx, id)
}
