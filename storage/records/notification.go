package records

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/notification"
)

type notificationRepository struct {
	db core.Store
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db core.Store) notification.Repository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) CreateNotification(ctx context.Context, n notification.Notification) error {
	return repo.put(ctx, n)
}

func (repo *notificationRepository) PutNotification(ctx context.Context, n notification.Notification) error {
	return repo.put(ctx, n)
}

func (repo *notificationRepository) put(ctx context.Context, n notification.Notification) error {
	rec, err := json.Marshal(n)
	if err != nil {
		return errors.Wrapf(err, "encoding notification %s", n.ID)
	}
	return repo.db.Put(ctx, collNotifications, n.ID, rec)
}

func (repo *notificationRepository) GetNotification(ctx context.Context, id string) (notification.Notification, error) {
	rec, err := repo.db.Get(ctx, collNotifications, id)
	if err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return notification.Notification{}, notification.ErrNotFound
		}
		return notification.Notification{}, err
	}
	var n notification.Notification
	if err = json.Unmarshal(rec, &n); err != nil {
		return notification.Notification{}, errors.Wrapf(err, "decoding notification %s", id)
	}
	return n, nil
}

func (repo *notificationRepository) DeleteNotification(ctx context.Context, id string) error {
	return repo.db.Delete(ctx, collNotifications, id)
}

func (repo *notificationRepository) QueryAllNotifications(ctx context.Context) ([]notification.Notification, error) {
	recs, err := repo.db.GetAll(ctx, collNotifications)
	if err != nil {
		return nil, err
	}
	ns := make([]notification.Notification, 0, len(recs))
	for key, rec := range recs {
		var n notification.Notification
		if err = json.Unmarshal(rec, &n); err != nil {
			return nil, errors.Wrapf(err, "decoding notification %s", key)
		}
		ns = append(ns, n)
	}
	return ns, nil
}
