package notification_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scadhub/portal/core"
	"github.com/scadhub/portal/core/notification"
	"github.com/scadhub/portal/storage/records"
	inmemstore "github.com/scadhub/portal/storage/store/inmem"
)

type mailStub struct {
	mu   sync.Mutex
	sent []*core.EmailMessage
}

func (m *mailStub) SendMessages(messages ...*core.EmailMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, messages...)
}

func setup(t *testing.T) (*notification.Service, *mailStub) {
	t.Helper()
	mail := &mailStub{}
	svc := notification.NewService(records.NewNotificationRepository(inmemstore.Open()), mail)
	return svc, mail
}

func TestService_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects zero or multiple addresses", func(t *testing.T) {
		svc, _ := setup(t)

		tests := []struct {
			name string
			nn   notification.NewNotification
		}{
			{name: "unaddressed", nn: notification.NewNotification{Message: "hi"}},
			{name: "email and role", nn: notification.NewNotification{Message: "hi", Email: "a@x.com", UserRole: core.RoleScadOffice}},
			{name: "email and global", nn: notification.NewNotification{Message: "hi", Email: "a@x.com", Global: true}},
			{name: "role and global", nn: notification.NewNotification{Message: "hi", UserRole: core.RoleStudent, Global: true}},
			{name: "all three", nn: notification.NewNotification{Message: "hi", Email: "a@x.com", UserRole: core.RoleStudent, Global: true}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Notify(ctx, tt.nn)
				assert.Equal(t, notification.ErrInvalidAddressing, errors.Cause(err))
			})
		}
	})

	t.Run("direct notification fans out an email", func(t *testing.T) {
		svc, mail := setup(t)

		n, err := svc.Notify(ctx, notification.NewNotification{Message: "hi", Email: "A@X.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, "a@x.com", n.Email) // lowercased
		assert.False(t, n.Read)

		require.Len(t, mail.sent, 1)
		require.Len(t, mail.sent[0].To, 1)
		assert.Equal(t, "a@x.com", mail.sent[0].To[0].Address)
	})

	t.Run("role broadcast sends no email", func(t *testing.T) {
		svc, mail := setup(t)

		_, err := svc.Notify(ctx, notification.NewNotification{Message: "hi", UserRole: core.RoleScadOffice})
		require.NoError(t, err)
		assert.Empty(t, mail.sent)
	})
}

func TestService_QueryForRecipient(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	direct, err := svc.Notify(ctx, notification.NewNotification{Message: "for you", Email: "a@x.com"})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, notification.NewNotification{Message: "for someone else", Email: "b@x.com"})
	require.NoError(t, err)
	office, err := svc.Notify(ctx, notification.NewNotification{Message: "for the office", UserRole: core.RoleScadOffice})
	require.NoError(t, err)
	global, err := svc.Notify(ctx, notification.NewNotification{Message: "for everyone", Global: true})
	require.NoError(t, err)

	t.Run("direct plus global", func(t *testing.T) {
		ns, err := svc.QueryForRecipient(ctx, "a@x.com", core.RoleStudent)
		require.NoError(t, err)
		ids := notificationIDs(ns)
		assert.ElementsMatch(t, []string{direct.ID, global.ID}, ids)
	})

	t.Run("role broadcast plus global", func(t *testing.T) {
		ns, err := svc.QueryForRecipient(ctx, "office@x.com", core.RoleScadOffice)
		require.NoError(t, err)
		ids := notificationIDs(ns)
		assert.ElementsMatch(t, []string{office.ID, global.ID}, ids)
	})

	t.Run("newest first", func(t *testing.T) {
		ns, err := svc.QueryForRecipient(ctx, "a@x.com", core.RoleStudent)
		require.NoError(t, err)
		for i := 1; i < len(ns); i++ {
			assert.False(t, ns[i-1].Date.Before(ns[i].Date))
		}
	})
}

func TestService_MarkReadAndDismiss(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	n, err := svc.Notify(ctx, notification.NewNotification{Message: "hi", Email: "a@x.com"})
	require.NoError(t, err)

	read, err := svc.MarkRead(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	// idempotent
	read, err = svc.MarkRead(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	_, err = svc.MarkRead(ctx, "nope")
	assert.Equal(t, notification.ErrNotFound, errors.Cause(err))

	require.NoError(t, svc.Dismiss(ctx, n.ID))
	_, err = svc.MarkRead(ctx, n.ID)
	assert.Equal(t, notification.ErrNotFound, errors.Cause(err))
}

func notificationIDs(ns []notification.Notification) []string {
	ids := make([]string, 0, len(ns))
	for _, n := range ns {
		ids = append(ids, n.ID)
	}
	return ids
}
