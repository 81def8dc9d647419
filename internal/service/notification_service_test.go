package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/citizenloop/internal/config"
	"github.com/spec-kit/citizenloop/internal/events"
)

func TestNotificationHandlersLogEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@citizenloop.local",
		WebhookURL: "https://hooks.example.com/citizenloop",
	})
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventComplaintSubmitted, ComplaintID: "CL-1"}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventComplaintUpdated, ComplaintID: "CL-1"}))

	assert.Equal(t, 1, logs.FilterMessage("ComplaintSubmitted").Len())
	assert.Equal(t, 1, logs.FilterMessage("sendEmailNotificationStub").Len())
	assert.Equal(t, 2, logs.FilterMessage("sendWebhookNotificationStub").Len())
	assert.Equal(t, 1, logs.FilterMessage("ComplaintUpdated").Len())
}
