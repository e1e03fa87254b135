// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/pkg/constants"
)

// MockNATSConn is a mock implementation of INatsConn.
type MockNATSConn struct {
	mock.Mock
}

func (m *MockNATSConn) IsConnected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockNATSConn) Publish(subj string, data []byte) error {
	args := m.Called(subj, data)
	return args.Error(0)
}

func TestMessageBuilder_sendMessage(t *testing.T) {
	tests := []struct {
		name         string
		publishError error
		expectError  bool
	}{
		{
			name:         "successful send",
			publishError: nil,
			expectError:  false,
		},
		{
			name:         "publish error",
			publishError: errors.New("publish failed"),
			expectError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockConn := new(MockNATSConn)
			mockConn.On("Publish", "test.subject", []byte("test data")).Return(tt.publishError)

			builder := NewMessageBuilder(mockConn)

			err := builder.sendMessage(context.Background(), "test.subject", []byte("test data"))
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockConn.AssertExpectations(t)
		})
	}
}

func TestMessageBuilder_SendIndexContact(t *testing.T) {
	mockConn := new(MockNATSConn)

	var captured []byte
	mockConn.On("Publish", models.IndexContactSubject, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]byte)
	}).Return(nil)

	builder := NewMessageBuilder(mockConn)

	ctx := context.WithValue(context.Background(), constants.PrincipalContextID, "local")
	contact := models.Contact{
		ID:         "contact_123",
		Name:       "John Smith",
		Email:      "john.smith@example.com",
		Department: "Tech",
	}

	err := builder.SendIndexContact(ctx, models.ActionCreated, contact)
	require.NoError(t, err)

	var message models.IndexerMessage
	require.NoError(t, json.Unmarshal(captured, &message))

	assert.Equal(t, models.ActionCreated, message.Action)
	assert.Equal(t, "local", message.Headers[constants.XOnBehalfOfHeader])
	assert.NotEmpty(t, message.Headers[constants.AuthorizationHeader])

	data, ok := message.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "contact_123", data["id"])
	assert.Equal(t, "John Smith", data["name"])

	mockConn.AssertExpectations(t)
}

func TestMessageBuilder_SendDeleteIndexMeeting(t *testing.T) {
	mockConn := new(MockNATSConn)

	var captured []byte
	mockConn.On("Publish", models.IndexMeetingSubject, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]byte)
	}).Return(nil)

	builder := NewMessageBuilder(mockConn)

	err := builder.SendDeleteIndexMeeting(context.Background(), "meeting_123")
	require.NoError(t, err)

	var message models.IndexerMessage
	require.NoError(t, json.Unmarshal(captured, &message))

	assert.Equal(t, models.ActionDeleted, message.Action)
	assert.Equal(t, "meeting_123", message.Data)

	mockConn.AssertExpectations(t)
}

func TestMessageBuilder_SendMeetingCreated(t *testing.T) {
	mockConn := new(MockNATSConn)

	var captured []byte
	mockConn.On("Publish", models.MeetingCreatedSubject, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]byte)
	}).Return(nil)

	builder := NewMessageBuilder(mockConn)

	err := builder.SendMeetingCreated(context.Background(), models.MeetingCreatedMessage{
		MeetingID: "meeting_123",
		ThreadID:  "thread_456",
		Owner:     "local",
		Title:     "Meeting with John",
		Date:      "2026-09-01",
		Time:      "14:00",
	})
	require.NoError(t, err)

	var message models.MeetingCreatedMessage
	require.NoError(t, json.Unmarshal(captured, &message))
	assert.Equal(t, "meeting_123", message.MeetingID)
	assert.Equal(t, "thread_456", message.ThreadID)

	mockConn.AssertExpectations(t)
}
