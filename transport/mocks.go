package transport

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransporter lets StompSession's tests drive the connect/send/close
// callbacks synchronously without a real socket, using testify's
// mock.Mock to record calls and let each test script its responses.
type MockTransporter struct {
	mock.Mock
}

func (m *MockTransporter) Connect(ctx context.Context, onConnect func(error), onMessage func(string), onDisconnect func(error)) {
	m.Called(ctx, onConnect, onMessage, onDisconnect)
}

func (m *MockTransporter) Send(text string, onSend func(error)) {
	m.Called(text, onSend)
}

func (m *MockTransporter) Close(onClose func(error)) {
	m.Called(onClose)
}
