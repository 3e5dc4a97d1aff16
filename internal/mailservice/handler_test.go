package mailservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestMailService(mailer Mailer, logger *MockLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())

	return &MailService{
		mb:     new(MockMessageConsumer),
		m:      mailer,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func TestSendWelcomeEmail(t *testing.T) {
	mockMailer := &MockMailer{}
	mockLogger := &MockLogger{}

	s := newTestMailService(mockMailer, mockLogger)
	defer s.Close()

	s.SendWelcomeEmail()

	assert.Eventually(t, func() bool {
		return mockLogger.Logged("welcome email sent")
	}, 2*time.Second, 10*time.Millisecond)

	assert.True(t, mockMailer.IsCalled())
	assert.Equal(t, "test@example.com", mockMailer.GetEmail())
}

func TestSendWelcomeEmailExhaustsRetries(t *testing.T) {
	mockMailer := &MockMailer{err: assert.AnError}
	mockLogger := &MockLogger{}

	s := newTestMailService(mockMailer, mockLogger)
	defer s.Close()

	s.SendWelcomeEmail()

	assert.Eventually(t, func() bool {
		return mockLogger.Logged("could not send welcome email")
	}, 30*time.Second, 50*time.Millisecond)

	assert.Equal(t, 5, mockMailer.Attempts())
	assert.False(t, mockMailer.IsCalled())
}

func TestSendWelcomeEmailStopsOnClose(t *testing.T) {
	mockMailer := &MockMailer{}
	mockLogger := &MockLogger{}

	s := newTestMailService(mockMailer, mockLogger)

	s.SendWelcomeEmail()
	assert.Eventually(t, mockMailer.IsCalled, 2*time.Second, 10*time.Millisecond)

	s.Close()
}
