package mailer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Nuga25/interneefy-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu     sync.Mutex
	sent   []*EmailData
	failAt int // fail the nth send (1-based), 0 for never
	calls  int
}

func (p *fakeProvider) Send(data *EmailData) (*EmailResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failAt != 0 && p.calls == p.failAt {
		return nil, errors.New("smtp refused")
	}
	p.sent = append(p.sent, data)
	return &EmailResult{Success: true, MessageID: "fake-id", Provider: p.Name()}, nil
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) delivered() []*EmailData {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*EmailData, len(p.sent))
	copy(out, p.sent)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestWelcomeEmail(t *testing.T) {
	data, err := WelcomeEmail(WelcomeData{
		FullName:    "Ivy Intern",
		Email:       "ivy@acme.test",
		Password:    "s3cret-temp-pass",
		Role:        models.RoleIntern,
		CompanyName: "Acme",
		LoginURL:    "http://localhost:3000/login",
	})
	require.NoError(t, err)

	assert.Equal(t, "ivy@acme.test", data.To)
	assert.Equal(t, "Welcome to Acme - Your Account Details", data.Subject)
	for _, body := range []string{data.HTML, data.Text} {
		assert.Contains(t, body, "Ivy Intern")
		assert.Contains(t, body, "s3cret-temp-pass")
		assert.Contains(t, body, "Intern")
		assert.Contains(t, body, "http://localhost:3000/login")
	}
}

func TestWelcomeEmailSupervisorTitle(t *testing.T) {
	data, err := WelcomeEmail(WelcomeData{
		FullName:    "Sam",
		Email:       "sam@acme.test",
		Password:    "pw",
		Role:        models.RoleSupervisor,
		CompanyName: "Acme",
	})
	require.NoError(t, err)
	assert.Contains(t, data.Text, "as a Supervisor")
}

func TestServiceDeliversInBackground(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewService(provider, "noreply@acme.test")
	defer svc.Close()

	svc.Enqueue(&EmailData{To: "a@acme.test", Subject: "hi", Text: "x", HTML: "<p>x</p>"})

	waitFor(t, func() bool { return len(provider.delivered()) == 1 })
	assert.Equal(t, "noreply@acme.test", provider.delivered()[0].From, "default sender applied")
}

func TestServiceSurvivesProviderFailure(t *testing.T) {
	provider := &fakeProvider{failAt: 1}
	svc := NewService(provider, "noreply@acme.test")
	defer svc.Close()

	svc.Enqueue(&EmailData{To: "a@acme.test", Subject: "first", Text: "x", HTML: "x"})
	svc.Enqueue(&EmailData{To: "b@acme.test", Subject: "second", Text: "x", HTML: "x"})

	// The first send fails; the worker must keep going and deliver the second.
	waitFor(t, func() bool { return len(provider.delivered()) == 1 })
	assert.Equal(t, "second", provider.delivered()[0].Subject)
}
