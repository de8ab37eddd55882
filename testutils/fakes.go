package testutils

import (
	"context"
	"sync"

	"lead-capture-backend/models"
)

type SentMail struct {
	To  []string
	Cc  []string
	Msg []byte
}

// FakeMailer records every message it is asked to send.
type FakeMailer struct {
	mu   sync.Mutex
	Err  error
	Sent []SentMail
}

func (m *FakeMailer) Send(to []string, cc []string, msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: to, Cc: cc, Msg: msg})
	return m.Err
}

func (m *FakeMailer) Messages() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.Sent...)
}

// FakeCRM is an in-memory CRM provider.
type FakeCRM struct {
	mu      sync.Mutex
	Err     error
	NextID  string
	Created []string
	Updated []string
	Deals   []string
}

func (f *FakeCRM) Name() string { return "fake" }

func (f *FakeCRM) CreateContact(ctx context.Context, lead models.Lead) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	f.Created = append(f.Created, lead.Email)
	id := f.NextID
	if id == "" {
		id = "crm-" + lead.ID
	}
	return id, nil
}

func (f *FakeCRM) UpdateContact(ctx context.Context, id string, lead models.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Updated = append(f.Updated, id)
	return nil
}

func (f *FakeCRM) CreateDeal(ctx context.Context, lead models.Lead, demo *models.DemoRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	f.Deals = append(f.Deals, lead.Company)
	return "deal-" + lead.ID, nil
}
