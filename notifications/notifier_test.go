package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"lead-capture-backend/config"
	"lead-capture-backend/models"
	"lead-capture-backend/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	goleak.VerifyTestMain(m)
}

var mailCfg = config.MailConfig{
	DefaultSender: "noreply@chiral-robotics.com",
	SalesEmail:    "sales@chiral-robotics.com",
	AdminEmail:    "admin@chiral-robotics.com",
}

func lead() *models.Lead {
	phone := "+33 6 00 00 00 00"
	return &models.Lead{
		ID:        "lead-1",
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     "jean@example.com",
		Company:   "Grid Energy",
		Phone:     &phone,
		LeadScore: 22,
		CreatedAt: time.Now(),
	}
}

func recipients(sent []testutils.SentMail) [][]string {
	var out [][]string
	for _, m := range sent {
		out = append(out, m.To)
	}
	return out
}

func TestLeadSubmitted_SendsBothMails(t *testing.T) {
	mailer := &testutils.FakeMailer{}
	n := New(mailer, mailCfg)

	n.LeadSubmitted(context.Background(), lead())

	sent := mailer.Messages()
	require.Len(t, sent, 2)
	assert.ElementsMatch(t, [][]string{
		{"sales@chiral-robotics.com", "admin@chiral-robotics.com"},
		{"jean@example.com"},
	}, recipients(sent))
	for _, m := range sent {
		if m.To[0] == "sales@chiral-robotics.com" {
			assert.Contains(t, string(m.Msg), "22/50")
			assert.Contains(t, string(m.Msg), "+33 6 00 00 00 00")
		}
	}
}

func TestLeadSubmitted_FailureIsSwallowed(t *testing.T) {
	mailer := &testutils.FakeMailer{Err: errors.New("smtp down")}
	n := New(mailer, mailCfg)

	assert.NotPanics(t, func() { n.LeadSubmitted(context.Background(), lead()) })
	assert.Len(t, mailer.Messages(), 2)
}

func TestDemoRequested_CopiesSales(t *testing.T) {
	mailer := &testutils.FakeMailer{}
	n := New(mailer, mailCfg)

	n.DemoRequested(context.Background(), lead(), &models.DemoRequest{DemoType: models.DemoTypePilot, AttendeesCount: 4})

	sent := mailer.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"jean@example.com"}, sent[0].To)
	assert.Equal(t, []string{"sales@chiral-robotics.com"}, sent[0].Cc)
	assert.Contains(t, string(sent[0].Msg), "Pilot demo")
}

func TestContactSubmitted(t *testing.T) {
	mailer := &testutils.FakeMailer{}
	n := New(mailer, config.MailConfig{DefaultSender: "noreply@x.io", SalesEmail: "sales@x.io"})

	n.ContactSubmitted(context.Background(), &models.ContactForm{
		ID: "form-1", Name: "Ann", Email: "ann@x.io", Company: "Co", Message: "Pricing?",
		FormType: models.ContactFormSupport,
	})

	assert.ElementsMatch(t, [][]string{{"sales@x.io"}, {"ann@x.io"}}, recipients(mailer.Messages()))
}

func TestNilMailerSkips(t *testing.T) {
	n := New(nil, mailCfg)
	assert.NotPanics(t, func() {
		n.LeadSubmitted(context.Background(), lead())
		n.DemoRequested(context.Background(), lead(), &models.DemoRequest{DemoType: models.DemoTypeVirtual})
	})
}
