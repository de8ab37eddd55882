package mailsmodels

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeadNotification_HeadersAndEscaping(t *testing.T) {
	msg := string(LeadNotification(Envelope{
		From: "noreply@chiral-robotics.com",
		To:   []string{"sales@chiral-robotics.com", "admin@chiral-robotics.com"},
	}, LeadEmailData{
		ID:           "lead-1",
		FullName:     "Jean Dupont",
		Email:        "jean@example.com",
		Company:      "Grid <Energy>",
		Requirements: "<script>alert(1)</script>",
		LeadScore:    34,
		MaxScore:     50,
		CreatedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}))

	assert.True(t, strings.HasPrefix(msg, "From: noreply@chiral-robotics.com\r\n"))
	assert.Contains(t, msg, "To: sales@chiral-robotics.com, admin@chiral-robotics.com\r\n")
	assert.Contains(t, msg, "Subject: New lead: Grid <Energy> - Jean Dupont\r\n")
	assert.Contains(t, msg, "Grid &lt;Energy&gt;")
	assert.NotContains(t, msg, "<script>")
	assert.Contains(t, msg, "34/50")
	assert.Contains(t, msg, "#dc2626")
	assert.Contains(t, msg, "Not provided")
	assert.Contains(t, msg, "2024-03-01 10:00:00")
}

func TestCompose_StripsNewlinesFromSubject(t *testing.T) {
	msg := string(ContactNotification(Envelope{To: []string{"sales@x.io"}}, ContactEmailData{
		Subject: "hello\r\nBcc: victim@x.io",
		Message: "hi",
	}))

	assert.Contains(t, msg, "Subject: Website contact form: helloBcc: victim@x.io\r\n")
	assert.NotContains(t, msg, "\r\nBcc:")
}

func TestDemoConfirmation(t *testing.T) {
	date := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	msg := string(DemoConfirmation(Envelope{To: []string{"jean@example.com"}, Cc: []string{"sales@x.io"}}, DemoEmailData{
		FullName:       "Jean Dupont",
		DemoType:       "onsite",
		PreferredDate:  &date,
		AttendeesCount: 3,
	}))

	assert.Contains(t, msg, "Cc: sales@x.io\r\n")
	assert.Contains(t, msg, "Subject: Chiral Robotics demo confirmation - Onsite demo")
	assert.Contains(t, msg, "May 20, 2024")
	assert.Contains(t, msg, "<strong>Attendees:</strong> 3")
}

func TestContactConfirmation_DefaultSubject(t *testing.T) {
	msg := string(ContactConfirmation(Envelope{To: []string{"a@b.io"}}, ContactEmailData{Name: "Ann", Message: "question"}))

	assert.Contains(t, msg, `"General inquiry"`)
	assert.Contains(t, msg, "Hello Ann,")
}
