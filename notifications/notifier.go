// Package notifications sends the mails triggered by form submissions.
// Every send is best effort: failures are logged and never returned.
package notifications

import (
	"context"

	"lead-capture-backend/config"
	"lead-capture-backend/models"
	"lead-capture-backend/scoring"
	"lead-capture-backend/utils"
	mailsmodels "lead-capture-backend/utils/mails-models"

	"golang.org/x/sync/errgroup"
)

type Mailer interface {
	Send(to []string, cc []string, msg []byte) error
}

type Notifier struct {
	mailer Mailer
	from   string
	sales  []string
	team   []string
}

// New builds a notifier. A nil mailer disables sending.
func New(mailer Mailer, cfg config.MailConfig) *Notifier {
	var sales []string
	if cfg.SalesEmail != "" {
		sales = []string{cfg.SalesEmail}
	}
	return &Notifier{
		mailer: mailer,
		from:   cfg.DefaultSender,
		sales:  sales,
		team:   cfg.SalesRecipients(),
	}
}

// LeadSubmitted sends the internal notification and the submitter confirmation concurrently
// and waits for both.
func (n *Notifier) LeadSubmitted(ctx context.Context, lead *models.Lead) {
	data := leadData(lead)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		env := mailsmodels.Envelope{From: n.from, To: n.team}
		n.send(lead.ID, "lead notification", env, mailsmodels.LeadNotification(env, data))
		return nil
	})
	g.Go(func() error {
		env := mailsmodels.Envelope{From: n.from, To: []string{lead.Email}}
		n.send(lead.ID, "lead confirmation", env, mailsmodels.LeadConfirmation(env, data))
		return nil
	})
	_ = g.Wait()
}

// DemoRequested confirms a demo to the submitter with sales in copy.
func (n *Notifier) DemoRequested(ctx context.Context, lead *models.Lead, demo *models.DemoRequest) {
	env := mailsmodels.Envelope{From: n.from, To: []string{lead.Email}, Cc: n.sales}
	msg := mailsmodels.DemoConfirmation(env, mailsmodels.DemoEmailData{
		FullName:             lead.FullName(),
		DemoType:             string(demo.DemoType),
		PreferredDate:        demo.PreferredDate,
		AttendeesCount:       demo.AttendeesCount,
		InterestedProducts:   deref(demo.InterestedProducts),
		SpecificApplications: deref(demo.SpecificApplications),
		SpecialRequirements:  deref(demo.SpecialRequirements),
	})
	n.send(lead.ID, "demo confirmation", env, msg)
}

// ContactSubmitted forwards a contact form to sales and confirms receipt to the sender.
func (n *Notifier) ContactSubmitted(ctx context.Context, form *models.ContactForm) {
	data := mailsmodels.ContactEmailData{
		ID:        form.ID,
		Name:      form.Name,
		Email:     form.Email,
		Phone:     deref(form.Phone),
		Company:   form.Company,
		Subject:   deref(form.Subject),
		Message:   form.Message,
		FormType:  string(form.FormType),
		CreatedAt: form.CreatedAt,
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		env := mailsmodels.Envelope{From: n.from, To: n.team}
		n.send("", "contact notification", env, mailsmodels.ContactNotification(env, data))
		return nil
	})
	g.Go(func() error {
		env := mailsmodels.Envelope{From: n.from, To: []string{form.Email}}
		n.send("", "contact confirmation", env, mailsmodels.ContactConfirmation(env, data))
		return nil
	})
	_ = g.Wait()
}

func (n *Notifier) send(leadID, kind string, env mailsmodels.Envelope, msg []byte) {
	if n == nil || n.mailer == nil {
		utils.LogWarn("Mail disabled, skipping " + kind)
		return
	}
	if len(env.To) == 0 {
		utils.LogWarn("No recipient for " + kind)
		return
	}
	if err := n.mailer.Send(env.To, env.Cc, msg); err != nil {
		utils.LogErrorWithLead(leadID, err, "Failed to send "+kind)
		return
	}
	utils.LogSuccessWithLead(leadID, kind+" sent")
}

func leadData(l *models.Lead) mailsmodels.LeadEmailData {
	return mailsmodels.LeadEmailData{
		ID:              l.ID,
		FullName:        l.FullName(),
		Email:           l.Email,
		Phone:           deref(l.Phone),
		Company:         l.Company,
		JobTitle:        deref(l.JobTitle),
		CompanySize:     deref(l.CompanySize),
		Industry:        deref(l.Industry),
		Location:        deref(l.Location),
		ApplicationArea: deref(l.ApplicationArea),
		ProjectTimeline: deref(l.ProjectTimeline),
		BudgetRange:     deref(l.BudgetRange),
		Requirements:    deref(l.Requirements),
		Challenges:      deref(l.Challenges),
		LeadScore:       l.LeadScore,
		MaxScore:        scoring.MaxScore,
		CreatedAt:       l.CreatedAt,
	}
}

func deref[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}
