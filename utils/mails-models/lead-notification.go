package mailsmodels

import (
	"fmt"
	"time"
)

type LeadEmailData struct {
	ID              string
	FullName        string
	Email           string
	Phone           string
	Company         string
	JobTitle        string
	CompanySize     string
	Industry        string
	Location        string
	ApplicationArea string
	ProjectTimeline string
	BudgetRange     string
	Requirements    string
	Challenges      string
	LeadScore       int
	MaxScore        int
	CreatedAt       time.Time
}

func scoreColor(score int) string {
	switch {
	case score >= 30:
		return "#dc2626"
	case score >= 20:
		return "#ea580c"
	default:
		return "#16a34a"
	}
}

// LeadNotification is the internal mail sent to sales with the full lead snapshot.
func LeadNotification(env Envelope, lead LeadEmailData) []byte {
	subject := fmt.Sprintf("New lead: %s - %s", lead.Company, lead.FullName)

	extra := ""
	if lead.Requirements != "" {
		extra += fmt.Sprintf(`<div style="background-color: #f8f9fa; padding: 15px;"><h4>Requirements</h4><p>%s</p></div>`, esc(lead.Requirements, ""))
	}
	if lead.Challenges != "" {
		extra += fmt.Sprintf(`<div style="background-color: #f8f9fa; padding: 15px;"><h4>Challenges</h4><p>%s</p></div>`, esc(lead.Challenges, ""))
	}

	body := fmt.Sprintf(`
	<div style="background-color: #2563eb; width: 100%%; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;">
			<tbody>
				<tr><td colspan="2"><h1 style="text-align:center">New lead</h1></td></tr>
				<tr><td colspan="2" style="text-align:center"><h3>Score: <span style="color: %s">%d/%d</span></h3></td></tr>
				<tr><td><strong>Name</strong></td><td>%s</td></tr>
				<tr><td><strong>Email</strong></td><td><a href="mailto:%s">%s</a></td></tr>
				<tr><td><strong>Phone</strong></td><td>%s</td></tr>
				<tr><td><strong>Company</strong></td><td>%s</td></tr>
				<tr><td><strong>Job title</strong></td><td>%s</td></tr>
				<tr><td><strong>Company size</strong></td><td>%s</td></tr>
				<tr><td><strong>Industry</strong></td><td>%s</td></tr>
				<tr><td><strong>Location</strong></td><td>%s</td></tr>
				<tr><td><strong>Application area</strong></td><td>%s</td></tr>
				<tr><td><strong>Project timeline</strong></td><td>%s</td></tr>
				<tr><td><strong>Budget range</strong></td><td>%s</td></tr>
				<tr><td><strong>Created</strong></td><td>%s</td></tr>
			</tbody>
		</table>
		%s
		<p style="color: #ffffff; font-size: 12px; text-align:center">Lead %s</p>
	</div>
`,
		scoreColor(lead.LeadScore), lead.LeadScore, lead.MaxScore,
		esc(lead.FullName, "-"),
		esc(lead.Email, ""), esc(lead.Email, ""),
		esc(lead.Phone, "Not provided"),
		esc(lead.Company, "-"),
		esc(lead.JobTitle, "Not provided"),
		esc(lead.CompanySize, "Not provided"),
		esc(lead.Industry, "Not provided"),
		esc(lead.Location, "Not provided"),
		esc(lead.ApplicationArea, "Not provided"),
		esc(lead.ProjectTimeline, "Not provided"),
		esc(lead.BudgetRange, "Not provided"),
		lead.CreatedAt.Format("2006-01-02 15:04:05"),
		extra,
		esc(lead.ID, ""),
	)

	return compose(env, subject, body)
}

// LeadConfirmation thanks the submitter for their interest.
func LeadConfirmation(env Envelope, lead LeadEmailData) []byte {
	subject := "Thank you for your interest in Chiral Robotics"
	body := fmt.Sprintf(`
	<div style="background-color: #2563eb; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Thank you, %s!</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p>We have received your request on behalf of %s.</p>
						<p>A member of our sales team will contact you within one business day.</p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, esc(lead.FullName, "there"), esc(lead.Company, "your company"))

	return compose(env, subject, body)
}
