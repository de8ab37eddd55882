package mailsmodels

import (
	"fmt"
	"strings"
	"time"
)

type DemoEmailData struct {
	FullName             string
	DemoType             string
	PreferredDate        *time.Time
	AttendeesCount       int
	InterestedProducts   string
	SpecificApplications string
	SpecialRequirements  string
}

func DemoConfirmation(env Envelope, demo DemoEmailData) []byte {
	demoType := capitalize(demo.DemoType)
	subject := fmt.Sprintf("Chiral Robotics demo confirmation - %s demo", demoType)

	date := "To be agreed"
	if demo.PreferredDate != nil {
		date = demo.PreferredDate.Format("January 2, 2006")
	}

	details := ""
	if demo.InterestedProducts != "" {
		details += fmt.Sprintf("<li><strong>Products:</strong> %s</li>", esc(demo.InterestedProducts, ""))
	}
	if demo.SpecificApplications != "" {
		details += fmt.Sprintf("<li><strong>Applications:</strong> %s</li>", esc(demo.SpecificApplications, ""))
	}
	if demo.SpecialRequirements != "" {
		details += fmt.Sprintf("<li><strong>Special requirements:</strong> %s</li>", esc(demo.SpecialRequirements, ""))
	}

	body := fmt.Sprintf(`
	<div style="background-color: #2563eb; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Your demo request</h1></td>
				</tr>
				<tr>
					<td style="padding: 0 30px 30px 30px;">
						<p>Dear %s,</p>
						<p>We have received your demo request. Our team will contact you shortly to schedule it.</p>
						<ul>
							<li><strong>Demo type:</strong> %s demo</li>
							<li><strong>Preferred date:</strong> %s</li>
							<li><strong>Attendees:</strong> %d</li>
							%s
						</ul>
						<p>A sales engineer will reach out within 24 hours.</p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, esc(demo.FullName, "customer"), esc(demoType, ""), date, demo.AttendeesCount, details)

	return compose(env, subject, body)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
