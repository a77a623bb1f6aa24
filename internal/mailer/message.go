// Package mailer delivers quote and summary emails. Two transports
// implement the delivery service's MailTransport contract: SMTP (go-mail,
// STARTTLS) and AWS SES. Message content is built here from fixed formats;
// there is deliberately no templating engine.
package mailer

import (
	"fmt"
	"time"

	"github.com/mindfuel/daily-quotes/internal/domain"
)

// quoteSubject formats the subject for a quote email.
func quoteSubject(freq domain.Frequency) string {
	return fmt.Sprintf("Your %s Dose of Wellness ✨", freq)
}

// summarySubject formats the subject for the admin summary email.
func summarySubject(envName string) string {
	return fmt.Sprintf("MindFuel Daily Summary — %s", envName)
}

const quoteTextFormat = `Hi %s,

Here's your dose of calm and clarity for today:

"%s"
— %s

Take a moment to breathe, stretch, or simply sit with this thought.
Small reminders like these help you realign with what matters most—your peace, your growth, your balance.

See you soon for another spark of inspiration 🌿

Warmly,
The MindFuel Team
`

const quoteHTMLFormat = `<html>
  <body style="font-family: Georgia, sans-serif; line-height: 1.6; color: #333;">
    <p>Hi <b>%s</b>,</p>

    <p>Here's your dose of calm and clarity today:</p>

    <blockquote style="font-style: italic; color: #333;">
      "%s"<br>
      — <b>%s</b>
    </blockquote>

    <p style="margin-top: 25px;">Warmly,<br>
    <b>The MindFuel Team</b><br>
    <a href="https://www.mindfuel.app" style="color:#388e3c; text-decoration:none;">www.mindfuel.app</a></p>
  </body>
</html>
`

// quoteBodies renders the plain-text and HTML versions of a quote email.
func quoteBodies(name string, q *domain.Quote) (text, html string) {
	text = fmt.Sprintf(quoteTextFormat, name, q.Text, q.Author)
	html = fmt.Sprintf(quoteHTMLFormat, name, q.Text, q.Author)
	return text, html
}

const summaryFormat = `Daily Email Summary — %s
----------------------------------------
Sent:   %d
Failed: %d

Stay inspired,
MindFuel Bot
`

// summaryBody renders the admin summary email body for the given date.
func summaryBody(s domain.DailySummary, day time.Time) string {
	return fmt.Sprintf(summaryFormat, day.Format("2006-01-02"), s.Sent, s.Failed)
}
