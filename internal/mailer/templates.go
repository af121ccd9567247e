package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Kind identifies a notification template.
type Kind string

const (
	KindTicketConfirmation  Kind = "ticket-confirmation"
	KindAssignmentToUser    Kind = "assignment-to-user"
	KindAssignmentToWorker  Kind = "assignment-to-worker"
	KindResolution          Kind = "resolution"
	KindRevertToBearers     Kind = "revert-to-bearers"
	KindRevertToAuthorities Kind = "revert-to-authorities"
	KindTransferNotice      Kind = "transfer-notice"
)

// MessageData carries template fields; each kind reads the subset it needs.
type MessageData struct {
	TicketID        string
	Title           string
	ComplainantName string
	Urgency         string
	ResolveIn       string
	WorkerName      string
	WorkerPhone     string
	Comment         string
	DepartmentName  string
	ActorEmail      string
}

type messageTemplate struct {
	subject *template.Template
	body    *template.Template
}

var templates = map[Kind]messageTemplate{
	KindTicketConfirmation: {
		subject: mustParse("subject", "Grievance Registered: {{.TicketID}}"),
		body: mustParse("ticket-confirmation", `
<p>Dear {{.ComplainantName}},</p>
<p>Your grievance has been registered with ticket ID <b>{{.TicketID}}</b>.</p>
<p>Urgency: {{.Urgency}}. Expected resolution within {{.ResolveIn}}.</p>
<p>Use the ticket ID to track progress at any time.</p>`),
	},
	KindAssignmentToUser: {
		subject: mustParse("subject", "Grievance {{.TicketID}} Assigned"),
		body: mustParse("assignment-to-user", `
<p>Dear {{.ComplainantName}},</p>
<p>Your grievance <b>{{.TicketID}}</b> has been assigned to {{.WorkerName}}{{if .WorkerPhone}} ({{.WorkerPhone}}){{end}} and is now in progress.</p>`),
	},
	KindAssignmentToWorker: {
		subject: mustParse("subject", "Work Order: Grievance {{.TicketID}}"),
		body: mustParse("assignment-to-worker", `
<p>Dear {{.WorkerName}},</p>
<p>You have been assigned grievance <b>{{.TicketID}}</b>: {{.Title}}.</p>
<p>Contact your office bearer{{if .ActorEmail}} ({{.ActorEmail}}){{end}} for details.</p>`),
	},
	KindResolution: {
		subject: mustParse("subject", "Grievance {{.TicketID}} Resolved"),
		body: mustParse("resolution", `
<p>Dear {{.ComplainantName}},</p>
<p>Your grievance <b>{{.TicketID}}</b> has been marked as Resolved.</p>`),
	},
	KindRevertToBearers: {
		subject: mustParse("subject", "Grievance {{.TicketID}} Reverted"),
		body: mustParse("revert-to-bearers", `
<p>Grievance <b>{{.TicketID}}</b> in {{.DepartmentName}} has been reverted by {{.ActorEmail}} with new deadlines.</p>
<p>Comment: {{.Comment}}</p>`),
	},
	KindRevertToAuthorities: {
		subject: mustParse("subject", "Grievance {{.TicketID}} Returned to Level 1"),
		body: mustParse("revert-to-authorities", `
<p>Grievance <b>{{.TicketID}}</b> has been returned to escalation level 1 by {{.ActorEmail}} with new deadlines.</p>
<p>Comment: {{.Comment}}</p>`),
	},
	KindTransferNotice: {
		subject: mustParse("subject", "Grievance {{.TicketID}} Transferred to Your Department"),
		body: mustParse("transfer-notice", `
<p>Grievance <b>{{.TicketID}}</b>: {{.Title}} has been transferred to {{.DepartmentName}}.</p>
<p>The ticket is back in Submitted state with fresh deadlines.</p>`),
	},
}

func mustParse(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(body))
}

// Render produces the subject and HTML body for a notification kind.
func Render(kind Kind, data MessageData) (subject, htmlBody string, err error) {
	tpl, ok := templates[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown notification kind %q", kind)
	}

	var subjectBuf bytes.Buffer
	if err := tpl.subject.Execute(&subjectBuf, data); err != nil {
		return "", "", err
	}

	var bodyBuf bytes.Buffer
	if err := tpl.body.Execute(&bodyBuf, data); err != nil {
		return "", "", err
	}
	return subjectBuf.String(), bodyBuf.String(), nil
}
