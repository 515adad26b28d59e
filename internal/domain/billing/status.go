package billing

import "github.com/flightdesk/flightdesk-api/internal/domain/entity"

// Invoice lifecycle actions.
const (
	ActionIssue   = "issue"
	ActionPay     = "pay"
	ActionOverdue = "overdue"
	ActionCancel  = "cancel"
	ActionRefund  = "refund"
)

// invoiceTransitions maps action -> allowed source statuses -> result.
var invoiceTransitions = map[string]map[string]string{
	ActionIssue: {
		entity.InvoiceStatusDraft: entity.InvoiceStatusPending,
	},
	ActionPay: {
		entity.InvoiceStatusPending: entity.InvoiceStatusPaid,
		entity.InvoiceStatusOverdue: entity.InvoiceStatusPaid,
	},
	ActionOverdue: {
		entity.InvoiceStatusPending: entity.InvoiceStatusOverdue,
	},
	ActionCancel: {
		entity.InvoiceStatusDraft:   entity.InvoiceStatusCancelled,
		entity.InvoiceStatusPending: entity.InvoiceStatusCancelled,
		entity.InvoiceStatusOverdue: entity.InvoiceStatusCancelled,
	},
	ActionRefund: {
		entity.InvoiceStatusPaid: entity.InvoiceStatusRefunded,
	},
}

// NextStatus returns the resulting invoice status for an action, ok=false
// when the transition is not allowed (paid is immutable except for refund).
func NextStatus(from, action string) (to string, ok bool) {
	row, ok := invoiceTransitions[action]
	if !ok {
		return "", false
	}
	to, ok = row[from]
	return to, ok
}
