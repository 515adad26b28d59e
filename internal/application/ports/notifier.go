package ports

import (
	"context"
	"time"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
)

// Notifier sends member-facing transactional email. Implementations must be
// safe for concurrent use. Delivery is best-effort: callers log failures and
// never roll back the triggering write.
type Notifier interface {
	InvoiceIssued(ctx context.Context, to, name string, inv *entity.Invoice) error
	MembershipExpiring(ctx context.Context, to, name string, expiry time.Time, daysLeft int) error
	AuthorizationDecided(ctx context.Context, to, name string, auth *entity.FlightAuthorization) error
}
