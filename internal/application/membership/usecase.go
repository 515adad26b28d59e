package membership

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/application/ports"
	"github.com/flightdesk/flightdesk-api/internal/domain"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	domainmembership "github.com/flightdesk/flightdesk-api/internal/domain/membership"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// Defaults when the membership settings are absent.
const (
	DefaultGraceDays        = 30
	DefaultExpiringSoonDays = 30
)

// SettingsReader is the minimal settings contract membership needs.
type SettingsReader interface {
	GetInt(category, key string, def int) int
}

// InvoiceCreator creates the renewal fee invoice; implemented by the billing
// use case.
type InvoiceCreator interface {
	Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
}

// MembershipUseCase membership administration: create, renew, fee payment,
// expiry reminders. Status is always derived on read, never stored.
type MembershipUseCase struct {
	membershipRepo repository.MembershipRepository
	typeRepo       repository.MembershipTypeRepository
	userRepo       repository.UserRepository
	settings       SettingsReader
	invoices       InvoiceCreator
	notifier       ports.Notifier
	now            func() time.Time
}

// NewMembershipUseCase builds the use case. invoices and notifier may be nil.
func NewMembershipUseCase(
	membershipRepo repository.MembershipRepository,
	typeRepo repository.MembershipTypeRepository,
	userRepo repository.UserRepository,
	settings SettingsReader,
	invoices InvoiceCreator,
	notifier ports.Notifier,
) *MembershipUseCase {
	return &MembershipUseCase{
		membershipRepo: membershipRepo,
		typeRepo:       typeRepo,
		userRepo:       userRepo,
		settings:       settings,
		invoices:       invoices,
		notifier:       notifier,
		now:            time.Now,
	}
}

// Create opens a membership for a member, expiring after the type's duration.
func (uc *MembershipUseCase) Create(ctx context.Context, in dto.CreateMembershipRequest) (*dto.MembershipResponse, error) {
	if in.MemberID == "" || in.TypeID == "" {
		return nil, domain.ErrInvalidInput
	}
	member, err := uc.userRepo.GetByID(in.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrNotFound
	}
	mType, err := uc.typeRepo.GetByID(in.TypeID)
	if err != nil {
		return nil, err
	}
	if mType == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	start := now
	if in.StartDate != nil {
		start = *in.StartDate
	}
	m := &entity.Membership{
		ID:         uuid.New().String(),
		MemberID:   in.MemberID,
		TypeID:     in.TypeID,
		StartDate:  start,
		ExpiryDate: start.AddDate(0, mType.DurationMonths, 0),
		FeePaid:    in.FeePaid,
		AutoRenew:  in.AutoRenew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.membershipRepo.Create(m); err != nil {
		return nil, err
	}
	return uc.toResponse(m, mType, ""), nil
}

// GetByMember returns the member's current membership with derived status.
// A member with no record gets status "none".
func (uc *MembershipUseCase) GetByMember(ctx context.Context, memberID string) (*dto.MembershipResponse, error) {
	m, err := uc.membershipRepo.GetCurrentByMember(memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return &dto.MembershipResponse{MemberID: memberID, Status: entity.MembershipStatusNone}, nil
	}
	var mType *entity.MembershipType
	if t, err := uc.typeRepo.GetByID(m.TypeID); err == nil {
		mType = t
	}
	return uc.toResponse(m, mType, ""), nil
}

// Renew extends the membership by its type's duration, counted from expiry
// for still-active records and from today for lapsed ones. The fee resets to
// unpaid and a fee invoice is generated. The type is reused unless the
// request names another.
func (uc *MembershipUseCase) Renew(ctx context.Context, id string, in dto.RenewMembershipRequest) (*dto.MembershipResponse, error) {
	m, err := uc.membershipRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	typeID := m.TypeID
	if in.TypeID != "" {
		typeID = in.TypeID
	}
	mType, err := uc.typeRepo.GetByID(typeID)
	if err != nil {
		return nil, err
	}
	if mType == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	base := m.ExpiryDate
	if base.Before(now) {
		base = now
	}
	m.TypeID = typeID
	m.ExpiryDate = base.AddDate(0, mType.DurationMonths, 0)
	m.FeePaid = false
	m.UpdatedAt = now
	if err := uc.membershipRepo.Update(m); err != nil {
		return nil, err
	}

	invoiceID := ""
	if uc.invoices != nil {
		inv, err := uc.invoices.Create(ctx, dto.CreateInvoiceRequest{
			MemberID: m.MemberID,
			Notes:    "Membership renewal: " + mType.Name,
			Items: []dto.InvoiceItemInput{{
				Description: mType.Name + " membership fee",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   mType.Price,
				TaxRate:     decimal.Zero,
				Taxable:     false,
			}},
		})
		if err != nil {
			log.Warn().Err(err).Str("membership_id", m.ID).Msg("renewal invoice creation failed")
		} else {
			invoiceID = inv.ID
		}
	}
	return uc.toResponse(m, mType, invoiceID), nil
}

// MarkFeePaid records the fee payment, unlocking the date-derived states.
func (uc *MembershipUseCase) MarkFeePaid(ctx context.Context, id string) (*dto.MembershipResponse, error) {
	m, err := uc.membershipRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.FeePaid {
		return nil, domain.ErrConflict
	}
	m.FeePaid = true
	m.UpdatedAt = uc.now()
	if err := uc.membershipRepo.Update(m); err != nil {
		return nil, err
	}
	return uc.toResponse(m, nil, ""), nil
}

// SendExpiryReminders emails members whose paid memberships expire within the
// configured window. Returns how many reminders were attempted.
func (uc *MembershipUseCase) SendExpiryReminders(ctx context.Context) (int, error) {
	if uc.notifier == nil {
		return 0, nil
	}
	now := uc.now()
	window := uc.settings.GetInt("membership", "expiring_soon_days", DefaultExpiringSoonDays)
	expiring, err := uc.membershipRepo.ListExpiringBetween(now, now.AddDate(0, 0, window))
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, m := range expiring {
		member, err := uc.userRepo.GetByID(m.MemberID)
		if err != nil || member == nil {
			continue
		}
		daysLeft := int(m.ExpiryDate.Sub(now).Hours() / 24)
		if err := uc.notifier.MembershipExpiring(ctx, member.Email, member.Name, m.ExpiryDate, daysLeft); err != nil {
			log.Warn().Err(err).Str("membership_id", m.ID).Msg("expiry reminder email failed")
			continue
		}
		sent++
	}
	return sent, nil
}

// CreateType adds a membership tier.
func (uc *MembershipUseCase) CreateType(ctx context.Context, name string, price decimal.Decimal, durationMonths int, benefits []string) (*dto.MembershipTypeResponse, error) {
	if name == "" || durationMonths <= 0 || price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	t := &entity.MembershipType{
		ID:             uuid.New().String(),
		Name:           name,
		Price:          price,
		DurationMonths: durationMonths,
		Benefits:       benefits,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.typeRepo.Create(t); err != nil {
		return nil, err
	}
	return toTypeResponse(t), nil
}

// ListTypes returns all membership tiers.
func (uc *MembershipUseCase) ListTypes(ctx context.Context) ([]*dto.MembershipTypeResponse, error) {
	types, err := uc.typeRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MembershipTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, toTypeResponse(t))
	}
	return out, nil
}

func (uc *MembershipUseCase) toResponse(m *entity.Membership, mType *entity.MembershipType, invoiceID string) *dto.MembershipResponse {
	now := uc.now()
	graceDays := uc.settings.GetInt("membership", "grace_period_days", DefaultGraceDays)
	soonDays := uc.settings.GetInt("membership", "expiring_soon_days", DefaultExpiringSoonDays)
	out := &dto.MembershipResponse{
		ID:            m.ID,
		MemberID:      m.MemberID,
		TypeID:        m.TypeID,
		StartDate:     m.StartDate,
		ExpiryDate:    m.ExpiryDate,
		FeePaid:       m.FeePaid,
		AutoRenew:     m.AutoRenew,
		Status:        domainmembership.Status(m, graceDays, now),
		ExpiringSoon:  domainmembership.IsExpiringSoon(m, soonDays, now),
		GraceDaysLeft: domainmembership.GracePeriodRemaining(m, graceDays, now),
		InvoiceID:     invoiceID,
	}
	if mType != nil {
		out.TypeName = mType.Name
	}
	return out
}

func toTypeResponse(t *entity.MembershipType) *dto.MembershipTypeResponse {
	return &dto.MembershipTypeResponse{
		ID:             t.ID,
		Name:           t.Name,
		Price:          t.Price,
		DurationMonths: t.DurationMonths,
		Benefits:       t.Benefits,
	}
}
