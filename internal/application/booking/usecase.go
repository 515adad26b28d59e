package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/domain"
	domainbilling "github.com/flightdesk/flightdesk-api/internal/domain/billing"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// BookingUseCase owns the booking lifecycle and the check-out/check-in
// workflow, including the authorization gate and the override escape hatch.
type BookingUseCase struct {
	bookingRepo     repository.BookingRepository
	aircraftRepo    repository.AircraftRepository
	authRepo        repository.AuthorizationRepository
	observationRepo repository.ObservationRepository
	userRepo        repository.UserRepository
	txRunner        CheckInTxRunner
	settings        SettingsReader
}

// NewBookingUseCase builds the use case.
func NewBookingUseCase(
	bookingRepo repository.BookingRepository,
	aircraftRepo repository.AircraftRepository,
	authRepo repository.AuthorizationRepository,
	observationRepo repository.ObservationRepository,
	userRepo repository.UserRepository,
	txRunner CheckInTxRunner,
	settings SettingsReader,
) *BookingUseCase {
	return &BookingUseCase{
		bookingRepo:     bookingRepo,
		aircraftRepo:    aircraftRepo,
		authRepo:        authRepo,
		observationRepo: observationRepo,
		userRepo:        userRepo,
		txRunner:        txRunner,
		settings:        settings,
	}
}

// Create reserves an aircraft for a member.
func (uc *BookingUseCase) Create(ctx context.Context, in dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if in.AircraftID == "" || in.MemberID == "" || !in.EndTime.After(in.StartTime) {
		return nil, domain.ErrInvalidInput
	}
	switch in.FlightType {
	case entity.FlightTypeDual, entity.FlightTypeSolo, entity.FlightTypePrivate:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.FlightType == entity.FlightTypeDual && in.InstructorID == "" {
		return nil, domain.ErrInvalidInput
	}
	aircraft, err := uc.aircraftRepo.GetByID(in.AircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft == nil {
		return nil, domain.ErrNotFound
	}
	if aircraft.Status != entity.AircraftStatusActive {
		return nil, domain.ErrConflict
	}
	member, err := uc.userRepo.GetByID(in.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	b := &entity.Booking{
		ID:           uuid.New().String(),
		AircraftID:   in.AircraftID,
		MemberID:     in.MemberID,
		InstructorID: in.InstructorID,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		FlightType:   in.FlightType,
		Status:       entity.BookingStatusConfirmed,
		Remarks:      in.Remarks,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.bookingRepo.Create(b); err != nil {
		return nil, err
	}
	return toBookingResponse(b, ""), nil
}

// Get returns one booking.
func (uc *BookingUseCase) Get(ctx context.Context, id string) (*dto.BookingResponse, error) {
	b, err := uc.bookingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBookingResponse(b, ""), nil
}

// ListByMember returns a member's bookings.
func (uc *BookingUseCase) ListByMember(ctx context.Context, memberID string, page dto.PageRequest) ([]*dto.BookingResponse, error) {
	page.DefaultPage()
	list, err := uc.bookingRepo.ListByMember(memberID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResponse(b, ""))
	}
	return out, nil
}

// Cancel voids a booking that has not been checked out.
func (uc *BookingUseCase) Cancel(ctx context.Context, id string) (*dto.BookingResponse, error) {
	b, err := uc.bookingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.Status != entity.BookingStatusConfirmed {
		return nil, domain.ErrInvalidTransition
	}
	b.Status = entity.BookingStatusCancelled
	b.UpdatedAt = time.Now()
	if err := uc.bookingRepo.Update(b); err != nil {
		return nil, err
	}
	return toBookingResponse(b, ""), nil
}

// RecordOverride writes the authorization override audit fields on the
// booking. This is deliberately a separate write from check-out: the pair is
// two sequential updates with no atomicity guarantee, acceptable because
// check-out itself is retryable.
func (uc *BookingUseCase) RecordOverride(ctx context.Context, id, byUserID, reason string) (*dto.BookingResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.bookingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.Status != entity.BookingStatusConfirmed {
		return nil, domain.ErrConflict
	}
	b.Override = &entity.AuthorizationOverride{By: byUserID, At: time.Now(), Reason: reason}
	b.UpdatedAt = time.Now()
	if err := uc.bookingRepo.Update(b); err != nil {
		return nil, err
	}
	return toBookingResponse(b, ""), nil
}

// CheckOut dispatches the flight. Solo flights on aircraft that require
// authorization are blocked unless an approved authorization or a recorded
// override exists. Repeating a check-out returns the current state unchanged.
func (uc *BookingUseCase) CheckOut(ctx context.Context, id string, in dto.CheckOutRequest) (*dto.BookingResponse, error) {
	b, err := uc.bookingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.Status == entity.BookingStatusCheckedOut {
		// Idempotent retry after a crash between override and check-out.
		return toBookingResponse(b, ""), nil
	}
	if b.Status != entity.BookingStatusConfirmed {
		return nil, domain.ErrInvalidTransition
	}
	aircraft, err := uc.aircraftRepo.GetByID(b.AircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft == nil {
		return nil, domain.ErrNotFound
	}
	if aircraft.Status != entity.AircraftStatusActive {
		return nil, domain.ErrConflict
	}

	// Grounding observations park the aircraft regardless of authorization.
	open, err := uc.observationRepo.ListByAircraft(aircraft.ID, true)
	if err != nil {
		return nil, err
	}
	for _, o := range open {
		if o.Severity == entity.ObservationSeverityGrounding {
			return nil, domain.ErrConflict
		}
	}

	if b.NeedsAuthorization(aircraft.RequiresAuthorization) && b.Override == nil {
		approved, err := uc.authRepo.GetApprovedByBooking(b.ID)
		if err != nil {
			return nil, err
		}
		if approved == nil {
			return nil, domain.ErrAuthorizationRequired
		}
	}

	if in.TachStart.IsNegative() || in.HobbsStart.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	b.Status = entity.BookingStatusCheckedOut
	b.TachStart = in.TachStart
	b.HobbsStart = in.HobbsStart
	b.CheckedOutAt = &now
	b.UpdatedAt = now
	if err := uc.bookingRepo.Update(b); err != nil {
		return nil, err
	}
	return toBookingResponse(b, ""), nil
}

// CheckIn closes the flight: records end meters, completes the booking,
// advances the aircraft times and optionally creates a draft invoice with the
// flight-time lines, all in one transaction.
func (uc *BookingUseCase) CheckIn(ctx context.Context, id string, in dto.CheckInRequest) (*dto.BookingResponse, error) {
	b, err := uc.bookingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.Status != entity.BookingStatusCheckedOut {
		return nil, domain.ErrInvalidTransition
	}
	if in.TachEnd.LessThan(b.TachStart) || in.HobbsEnd.LessThan(b.HobbsStart) {
		return nil, domain.ErrInvalidInput
	}
	aircraft, err := uc.aircraftRepo.GetByID(b.AircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	b.TachEnd = in.TachEnd
	b.HobbsEnd = in.HobbsEnd
	b.CheckedInAt = &now
	b.Status = entity.BookingStatusCompleted
	b.UpdatedAt = now

	flightTime := b.FlightTime()
	aircraft.TachTime = aircraft.TachTime.Add(in.TachEnd.Sub(b.TachStart))
	aircraft.HobbsTime = aircraft.HobbsTime.Add(flightTime)
	aircraft.UpdatedAt = now

	var inv *entity.Invoice
	var items []*entity.InvoiceItem
	if in.GenerateInvoice && flightTime.GreaterThan(decimal.Zero) {
		inv, items = uc.buildFlightInvoice(b, aircraft, flightTime, in.InstructorRate, now)
	}

	err = uc.txRunner.RunCheckIn(ctx, func(
		bookingRepo repository.BookingRepository,
		aircraftRepo repository.AircraftRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := bookingRepo.Update(b); err != nil {
			return err
		}
		if err := aircraftRepo.Update(aircraft); err != nil {
			return err
		}
		if inv != nil {
			if err := invoiceRepo.Create(inv); err != nil {
				return err
			}
			for _, item := range items {
				if err := invoiceRepo.CreateItem(item); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invoiceID := ""
	if inv != nil {
		invoiceID = inv.ID
	}
	return toBookingResponse(b, invoiceID), nil
}

// buildFlightInvoice assembles the draft invoice for a completed flight:
// aircraft hire at the hobbs time, plus instructor time on dual flights.
func (uc *BookingUseCase) buildFlightInvoice(b *entity.Booking, aircraft *entity.Aircraft, flightTime, instructorRate decimal.Decimal, now time.Time) (*entity.Invoice, []*entity.InvoiceItem) {
	taxRate, err := decimal.NewFromString(uc.settings.GetString("billing", "default_tax_rate", "0.15"))
	if err != nil || taxRate.IsNegative() {
		taxRate = decimal.RequireFromString("0.15")
	}
	dueDays := uc.settings.GetInt("billing", "invoice_due_days", 14)

	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		MemberID:  b.MemberID,
		BookingID: b.ID,
		Number:    fmt.Sprintf("INV-%d", now.Unix()),
		IssueDate: now,
		DueDate:   now.AddDate(0, 0, dueDays),
		Status:    entity.InvoiceStatusDraft,
		Notes:     fmt.Sprintf("Flight %s, %s", aircraft.Registration, now.Format("02 Jan 2006")),
		CreatedAt: now,
		UpdatedAt: now,
	}

	var items []*entity.InvoiceItem
	addLine := func(description string, rate decimal.Decimal) {
		calc := domainbilling.ComputeItem(flightTime, rate, taxRate, true)
		items = append(items, &entity.InvoiceItem{
			ID:            uuid.New().String(),
			InvoiceID:     inv.ID,
			Description:   description,
			Quantity:      flightTime,
			UnitPrice:     rate,
			TaxRate:       taxRate,
			Taxable:       true,
			Amount:        calc.Amount,
			TaxAmount:     calc.TaxAmount,
			LineTotal:     calc.LineTotal,
			RateInclusive: calc.RateInclusive,
		})
	}
	addLine(fmt.Sprintf("Aircraft hire %s (%s h)", aircraft.Registration, flightTime), aircraft.HourlyRate)
	if b.FlightType == entity.FlightTypeDual && instructorRate.GreaterThan(decimal.Zero) {
		addLine(fmt.Sprintf("Instructor time (%s h)", flightTime), instructorRate)
	}

	amounts := make([]domainbilling.ItemAmounts, 0, len(items))
	for _, item := range items {
		amounts = append(amounts, domainbilling.ItemAmounts{
			Amount:        item.Amount,
			TaxAmount:     item.TaxAmount,
			LineTotal:     item.LineTotal,
			RateInclusive: item.RateInclusive,
		})
	}
	totals := domainbilling.Totals(amounts)
	inv.Subtotal = totals.Subtotal
	inv.TaxTotal = totals.TaxTotal
	inv.TotalAmount = totals.TotalAmount
	return inv, items
}

func toBookingResponse(b *entity.Booking, invoiceID string) *dto.BookingResponse {
	out := &dto.BookingResponse{
		ID:           b.ID,
		AircraftID:   b.AircraftID,
		MemberID:     b.MemberID,
		InstructorID: b.InstructorID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		FlightType:   b.FlightType,
		Status:       b.Status,
		Remarks:      b.Remarks,
		TachStart:    b.TachStart,
		TachEnd:      b.TachEnd,
		HobbsStart:   b.HobbsStart,
		HobbsEnd:     b.HobbsEnd,
		FlightTime:   b.FlightTime(),
		CheckedOutAt: b.CheckedOutAt,
		CheckedInAt:  b.CheckedInAt,
		InvoiceID:    invoiceID,
	}
	if b.Override != nil {
		out.Override = &dto.OverrideResponse{By: b.Override.By, At: b.Override.At, Reason: b.Override.Reason}
	}
	return out
}
