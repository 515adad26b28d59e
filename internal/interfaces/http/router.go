package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flightdesk/flightdesk-api/internal/application/auth"
	"github.com/flightdesk/flightdesk-api/internal/application/billing"
	"github.com/flightdesk/flightdesk-api/internal/application/booking"
	"github.com/flightdesk/flightdesk-api/internal/application/flightauth"
	"github.com/flightdesk/flightdesk-api/internal/application/membership"
	"github.com/flightdesk/flightdesk-api/internal/application/usecase"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	MembershipUC  *membership.MembershipUseCase
	AircraftUC    *usecase.AircraftUseCase
	ObservationUC *usecase.ObservationUseCase
	BookingUC     *booking.BookingUseCase
	FlightAuthUC  *flightauth.AuthorizationUseCase
	DraftSaver    *flightauth.DraftSaver
	InvoiceUC     *billing.InvoiceUseCase
	InvoicePDFUC  *billing.PDFUseCase
	ReportUC      *usecase.ReportUseCase
	SettingsSvc   *usecase.SettingsService
	JWTSecret     string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	staff := RequireRole(entity.RoleInstructor, entity.RoleAdmin, entity.RoleOwner)
	admin := RequireRole(entity.RoleAdmin, entity.RoleOwner)

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Members
	members := protected.Group("/members", staff)
	memberHandler := NewMemberHandler(deps.AuthUC)
	members.Post("/", admin, memberHandler.Create)
	members.Get("/", memberHandler.List)
	members.Get("/:id", memberHandler.GetByID)

	// Memberships
	memberships := protected.Group("/memberships")
	membershipHandler := NewMembershipHandler(deps.MembershipUC)
	memberships.Post("/", admin, membershipHandler.Create)
	memberships.Get("/types", membershipHandler.ListTypes)
	memberships.Post("/types", admin, membershipHandler.CreateType)
	memberships.Get("/member/:memberID", membershipHandler.GetByMember)
	memberships.Post("/expiring/remind", admin, membershipHandler.SendExpiryReminders)
	memberships.Post("/:id/renew", membershipHandler.Renew)
	memberships.Post("/:id/mark-paid", admin, membershipHandler.MarkFeePaid)

	// Aircraft and observations
	aircraft := protected.Group("/aircraft")
	aircraftHandler := NewAircraftHandler(deps.AircraftUC, deps.ObservationUC)
	aircraft.Post("/", admin, aircraftHandler.Create)
	aircraft.Get("/", aircraftHandler.List)
	aircraft.Get("/:id", aircraftHandler.GetByID)
	aircraft.Put("/:id/status", admin, aircraftHandler.SetStatus)
	aircraft.Post("/:id/observations", aircraftHandler.ReportObservation)
	aircraft.Get("/:id/observations", aircraftHandler.ListObservations)

	observations := protected.Group("/observations", staff)
	observations.Post("/:id/acknowledge", aircraftHandler.AcknowledgeObservation)
	observations.Post("/:id/resolve", aircraftHandler.ResolveObservation)

	// Bookings
	bookings := protected.Group("/bookings")
	bookingHandler := NewBookingHandler(deps.BookingUC)
	bookings.Post("/", bookingHandler.Create)
	bookings.Get("/member/:memberID", bookingHandler.ListByMember)
	bookings.Get("/:id", bookingHandler.GetByID)
	bookings.Post("/:id/checkout", bookingHandler.CheckOut)
	bookings.Post("/:id/checkin", bookingHandler.CheckIn)
	bookings.Post("/:id/override", staff, bookingHandler.Override)
	bookings.Post("/:id/cancel", bookingHandler.Cancel)

	// Flight authorizations
	auths := protected.Group("/authorizations")
	authzHandler := NewAuthorizationHandler(deps.FlightAuthUC, deps.DraftSaver)
	auths.Post("/", authzHandler.Create)
	auths.Get("/", authzHandler.ListMine)
	auths.Get("/pending", staff, authzHandler.ListPending)
	auths.Get("/:id", authzHandler.GetByID)
	auths.Put("/:id/draft", authzHandler.SaveDraft)
	auths.Post("/:id/autosave", authzHandler.AutoSave)
	auths.Post("/:id/submit", authzHandler.Submit)
	auths.Post("/:id/approve", staff, authzHandler.Approve)
	auths.Post("/:id/reject", staff, authzHandler.Reject)
	auths.Post("/:id/cancel", authzHandler.Cancel)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDFUC)
	invoices.Post("/", admin, invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/sweep-overdue", admin, invoiceHandler.SweepOverdue)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/items", admin, invoiceHandler.AddItem)
	invoices.Put("/:id/items/:itemID", admin, invoiceHandler.UpdateItem)
	invoices.Delete("/:id/items/:itemID", admin, invoiceHandler.DeleteItem)
	invoices.Post("/:id/issue", admin, invoiceHandler.Issue)
	invoices.Post("/:id/pay", admin, invoiceHandler.MarkPaid)
	invoices.Post("/:id/cancel", admin, invoiceHandler.Cancel)
	invoices.Post("/:id/refund", admin, invoiceHandler.Refund)

	// Reports
	reports := protected.Group("/reports", staff)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/bookings", reportHandler.Bookings)
	reports.Get("/flight-time", reportHandler.FlightTime)
	reports.Get("/invoice-summary", reportHandler.InvoiceSummary)

	// Settings
	settings := protected.Group("/settings", admin)
	settingsHandler := NewSettingsHandler(deps.SettingsSvc)
	settings.Get("/:category", settingsHandler.ListByCategory)
	settings.Put("/", settingsHandler.Upsert)
}
