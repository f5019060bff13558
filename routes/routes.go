package routes

import (
	"carecamps/auth"
	"carecamps/camps"
	"carecamps/contact"
	"carecamps/middleware"
	"carecamps/pay"
	"carecamps/ratelim"
	"carecamps/registrations"
	"carecamps/reviews"
	"carecamps/stats"
	"carecamps/subscribers"
	"carecamps/users"

	"github.com/julienschmidt/httprouter"
)

// Deps carries every handler plus the two gates. Built once in main;
// routes never reach for globals.
type Deps struct {
	Auth          *auth.Handler
	Users         *users.Handler
	Camps         *camps.Handler
	Registrations *registrations.Handler
	Reviews       *reviews.Handler
	Pay           *pay.Handler
	Stats         *stats.Handler
	Subscribers   *subscribers.Handler
	Contact       *contact.Handler

	Gate    *middleware.Gate
	Limiter *ratelim.RateLimiter
}

func RoutesWrapper(router *httprouter.Router, d *Deps) {
	AddAuthRoutes(router, d)
	AddUserRoutes(router, d)
	AddCampRoutes(router, d)
	AddRegistrationRoutes(router, d)
	AddReviewRoutes(router, d)
	AddPayRoutes(router, d)
	AddStatRoutes(router, d)
	AddUtilityRoutes(router, d)
}

func AddAuthRoutes(router *httprouter.Router, d *Deps) {
	router.POST("/auth", d.Limiter.Limit(d.Auth.IssueToken))
}

func AddUserRoutes(router *httprouter.Router, d *Deps) {
	self := d.Gate.Authenticate

	router.PUT("/users", d.Limiter.Limit(d.Users.UpsertUser))
	router.PATCH("/users", self(d.Users.UpdateUser))
	router.GET("/admin", self(d.Users.GetAdminFlag))
}

func AddCampRoutes(router *httprouter.Router, d *Deps) {
	// Admin routes always run Authenticate first; AdminOnly trusts the
	// identity Authenticate leaves in the context.
	admin := middleware.Chain(d.Gate.Authenticate, d.Gate.AdminOnly)

	router.GET("/camps", d.Camps.GetCamps)
	router.GET("/camps/count", d.Camps.GetCampsCount)
	router.GET("/camps/popular", d.Camps.GetPopularCamps)
	router.GET("/camp-details/:campId", d.Camps.GetCamp)

	router.POST("/camps", admin(d.Camps.CreateCamp))
	router.GET("/camps/owner", admin(d.Camps.GetOwnerCamps))
	router.PATCH("/update-camp/:campId", admin(d.Camps.UpdateCamp))
	router.DELETE("/delete-camp/:campId", admin(d.Camps.DeleteCamp))
}

func AddRegistrationRoutes(router *httprouter.Router, d *Deps) {
	self := d.Gate.Authenticate
	admin := middleware.Chain(d.Gate.Authenticate, d.Gate.AdminOnly)

	router.PUT("/registeredCamps", self(d.Registrations.UpsertRegistration))
	router.GET("/registeredCamps", self(d.Registrations.GetRegistrations))
	router.GET("/registeredCamps/all", self(d.Registrations.GetAllRegistrations))
	router.GET("/registeredCamps/count", self(d.Registrations.GetRegistrationsCount))
	router.GET("/registeredCamps/admin", admin(d.Registrations.GetRegistrationsAdmin))
	router.GET("/registeredCamps/admin/count", admin(d.Registrations.GetRegistrationsAdminCount))

	router.DELETE("/cancel-registration/:id", self(d.Registrations.CancelRegistration))
	router.DELETE("/admin/cancel-registration/:id", admin(d.Registrations.CancelRegistration))

	router.PATCH("/registeredCamps/admin/status", admin(d.Registrations.ConfirmRegistration))
	router.PATCH("/registeredCamps/payment", self(d.Registrations.MarkPaymentPaid))

	router.GET("/registeredCamps/receipt/:id", self(d.Registrations.Receipt))
}

func AddReviewRoutes(router *httprouter.Router, d *Deps) {
	router.PUT("/reviews", d.Gate.Authenticate(d.Reviews.UpsertReview))
	router.GET("/reviews", d.Reviews.GetReviews)
}

func AddPayRoutes(router *httprouter.Router, d *Deps) {
	self := d.Gate.Authenticate

	router.POST("/createPaymentIntent", d.Limiter.Limit(self(d.Pay.CreatePaymentIntent)))
	router.POST("/payments", self(d.Pay.RecordPayment))
	router.GET("/payments", self(d.Pay.GetPayments))
	router.GET("/payments/count", self(d.Pay.GetPaymentsCount))
}

func AddStatRoutes(router *httprouter.Router, d *Deps) {
	router.GET("/stat", d.Stats.GetGlobalStats)
	router.GET("/userStat", d.Stats.GetUserStats)
	router.GET("/professionals", d.Stats.GetProfessionals)
}

func AddUtilityRoutes(router *httprouter.Router, d *Deps) {
	router.POST("/contact", d.Limiter.Limit(d.Contact.SendMessage))
	router.POST("/subscriber", d.Limiter.Limit(d.Subscribers.Subscribe))
}
