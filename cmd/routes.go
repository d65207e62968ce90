package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("citizen"))
	officerAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("officer"))
	vendorAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("vendor"))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Auth
	mux.Post("/auth/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/auth/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))

	// Complaints
	mux.Post("/complaints", authMiddleware.ThenFunc(app.complaintHandler.CreateComplaint))
	mux.Get("/complaints/my", authMiddleware.ThenFunc(app.complaintHandler.GetMyComplaints))
	mux.Get("/complaints/:id", authMiddleware.ThenFunc(app.complaintHandler.GetComplaintByID))
	mux.Get("/complaints/:id/quotes", authMiddleware.ThenFunc(app.quotationHandler.GetQuotesForComplaint))
	mux.Get("/complaints/:id/updates", authMiddleware.ThenFunc(app.vendorHandler.GetJobUpdates))
	mux.Post("/complaints/:id/feedback", authMiddleware.ThenFunc(app.feedbackHandler.SubmitFeedback))
	mux.Get("/complaints/:id/feedback", authMiddleware.ThenFunc(app.feedbackHandler.GetFeedbackByComplaint))

	// Categories
	mux.Get("/categories", standardMiddleware.ThenFunc(app.categoryHandler.GetAllCategories))

	// Admin console
	mux.Get("/admin/complaints", adminAuthMiddleware.ThenFunc(app.complaintHandler.GetAllComplaints))
	mux.Get("/admin/users", adminAuthMiddleware.ThenFunc(app.userHandler.GetUsersByRole))
	mux.Post("/admin/complaints/:id/route_government", adminAuthMiddleware.ThenFunc(app.complaintHandler.RouteToGovernment))
	mux.Post("/admin/complaints/:id/route_private", adminAuthMiddleware.ThenFunc(app.complaintHandler.RouteToPrivate))
	mux.Post("/admin/complaints/:id/assign_officer", adminAuthMiddleware.ThenFunc(app.complaintHandler.AssignOfficer))
	mux.Post("/admin/complaints/:id/assign_vendor", adminAuthMiddleware.ThenFunc(app.complaintHandler.AssignVendorDirect))
	mux.Post("/admin/complaints/:id/approve_quote", adminAuthMiddleware.ThenFunc(app.quotationHandler.ApproveQuotation))
	mux.Post("/admin/complaints/:id/confirm_payment", adminAuthMiddleware.ThenFunc(app.quotationHandler.ConfirmPayment))
	mux.Get("/admin/vendors/unverified", adminAuthMiddleware.ThenFunc(app.vendorHandler.GetUnverifiedVendors))
	mux.Post("/admin/vendors/:id/verify", adminAuthMiddleware.ThenFunc(app.vendorHandler.VerifyVendor))

	// Officer console
	mux.Get("/officer/complaints", officerAuthMiddleware.ThenFunc(app.complaintHandler.GetAssignedComplaints))
	mux.Post("/officer/complaints/:id/complete", officerAuthMiddleware.ThenFunc(app.complaintHandler.SubmitCompletion))

	// Vendor marketplace
	mux.Post("/vendor/register", authMiddleware.ThenFunc(app.vendorHandler.RegisterVendor))
	mux.Get("/vendor/profile", vendorAuthMiddleware.ThenFunc(app.vendorHandler.GetMyProfile))
	mux.Get("/vendor/jobs", vendorAuthMiddleware.ThenFunc(app.quotationHandler.GetOpenJobs))
	mux.Post("/vendor/jobs/:id/quote", vendorAuthMiddleware.ThenFunc(app.quotationHandler.SubmitQuote))
	mux.Get("/vendor/quotes", vendorAuthMiddleware.ThenFunc(app.quotationHandler.GetMyQuotes))
	mux.Get("/vendor/stats", vendorAuthMiddleware.ThenFunc(app.quotationHandler.GetVendorStats))
	mux.Post("/vendor/jobs/:id/update", vendorAuthMiddleware.ThenFunc(app.vendorHandler.PostJobUpdate))
	mux.Post("/vendor/jobs/:id/complete", vendorAuthMiddleware.ThenFunc(app.complaintHandler.SubmitCompletion))

	// Uploaded evidence images
	mux.Get("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))))

	return standardMiddleware.Then(mux)
}
