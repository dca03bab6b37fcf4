package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	optionalAuthMiddleware := standardMiddleware.Append(app.optionalAuth)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))
	hostMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("host"))

	mux := pat.New()

	// Auth
	mux.Post("/auth/register", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/auth/login", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/auth/refresh", standardMiddleware.ThenFunc(app.userHandler.Refresh))
	mux.Get("/auth/me", authMiddleware.ThenFunc(app.userHandler.Me))

	// Reference data
	mux.Get("/taxonomy", standardMiddleware.ThenFunc(app.taxonomyHandler.GetTaxonomy))

	// Public search. Specific paths come before the :id routes.
	mux.Get("/toilets-markers", standardMiddleware.ThenFunc(app.toiletHandler.SearchMarkers))
	mux.Get("/toilets/:id/reviews", standardMiddleware.ThenFunc(app.toiletHandler.ListReviews))
	mux.Get("/toilets/:id", optionalAuthMiddleware.ThenFunc(app.toiletHandler.GetToiletByID))
	mux.Get("/toilets", optionalAuthMiddleware.ThenFunc(app.toiletHandler.SearchToilets))

	// Reviews: POST upserts on the (toilet, user) pair, the /me routes
	// touch only an existing review.
	mux.Put("/toilets/:id/reviews/me", authMiddleware.ThenFunc(app.reviewHandler.UpdateMyReview))
	mux.Del("/toilets/:id/reviews/me", authMiddleware.ThenFunc(app.reviewHandler.DeleteMyReview))
	mux.Post("/toilets/:id/reviews", authMiddleware.ThenFunc(app.reviewHandler.SubmitReview))

	// Favorites
	mux.Post("/toilets/:id/favorite", authMiddleware.ThenFunc(app.favoriteHandler.AddFavorite))
	mux.Del("/toilets/:id/favorite", authMiddleware.ThenFunc(app.favoriteHandler.RemoveFavorite))

	// Reports
	mux.Post("/toilets/:id/reports/:report_id/resolve", authMiddleware.ThenFunc(app.reportHandler.ResolveReport))
	mux.Post("/toilets/:id/reports", optionalAuthMiddleware.ThenFunc(app.reportHandler.SubmitReport))
	mux.Get("/toilets/:id/reports", authMiddleware.ThenFunc(app.reportHandler.ListReports))

	// Usage sessions
	mux.Post("/toilets/:id/sessions/:session_id/end", authMiddleware.ThenFunc(app.sessionHandler.EndSession))
	mux.Post("/toilets/:id/sessions/start", authMiddleware.ThenFunc(app.sessionHandler.StartSession))

	// Current user
	mux.Get("/me/favorites", authMiddleware.ThenFunc(app.favoriteHandler.ListFavorites))
	mux.Get("/me/sessions", authMiddleware.ThenFunc(app.sessionHandler.ListMySessions))

	// Uploads
	mux.Post("/uploads/toilet-photo", authMiddleware.ThenFunc(app.uploadHandler.UploadToiletPhoto))

	// Host listing management
	mux.Get("/host/me", hostMiddleware.ThenFunc(app.hostHandler.Me))
	mux.Post("/host/toilets/:id/photos", hostMiddleware.ThenFunc(app.uploadHandler.UploadToiletPhoto))
	mux.Del("/host/toilets/:id/photos/:photo_id", hostMiddleware.ThenFunc(app.hostHandler.DeletePhoto))
	mux.Put("/host/toilets/:id/open-hours", hostMiddleware.ThenFunc(app.hostHandler.ReplaceOpenHours))
	mux.Post("/host/toilets/:id/status", hostMiddleware.ThenFunc(app.hostHandler.UpdateStatus))
	mux.Get("/host/toilets/:id", hostMiddleware.ThenFunc(app.hostHandler.GetOwnToilet))
	mux.Put("/host/toilets/:id", hostMiddleware.ThenFunc(app.hostHandler.UpdateToilet))
	mux.Del("/host/toilets/:id", hostMiddleware.ThenFunc(app.hostHandler.DeleteToilet))
	mux.Post("/host/toilets", hostMiddleware.ThenFunc(app.hostHandler.CreateToilet))
	mux.Get("/host/toilets", hostMiddleware.ThenFunc(app.hostHandler.ListOwnToilets))

	return mux
}
