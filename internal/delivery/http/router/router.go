// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"gachigage/internal/delivery/http/middleware"
	"gachigage/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler           *handler.AuthHandler
	RecommendationHandler *handler.RecommendationHandler
	MissionHandler        *handler.MissionHandler
	ReceiptHandler        *handler.ReceiptHandler
	ReviewHandler         *handler.ReviewHandler
	ProfileHandler        *handler.ProfileHandler
	CouponHandler         *handler.CouponHandler
	SessionMiddleware     *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account and session routes; no session needed to sign up or log in.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/check", r.params.AuthHandler.CheckIdentifier)
		authGroup.POST("/signup", r.params.AuthHandler.Signup)
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/logout", r.params.AuthHandler.Logout)
		authGroup.GET("/session", r.params.AuthHandler.Session)
	}

	requireSession := r.params.SessionMiddleware.RequireSession

	// Recommendation wizard and home tab.
	recommendGroup := e.Group("/recommend", requireSession)
	{
		recommendGroup.GET("/home", r.params.RecommendationHandler.Home)
		recommendGroup.GET("/options/neighborhoods", r.params.RecommendationHandler.Neighborhoods)
		recommendGroup.GET("/options/categories", r.params.RecommendationHandler.Categories)
		recommendGroup.GET("/options/moods", r.params.RecommendationHandler.Moods)

		recommendGroup.POST("/wizard", r.params.RecommendationHandler.StartWizard)
		recommendGroup.GET("/wizard", r.params.RecommendationHandler.Draft)
		recommendGroup.POST("/wizard/region", r.params.RecommendationHandler.SelectRegion)
		recommendGroup.POST("/wizard/category", r.params.RecommendationHandler.SelectCategory)
		recommendGroup.POST("/wizard/mood", r.params.RecommendationHandler.ToggleMood)
		recommendGroup.POST("/wizard/mood/confirm", r.params.RecommendationHandler.ConfirmMoods)
		recommendGroup.POST("/wizard/submit", r.params.RecommendationHandler.Submit)

		recommendGroup.POST("/redo", r.params.RecommendationHandler.Redo)
		recommendGroup.POST("/confirm", r.params.RecommendationHandler.Confirm)
	}

	// Mission board and the per-mission receipt verification flow.
	missionGroup := e.Group("/missions", requireSession)
	{
		missionGroup.GET("", r.params.MissionHandler.Board)

		receiptGroup := missionGroup.Group("/:missionId/receipt")
		receiptGroup.POST("/image", r.params.ReceiptHandler.AttachImage)
		receiptGroup.POST("/process", r.params.ReceiptHandler.Process)
		receiptGroup.GET("", r.params.ReceiptHandler.Draft)
		receiptGroup.PATCH("", r.params.ReceiptHandler.Edit)
		receiptGroup.POST("/editing/finish", r.params.ReceiptHandler.FinishEditing)
		receiptGroup.POST("/confirm", r.params.ReceiptHandler.ConfirmAsIs)
		receiptGroup.POST("/submit", r.params.ReceiptHandler.Submit)
		receiptGroup.DELETE("", r.params.ReceiptHandler.Cancel)
	}

	// Reviews.
	reviewGroup := e.Group("/reviews", requireSession)
	{
		reviewGroup.POST("", r.params.ReviewHandler.Create)
		reviewGroup.GET("", r.params.ReviewHandler.List)
		reviewGroup.GET("/tags", r.params.ReviewHandler.Tags)
		reviewGroup.DELETE("/:reviewId", r.params.ReviewHandler.Delete)
	}

	// Profile.
	profileGroup := e.Group("/profile", requireSession)
	{
		profileGroup.GET("", r.params.ProfileHandler.Get)
		profileGroup.PATCH("/nickname", r.params.ProfileHandler.UpdateNickname)
		profileGroup.PATCH("/region", r.params.ProfileHandler.UpdateRegion)
	}

	// Coupon wallet.
	couponGroup := e.Group("/coupons", requireSession)
	{
		couponGroup.GET("", r.params.CouponHandler.List)
		couponGroup.GET("/unread", r.params.CouponHandler.Unread)
		couponGroup.GET("/:couponId/qr", r.params.CouponHandler.RedemptionQR)
	}
}
