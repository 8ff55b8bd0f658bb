package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"practicas/internal/config"
	"practicas/internal/handler"
	"practicas/internal/model"
)

// Register wires routes and middleware. seedHandler may be nil (remote mode),
// in which case the demo-reset endpoint is not exposed.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	offerHandler *handler.OfferHandler,
	applicationHandler *handler.ApplicationHandler,
	adminHandler *handler.AdminHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/change-password", authHandler.ChangePassword)

	// Offer browsing is public so the landing page can show open postings.
	api.GET("/offers", offerHandler.ListOffers)
	api.GET("/offers/:id", offerHandler.GetOffer)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.POST("/auth/refresh", authHandler.Refresh)
	secured.POST("/auth/logout", authHandler.Logout)

	secured.POST("/offers", offerHandler.CreateOffer)
	secured.PUT("/offers/:id", offerHandler.UpdateOffer)
	secured.DELETE("/offers/:id", offerHandler.DeleteOffer)

	secured.POST("/offers/:id/apply", applicationHandler.Apply)
	secured.GET("/offers/:id/applicants", applicationHandler.ListForOffer)
	secured.GET("/students/:id/applications", applicationHandler.ListForStudent)
	secured.GET("/applications", applicationHandler.ListAll)
	secured.PUT("/applications/:id/company-review", applicationHandler.CompanyReview)
	secured.PUT("/applications/:id/admin-review", applicationHandler.AdminReview)

	// Admin surface
	admin := secured.Group("/admin", requireRole(model.RoleAdmin))
	admin.GET("/metrics", adminHandler.Metrics)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	if seedHandler != nil {
		secured.POST("/seed/demo", seedHandler.ResetDemo, requireRole(model.RoleAdmin))
	}
}

// requireRole gates a route group on the role claim of the bearer token.
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || claims["role"] != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
