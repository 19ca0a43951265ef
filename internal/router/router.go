package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/amanraj069/m-frontend-sub001/internal/auth"
	"github.com/amanraj069/m-frontend-sub001/internal/handler"
	"github.com/amanraj069/m-frontend-sub001/internal/logger"
	"github.com/amanraj069/m-frontend-sub001/internal/model"
	"github.com/amanraj069/m-frontend-sub001/internal/web"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Login     *handler.LoginHandler
	Dashboard *handler.DashboardHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log *zap.Logger,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	renderer echo.Renderer,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit("1M"))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.Renderer = renderer

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.StaticFS("/assets", web.Assets())

	// Pages
	e.GET("/login", h.Login.Show)
	e.POST("/login", h.Login.Submit)
	e.POST("/logout", h.Login.Logout)
	e.GET("/forgot-password", h.Login.ForgotPassword)
	e.GET("/signup", h.Login.Signup)

	toLogin := func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	pages := e.Group("",
		echojwt.WithConfig(jwtConfig(jwtService, "cookie:"+handler.AccessTokenCookie, func(c echo.Context, _ error) error {
			return toLogin(c)
		})),
		rejectRevoked(tokenStore, toLogin),
	)
	pages.GET("/", h.Dashboard.Show)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("",
		echojwt.WithConfig(jwtConfig(jwtService, "header:"+echo.HeaderAuthorization+":Bearer ", nil)),
		rejectRevoked(tokenStore, func(echo.Context) error { return echo.ErrUnauthorized }),
	)
	secured.GET("/me", h.User.Me)
	secured.GET("/dashboard", h.Dashboard.GetAdminDashboard)

	admin := secured.Group("", requireRole(model.RoleAdmin))
	admin.GET("/users", h.User.ListUsers)
	admin.GET("/users/:id", h.User.GetUser)
	admin.PATCH("/users/:id/active", h.User.SetActive)
}

func jwtConfig(jwtService *auth.JWTService, lookup string, onError func(echo.Context, error) error) echojwt.Config {
	return echojwt.Config{
		SigningKey:    jwtService.Secret(),
		SigningMethod: echojwt.AlgorithmHS256,
		TokenLookup:   lookup,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: onError,
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
