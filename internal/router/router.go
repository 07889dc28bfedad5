package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shoplist/internal/auth"
	"shoplist/internal/config"
	"shoplist/internal/handler"
	"shoplist/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	categoryHandler *handler.TagHandler[model.Category],
	storeHandler *handler.TagHandler[model.Store],
	itemHandler *handler.ItemHandler,
	listHandler *handler.ShopListHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", authHandler.Me)

	// Category routes
	secured.GET("/categories", categoryHandler.List)
	secured.POST("/categories", categoryHandler.Create)
	secured.DELETE("/categories/:id", categoryHandler.Delete)

	// Store routes
	secured.GET("/stores", storeHandler.List)
	secured.POST("/stores", storeHandler.Create)
	secured.DELETE("/stores/:id", storeHandler.Delete)

	// Item routes
	secured.GET("/items", itemHandler.List)
	secured.POST("/items", itemHandler.Create)
	secured.GET("/items/:id", itemHandler.Get)
	secured.PATCH("/items/:id", itemHandler.Update)
	secured.DELETE("/items/:id", itemHandler.Delete)

	// Shopping-list routes
	secured.GET("/lists", listHandler.List)
	secured.POST("/lists", listHandler.Create)
	secured.GET("/lists/:id", listHandler.Get)
	secured.PATCH("/lists/:id", listHandler.Update)
	secured.POST("/lists/:id/items", listHandler.AddItems)
	secured.DELETE("/lists/:id", listHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
