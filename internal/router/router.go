package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"unimarket/internal/auth"
	"unimarket/internal/config"
	"unimarket/internal/handler"
	appmw "unimarket/internal/middleware"
	"unimarket/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *logrus.Logger,
	jwtService *auth.JWTService,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	itemHandler *handler.ItemHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(appmw.RequestLogger(log, jwtService))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", healthHandler.Health)
	e.GET("/version", healthHandler.Version)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded item images are served as static files.
	e.Static("/uploads", cfg.UploadDir)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/categories", categoryHandler.CreateCategory)
	e.GET("/categories", categoryHandler.ListCategories)
	e.GET("/items", itemHandler.ListItems)
	e.GET("/items/:id", itemHandler.GetItem)

	// Secured routes (require a bearer token resolving to a stored user)
	secured := e.Group("", appmw.JWT(jwtService), appmw.LoadUser(authService))
	secured.GET("/me", userHandler.Me)
	secured.POST("/items", itemHandler.CreateItem)
	secured.PUT("/items/:id", itemHandler.UpdateItem)
	secured.DELETE("/items/:id", itemHandler.DeleteItem)
	secured.POST("/:id/upload-image", itemHandler.UploadImage)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
