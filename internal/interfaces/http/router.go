package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/DataLake-api/internal/application/auth"
	"github.com/jhoicas/DataLake-api/internal/application/datalake"
	"github.com/jhoicas/DataLake-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UploadUC     *datalake.UploadUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
	MaxBodyBytes int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Data lake (protegido, solo admin)
	dl := api.Group("/datalake", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	dlHandler := NewDataLakeHandler(deps.UploadUC, deps.MaxBodyBytes)
	dl.Post("/upload", dlHandler.Upload)
	dl.Get("/info", dlHandler.Info)
}
