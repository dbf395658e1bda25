package auth

import (
	"prode-api/packages/auth/handlers"
	"prode-api/packages/auth/middleware"
	"prode-api/packages/auth/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	Handler     *handlers.UserHandler
	UserService *services.UserService
	secret      string
}

func NewModule(db *gorm.DB, jwtSecret string) *Module {
	userService := services.NewUserService(db)
	return &Module{
		Handler:     handlers.NewUserHandler(userService),
		UserService: userService,
		secret:      jwtSecret,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("/register", m.Handler.Register)
		users.GET("/me", m.JWTMiddleware(), m.Handler.Profile)
	}
}

func (m *Module) JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware(m.secret)
}

func GetUserID(c *gin.Context) (uint, bool) {
	return middleware.GetUserID(c)
}

func RequireRole(db *gorm.DB, role string) gin.HandlerFunc {
	return middleware.RequireRole(db, role)
}
