package users

import (
	"github.com/gin-gonic/gin"

	"storekeeper-backend/internal/platform/rest"
)

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	rest.Register[UserResponse, CreateUserRequest, UpdateUserRequest](r, "users", svc)
}
