package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/belandja/commerce-api/internal/domains/users/adapters/http/mapper"
	userapp "github.com/belandja/commerce-api/internal/domains/users/application"
	usersdomain "github.com/belandja/commerce-api/internal/domains/users/domain"
	usersports "github.com/belandja/commerce-api/internal/domains/users/ports"
	sharederrors "github.com/belandja/commerce-api/internal/shared/errors"
)

// UserAPI wires HTTP transport with the users bounded context service.
type UserAPI struct {
	service *userapp.Service
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service *userapp.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /api/auth/register
// Create a new account
func (api *UserAPI) Register(c *gin.Context) {
	var payload usermapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("request body must be valid JSON"))
		return
	}
	user, err := api.service.Register(c.Request.Context(), payload.FullName, payload.Email, payload.Password)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": usermapper.FromDomainUser(user)})
}

// Post /api/auth/login
// Exchange credentials for a bearer token
func (api *UserAPI) Login(c *gin.Context) {
	var payload usermapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("request body must be valid JSON"))
		return
	}
	token, user, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"data":  usermapper.FromDomainUser(user),
	})
}

// Get /api/auth/me
// Return the authenticated user's profile
func (api *UserAPI) Me(c *gin.Context) {
	user, err := api.service.GetByID(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": usermapper.FromDomainUser(user)})
}

// Put /api/auth/profile
// Update the authenticated user's profile
func (api *UserAPI) UpdateProfile(c *gin.Context) {
	var payload usermapper.ProfileRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("request body must be valid JSON"))
		return
	}
	user, err := api.service.UpdateProfile(c.Request.Context(), CurrentUserID(c), payload.FullName)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": usermapper.FromDomainUser(user)})
}

func respondUserServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, usersports.ErrEmailTaken):
		sharederrors.Respond(c, sharederrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, usersports.ErrInvalidCredentials):
		sharederrors.Respond(c, sharederrors.ErrUnauthorized.WithDetail(err.Error()))
	case errors.Is(err, usersports.ErrNotFound):
		sharederrors.Respond(c, sharederrors.NewNotFoundProblem("user", CurrentUserID(c)))
	case errors.Is(err, usersdomain.ErrEmptyFullName),
		errors.Is(err, usersdomain.ErrInvalidEmail),
		errors.Is(err, usersdomain.ErrEmptyPassword),
		errors.Is(err, usersdomain.ErrWeakPassword):
		sharederrors.Respond(c, sharederrors.ErrValidation.WithDetail(err.Error()))
	default:
		sharederrors.RespondError(c, err)
	}
}
