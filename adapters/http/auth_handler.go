package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/tuanng/mediahost/internal/application/usecase/auth"
	"github.com/tuanng/mediahost/internal/domain/user"
	"github.com/tuanng/mediahost/pkg/apperror"
)

type AuthHandler struct {
	resolveUserUC *authUC.ResolveUserUseCase
}

func NewAuthHandler(resolveUC *authUC.ResolveUserUseCase) *AuthHandler {
	return &AuthHandler{
		resolveUserUC: resolveUC,
	}
}

// ExchangeOAuth accepts the profile tuple produced by the front-channel
// OAuth flow and answers with a local access token.
func (h *AuthHandler) ExchangeOAuth(c *gin.Context) {
	var req OAuthExchangeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := authUC.ResolveUserInput{
		Profile: user.OAuthProfile{
			Provider:    req.Provider,
			ProviderID:  req.ProviderID,
			Email:       req.Email,
			DisplayName: req.DisplayName,
			AvatarURL:   req.AvatarURL,
		},
	}

	output, err := h.resolveUserUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": output.AccessToken,
		"user":         ToUserDTO(output.User),
	})
}
