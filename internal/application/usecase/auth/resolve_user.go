package auth

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/tuanng/mediahost/internal/domain/user"
	"github.com/tuanng/mediahost/pkg/apperror"
	"github.com/tuanng/mediahost/pkg/auth"
	"github.com/tuanng/mediahost/pkg/logger"
)

// ResolveUserUseCase turns a verified identity-provider profile into a
// local user and an access token. The caller is responsible for having
// completed the OAuth code exchange already.
type ResolveUserUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewResolveUserUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *ResolveUserUseCase {
	return &ResolveUserUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type ResolveUserInput struct {
	Profile user.OAuthProfile
}

type ResolveUserOutput struct {
	User        *user.User
	AccessToken string
}

var tracer = otel.Tracer("auth_usecase")

func (uc *ResolveUserUseCase) Execute(ctx context.Context, input ResolveUserInput) (*ResolveUserOutput, error) {

	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	if strings.TrimSpace(input.Profile.Provider) == "" || strings.TrimSpace(input.Profile.ProviderID) == "" {
		err := apperror.NewInvalidInput("provider and provider id are required", nil)
		span.RecordError(err)
		return nil, err
	}

	u, err := uc.userRepo.FindOrCreateFromOAuth(ctx, input.Profile)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &ResolveUserOutput{User: u, AccessToken: token}, nil
}
