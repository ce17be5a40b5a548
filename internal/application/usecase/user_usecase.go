package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/greenthread-api/internal/application/auth"
	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
)

// UserUseCase perfil y direcciones guardadas del usuario.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID devuelve el perfil público del usuario.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// ListAddresses direcciones del usuario en el orden en que se guardaron.
func (uc *UserUseCase) ListAddresses(ctx context.Context, userID string) ([]dto.AddressResponse, error) {
	list, err := uc.repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAddressResponses(list), nil
}

// AddAddress agrega una dirección al final y devuelve la lista completa.
func (uc *UserUseCase) AddAddress(ctx context.Context, userID string, in dto.AddressRequest) ([]dto.AddressResponse, error) {
	addr := &entity.Address{
		ID:        uuid.New().String(),
		UserID:    userID,
		Street:    strings.TrimSpace(in.Street),
		City:      strings.TrimSpace(in.City),
		State:     strings.TrimSpace(in.State),
		Zip:       strings.TrimSpace(in.Zip),
		Type:      strings.TrimSpace(in.Type),
		CreatedAt: time.Now().UTC(),
	}
	if addr.Street == "" || addr.City == "" {
		return nil, domain.ErrInvalidInput
	}
	if addr.Type == "" {
		addr.Type = "Home"
	}
	if err := uc.repo.AddAddress(ctx, addr); err != nil {
		return nil, err
	}
	return uc.ListAddresses(ctx, userID)
}

func toAddressResponses(list []entity.Address) []dto.AddressResponse {
	out := make([]dto.AddressResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AddressResponse{
			ID:     a.ID,
			Street: a.Street,
			City:   a.City,
			State:  a.State,
			Zip:    a.Zip,
			Type:   a.Type,
		})
	}
	return out
}
