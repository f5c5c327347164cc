package usecase

import (
	"time"

	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
)

// UserUseCase operaciones sobre el perfil propio.
type UserUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserUseCase construye el caso de uso de perfil.
func NewUserUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, roleRepo: roleRepo}
}

// Me devuelve el perfil del usuario autenticado (sin hashes).
func (uc *UserUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return userToResponse(user), nil
}

// UpdateMe actualización parcial del perfil. Si viene un rol, se resuelve por
// nombre y falla con ErrRoleNotFound si no está configurado.
func (uc *UserUseCase) UpdateMe(userID string, in dto.UpdateMeRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		role, err := uc.roleRepo.GetByName(*in.Role)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, domain.ErrRoleNotFound
		}
		user.Role = role.Name
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func userToResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Role:         u.Role,
		CompanyID:    u.CompanyID,
		DepartmentID: u.DepartmentID,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
