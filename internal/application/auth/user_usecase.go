package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// UserUseCase administración de usuarios; solo super_admin.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List usuarios filtrados. Sin acceso devuelve una lista vacía.
func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor, in dto.UserListRequest) (dto.ListResponse[dto.UserResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.Users) {
		return dto.NewList[dto.UserResponse](nil, in.PageRequest), nil
	}
	users, err := uc.repo.List(ctx, repository.UserFilter{
		Role:     in.Role,
		IsActive: dto.ParseActive(in.Active),
		Search:   in.Search,
		Page:     repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.UserResponse]{}, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *toUserResponse(u))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// Create hashea el password y persiste. Email repetido: ErrEmailAlreadyExists.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := access.Check(actor.Role, access.Users); err != nil {
		return nil, err
	}
	if !entity.IsValidRole(in.Role) {
		return nil, domain.NewValidationError("role", "rol desconocido")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID; sin acceso se comporta como inexistente.
func (uc *UserUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update aplica los campos informados. Un password nuevo se vuelve a hashear.
func (uc *UserUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := access.Check(actor.Role, access.Users); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
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
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.NewValidationError("role", "rol desconocido")
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina el usuario. Un super_admin no puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := access.Check(actor.Role, access.Users); err != nil {
		return err
	}
	if actor.UserID == id {
		return domain.ErrConflict
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.User, error) {
	if !access.Can(actor.Role, access.Users) {
		return nil, domain.ErrNotFound
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}
