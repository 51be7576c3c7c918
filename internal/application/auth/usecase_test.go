package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/apptest"
	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

var admin = entity.Actor{UserID: "admin-1", Role: entity.RoleSuperAdmin}

func seedUser(t *testing.T, store *apptest.Store, email, role string, active bool) *entity.User {
	t.Helper()
	hash, err := auth.HashPassword("clave123")
	require.NoError(t, err)
	u := &entity.User{
		ID: email, Email: email, PasswordHash: hash, FirstName: "Ana", LastName: "Pérez",
		Role: role, IsActive: active, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenConRol(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "tec@taller.com", entity.RoleTechnician, true)
	uc := auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "test"})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "tec@taller.com", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", out.User.FullName)

	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "tec@taller.com", userID)
	assert.Equal(t, entity.RoleTechnician, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "a@taller.com", entity.RoleAccountant, true)
	uc := auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: secret, ExpMinutes: 10})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@taller.com", Password: "otra"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@taller.com", Password: "clave123"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "baja@taller.com", entity.RoleReceptionist, false)
	uc := auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: secret, ExpMinutes: 10})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "baja@taller.com", Password: "clave123"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestMe_ModulosDelRol(t *testing.T) {
	store := apptest.NewStore()
	u := seedUser(t, store, "rec@taller.com", entity.RoleReceptionist, true)
	uc := auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: secret})

	out, err := uc.Me(context.Background(), entity.Actor{UserID: u.ID, Role: u.Role})
	require.NoError(t, err)
	assert.Equal(t, []string{"crm", "workshop"}, out.Modules)
}

// ──────────────────────────────────────────────────────────────────────────────
// Administración de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_CrearYDuplicado(t *testing.T) {
	store := apptest.NewStore()
	uc := auth.NewUserUseCase(store.Users)
	in := dto.CreateUserRequest{Email: "Nuevo@Taller.com", Password: "clave123", FirstName: "Luis", LastName: "Gómez", Role: entity.RoleTechnician}

	out, err := uc.Create(context.Background(), admin, in)
	require.NoError(t, err)
	assert.Equal(t, "nuevo@taller.com", out.Email)
	assert.True(t, out.IsActive)

	_, err = uc.Create(context.Background(), admin, in)
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestUsers_SoloSuperAdmin(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "x@taller.com", entity.RoleTechnician, true)
	uc := auth.NewUserUseCase(store.Users)
	accountant := entity.Actor{UserID: "c-1", Role: entity.RoleAccountant}

	_, err := uc.Create(context.Background(), accountant, dto.CreateUserRequest{Email: "y@taller.com", Password: "clave123", Role: entity.RoleTechnician})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	list, err := uc.List(context.Background(), accountant, dto.UserListRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.NotNil(t, list.Items)

	_, err = uc.GetByID(context.Background(), accountant, "x@taller.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUsers_ActualizarPasswordYRol(t *testing.T) {
	store := apptest.NewStore()
	u := seedUser(t, store, "m@taller.com", entity.RoleTechnician, true)
	uc := auth.NewUserUseCase(store.Users)

	role, pass := entity.RoleInventoryManager, "nueva123"
	out, err := uc.Update(context.Background(), admin, u.ID, dto.UpdateUserRequest{Role: &role, Password: &pass})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleInventoryManager, out.Role)

	login := auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: secret, ExpMinutes: 5})
	_, err = login.Login(context.Background(), dto.LoginRequest{Email: u.Email, Password: "nueva123"})
	assert.NoError(t, err)

	bad := "mecanico"
	_, err = uc.Update(context.Background(), admin, u.ID, dto.UpdateUserRequest{Role: &bad})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUsers_ListarFiltraPorRol(t *testing.T) {
	store := apptest.NewStore()
	seedUser(t, store, "t1@taller.com", entity.RoleTechnician, true)
	seedUser(t, store, "t2@taller.com", entity.RoleTechnician, false)
	seedUser(t, store, "c1@taller.com", entity.RoleAccountant, true)
	uc := auth.NewUserUseCase(store.Users)

	list, err := uc.List(context.Background(), admin, dto.UserListRequest{Role: entity.RoleTechnician, Active: "true"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "t1@taller.com", list.Items[0].Email)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestUsers_NoSePuedeBorrarASiMismo(t *testing.T) {
	store := apptest.NewStore()
	u := seedUser(t, store, "root@taller.com", entity.RoleSuperAdmin, true)
	uc := auth.NewUserUseCase(store.Users)

	err := uc.Delete(context.Background(), entity.Actor{UserID: u.ID, Role: u.Role}, u.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	other := seedUser(t, store, "otro@taller.com", entity.RoleTechnician, true)
	require.NoError(t, uc.Delete(context.Background(), admin, other.ID))
	_, err = uc.GetByID(context.Background(), admin, other.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
