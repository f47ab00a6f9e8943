package service

import (
	"context"
	"testing"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/config"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (AuthService, *stubUsuarioRepo) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "clave_de_prueba_de_al_menos_32_chars",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func sembrarUsuario(t *testing.T, repo *stubUsuarioRepo, username, password, rol string, activo bool) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	require.NoError(t, err)
	return repo.agregar(model.Usuario{
		Username: username, Nombre: "Usuario Prueba",
		PasswordHash: string(hash), Rol: rol, Activo: activo,
	})
}

func TestLogin(t *testing.T) {
	svc, repo := newAuthFixture()
	sembrarUsuario(t, repo, "admin@mp.com", "secreta123", model.RolAdministrador, true)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "admin@mp.com", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RolAdministrador, resp.User.Rol)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, repo := newAuthFixture()
	sembrarUsuario(t, repo, "admin@mp.com", "secreta123", model.RolAdministrador, true)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "admin@mp.com", Password: "otra",
	})
	assert.Error(t, err)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	svc, repo := newAuthFixture()
	sembrarUsuario(t, repo, "baja@mp.com", "secreta123", model.RolVendedor, false)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "baja@mp.com", Password: "secreta123",
	})
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	svc, repo := newAuthFixture()
	sembrarUsuario(t, repo, "admin@mp.com", "secreta123", model.RolAdministrador, true)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "admin@mp.com", Password: "secreta123"})
	require.NoError(t, err)

	refrescado, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refrescado.AccessToken)
	assert.Equal(t, login.User.ID, refrescado.User.ID)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.Error(t, err)
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	svc, repo := newAuthFixture()
	u := sembrarUsuario(t, repo, "admin@mp.com", "secreta123", model.RolAdministrador, true)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "admin@mp.com", Password: "secreta123"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, u.ID))
	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.Error(t, err)
}

func TestCrearYActualizarUsuario(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	creado, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "vendedor@mp.com", Nombre: "Vende", Apellido: "Dor",
		Password: "secreta123", Rol: model.RolVendedor,
	})
	require.NoError(t, err)
	assert.True(t, creado.Activo)

	subcanalID := uint(3)
	actualizado, err := svc.ActualizarUsuario(ctx, creado.ID, dto.ActualizarUsuarioRequest{
		Nombre: "Vendedor", SubcanalID: &subcanalID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Vendedor", actualizado.Nombre)
	require.NotNil(t, actualizado.SubcanalID)
	assert.Equal(t, subcanalID, *actualizado.SubcanalID)
}

func TestListarUsuariosExcluyeInactivosPorDefecto(t *testing.T) {
	svc, repo := newAuthFixture()
	sembrarUsuario(t, repo, "activo@mp.com", "secreta123", model.RolVendedor, true)
	sembrarUsuario(t, repo, "baja@mp.com", "secreta123", model.RolVendedor, false)
	ctx := context.Background()

	activos, err := svc.ListarUsuarios(ctx, false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)

	todos, err := svc.ListarUsuarios(ctx, true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
