package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "clave_de_prueba_de_al_menos_32_chars"

func firmarToken(t *testing.T, rol string, vencimiento time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  uint(7),
		"username": "prueba@mp.com",
		"rol":      rol,
		"exp":      time.Now().Add(vencimiento).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	firmado, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return firmado
}

func routerProtegido(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grupo := r.Group("/", JWTAuth(testSecret))
	if len(roles) > 0 {
		grupo.Use(RequireRol(roles...))
	}
	grupo.GET("/recurso", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "rol": claims.Rol})
	})
	return r
}

func pedir(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthSinToken(t *testing.T) {
	w := pedir(routerProtegido(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthTokenExpirado(t *testing.T) {
	token := firmarToken(t, model.RolAdministrador, -time.Hour)
	w := pedir(routerProtegido(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthTokenValido(t *testing.T) {
	token := firmarToken(t, model.RolAdministrador, time.Hour)
	w := pedir(routerProtegido(), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestRequireRolPermitido(t *testing.T) {
	token := firmarToken(t, model.RolVendedor, time.Hour)
	w := pedir(routerProtegido(model.RolAdministrador, model.RolVendedor), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolRechazado(t *testing.T) {
	token := firmarToken(t, model.RolVendedor, time.Hour)
	w := pedir(routerProtegido(model.RolAdministrador), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
