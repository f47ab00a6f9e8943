package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Username   string  `json:"username"   validate:"required,min=1,max=150"`
	Nombre     string  `json:"nombre"     validate:"required,min=2,max=100"`
	Apellido   string  `json:"apellido"   validate:"omitempty,max=100"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Telefono   *string `json:"telefono"`
	Password   string  `json:"password"   validate:"required,min=8"`
	Rol        string  `json:"rol"        validate:"required,oneof=administrador admincanal vendedor oficialcomercial"`
	SubcanalID *uint   `json:"subcanal_id"`
}

type ActualizarUsuarioRequest struct {
	Nombre     string  `json:"nombre"      validate:"omitempty,min=2,max=100"`
	Apellido   string  `json:"apellido"    validate:"omitempty,max=100"`
	Email      *string `json:"email"       validate:"omitempty,email"`
	Telefono   *string `json:"telefono"`
	Rol        string  `json:"rol"         validate:"omitempty,oneof=administrador admincanal vendedor oficialcomercial"`
	SubcanalID *uint   `json:"subcanal_id"`
	Password   string  `json:"password"    validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID                   uint    `json:"id"`
	Username             string  `json:"username"`
	Nombre               string  `json:"nombre"`
	Apellido             string  `json:"apellido"`
	Email                *string `json:"email"`
	Rol                  string  `json:"rol"`
	SubcanalID           *uint   `json:"subcanal_id"`
	CantidadOperaciones  int     `json:"cantidad_operaciones"`
	FechaUltimaOperacion *string `json:"fecha_ultima_operacion"`
	Activo               bool    `json:"activo"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}
