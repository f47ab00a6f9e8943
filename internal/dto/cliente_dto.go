package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"   validate:"required,min=2,max=100"`
	Apellido  string  `json:"apellido" validate:"required,min=2,max=100"`
	Dni       string  `json:"dni"      validate:"required,min=6,max=12"`
	Cuil      *string `json:"cuil"`
	Email     *string `json:"email"    validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Provincia *string `json:"provincia"`
	CanalID   *uint   `json:"canal_id"`
}

type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre"   validate:"omitempty,min=2,max=100"`
	Apellido  string  `json:"apellido" validate:"omitempty,min=2,max=100"`
	Cuil      *string `json:"cuil"`
	Email     *string `json:"email"    validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Provincia *string `json:"provincia"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID        uint    `json:"id"`
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	Dni       string  `json:"dni"`
	Cuil      *string `json:"cuil"`
	Email     *string `json:"email"`
	Telefono  *string `json:"telefono"`
	Provincia *string `json:"provincia"`
	CanalID   *uint   `json:"canal_id"`
}
