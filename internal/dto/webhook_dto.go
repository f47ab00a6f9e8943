package dto

// ResultadoWebhook is the structured outcome of a Kommo delivery. The caller
// is an unattended CRM, so every failure mode is data — nothing propagates as
// an error past the reconciler.
type ResultadoWebhook struct {
	Success     bool              `json:"success"`
	OperacionID uint              `json:"operacion_id,omitempty"`
	Estado      string            `json:"estado,omitempty"`
	Cambios     map[string]string `json:"cambios,omitempty"`
	Etiquetas   []string          `json:"etiquetas,omitempty"`
	Error       string            `json:"error,omitempty"`
}
