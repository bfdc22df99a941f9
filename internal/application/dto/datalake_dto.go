package dto

// UploadParams parámetros de la carga masiva (query/form, el payload va en el body o como archivo).
type UploadParams struct {
	DataType string `query:"data_type" form:"data_type" validate:"required,oneof=products series stocks orders"`
	DryRun   bool   `query:"dry_run" form:"dry_run"`
}

// EntityInfo describe un tipo de entidad aceptado por la carga masiva.
type EntityInfo struct {
	Type           string   `json:"type"`
	NaturalKey     string   `json:"natural_key"`
	RequiredFields []string `json:"required_fields"`
	OptionalFields []string `json:"optional_fields"`
}

// InfoResponse documenta el contrato del endpoint de carga: tipos soportados
// y campos por tipo, para que los integradores no dependan de documentación externa.
type InfoResponse struct {
	Endpoint  string       `json:"endpoint"`
	Method    string       `json:"method"`
	Formats   []string     `json:"formats"`
	Entities  []EntityInfo `json:"entities"`
	DryRunTip string       `json:"dry_run_tip"`
}
