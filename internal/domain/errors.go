package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrMalformedPayload el cuerpo subido no se pudo parsear; fatal para el lote completo.
	ErrMalformedPayload = errors.New("payload mal formado")
	// ErrUnknownEntityType el data_type declarado no es products, series, stocks ni orders.
	ErrUnknownEntityType = errors.New("tipo de entidad desconocido")
	// ErrStorageFault fallo de infraestructura escribiendo en el almacenamiento; el lote
	// queda incompleto y el reporte describe el prefijo ya aplicado.
	ErrStorageFault = errors.New("fallo de almacenamiento")

	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
