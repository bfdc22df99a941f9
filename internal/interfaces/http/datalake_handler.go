package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/DataLake-api/internal/application/datalake"
	"github.com/jhoicas/DataLake-api/internal/application/dto"
	"github.com/jhoicas/DataLake-api/internal/domain"
)

// DataLakeHandler maneja la carga masiva de datos y su endpoint informativo.
type DataLakeHandler struct {
	uc           *datalake.UploadUseCase
	maxBodyBytes int
}

// NewDataLakeHandler construye el handler del data lake.
func NewDataLakeHandler(uc *datalake.UploadUseCase, maxBodyBytes int) *DataLakeHandler {
	return &DataLakeHandler{uc: uc, maxBodyBytes: maxBodyBytes}
}

// Upload godoc
// @Summary      Carga masiva de datos
// @Description  Recibe un lote JSON (body crudo o archivo multipart "file") y lo procesa registro a registro. 200 si todos fueron aceptados, 207 si hubo rechazos parciales.
// @Tags         datalake
// @Accept       json
// @Produce      json
// @Param        data_type  query  string  true   "products | series | stocks | orders"
// @Param        dry_run    query  bool    false  "simular sin escribir"
// @Success      200  {object}  datalake.Report
// @Success      207  {object}  datalake.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  datalake.Report
// @Security     BearerAuth
// @Router       /api/datalake/upload [post]
func (h *DataLakeHandler) Upload(c *fiber.Ctx) error {
	var params dto.UploadParams
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros inválidos"})
	}
	if params.DataType == "" {
		// Alternativa: data_type como campo de formulario (multipart).
		params.DataType = c.FormValue("data_type")
		if c.FormValue("dry_run") == "true" || c.FormValue("dry_run") == "1" {
			params.DryRun = true
		}
	}
	if params.DataType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_type es requerido"})
	}

	payload, err := h.readPayload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}

	report, err := h.uc.Upload(c.UserContext(), datalake.UploadInput{
		EntityType: params.DataType,
		DryRun:     params.DryRun,
		Payload:    payload,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownEntityType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_ENTITY_TYPE", Message: err.Error()})
		case errors.Is(err, domain.ErrMalformedPayload):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_PAYLOAD", Message: err.Error()})
		case errors.Is(err, domain.ErrStorageFault):
			// El lote quedó a medias: el reporte describe el prefijo aplicado.
			if report != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(report)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE_FAULT", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	if report.Rejected > 0 {
		return c.Status(fiber.StatusMultiStatus).JSON(report)
	}
	return c.JSON(report)
}

// readPayload obtiene el cuerpo JSON: archivo multipart "file" si está presente,
// si no el body crudo. Aplica el límite de tamaño configurado.
func (h *DataLakeHandler) readPayload(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		if h.maxBodyBytes > 0 && fh.Size > int64(h.maxBodyBytes) {
			return nil, errors.New("archivo demasiado grande")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, errors.New("no se pudo abrir el archivo")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.New("no se pudo leer el archivo")
		}
		return data, nil
	}
	body := c.Body()
	if h.maxBodyBytes > 0 && len(body) > h.maxBodyBytes {
		return nil, errors.New("payload demasiado grande")
	}
	if len(body) == 0 {
		return nil, errors.New("payload vacío")
	}
	return body, nil
}

// Info godoc
// @Summary      Contrato de la carga masiva
// @Description  Documenta los tipos de entidad soportados y sus campos.
// @Tags         datalake
// @Produce      json
// @Success      200  {object}  dto.InfoResponse
// @Security     BearerAuth
// @Router       /api/datalake/info [get]
func (h *DataLakeHandler) Info(c *fiber.Ctx) error {
	return c.JSON(dto.InfoResponse{
		Endpoint: "/api/datalake/upload",
		Method:   "POST",
		Formats:  []string{"array JSON", "objeto con lista anidada", "objeto único"},
		Entities: []dto.EntityInfo{
			{
				Type:           "products",
				NaturalKey:     "sku",
				RequiredFields: []string{"sku", "name", "price"},
				OptionalFields: []string{"category", "active"},
			},
			{
				Type:           "series",
				NaturalKey:     "code",
				RequiredFields: []string{"code", "product_sku"},
				OptionalFields: []string{"name", "production_date", "expire_date"},
			},
			{
				Type:           "stocks",
				NaturalKey:     "series_code + warehouse_id",
				RequiredFields: []string{"series_code", "warehouse_id", "quantity"},
				OptionalFields: []string{"reserved", "updated_at"},
			},
			{
				Type:           "orders",
				NaturalKey:     "number",
				RequiredFields: []string{"number", "customer_code", "items"},
				OptionalFields: []string{"status", "created_date", "shipped_date", "delivered_date", "cancel_reason"},
			},
		},
		DryRunTip: "use dry_run=true para validar el lote sin escribir",
	})
}
