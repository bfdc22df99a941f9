package datalake

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/DataLake-api/internal/domain"
	"github.com/jhoicas/DataLake-api/pkg/logger"
)

// UploadInput entrada de una invocación del pipeline: el cuerpo subido, el
// tipo declarado y el flag de simulación.
type UploadInput struct {
	EntityType string
	DryRun     bool
	Payload    []byte
}

// UploadUseCase orquesta el pipeline de ingesta del data lake:
// parser → validación de esquema → resolución de referencias →
// (upsert | simulación) → reporte. Los registros se procesan estrictamente en
// orden de carga; el orden es semántico y no se paraleliza dentro de un lote.
type UploadUseCase struct {
	resolver  *Resolver
	engine    *UpsertEngine
	simulator *DryRunSimulator
	log       *logger.Logger
}

// NewUploadUseCase construye el caso de uso con sus etapas ya armadas.
func NewUploadUseCase(resolver *Resolver, engine *UpsertEngine, simulator *DryRunSimulator, log *logger.Logger) *UploadUseCase {
	return &UploadUseCase{resolver: resolver, engine: engine, simulator: simulator, log: log}
}

// Upload procesa un lote completo y devuelve su reporte.
//
// Errores fatales de lote (domain.ErrMalformedPayload, ErrUnknownEntityType)
// abortan antes de tocar registro alguno y llegan con reporte nil. Un
// domain.ErrStorageFault interrumpe el lote a mitad: el reporte devuelto
// describe el prefijo ya aplicado y queda marcado como incompleto; reintentar
// es seguro porque los upserts son idempotentes por clave natural. Los
// rechazos por registro nunca son error: quedan en el reporte y los registros
// hermanos continúan.
func (uc *UploadUseCase) Upload(ctx context.Context, in UploadInput) (*Report, error) {
	entityType, err := ParseEntityType(in.EntityType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, in.EntityType)
	}
	records, err := ParsePayload(in.Payload)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	uc.log.Info().
		Str("batch_id", batchID).
		Str("entity_type", string(entityType)).
		Bool("dry_run", in.DryRun).
		Int("records", len(records)).
		Msg("iniciando lote de ingesta")

	idx := newBatchIndex()
	builder := NewReportBuilder(entityType, in.DryRun)

	for _, raw := range records {
		rec, reasons := ValidateRecord(entityType, raw)
		if rec == nil {
			builder.Rejected(raw.Position, entityType, "", reasons)
			continue
		}

		refs, reasons, err := uc.resolver.Resolve(rec, idx)
		if err != nil {
			return uc.incomplete(builder, batchID, rec.Position, err)
		}
		if refs == nil {
			builder.Rejected(rec.Position, rec.Type, rec.NaturalKey(), reasons)
			continue
		}

		var action Action
		if in.DryRun {
			action, err = uc.simulator.Simulate(rec, idx)
		} else {
			action, err = uc.engine.Apply(ctx, rec, refs)
		}
		if err != nil {
			return uc.incomplete(builder, batchID, rec.Position, err)
		}

		builder.Accepted(rec, action)
		idx.add(rec)
	}

	report := builder.Build()
	uc.log.Info().
		Str("batch_id", batchID).
		Int("accepted", report.Accepted).
		Int("rejected", report.Rejected).
		Int("created", report.Created).
		Int("updated", report.Updated).
		Msg("lote de ingesta finalizado")
	return report, nil
}

// incomplete cierra el lote tras un fallo de almacenamiento: reporte con el
// prefijo aplicado, marcado incompleto, y el error envuelto para el caller.
func (uc *UploadUseCase) incomplete(builder *ReportBuilder, batchID string, position int, err error) (*Report, error) {
	builder.MarkIncomplete()
	uc.log.Error().
		Str("batch_id", batchID).
		Int("position", position).
		Err(err).
		Msg("lote interrumpido por fallo de almacenamiento")
	if !errors.Is(err, domain.ErrStorageFault) {
		err = fmt.Errorf("%w: %v", domain.ErrStorageFault, err)
	}
	return builder.Build(), err
}
