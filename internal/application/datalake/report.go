package datalake

// Action acción aplicada (o simulada) sobre un registro.
type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionRejected Action = "rejected"
)

// RecordOutcome resultado de un registro, en orden de carga.
type RecordOutcome struct {
	Position   int        `json:"position"`
	EntityType EntityType `json:"entity_type"`
	NaturalKey string     `json:"natural_key,omitempty"`
	Action     Action     `json:"action"`
	Reasons    []string   `json:"reasons,omitempty"` // solo cuando action = rejected
}

// Report reporte estructurado de un lote. Es el contrato de salida del
// pipeline: siempre describe exactamente qué registros entraron y por qué
// fallaron los demás, incluso bajo fallo parcial.
type Report struct {
	EntityType EntityType      `json:"entity_type"`
	DryRun     bool            `json:"dry_run"`
	Total      int             `json:"total"`
	Accepted   int             `json:"accepted"`
	Rejected   int             `json:"rejected"`
	Created    int             `json:"created"`
	Updated    int             `json:"updated"`
	Incomplete bool            `json:"incomplete,omitempty"` // fallo de almacenamiento a mitad de lote
	Records    []RecordOutcome `json:"records"`
}

// ReportBuilder acumula resultados por registro y produce el reporte final.
// Determinista y sin efectos: el orden de las entradas es el orden de carga.
type ReportBuilder struct {
	report Report
}

// NewReportBuilder construye el builder para un lote.
func NewReportBuilder(entityType EntityType, dryRun bool) *ReportBuilder {
	return &ReportBuilder{report: Report{EntityType: entityType, DryRun: dryRun}}
}

// Accepted registra un registro aceptado con su acción (created o updated).
func (b *ReportBuilder) Accepted(rec *Record, action Action) {
	b.report.Total++
	b.report.Accepted++
	switch action {
	case ActionCreated:
		b.report.Created++
	case ActionUpdated:
		b.report.Updated++
	}
	b.report.Records = append(b.report.Records, RecordOutcome{
		Position:   rec.Position,
		EntityType: rec.Type,
		NaturalKey: rec.NaturalKey(),
		Action:     action,
	})
}

// Rejected registra un rechazo con sus razones. naturalKey puede ser vacío
// cuando el rechazo fue estructural y la clave no se pudo extraer.
func (b *ReportBuilder) Rejected(position int, entityType EntityType, naturalKey string, reasons []string) {
	b.report.Total++
	b.report.Rejected++
	b.report.Records = append(b.report.Records, RecordOutcome{
		Position:   position,
		EntityType: entityType,
		NaturalKey: naturalKey,
		Action:     ActionRejected,
		Reasons:    reasons,
	})
}

// MarkIncomplete marca el lote como interrumpido por fallo de almacenamiento;
// las entradas ya acumuladas describen el prefijo aplicado.
func (b *ReportBuilder) MarkIncomplete() {
	b.report.Incomplete = true
}

// Build devuelve el reporte final.
func (b *ReportBuilder) Build() *Report {
	r := b.report
	if r.Records == nil {
		r.Records = []RecordOutcome{}
	}
	return &r
}
