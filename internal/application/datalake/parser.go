package datalake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jhoicas/DataLake-api/internal/domain"
)

// RawRecord registro crudo sin tipar, con su posición (índice) en la carga.
// La validación de contenido es responsabilidad del validador de esquema.
type RawRecord struct {
	Position int
	Fields   map[string]any
}

// ParsePayload decodifica el cuerpo subido en una secuencia ordenada de
// registros crudos. Formas aceptadas: arreglo de objetos, objeto que envuelve
// el primer arreglo que contenga, u objeto suelto tratado como lote de un
// registro.
//
// Transformación pura: no valida campos ni toca almacenamiento. Un cuerpo no
// decodificable, vacío, o con elementos que no sean objetos es
// domain.ErrMalformedPayload (fatal para el lote completo).
func ParsePayload(body []byte) ([]RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	// UseNumber conserva los números como texto: los precios y cantidades se
	// convierten a decimal sin pasar por float64.
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	var rows []any
	switch v := data.(type) {
	case []any:
		rows = v
	case map[string]any:
		rows = firstArrayValue(v)
		if rows == nil {
			rows = []any{v} // objeto suelto: lote de un registro
		}
	default:
		return nil, fmt.Errorf("%w: se espera un arreglo de objetos o un objeto con un arreglo", domain.ErrMalformedPayload)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: el archivo no contiene datos", domain.ErrMalformedPayload)
	}

	records := make([]RawRecord, 0, len(rows))
	for i, row := range rows {
		fields, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: el elemento %d no es un objeto", domain.ErrMalformedPayload, i)
		}
		records = append(records, RawRecord{Position: i, Fields: fields})
	}
	return records, nil
}

// firstArrayValue devuelve el primer valor de tipo arreglo dentro del objeto
// (por clave en orden alfabético, para que la elección sea determinista), o
// nil si no hay ninguno. Permite cargas envueltas como {"products": [...]}.
func firstArrayValue(obj map[string]any) []any {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if arr, ok := obj[k].([]any); ok {
			return arr
		}
	}
	return nil
}
