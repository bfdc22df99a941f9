package datalake

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Record registro validado y tipado: exactamente uno de los punteros es no nil,
// según Type. Es la variante etiquetada que consume el resolver y el upsert.
type Record struct {
	Position int
	Type     EntityType
	Product  *ProductRecord
	Series   *SeriesRecord
	Stock    *StockRecord
	Order    *OrderRecord
}

// ProductRecord producto validado, pendiente de resolución (no tiene refs).
type ProductRecord struct {
	SKU      string
	Name     string
	Category string
	Price    decimal.Decimal
	Active   bool
}

// SeriesRecord serie validada; ProductSKU es la referencia por clave natural.
type SeriesRecord struct {
	Code           string
	ProductSKU     string
	Name           string
	ProductionDate *time.Time
	ExpireDate     *time.Time
}

// StockRecord saldo validado; SeriesCode es la referencia por clave natural.
type StockRecord struct {
	SeriesCode  string
	WarehouseID string
	Quantity    decimal.Decimal
	Reserved    bool
	UpdatedAt   time.Time
}

// OrderRecord orden validada con sus líneas.
type OrderRecord struct {
	Number        string
	CustomerCode  string
	Status        string
	CreatedDate   time.Time
	ShippedDate   *time.Time
	DeliveredDate *time.Time
	CancelReason  string
	Items         []OrderItemRecord
}

// OrderItemRecord línea de orden; SeriesCode vacío significa sin serie fijada.
type OrderItemRecord struct {
	ProductSKU string
	SeriesCode string
	Quantity   int
}

// NaturalKey devuelve la clave natural del registro, como aparece en reportes.
func (r *Record) NaturalKey() string {
	switch r.Type {
	case EntityProducts:
		return r.Product.SKU
	case EntitySeries:
		return r.Series.Code
	case EntityStocks:
		return r.Stock.SeriesCode + "@" + r.Stock.WarehouseID
	case EntityOrders:
		return r.Order.Number
	}
	return ""
}

// Alias aceptados por campo canónico. Las fuentes que alimentan el data lake
// nombran los campos de formas distintas (snake_case, camelCase, nombres
// heredados); el primer alias presente gana.
var (
	aliasType = []string{"type", "entity_type", "entityType", "data_type", "kind"}

	aliasProductSKU    = []string{"sku", "product_sku", "productSku", "product_code", "productCode", "code"}
	aliasProductName   = []string{"name", "product_name", "productName"}
	aliasProductCat    = []string{"category", "coating_type", "coatingType", "coating_type_name", "coatingTypeName"}
	aliasProductPrice  = []string{"price", "product_price", "productPrice"}
	aliasProductActive = []string{"active", "is_active", "isActive"}

	aliasSeriesCode     = []string{"code", "series_code", "seriesCode"}
	aliasSeriesProduct  = []string{"product_sku", "productSku", "product_code", "productCode", "sku"}
	aliasSeriesName     = []string{"name", "series_name", "seriesName"}
	aliasSeriesProdDate = []string{"production_date", "productionDate"}
	aliasSeriesExpDate  = []string{"expire_date", "expireDate", "expiry_date"}

	aliasStockSeries    = []string{"series_code", "seriesCode", "series"}
	aliasStockWarehouse = []string{"warehouse_id", "warehouseId", "warehouse"}
	aliasStockQuantity  = []string{"quantity", "stocks_count", "stocksCount", "count"}
	aliasStockReserved  = []string{"reserved", "is_reserved", "isReserved"}
	aliasStockUpdatedAt = []string{"updated_at", "updatedAt", "stocks_update_at"}

	aliasOrderNumber    = []string{"number", "order_number", "orderNumber"}
	aliasOrderCustomer  = []string{"customer_code", "customerCode", "client_code", "clientCode", "customer"}
	aliasOrderStatus    = []string{"status", "order_status", "orderStatus"}
	aliasOrderCreated   = []string{"created_date", "created_at", "createdAt"}
	aliasOrderShipped   = []string{"shipped_date", "shipped_at", "shippedAt"}
	aliasOrderDelivered = []string{"delivered_date", "delivered_at", "deliveredAt"}
	aliasOrderCancel    = []string{"cancel_reason", "cancelReason"}
	aliasOrderItems     = []string{"items", "order_items", "orderItems"}

	aliasItemProduct  = []string{"product_sku", "productSku", "product_code", "productCode", "sku"}
	aliasItemSeries   = []string{"series_code", "seriesCode", "series"}
	aliasItemQuantity = []string{"quantity", "count"}
)

var validOrderStatuses = map[string]struct{}{
	"pending": {}, "shipped": {}, "delivered": {}, "cancelled": {},
}

// ValidateRecord chequea forma, tipos y restricciones de valor de un registro
// crudo. Devuelve el registro tipado, o la lista de razones por campo si el
// registro se rechaza. Nunca devuelve error: un registro mal formado es dato,
// no defecto, y no detiene a los demás registros del lote.
//
// El tipo declarado del lote es el tipo por defecto; un registro puede
// declarar el suyo con el campo "type" (lotes mixtos en orden recomendado).
func ValidateRecord(declared EntityType, raw RawRecord) (*Record, []string) {
	kind := declared
	if s, ok := getString(raw.Fields, aliasType); ok {
		parsed, err := ParseEntityType(s)
		if err != nil {
			return nil, []string{fmt.Sprintf("type: tipo de entidad desconocido %q", s)}
		}
		kind = parsed
	}

	rec := &Record{Position: raw.Position, Type: kind}
	var reasons []string
	switch kind {
	case EntityProducts:
		rec.Product, reasons = validateProduct(raw.Fields)
	case EntitySeries:
		rec.Series, reasons = validateSeries(raw.Fields)
	case EntityStocks:
		rec.Stock, reasons = validateStock(raw.Fields)
	case EntityOrders:
		rec.Order, reasons = validateOrder(raw.Fields)
	}
	if len(reasons) > 0 {
		return nil, reasons
	}
	return rec, nil
}

func validateProduct(fields map[string]any) (*ProductRecord, []string) {
	var reasons []string

	sku, ok := getKey(fields, aliasProductSKU)
	if !ok {
		reasons = append(reasons, "sku: clave natural requerida, no vacía")
	}
	name, ok := getString(fields, aliasProductName)
	if !ok || strings.TrimSpace(name) == "" {
		reasons = append(reasons, "name: nombre de producto requerido")
	}
	price, found, err := getDecimal(fields, aliasProductPrice)
	switch {
	case !found:
		reasons = append(reasons, "price: precio requerido")
	case err != nil:
		reasons = append(reasons, "price: debe ser numérico")
	case price.IsNegative():
		reasons = append(reasons, "price: no puede ser negativo")
	}

	category, _ := getString(fields, aliasProductCat)
	active, found, err := getBool(fields, aliasProductActive)
	if found && err != nil {
		reasons = append(reasons, "active: debe ser booleano")
	}
	if !found {
		active = true
	}

	if len(reasons) > 0 {
		return nil, reasons
	}
	return &ProductRecord{
		SKU:      sku,
		Name:     clip(strings.TrimSpace(name), 80),
		Category: clip(strings.TrimSpace(category), 40),
		Price:    price,
		Active:   active,
	}, nil
}

func validateSeries(fields map[string]any) (*SeriesRecord, []string) {
	var reasons []string

	code, ok := getKey(fields, aliasSeriesCode)
	if !ok {
		reasons = append(reasons, "code: clave natural requerida, no vacía")
	}
	productSKU, ok := getKey(fields, aliasSeriesProduct)
	if !ok {
		reasons = append(reasons, "product_sku: referencia a producto requerida")
	}
	name, _ := getString(fields, aliasSeriesName)

	prodDate, err := getDate(fields, aliasSeriesProdDate)
	if err != nil {
		reasons = append(reasons, "production_date: fecha inválida, se espera AAAA-MM-DD")
	}
	expDate, err := getDate(fields, aliasSeriesExpDate)
	if err != nil {
		reasons = append(reasons, "expire_date: fecha inválida, se espera AAAA-MM-DD")
	}
	if prodDate != nil && expDate != nil && expDate.Before(*prodDate) {
		reasons = append(reasons, "expire_date: no puede ser anterior a production_date")
	}

	if len(reasons) > 0 {
		return nil, reasons
	}
	return &SeriesRecord{
		Code:           code,
		ProductSKU:     productSKU,
		Name:           clip(strings.TrimSpace(name), 40),
		ProductionDate: prodDate,
		ExpireDate:     expDate,
	}, nil
}

func validateStock(fields map[string]any) (*StockRecord, []string) {
	var reasons []string

	seriesCode, ok := getKey(fields, aliasStockSeries)
	if !ok {
		reasons = append(reasons, "series_code: referencia a serie requerida")
	}
	warehouseID, ok := getKey(fields, aliasStockWarehouse)
	if !ok {
		reasons = append(reasons, "warehouse_id: bodega requerida, no vacía")
	}
	qty, found, err := getDecimal(fields, aliasStockQuantity)
	switch {
	case !found:
		reasons = append(reasons, "quantity: cantidad requerida")
	case err != nil:
		reasons = append(reasons, "quantity: debe ser numérica")
	case qty.IsNegative():
		reasons = append(reasons, "quantity: no puede ser negativa")
	}

	reserved, found, err := getBool(fields, aliasStockReserved)
	if found && err != nil {
		reasons = append(reasons, "reserved: debe ser booleano")
	}
	updatedAt, err := getDate(fields, aliasStockUpdatedAt)
	if err != nil {
		reasons = append(reasons, "updated_at: fecha inválida, se espera AAAA-MM-DD")
	}

	if len(reasons) > 0 {
		return nil, reasons
	}
	st := &StockRecord{
		SeriesCode:  seriesCode,
		WarehouseID: warehouseID,
		Quantity:    qty,
		Reserved:    reserved,
	}
	// Sin fecha en la fila, el saldo se marca al día de la carga.
	if updatedAt != nil {
		st.UpdatedAt = *updatedAt
	} else {
		st.UpdatedAt = today()
	}
	return st, nil
}

func validateOrder(fields map[string]any) (*OrderRecord, []string) {
	var reasons []string

	number, ok := getKey(fields, aliasOrderNumber)
	if !ok {
		reasons = append(reasons, "number: clave natural requerida, no vacía")
	}
	customerCode, ok := getKey(fields, aliasOrderCustomer)
	if !ok {
		reasons = append(reasons, "customer_code: referencia a cliente requerida")
	}

	status, found := getString(fields, aliasOrderStatus)
	status = strings.ToLower(strings.TrimSpace(status))
	if !found || status == "" {
		status = "pending"
	} else if _, ok := validOrderStatuses[status]; !ok {
		reasons = append(reasons, fmt.Sprintf("status: estado desconocido %q", status))
	}

	createdDate, err := getDate(fields, aliasOrderCreated)
	if err != nil {
		reasons = append(reasons, "created_date: fecha inválida, se espera AAAA-MM-DD")
	}
	shippedDate, err := getDate(fields, aliasOrderShipped)
	if err != nil {
		reasons = append(reasons, "shipped_date: fecha inválida, se espera AAAA-MM-DD")
	}
	deliveredDate, err := getDate(fields, aliasOrderDelivered)
	if err != nil {
		reasons = append(reasons, "delivered_date: fecha inválida, se espera AAAA-MM-DD")
	}
	cancelReason, _ := getString(fields, aliasOrderCancel)

	items, itemReasons := validateOrderItems(fields)
	reasons = append(reasons, itemReasons...)

	if len(reasons) > 0 {
		return nil, reasons
	}
	ord := &OrderRecord{
		Number:        number,
		CustomerCode:  customerCode,
		Status:        status,
		ShippedDate:   shippedDate,
		DeliveredDate: deliveredDate,
		CancelReason:  clip(strings.TrimSpace(cancelReason), 100),
		Items:         items,
	}
	if createdDate != nil {
		ord.CreatedDate = *createdDate
	} else {
		ord.CreatedDate = today()
	}
	return ord, nil
}

func validateOrderItems(fields map[string]any) ([]OrderItemRecord, []string) {
	raw, found := getAny(fields, aliasOrderItems)
	if !found {
		return nil, []string{"items: una orden requiere al menos una línea"}
	}
	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return nil, []string{"items: debe ser un arreglo no vacío"}
	}

	var reasons []string
	items := make([]OrderItemRecord, 0, len(arr))
	for i, el := range arr {
		itemFields, ok := el.(map[string]any)
		if !ok {
			reasons = append(reasons, fmt.Sprintf("items[%d]: debe ser un objeto", i))
			continue
		}
		sku, ok := getKey(itemFields, aliasItemProduct)
		if !ok {
			reasons = append(reasons, fmt.Sprintf("items[%d].product_sku: referencia a producto requerida", i))
		}
		qty, found, err := getInt(itemFields, aliasItemQuantity)
		switch {
		case !found:
			reasons = append(reasons, fmt.Sprintf("items[%d].quantity: cantidad requerida", i))
		case err != nil:
			reasons = append(reasons, fmt.Sprintf("items[%d].quantity: debe ser entera", i))
		case qty <= 0:
			reasons = append(reasons, fmt.Sprintf("items[%d].quantity: debe ser mayor que cero", i))
		}
		seriesCode := ""
		if s, ok := getString(itemFields, aliasItemSeries); ok {
			seriesCode = normKey(s)
		}
		items = append(items, OrderItemRecord{ProductSKU: sku, SeriesCode: seriesCode, Quantity: qty})
	}
	if len(reasons) > 0 {
		return nil, reasons
	}
	return items, nil
}

// ── helpers de extracción ─────────────────────────────────────────────────────

// normKey normaliza una clave natural: NFC (fuentes heterogéneas mezclan
// Unicode compuesto y descompuesto para el mismo código) y recorte de espacios.
func normKey(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// getKey extrae una clave natural no vacía, normalizada.
func getKey(fields map[string]any, aliases []string) (string, bool) {
	s, ok := getString(fields, aliases)
	if !ok {
		return "", false
	}
	key := normKey(s)
	return key, key != ""
}

func getAny(fields map[string]any, aliases []string) (any, bool) {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func getString(fields map[string]any, aliases []string) (string, bool) {
	v, ok := getAny(fields, aliases)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	}
	return "", false
}

func getDecimal(fields map[string]any, aliases []string) (dec decimal.Decimal, found bool, err error) {
	v, ok := getAny(fields, aliases)
	if !ok {
		return decimal.Zero, false, nil
	}
	switch n := v.(type) {
	case json.Number:
		dec, err = decimal.NewFromString(n.String())
	case string:
		dec, err = decimal.NewFromString(strings.TrimSpace(n))
	case float64:
		dec = decimal.NewFromFloat(n)
	default:
		err = fmt.Errorf("tipo no numérico %T", v)
	}
	return dec, true, err
}

func getInt(fields map[string]any, aliases []string) (n int, found bool, err error) {
	dec, found, err := getDecimal(fields, aliases)
	if !found || err != nil {
		return 0, found, err
	}
	if !dec.IsInteger() {
		return 0, true, fmt.Errorf("no es entero")
	}
	return int(dec.IntPart()), true, nil
}

func getBool(fields map[string]any, aliases []string) (b bool, found bool, err error) {
	v, ok := getAny(fields, aliases)
	if !ok {
		return false, false, nil
	}
	switch t := v.(type) {
	case bool:
		return t, true, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "si", "sí":
			return true, true, nil
		case "false", "0", "no", "":
			return false, true, nil
		}
		return false, true, fmt.Errorf("texto no booleano %q", t)
	case json.Number:
		return t.String() != "0", true, nil
	}
	return false, true, fmt.Errorf("tipo no booleano %T", v)
}

// getDate extrae una fecha calendario opcional. Acepta AAAA-MM-DD o un
// timestamp RFC 3339 (se descarta la hora). (nil, nil) si el campo no viene.
func getDate(fields map[string]any, aliases []string) (*time.Time, error) {
	s, ok := getString(fields, aliases)
	if !ok || strings.TrimSpace(s) == "" {
		return nil, nil
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d, nil
	}
	return nil, fmt.Errorf("fecha inválida %q", s)
}

// today fecha calendario actual en UTC, sin hora.
func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// clip recorta a n runas, el límite de columna en DB.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
