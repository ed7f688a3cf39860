package domain

// DefaultWantedKeys is the minimum viable set of procurement metadata tags.
var DefaultWantedKeys = []string{
	"COD_PROC", "IDENTIFICADOR", "CAT_PLIEGO_ID", "CAT_PLIEGO_NOMBRE", "FECHA", "DESCRIPCION",
	"RUC", "NOMBRE_ENTID_CONTRAT", "PROVINCIA_COD", "CANTON_COD", "PARROQUIA_COD",
	"CALLE_PRINCIPAL", "CALLE_SECUNDARIA", "REFERENCIA", "CORREO", "TELEFONO", "SITIO_WEB",
	"OBJETO", "OBJETO_CONTRATO", "PRESUPUESTO", "PRESUPUESTO_REFERENCIAL", "PLAZO", "PLAZO_EJECUCION",
}

// MetadataField is a recovered (tag, value) pair.
type MetadataField struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// Fields is a flat tag -> value mapping that remembers first-insertion order
// of its tags. Setting an existing tag overwrites its value in place.
type Fields struct {
	order  []string
	values map[string]string
}

// NewFields returns an empty mapping.
func NewFields() *Fields {
	return &Fields{values: make(map[string]string)}
}

// Set stores value under tag, overwriting any previous value.
func (f *Fields) Set(tag, value string) {
	if _, ok := f.values[tag]; !ok {
		f.order = append(f.order, tag)
	}
	f.values[tag] = value
}

// Get returns the value stored under tag.
func (f *Fields) Get(tag string) (string, bool) {
	if f == nil {
		return "", false
	}
	v, ok := f.values[tag]
	return v, ok
}

// Len returns the number of distinct tags.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// Tags returns tags in first-insertion order.
func (f *Fields) Tags() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// List returns the fields in tag order.
func (f *Fields) List() []MetadataField {
	if f == nil {
		return nil
	}
	out := make([]MetadataField, 0, len(f.order))
	for _, tag := range f.order {
		out = append(out, MetadataField{Tag: tag, Value: f.values[tag]})
	}
	return out
}

// Map returns a copy of the mapping.
func (f *Fields) Map() map[string]string {
	out := make(map[string]string, f.Len())
	if f == nil {
		return out
	}
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Project restricts the mapping to the wanted keys, in wanted order.
// Absent keys map to the empty string.
func (f *Fields) Project(wanted []string) map[string]string {
	out := make(map[string]string, len(wanted))
	for _, k := range wanted {
		v, _ := f.Get(k)
		out[k] = v
	}
	return out
}

// FieldRow is one output row of recovered metadata for a source file.
type FieldRow struct {
	SourceFile string
	Fields     *Fields
}
