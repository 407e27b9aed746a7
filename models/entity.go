package models

// FieldType is the semantic type of a declared entity field. It drives the
// coercion of query-string filter values before a predicate is built.
type FieldType int

const (
	FieldTypeString FieldType = iota
	FieldTypeInt
	FieldTypeFloat
	FieldTypeBool
	FieldTypeDatetime
	FieldTypeEnum
)

// Field is one declared column of an entity, primary key excluded.
type Field struct {
	Name   string
	Type   FieldType
	Unique bool
	// Sensitive fields are persisted but never selected back into records,
	// so they cannot leak through a response envelope.
	Sensitive bool
}

type Cardinality int

const (
	ManyToOne Cardinality = iota
	OneToMany
	ManyToMany
)

// Relationship declares a named hop from one entity to another. Targets are
// referenced by registry name, not by pointer, so descriptors stay simple
// values and cyclic declarations (idea <-> attachment) are not a problem.
type Relationship struct {
	Target string
	Kind   Cardinality

	// ForeignKey is the joining column: on this entity's table for
	// ManyToOne, on the target's table for OneToMany.
	ForeignKey string

	// Many-to-many hops go through a link table.
	LinkTable     string
	LinkOwnerKey  string
	LinkTargetKey string

	// Cascade deletes target rows (OneToMany) or link rows (ManyToMany)
	// when the owning row is deleted.
	Cascade bool
}

// EntityDescriptor is the static metadata of one persisted type: its table,
// primary key, ordered fields and named relationships. One CrudRepository is
// constructed per descriptor; all dynamic SQL is derived from it.
type EntityDescriptor struct {
	// Name is the registry key and the human-readable entity name used in
	// error messages ("idea not found").
	Name          string
	Table         string
	PrimaryKey    string
	Fields        []Field
	Relationships map[string]Relationship
}

// FieldByName returns the declared non-pk field, if any.
func (d EntityDescriptor) FieldByName(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasColumn reports whether name is a declared column, primary key included.
func (d EntityDescriptor) HasColumn(name string) bool {
	if name == d.PrimaryKey {
		return true
	}
	_, ok := d.FieldByName(name)
	return ok
}

// SelectColumns returns the columns read back from the database, in
// declaration order, sensitive fields excluded.
func (d EntityDescriptor) SelectColumns() []string {
	cols := make([]string, 0, len(d.Fields)+1)
	cols = append(cols, d.PrimaryKey)
	for _, f := range d.Fields {
		if !f.Sensitive {
			cols = append(cols, f.Name)
		}
	}
	return cols
}

// Record is one persisted entity row, keyed by column name, with hydrated
// relationships stored under their declared names.
type Record map[string]any

// Id returns the record's primary key value. Rows are scanned from pgx so
// serial primary keys arrive as int32 or int64 depending on the column.
func (r Record) Id(pk string) int64 {
	switch v := r[pk].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}
