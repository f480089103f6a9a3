package catalog

// FieldKind classifies how a field travels on the wire and how the
// editor mutates it.
type FieldKind string

const (
	// FieldScalar passes through as-is: strings, numbers, booleans.
	FieldScalar FieldKind = "scalar"
	// FieldLocalized is a bilingual pair serialised as a JSON string.
	FieldLocalized FieldKind = "localized"
	// FieldStringList is an ordered list of plain strings.
	FieldStringList FieldKind = "stringlist"
	// FieldFile is an upload slot; its stored form is a relative path.
	FieldFile FieldKind = "file"
)

// Field describes one editable entity field.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// Schema is the ordered field set for one entity kind. A single schema
// per kind drives the edit session and the wire encoder, so the five
// entity editors share one driver instead of near-identical copies.
type Schema []Field

// Field looks up a schema entry by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Localized returns the names of every localized field in order.
func (s Schema) Localized() []string {
	var names []string
	for _, f := range s {
		if f.Kind == FieldLocalized {
			names = append(names, f.Name)
		}
	}
	return names
}

var schemas = map[Kind]Schema{
	KindExperience: {
		{Name: "title", Kind: FieldLocalized, Required: true},
		{Name: "company", Kind: FieldLocalized, Required: true},
		{Name: "description", Kind: FieldLocalized},
		{Name: "start_date", Kind: FieldScalar, Required: true},
		{Name: "end_date", Kind: FieldScalar},
		{Name: "is_current", Kind: FieldScalar},
		{Name: "sort_order", Kind: FieldScalar},
		{Name: "is_active", Kind: FieldScalar},
	},
	KindSkill: {
		{Name: "name", Kind: FieldLocalized, Required: true},
		{Name: "category", Kind: FieldLocalized, Required: true},
		{Name: "level", Kind: FieldScalar},
		{Name: "icon", Kind: FieldFile},
		{Name: "sort_order", Kind: FieldScalar},
		{Name: "is_active", Kind: FieldScalar},
	},
	KindEducation: {
		{Name: "school", Kind: FieldLocalized, Required: true},
		{Name: "degree", Kind: FieldLocalized, Required: true},
		{Name: "description", Kind: FieldLocalized},
		{Name: "start_date", Kind: FieldScalar},
		{Name: "end_date", Kind: FieldScalar},
		{Name: "sort_order", Kind: FieldScalar},
		{Name: "is_active", Kind: FieldScalar},
	},
	KindProject: {
		{Name: "title", Kind: FieldLocalized, Required: true},
		{Name: "slug", Kind: FieldLocalized},
		{Name: "description", Kind: FieldLocalized},
		{Name: "technologies", Kind: FieldStringList},
		{Name: "thumbnail", Kind: FieldFile},
		{Name: "gallery", Kind: FieldFile},
		{Name: "demo_url", Kind: FieldScalar},
		{Name: "source_url", Kind: FieldScalar},
		{Name: "status", Kind: FieldScalar},
		{Name: "is_featured", Kind: FieldScalar},
		{Name: "sort_order", Kind: FieldScalar},
		{Name: "is_active", Kind: FieldScalar},
	},
	KindCertification: {
		{Name: "name", Kind: FieldLocalized, Required: true},
		{Name: "issuer", Kind: FieldLocalized},
		{Name: "issue_date", Kind: FieldScalar},
		{Name: "credential_url", Kind: FieldScalar},
		{Name: "image", Kind: FieldFile},
		{Name: "sort_order", Kind: FieldScalar},
		{Name: "is_active", Kind: FieldScalar},
	},
}

// SchemaFor returns the field schema for the supplied kind. The result
// is shared; callers must not mutate it.
func SchemaFor(kind Kind) (Schema, error) {
	s, ok := schemas[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return s, nil
}
