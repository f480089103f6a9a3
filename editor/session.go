package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-portfolio/catalog"
	"github.com/goliatone/go-portfolio/locale"
)

var (
	ErrUnknownField  = errors.New("editor: unknown field")
	ErrFieldKind     = errors.New("editor: field kind mismatch")
	ErrSaveInFlight  = errors.New("editor: save already in progress")
	ErrSessionClosed = errors.New("editor: session closed")
)

// Attachment is a newly selected file that has not been uploaded yet.
type Attachment struct {
	Field    string
	Filename string
	Content  []byte
}

// Session owns one entity draft for the duration of a single edit. The
// draft's field set is driven by the kind's schema, so all five entity
// editors share this one driver. A session is discarded on Close or
// replaced by the backend's canonical record on a successful save;
// completions that arrive after Close are ignored.
type Session struct {
	id     uuid.UUID
	kind   catalog.Kind
	schema catalog.Schema

	mu          sync.Mutex
	entityID    int64
	fields      map[string]any
	attachments []Attachment
	mirrorVI    map[string]bool
	saving      bool
	closed      bool
}

// NewSession creates an empty draft for the supplied kind. Localized
// fields start as empty pairs, booleans default to inactive.
func NewSession(kind catalog.Kind) (*Session, error) {
	schema, err := catalog.SchemaFor(kind)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any, len(schema))
	for _, f := range schema {
		switch f.Kind {
		case catalog.FieldLocalized:
			fields[f.Name] = locale.Value{}
		case catalog.FieldStringList:
			fields[f.Name] = []string(nil)
		}
	}

	return &Session{
		id:       uuid.New(),
		kind:     kind,
		schema:   schema,
		fields:   fields,
		mirrorVI: make(map[string]bool),
	}, nil
}

// NewSessionFromRecord normalizes an existing record into a draft. The
// record may be a typed catalog entity or the raw decoded wire map;
// localized fields are coerced into canonical pairs either way.
func NewSessionFromRecord(kind catalog.Kind, record any) (*Session, error) {
	s, err := NewSession(kind)
	if err != nil {
		return nil, err
	}

	raw, err := toWireMap(record)
	if err != nil {
		return nil, err
	}
	s.applyRecord(raw)
	return s, nil
}

func toWireMap(record any) (map[string]any, error) {
	if m, ok := record.(map[string]any); ok {
		return m, nil
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("editor: encode record: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("editor: decode record: %w", err)
	}
	return m, nil
}

// applyRecord merges a wire map into the draft. Caller holds no lock;
// this runs during construction and under FinishSave's lock.
func (s *Session) applyRecord(raw map[string]any) {
	if id, ok := raw["id"]; ok {
		s.entityID = coerceID(id)
	}
	for _, f := range s.schema {
		value, ok := raw[f.Name]
		if !ok {
			continue
		}
		switch f.Kind {
		case catalog.FieldLocalized:
			s.fields[f.Name] = locale.Normalize(value)
		case catalog.FieldStringList:
			s.fields[f.Name] = coerceStringList(value)
		default:
			s.fields[f.Name] = value
		}
	}
}

func coerceID(raw any) int64 {
	switch v := raw.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	default:
		return 0
	}
}

func coerceStringList(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		// Stored as a JSON array string on the wire.
		var out []string
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil
		}
		return out
	default:
		return nil
	}
}

// ID returns the transient session identity.
func (s *Session) ID() uuid.UUID { return s.id }

// Kind returns the entity kind under edit.
func (s *Session) Kind() catalog.Kind { return s.kind }

// Schema returns the field schema driving this session.
func (s *Session) Schema() catalog.Schema { return s.schema }

// EntityID returns the backend-assigned identity, 0 for unsaved drafts.
func (s *Session) EntityID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entityID
}

// IsNew reports whether the draft has never been persisted.
func (s *Session) IsNew() bool {
	return s.EntityID() == 0
}

func (s *Session) field(name string, kind catalog.FieldKind) (catalog.Field, error) {
	f, ok := s.schema.Field(name)
	if !ok {
		return catalog.Field{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, s.kind, name)
	}
	if f.Kind != kind {
		return catalog.Field{}, fmt.Errorf("%w: %s.%s is %s", ErrFieldKind, s.kind, name, f.Kind)
	}
	return f, nil
}

// SetScalar overwrites a non-localized field.
func (s *Session) SetScalar(name string, value any) error {
	if _, err := s.field(name, catalog.FieldScalar); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[name] = value
	return nil
}

// SetStringList overwrites an ordered string list field.
func (s *Session) SetStringList(name string, values []string) error {
	if _, err := s.field(name, catalog.FieldStringList); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[name] = append([]string(nil), values...)
	return nil
}

// SetLocalized overwrites one language slot of one localized field. The
// sibling language's content is always preserved.
func (s *Session) SetLocalized(name string, lang locale.Language, value string) error {
	if _, err := s.field(name, catalog.FieldLocalized); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, _ := s.fields[name].(locale.Value)
	if lang == locale.English {
		current.EN = value
	} else {
		current.VI = value
	}
	s.fields[name] = current
	return nil
}

// CopyViToEn overwrites the EN slot of one field with its current VI
// content. It is a per-field convenience, never entity-wide.
func (s *Session) CopyViToEn(name string) error {
	if _, err := s.field(name, catalog.FieldLocalized); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, _ := s.fields[name].(locale.Value)
	current.EN = current.VI
	s.fields[name] = current
	return nil
}

// Localized returns the current pair for a localized field.
func (s *Session) Localized(name string) (locale.Value, error) {
	if _, err := s.field(name, catalog.FieldLocalized); err != nil {
		return locale.Value{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _ := s.fields[name].(locale.Value)
	return v, nil
}

// SetMirrorVI toggles the per-field display flag that mirrors VI content
// into the EN editor view. The flag affects presentation only: it never
// writes the EN slot, and clearing it restores whatever EN text was
// typed before.
func (s *Session) SetMirrorVI(name string, on bool) error {
	if _, err := s.field(name, catalog.FieldLocalized); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.mirrorVI[name] = true
	} else {
		delete(s.mirrorVI, name)
	}
	return nil
}

// DisplayValue returns what the editor should render for one language
// slot, honouring the mirror flag for the EN view.
func (s *Session) DisplayValue(name string, lang locale.Language) (string, error) {
	if _, err := s.field(name, catalog.FieldLocalized); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _ := s.fields[name].(locale.Value)
	if lang == locale.English {
		if s.mirrorVI[name] {
			return v.VI, nil
		}
		return v.EN, nil
	}
	return v.VI, nil
}

// Attach queues a newly selected file for upload on the next save.
func (s *Session) Attach(field, filename string, content []byte) error {
	if _, err := s.field(field, catalog.FieldFile); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments = append(s.attachments, Attachment{
		Field:    field,
		Filename: filename,
		Content:  append([]byte(nil), content...),
	})
	return nil
}

// Attachments returns the queued uploads in selection order.
func (s *Session) Attachments() []Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Attachment(nil), s.attachments...)
}

// HasAttachments reports whether any upload is queued; the persistence
// adapter switches to multipart encoding when it is true.
func (s *Session) HasAttachments() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attachments) > 0
}

// Fields returns a copy of the draft's current field values.
func (s *Session) Fields() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}

// Validate enforces the schema's required fields. Localized fields count
// as present when either slot carries content.
func (s *Session) Validate() error {
	fields := s.Fields()

	errs := validation.Errors{}
	for _, f := range s.schema {
		if !f.Required {
			continue
		}
		switch f.Kind {
		case catalog.FieldLocalized:
			if v, _ := fields[f.Name].(locale.Value); v.IsEmpty() {
				errs[f.Name] = validation.NewError(
					"portfolio.editor.field_required",
					fmt.Sprintf("%s is required", f.Name),
				)
			}
		default:
			if v, _ := fields[f.Name].(string); v == "" {
				errs[f.Name] = validation.NewError(
					"portfolio.editor.field_required",
					fmt.Sprintf("%s is required", f.Name),
				)
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BeginSave marks the session as saving. It fails while another save is
// in flight so a draft can never be submitted twice concurrently.
func (s *Session) BeginSave() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.saving {
		return ErrSaveInFlight
	}
	s.saving = true
	return nil
}

// FinishSave completes an in-flight save. On success the backend's
// canonical record replaces the draft and queued attachments are
// dropped; on failure the draft stays untouched so the user can retry.
// A completion arriving after Close is ignored entirely.
func (s *Session) FinishSave(canonical map[string]any, saveErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.saving = false
	if saveErr != nil || canonical == nil {
		return
	}
	s.applyRecord(canonical)
	s.attachments = nil
}

// Saving reports whether a save is currently in flight.
func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Close discards the session. Late save completions become no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether the session has been discarded.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
