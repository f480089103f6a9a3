package api

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goliatone/go-portfolio/catalog"
	"github.com/goliatone/go-portfolio/editor"
	"github.com/goliatone/go-portfolio/locale"
)

// encodePayload flattens a draft into wire form fields: localized pairs
// as JSON strings, string lists as JSON array strings, booleans as
// "1"/"0", numbers as their decimal string. File fields are carried by
// the multipart body, never by the payload map.
func encodePayload(session *editor.Session) (map[string]string, error) {
	fields := session.Fields()
	payload := make(map[string]string, len(fields))

	for _, f := range session.Schema() {
		switch f.Kind {
		case catalog.FieldLocalized:
			value, _ := fields[f.Name].(locale.Value)
			wire, err := value.WireString()
			if err != nil {
				return nil, err
			}
			payload[f.Name] = wire
		case catalog.FieldStringList:
			values, _ := fields[f.Name].([]string)
			if values == nil {
				values = []string{}
			}
			data, err := json.Marshal(values)
			if err != nil {
				return nil, fmt.Errorf("api: encode %s: %w", f.Name, err)
			}
			payload[f.Name] = string(data)
		case catalog.FieldScalar:
			raw, ok := fields[f.Name]
			if !ok || raw == nil {
				continue
			}
			payload[f.Name] = scalarString(raw)
		case catalog.FieldFile:
			// stored paths are backend-owned; only new attachments travel
		}
	}
	return payload, nil
}

func scalarString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
