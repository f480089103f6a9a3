// Package testsupport reproduces the portfolio REST backend in-process
// so the client and editor can be exercised end to end without a
// deployed server. Payloads are stored exactly as submitted, which
// means localized fields come back in the same mixed wire shapes a real
// backend accumulates over time.
package testsupport

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/goliatone/go-portfolio/catalog"
)

const maxUploadBytes = 32 << 20

// NewServer builds an http.Handler implementing the backend contract:
// aggregate content, per-kind listing, create, update (including the
// multipart POST + _method override), and delete.
func NewServer(store *Store) http.Handler {
	s := &server{store: store}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/portfolio-data", s.site)
	mux.HandleFunc("GET /api/{kind}", s.list)
	mux.HandleFunc("POST /api/{kind}", s.create)
	mux.HandleFunc("GET /api/{kind}/{id}", s.get)
	mux.HandleFunc("PUT /api/{kind}/{id}", s.update)
	mux.HandleFunc("DELETE /api/{kind}/{id}", s.remove)
	return mux
}

type server struct {
	store *Store
}

var kindListKeys = map[catalog.Kind]string{
	catalog.KindExperience:    "experiences",
	catalog.KindSkill:         "skills",
	catalog.KindEducation:     "educations",
	catalog.KindProject:       "projects",
	catalog.KindCertification: "certifications",
}

func (s *server) site(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{"settings": s.store.Settings()}
	for _, kind := range catalog.Kinds() {
		items, err := s.store.List(r.Context(), kind)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		payload[kindListKeys[kind]] = items
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}
	items, err := s.store.List(r.Context(), kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) get(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := s.kindAndID(w, r)
	if !ok {
		return
	}
	record, err := s.store.Get(r.Context(), kind, id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// create also serves multipart updates: a POST carrying _method=PUT and
// an id field is routed to the update path, mirroring backends that do
// not accept body-bearing PUT requests with multipart payloads.
func (s *server) create(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}

	payload, override, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if override == http.MethodPut {
		id := idFromPayload(payload)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "update override requires an id field")
			return
		}
		delete(payload, "_method")
		delete(payload, "id")
		record, err := s.store.Update(r.Context(), kind, id, payload)
		if err != nil {
			s.storeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
		return
	}

	record, err := s.store.Create(r.Context(), kind, payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *server) update(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := s.kindAndID(w, r)
	if !ok {
		return
	}
	payload, _, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	record, err := s.store.Update(r.Context(), kind, id, payload)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *server) remove(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := s.kindAndID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), kind, id); err != nil {
		s.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) kind(w http.ResponseWriter, r *http.Request) (catalog.Kind, bool) {
	kind, err := catalog.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return kind, true
}

func (s *server) kindAndID(w http.ResponseWriter, r *http.Request) (catalog.Kind, int64, bool) {
	kind, ok := s.kind(w, r)
	if !ok {
		return "", 0, false
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "invalid entity id")
		return "", 0, false
	}
	return kind, id, true
}

func (s *server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrEntityNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// decodePayload accepts either a JSON object body or a multipart form.
// Multipart file parts are "stored" as upload paths under their field
// name; list-valued file fields (the project gallery) accumulate.
func decodePayload(r *http.Request) (map[string]any, string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, "", err
		}

		payload := make(map[string]any)
		for name, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				payload[name] = values[0]
			}
		}
		for name, headers := range r.MultipartForm.File {
			if len(headers) == 1 {
				payload[name] = uploadPath(headers[0].Filename)
				continue
			}
			paths := make([]string, 0, len(headers))
			for _, header := range headers {
				paths = append(paths, uploadPath(header.Filename))
			}
			payload[name] = paths
		}
		override, _ := payload["_method"].(string)
		return payload, override, nil
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, "", err
	}
	return payload, "", nil
}

func uploadPath(filename string) string {
	return "/uploads/" + path.Base(filename)
}

func idFromPayload(payload map[string]any) int64 {
	switch v := payload["id"].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return id
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
