package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dhunt84971/cslogix/logging"
)

type tagResponse struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value,omitempty"`
	Error string      `json:"error,omitempty"`
}

// handleListTags returns the controller and program tag names for a PLC.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	client := s.plcs.Get(chi.URLParam(r, "plc"))
	if client == nil {
		http.Error(w, "unknown PLC", http.StatusNotFound)
		return
	}

	tags, err := client.GetTagList(true)
	if err != nil {
		logging.DebugError("web", "ListTags", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}

	writeJSON(w, http.StatusOK, names)
}

// handleReadTag reads the current value of a single tag.
func (s *Server) handleReadTag(w http.ResponseWriter, r *http.Request) {
	client := s.plcs.Get(chi.URLParam(r, "plc"))
	if client == nil {
		http.Error(w, "unknown PLC", http.StatusNotFound)
		return
	}
	tagName := chi.URLParam(r, "tag")

	values, err := client.Read(tagName)
	if err != nil {
		logging.DebugError("web", "ReadTag", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if len(values) != 1 {
		http.Error(w, "unexpected read result", http.StatusInternalServerError)
		return
	}

	v := values[0]
	resp := tagResponse{Name: tagName}
	if v.Error != nil {
		resp.Error = v.Error.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Value = v.GoValueDecoded(client)
	writeJSON(w, http.StatusOK, resp)
}

// handleWriteTag writes a JSON-encoded value to a single tag.
func (s *Server) handleWriteTag(w http.ResponseWriter, r *http.Request) {
	client := s.plcs.Get(chi.URLParam(r, "plc"))
	if client == nil {
		http.Error(w, "unknown PLC", http.StatusNotFound)
		return
	}
	tagName := chi.URLParam(r, "tag")

	var value interface{}
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := client.Write(tagName, value); err != nil {
		logging.DebugError("web", "WriteTag", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, tagResponse{Name: tagName})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
