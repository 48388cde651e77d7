package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/validation"

	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies; a full task is well under 1 KiB.
const maxBodyBytes = 64 << 10

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.backend.ListTasks(r.Context())
	if err != nil {
		writeError(w, "list tasks", err)
		return
	}
	payloads := make([]api.TaskPayload, len(tasks))
	for i, task := range tasks {
		payloads[i] = api.PayloadFromTask(task)
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.backend.GetTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "get task", err)
		return
	}
	writeJSON(w, http.StatusOK, api.PayloadFromTask(*task))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}
	task, err := s.backend.CreateTask(r.Context(), payload.Draft())
	if err != nil {
		writeError(w, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, api.PayloadFromTask(*task))
}

// updateTask takes the id from the path; an id in the body is ignored.
func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}
	task := domain.Task{ID: mux.Vars(r)["id"]}.WithDraft(payload.Draft())
	updated, err := s.backend.UpdateTask(r.Context(), task)
	if err != nil {
		writeError(w, "update task", err)
		return
	}
	writeJSON(w, http.StatusOK, api.PayloadFromTask(*updated))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.DeleteTask(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, "delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodePayload(w http.ResponseWriter, r *http.Request) (api.TaskPayload, bool) {
	var payload api.TaskPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		writeError(w, "decode task", errors.NewValidationError("invalid JSON body: "+err.Error(), err))
		return payload, false
	}
	return payload, true
}

// writeError maps validation failures to 400, unknown ids to 404 and
// everything else to 500. Only system failures are logged.
func writeError(w http.ResponseWriter, operation string, err error) {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, api.ErrorPayload{Message: ve.GetUserFriendlyMessage()})
		return
	}

	status := http.StatusInternalServerError
	if appErr, ok := errors.AsAppError(err); ok {
		status = appErr.Type.HTTPStatus()
	}
	if errors.ShouldLogError(err) {
		logging.Errorf(operation, err)
	}
	writeJSON(w, status, api.ErrorPayload{Message: errors.GetUserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Errorf("encode response", err)
	}
}
