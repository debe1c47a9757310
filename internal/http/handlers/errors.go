package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Munionn/Airport-sub002/internal/http/respond"
	"github.com/Munionn/Airport-sub002/internal/middleware"
	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/service"
)

// writeError maps service error kinds onto HTTP statuses. Anything else is
// logged and reported as a 500 carrying fallback.
func writeError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error, fallback string) {
	var status int
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.RequestID(r.Context()),
			"path":       r.URL.Path,
		}).Error(fallback)
		respond.Error(w, http.StatusInternalServerError, fallback)
		return
	}
	respond.Error(w, status, err.Error())
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON payload")
	}
	return nil
}

// pathID reads a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// queryID reads an optional positive integer query parameter.
func queryID(q url.Values, name string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer", name)
	}
	return &id, nil
}

// queryInt reads an optional integer query parameter, returning 0 when absent.
func queryInt(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

func pageRequest(q url.Values) (models.PageRequest, error) {
	page, err := queryInt(q, "page")
	if err != nil {
		return models.PageRequest{}, err
	}
	limit, err := queryInt(q, "limit")
	if err != nil {
		return models.PageRequest{}, err
	}
	return models.PageRequest{Page: page, Limit: limit}.Normalize(), nil
}
