package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Munionn/Airport-sub002/internal/http/respond"
	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
)

// RouteHandler serves /routes.
type RouteHandler struct {
	svc RouteService
	log logrus.FieldLogger
}

// NewRouteHandler constructs the handler.
func NewRouteHandler(svc RouteService, log logrus.FieldLogger) *RouteHandler {
	return &RouteHandler{svc: svc, log: log}
}

// Register attaches route endpoints to the router.
func (h *RouteHandler) Register(r chi.Router) {
	r.Route("/routes", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/statistics", h.statistics)
		r.Get("/popular", h.popular)
		r.Get("/departure/{airportId}", h.byDeparture)
		r.Get("/arrival/{airportId}", h.byArrival)
		r.Get("/{id}", h.get)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *RouteHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRouteRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err, "failed to create route")
		return
	}
	respond.JSON(w, http.StatusCreated, "route created", created)
}

func (h *RouteHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status, err := routeStatus(q)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	filter := models.RouteFilter{
		Status:           status,
		DepartureCountry: strings.TrimSpace(q.Get("departure_country")),
		ArrivalCountry:   strings.TrimSpace(q.Get("arrival_country")),
		Search:           strings.TrimSpace(q.Get("search")),
	}
	if filter.DepartureAirportID, err = queryID(q, "departure_airport_id"); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.ArrivalAirportID, err = queryID(q, "arrival_airport_id"); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := pageRequest(q)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.List(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, h.log, err, "failed to list routes")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", result)
}

func (h *RouteHandler) statistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status, err := routeStatus(q)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	stats, err := h.svc.Statistics(r.Context(), dto.RouteStatisticsFilter{
		DepartureCountry: strings.TrimSpace(q.Get("departure_country")),
		ArrivalCountry:   strings.TrimSpace(q.Get("arrival_country")),
		Status:           status,
	})
	if err != nil {
		writeError(w, r, h.log, err, "failed to compute route statistics")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", stats)
}

func (h *RouteHandler) popular(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	routes, err := h.svc.Popular(r.Context(), limit,
		strings.TrimSpace(q.Get("departure_country")),
		strings.TrimSpace(q.Get("arrival_country")))
	if err != nil {
		writeError(w, r, h.log, err, "failed to rank routes")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", routes)
}

func (h *RouteHandler) byDeparture(w http.ResponseWriter, r *http.Request) {
	airportID, err := pathID(r, "airportId")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	routes, err := h.svc.ByDeparture(r.Context(), airportID)
	if err != nil {
		writeError(w, r, h.log, err, "failed to load routes")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", routes)
}

func (h *RouteHandler) byArrival(w http.ResponseWriter, r *http.Request) {
	airportID, err := pathID(r, "airportId")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	routes, err := h.svc.ByArrival(r.Context(), airportID)
	if err != nil {
		writeError(w, r, h.log, err, "failed to load routes")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", routes)
}

func (h *RouteHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	route, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err, "failed to load route")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", route)
}

func (h *RouteHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req dto.UpdateRouteRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.log, err, "failed to update route")
		return
	}
	respond.JSON(w, http.StatusOK, "route updated", updated)
}

func (h *RouteHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err, "failed to delete route")
		return
	}
	respond.NoContent(w)
}

func routeStatus(q url.Values) (*models.RouteStatus, error) {
	raw := strings.TrimSpace(q.Get("status"))
	if raw == "" {
		return nil, nil
	}
	status := models.RouteStatus(raw)
	if !status.Valid() {
		return nil, errUnknown("status", raw)
	}
	return &status, nil
}

func errUnknown(param, value string) error {
	return fmt.Errorf("unknown %s %q", param, value)
}
