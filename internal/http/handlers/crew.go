package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Munionn/Airport-sub002/internal/http/respond"
	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
)

// CrewHandler serves /flight-crew.
type CrewHandler struct {
	svc CrewService
	log logrus.FieldLogger
}

// NewCrewHandler constructs the handler.
func NewCrewHandler(svc CrewService, log logrus.FieldLogger) *CrewHandler {
	return &CrewHandler{svc: svc, log: log}
}

// Register attaches crew routes to the router.
func (h *CrewHandler) Register(r chi.Router) {
	r.Route("/flight-crew", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/statistics", h.statistics)
		r.Post("/check-availability", h.checkAvailability)
		r.Get("/flight/{flightId}", h.byFlight)
		r.Get("/user/{userId}", h.byUser)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *CrewHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCrewRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err, "failed to assign crew")
		return
	}
	respond.JSON(w, http.StatusCreated, "crew assigned", created)
}

func (h *CrewHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := crewFilter(q)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	filter.FlightNumber = strings.TrimSpace(q.Get("flight_number"))
	filter.CrewName = strings.TrimSpace(q.Get("crew_name"))

	page, err := pageRequest(q)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.List(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, h.log, err, "failed to list crew assignments")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", result)
}

func (h *CrewHandler) statistics(w http.ResponseWriter, r *http.Request) {
	filter, err := crewFilter(r.URL.Query())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	stats, err := h.svc.Statistics(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.log, err, "failed to compute crew statistics")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", stats)
}

func (h *CrewHandler) checkAvailability(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckAvailabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	availability, err := h.svc.CheckAvailability(r.Context(), req.UserID)
	if err != nil {
		writeError(w, r, h.log, err, "failed to check availability")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", availability)
}

func (h *CrewHandler) byFlight(w http.ResponseWriter, r *http.Request) {
	flightID, err := pathID(r, "flightId")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := h.svc.ByFlight(r.Context(), flightID)
	if err != nil {
		writeError(w, r, h.log, err, "failed to load flight crew")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

func (h *CrewHandler) byUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := h.svc.ByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err, "failed to load crew assignments")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

func (h *CrewHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	assignment, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err, "failed to load crew assignment")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", assignment)
}

func (h *CrewHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req dto.UpdateCrewRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.log, err, "failed to update crew assignment")
		return
	}
	respond.JSON(w, http.StatusOK, "crew assignment updated", updated)
}

func (h *CrewHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err, "failed to remove crew assignment")
		return
	}
	respond.NoContent(w)
}

// crewFilter reads the flight_id, user_id and position query parameters.
func crewFilter(q url.Values) (models.CrewFilter, error) {
	var filter models.CrewFilter
	var err error
	if filter.FlightID, err = queryID(q, "flight_id"); err != nil {
		return filter, err
	}
	if filter.UserID, err = queryID(q, "user_id"); err != nil {
		return filter, err
	}
	if raw := strings.TrimSpace(q.Get("position")); raw != "" {
		position := models.Position(raw)
		if !position.Valid() {
			return filter, errUnknown("position", raw)
		}
		filter.Position = &position
	}
	return filter, nil
}
