package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yervar/yervar-backend/internal/api/middleware"
	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/service"
)

type RideHandler struct {
	rideService    *service.RideService
	ratingService  *service.RatingService
	suggestService *service.SuggestService
	authService    *service.AuthService
}

func NewRideHandler(rideService *service.RideService, ratingService *service.RatingService, suggestService *service.SuggestService, authService *service.AuthService) *RideHandler {
	return &RideHandler{
		rideService:    rideService,
		ratingService:  ratingService,
		suggestService: suggestService,
		authService:    authService,
	}
}

type CreateRideRequest struct {
	From           string    `json:"from"`
	To             string    `json:"to"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"availableSeats"`
	DepartureTime  time.Time `json:"departureTime"`
}

type RateRideRequest struct {
	Rating int `json:"rating"`
}

type SuggestResponse struct {
	Suggestion string `json:"suggestion"`
}

// RideResponse is the full ride shape returned to clients.
type RideResponse struct {
	ID               uuid.UUID              `json:"id"`
	From             string                 `json:"from"`
	To               string                 `json:"to"`
	DepartureTime    time.Time              `json:"departureTime"`
	AvailableSeats   int                    `json:"availableSeats"`
	Price            float64                `json:"price"`
	Driver           domain.RideDriver      `json:"driver"`
	Passengers       []domain.RidePassenger `json:"passengers"`
	Eta              *int                   `json:"eta,omitempty"`
	PassengerRatings map[string]int         `json:"passengerRatings"`
}

func toRideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		ID:               r.ID,
		From:             r.From,
		To:               r.To,
		DepartureTime:    r.DepartureTime,
		AvailableSeats:   r.AvailableSeats,
		Price:            r.Price,
		Driver:           r.Driver(),
		Passengers:       r.PassengerList(),
		Eta:              r.Eta,
		PassengerRatings: r.RatingsMap(),
	}
}

func toRideResponses(rides []*domain.Ride) []RideResponse {
	out := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		out = append(out, toRideResponse(r))
	}
	return out
}

// List serves open rides to anonymous and authenticated callers alike.
func (h *RideHandler) List(w http.ResponseWriter, r *http.Request) {
	rides, err := h.rideService.ListOpen(r.Context())
	if err != nil {
		log.Printf("ERROR [handlers.Ride.List] %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toRideResponses(rides))
}

func (h *RideHandler) ListPast(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	rides, err := h.rideService.ListPastFor(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [handlers.Ride.ListPast] %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toRideResponses(rides))
}

func (h *RideHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ride, err := h.rideService.Create(r.Context(), userID, service.CreateRideInput{
		From:           req.From,
		To:             req.To,
		Price:          req.Price,
		AvailableSeats: req.AvailableSeats,
		DepartureTime:  req.DepartureTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "Only drivers can create rides")
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusBadRequest, "All ride fields are required")
		default:
			log.Printf("ERROR [handlers.Ride.Create] %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toRideResponse(ride))
}

func (h *RideHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	rideID, err := uuid.Parse(chi.URLParam(r, "rideID"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Ride not found")
		return
	}

	var req RateRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.ratingService.RateRide(r.Context(), userID, rideID, req.Rating); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRating):
			writeMessage(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Ride not found")
		case errors.Is(err, domain.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "You were not a passenger on this ride")
		case errors.Is(err, domain.ErrAlreadyRated):
			writeMessage(w, http.StatusBadRequest, "You have already rated this ride")
		default:
			log.Printf("ERROR [handlers.Ride.Rate] %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Rating submitted successfully")
}

// Suggest is advisory: upstream failure degrades to an empty suggestion,
// never an error for the caller.
func (h *RideHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusForbidden, "Only drivers can request route suggestions")
			return
		}
		log.Printf("ERROR [handlers.Ride.Suggest] %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user.Role != domain.RoleDriver {
		writeMessage(w, http.StatusForbidden, "Only drivers can request route suggestions")
		return
	}

	origin := r.URL.Query().Get("from")
	if origin == "" {
		writeMessage(w, http.StatusBadRequest, "Query parameter 'from' is required")
		return
	}

	suggestion, err := h.suggestService.SuggestDestination(r.Context(), origin)
	if err != nil {
		suggestion = ""
	}

	writeJSON(w, http.StatusOK, SuggestResponse{Suggestion: suggestion})
}
