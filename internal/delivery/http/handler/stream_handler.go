package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"felanocare-backend/internal/delivery/http/middleware"
	"felanocare-backend/internal/service"
	"felanocare-backend/internal/usecase"
	"felanocare-backend/pkg/response"

	"github.com/sirupsen/logrus"
)

// Heartbeat interval for SSE connections. Keeps proxies from reaping idle
// streams.
const streamHeartbeat = 30 * time.Second

// StreamHandler serves live views over Server-Sent Events. Each connection
// subscribes to one collection for the logged-in user; on every change event
// the full current snapshot is re-queried and pushed, so clients never have
// to merge deltas.
type StreamHandler struct {
	log                 *logrus.Logger
	notifier            service.Notifier
	cartUsecase         usecase.CartUsecase
	appointmentUsecase  usecase.AppointmentUsecase
	prescriptionUsecase usecase.PrescriptionUsecase
}

func NewStreamHandler(
	log *logrus.Logger,
	notifier service.Notifier,
	cartUsecase usecase.CartUsecase,
	appointmentUsecase usecase.AppointmentUsecase,
	prescriptionUsecase usecase.PrescriptionUsecase,
) *StreamHandler {
	return &StreamHandler{
		log:                 log,
		notifier:            notifier,
		cartUsecase:         cartUsecase,
		appointmentUsecase:  appointmentUsecase,
		prescriptionUsecase: prescriptionUsecase,
	}
}

// StreamCart streams cart snapshots
// @Summary Stream cart changes
// @Description Server-Sent Events stream of full cart snapshots
// @Tags Streams
// @Security BearerAuth
// @Produce text/event-stream
// @Router /cart/stream [get]
func (h *StreamHandler) StreamCart(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, usecase.CollectionCarts, func() (interface{}, error) {
		return h.cartUsecase.GetCart(r.Context())
	})
}

// StreamAppointments streams appointment snapshots
// @Summary Stream appointment changes
// @Description Server-Sent Events stream of full appointment list snapshots
// @Tags Streams
// @Security BearerAuth
// @Produce text/event-stream
// @Router /appointments/stream [get]
func (h *StreamHandler) StreamAppointments(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, usecase.CollectionAppointments, func() (interface{}, error) {
		return h.appointmentUsecase.ListMine(r.Context())
	})
}

// StreamPrescriptions streams prescription snapshots
// @Summary Stream prescription changes
// @Description Server-Sent Events stream of full prescription list snapshots
// @Tags Streams
// @Security BearerAuth
// @Produce text/event-stream
// @Router /prescriptions/stream [get]
func (h *StreamHandler) StreamPrescriptions(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, usecase.CollectionPrescriptions, func() (interface{}, error) {
		return h.prescriptionUsecase.ListMine(r.Context())
	})
}

func (h *StreamHandler) stream(w http.ResponseWriter, r *http.Request, collection string, snapshot func() (interface{}, error)) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	events, cancel, err := h.notifier.Subscribe(r.Context(), collection, userID.String())
	if err != nil {
		h.log.Warnf("Failed to subscribe %s stream for %s: %+v", collection, userID, err)
		response.InternalServerError(w, "Failed to open stream")
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Initial snapshot so the client renders immediately
	h.push(w, flusher, collection, snapshot)

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, open := <-events:
			if !open {
				return
			}
			h.push(w, flusher, collection, snapshot)
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}

func (h *StreamHandler) push(w http.ResponseWriter, flusher http.Flusher, collection string, snapshot func() (interface{}, error)) {
	data, err := snapshot()
	if err != nil {
		h.log.Warnf("Failed to build %s snapshot: %+v", collection, err)
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		h.log.Warnf("Failed to marshal %s snapshot: %+v", collection, err)
		return
	}

	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", collection, payload)
	flusher.Flush()
}
