package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BrianKimathi/event-booking-api/internal/application"
	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
	"github.com/BrianKimathi/event-booking-api/internal/interface/middleware"
	"github.com/BrianKimathi/event-booking-api/pkg/response"
	"github.com/BrianKimathi/event-booking-api/pkg/validation"
)

// maxImageSize caps poster uploads at 5 MiB.
const maxImageSize = 5 << 20

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type commissionRequest struct {
	Type             entity.CommissionType `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
	RateBasisPoints  int                   `json:"rateBasisPoints" binding:"omitempty,min=0,max=10000"`
	FixedAmountCents int64                 `json:"fixedAmountCents" binding:"omitempty,min=0"`
}

type createEventRequest struct {
	Title         string             `json:"title" binding:"required,max=200"`
	Description   string             `json:"description" binding:"required"`
	Venue         string             `json:"venue" binding:"required,max=200"`
	StartDate     time.Time          `json:"startDate" binding:"required"`
	EndDate       time.Time          `json:"endDate" binding:"required,gtfield=StartDate"`
	Category      string             `json:"category" binding:"required,max=100"`
	TotalCapacity int                `json:"totalCapacity" binding:"required,min=1"`
	Commission    *commissionRequest `json:"commission"`
}

type attachTicketTypeRequest struct {
	TicketTypeID      int64 `json:"ticketTypeId" binding:"required,min=1"`
	PriceCents        int64 `json:"priceCents" binding:"required,min=1"`
	AvailableQuantity int   `json:"availableQuantity" binding:"required,min=1"`
}

func eventView(e *entity.Event) gin.H {
	return gin.H{
		"id":               e.ID,
		"title":            e.Title,
		"description":      e.Description,
		"venue":            e.Venue,
		"startDate":        e.StartDate,
		"endDate":          e.EndDate,
		"category":         e.Category,
		"status":           e.Status,
		"imageUrl":         e.ImageURL,
		"totalCapacity":    e.TotalCapacity,
		"availableTickets": e.AvailableTickets,
		"creatorId":        e.CreatorID,
	}
}

func eventIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid event id")
		return 0, false
	}
	return id, true
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	in := application.CreateEventInput{
		Title:         req.Title,
		Description:   req.Description,
		Venue:         req.Venue,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Category:      req.Category,
		TotalCapacity: req.TotalCapacity,
	}
	if req.Commission != nil {
		in.Commission = &application.CommissionInput{
			Type:             req.Commission.Type,
			RateBasisPoints:  req.Commission.RateBasisPoints,
			FixedAmountCents: req.Commission.FixedAmountCents,
		}
	}

	uid := c.GetInt64(middleware.CtxUserIDKey)
	e, err := h.Svc.Create(c.Request.Context(), uid, in)
	if err != nil {
		h.Logger.WithError(err).Error("failed to create event")
		response.Error(c, http.StatusInternalServerError, "failed to create event")
		return
	}
	response.Success(c, http.StatusCreated, eventView(e), "event created")
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}
	e, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrEventNotFound) {
			response.Error(c, http.StatusNotFound, "event not found")
			return
		}
		h.Logger.WithError(err).Error("failed to load event")
		response.Error(c, http.StatusInternalServerError, "failed to load event")
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "event")
}

func (h *EventHandler) ListUpcoming(c *gin.Context) {
	events, err := h.Svc.ListUpcoming(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("failed to list events")
		response.Error(c, http.StatusInternalServerError, "failed to list events")
		return
	}
	out := make([]gin.H, 0, len(events))
	for i := range events {
		out = append(out, eventView(&events[i]))
	}
	response.Success(c, http.StatusOK, out, "upcoming events")
}

func (h *EventHandler) ListMine(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	events, err := h.Svc.ListByCreator(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("failed to list creator events")
		response.Error(c, http.StatusInternalServerError, "failed to list events")
		return
	}
	out := make([]gin.H, 0, len(events))
	for i := range events {
		out = append(out, eventView(&events[i]))
	}
	response.Success(c, http.StatusOK, out, "my events")
}

func (h *EventHandler) Publish(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}
	uid := c.GetInt64(middleware.CtxUserIDKey)
	e, err := h.Svc.Publish(c.Request.Context(), id, uid)
	if err != nil {
		h.writeOwnershipError(c, err, "failed to publish event")
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "event published")
}

func (h *EventHandler) Cancel(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}
	uid := c.GetInt64(middleware.CtxUserIDKey)
	if err := h.Svc.Cancel(c.Request.Context(), id, uid); err != nil {
		h.writeOwnershipError(c, err, "failed to cancel event")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"status": entity.EventCancelled}, "event cancelled")
}

// UploadImage accepts a multipart "image" file and stores it as the
// event poster.
func (h *EventHandler) UploadImage(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing image file")
		return
	}
	if fh.Size > maxImageSize {
		response.Error(c, http.StatusBadRequest, "image exceeds maximum size")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable image file")
		return
	}
	defer f.Close()

	uid := c.GetInt64(middleware.CtxUserIDKey)
	url, err := h.Svc.UploadImage(c.Request.Context(), id, uid, fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		h.writeOwnershipError(c, err, "failed to upload image")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"imageUrl": url}, "image uploaded")
}

func (h *EventHandler) AttachTicketType(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}
	var req attachTicketTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	uid := c.GetInt64(middleware.CtxUserIDKey)
	ett, err := h.Svc.AttachTicketType(c.Request.Context(), id, uid, application.AttachTicketTypeInput{
		TicketTypeID:      req.TicketTypeID,
		PriceCents:        req.PriceCents,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrTicketTypeTaken):
			response.Error(c, http.StatusConflict, "ticket type already attached to event")
		case errors.Is(err, application.ErrTicketTypeNotFound):
			response.Error(c, http.StatusNotFound, "ticket type not found")
		default:
			h.writeOwnershipError(c, err, "failed to attach ticket type")
		}
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{
		"id":                ett.ID,
		"eventId":           ett.EventID,
		"ticketTypeId":      ett.TicketTypeID,
		"priceCents":        ett.PriceCents,
		"availableQuantity": ett.AvailableQuantity,
	}, "ticket type attached")
}

func (h *EventHandler) ListTicketTypes(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}
	tiers, err := h.Svc.ListTicketTypes(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrEventNotFound) {
			response.Error(c, http.StatusNotFound, "event not found")
			return
		}
		h.Logger.WithError(err).Error("failed to list ticket types")
		response.Error(c, http.StatusInternalServerError, "failed to list ticket types")
		return
	}
	out := make([]gin.H, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, gin.H{
			"id":                t.ID,
			"eventId":           t.EventID,
			"ticketTypeId":      t.TicketTypeID,
			"priceCents":        t.PriceCents,
			"availableQuantity": t.AvailableQuantity,
		})
	}
	response.Success(c, http.StatusOK, out, "ticket types")
}

// Search answers full-text queries from the ?q= parameter.
func (h *EventHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing query parameter q")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	docs, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("event search failed")
		response.Error(c, http.StatusInternalServerError, "search failed")
		return
	}
	response.Success(c, http.StatusOK, docs, "search results")
}

type updateEventRequest struct {
	Title         string    `json:"title" binding:"omitempty,max=200"`
	Description   string    `json:"description"`
	Venue         string    `json:"venue" binding:"omitempty,max=200"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Category      string    `json:"category" binding:"omitempty,max=100"`
	TotalCapacity int       `json:"totalCapacity" binding:"omitempty,min=1"`
}

type createTicketTypeRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	PriceCents  int64  `json:"priceCents" binding:"required,min=1"`
	Capacity    int    `json:"capacity" binding:"omitempty,min=0"`
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	uid := c.GetInt64(middleware.CtxUserIDKey)
	e, err := h.Svc.UpdateDraft(c.Request.Context(), id, uid, application.UpdateEventInput{
		Title:         req.Title,
		Description:   req.Description,
		Venue:         req.Venue,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Category:      req.Category,
		TotalCapacity: req.TotalCapacity,
	})
	if err != nil {
		h.writeOwnershipError(c, err, "failed to update event")
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "event updated")
}

func (h *EventHandler) GetCommission(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}
	uid := c.GetInt64(middleware.CtxUserIDKey)
	cm, err := h.Svc.GetCommission(c.Request.Context(), id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "no commission configured for this event")
			return
		}
		h.writeOwnershipError(c, err, "failed to load commission")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{
		"eventId":          cm.EventID,
		"type":             cm.Type,
		"rateBasisPoints":  cm.RateBasisPoints,
		"fixedAmountCents": cm.FixedAmountCents,
	}, "commission")
}

func (h *EventHandler) CreateTicketType(c *gin.Context) {
	var req createTicketTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	t, err := h.Svc.CreateTicketType(c.Request.Context(), application.TicketTypeInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Capacity:    req.Capacity,
	})
	if err != nil {
		h.Logger.WithError(err).Error("failed to create ticket type")
		response.Error(c, http.StatusInternalServerError, "failed to create ticket type")
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{
		"id":         t.ID,
		"name":       t.Name,
		"priceCents": t.PriceCents,
		"capacity":   t.Capacity,
	}, "ticket type created")
}

func (h *EventHandler) TicketTypeCatalog(c *gin.Context) {
	tiers, err := h.Svc.TicketTypeCatalog(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("failed to list ticket type catalog")
		response.Error(c, http.StatusInternalServerError, "failed to list ticket types")
		return
	}
	out := make([]gin.H, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, gin.H{
			"id":          t.ID,
			"name":        t.Name,
			"description": t.Description,
			"priceCents":  t.PriceCents,
			"capacity":    t.Capacity,
		})
	}
	response.Success(c, http.StatusOK, out, "ticket type catalog")
}

func (h *EventHandler) writeOwnershipError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, application.ErrEventNotFound):
		response.Error(c, http.StatusNotFound, "event not found")
	case errors.Is(err, application.ErrNotEventOwner):
		response.Error(c, http.StatusForbidden, "not the owner of this event")
	case errors.Is(err, application.ErrEventNotDraft):
		response.Error(c, http.StatusConflict, "event is not in draft state")
	default:
		h.Logger.WithError(err).Error(logMsg)
		response.Error(c, http.StatusInternalServerError, logMsg)
	}
}
