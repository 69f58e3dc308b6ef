package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BrianKimathi/event-booking-api/internal/application"
	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/interface/middleware"
	"github.com/BrianKimathi/event-booking-api/pkg/response"
	"github.com/BrianKimathi/event-booking-api/pkg/validation"
)

type PurchaseHandler struct {
	Svc    *application.PurchaseService
	Logger *logrus.Logger
}

func NewPurchaseHandler(svc *application.PurchaseService, logger *logrus.Logger) *PurchaseHandler {
	return &PurchaseHandler{Svc: svc, Logger: logger}
}

type purchaseRequest struct {
	EventID      int64 `json:"eventId" binding:"required,min=1"`
	TicketTypeID int64 `json:"ticketTypeId" binding:"required,min=1"`
	Quantity     int   `json:"quantity" binding:"required,min=1,max=10"`
}

type recordPaymentRequest struct {
	Status                entity.PaymentStatus `json:"status" binding:"required,oneof=COMPLETED FAILED REFUNDED"`
	StripePaymentIntentID string               `json:"stripePaymentIntentId"`
	StripeChargeID        string               `json:"stripeChargeId"`
	FailureReason         string               `json:"failureReason"`
}

func purchaseView(p *entity.TicketPurchase) gin.H {
	return gin.H{
		"id":               p.ID,
		"eventId":          p.EventID,
		"ticketTypeId":     p.TicketTypeID,
		"quantity":         p.Quantity,
		"totalAmountCents": p.TotalAmountCents,
		"purchaseCode":     p.PurchaseCode,
		"qrCodeData":       p.QRCodeData,
		"status":           p.Status,
		"purchaseDate":     p.PurchaseDate,
	}
}

func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	uid := c.GetInt64(middleware.CtxUserIDKey)
	p, err := h.Svc.Purchase(c.Request.Context(), uid, application.PurchaseInput{
		EventID:      req.EventID,
		TicketTypeID: req.TicketTypeID,
		Quantity:     req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEventNotFound):
			response.Error(c, http.StatusNotFound, "event not found")
		case errors.Is(err, application.ErrEventNotOnSale):
			response.Error(c, http.StatusConflict, "event is not on sale")
		case errors.Is(err, application.ErrTierNotOffered):
			response.Error(c, http.StatusNotFound, "ticket type not offered for this event")
		case errors.Is(err, application.ErrInsufficientTickets):
			response.Error(c, http.StatusConflict, "not enough tickets available")
		default:
			h.Logger.WithError(err).Error("purchase failed")
			response.Error(c, http.StatusInternalServerError, "purchase failed")
		}
		return
	}
	response.Success(c, http.StatusCreated, purchaseView(p), "purchase created")
}

func (h *PurchaseHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	p, err := h.Svc.GetByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, application.ErrPurchaseNotFound) {
			response.Error(c, http.StatusNotFound, "purchase not found")
			return
		}
		h.Logger.WithError(err).Error("failed to load purchase")
		response.Error(c, http.StatusInternalServerError, "failed to load purchase")
		return
	}
	response.Success(c, http.StatusOK, purchaseView(p), "purchase")
}

func (h *PurchaseHandler) ListMine(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	purchases, err := h.Svc.ListMine(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("failed to list purchases")
		response.Error(c, http.StatusInternalServerError, "failed to list purchases")
		return
	}
	out := make([]gin.H, 0, len(purchases))
	for i := range purchases {
		out = append(out, purchaseView(&purchases[i]))
	}
	response.Success(c, http.StatusOK, out, "my purchases")
}

// RecordPayment stores the gateway outcome reported for a purchase.
func (h *PurchaseHandler) RecordPayment(c *gin.Context) {
	code := c.Param("code")
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	pay, err := h.Svc.RecordPayment(c.Request.Context(), code, application.RecordPaymentInput{
		Status:                req.Status,
		StripePaymentIntentID: req.StripePaymentIntentID,
		StripeChargeID:        req.StripeChargeID,
		FailureReason:         req.FailureReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrPurchaseNotFound):
			response.Error(c, http.StatusNotFound, "purchase not found")
		case errors.Is(err, application.ErrPaymentNotFound):
			response.Error(c, http.StatusNotFound, "payment transaction not found")
		default:
			h.Logger.WithError(err).Error("failed to record payment")
			response.Error(c, http.StatusInternalServerError, "failed to record payment")
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{
		"status":                pay.Status,
		"amountCents":           pay.AmountCents,
		"currency":              pay.Currency,
		"stripePaymentIntentId": pay.StripePaymentIntentID,
	}, "payment recorded")
}
