package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/foxxcyber/menu-board/internal/models"
)

// ListOrders returns orders newest first, optionally filtered by ?status= (admin)
func (h *Handler) ListOrders(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return badRequest("status must be pending, completed or cancelled")
	}

	orders, err := h.store.ListOrders(c.Context(), status)
	if err != nil {
		return h.storeError(err, "list orders")
	}
	return Success(c, orders)
}

// GetOrder returns a single order (admin)
func (h *Handler) GetOrder(c *fiber.Ctx) error {
	order, err := h.store.GetOrderByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.storeError(err, "get order")
	}
	return Success(c, order)
}

// CreateOrder places a pending order. The total defaults to the sum of the lines.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	total := models.LinesTotal(req.Items)
	if req.Total != nil {
		if math.Abs(*req.Total-total) >= 0.005 {
			h.log.Warn("order total differs from line sum",
				zap.Float64("client_total", *req.Total),
				zap.Float64("computed_total", total),
			)
		}
		total = *req.Total
	}

	order, err := h.store.CreateOrder(c.Context(), &req, total)
	if err != nil {
		return h.storeError(err, "create order")
	}

	h.log.Info("order placed", zap.String("order_id", order.ID), zap.Float64("total", order.Total))
	return Created(c, order)
}

// UpdateOrder changes an order's status (admin)
func (h *Handler) UpdateOrder(c *fiber.Ctx) error {
	var req models.UpdateOrderRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	order, err := h.store.UpdateOrderStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return h.storeError(err, "update order")
	}
	return Success(c, order)
}
