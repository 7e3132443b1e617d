package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/logging"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/store"
)

// InsightsRequest is the JSON body of /api/insights.
type InsightsRequest struct {
	ExtractedData map[string]string `json:"extractedData"`
	// BudgetGoal is free-form; numbers are accepted as well as text.
	BudgetGoal  interface{} `json:"budgetGoal"`
	StatementID string      `json:"statementId"`
}

// HandleInsights summarizes previously extracted fields.
func (h *Handler) HandleInsights(c *fiber.Ctx) error {
	if h.Summarizer == nil {
		return writeError(c, fiber.StatusServiceUnavailable, "Insights are not configured")
	}

	var req InsightsRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if len(req.ExtractedData) == 0 {
		return writeError(c, fiber.StatusBadRequest, "No extracted data provided")
	}

	fields := make(models.Fields, len(req.ExtractedData))
	for k, v := range req.ExtractedData {
		fields[models.Field(k)] = v
	}

	insights := h.Summarizer.Summarize(c.UserContext(), fields, budgetNote(req.BudgetGoal))

	if h.Store != nil && req.StatementID != "" {
		if err := h.Store.AttachSummary(c.UserContext(), req.StatementID, insights); err != nil {
			h.logger().WithError(err).Warn("Failed to attach insights",
				logging.F(logging.FieldStatement, req.StatementID))
		}
	}

	return c.JSON(fiber.Map{"insights": insights})
}

// HandleListStatements returns recent parse results, newest first.
func (h *Handler) HandleListStatements(c *fiber.Ctx) error {
	if h.Store == nil {
		return writeError(c, fiber.StatusNotFound, "Statement history is disabled")
	}
	limit := c.QueryInt("limit", store.DefaultListLimit)
	recs, err := h.Store.List(c.UserContext(), limit)
	if err != nil {
		h.logger().WithError(err).Error("Failed to list statements")
		return writeError(c, fiber.StatusInternalServerError, "Failed to list statements")
	}
	if recs == nil {
		recs = []models.StatementRecord{}
	}
	return c.JSON(fiber.Map{"statements": recs, "count": len(recs)})
}

// HandleGetStatement returns one stored parse result.
func (h *Handler) HandleGetStatement(c *fiber.Ctx) error {
	if h.Store == nil {
		return writeError(c, fiber.StatusNotFound, "Statement history is disabled")
	}
	id := c.Params("id")
	rec, err := h.Store.Get(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return writeError(c, fiber.StatusNotFound, fmt.Sprintf("Statement %q not found", id))
	}
	if err != nil {
		h.logger().WithError(err).Error("Failed to load statement",
			logging.F(logging.FieldStatement, id))
		return writeError(c, fiber.StatusInternalServerError, "Failed to load statement")
	}
	return c.JSON(rec)
}

func budgetNote(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", t), "0"), ".")
	default:
		return fmt.Sprint(t)
	}
}
