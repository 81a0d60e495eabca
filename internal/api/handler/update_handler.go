package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grandvia/hotel-system/internal/core/ports"
)

// UpdateHandler exposes the website update trigger and its status probe.
type UpdateHandler struct {
	updates ports.UpdateService
}

func NewUpdateHandler(updates ports.UpdateService) *UpdateHandler {
	return &UpdateHandler{updates: updates}
}

// Trigger runs a fast-forward pull in the approved website checkout.
//
// @Summary      Trigger website update
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.UpdateRun
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /admin/website/update [post]
func (h *UpdateHandler) Trigger(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	run, err := h.updates.TriggerUpdate(c.Request().Context(), actor.ID, clientContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}

// Status reports the website checkout's branch, commit, last sync time, and
// working-tree cleanliness.
//
// @Summary      Website checkout status
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.RepoStatus
// @Router       /admin/website/status [get]
func (h *UpdateHandler) Status(c echo.Context) error {
	status, err := h.updates.Status(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}
