package httpapi

import (
	"net/http"

	"relay-server/internal/infra/httpserver"
	"relay-server/internal/monitor/httpapi/internal"
	"relay-server/internal/monitor/usecases"
)

func NewDeviceStateController(store usecases.DeviceStateStore) *DeviceStateController {
	return &DeviceStateController{
		store: store,
	}
}

var _ httpserver.Controller = &DeviceStateController{}

type DeviceStateController struct {
	store usecases.DeviceStateStore
}

func (c *DeviceStateController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/device/state", c.getState())
}

func (c *DeviceStateController) getState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := c.store.Snapshot(r.Context())
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromDeviceState(state))
	}
}
