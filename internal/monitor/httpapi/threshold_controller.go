package httpapi

import (
	"log/slog"
	"net/http"

	"relay-server/internal/infra/httpserver"
	"relay-server/internal/monitor/httpapi/internal"
)

const invalidThresholdErrMessage = "threshold must be an integer"

// ThresholdSetter is the part of the threshold controller exposed over HTTP.
type ThresholdSetter interface {
	Threshold() int
	SetThreshold(threshold int) int
}

func NewThresholdController(setter ThresholdSetter) *ThresholdController {
	return &ThresholdController{
		setter: setter,
	}
}

var _ httpserver.Controller = &ThresholdController{}

type ThresholdController struct {
	setter ThresholdSetter
}

func (c *ThresholdController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/threshold", c.getThreshold())
	router.Handle("PUT /v1/threshold", c.updateThreshold())
}

func (c *ThresholdController) getThreshold() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ThresholdResponse{Threshold: c.setter.Threshold()})
	}
}

func (c *ThresholdController) updateThreshold() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.ThresholdUpdateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			slog.Debug("invalid threshold body", slog.Any("error", err))
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidThresholdErrMessage)
			return
		}
		if err := body.Validate(); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidThresholdErrMessage)
			return
		}

		previous := c.setter.SetThreshold(*body.Threshold)
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ThresholdResponse{
			Threshold: *body.Threshold,
			Previous:  &previous,
		})
	}
}
