package internal

import "errors"

var ErrMissingThreshold = errors.New("threshold is required")

type ThresholdUpdateRequest struct {
	Threshold *int `json:"threshold"`
}

func (r ThresholdUpdateRequest) Validate() error {
	if r.Threshold == nil {
		return ErrMissingThreshold
	}
	return nil
}

type ThresholdResponse struct {
	Threshold int  `json:"threshold"`
	Previous  *int `json:"previous,omitempty"`
}
