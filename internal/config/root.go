package config

import (
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/rmorlok/bitsclient/internal/config/common"
)

// Root is the data loaded from a configuration file.
type Root struct {
	BitsService *BitsService   `json:"bits_service" yaml:"bits_service"`
	AppStash    *AppStash      `json:"app_stash,omitempty" yaml:"app_stash,omitempty"`
	Logging     *LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

func (r *Root) Validate() error {
	vc := &common.ValidationContext{}
	result := &multierror.Error{}

	if r.BitsService == nil {
		result = multierror.Append(result, vc.NewErrorForField("bits_service", "is required"))
	} else if err := r.BitsService.Validate(vc.PushField("bits_service")); err != nil {
		result = multierror.Append(result, err)
	}

	if r.AppStash != nil {
		if err := r.AppStash.Validate(vc.PushField("app_stash")); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// GetRootLogger always returns a logger, discarding everything when logging is not configured.
func (r *Root) GetRootLogger() *slog.Logger {
	if r == nil {
		return (*LoggingConfig)(nil).GetRootLogger()
	}
	return r.Logging.GetRootLogger()
}
