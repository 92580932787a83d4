package httpf

import (
	"context"
	"net"
	"strings"

	"github.com/pkg/errors"
)

// IsTimeout reports whether err was caused by a request exceeding its deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// http.Client reports its own deadline as a string-only error on some paths
	return strings.Contains(err.Error(), "Client.Timeout exceeded")
}
