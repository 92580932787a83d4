package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationContext(t *testing.T) {
	vc := &ValidationContext{}
	assert.Equal(t, "bits_service", vc.PushField("bits_service").Path)
	assert.Equal(t, "bits_service.username", vc.PushField("bits_service").PushField("username").Path)

	err := vc.PushField("bits_service").NewErrorfForField("password", "is %s", "required")
	assert.Equal(t, "bits_service.password: is required", err.Error())

	assert.Equal(t, "top level", vc.NewError("top level").Error())
}

func TestValidationChecks(t *testing.T) {
	vc := (&ValidationContext{}).PushField("bits_service")

	assert.NoError(t, vc.Required("signing_key_id", "key"))
	assert.EqualError(t, vc.Required("signing_key_id", ""), "bits_service.signing_key_id: is required")

	assert.NoError(t, vc.RequiredSecret("password", &StringValue{InnerVal: &StringValueEnvVar{EnvVar: "UNSET_IS_FINE"}}))
	assert.Error(t, vc.RequiredSecret("password", nil))
	assert.Error(t, vc.RequiredSecret("password", &StringValue{}))

	assert.NoError(t, vc.Endpoint("private_endpoint", "https://bits.service.internal:8443"))
	assert.EqualError(t, vc.Endpoint("private_endpoint", ""), "bits_service.private_endpoint: is required")
	assert.EqualError(t, vc.Endpoint("private_endpoint", "ftp://bits"), "bits_service.private_endpoint: must be an http(s) url, got 'ftp://bits'")
	assert.Error(t, vc.Endpoint("private_endpoint", "bits.service.internal"))

	assert.NoError(t, vc.PositiveDuration("request_timeout", nil))
	assert.Error(t, vc.PositiveDuration("request_timeout", &HumanDuration{}))

	assert.NoError(t, Collect(nil, nil))
	err := Collect(nil, vc.Required("a", ""), vc.Required("b", ""))
	assert.Contains(t, err.Error(), "bits_service.a: is required")
	assert.Contains(t, err.Error(), "bits_service.b: is required")
}
