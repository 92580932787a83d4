package common

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// HumanDuration is a duration written as "15m" or "10s". A bare integer is a number of seconds.
type HumanDuration struct {
	time.Duration
}

const durationPattern = "^([0-9]+(\\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$"

func (HumanDuration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Pattern: durationPattern},
			{Type: "integer", Description: "seconds"},
		},
	}
}

func parseHumanDuration(s string) (time.Duration, error) {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration '%s'", s)
	}
	return d, nil
}

func (d HumanDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *HumanDuration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	switch v := raw.(type) {
	case string:
		d.Duration, err = parseHumanDuration(v)
	case float64:
		d.Duration = time.Duration(v * float64(time.Second))
	default:
		err = errors.Errorf("invalid duration %s", string(data))
	}
	return err
}

func (d HumanDuration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *HumanDuration) UnmarshalYAML(value *yaml.Node) error {
	if err := ExpectKind("duration", value, yaml.ScalarNode); err != nil {
		return err
	}

	parsed, err := parseHumanDuration(value.Value)
	if err != nil {
		return err
	}

	d.Duration = parsed
	return nil
}

// DurationOr returns the configured duration, or def when d is unset.
func (d *HumanDuration) DurationOr(def time.Duration) time.Duration {
	if d == nil {
		return def
	}
	return d.Duration
}

// HumanDurationFor parses h and panics if it is invalid. Intended for tests.
func HumanDurationFor(h string) *HumanDuration {
	parsed, err := parseHumanDuration(h)
	if err != nil {
		panic(err)
	}
	return &HumanDuration{Duration: parsed}
}
