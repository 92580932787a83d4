package config

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	jsonschemav5 "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const SchemaID = "https://github.com/rmorlok/bitsclient/config.schema.json"

// Schema describes the configuration file as JSON schema.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: false,
		DoNotReference:             true,
	}

	s := r.Reflect(&Root{})
	s.ID = SchemaID
	s.Title = "bits-service client configuration"
	return s
}

func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

var compileOnce sync.Once
var compiled *jsonschemav5.Schema
var compileErr error

func compiledSchema() (*jsonschemav5.Schema, error) {
	compileOnce.Do(func() {
		data, err := SchemaJSON()
		if err != nil {
			compileErr = errors.Wrap(err, "failed to render config schema")
			return
		}

		c := jsonschemav5.NewCompiler()
		if err := c.AddResource(SchemaID, bytes.NewReader(data)); err != nil {
			compileErr = errors.Wrap(err, "failed to add config schema")
			return
		}

		compiled, compileErr = c.Compile(SchemaID)
		if compileErr != nil {
			compileErr = errors.Wrap(compileErr, "failed to compile config schema")
		}
	})

	return compiled, compileErr
}

// ValidateSchema checks a YAML config document against Schema. It catches unknown keys and
// wrongly typed values that the YAML decoder would otherwise ignore or coerce.
func ValidateSchema(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "failed to parse config")
	}

	// the validator expects encoding/json value shapes
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "config is not representable as json")
	}

	var v any
	if err := json.Unmarshal(asJSON, &v); err != nil {
		return errors.Wrap(err, "config is not representable as json")
	}

	return s.Validate(v)
}
