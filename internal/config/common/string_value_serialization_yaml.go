package common

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// stringValueSources maps the key that selects a source to its concrete type.
var stringValueSources = map[string]func() StringValueType{
	"value":   func() StringValueType { return &StringValueDirect{} },
	"base64":  func() StringValueType { return &StringValueBase64{} },
	"env_var": func() StringValueType { return &StringValueEnvVar{} },
	"path":    func() StringValueType { return &StringValueFile{} },
}

func (sv *StringValue) MarshalYAML() (any, error) {
	if sv.InnerVal == nil {
		return nil, nil
	}

	if v, ok := sv.InnerVal.(*StringValueDirect); ok && v.IsDirectString {
		return v.Value, nil
	}

	return sv.InnerVal, nil
}

// UnmarshalYAML accepts a bare scalar or a mapping with exactly one source key.
func (sv *StringValue) UnmarshalYAML(value *yaml.Node) error {
	if err := ExpectKind("string value", value, yaml.ScalarNode, yaml.MappingNode); err != nil {
		return err
	}

	if value.Kind == yaml.ScalarNode {
		sv.InnerVal = &StringValueDirect{Value: value.Value, IsDirectString: true}
		return nil
	}

	var (
		found []string
		inner StringValueType
	)
	for _, key := range MappingKeys(value) {
		if ctor, ok := stringValueSources[key]; ok {
			found = append(found, key)
			inner = ctor()
		}
	}

	switch len(found) {
	case 0:
		return fmt.Errorf("string value at line %d needs one of value, base64, env_var, path", value.Line)
	case 1:
	default:
		return fmt.Errorf("string value at line %d has conflicting sources %s", value.Line, strings.Join(found, ", "))
	}

	if err := value.Decode(inner); err != nil {
		return err
	}

	sv.InnerVal = inner
	return nil
}
