package config

import (
	"fmt"

	"github.com/rmorlok/bitsclient/internal/config/common"
	"gopkg.in/yaml.v3"
)

var loggingTypes = map[LoggingConfigType]func() LoggingImpl{
	LoggingConfigTypeText: func() LoggingImpl { return &LoggingConfigSlog{} },
	LoggingConfigTypeJson: func() LoggingImpl { return &LoggingConfigSlog{} },
	LoggingConfigTypeTint: func() LoggingImpl { return &LoggingConfigTint{} },
	LoggingConfigTypeNone: func() LoggingImpl { return &LoggingConfigNone{} },
}

func (l *LoggingConfig) MarshalYAML() (any, error) {
	if l.InnerVal == nil {
		return nil, nil
	}
	return l.InnerVal, nil
}

// UnmarshalYAML picks the concrete type from the type key and decodes the whole mapping into it.
func (l *LoggingConfig) UnmarshalYAML(value *yaml.Node) error {
	if err := common.ExpectKind("logging", value, yaml.MappingNode); err != nil {
		return err
	}

	typeNode := common.MappingValue(value, "type")
	if typeNode == nil {
		return fmt.Errorf("logging at line %d is missing the type key", value.Line)
	}

	ctor, ok := loggingTypes[LoggingConfigType(typeNode.Value)]
	if !ok {
		return fmt.Errorf("unknown logging type '%s' at line %d", typeNode.Value, typeNode.Line)
	}

	inner := ctor()
	if err := value.Decode(inner); err != nil {
		return err
	}

	l.InnerVal = inner
	return nil
}
