package common

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

var nodeKindNames = map[yaml.Kind]string{
	yaml.DocumentNode: "document",
	yaml.SequenceNode: "sequence",
	yaml.MappingNode:  "mapping",
	yaml.ScalarNode:   "scalar",
	yaml.AliasNode:    "alias",
}

func KindName(k yaml.Kind) string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%d)", k)
}

// ExpectKind fails unless node is one of kinds. what names the value in the error.
func ExpectKind(what string, node *yaml.Node, kinds ...yaml.Kind) error {
	for _, k := range kinds {
		if node.Kind == k {
			return nil
		}
	}

	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, KindName(k))
	}

	return fmt.Errorf("%s expected a %v node at line %d, got %s", what, names, node.Line, KindName(node.Kind))
}

// MappingKeys lists the keys of a mapping node in document order.
func MappingKeys(node *yaml.Node) []string {
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// MappingValue returns the value node for key, or nil.
func MappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
