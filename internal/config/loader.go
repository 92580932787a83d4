package config

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no config path is given explicitly.
const EnvConfigPath = "BITS_CLIENT_CONFIG"

const DefaultConfigPath = "~/.bitsclient/config.yaml"

// ResolvePath picks the config file to load: the explicit path, else $BITS_CLIENT_CONFIG, else the default.
// A leading ~ is expanded to the home directory.
func ResolvePath(explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultConfigPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to expand config path '%s'", path)
	}

	return expanded, nil
}

func LoadConfig(path string) (*Root, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config '%s'", path)
	}

	root, err := UnmarshallYamlRoot(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config '%s'", path)
	}

	if err := root.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config '%s'", path)
	}

	return root, nil
}

func UnmarshallYamlRoot(data []byte) (*Root, error) {
	var root Root
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}
