// Package config loads and persists the navy configuration file.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/core/ports"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables that override config keys,
// e.g. NAVY_LOG_LEVEL for log.level.
const EnvPrefix = "NAVY"

const (
	keyDefaultEnvironment = "default_environment"
	keyLogLevel           = "log.level"
	keyLogFormat          = "log.format"
	keyDockerHost         = "docker.host"
)

const maxPort = 65535

var _ ports.ConfigStore = (*Store)(nil)

// Store implements ports.ConfigStore backed by a YAML file.
type Store struct {
	path string
}

// NewStore creates a Store for the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the configuration file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration file. A missing file yields the defaults.
func (s *Store) Load() (domain.Config, error) {
	data, err := s.read()
	if err != nil {
		return domain.Config{}, err
	}

	v := viper.New()
	v.SetDefault(keyDefaultEnvironment, domain.DefaultEnvironmentName)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keyDockerHost, "")
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(data) > 0 {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return domain.Config{}, domain.ErrConfigParseFailed.With("path", s.path).Wrap(err)
		}
	}

	var st settings
	if err := v.Unmarshal(&st); err != nil {
		return domain.Config{}, domain.ErrConfigParseFailed.With("path", s.path).Wrap(err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Config{}, domain.ErrConfigParseFailed.With("path", s.path).Wrap(err)
	}

	envs := make(map[string]domain.EnvironmentConfig, len(doc.Environments))
	for name, dto := range doc.Environments {
		env, err := convertEnvironment(name, dto)
		if err != nil {
			return domain.Config{}, err
		}
		envs[name] = env
	}

	return domain.Config{
		DefaultEnvironment: st.DefaultEnvironment,
		LogLevel:           st.Log.Level,
		LogFormat:          st.Log.Format,
		DockerHost:         st.Docker.Host,
		Environments:       envs,
	}, nil
}

// SetDefaultEnvironment rewrites default_environment in the configuration file,
// creating the file if needed. Other content and comments are preserved.
func (s *Store) SetDefaultEnvironment(name string) error {
	data, err := s.read()
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.ErrConfigParseFailed.With("path", s.path).Wrap(err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return domain.ErrConfigParseFailed.With("path", s.path).Wrap(errors.New("top level is not a mapping"))
	}
	setScalar(root, keyDefaultEnvironment, name)

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return domain.ErrConfigWriteFailed.With("path", s.path).Wrap(err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return domain.ErrConfigWriteFailed.With("path", s.path).Wrap(err)
	}
	if err := os.WriteFile(s.path, out, domain.PrivateFilePerm); err != nil {
		return domain.ErrConfigWriteFailed.With("path", s.path).Wrap(err)
	}
	return nil
}

func (s *Store) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.ErrConfigReadFailed.With("path", s.path).Wrap(err)
	}
	return data, nil
}

// setScalar sets key to value in a mapping node, appending the key if absent.
func setScalar(mapping *yaml.Node, key, value string) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}

func convertEnvironment(name string, dto environmentDTO) (domain.EnvironmentConfig, error) {
	env := domain.EnvironmentConfig{
		ComposeFile:        dto.ComposeFile,
		Tag:                dto.Tag,
		ServiceTags:        dto.ServiceTags,
		VirtualHostPattern: dto.VirtualHostPattern,
	}

	if len(dto.Ports) > 0 {
		env.Ports = make(map[string]map[int]int, len(dto.Ports))
		for svc, mapping := range dto.Ports {
			ports := make(map[int]int, len(mapping))
			for internal, external := range mapping {
				port, err := strconv.Atoi(internal)
				if err != nil || !validPort(port) || !validPort(external) {
					return domain.EnvironmentConfig{}, domain.ErrInvalidPort.
						With("environment", name).
						With("service", svc).
						With("port", internal+":"+strconv.Itoa(external))
				}
				ports[port] = external
			}
			env.Ports[svc] = ports
		}
	}

	if len(dto.Develop) > 0 {
		env.Develop = make(map[string]domain.DevelopSource, len(dto.Develop))
		for svc, d := range dto.Develop {
			env.Develop[svc] = domain.DevelopSource{Path: d.Path, Target: d.Target, Image: d.Image}
		}
	}

	return env, nil
}

func validPort(p int) bool {
	return p > 0 && p <= maxPort
}
