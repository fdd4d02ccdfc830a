package config

// settings are the scalar keys of config.yaml. They are read through viper so
// each key can be overridden by a NAVY_ prefixed environment variable.
type settings struct {
	DefaultEnvironment string         `mapstructure:"default_environment"`
	Log                logSettings    `mapstructure:"log"`
	Docker             dockerSettings `mapstructure:"docker"`
}

type logSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type dockerSettings struct {
	Host string `mapstructure:"host"`
}

// document is the case-sensitive part of config.yaml. Environment and service
// names keep their case, which viper's key folding would lose.
type document struct {
	Environments map[string]environmentDTO `yaml:"environments"`
}

// environmentDTO is one entry of the environments block.
type environmentDTO struct {
	ComposeFile        string                    `yaml:"compose_file"`
	Tag                string                    `yaml:"tag"`
	ServiceTags        map[string]string         `yaml:"service_tags"`
	Ports              map[string]map[string]int `yaml:"ports"`
	Develop            map[string]developDTO     `yaml:"develop"`
	VirtualHostPattern string                    `yaml:"virtual_host_pattern"`
}

type developDTO struct {
	Path   string `yaml:"path"`
	Target string `yaml:"target"`
	Image  string `yaml:"image"`
}
