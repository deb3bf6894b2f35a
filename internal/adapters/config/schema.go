package config

// Configfile represents the structure of the wheelwright.yaml configuration file.
type Configfile struct {
	Version        string   `yaml:"version"`
	Python         []string `yaml:"python"`
	BuildIsolation *bool    `yaml:"build_isolation"`
	Pip            PipDTO   `yaml:"pip"`
	Cache          CacheDTO `yaml:"cache"`
}

// PipDTO configures the installer used for isolated environments.
type PipDTO struct {
	IndexURL  string   `yaml:"index_url"`
	ExtraArgs []string `yaml:"extra_args"`
}

// CacheDTO configures the environment cache.
type CacheDTO struct {
	Dir               string `yaml:"dir"`
	ReuseEnvironments bool   `yaml:"reuse_environments"`
}
