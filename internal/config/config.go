package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Credentials for the content-addressed storage service. Presence of
// both values switches the run into upload mode; absence is a mode
// switch, never an error. Carried as an explicit value so both
// behavioral branches are testable without the process environment.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Present reports whether the upload branch should be taken.
func (c Credentials) Present() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// Partial reports a half-set credential pair, which is almost
// certainly a misconfiguration worth warning about.
func (c Credentials) Partial() bool {
	return (c.APIKey != "") != (c.APISecret != "")
}

// Config holds the build's paths and endpoints.
type Config struct {
	TokensDir       string `mapstructure:"tokens_dir" yaml:"tokens_dir"`
	TemplatePath    string `mapstructure:"template_path" yaml:"template_path"`
	ManifestPath    string `mapstructure:"manifest_path" yaml:"manifest_path"`
	OutputPath      string `mapstructure:"output_path" yaml:"output_path"`
	LogoBaseURL     string `mapstructure:"logo_base_url" yaml:"logo_base_url"`
	StorageEndpoint string `mapstructure:"storage_endpoint" yaml:"storage_endpoint"`

	// Not serialized: credentials only ever come from the environment.
	Storage Credentials `mapstructure:"-" yaml:"-"`
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TOKENLIST")
	v.AutomaticEnv()

	v.SetDefault("tokens_dir", "tokens")
	v.SetDefault("template_path", "base.json")
	v.SetDefault("manifest_path", "manifest.json")
	v.SetDefault("output_path", filepath.Join("build", "tokenlist.json"))
	v.SetDefault("logo_base_url", "https://github.com/tallycash/token-list/raw/main")
	v.SetDefault("storage_endpoint", "https://api.pinata.cloud")

	// The two credential variables keep their service-native names.
	_ = v.BindEnv("pinata_api_key", "PINATA_API_KEY")
	_ = v.BindEnv("pinata_secret_api_key", "PINATA_SECRET_API_KEY")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".tokenlist"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage = Credentials{
		APIKey:    v.GetString("pinata_api_key"),
		APISecret: v.GetString("pinata_secret_api_key"),
	}
	return &c, nil
}

// Save writes the configuration to cfgFile, or to
// ~/.tokenlist/config.yaml when empty, creating the directory if
// necessary. Credentials are never persisted.
func Save(c *Config, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tokenlist")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
