package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Cfg holds the loaded application configuration.
var Cfg *Config

type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Model  ModelConfig  `yaml:"model"`
	JWT    JWTConfig    `yaml:"jwt"`
	MQ     MQConfig     `yaml:"mq"`
	OSS    OSSConfig    `yaml:"oss"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type ModelConfig struct {
	// APIKey may be empty: the agent then refuses exchanges with a
	// configuration error instead of the process failing to start.
	APIKey  string `yaml:"api_key"`
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}

type JWTConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type MQConfig struct {
	NameServer []string `yaml:"name_server"`
}

type OSSConfig struct {
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
	SecurityToken   string `yaml:"security_token"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %v", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %v", path, err)
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	if cfg.Model.APIKey == "" {
		slog.Warn("Model API key is not configured, agent exchanges will be rejected")
	}

	Cfg = cfg
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.DB.Host == "" || c.DB.Name == "" {
		return fmt.Errorf("db.host and db.name are required")
	}
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required")
	}
	if c.Model.Name == "" {
		c.Model.Name = "gemini-3-flash-preview"
	}
	if c.Model.BaseURL == "" {
		c.Model.BaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	}
	return nil
}
