// Initializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	App    AppConfig    `mapstructure:"app"`
	Batch  BatchConfig  `mapstructure:"batch"`
}

type ServerConfig struct {
	AppVersion   string `json:"appVersion"`
	Host         string `json:"host" validate:"required"`
	Port         string `json:"port" validate:"required"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `json:"environment"`
	Mode         string `mapstructure:"mode"`
}

// AppConfig configures the upload service: where static files live,
// which subdirectory under static_dir receives enhanced outputs, and
// which pipeline preset the service applies to uploads.
type AppConfig struct {
	Variant      string `mapstructure:"variant"`
	StaticDir    string `mapstructure:"static_dir"`
	OutputDir    string `mapstructure:"output_dir"`
	TemplatesDir string `mapstructure:"templates_dir"`
}

// BatchConfig configures the batch runner. Legacy mode switches to the
// aggressive preset and enables model-based super-resolution.
type BatchConfig struct {
	InputDir  string `mapstructure:"input_dir"`
	OutputDir string `mapstructure:"output_dir"`
	Variant   string `mapstructure:"variant"`
	Legacy    bool   `mapstructure:"legacy"`
	ModelPath string `mapstructure:"model_path"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}
	return &c, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
