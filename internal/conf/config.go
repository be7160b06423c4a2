package conf

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Storage StorageConfig `mapstructure:"storage"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"` // 支持 OPENAI_API_KEY 环境变量覆盖
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`

	// FilePurpose Files API 上传用途
	FilePurpose string `mapstructure:"file_purpose"`

	// VectorStoreIDs 文档检索工具（file_search）使用的向量库
	VectorStoreIDs []string `mapstructure:"vector_store_ids"`
}

type UploadConfig struct {
	MaxSizeBytes   int64  `mapstructure:"max_size_bytes"`
	FallbackPrompt string `mapstructure:"fallback_prompt"` // 附件无文字说明时的提示语
}

type StorageConfig struct {
	Backend string             `mapstructure:"backend"` // local | minio
	Local   LocalStorageConfig `mapstructure:"local"`
	MinIO   MinIOConfig        `mapstructure:"minio"`
}

type LocalStorageConfig struct {
	Dir string `mapstructure:"dir"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"` // 为空则不加 CORS 头
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	// API Key 允许只放环境变量，不落配置文件
	if err := viper.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("openai.model", "gpt-4o")
	viper.SetDefault("openai.timeout", "120s")
	viper.SetDefault("openai.file_purpose", "user_data")
	viper.SetDefault("upload.max_size_bytes", 20<<20)
	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.local.dir", "data/uploads")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
