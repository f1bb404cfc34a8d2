// Package config 管理 CLI 客户端配置
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config CLI 配置结构
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Chat   ChatConfig   `mapstructure:"chat"`
}

// ServerConfig 后端服务配置
type ServerConfig struct {
	URL        string `mapstructure:"url"`         // HTTP API 地址
	UploadPath string `mapstructure:"upload_path"` // 上传表单的提交路径
	CSRFToken  string `mapstructure:"csrf_token"`  // CSRF 令牌（页面隐藏表单字段的对应物）
}

// ChatConfig 聊天相关配置
type ChatConfig struct {
	DefaultDocumentID   string `mapstructure:"default_document_id"`   // 无保存状态时的兜底文档
	DefaultDocumentName string `mapstructure:"default_document_name"` // 兜底文档显示名
}

var (
	cfg        *Config
	configPath string
	configDir  string
)

// Init 初始化配置
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("获取用户目录失败: %w", err)
	}

	configDir = filepath.Join(home, ".doc-chat")
	configPath = filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.url", "http://localhost:8000")
	viper.SetDefault("server.upload_path", "/upload/")
	viper.SetDefault("server.csrf_token", "")
	viper.SetDefault("chat.default_document_id", "defaultDocId")
	viper.SetDefault("chat.default_document_name", "Default Chat Document")

	if err := viper.ReadInConfig(); err != nil {
		// 文件不存在时写出默认配置
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := viper.SafeWriteConfig(); err != nil {
				// 忽略文件已存在的错误
			}
		}
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}

	return nil
}

// Get 获取配置
func Get() *Config {
	return cfg
}

// Dir 返回配置目录（会话状态文件与日志都放在这里）
func Dir() string {
	return configDir
}

// LogPath 返回日志文件路径
func LogPath() string {
	return filepath.Join(configDir, "logs", "doc-chat.log")
}

// GetServerURL 获取服务器地址
func GetServerURL() string {
	if cfg == nil {
		return "http://localhost:8000"
	}
	return cfg.Server.URL
}

// SetServerURL 设置服务器地址
func SetServerURL(url string) {
	viper.Set("server.url", url)
	if cfg != nil {
		cfg.Server.URL = url
	}
}

// GetUploadPath 获取上传提交路径
func GetUploadPath() string {
	if cfg == nil {
		return "/upload/"
	}
	return cfg.Server.UploadPath
}

// GetCSRFToken 获取 CSRF 令牌
func GetCSRFToken() string {
	if cfg == nil {
		return ""
	}
	return cfg.Server.CSRFToken
}

// GetDefaultDocumentID 获取兜底文档 ID
func GetDefaultDocumentID() string {
	if cfg == nil {
		return "defaultDocId"
	}
	return cfg.Chat.DefaultDocumentID
}

// GetDefaultDocumentName 获取兜底文档显示名
func GetDefaultDocumentName() string {
	if cfg == nil {
		return "Default Chat Document"
	}
	return cfg.Chat.DefaultDocumentName
}

// GetClientUUID 获取或生成客户端唯一标识
// UUID 持久化在 ~/.doc-chat/client_id 文件中，随请求头上报。
func GetClientUUID() (string, error) {
	clientIDPath := filepath.Join(configDir, "client_id")

	data, err := os.ReadFile(clientIDPath)
	if err == nil {
		clientUUID := string(data)
		if clientUUID != "" {
			return clientUUID, nil
		}
	}

	newUUID := uuid.New().String()

	if err := os.WriteFile(clientIDPath, []byte(newUUID), 0600); err != nil {
		return "", fmt.Errorf("保存客户端 UUID 失败: %w", err)
	}

	return newUUID, nil
}
