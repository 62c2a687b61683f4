package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/vidzel"
	ConfigFileName    = "vidzel.yml"
)

// ValidBlobBackends is the list of supported upload storage backends
var ValidBlobBackends = []string{"badger", "s3"}

// ValidLogLevels is the list of accepted log levels
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// VidzelConfig holds all Vidzel server configuration settings
type VidzelConfig struct {
	// TokenTTLSeconds is the lifetime of session tokens in seconds
	TokenTTLSeconds int `yaml:"token_ttl" json:"token_ttl"`

	// APIListLimitMax is the maximum number of results for listing requests
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// UploadMaxBytes caps the size of a multipart upload
	UploadMaxBytes int64 `yaml:"upload_max_bytes" json:"upload_max_bytes"`

	// BlobBackend selects where uploads are stored (badger or s3)
	BlobBackend string `yaml:"blob_backend" json:"blob_backend"`

	// BadgerPath is the on-disk location of the badger store; empty means in-memory
	BadgerPath string `yaml:"badger_path" json:"badger_path"`

	S3Bucket       string `yaml:"s3_bucket" json:"s3_bucket"`
	S3Region       string `yaml:"s3_region" json:"s3_region"`
	S3Endpoint     string `yaml:"s3_endpoint" json:"s3_endpoint"`
	S3UsePathStyle bool   `yaml:"s3_use_path_style" json:"s3_use_path_style"`

	// PublicBaseURL is prepended to blob keys when building public URLs
	PublicBaseURL string `yaml:"public_base_url" json:"public_base_url"`

	// PublicURL is the externally reachable address of this server
	PublicURL string `yaml:"public_url" json:"public_url"`

	// CORSAllowedOrigins lists origins allowed to call the API
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	// AuthRateLimit is the sustained signup/login rate per client IP
	AuthRateLimit float64 `yaml:"auth_rate_limit" json:"auth_rate_limit"`

	// AuthRateBurst is the signup/login burst per client IP
	AuthRateBurst int `yaml:"auth_rate_burst" json:"auth_rate_burst"`

	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	LogLevel string `yaml:"log_level" json:"log_level"`

	MetricsEnabled bool `yaml:"metrics_enabled" json:"metrics_enabled"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *VidzelConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *VidzelConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// Default returns a config populated with default values only.
func Default() *VidzelConfig {
	cfg := newDefault()
	for _, name := range attributeNames() {
		cfg.sources[name] = "default"
	}
	return cfg
}

func newDefault() *VidzelConfig {
	return &VidzelConfig{
		TokenTTLSeconds:    8 * 60 * 60,
		APIListLimitMax:    1000,
		UploadMaxBytes:     10 << 20,
		BlobBackend:        "badger",
		PublicURL:          "http://localhost:8000",
		CORSAllowedOrigins: []string{"*"},
		AuthRateLimit:      5,
		AuthRateBurst:      10,
		TrustedProxies:     []string{},
		LogLevel:           "info",
		MetricsEnabled:     true,
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*VidzelConfig, error) {
	config := Default()

	configPath := os.Getenv("VIDZEL_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig VidzelConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"token_ttl", "api_list_limit_max", "upload_max_bytes",
		"blob_backend", "badger_path", "s3_bucket", "s3_region", "s3_endpoint",
		"s3_use_path_style", "public_base_url", "public_url",
		"cors_allowed_origins", "auth_rate_limit", "auth_rate_burst",
		"trusted_proxies", "log_level", "metrics_enabled",
	}
}

func (c *VidzelConfig) applyFileConfig(file *VidzelConfig) {
	if file.TokenTTLSeconds != 0 {
		c.TokenTTLSeconds = file.TokenTTLSeconds
		c.sources["token_ttl"] = "file"
	}
	if file.APIListLimitMax != 0 {
		c.APIListLimitMax = file.APIListLimitMax
		c.sources["api_list_limit_max"] = "file"
	}
	if file.UploadMaxBytes != 0 {
		c.UploadMaxBytes = file.UploadMaxBytes
		c.sources["upload_max_bytes"] = "file"
	}
	if file.BlobBackend != "" {
		c.BlobBackend = file.BlobBackend
		c.sources["blob_backend"] = "file"
	}
	if file.BadgerPath != "" {
		c.BadgerPath = file.BadgerPath
		c.sources["badger_path"] = "file"
	}
	if file.S3Bucket != "" {
		c.S3Bucket = file.S3Bucket
		c.sources["s3_bucket"] = "file"
	}
	if file.S3Region != "" {
		c.S3Region = file.S3Region
		c.sources["s3_region"] = "file"
	}
	if file.S3Endpoint != "" {
		c.S3Endpoint = file.S3Endpoint
		c.sources["s3_endpoint"] = "file"
	}
	if file.S3UsePathStyle {
		c.S3UsePathStyle = true
		c.sources["s3_use_path_style"] = "file"
	}
	if file.PublicBaseURL != "" {
		c.PublicBaseURL = file.PublicBaseURL
		c.sources["public_base_url"] = "file"
	}
	if file.PublicURL != "" {
		c.PublicURL = file.PublicURL
		c.sources["public_url"] = "file"
	}
	if len(file.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = file.CORSAllowedOrigins
		c.sources["cors_allowed_origins"] = "file"
	}
	if file.AuthRateLimit != 0 {
		c.AuthRateLimit = file.AuthRateLimit
		c.sources["auth_rate_limit"] = "file"
	}
	if file.AuthRateBurst != 0 {
		c.AuthRateBurst = file.AuthRateBurst
		c.sources["auth_rate_burst"] = "file"
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
}

func (c *VidzelConfig) applyEnvConfig() {
	if val := os.Getenv("VIDZEL_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTLSeconds = i
			c.sources["token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("VIDZEL_API_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIListLimitMax = i
			c.sources["api_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("VIDZEL_UPLOAD_MAX_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.UploadMaxBytes = i
			c.sources["upload_max_bytes"] = "environment"
		}
	}
	if val := os.Getenv("VIDZEL_BLOB_BACKEND"); val != "" {
		c.BlobBackend = strings.ToLower(strings.TrimSpace(val))
		c.sources["blob_backend"] = "environment"
	}
	if val := os.Getenv("VIDZEL_BADGER_PATH"); val != "" {
		c.BadgerPath = val
		c.sources["badger_path"] = "environment"
	}
	if val := os.Getenv("VIDZEL_S3_BUCKET"); val != "" {
		c.S3Bucket = val
		c.sources["s3_bucket"] = "environment"
	}
	if val := os.Getenv("VIDZEL_S3_REGION"); val != "" {
		c.S3Region = val
		c.sources["s3_region"] = "environment"
	}
	if val := os.Getenv("VIDZEL_S3_ENDPOINT"); val != "" {
		c.S3Endpoint = val
		c.sources["s3_endpoint"] = "environment"
	}
	if val := os.Getenv("VIDZEL_S3_USE_PATH_STYLE"); val != "" {
		c.S3UsePathStyle = val == "true" || val == "1"
		c.sources["s3_use_path_style"] = "environment"
	}
	if val := os.Getenv("VIDZEL_PUBLIC_BASE_URL"); val != "" {
		c.PublicBaseURL = val
		c.sources["public_base_url"] = "environment"
	}
	if val := os.Getenv("VIDZEL_PUBLIC_URL"); val != "" {
		c.PublicURL = val
		c.sources["public_url"] = "environment"
	}
	if val := os.Getenv("VIDZEL_CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORSAllowedOrigins = splitAndTrim(val)
		c.sources["cors_allowed_origins"] = "environment"
	}
	if val := os.Getenv("VIDZEL_AUTH_RATE_LIMIT"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.AuthRateLimit = f
			c.sources["auth_rate_limit"] = "environment"
		}
	}
	if val := os.Getenv("VIDZEL_AUTH_RATE_BURST"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.AuthRateBurst = i
			c.sources["auth_rate_burst"] = "environment"
		}
	}
	if val := os.Getenv("VIDZEL_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("VIDZEL_LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(val))
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("VIDZEL_METRICS_ENABLED"); val != "" {
		c.MetricsEnabled = val == "true" || val == "1"
		c.sources["metrics_enabled"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *VidzelConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *VidzelConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the session token TTL as a duration
func (c *VidzelConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *VidzelConfig) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *VidzelConfig) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if !contains(ValidBlobBackends, c.BlobBackend) {
		return fmt.Errorf("invalid blob_backend: %s", c.BlobBackend)
	}
	if c.BlobBackend == "s3" && c.S3Bucket == "" {
		return fmt.Errorf("s3_bucket is required when blob_backend is s3")
	}
	if !contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	if c.TokenTTLSeconds <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	if c.APIListLimitMax <= 0 {
		return fmt.Errorf("api_list_limit_max must be positive")
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("upload_max_bytes must be positive")
	}
	if c.AuthRateLimit <= 0 || c.AuthRateBurst <= 0 {
		return fmt.Errorf("auth_rate_limit and auth_rate_burst must be positive")
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *VidzelConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTLSeconds), Source: c.Source("token_ttl")},
		{Name: "api_list_limit_max", Value: strconv.Itoa(c.APIListLimitMax), Source: c.Source("api_list_limit_max")},
		{Name: "upload_max_bytes", Value: strconv.FormatInt(c.UploadMaxBytes, 10), Source: c.Source("upload_max_bytes")},
		{Name: "blob_backend", Value: c.BlobBackend, Source: c.Source("blob_backend")},
		{Name: "badger_path", Value: c.BadgerPath, Source: c.Source("badger_path")},
		{Name: "s3_bucket", Value: c.S3Bucket, Source: c.Source("s3_bucket")},
		{Name: "s3_region", Value: c.S3Region, Source: c.Source("s3_region")},
		{Name: "s3_endpoint", Value: c.S3Endpoint, Source: c.Source("s3_endpoint")},
		{Name: "s3_use_path_style", Value: strconv.FormatBool(c.S3UsePathStyle), Source: c.Source("s3_use_path_style")},
		{Name: "public_base_url", Value: c.PublicBaseURL, Source: c.Source("public_base_url")},
		{Name: "public_url", Value: c.PublicURL, Source: c.Source("public_url")},
		{Name: "cors_allowed_origins", Value: strings.Join(c.CORSAllowedOrigins, ","), Source: c.Source("cors_allowed_origins")},
		{Name: "auth_rate_limit", Value: strconv.FormatFloat(c.AuthRateLimit, 'f', -1, 64), Source: c.Source("auth_rate_limit")},
		{Name: "auth_rate_burst", Value: strconv.Itoa(c.AuthRateBurst), Source: c.Source("auth_rate_burst")},
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "metrics_enabled", Value: strconv.FormatBool(c.MetricsEnabled), Source: c.Source("metrics_enabled")},
	}
}

// FormatText returns a text representation of the configuration
func (c *VidzelConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *VidzelConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
