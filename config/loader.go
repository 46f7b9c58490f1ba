// =============================================================================
// 📦 配置加载
// =============================================================================
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("config.yaml").
//	    WithDotEnv(".env").
//	    WithValidator((*config.Config).Validate).
//	    Load()
//
// 优先级（后者覆盖前者）：默认值 → YAML → .env → 环境变量 → PORT
// =============================================================================
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvPrefix 环境变量默认前缀
const DefaultEnvPrefix = "AGENTCORE"

// LegacyPortEnv 旧版服务使用的端口变量，设置时覆盖 HTTP 端口
const LegacyPortEnv = "PORT"

// Loader 按层叠加配置来源（Builder 模式）
type Loader struct {
	configPath string
	envPrefix  string
	dotEnv     []string
	validators []func(*Config) error
}

// NewLoader 创建加载器，默认前缀 AGENTCORE
func NewLoader() *Loader {
	return &Loader{envPrefix: DefaultEnvPrefix}
}

// WithConfigPath 指定 YAML 文件；文件不存在时跳过该层
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithDotEnv 追加 .env 文件。已存在的环境变量不会被覆盖，缺失的文件被忽略。
func (l *Loader) WithDotEnv(files ...string) *Loader {
	l.dotEnv = append(l.dotEnv, files...)
	return l
}

// WithValidator 追加在所有来源合并后执行的校验
func (l *Loader) WithValidator(v func(*Config) error) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Load 合并所有来源并执行校验
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := l.applyFile(cfg); err != nil {
		return nil, err
	}
	if err := l.applyDotEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := bindEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix); err != nil {
		return nil, err
	}
	if err := applyLegacyPort(cfg); err != nil {
		return nil, err
	}

	for _, validate := range l.validators {
		if err := validate(cfg); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}
	return cfg, nil
}

func (l *Loader) applyFile(cfg *Config) error {
	if l.configPath == "" {
		return nil
	}
	data, err := os.ReadFile(l.configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read config file %s: %w", l.configPath, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", l.configPath, err)
	}
	return nil
}

func (l *Loader) applyDotEnv() error {
	var present []string
	for _, f := range l.dotEnv {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

var durationType = reflect.TypeOf(time.Duration(0))

// bindEnv 递归遍历带 env 标签的字段，用 {prefix}_{tag} 变量覆盖。
// 所有无法解析的变量一并报告。
func bindEnv(v reflect.Value, prefix string) error {
	var errs []error
	t := v.Type()
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("env")
		if tag == "" || tag == "-" {
			continue
		}
		key := prefix + "_" + tag
		field := v.Field(i)

		if field.Kind() == reflect.Struct {
			if err := bindEnv(field, key); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		raw, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if err := parseInto(field, strings.TrimSpace(raw)); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s=%q: %w", key, raw, err))
		}
	}
	return errors.Join(errs...)
}

func parseInto(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return nil
	}
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		field.Set(reflect.ValueOf(items))
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

func applyLegacyPort(cfg *Config) error {
	raw := strings.TrimSpace(os.Getenv(LegacyPortEnv))
	if raw == "" {
		return nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", LegacyPortEnv, raw, err)
	}
	cfg.Server.HTTPPort = port
	return nil
}
