package setting

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/djskncxm/DuckRequest/pkg/blueprint"
	"github.com/djskncxm/DuckRequest/pkg/logger"
)

type Setting struct {
	Log     logger.LogConfig `yaml:"Log"`
	Headers struct {
		UserAgent string `yaml:"UserAgent"`
	} `yaml:"Headers"`
	Requests []blueprint.Blueprint `yaml:"Requests"`
}

// Load 读取并解析 YAML 配置文件
func Load(path string) (*Setting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Setting, error) {
	cfg := Setting{Log: *logger.DefaultLogConfig()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type SettingsManager struct {
	mu       sync.RWMutex
	Settings map[string]string
}

func NewSettingsManager() *SettingsManager {
	return &SettingsManager{
		Settings: make(map[string]string),
	}
}

func (sm *SettingsManager) GetSetting(key string) (string, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	val, ok := sm.Settings[key]
	return val, ok
}

func (sm *SettingsManager) SetSetting(key, value string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.Settings[key] = value
}

func (sm *SettingsManager) GetInt(key string, defaultVal int) int {
	val, ok := sm.GetSetting(key)
	if !ok {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

func (sm *SettingsManager) GetBool(key string, defaultVal bool) bool {
	val, ok := sm.GetSetting(key)
	if !ok {
		return defaultVal
	}
	boolVal, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return boolVal
}

// LoadFromSetting 递归展开结构体到 map[string]string，键为 "Log.LogLevel" 这种形式
// 切片和 map 只记录长度
func (sm *SettingsManager) LoadFromSetting(s interface{}) {
	sm.loadStruct(reflect.ValueOf(s), "")
}

func (sm *SettingsManager) loadStruct(v reflect.Value, prefix string) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		val := v.Field(i)

		key := field.Name
		if prefix != "" {
			key = prefix + "." + key
		}

		switch val.Kind() {
		case reflect.Struct:
			sm.loadStruct(val, key) // 递归
		case reflect.String:
			sm.SetSetting(key, val.String())
		case reflect.Bool:
			sm.SetSetting(key, strconv.FormatBool(val.Bool()))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			sm.SetSetting(key, strconv.FormatInt(val.Int(), 10))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			sm.SetSetting(key, strconv.FormatUint(val.Uint(), 10))
		case reflect.Slice, reflect.Map:
			sm.SetSetting(key+".len", strconv.Itoa(val.Len()))
		default:
			sm.SetSetting(key, fmt.Sprintf("%v", val.Interface()))
		}
	}
}
