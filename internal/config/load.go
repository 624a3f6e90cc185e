package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"
)

// DefaultPaths 返回默认配置文件的搜索顺序，先命中的文件生效。
//
//  1. ./.glossmark.yaml - 当前目录
//  2. ~/.glossmark.yaml - 用户主目录
//  3. /etc/glossmark/config.yaml - 系统级配置
func DefaultPaths() []string {
	paths := []string{"." + AppName + ".yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+AppName+".yaml"))
	}

	return append(paths, "/etc/"+AppName+"/config.yaml")
}

// Load 读取配置并按优先级合并：默认值 → 配置文件 → 环境变量 → CLI flags。
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
// 列表类配置在环境变量中以逗号分隔。
func Load(opts ...Option) (*Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if !o.envPrefixSet {
		o.envPrefix = EnvPrefix
	}

	configMap, err := toMap(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("encode defaults: %w", err)
	}
	leaves := leafKeys(configMap)

	// 配置文件
	fileMap, path, err := o.readConfigFile()
	if err != nil {
		return nil, err
	}
	if fileMap != nil {
		for _, key := range unknownKeys(fileMap, configMap) {
			slog.Warn("Unknown config key", "path", path, "key", key)
		}
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path, "templateExpansion", !o.noExpansion)
	} else {
		slog.Debug("No config file found, using defaults")
	}

	// 环境变量
	if o.envPrefix != "" {
		for _, key := range leaves {
			envKey := envName(o.envPrefix, key.path)
			if val, ok := os.LookupEnv(envKey); ok && val != "" {
				setByPath(configMap, key.path, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", key.path)
			}
		}
	}

	// CLI flags (仅当用户明确指定时)
	if o.cmd != nil {
		for _, key := range leaves {
			applyFlag(o.cmd, configMap, key)
		}
	}

	var cfg Config
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (o *options) readConfigFile() (map[string]any, string, error) {
	if o.configFile != "" {
		content, err := os.ReadFile(o.configFile)
		if err != nil {
			return nil, "", fmt.Errorf("read config file: %w", err)
		}
		m, err := o.parse(o.configFile, content)
		return m, o.configFile, err
	}

	paths := o.configPaths
	if len(paths) == 0 {
		paths = DefaultPaths()
	}
	for _, path := range paths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue // 文件不存在或无法读取，尝试下一个路径
		}
		m, err := o.parse(path, content)
		return m, path, err
	}

	return nil, "", nil
}

func (o *options) parse(path string, content []byte) (map[string]any, error) {
	if !o.noExpansion {
		expanded, err := expandTemplate(string(content))
		if err != nil {
			return nil, fmt.Errorf("expand template in %s: %w", path, err)
		}
		content = []byte(expanded)
	}

	m, err := parseConfigBytes(path, content)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return m, nil
}

// leafKey 是可由环境变量与 CLI flag 覆盖的配置项。
type leafKey struct {
	path string
	kind leafKind
}

type leafKind int

const (
	kindString leafKind = iota
	kindBool
	kindStrings
)

// leafKeys 按字典序收集默认配置中的标量与字符串列表 key。
// 元素为对象的列表（如 glossary.candidates）只能在配置文件中设置。
func leafKeys(data map[string]any) []leafKey {
	var keys []leafKey
	for _, path := range flattenMapKeys(data) {
		val := getByPath(data, path)
		switch v := val.(type) {
		case string:
			keys = append(keys, leafKey{path, kindString})
		case bool:
			keys = append(keys, leafKey{path, kindBool})
		case []any:
			if !slices.ContainsFunc(v, func(e any) bool { _, ok := e.(string); return !ok }) {
				keys = append(keys, leafKey{path, kindStrings})
			}
		}
	}
	slices.SortFunc(keys, func(a, b leafKey) int { return strings.Compare(a.path, b.path) })

	return keys
}

// envName 将 key 转为环境变量名：tag.dry-run → GLOSSMARK_TAG_DRY_RUN。
func envName(prefix, key string) string {
	return prefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// FlagName 将 key 转为 CLI flag 名称，仅替换 "." 为 "-"：source.root → source-root。
func FlagName(key string) string {
	return strings.ReplaceAll(key, ".", "-")
}

func applyFlag(cmd *cli.Command, config map[string]any, key leafKey) {
	name := FlagName(key.path)
	if !cmd.IsSet(name) {
		return
	}

	switch key.kind {
	case kindString:
		setByPath(config, key.path, cmd.String(name))
	case kindBool:
		setByPath(config, key.path, cmd.Bool(name))
	case kindStrings:
		setByPath(config, key.path, cmd.StringSlice(name))
	}
}

// unknownKeys 返回 src 中默认配置没有的 key。
func unknownKeys(src, known map[string]any) []string {
	var unknown []string
	for _, path := range flattenMapKeys(src) {
		if getByPath(known, path) == nil {
			unknown = append(unknown, path)
		}
	}
	slices.Sort(unknown)

	return unknown
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}

	normalized := normalizeMapKeys(raw)
	if normalized == nil {
		return map[string]any{}, nil
	}
	configMap, ok := normalized.(map[string]any)
	if !ok {
		return nil, errors.New("config root must be object")
	}

	return configMap, nil
}

func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalizeMapKeys(value)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeMapKeys(value)
		}
		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeMapKeys(typed[i])
		}
		return typed
	default:
		return val
	}
}

func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		if valueMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				mergeMaps(dstMap, valueMap)
				continue
			}
		}

		dst[key] = value
	}
}

func getByPath(data map[string]any, path string) any {
	var current any = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if current, ok = m[part]; !ok {
			return nil
		}
	}

	return current
}

func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func flattenMapKeys(data map[string]any) []string {
	var keys []string
	flattenMapKeysRecursive(data, "", &keys)

	return keys
}

func flattenMapKeysRecursive(data map[string]any, prefix string, keys *[]string) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if child, ok := value.(map[string]any); ok && len(child) > 0 {
			flattenMapKeysRecursive(child, fullKey, keys)
			continue
		}

		*keys = append(*keys, fullKey)
	}
}

func decodeConfigMap(data map[string]any, out any) error {
	conf := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	}
	decoder, err := mapstructure.NewDecoder(conf)
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
