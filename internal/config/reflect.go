package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/imgajeed76/erpgrid/internal/grid"
)

// ConfigField represents metadata about a config field extracted from struct tags
type ConfigField struct {
	Key      string // e.g., "table.page_size"
	Default  string // default value as string
	Desc     string // description for help text
	Min      int    // minimum value for int fields, when HasMin
	Max      int    // maximum value for int fields, when HasMax
	HasMin   bool
	HasMax   bool
	Type     string // "string", "int" or "bool"
	Category string // e.g., "table", "payroll"
}

// validators check string values that have a closed set of options
var validators = map[string]func(string) error{
	"search.threshold": func(v string) error {
		if _, err := grid.ParseRank(v); err != nil {
			return fmt.Errorf("%w (valid: %s)", err, strings.Join(grid.RankNames()[1:], ", "))
		}
		return nil
	},
}

// fieldCache caches parsed config fields to avoid repeated reflection
var fieldCache []ConfigField

// getConfigFields extracts all config fields from GlobalConfig using reflection
func getConfigFields() []ConfigField {
	if fieldCache != nil {
		return fieldCache
	}

	var fields []ConfigField
	cfg := &GlobalConfig{}
	extractFields(reflect.TypeOf(cfg).Elem(), &fields)

	// Sort by key for consistent ordering
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Key < fields[j].Key
	})

	fieldCache = fields
	return fields
}

// extractFields recursively extracts config fields from a struct
func extractFields(t reflect.Type, fields *[]ConfigField) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Slices and maps (like payroll slabs) are edited in the file only
		if k := field.Type.Kind(); k == reflect.Slice || k == reflect.Map {
			continue
		}

		configKey := field.Tag.Get("config")
		if configKey == "" {
			if field.Type.Kind() == reflect.Struct && field.Tag.Get("toml") != "" {
				extractFields(field.Type, fields)
			}
			continue
		}

		cf := ConfigField{
			Key:      configKey,
			Default:  field.Tag.Get("default"),
			Desc:     field.Tag.Get("desc"),
			Category: strings.Split(configKey, ".")[0],
		}

		if minStr, ok := field.Tag.Lookup("min"); ok {
			cf.Min, _ = strconv.Atoi(minStr)
			cf.HasMin = true
		}
		if maxStr, ok := field.Tag.Lookup("max"); ok {
			cf.Max, _ = strconv.Atoi(maxStr)
			cf.HasMax = true
		}

		switch field.Type.Kind() {
		case reflect.Int:
			cf.Type = "int"
		case reflect.String:
			cf.Type = "string"
		case reflect.Bool:
			cf.Type = "bool"
		}

		*fields = append(*fields, cf)
	}
}

// findField finds a config field by key
func findField(key string) *ConfigField {
	key = normalizeKey(key)
	for _, f := range getConfigFields() {
		if f.Key == key {
			return &f
		}
	}
	return nil
}

// normalizeKey handles key aliases
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	aliases := map[string]string{
		"table.pagesize":      "table.page_size",
		"search.rank":         "search.rank_order",
		"source.db":           "source.database_url",
		"payroll.hra":         "payroll.hra_percent",
		"payroll.pf":          "payroll.pf_percent",
		"upload.step":         "upload.step_percent",
		"upload.interval":     "upload.interval_ms",
		"source.database-url": "source.database_url",
	}
	if normalized, ok := aliases[key]; ok {
		return normalized
	}
	return key
}

// lookupField navigates "category.name" to the struct field tagged with it
func lookupField(cfg any, key string) (reflect.Value, bool) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	// Find the nested struct by toml tag
	var nestedValue reflect.Value
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == parts[0] {
			nestedValue = v.Field(i)
			break
		}
	}
	if !nestedValue.IsValid() || nestedValue.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	// Find the actual field within the nested struct by config tag
	nestedType := nestedValue.Type()
	for i := 0; i < nestedType.NumField(); i++ {
		if nestedType.Field(i).Tag.Get("config") == key {
			return nestedValue.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// getFieldValue gets a field value from a config struct using reflection
func getFieldValue(cfg any, key string) (string, bool) {
	fieldValue, ok := lookupField(cfg, normalizeKey(key))
	if !ok {
		return "", false
	}
	switch fieldValue.Kind() {
	case reflect.String:
		return fieldValue.String(), true
	case reflect.Int:
		return strconv.FormatInt(fieldValue.Int(), 10), true
	case reflect.Bool:
		return strconv.FormatBool(fieldValue.Bool()), true
	}
	return "", false
}

// setFieldValue sets a field value on a config struct using reflection
func setFieldValue(cfg any, key, value string) error {
	key = normalizeKey(key)

	field := findField(key)
	if field == nil {
		return fmt.Errorf("unknown config key: %s", key)
	}

	fieldValue, ok := lookupField(cfg, key)
	if !ok {
		return fmt.Errorf("field not found: %s", key)
	}

	switch fieldValue.Kind() {
	case reflect.String:
		if validate, ok := validators[key]; ok && value != "" {
			if err := validate(value); err != nil {
				return err
			}
		}
		fieldValue.SetString(value)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %s", value)
		}
		fieldValue.SetBool(b)
		return nil

	case reflect.Int:
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}

		if field.HasMin && intVal < field.Min {
			return fmt.Errorf("value %d is below minimum %d", intVal, field.Min)
		}
		if field.HasMax && intVal > field.Max {
			return fmt.Errorf("value %d exceeds maximum %d", intVal, field.Max)
		}

		fieldValue.SetInt(int64(intVal))
		return nil
	}

	return fmt.Errorf("field not found: %s", key)
}

// applyDefaults restores tagged defaults on fields a config file set to an
// unusable zero value: empty strings and ints whose minimum is above zero.
func applyDefaults(cfg *GlobalConfig) {
	for _, f := range getConfigFields() {
		if f.Default == "" {
			continue
		}
		current, _ := getFieldValue(cfg, f.Key)
		switch {
		case f.Type == "string" && current == "":
		case f.Type == "int" && current == "0" && f.HasMin && f.Min > 0:
		default:
			continue
		}
		_ = setFieldValue(cfg, f.Key, f.Default)
	}
	if _, err := cfg.Threshold(); err != nil {
		cfg.Search.Threshold = grid.RankMatches.String()
	}
}

// ListKeys returns all available config keys
func ListKeys() []string {
	fields := getConfigFields()
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// GetFieldsByCategory returns config fields grouped by category
func GetFieldsByCategory() map[string][]ConfigField {
	result := make(map[string][]ConfigField)
	for _, f := range getConfigFields() {
		result[f.Category] = append(result[f.Category], f)
	}
	return result
}

// GenerateHelpText generates help text for config options
func GenerateHelpText() string {
	var sb strings.Builder

	byCategory := GetFieldsByCategory()

	categories := []struct {
		key   string
		title string
	}{
		{"table", "Tables"},
		{"search", "Search"},
		{"payroll", "Payroll (tax slabs are edited in the file as [[payroll.slab]])"},
		{"upload", "Uploads"},
		{"source", "Record source"},
	}

	for _, cat := range categories {
		fields, ok := byCategory[cat.key]
		if !ok || len(fields) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "  %s:\n", cat.title)
		for _, f := range fields {
			defaultStr := ""
			if f.Default != "" {
				defaultStr = fmt.Sprintf(" (default: %s)", f.Default)
			}
			fmt.Fprintf(&sb, "    %-30s %s%s\n", f.Key, f.Desc, defaultStr)
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
