package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/viper"
)

// Device classes with qualifier-dependent suffixes.
const (
	DeviceClassPID       = 8
	DeviceClassTotalizer = 14
)

// Document keys of the persisted configuration file.
const (
	keyTypeMapping    = "type_mapping"
	keySuffixMapping  = "suffix_mapping"
	keyPIDTypeMapping = "pid_type_mapping"

	keyVariantOther = "pid_type_other"
)

// QualifierVariants is a qualifier-dependent suffix choice. Special applies
// when the activation's qualifier equals Qualifier; Other applies to every
// other qualifier value.
type QualifierVariants struct {
	Qualifier int    // qualifier code that selects Special (4 for PID, 2 for totalizers)
	Special   string
	Other     string
}

// SuffixEntry is one suffix_mapping value: either a plain suffix string or a
// qualifier-dependent choice. ByQualifier nil means plain.
type SuffixEntry struct {
	Plain       string
	ByQualifier *QualifierVariants
}

// PlainSuffix returns a plain suffix entry.
func PlainSuffix(s string) SuffixEntry {
	return SuffixEntry{Plain: s}
}

// QualifierSuffix returns a qualifier-dependent suffix entry.
func QualifierSuffix(qualifier int, special, other string) SuffixEntry {
	return SuffixEntry{ByQualifier: &QualifierVariants{
		Qualifier: qualifier,
		Special:   special,
		Other:     other,
	}}
}

// Tables holds the three mapping tables. Treated as read-only once loaded.
type Tables struct {
	DeviceTypeNames map[int]string      // device class code -> family name
	SuffixRules     map[int]SuffixEntry // device class code -> suffix rule
	QualifierNames  map[int]string      // qualifier code -> short name
}

// Default returns the built-in tables used when no configuration file exists.
func Default() Tables {
	return Tables{
		DeviceTypeNames: map[int]string{
			0:  "V",
			1:  "V",
			2:  "V",
			6:  "AO",
			7:  "DO",
			8:  "PID",
			10: "Comm",
			13: "VSD",
			14: "TOT",
		},
		SuffixRules: map[int]SuffixEntry{
			0:  PlainSuffix(".activate"),
			1:  PlainSuffix(".activateLL"),
			2:  PlainSuffix(".activateUL"),
			6:  PlainSuffix(".activate"),
			7:  PlainSuffix(".activate"),
			8:  QualifierSuffix(4, ".fixedoutput", ".closeloop"),
			10: PlainSuffix(""),
			13: PlainSuffix(".activate"),
			14: QualifierSuffix(2, ".ResetTotalizer", ".EnableTotalizer"),
		},
		QualifierNames: map[int]string{
			0: "N",
			1: "S",
			2: "R",
			3: "SP",
			4: "FO",
		},
	}
}

// Load reads tables from the JSON document at path. A missing file yields the
// defaults; a key missing from the document falls back to that key's default
// table. A malformed document is an error.
func Load(path string) (Tables, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return Tables{}, fmt.Errorf("read config %s: %w", path, err)
	}

	tables := Default()
	if v.IsSet(keyTypeMapping) {
		names, err := parseCodeNames(v.GetStringMapString(keyTypeMapping))
		if err != nil {
			return Tables{}, fmt.Errorf("%s: %w", keyTypeMapping, err)
		}
		tables.DeviceTypeNames = names
	}
	if v.IsSet(keyPIDTypeMapping) {
		names, err := parseCodeNames(v.GetStringMapString(keyPIDTypeMapping))
		if err != nil {
			return Tables{}, fmt.Errorf("%s: %w", keyPIDTypeMapping, err)
		}
		tables.QualifierNames = names
	}
	if v.IsSet(keySuffixMapping) {
		rules, err := parseSuffixRules(v.GetStringMap(keySuffixMapping))
		if err != nil {
			return Tables{}, fmt.Errorf("%s: %w", keySuffixMapping, err)
		}
		tables.SuffixRules = rules
	}

	return tables, nil
}

// Save writes the tables to path in the shared JSON document shape,
// creating the file if necessary.
func (t Tables) Save(path string) error {
	v := viper.New()
	v.SetConfigType("json")
	for key, value := range t.Document() {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Document renders the tables as the persisted/API document shape: three
// string-keyed maps, with qualifier-dependent suffixes as two-key objects.
func (t Tables) Document() map[string]any {
	return map[string]any{
		keyTypeMapping:    codeNamesDocument(t.DeviceTypeNames),
		keySuffixMapping:  suffixRulesDocument(t.SuffixRules),
		keyPIDTypeMapping: codeNamesDocument(t.QualifierNames),
	}
}

// FromDocument parses tables from a decoded JSON document, as received by
// the configuration API. Keys absent from the document keep their defaults.
func FromDocument(doc map[string]any) (Tables, error) {
	tables := Default()
	if raw, ok := doc[keyTypeMapping].(map[string]any); ok {
		names, err := parseCodeNames(stringValues(raw))
		if err != nil {
			return Tables{}, fmt.Errorf("%s: %w", keyTypeMapping, err)
		}
		tables.DeviceTypeNames = names
	}
	if raw, ok := doc[keyPIDTypeMapping].(map[string]any); ok {
		names, err := parseCodeNames(stringValues(raw))
		if err != nil {
			return Tables{}, fmt.Errorf("%s: %w", keyPIDTypeMapping, err)
		}
		tables.QualifierNames = names
	}
	if raw, ok := doc[keySuffixMapping].(map[string]any); ok {
		rules, err := parseSuffixRules(raw)
		if err != nil {
			return Tables{}, fmt.Errorf("%s: %w", keySuffixMapping, err)
		}
		tables.SuffixRules = rules
	}
	return tables, nil
}

// DeviceClasses returns the configured device class codes in ascending order.
func (t Tables) DeviceClasses() []int {
	codes := make([]int, 0, len(t.DeviceTypeNames))
	for code := range t.DeviceTypeNames {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

func parseCodeNames(raw map[string]string) (map[int]string, error) {
	names := make(map[int]string, len(raw))
	for key, name := range raw {
		code, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid code %q", key)
		}
		names[code] = name
	}
	return names, nil
}

func parseSuffixRules(raw map[string]any) (map[int]SuffixEntry, error) {
	rules := make(map[int]SuffixEntry, len(raw))
	for key, value := range raw {
		code, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid code %q", key)
		}
		entry, err := parseSuffixEntry(value)
		if err != nil {
			return nil, fmt.Errorf("code %q: %w", key, err)
		}
		rules[code] = entry
	}
	return rules, nil
}

func parseSuffixEntry(value any) (SuffixEntry, error) {
	switch v := value.(type) {
	case string:
		return PlainSuffix(v), nil
	case map[string]any:
		other, _ := v[keyVariantOther].(string)
		for _, qualifier := range []int{4, 2} {
			key := variantKey(qualifier)
			if special, ok := v[key].(string); ok {
				return QualifierSuffix(qualifier, special, other), nil
			}
		}
		return SuffixEntry{}, fmt.Errorf("variant object missing pid_type_4/pid_type_2 key")
	default:
		return SuffixEntry{}, fmt.Errorf("unsupported suffix value of type %T", value)
	}
}

func variantKey(qualifier int) string {
	return fmt.Sprintf("pid_type_%d", qualifier)
}

func codeNamesDocument(names map[int]string) map[string]string {
	doc := make(map[string]string, len(names))
	for code, name := range names {
		doc[strconv.Itoa(code)] = name
	}
	return doc
}

func suffixRulesDocument(rules map[int]SuffixEntry) map[string]any {
	doc := make(map[string]any, len(rules))
	for code, entry := range rules {
		if entry.ByQualifier == nil {
			doc[strconv.Itoa(code)] = entry.Plain
			continue
		}
		doc[strconv.Itoa(code)] = map[string]string{
			variantKey(entry.ByQualifier.Qualifier): entry.ByQualifier.Special,
			keyVariantOther:                         entry.ByQualifier.Other,
		}
	}
	return doc
}

func stringValues(raw map[string]any) map[string]string {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			out[key] = s
		}
	}
	return out
}
