package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// LoadRules reads a YAML or JSON rule file and overlays it on the default
// rule table: every field present in the file replaces the built-in rules
// for that field, the others keep their defaults.
//
// Example (YAML):
//
//	product:
//	  - name: product-status
//	    kind: between
//	    labels: ["상품명", "상품주문상태"]
func LoadRules(path string) (RuleSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file RuleSet
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &file); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &file); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &file); err != nil {
			if jerr := json.Unmarshal(b, &file); jerr != nil {
				return nil, fmt.Errorf("parse rules: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	rs := DefaultRuleSet()
	for f, list := range file {
		rs[f] = list
	}
	return rs, nil
}
