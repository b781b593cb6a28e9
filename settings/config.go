package settings

import (
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
	"mit.edu/dsg/plansig/common"
)

// LoadYAML applies a YAML document mapping setting names to values, e.g.
//
//	work_mem: 65536
//	hash_mem_multiplier: 1.5
//
// Settings the document does not mention keep their current value. The
// document is validated as a whole before anything is applied, so an error
// leaves sv unchanged.
func LoadYAML(data []byte, sv *Values) error {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(common.NewError(common.InvalidSettingError, "%v", err), "parsing settings")
	}

	staged := NewValues()
	for _, s := range registryOrder {
		staged.setInt64(s.slot(), sv.getInt64(s.slot()))
	}
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		node := doc[key]
		if node.Kind != yaml.ScalarNode {
			return common.NewError(common.InvalidSettingError, "setting %q: expected a scalar value (line %d)", key, node.Line)
		}
		if err := Set(staged, key, node.Value); err != nil {
			return errors.Wrapf(err, "line %d", node.Line)
		}
	}
	for _, s := range registryOrder {
		sv.setInt64(s.slot(), staged.getInt64(s.slot()))
	}
	return nil
}

// LoadFile applies the YAML settings file at path. See LoadYAML.
func LoadFile(path string, sv *Values) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading settings file")
	}
	return errors.Wrapf(LoadYAML(data, sv), "settings file %s", path)
}
