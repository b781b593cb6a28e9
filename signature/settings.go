package signature

import (
	"strings"

	"mit.edu/dsg/plansig/settings"
)

// settingsSignatureOrder fixes the field order of a settings signature.
var settingsSignatureOrder = []settings.Setting{
	settings.SharedBuffers,
	settings.TempBuffers,
	settings.WorkMem,
	settings.HashMemMultiplier,
	settings.EffectiveIOConcurrency,
}

// ComputeSettingsSignature renders the tunables that influence plan execution
// as space separated values in a fixed order: shared_buffers, temp_buffers,
// work_mem, hash_mem_multiplier, effective_io_concurrency. The values are read
// from sv on every call.
func ComputeSettingsSignature(sv *settings.Values) string {
	fields := make([]string, len(settingsSignatureOrder))
	for i, s := range settingsSignatureOrder {
		fields[i] = s.Encoded(sv)
	}
	return strings.Join(fields, " ")
}
