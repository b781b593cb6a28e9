package settings

import "math"

// The engine tunables that shape plan execution. Ranges follow the engine's
// own limits.
var (
	// SharedBuffers is the size of the shared buffer pool, in 8kB pages.
	SharedBuffers = RegisterIntSetting("shared_buffers",
		"number of shared memory buffers", 16384, 16, math.MaxInt32/2)

	// TempBuffers is the per-session buffer count for temporary tables.
	TempBuffers = RegisterIntSetting("temp_buffers",
		"maximum number of temporary buffers used by each session", 1024, 100, math.MaxInt32/2)

	// WorkMem is the memory, in kB, a sort or hash operation may use before
	// spilling to disk.
	WorkMem = RegisterIntSetting("work_mem",
		"maximum memory to be used for query workspaces, in kB", 4096, 64, math.MaxInt32)

	HashMemMultiplier = RegisterFloatSetting("hash_mem_multiplier",
		"multiple of work_mem to use for hash tables", 2.0, 1.0, 1000.0)

	// EffectiveIOConcurrency is the number of concurrent disk requests the
	// engine assumes it can issue.
	EffectiveIOConcurrency = RegisterIntSetting("effective_io_concurrency",
		"number of simultaneous requests that can be handled efficiently by the disk subsystem", 1, 0, 1000)
)
