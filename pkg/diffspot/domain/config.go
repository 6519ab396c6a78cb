package domain

// A list of built-in config keys supported by the comparison core. Settings owned by
// a specific backend or frontend are declared next to the component they configure.

const (
	// ConfigKeyLogPath file path where to save the logs
	ConfigKeyLogPath = "logPath"
	// ConfigKeyLeftImagePath default path of the first scene image (tagged LEFT)
	ConfigKeyLeftImagePath = "leftImagePath"
	// ConfigKeyRightImagePath default path of the second scene image (tagged RIGHT)
	ConfigKeyRightImagePath = "rightImagePath"
	// ConfigKeyDiffImagePath default path of the precomputed difference heatmap which is
	// passed to question generation as a hint (it is not consumed anywhere else)
	ConfigKeyDiffImagePath = "diffImagePath"
)
