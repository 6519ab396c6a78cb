package llavacpp

import (
	"bytes"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"kgeyst.com/diffspot/pkg/common"
)

const (
	// ConfigKeyBinaryPath path to the llava.cpp binary
	ConfigKeyBinaryPath = "llavaBinaryPath"
	// ConfigKeyModelPath path to the model weights
	ConfigKeyModelPath = "llavaModelPath"
	// ConfigKeyProjectorPath path to the multimodal projector weights
	ConfigKeyProjectorPath = "llavaProjectorPath"
	// ConfigKeyTemperature how creative the output is; VQA wants it near-deterministic
	ConfigKeyTemperature = "llavaTemperature"
)

// VisionModel answers prompts against image files by shelling out to llava.cpp.
// Running it as a subprocess per request keeps crashes in the native code from
// taking the whole process down.
type VisionModel struct {
	mutex         sync.Mutex
	binaryPath    string
	modelPath     string
	projectorPath string
	temperature   float64
}

func NewVisionModel(config *common.Config) *VisionModel {
	return &VisionModel{
		binaryPath:    config.GetStringOrDefault(ConfigKeyBinaryPath, "./llava.cpp"),
		modelPath:     config.GetStringOrDefault(ConfigKeyModelPath, "./llava.bin"),
		projectorPath: config.GetStringOrDefault(ConfigKeyProjectorPath, "./llava-proj.bin"),
		temperature:   config.GetFloatOrDefault(ConfigKeyTemperature, 0.1),
	}
}

func (v *VisionModel) Infer(filePath, prompt string) (string, error) {
	// Only 1 request can be processed at a time currently because commodity hardware
	// can't usually process two requests simultaneously due to low amounts of VRAM.
	v.mutex.Lock()
	defer v.mutex.Unlock()
	cmd := exec.Command(
		v.binaryPath,
		"-m", v.modelPath,
		"--mmproj", v.projectorPath,
		"--image", filePath,
		"--temp", strconv.FormatFloat(v.temperature, 'f', -1, 64),
		"-p", prompt,
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return removeGarbage(out.String()), nil
}

// TODO can we get rid of the hack?
func removeGarbage(result string) string {
	const anchor = "per image patch)"
	hackIndex := strings.Index(result, anchor)
	if hackIndex != -1 {
		result = result[hackIndex+len(anchor):]
	}
	return strings.TrimSpace(result)
}
