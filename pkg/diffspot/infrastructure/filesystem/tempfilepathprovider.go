package filesystem

import (
	"os"
	"path/filepath"

	"kgeyst.com/diffspot/pkg/common"
)

// ConfigKeyTempDirectoryPath where normalized images and downloads are staged
const ConfigKeyTempDirectoryPath = "tempDirectoryPath"

type TempFilePathProvider struct {
	tempDirectoryPath string
}

func NewTempFilePathProvider(config *common.Config) *TempFilePathProvider {
	return &TempFilePathProvider{
		tempDirectoryPath: config.GetStringOrDefault(ConfigKeyTempDirectoryPath, os.TempDir()),
	}
}

func (t *TempFilePathProvider) GetTempFilePath(fileName string) string {
	return filepath.Join(t.tempDirectoryPath, fileName)
}
