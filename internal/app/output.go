package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/fsutil"
)

// Names of the files and directories inside a run's output directory.
const (
	configCopyStem = "cfg"
	logFileName    = "log.txt"
	scenesDirName  = "scenes"

	referenceSuffix = "-reference"
	dateLayout      = "2006-01-02-150405"
)

// outputDirName is the configured name, or the configuration file stem,
// optionally suffixed with the start time of the run.
func outputDirName(model *config.Model, now time.Time) string {
	name := model.Settings.Name
	if name == "" {
		base := filepath.Base(model.SourcePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if model.Settings.OutputDirDate {
		name += "-" + now.Format(dateLayout)
	}
	return name
}

// createOutputDir creates the run's output directory and copies the
// configuration file into it.
func createOutputDir(model *config.Model, now time.Time) (string, error) {
	dir := filepath.Join(model.ResolvePath(model.Settings.OutputDir), outputDirName(model, now))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	dst := filepath.Join(dir, configCopyStem+filepath.Ext(model.SourcePath))
	if err := fsutil.CopyFile(model.SourcePath, dst); err != nil {
		return "", fmt.Errorf("copying configuration: %w", err)
	}
	return dir, nil
}
