package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/templpad/templpad/compiler/models"
)

// maxSourceFileSize skips files too large to be playground input.
const maxSourceFileSize = 100 * 1024

// LoadProjectFiles walks rootDir and collects playground source files:
// .tpl files as templates, .js files as plain source. Paths are relative to
// rootDir with forward slashes and the result is ordered deterministically:
// sorted, except a top-level main.tpl is moved to the front so it receives
// the provider scaffolding.
func LoadProjectFiles(rootDir string) ([]models.CodeFile, error) {
	ignorePatterns, err := GetIgnorePatterns(rootDir)
	if err != nil {
		return nil, err
	}

	var files []models.CodeFile
	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relativePath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		relativePath = strings.ReplaceAll(relativePath, "\\", "/")

		if IsDefaultIgnored(relativePath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsIgnored(relativePath, ignorePatterns) {
			return nil
		}

		var fileType models.FileType
		switch filepath.Ext(relativePath) {
		case ".tpl":
			fileType = models.Template
		case ".js":
			fileType = models.PlainSource
		default:
			return nil
		}

		fileInfo, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to get file info: %s, error: %w", relativePath, err)
		}
		if fileInfo.Size() > maxSourceFileSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %s, error: %w", relativePath, err)
		}

		files = append(files, models.CodeFile{
			Path:    relativePath,
			Content: string(content),
			Type:    fileType,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	for i, f := range files {
		if f.Path == "main.tpl" {
			entry := files[i]
			copy(files[1:i+1], files[0:i])
			files[0] = entry
			break
		}
	}

	return files, nil
}
