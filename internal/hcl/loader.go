package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/chainline/internal/config"
	"github.com/vk/chainline/internal/ctxlog"
	"github.com/vk/chainline/internal/fsutil"
	"github.com/vk/chainline/internal/schema"
)

// Loader implements config.Loader for HCL pipeline files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file under the given paths (files or directories)
// and merges them into one configuration model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := collectFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl pipeline files found in %v", paths)
	}
	logger.Debug("Found HCL files to load.", "files", files)

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, filePath := range files {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var fileSchema schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &fileSchema); diags.HasErrors() {
			return nil, fmt.Errorf("invalid pipeline file %s: %w", filePath, diags)
		}

		fileModel, err := l.translateFile(&fileSchema)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", filePath, err)
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("in %s: %w", filePath, err)
		}
		logger.Debug("Loaded pipeline definitions from HCL file.", "file", filePath)
	}

	logger.Info("Configuration loaded.", "pipelines", len(model.Pipelines))
	return model, nil
}

// collectFiles expands each path into the .hcl files it denotes: a file
// path is taken as-is, a directory is walked recursively.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}
