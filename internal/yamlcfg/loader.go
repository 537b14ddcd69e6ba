package yamlcfg

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vk/chainline/internal/config"
	"github.com/vk/chainline/internal/ctxlog"
	"github.com/vk/chainline/internal/fsutil"
	"github.com/vk/chainline/internal/settings"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// file is the YAML document structure for pipeline configuration.
type file struct {
	Pipelines []pipeline `yaml:"pipelines"`
}

type pipeline struct {
	Name  string     `yaml:"name"`
	Steps []stepNode `yaml:"steps"`
}

type stepNode struct {
	Type       string         `yaml:"type"`
	Name       string         `yaml:"name,omitempty"`
	Settings   map[string]any `yaml:"settings,omitempty"`
	Retries    int            `yaml:"retries,omitempty"`
	RetryDelay string         `yaml:"retry_delay,omitempty"`
}

// Loader implements config.Loader for YAML pipeline files.
type Loader struct{}

// NewLoader creates a new YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .yaml/.yml file under the given paths (files or
// directories) and merges them into one configuration model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := collectFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .yaml pipeline files found in %v", paths)
	}
	logger.Debug("Found YAML files to load.", "files", files)

	model := config.NewModel()
	for _, filePath := range files {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		fileModel, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", filePath, err)
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("in %s: %w", filePath, err)
		}
		logger.Debug("Loaded pipeline definitions from YAML file.", "file", filePath)
	}

	logger.Info("Configuration loaded.", "pipelines", len(model.Pipelines))
	return model, nil
}

// Parse translates one YAML document into the agnostic config model.
func Parse(data []byte) (*config.Model, error) {
	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	model := config.NewModel()
	for _, p := range doc.Pipelines {
		if p.Name == "" {
			return nil, fmt.Errorf("pipeline without a name")
		}
		translated, err := translatePipeline(p)
		if err != nil {
			return nil, err
		}
		if _, exists := model.Pipelines[p.Name]; exists {
			return nil, fmt.Errorf("duplicate pipeline name: %s", p.Name)
		}
		model.Pipelines[p.Name] = translated
	}
	return model, nil
}

func translatePipeline(p pipeline) (*config.Pipeline, error) {
	out := &config.Pipeline{Name: p.Name}
	for _, s := range p.Steps {
		desc, err := translateStep(s)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", p.Name, err)
		}
		out.Steps = append(out.Steps, desc)
	}
	return out, nil
}

func translateStep(s stepNode) (*config.StepDescriptor, error) {
	if s.Type == "" {
		return nil, fmt.Errorf("step without a type")
	}
	desc := &config.StepDescriptor{Type: s.Type, Name: s.Name}

	if len(s.Settings) > 0 {
		vals := make(map[string]cty.Value, len(s.Settings))
		for key, native := range s.Settings {
			val, err := settings.FromNative(native)
			if err != nil {
				return nil, fmt.Errorf("step %q, setting %q: %w", desc.DisplayName(), key, err)
			}
			vals[key] = val
		}
		desc.Settings = vals
	}

	if s.Retries < 0 {
		return nil, fmt.Errorf("step %q: retries cannot be negative", desc.DisplayName())
	}
	desc.Retry.Attempts = s.Retries
	if s.RetryDelay != "" {
		delay, err := time.ParseDuration(s.RetryDelay)
		if err != nil {
			return nil, fmt.Errorf("step %q: invalid retry_delay: %w", desc.DisplayName(), err)
		}
		desc.Retry.Delay = delay
	}
	return desc, nil
}

// collectFiles expands each path into the YAML files it denotes.
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
		found, err := fsutil.FindFilesByExtension(path, ".yaml", ".yml")
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}
