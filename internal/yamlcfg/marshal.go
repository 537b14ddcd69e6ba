package yamlcfg

import (
	"fmt"
	"sort"

	"github.com/vk/chainline/internal/config"
	"github.com/vk/chainline/internal/settings"
	"gopkg.in/yaml.v3"
)

// Marshal serializes a configuration model to YAML. Pipelines are emitted
// in name order so output is deterministic; loading the result back yields
// a model that validates and executes identically.
func Marshal(model *config.Model) ([]byte, error) {
	names := make([]string, 0, len(model.Pipelines))
	for name := range model.Pipelines {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := file{}
	for _, name := range names {
		p := model.Pipelines[name]
		node := pipeline{Name: p.Name}
		for _, desc := range p.Steps {
			sn := stepNode{
				Type:    desc.Type,
				Name:    desc.Name,
				Retries: desc.Retry.Attempts,
			}
			if desc.Retry.Delay > 0 {
				sn.RetryDelay = desc.Retry.Delay.String()
			}
			if len(desc.Settings) > 0 {
				sn.Settings = make(map[string]any, len(desc.Settings))
				for key, val := range desc.Settings {
					native, err := settings.ToNative(val)
					if err != nil {
						return nil, fmt.Errorf("pipeline %q, step %q, setting %q: %w", p.Name, desc.DisplayName(), key, err)
					}
					sn.Settings[key] = native
				}
			}
			node.Steps = append(node.Steps, sn)
		}
		doc.Pipelines = append(doc.Pipelines, node)
	}

	return yaml.Marshal(&doc)
}
