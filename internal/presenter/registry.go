package presenter

import (
	"embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.yaml
var schemasFS embed.FS

type schemaIndex struct {
	byEntity map[string]*EntitySchema // "blog_post" → schema
	byType   map[string]*EntitySchema // "BlogPost" → schema
}

// loadSchemas parses every embedded YAML schema once. Malformed files are
// skipped rather than failing the whole index, so one bad schema does not
// take out text output for every entity.
var loadSchemas = sync.OnceValue(func() schemaIndex {
	idx := schemaIndex{
		byEntity: make(map[string]*EntitySchema),
		byType:   make(map[string]*EntitySchema),
	}

	entries, err := schemasFS.ReadDir("schemas")
	if err != nil {
		return idx
	}
	for _, entry := range entries {
		data, err := schemasFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			continue
		}
		schema := new(EntitySchema)
		if err := yaml.Unmarshal(data, schema); err != nil {
			continue
		}
		idx.byEntity[schema.Entity] = schema
		if schema.TypeKey != "" {
			idx.byType[schema.TypeKey] = schema
		}
	}
	return idx
})

// LookupByName returns a schema by entity name. Hyphens are accepted in
// place of underscores ("blog-post" and "blog_post" are equivalent).
func LookupByName(name string) *EntitySchema {
	return loadSchemas().byEntity[strings.ReplaceAll(name, "-", "_")]
}

// LookupByTypeKey returns a schema by API type key (e.g. "BlogPost").
func LookupByTypeKey(typeKey string) *EntitySchema {
	return loadSchemas().byType[typeKey]
}

// Detect resolves the schema for a payload. An explicit entity hint wins;
// otherwise the "type" field of the record (or of the first record, for
// lists) decides. Returns nil when nothing matches.
func Detect(data any, entityHint string) *EntitySchema {
	if entityHint != "" {
		if s := LookupByName(entityHint); s != nil {
			return s
		}
	}

	var record map[string]any
	switch d := data.(type) {
	case map[string]any:
		record = d
	case []map[string]any:
		if len(d) > 0 {
			record = d[0]
		}
	}
	if typeKey, ok := record["type"].(string); ok {
		return LookupByTypeKey(typeKey)
	}
	return nil
}
