package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/grovetools/navcore/channels"
	"github.com/grovetools/navcore/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "navcore.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledValidator compiles the reflected schema once per process.
func compiledValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		data, err := GenerateSchema()
		if err != nil {
			compileErr = fmt.Errorf("failed to generate schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaResource, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaResource)
	})
	return compiledSchema, compileErr
}

// Validate checks the configuration against the schema and the channel
// rules the schema cannot express.
func (c *Config) Validate() error {
	doc, err := c.toDocument()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to encode configuration for validation")
	}
	if err := ValidateDocument(doc); err != nil {
		return err
	}
	return c.validateChannels()
}

// ValidateDocument checks a decoded YAML, TOML or JSON document against the
// configuration schema. A nil document is an empty configuration.
func ValidateDocument(doc interface{}) error {
	schema, err := compiledValidator()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var messages []string
			collectErrors(validationErr, &messages)
			return errors.ConfigInvalid("schema validation failed:\n" + strings.Join(messages, "\n"))
		}
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}
	return nil
}

func (c *Config) validateChannels() error {
	keys := make([]string, 0, len(c.Channels))
	for key := range c.Channels {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cat, ok := channels.ParseCategory(key)
		if !ok || string(cat) != key {
			return errors.UnknownCategory(key)
		}
		d := c.Channels[key]
		if cat == channels.GPUDriver && d.Development != "" {
			return errors.ConfigInvalid("the gpu_driver category has no development channel").
				WithDetail("category", key)
		}
		if d.Release != "" && d.Release == d.Development {
			return errors.ConfigInvalid("release and development channels must differ").
				WithDetail("category", key)
		}
	}
	return nil
}

// collectErrors flattens a validation error tree into readable lines.
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*messages = append(*messages, fmt.Sprintf("- %s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
