// Package yaml loads htmlproof configuration files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fwojciec/htmlproof"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk form of htmlproof.Config.
//
//	base_url: https://example.com
//	extensions: [.html, .htm]
//	swap_attributes:
//	  img:
//	    - [data-src, src]
//	swap_urls:
//	  - pattern: ^https://example\.com
//	    replacement: ""
//	ignore_urls:
//	  - /^https?:\/\/localhost/
type fileConfig struct {
	BaseURL         string                `yaml:"base_url" validate:"omitempty,url"`
	DisableExternal bool                  `yaml:"disable_external"`
	Extensions      []string              `yaml:"extensions" validate:"dive,startswith=."`
	SwapAttributes  map[string][][]string `yaml:"swap_attributes" validate:"dive,keys,required,endkeys,dive,len=2,dive,required"`
	SwapURLs        []urlSwap             `yaml:"swap_urls" validate:"dive"`
	IgnoreURLs      []string              `yaml:"ignore_urls" validate:"dive,required"`
}

type urlSwap struct {
	Pattern     string `yaml:"pattern" validate:"required"`
	Replacement string `yaml:"replacement"`
}

var validate = validator.New()

// LoadConfig reads and parses a configuration file.
// Returns ENOTFOUND if the file does not exist.
func LoadConfig(path string) (*htmlproof.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, htmlproof.Errorf(htmlproof.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration on top of htmlproof.NewConfig
// defaults. Unknown keys are rejected.
// Returns EINVALID if the document is malformed or fails validation.
func ParseConfig(data []byte) (*htmlproof.Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, htmlproof.Errorf(htmlproof.EINVALID, "invalid config: %v", err)
	}

	if err := validate.Struct(&fc); err != nil {
		return nil, htmlproof.Errorf(htmlproof.EINVALID, "invalid config: %s", formatValidationError(err))
	}

	cfg := htmlproof.NewConfig()
	cfg.BaseURL = fc.BaseURL
	cfg.DisableExternal = fc.DisableExternal
	if len(fc.Extensions) > 0 {
		cfg.Extensions = fc.Extensions
	}

	for tag, pairs := range fc.SwapAttributes {
		for _, pair := range pairs {
			cfg.SwapAttributes[tag] = append(cfg.SwapAttributes[tag], htmlproof.AttributeSwap{Old: pair[0], New: pair[1]})
		}
	}

	for _, s := range fc.SwapURLs {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, htmlproof.Errorf(htmlproof.EINVALID, "invalid swap pattern %q: %v", s.Pattern, err)
		}
		cfg.SwapURLs = append(cfg.SwapURLs, htmlproof.URLSwap{Pattern: re, Replacement: s.Replacement})
	}

	for _, s := range fc.IgnoreURLs {
		p, err := htmlproof.ParseURLPattern(s)
		if err != nil {
			return nil, err
		}
		cfg.IgnoreURLs = append(cfg.IgnoreURLs, p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatValidationError renders validator errors as "field: rule" pairs.
func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}
