package greywater

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicyConfig is the YAML shape of a policy. Every list extends a blank
// policy, so a config document describes the whole allowlist, not a diff:
//
//	elements: [p, a, b, i, ul, ol, li, img]
//	attributes: [title, class]
//	element_attributes:
//	  img: [alt, width, height]
//	url_attributes: [href]
//	srcset_attributes: [srcset]
//	url_schemes: [https, mailto]
//	skip_content: [frame]
type PolicyConfig struct {
	Elements          []string            `yaml:"elements"`
	Attributes        []string            `yaml:"attributes"`
	ElementAttributes map[string][]string `yaml:"element_attributes"`
	URLAttributes     []string            `yaml:"url_attributes"`
	SrcSetAttributes  []string            `yaml:"srcset_attributes"`
	URLSchemes        []string            `yaml:"url_schemes"`
	SkipContent       []string            `yaml:"skip_content"`
}

// Policy builds the immutable policy described by the config.
func (self *PolicyConfig) Policy() *Policy {
	p := NewPolicy().
		AllowElements(self.Elements...).
		AllowAttrs(self.Attributes...).
		AllowURLAttrs(self.URLAttributes...).
		AllowSrcSetAttrs(self.SrcSetAttributes...).
		AllowURLSchemes(self.URLSchemes...).
		SkipElementsContent(self.SkipContent...)
	for element, attrs := range self.ElementAttributes {
		p.AllowElementAttrs(element, attrs...)
	}
	return p
}

// LoadPolicy reads a YAML policy document from r. Unknown keys are
// rejected so that a typoed allowlist fails loudly instead of silently
// allowing nothing.
func LoadPolicy(r io.Reader) (*Policy, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg PolicyConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf(genericErrMsg, err)
	}
	return cfg.Policy(), nil
}

// LoadPolicyFile reads a YAML policy document from the named file.
func LoadPolicyFile(path string) (*Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf(genericErrMsg, err)
	}
	defer f.Close()
	return LoadPolicy(f)
}
