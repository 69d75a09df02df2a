package main

import (
	"os"

	"github.com/fwojciec/ao3doc"
	"github.com/fwojciec/ao3doc/goquery"
	"gopkg.in/yaml.v3"
)

// selectorsFile is the YAML layout of a selector override file:
//
//	selectors:
//	  title: "h2.title"
//	  body: "#chapters p"
type selectorsFile struct {
	Selectors map[string]string `yaml:"selectors"`
}

// loadSelectors reads selector overrides from a YAML file and builds a
// registry from them.
func loadSelectors(path string) (*goquery.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f selectorsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, ao3doc.Errorf(ao3doc.EINVALID, "invalid selectors file: %v", err)
	}

	return goquery.NewRegistry(f.Selectors)
}
