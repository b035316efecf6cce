// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package manifest parses the YAML declaration files loaded by the extreg command.
//
// A manifest declares one contribution:
//
//	contributor:
//	  id: org.sample.ui
//	  name: Sample UI
//	persist: true
//	points:
//	  - name: menus
//	    label: Menus
//	extensions:
//	  - name: file
//	    point: org.sample.ui.menus
//	    elements:
//	      - name: menu
//	        attributes: {id: file}
//	        children:
//	          - name: command
//	            value: Open
package manifest

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/tochemey/extreg/extension"
)

// Manifest is the YAML document of a contribution
type Manifest struct {
	Contributor  Contributor       `yaml:"contributor"`
	Persist      *bool             `yaml:"persist,omitempty"`
	Translations map[string]string `yaml:"translations,omitempty"`
	Points       []Point           `yaml:"points,omitempty"`
	Extensions   []Extension       `yaml:"extensions,omitempty"`
}

// Contributor identifies the owner of the manifest
type Contributor struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name,omitempty"`
	Bundle bool   `yaml:"bundle,omitempty"`
}

// Point declares an extension point
type Point struct {
	Namespace string `yaml:"namespace,omitempty"`
	Name      string `yaml:"name"`
	Label     string `yaml:"label,omitempty"`
	Schema    string `yaml:"schema,omitempty"`
}

// Extension declares an extension
type Extension struct {
	Namespace string    `yaml:"namespace,omitempty"`
	Name      string    `yaml:"name,omitempty"`
	Label     string    `yaml:"label,omitempty"`
	Point     string    `yaml:"point"`
	Elements  []Element `yaml:"elements,omitempty"`
}

// Element declares a configuration element
type Element struct {
	Name       string            `yaml:"name"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Value      string            `yaml:"value,omitempty"`
	Children   []Element         `yaml:"children,omitempty"`
}

// Parse decodes a manifest into a contribution. Contributions persist unless
// the manifest sets persist to false.
func Parse(data []byte) (*extension.Contribution, error) {
	var doc Manifest
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if doc.Contributor.ID == "" {
		return nil, fmt.Errorf("contributor.id is required")
	}
	return doc.Contribution(), nil
}

// ReadFile parses the manifest at path. The contribution timestamp is the file
// modification time so that cached contributions can be checked for freshness.
func ReadFile(path string) (*extension.Contribution, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	contribution, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	contribution.Timestamp = info.ModTime()
	return contribution, nil
}

// Contribution converts the manifest
func (m *Manifest) Contribution() *extension.Contribution {
	contribution := &extension.Contribution{
		Contributor: extension.Contributor{
			ID:     m.Contributor.ID,
			Name:   m.Contributor.Name,
			Bundle: m.Contributor.Bundle,
		},
		Translations: m.Translations,
		Persist:      m.Persist == nil || *m.Persist,
	}
	for _, point := range m.Points {
		contribution.Points = append(contribution.Points, &extension.Point{
			Namespace: point.Namespace,
			Name:      point.Name,
			Label:     point.Label,
			Schema:    point.Schema,
		})
	}
	for _, ext := range m.Extensions {
		contribution.Extensions = append(contribution.Extensions, &extension.Extension{
			Namespace: ext.Namespace,
			Name:      ext.Name,
			Label:     ext.Label,
			PointID:   ext.Point,
			Elements:  toElements(ext.Elements),
		})
	}
	return contribution
}

func toElements(elements []Element) []*extension.Element {
	if len(elements) == 0 {
		return nil
	}
	out := make([]*extension.Element, 0, len(elements))
	for _, element := range elements {
		out = append(out, &extension.Element{
			Name:       element.Name,
			Attributes: element.Attributes,
			Value:      element.Value,
			Children:   toElements(element.Children),
		})
	}
	return out
}
