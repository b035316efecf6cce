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

package cache

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tochemey/extreg/extension"
)

// snapshot is the msgpack document persisted by the cache
type snapshot struct {
	Contributions []*contributionRecord `msgpack:"contributions"`
}

type contributionRecord struct {
	ContributorID   string             `msgpack:"contributor_id"`
	ContributorName string             `msgpack:"contributor_name,omitempty"`
	Bundle          bool               `msgpack:"bundle,omitempty"`
	Timestamp       int64              `msgpack:"timestamp"`
	Translations    map[string]string  `msgpack:"translations,omitempty"`
	Points          []*pointRecord     `msgpack:"points,omitempty"`
	Extensions      []*extensionRecord `msgpack:"extensions,omitempty"`
}

type pointRecord struct {
	Namespace string `msgpack:"namespace"`
	Name      string `msgpack:"name"`
	Label     string `msgpack:"label,omitempty"`
	Schema    string `msgpack:"schema,omitempty"`
}

type extensionRecord struct {
	Namespace string           `msgpack:"namespace"`
	Name      string           `msgpack:"name,omitempty"`
	Label     string           `msgpack:"label,omitempty"`
	PointID   string           `msgpack:"point_id"`
	Elements  []*elementRecord `msgpack:"elements,omitempty"`
}

type elementRecord struct {
	Name       string            `msgpack:"name"`
	Attributes map[string]string `msgpack:"attributes,omitempty"`
	Value      string            `msgpack:"value,omitempty"`
	Children   []*elementRecord  `msgpack:"children,omitempty"`
}

func encodeSnapshot(contributions []*extension.Contribution) ([]byte, error) {
	doc := &snapshot{Contributions: make([]*contributionRecord, 0, len(contributions))}
	for _, contribution := range contributions {
		doc.Contributions = append(doc.Contributions, toContributionRecord(contribution))
	}
	return msgpack.Marshal(doc)
}

func decodeSnapshot(data []byte) ([]*extension.Contribution, error) {
	doc := new(snapshot)
	if err := msgpack.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	contributions := make([]*extension.Contribution, 0, len(doc.Contributions))
	for _, record := range doc.Contributions {
		if record == nil {
			continue
		}
		contributions = append(contributions, record.toContribution())
	}
	return contributions, nil
}

func toContributionRecord(contribution *extension.Contribution) *contributionRecord {
	record := &contributionRecord{
		ContributorID:   contribution.Contributor.ID,
		ContributorName: contribution.Contributor.Name,
		Bundle:          contribution.Contributor.Bundle,
		Translations:    contribution.Translations,
	}
	if !contribution.Timestamp.IsZero() {
		record.Timestamp = contribution.Timestamp.UnixNano()
	}
	for _, point := range contribution.Points {
		record.Points = append(record.Points, &pointRecord{
			Namespace: point.Namespace,
			Name:      point.Name,
			Label:     point.Label,
			Schema:    point.Schema,
		})
	}
	for _, ext := range contribution.Extensions {
		record.Extensions = append(record.Extensions, &extensionRecord{
			Namespace: ext.Namespace,
			Name:      ext.Name,
			Label:     ext.Label,
			PointID:   ext.PointID,
			Elements:  toElementRecords(ext.Elements),
		})
	}
	return record
}

func toElementRecords(elements []*extension.Element) []*elementRecord {
	if len(elements) == 0 {
		return nil
	}
	records := make([]*elementRecord, 0, len(elements))
	for _, element := range elements {
		records = append(records, &elementRecord{
			Name:       element.Name,
			Attributes: element.Attributes,
			Value:      element.Value,
			Children:   toElementRecords(element.Children),
		})
	}
	return records
}

// toContribution rebuilds a persisted contribution. Record contributors are
// restored by the store when the contribution is admitted again.
func (r *contributionRecord) toContribution() *extension.Contribution {
	contribution := &extension.Contribution{
		Contributor: extension.Contributor{
			ID:     r.ContributorID,
			Name:   r.ContributorName,
			Bundle: r.Bundle,
		},
		Translations: r.Translations,
		Persist:      true,
	}
	if r.Timestamp != 0 {
		contribution.Timestamp = time.Unix(0, r.Timestamp)
	}
	for _, point := range r.Points {
		if point == nil {
			continue
		}
		contribution.Points = append(contribution.Points, &extension.Point{
			Namespace: point.Namespace,
			Name:      point.Name,
			Label:     point.Label,
			Schema:    point.Schema,
		})
	}
	for _, ext := range r.Extensions {
		if ext == nil {
			continue
		}
		contribution.Extensions = append(contribution.Extensions, &extension.Extension{
			Namespace: ext.Namespace,
			Name:      ext.Name,
			Label:     ext.Label,
			PointID:   ext.PointID,
			Elements:  fromElementRecords(ext.Elements),
		})
	}
	contribution.Normalize()
	return contribution
}

func fromElementRecords(records []*elementRecord) []*extension.Element {
	if len(records) == 0 {
		return nil
	}
	elements := make([]*extension.Element, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		elements = append(elements, &extension.Element{
			Name:       record.Name,
			Attributes: record.Attributes,
			Value:      record.Value,
			Children:   fromElementRecords(record.Children),
		})
	}
	return elements
}
