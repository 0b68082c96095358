// Package contractio reads and writes contract documents. Contracts are
// declarative configuration; pipelines keep them next to the code as YAML
// (or JSON) and load them at startup:
//
//	name: raw-users
//	nullable: false
//	schema:
//	  age: integer
//	  score: float
//	ranges:
//	  age: [18, 75]
//	distribution:
//	  score: normal
package contractio

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	datacontract "github.com/reoring/datacontract"
)

// Document is the wire form of a contract definition.
type Document struct {
	Name         string               `yaml:"name" json:"name"`
	Nullable     *bool                `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	Schema       map[string]string    `yaml:"schema" json:"schema"`
	Ranges       map[string][]float64 `yaml:"ranges,omitempty" json:"ranges,omitempty"`
	Distribution map[string]string    `yaml:"distribution,omitempty" json:"distribution,omitempty"`
}

// Def resolves the document into a contract definition. Type tags and range
// tuples are checked here; the cross-field consistency checks stay in
// datacontract.New.
func (d Document) Def() (datacontract.Def, error) {
	def := datacontract.Def{
		Name:     d.Name,
		Nullable: d.Nullable,
	}
	if len(d.Schema) > 0 {
		def.Schema = make(map[string]datacontract.LogicalType, len(d.Schema))
		for col, tag := range d.Schema {
			lt, ok := datacontract.ParseLogicalType(tag)
			if !ok {
				return datacontract.Def{}, fmt.Errorf("contractio: column %q: unknown type tag %q", col, tag)
			}
			def.Schema[col] = lt
		}
	}
	if len(d.Ranges) > 0 {
		def.Ranges = make(map[string]datacontract.Range, len(d.Ranges))
		for col, pair := range d.Ranges {
			if len(pair) != 2 {
				return datacontract.Def{}, fmt.Errorf("contractio: column %q: range must be a [min, max] pair, got %d element(s)", col, len(pair))
			}
			def.Ranges[col] = datacontract.Range{Min: pair[0], Max: pair[1]}
		}
	}
	if len(d.Distribution) > 0 {
		def.Distribution = make(map[string]datacontract.Distribution, len(d.Distribution))
		for col, tag := range d.Distribution {
			def.Distribution[col] = datacontract.Distribution(tag)
		}
	}
	return def, nil
}

// DecodeYAML parses a YAML contract document and builds the Contract.
func DecodeYAML(data []byte) (*datacontract.Contract, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("contractio: decoding YAML: %w", err)
	}
	return build(doc)
}

// DecodeJSON parses a JSON contract document and builds the Contract.
func DecodeJSON(data []byte) (*datacontract.Contract, error) {
	var doc Document
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("contractio: decoding JSON: %w", err)
	}
	return build(doc)
}

func build(doc Document) (*datacontract.Contract, error) {
	def, err := doc.Def()
	if err != nil {
		return nil, err
	}
	return datacontract.New(def)
}

// EncodeYAML renders a contract back into its YAML document form.
func EncodeYAML(c *datacontract.Contract) ([]byte, error) {
	return yaml.Marshal(documentOf(c))
}

// EncodeJSON renders a contract back into its JSON document form.
func EncodeJSON(c *datacontract.Contract) ([]byte, error) {
	return gojson.MarshalIndent(documentOf(c), "", "  ")
}

func documentOf(c *datacontract.Contract) Document {
	doc := Document{Name: c.Name(), Schema: map[string]string{}}
	for col, lt := range c.Schema() {
		doc.Schema[col] = lt.String()
	}
	if rs := c.Ranges(); len(rs) > 0 {
		doc.Ranges = make(map[string][]float64, len(rs))
		for col, r := range rs {
			doc.Ranges[col] = []float64{r.Min, r.Max}
		}
	}
	if ds := c.Distribution(); len(ds) > 0 {
		doc.Distribution = make(map[string]string, len(ds))
		for col, d := range ds {
			doc.Distribution[col] = string(d)
		}
	}
	if !c.Nullable() {
		f := false
		doc.Nullable = &f
	}
	return doc
}
