package contractio

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	datacontract "github.com/reoring/datacontract"
)

// ModelDocument is the wire form of a paired model contract.
type ModelDocument struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	InputSchema map[string]string    `yaml:"input_schema" json:"input_schema"`
	InputRanges map[string][]float64 `yaml:"input_ranges,omitempty" json:"input_ranges,omitempty"`

	OutputSchema map[string]string    `yaml:"output_schema" json:"output_schema"`
	OutputRanges map[string][]float64 `yaml:"output_ranges,omitempty" json:"output_ranges,omitempty"`
}

// Def resolves the document into a model contract definition.
func (d ModelDocument) Def() (datacontract.ModelDef, error) {
	inSchema, err := resolveSchema("input", d.InputSchema)
	if err != nil {
		return datacontract.ModelDef{}, err
	}
	outSchema, err := resolveSchema("output", d.OutputSchema)
	if err != nil {
		return datacontract.ModelDef{}, err
	}
	inRanges, err := resolveRanges("input", d.InputRanges)
	if err != nil {
		return datacontract.ModelDef{}, err
	}
	outRanges, err := resolveRanges("output", d.OutputRanges)
	if err != nil {
		return datacontract.ModelDef{}, err
	}
	return datacontract.ModelDef{
		Name:         d.Name,
		Description:  d.Description,
		InputSchema:  inSchema,
		InputRanges:  inRanges,
		OutputSchema: outSchema,
		OutputRanges: outRanges,
	}, nil
}

// DecodeModelYAML parses a YAML model document and builds the ModelContract.
func DecodeModelYAML(data []byte) (*datacontract.ModelContract, error) {
	var doc ModelDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("contractio: decoding YAML: %w", err)
	}
	return buildModel(doc)
}

// DecodeModelJSON parses a JSON model document and builds the ModelContract.
func DecodeModelJSON(data []byte) (*datacontract.ModelContract, error) {
	var doc ModelDocument
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("contractio: decoding JSON: %w", err)
	}
	return buildModel(doc)
}

func buildModel(doc ModelDocument) (*datacontract.ModelContract, error) {
	def, err := doc.Def()
	if err != nil {
		return nil, err
	}
	return datacontract.NewModel(def)
}

func resolveSchema(side string, raw map[string]string) (map[string]datacontract.LogicalType, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]datacontract.LogicalType, len(raw))
	for col, tag := range raw {
		lt, ok := datacontract.ParseLogicalType(tag)
		if !ok {
			return nil, fmt.Errorf("contractio: %s column %q: unknown type tag %q", side, col, tag)
		}
		out[col] = lt
	}
	return out, nil
}

func resolveRanges(side string, raw map[string][]float64) (map[string]datacontract.Range, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]datacontract.Range, len(raw))
	for col, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf("contractio: %s column %q: range must be a [min, max] pair, got %d element(s)", side, col, len(pair))
		}
		out[col] = datacontract.Range{Min: pair[0], Max: pair[1]}
	}
	return out, nil
}
