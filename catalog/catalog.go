// Package catalog reads the field catalog: the static document that names
// every recordable field of each wizard stage. The catalog only supplies
// labels and input limits; it never changes what the match record holds.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

type Stage string

const (
	Prematch Stage = "prematch"
	Auton    Stage = "auton"
	Teleop   Stage = "teleop"
	Endgame  Stage = "endgame"
)

var Stages = []Stage{Prematch, Auton, Teleop, Endgame}

var ErrMalformed = errors.New("malformed field catalog")

//go:embed reefscape.yaml
var defaultDocument []byte

type Catalog struct {
	DataFormat string  `yaml:"dataFormat"`
	Title      string  `yaml:"title"`
	PageTitle  string  `yaml:"page_title"`
	CheckboxAs string  `yaml:"checkboxAs"`
	Prematch   []Field `yaml:"prematch"`
	Auton      []Field `yaml:"auton"`
	Teleop     []Field `yaml:"teleop"`
	Endgame    []Field `yaml:"endgame"`
}

type Field struct {
	Name             string  `yaml:"name"`
	Code             string  `yaml:"code"`
	Type             string  `yaml:"type"`
	Choices          Choices `yaml:"choices,omitempty"`
	DefaultValue     string  `yaml:"defaultValue,omitempty"`
	Required         Flag    `yaml:"required,omitempty"`
	Size             int     `yaml:"size,omitempty"`
	MaxSize          int     `yaml:"maxSize,omitempty"`
	Min              *int    `yaml:"min,omitempty"`
	Max              *int    `yaml:"max,omitempty"`
	Filename         string  `yaml:"filename,omitempty"`
	ClickRestriction string  `yaml:"clickRestriction,omitempty"`
	Shape            string  `yaml:"shape,omitempty"`
	Diameter         int     `yaml:"diameter,omitempty"`
}

type Choice struct {
	Code  string
	Label string
}

// Choices keeps the order the document lists them in.
type Choices []Choice

func (c *Choices) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: choices must be a mapping", node.Line)
	}
	out := make(Choices, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: choice must map a code to a label", key.Line)
		}
		out = append(out, Choice{Code: key.Value, Label: plainText(value.Value)})
	}
	*c = out
	return nil
}

func (c Choices) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, choice := range c {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: choice.Code},
			&yaml.Node{Kind: yaml.ScalarNode, Value: choice.Label},
		)
	}
	return node, nil
}

// Flag accepts both booleans and the quoted "true"/"false" the catalog uses.
type Flag bool

func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	v, err := strconv.ParseBool(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: expected true or false, got %q", node.Line, node.Value)
	}
	*f = Flag(v)
	return nil
}

// plainText strips markup such as <br> from a catalog label.
func plainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}

// Parse decodes a catalog in YAML or JSON form. Every failure wraps ErrMalformed.
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &c, nil
}

func Default() *Catalog {
	c, err := Parse(strings.NewReader(string(defaultDocument)))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

func (c *Catalog) validate() error {
	var errs []error
	seen := map[string]Stage{}
	for _, stage := range Stages {
		fields := c.Fields(stage)
		if len(fields) == 0 {
			errs = append(errs, fmt.Errorf("stage %q has no fields", stage))
		}
		for i, f := range fields {
			if f.Code == "" || f.Name == "" || f.Type == "" {
				errs = append(errs, fmt.Errorf("stage %q field %d: name, code and type are required", stage, i))
				continue
			}
			if other, dup := seen[f.Code]; dup {
				errs = append(errs, fmt.Errorf("field code %q appears in both %q and %q", f.Code, other, stage))
			}
			seen[f.Code] = stage
			if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
				errs = append(errs, fmt.Errorf("field %q: min %d is greater than max %d", f.Code, *f.Min, *f.Max))
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Catalog) Fields(stage Stage) []Field {
	switch stage {
	case Prematch:
		return c.Prematch
	case Auton:
		return c.Auton
	case Teleop:
		return c.Teleop
	case Endgame:
		return c.Endgame
	default:
		return nil
	}
}

func (c *Catalog) Field(stage Stage, code string) (Field, bool) {
	for _, f := range c.Fields(stage) {
		if f.Code == code {
			return f, true
		}
	}
	return Field{}, false
}

// Label returns the display name of a field, or fallback when the catalog
// does not list it.
func (c *Catalog) Label(stage Stage, code, fallback string) string {
	if c == nil {
		return fallback
	}
	if f, ok := c.Field(stage, code); ok && f.Name != "" {
		return f.Name
	}
	return fallback
}

// Loader reads a catalog from Path, or the embedded REEFSCAPE catalog when
// Path is empty.
type Loader struct {
	Path string
}

func (l Loader) Load() (*Catalog, error) {
	if l.Path == "" {
		return Parse(strings.NewReader(string(defaultDocument)))
	}
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open field catalog: %w", err)
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	return c, nil
}
