package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Generation methods.
const (
	MethodRadius    = "radius"
	MethodCount     = "count"
	MethodNeighbour = "neighbour"
	MethodLocal     = "local"
	MethodInCell    = "in_cell"
)

// Decoration modes.
const (
	DecorateNone    = "none"
	DecoratePartial = "partial"
	DecorateFull    = "full"
)

// File is a project file.
type File struct {
	Title string `yaml:"title"`
	// Lattice rows are the lattice vectors a, b, c.
	Lattice        [3][3]float64  `yaml:"lattice" validate:"required"`
	Basis          []Site         `yaml:"basis" validate:"required,min=1,dive"`
	Tol            float64        `yaml:"tol" validate:"gte=0"`
	Orbits         Orbits         `yaml:"orbits"`
	BasisFunctions map[string]any `yaml:"basis_functions"`
}

// Site is a basis site in fractional coordinates.
type Site struct {
	Coordinate [3]float64 `yaml:"coordinate"`
	Occupants  []string   `yaml:"occupants" validate:"required,min=1,dive,required"`
}

// Orbits selects the generation method and its cutoffs.
type Orbits struct {
	Method           string    `yaml:"method" validate:"oneof=radius count neighbour local in_cell"`
	MaxLength        []float64 `yaml:"max_length" validate:"omitempty,dive,gte=0"`
	MaxNumSites      int       `yaml:"max_num_sites" validate:"gte=0"`
	MinLength        float64   `yaml:"min_length" validate:"gte=0"`
	MinNumComponents int       `yaml:"min_num_components" validate:"gte=0"`

	// MaxClusters is the pair orbit count of the count method.
	MaxClusters int `yaml:"max_clusters" validate:"required_if=Method count,gte=0"`
	// Shells are the neighbour shells of the neighbour method.
	Shells []int `yaml:"shells" validate:"required_if=Method neighbour,dive,gte=1"`

	Phenomenal             [][3]float64 `yaml:"phenomenal" validate:"required_if=Method local"`
	IncludePhenomenalSites bool         `yaml:"include_phenomenal_sites"`
	Supercell              *[3][3]int   `yaml:"supercell" validate:"required_if=Method in_cell"`

	Custom []Custom `yaml:"custom" validate:"dive"`

	Decorate string `yaml:"decorate" validate:"oneof=none partial full"`
	Hop      bool   `yaml:"hop"`
}

// Custom is an extra cluster added after generation.
type Custom struct {
	Sites              [][3]float64 `yaml:"sites" validate:"required,min=1"`
	IncludeSubclusters bool         `yaml:"include_subclusters"`
}

var validate = validator.New()

// Load parses, defaults and validates a project file. Unknown keys are
// rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// ReadFile loads the project file at path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

func (f *File) applyDefaults() {
	if f.Orbits.Method == "" {
		f.Orbits.Method = MethodRadius
	}
	if f.Orbits.Decorate == "" {
		f.Orbits.Decorate = DecorateNone
	}
}

// Validate checks struct tags and the rules that span fields.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, describe(err))
	}
	o := f.Orbits
	switch o.Method {
	case MethodRadius, MethodLocal, MethodInCell:
		if len(o.MaxLength) == 0 {
			return fmt.Errorf("%w: orbits.max_length is required for method %s", ErrInvalid, o.Method)
		}
	case MethodCount, MethodNeighbour:
		if o.MaxNumSites < 2 && len(o.MaxLength) < 3 {
			return fmt.Errorf("%w: method %s needs max_num_sites >= 2", ErrInvalid, o.Method)
		}
	}
	if o.Hop && o.Decorate != DecorateNone {
		return fmt.Errorf("%w: hop and decorate are exclusive", ErrInvalid)
	}

	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Namespace())
		switch e.Tag() {
		case "required", "required_if":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}

	return strings.Join(msgs, "; ")
}
