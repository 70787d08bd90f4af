package tables

import (
	"strconv"

	"view-generator/internal/errors"
)

// PropertyKind is the value kind of a named property.
type PropertyKind int

const (
	KindInteger PropertyKind = iota
	KindFloat
	KindBool
	KindTrigger
	KindColor
	KindVector
	KindTexture
)

var kindNames = [...]string{"integer", "float", "bool", "trigger", "color", "vector", "texture"}

func (k PropertyKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "PropertyKind(" + strconv.Itoa(int(k)) + ")"
	}

	return kindNames[k]
}

// NamedProperty is one property a source declares.
type NamedProperty struct {
	Name string
	Kind PropertyKind
}

// PropertyProvider lists the properties declared by the source at
// sourcePath. Errors marked errors.ErrMalformedSource mean the source was
// read but could not be understood.
type PropertyProvider interface {
	Properties(sourcePath string) ([]NamedProperty, error)
}

// Animator parameter type codes as stored in controller files.
const (
	animatorFloat   = 1
	animatorInt     = 3
	animatorBool    = 4
	animatorTrigger = 9
)

// AnimatorController reads the parameters of animator controller files.
// Parameters with an unknown type code or without a name are skipped.
type AnimatorController struct{}

var _ PropertyProvider = AnimatorController{}

// Properties implements PropertyProvider.
func (AnimatorController) Properties(sourcePath string) ([]NamedProperty, error) {
	docs, err := readDocuments(sourcePath)
	if err != nil {
		return nil, err
	}

	var (
		props []NamedProperty
		found bool
	)

	for _, doc := range docs {
		controller := child(doc, "AnimatorController")
		if controller == nil {
			continue
		}

		found = true

		for _, param := range items(child(controller, "m_AnimatorParameters")) {
			name, ok := scalar(child(param, "m_Name"))
			if !ok || name == "" {
				continue
			}

			code, ok := scalar(child(param, "m_Type"))
			if !ok {
				continue
			}

			kind, ok := animatorKind(code)
			if !ok {
				continue
			}

			props = append(props, NamedProperty{Name: name, Kind: kind})
		}
	}

	if !found {
		return nil, errors.Mark(
			errors.Newf("%s declares no AnimatorController", sourcePath),
			errors.ErrMalformedSource)
	}

	return props, nil
}

func animatorKind(code string) (PropertyKind, bool) {
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}

	switch n {
	case animatorFloat:
		return KindFloat, true
	case animatorInt:
		return KindInteger, true
	case animatorBool:
		return KindBool, true
	case animatorTrigger:
		return KindTrigger, true
	default:
		return 0, false
	}
}
