// Package modulus provides cure- and temperature-dependent elastic modulus
// models. Below the gel point every model returns [GelPlaceholder].
package modulus

import (
	"strings"

	"github.com/san-kum/curesim/internal/cure"
)

// GelPlaceholder is the modulus of the ungelled resin. It is not zero so
// that callers dividing by the modulus stay finite.
const GelPlaceholder = 1e-6

// Model returns the elastic modulus at a cure fraction and temperature in Celsius.
type Model interface {
	Modulus(phi, tempC float64) (float64, error)
	Kind() Kind
	sealed()
}

// Kind names a modulus model.
type Kind int

const (
	KindModelA Kind = iota
	KindModelB
)

var kindNames = map[Kind]string{
	KindModelA: "model_a",
	KindModelB: "model_b",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func Kinds() []Kind {
	return []Kind{KindModelA, KindModelB}
}

func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if kindNames[k] == n {
			return k, nil
		}
	}
	return 0, cure.ConfigError("modulus model", name, []string{KindModelA.String(), KindModelB.String()})
}

func checkPoint(op string, phi, tempC float64) error {
	if err := cure.CheckFraction(op, phi); err != nil {
		return err
	}
	return cure.CheckKelvin(op, tempC)
}
