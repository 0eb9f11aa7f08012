// Package glass provides glass-transition temperature models.
//
// All temperatures are in Celsius. The set is closed: [DiBenedetto],
// [VendittiGillham] and [Dykeman]; the first two ignore the processing
// temperature argument of [Model.Tg].
package glass

import (
	"strings"

	"github.com/san-kum/curesim/internal/cure"
)

// Model returns Tg at a cure fraction and processing temperature.
type Model interface {
	Tg(phi, tempC float64) (float64, error)
	Kind() Kind
	sealed()
}

// Kind names a glass-transition model.
type Kind int

const (
	KindDiBenedetto Kind = iota
	KindVendittiGillham
	KindDykeman
)

var kindNames = map[Kind]string{
	KindDiBenedetto:     "dibenedetto",
	KindVendittiGillham: "venditti_gillham",
	KindDykeman:         "dykeman",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func Kinds() []Kind {
	return []Kind{KindDiBenedetto, KindVendittiGillham, KindDykeman}
}

// ParseKind maps a configuration name onto a model.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if kindNames[k] == n {
			return k, nil
		}
	}
	names := make([]string, 0, len(kindNames))
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return 0, cure.ConfigError("glass model", name, names)
}

// conversion returns lam·phi / (1 - (1-lam)·phi), the DiBenedetto weight.
func conversion(op string, phi, lambda float64) (float64, error) {
	den := 1 - (1-lambda)*phi
	if den == 0 {
		return 0, &cure.DomainError{Op: op, Param: "lambda", Value: lambda, Wrapped: cure.ErrInputDomain}
	}
	return lambda * phi / den, nil
}
