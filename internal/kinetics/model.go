// Package kinetics provides cure-rate laws for a thermosetting resin.
//
// Each law is a value type carrying its own parameters and implementing
// [Model]. The set is closed: [ProutThompkins], [KamalSourour] and [Dykeman].
// Only [Dykeman] reads the Tg argument; evaluate Tg first, then the cure rate.
package kinetics

import (
	"strings"

	"github.com/san-kum/curesim/internal/cure"
)

// Model returns phi_dot, the cure rate, at a cure fraction, a temperature in
// Celsius and the current glass-transition temperature in Celsius.
type Model interface {
	CureRate(phi, tempC, tg float64) (float64, error)
	Kind() Kind
	sealed()
}

// Kind names a cure-rate law.
type Kind int

const (
	KindProutThompkins Kind = iota
	KindKamalSourour
	KindDykeman
)

var kindNames = map[Kind]string{
	KindProutThompkins: "prout_thompkins",
	KindKamalSourour:   "kamal_sourour",
	KindDykeman:        "dykeman",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds lists every law in declaration order.
func Kinds() []Kind {
	return []Kind{KindProutThompkins, KindKamalSourour, KindDykeman}
}

// ParseKind maps a configuration name onto a law.
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
	return 0, cure.ConfigError("kinetics model", name, names)
}

func checkPoint(op string, phi, tempC float64) error {
	if err := cure.CheckFraction(op, phi); err != nil {
		return err
	}
	return cure.CheckKelvin(op, tempC)
}
