// Package cure holds the shared vocabulary of the cure-state property models.
//
// The property families live in their own packages:
//
//   - [arrhenius]: rate-constant evaluation shared by every kinetics law
//   - [kinetics]: cure rate (phi_dot) from cure fraction, temperature and Tg
//   - [glass]: glass-transition temperature from cure fraction
//   - [modulus]: elastic modulus gated by the gel point
//   - [thermal]: thermal expansion and specific heat
//
// This package owns the error taxonomy and the input checks they all share.
// Every model function is pure: identical inputs yield bit-identical outputs,
// and none of them hold state between calls.
//
// # Coupled use
//
// The Dykeman kinetics law needs the current Tg. A caller advancing cure in
// time evaluates, per material point and increment:
//
//	tg, _ := glassModel.Tg(phi, tempC)
//	rate, _ := kineticsModel.CureRate(phi, tempC, tg)
//	phi += rate * dt // integration is the caller's business
//
// [arrhenius]: github.com/san-kum/curesim/internal/arrhenius
// [kinetics]: github.com/san-kum/curesim/internal/kinetics
// [glass]: github.com/san-kum/curesim/internal/glass
// [modulus]: github.com/san-kum/curesim/internal/modulus
// [thermal]: github.com/san-kum/curesim/internal/thermal
package cure
