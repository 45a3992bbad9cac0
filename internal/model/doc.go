// Package model implements steric-corrected electrochemical capacitance for
// an electrode-electrolyte interface.
//
// The central computation is a self-consistent solve for the ion volume
// fraction at the electrode surface:
//
//	φ₀ = 1000·N_A·v·c_bulk·exp(-(qΦ + Δμ_steric(φ₀)) / kT)
//
// where Δμ_steric is the Carnahan-Starling or Liu excluded-volume chemical
// potential relative to the bulk. Every downstream quantity derives from the
// root φ₀ in a fixed order: the reduced dielectric constant of the crowded
// layer (Clausius-Mossotti mixing), the steric layer thickness, the surface
// charge density and finally the differential capacitance as the numerical
// derivative of charge density with respect to potential.
//
// # Failure posture
//
// Construction-time input validation lives in the echem package. At query
// time the model never surfaces a solver failure: the volume-fraction solve
// runs a ladder of strategies ending in a monotone heuristic, and downstream
// formula failures degrade to linear Gouy-Chapman-Stern theory. Every
// degradation increments a [Diagnostics] counter and emits a log warning, so
// sweeps run to completion while degraded points stay observable.
//
// # Concurrency
//
// A Model memoizes per-potential results in plain maps and is not safe for
// concurrent use; guard it externally or use one instance per goroutine.
package model
