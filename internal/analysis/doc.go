// Package analysis inspects recorded gray-level series in the frequency
// domain.
//
//	ps := analysis.PowerSpectrum(result.Levels())
//	period, ok := analysis.DominantPeriod(result.Levels(), step)
package analysis
