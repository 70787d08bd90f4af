// Package spawner declares the settings of a spawn point. The views over
// them are generated into the views subpackage.
package spawner

// Wave is how a spawner releases its units.
type Wave int32

const (
	WaveSingle Wave = iota
	WaveBurst
	WaveStream
)

// Spawner is a spawn point.
//
//viewgen:root
type Spawner struct {
	Count   int
	Delays  []float32
	Pattern Wave
}
