// Package fire propagates combustion between physically adjacent
// entities: burning things heat their neighbours, hot things ignite, and
// things that burned long enough are cut out of any rope and deleted.
package fire

import "math"

// SpreadMargin is how far a burning shape is inflated when looking for
// neighbours to heat. Shared by every entity.
const SpreadMargin = 0.2

// BurnForever as TimeToDestroy keeps an entity burning indefinitely.
var BurnForever = math.Inf(1)

// Params are fixed when the flammable is created.
type Params struct {
	TempToCatchFire float64
	// Seconds spent burning before the entity is destroyed.
	TimeToDestroy float64
	// Temperature added to each neighbour per second while burning.
	BurningHeat float64
	// Temperature lost per second while nothing nearby is burning.
	CooldownRate float64
}

func DefaultParams() Params {
	return Params{
		TempToCatchFire: 10.0,
		TimeToDestroy:   0.066,
		BurningHeat:     300.0,
		CooldownRate:    2.0,
	}
}

// Destroys reports whether burning eventually destroys the entity.
func (p Params) Destroys() bool {
	return !math.IsInf(p.TimeToDestroy, 1)
}

// State is either NotOnFire or OnFire.
type State interface {
	combustionState()
}

// NotOnFire accumulates heat from burning neighbours. CoolingDown is reset
// every tick and cleared when any heat arrives that tick.
type NotOnFire struct {
	Temperature float64
	CoolingDown bool
}

type OnFire struct {
	TimeBurning float64
}

func (NotOnFire) combustionState() {}
func (OnFire) combustionState()    {}

// Flammable is the combustion component.
type Flammable struct {
	params Params
	state  State
}

func New(params Params) *Flammable {
	return &Flammable{
		params: params,
		state:  NotOnFire{Temperature: 0, CoolingDown: true},
	}
}

// Ignite sets the entity burning with a fresh timer, whatever its state.
// Re-igniting a burning entity restarts its burn timer.
func (f *Flammable) Ignite() {
	f.state = OnFire{TimeBurning: 0}
}

// Ignited ignites f and returns it, for spawning eternal fires.
func (f *Flammable) Ignited() *Flammable {
	f.Ignite()
	return f
}

func (f *Flammable) Params() Params { return f.params }
func (f *Flammable) State() State   { return f.state }

func (f *Flammable) Burning() bool {
	_, ok := f.state.(OnFire)
	return ok
}

// Temperature is the accumulated heat, or the ignition threshold while
// burning.
func (f *Flammable) Temperature() float64 {
	switch s := f.state.(type) {
	case NotOnFire:
		return s.Temperature
	case OnFire:
		return f.params.TempToCatchFire
	}
	return 0
}
