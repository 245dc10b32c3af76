package data

import (
	"github.com/bearlytools/pkmn"
)

// Stat names a Gen 1 stat.
type Stat uint8

const (
	HP Stat = iota
	Atk
	Def
	Spe
	Spc
)

// Defaults applied when a set leaves a value out.
const (
	DefaultLevel = 100
	MaxDV        = 15
	MaxEV        = 255
	// MaxPP is the most PP a Gen 1 move slot holds.
	MaxPP = 61
)

// HPDV derives the HP DV from the low bit of each other DV.
func HPDV(dvs pkmn.Stats) uint16 {
	return (dvs.Atk&1)<<3 | (dvs.Def&1)<<2 | (dvs.Spe&1)<<1 | (dvs.Spc & 1)
}

// CalcStat computes a Gen 1 stat.
func CalcStat(stat Stat, base, dv, ev uint16, level uint8) uint16 {
	core := (uint32(base)+uint32(dv))*2 + uint32(ev)/4
	v := core * uint32(level) / 100
	if stat == HP {
		return uint16(v + uint32(level) + 10)
	}
	return uint16(v + 5)
}

// CalcStats computes all stats for a species. The HP DV in dvs is ignored.
func CalcStats(base BaseStats, dvs, evs pkmn.Stats, level uint8) pkmn.Stats {
	return pkmn.Stats{
		HP:  CalcStat(HP, base.HP, HPDV(dvs), evs.HP, level),
		Atk: CalcStat(Atk, base.Atk, dvs.Atk, evs.Atk, level),
		Def: CalcStat(Def, base.Def, dvs.Def, evs.Def, level),
		Spe: CalcStat(Spe, base.Spe, dvs.Spe, evs.Spe, level),
		Spc: CalcStat(Spc, base.Spc, dvs.Spc, evs.Spc, level),
	}
}

// CalcPP returns the PP of a move with 3 PP Ups applied.
func CalcPP(base uint8) uint8 {
	return uint8(min(int(base)*8/5, MaxPP))
}
