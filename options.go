package pkmn

// Stats holds one value per Gen 1 stat. It is used for DVs, EVs and explicit stat overrides.
// Spc is the single Special stat, reported as both SpA and SpD by the views.
type Stats struct {
	HP  uint16
	Atk uint16
	Def uint16
	Spe uint16
	Spc uint16
}

// MaxDVs are the DVs used when a Set does not provide any.
var MaxDVs = Stats{HP: 15, Atk: 15, Def: 15, Spe: 15, Spc: 15}

// MaxEVs are the stat experience values used when a Set does not provide any.
var MaxEVs = Stats{HP: 255, Atk: 255, Def: 255, Spe: 255, Spc: 255}

// Set describes one Pokémon for battle creation. Identifiers may be IDs ("mrmime") or
// display names ("Mr. Mime").
type Set struct {
	// Name is the nickname used by logs. Defaults to the species display name.
	Name string
	// Species is required.
	Species string
	// Level defaults to 100.
	Level uint8
	// Moves holds 1-4 moves.
	Moves []string
	// DVs default to MaxDVs. The HP DV is always derived from the other DVs.
	DVs *Stats
	// EVs default to MaxEVs.
	EVs *Stats

	// Stats overrides the computed stats. HP here is the max HP.
	Stats *Stats
	// HP overrides the current HP, which defaults to the max HP.
	HP *uint16
	// Status is the raw engine status byte. Zero is healthy.
	Status uint8
	// PP overrides each move's PP. Missing entries use the move's maximum.
	PP []uint8
}

// SideOptions are the options for one player.
type SideOptions struct {
	Name string
	Team []Set
}

// Options configures battle creation.
type Options struct {
	// Showdown selects the Pokémon Showdown compatible RNG layout.
	Showdown bool
	// Log is recorded for callers driving an engine, creation does not depend on it.
	Log bool
	// Seed is 10 bytes for the cartridge RNG or 4 16 bit words in Showdown mode.
	// A nil Seed writes an all zero seed.
	Seed []uint16
	// Turn and LastDamage are normally zero for a new battle.
	Turn       uint16
	LastDamage uint16

	P1 SideOptions
	P2 SideOptions
}

// Side returns the options for player p.
func (o Options) Side(p Player) SideOptions {
	if p == P2 {
		return o.P2
	}
	return o.P1
}
