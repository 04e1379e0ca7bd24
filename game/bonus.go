package game

// Bonus is a set of independently toggled speed modifiers.
type Bonus uint8

const (
	BonusSprint Bonus = 1 << iota
	BonusHaste
	BonusEncumbered
	BonusSneak
)

// BonusMultipliers holds the speed factor applied for each bonus.
type BonusMultipliers struct {
	Sprint     float32
	Haste      float32
	Encumbered float32
	Sneak      float32
}

// Multiplier returns the product of the factors of every active bonus.
func (b Bonus) Multiplier(m BonusMultipliers) float32 {
	mul := float32(1)
	if b&BonusSprint != 0 {
		mul *= m.Sprint
	}
	if b&BonusHaste != 0 {
		mul *= m.Haste
	}
	if b&BonusEncumbered != 0 {
		mul *= m.Encumbered
	}
	if b&BonusSneak != 0 {
		mul *= m.Sneak
	}
	return mul
}
