package domain

// TimeOfDay gates which spawn entries are eligible when a session starts.
type TimeOfDay string

const (
	TimeOfDayDay   TimeOfDay = "day"
	TimeOfDayNight TimeOfDay = "night"
	TimeOfDayBoth  TimeOfDay = "both"
)

// Valid reports whether t is a value a client may submit.
// "both" is only legal on spawn entries, not on session starts.
func (t TimeOfDay) Valid() bool {
	return t == TimeOfDayDay || t == TimeOfDayNight
}

// Pokemon is an immutable catalog record. Rows are created by the seeder
// and never mutated during gameplay.
type Pokemon struct {
	ID             int    `json:"dex_number" db:"dex_number"`
	Name           string `json:"name" db:"name"`
	Type1          string `json:"type1" db:"type1"`
	Type2          string `json:"type2,omitempty" db:"type2"` // empty for mono-typed Pokémon
	EvolutionStage int    `json:"evolution_stage" db:"evolution_stage"`
	FullyEvolved   bool   `json:"fully_evolved" db:"fully_evolved"`
	Color          string `json:"color" db:"color"`
	Generation     int    `json:"generation" db:"generation"`
	ImageURL       string `json:"image_url" db:"image_url"`
}

// HasSecondaryType reports whether the Pokémon is dual-typed.
func (p *Pokemon) HasSecondaryType() bool {
	return p.Type2 != ""
}

// Biome is a themed habitat that gates which Pokémon can be the day's answer.
type Biome struct {
	ID          string `json:"biome_id" db:"biome_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
}

// SpawnEntry configures one Pokémon as spawnable in a biome, with a weight
// used for the answer draw.
type SpawnEntry struct {
	BiomeID   string    `json:"biome_id" db:"biome_id"`
	PokemonID int       `json:"dex_number" db:"dex_number"`
	TimeOfDay TimeOfDay `json:"time_of_day" db:"time_of_day"` // day, night or both
	Weight    int       `json:"weight" db:"weight"`
}
