package models

// PlayerStats holds a player's SkyBlock achievement levels. Fields are
// pointers because Hypixel omits any skill the player has never levelled.
type PlayerStats struct {
	Combat       *int `json:"skyblock_combat"`
	Harvester    *int `json:"skyblock_harvester"`
	Excavator    *int `json:"skyblock_excavator"`
	Gatherer     *int `json:"skyblock_gatherer"`
	Domesticator *int `json:"skyblock_domesticator"`
	Dungeoneer   *int `json:"skyblock_dungeoneer"`
	Curator      *int `json:"skyblock_curator"`
	Angler       *int `json:"skyblock_angler"`
}
