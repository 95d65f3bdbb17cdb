package models

// StackStats are the chip aggregates published with every snapshot
type StackStats struct {
	TotalPlayers     int
	RemainingPlayers int
	EliminatedCount  int
	TotalChips       int
	AverageStack     int
	LargestStack     int
	SmallestStack    int
}

// ComputeStackStats derives the aggregate fields of a snapshot from its players.
func ComputeStackStats(players []TournamentPlayer) StackStats {
	stats := StackStats{TotalPlayers: len(players)}
	for _, p := range players {
		if p.IsEliminated {
			stats.EliminatedCount++
			continue
		}
		stats.RemainingPlayers++
		stats.TotalChips += p.Chips
		if p.Chips > stats.LargestStack {
			stats.LargestStack = p.Chips
		}
		if stats.SmallestStack == 0 || p.Chips < stats.SmallestStack {
			stats.SmallestStack = p.Chips
		}
	}
	stats.AverageStack = CalculateAverageStack(stats.TotalChips, stats.RemainingPlayers)
	return stats
}

// CalculateAverageStack calculates the average chip stack in a tournament
func CalculateAverageStack(totalChips int, remainingPlayers int) int {
	if remainingPlayers == 0 {
		return 0
	}
	return totalChips / remainingPlayers
}

// CalculateTablesNeeded calculates how many tables are needed for player count
func CalculateTablesNeeded(playerCount int, maxPlayersPerTable int) int {
	if playerCount == 0 || maxPlayersPerTable <= 0 {
		return 0
	}
	tables := playerCount / maxPlayersPerTable
	if playerCount%maxPlayersPerTable != 0 {
		tables++
	}
	return tables
}

// DistributePlayersToTables splits players across the fewest tables, as
// evenly as possible. Earlier tables take the remainder.
func DistributePlayersToTables(playerCount int, maxPlayersPerTable int) []int {
	tablesNeeded := CalculateTablesNeeded(playerCount, maxPlayersPerTable)
	if tablesNeeded == 0 {
		return []int{}
	}

	distribution := make([]int, tablesNeeded)
	base := playerCount / tablesNeeded
	remainder := playerCount % tablesNeeded
	for i := range distribution {
		distribution[i] = base
		if i < remainder {
			distribution[i]++
		}
	}
	return distribution
}

// IsOnTheBubble reports whether one more elimination puts everyone left in the money.
func IsOnTheBubble(playerCount int, prizePositions int) bool {
	return playerCount == prizePositions+1
}
