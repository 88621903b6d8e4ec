package progress

import "sort"

// RankEntry is one row of the local ranking board.
type RankEntry struct {
	Name  string
	Score int
	You   bool
}

var rivals = []RankEntry{
	{Name: "AI Haru", Score: 320},
	{Name: "AI Luna", Score: 260},
	{Name: "AI Kai", Score: 180},
}

// Ranking places the learner's XP among the fixed rivals, highest first.
func Ranking(name string, xp int) []RankEntry {
	if name == "" {
		name = "You"
	}
	board := append([]RankEntry(nil), rivals...)
	board = append(board, RankEntry{Name: name, Score: xp, You: true})
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Score > board[j].Score
	})
	return board
}
