package deck

import "slices"

// CardState is the persisted flashcard state.
type CardState struct {
	Known      map[string]bool `json:"known"`
	Favorites  []string        `json:"favorites"`
	LastCardID string          `json:"lastCardId"`
}

// NewCardState returns an empty card state.
func NewCardState() CardState {
	return CardState{Known: map[string]bool{}, Favorites: []string{}}
}

// Clone returns a deep copy of s.
func (s CardState) Clone() CardState {
	out := NewCardState()
	for k, v := range s.Known {
		out.Known[k] = v
	}
	out.Favorites = append(out.Favorites, s.Favorites...)
	out.LastCardID = s.LastCardID
	return out
}

// IsFavorite reports whether id is in the favorites list.
func (s CardState) IsFavorite(id string) bool {
	return slices.Contains(s.Favorites, id)
}

// KnownCount returns how many cards are marked known.
func (s CardState) KnownCount() int {
	n := 0
	for _, k := range s.Known {
		if k {
			n++
		}
	}
	return n
}
