package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Document is the storage for the card state document.
type Document interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

var errMalformedState = errors.New("malformed card state")

// LoadState reads the card state. Fields with the wrong type are dropped;
// a document that is not JSON yields an empty state and an error.
func LoadState(ctx context.Context, doc Document) (CardState, error) {
	st := NewCardState()
	raw, err := doc.Load(ctx)
	if err != nil {
		return st, fmt.Errorf("load card state: %w", err)
	}
	if raw == nil {
		return st, nil
	}
	if !gjson.ValidBytes(raw) {
		return st, errMalformedState
	}

	res := gjson.ParseBytes(raw)
	if known := res.Get("known"); known.IsObject() {
		known.ForEach(func(k, v gjson.Result) bool {
			if v.IsBool() {
				st.Known[k.String()] = v.Bool()
			}
			return true
		})
	}
	if favs := res.Get("favorites"); favs.IsArray() {
		for _, v := range favs.Array() {
			if v.Type == gjson.String {
				st.Favorites = append(st.Favorites, v.String())
			}
		}
	}
	if last := res.Get("lastCardId"); last.Type == gjson.String {
		st.LastCardID = last.String()
	}
	return st, nil
}

// SaveState writes st.
func SaveState(ctx context.Context, doc Document, st CardState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode card state: %w", err)
	}
	if err := doc.Save(ctx, data); err != nil {
		return fmt.Errorf("save card state: %w", err)
	}
	return nil
}
