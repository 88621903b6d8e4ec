// Package settings holds the learner's preferences.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	"github.com/abhisek/wordbuddy/internal/deck"
	"github.com/abhisek/wordbuddy/internal/quiz"
)

// ErrInvalid is returned when a settings value fails validation.
var ErrInvalid = errors.New("settings: invalid value")

// Theme values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// MaxNameLength bounds the display name shown on the ranking board.
const MaxNameLength = 24

// Settings are the learner's preferences.
type Settings struct {
	Name               string         `json:"name"`
	Theme              string         `json:"theme" validate:"oneof=auto light dark"`
	CardMode           deck.Mode      `json:"cardMode" validate:"oneof=en-ja ja-en both"`
	QuizDirection      quiz.Direction `json:"quizDirection" validate:"oneof=en-ja ja-en"`
	Speech             bool           `json:"speech"`
	BadgeNotifications bool           `json:"badgeNotifications"`
}

// Default returns the settings used before the learner changes anything.
func Default() Settings {
	return Settings{
		Theme:              ThemeAuto,
		CardMode:           deck.ModeENJA,
		QuizDirection:      quiz.DirENJA,
		Speech:             true,
		BadgeNotifications: true,
	}
}

var validate = validator.New()

// Validate checks every field against its allowed values.
func (s Settings) Validate() error {
	if n := utf8.RuneCountInString(s.Name); n > MaxNameLength {
		return fmt.Errorf("%w: Name is %d characters, at most %d allowed", ErrInvalid, n, MaxNameLength)
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s=%q (%s)", ErrInvalid, fe.Field(), fmt.Sprint(fe.Value()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Normalize trims the name.
func (s Settings) Normalize() Settings {
	s.Name = strings.TrimSpace(s.Name)
	return s
}

// DisplayName returns the name for the ranking board.
func (s Settings) DisplayName() string {
	if s.Name == "" {
		return "You"
	}
	return s.Name
}

// Document is the storage for the settings document.
type Document interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Load reads settings over the defaults. A missing document gives the
// defaults. Each field that is missing keeps its default; a field with the
// wrong type or an invalid value also keeps its default and is named in the
// returned error so the caller can log it. A document that is not a JSON
// object gives the defaults and an error.
func Load(ctx context.Context, doc Document) (Settings, error) {
	s := Default()
	raw, err := doc.Load(ctx)
	if err != nil {
		return s, fmt.Errorf("load settings: %w", err)
	}
	if raw == nil {
		return s, nil
	}
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return s, fmt.Errorf("%w: settings document is not a JSON object", ErrInvalid)
	}
	s, fallbacks := merge(gjson.ParseBytes(raw))
	if len(fallbacks) > 0 {
		return s, fmt.Errorf("%w: fields %s reset to defaults", ErrInvalid, strings.Join(fallbacks, ", "))
	}
	return s, nil
}

// merge decodes doc over the defaults field by field.
func merge(doc gjson.Result) (s Settings, fallbacks []string) {
	s = Default()
	def := s

	text := func(path string, set func(string), reset func()) {
		v := doc.Get(path)
		if !v.Exists() {
			return
		}
		if v.Type != gjson.String {
			fallbacks = append(fallbacks, path)
			return
		}
		set(v.Str)
		if s.Validate() != nil {
			reset()
			fallbacks = append(fallbacks, path)
		}
	}
	flag := func(path string, dst *bool) {
		v := doc.Get(path)
		if !v.Exists() {
			return
		}
		if v.Type != gjson.True && v.Type != gjson.False {
			fallbacks = append(fallbacks, path)
			return
		}
		*dst = v.Bool()
	}

	text("name", func(v string) { s.Name = strings.TrimSpace(v) }, func() { s.Name = def.Name })
	text("theme", func(v string) { s.Theme = v }, func() { s.Theme = def.Theme })
	text("cardMode", func(v string) { s.CardMode = deck.Mode(v) }, func() { s.CardMode = def.CardMode })
	text("quizDirection", func(v string) { s.QuizDirection = quiz.Direction(v) }, func() { s.QuizDirection = def.QuizDirection })
	flag("speech", &s.Speech)
	flag("badgeNotifications", &s.BadgeNotifications)
	return s, fallbacks
}

// Save validates and stores s.
func Save(ctx context.Context, doc Document, s Settings) error {
	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := doc.Save(ctx, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
