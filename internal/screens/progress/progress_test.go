package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/wordbuddy/internal/screen/screentest"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

func TestProgressView(t *testing.T) {
	env := screentest.New(t)
	env.Services.Settings.Name = "Aki"
	ctx := context.Background()
	env.Services.Progress.RegisterAnswer(ctx, vocab.CategoryIT, true)
	env.Services.Progress.RegisterAnswer(ctx, vocab.CategoryIT, false)

	view := New(env.Services).View(110, 40)

	assert.Contains(t, view, "Lv. 1")
	assert.Contains(t, view, "12 / 100 XP")
	assert.Contains(t, view, "50%")
	assert.Contains(t, view, "初回学習")
	assert.Contains(t, view, "AI Haru")
	assert.Contains(t, view, "Aki")
}

func TestProgressView_UserRankedLastOnTie(t *testing.T) {
	env := screentest.New(t)
	p := New(env.Services)
	p.record.XP = 180

	view := p.View(110, 40)
	assert.Contains(t, view, "3. AI Kai")
	assert.Contains(t, view, "4. You")
}
