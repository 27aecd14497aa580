package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	subject, text, html, err := Render(Welcome, Data{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Exercise Tracker, alice", subject)
	assert.Contains(t, text, "Hi alice,")
	assert.Contains(t, html, "Welcome, alice!")
}

func TestRender_AchievementUnlocked(t *testing.T) {
	one := Data{Username: "bob", TotalMinutes: 30, Achievements: []Badge{{Title: "Rookie", Description: "Logged your first workout!"}}}
	subject, text, _, err := Render(AchievementUnlocked, one)
	require.NoError(t, err)
	assert.Equal(t, "You unlocked Rookie", subject)
	assert.Contains(t, text, "- Rookie: Logged your first workout!")
	assert.Contains(t, text, "30 minutes")

	two := one
	two.Achievements = append(two.Achievements, Badge{Title: "Endurance"})
	subject, _, _, err = Render(AchievementUnlocked, two)
	require.NoError(t, err)
	assert.Equal(t, "You unlocked 2 achievements", subject)
}

func TestRender_EscapesHTML(t *testing.T) {
	_, text, html, err := Render(Welcome, Data{Username: "<b>eve</b>"})
	require.NoError(t, err)
	assert.Contains(t, text, "<b>eve</b>")
	assert.Contains(t, html, "&lt;b&gt;eve&lt;/b&gt;")
}

func TestRender_Unknown(t *testing.T) {
	_, _, _, err := Render("nope", Data{})
	assert.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "x", defaultFn("x", ""))
	assert.Equal(t, "x", defaultFn("x", nil))
	assert.Equal(t, "x", defaultFn("x", 0))
	assert.Equal(t, 5, defaultFn("x", 5))
	assert.Equal(t, "y", defaultFn("x", "y"))
}
