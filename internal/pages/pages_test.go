package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHome(t *testing.T) {
	body, err := Render(Home)
	require.NoError(t, err)

	html := string(body)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<title>Deadlock Stats Tracker</title>")
	assert.Contains(t, html, `href="/auth/login"`)
	assert.Contains(t, html, `/resources/css/main.css`)
}

func TestRenderIsDeterministic(t *testing.T) {
	for _, page := range []Page{Home, Profile} {
		first, err := Render(page)
		require.NoError(t, err)
		second, err := Render(page)
		require.NoError(t, err)

		assert.Equal(t, first, second, "page %s", page)
	}
}

func TestRenderProfile(t *testing.T) {
	body, err := Render(Profile)
	require.NoError(t, err)

	html := string(body)
	assert.Contains(t, html, `<h1 class="profile-name">Demo Player</h1>`)
	assert.Contains(t, html, "Steam ID: 54776284")
	assert.Contains(t, html, `<span class="stat-value">156</span>`)
	assert.Contains(t, html, `<span class="stat-value">67.3%</span>`)
	assert.Contains(t, html, `<span class="stat-value">2.14</span>`)
	assert.Contains(t, html, `<span class="rank-name">Ascendant</span>`)
	assert.Contains(t, html, `onclick="ProfilePage.switchTab('matches')"`)
}

func TestRenderProfileMatchCards(t *testing.T) {
	body, err := Render(Profile)
	require.NoError(t, err)

	html := string(body)
	assert.Contains(t, html, `<div class="match-card win" data-match-id="match_54776284">`)
	assert.Contains(t, html, `<div class="match-card loss" data-match-id="match_54776285">`)
	assert.Contains(t, html, `<img src="/resources/images/heroes/mcginnis.jpg" alt="McGinnis" class="hero-icon">`)
	assert.Contains(t, html, `<span class="kda-ratio">6.67 KDA</span>`)
	assert.Contains(t, html, `<span class="kda-ratio">1.86 KDA</span>`)
	assert.Contains(t, html, `<span class="kda-ratio">13.50 KDA</span>`)
}

func TestRenderUnknownPage(t *testing.T) {
	body, err := Render(Page("settings"))

	require.ErrorIs(t, err, ErrUnknownPage)
	assert.Equal(t, NotFoundFragment, string(body))
}

func TestMatchCardKDA(t *testing.T) {
	tests := []struct {
		name string
		card MatchCard
		want float64
	}{
		{name: "regular", card: MatchCard{Kills: 12, Deaths: 3, Assists: 8}, want: 20.0 / 3},
		{name: "deathless", card: MatchCard{Kills: 4, Deaths: 0, Assists: 2}, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.card.KDA(), 1e-9)
		})
	}
}
