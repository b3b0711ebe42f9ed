// Package pages renders the generated HTML pages of the dev server.
package pages

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/kyco/deadlockdev/internal/mockapi"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Page identifies a generated page
type Page string

const (
	Home    Page = "home"
	Profile Page = "profile"
)

// NotFoundFragment is returned alongside ErrUnknownPage
const NotFoundFragment = "<h1>Page Not Found</h1>"

// ErrUnknownPage is returned by Render for a page it has no template for
var ErrUnknownPage = errors.New("unknown page")

// MatchCard is one entry in the profile page's recent match list
type MatchCard struct {
	ID       string
	Win      bool
	Hero     string
	Kills    int
	Deaths   int
	Assists  int
	NetWorth string
	Duration string
	Ago      string
}

// KDA is (kills + assists) / deaths, with deaths floored at one
func (m MatchCard) KDA() float64 {
	deaths := m.Deaths
	if deaths == 0 {
		deaths = 1
	}
	return float64(m.Kills+m.Assists) / float64(deaths)
}

func (m MatchCard) ResultClass() string {
	if m.Win {
		return "win"
	}
	return "loss"
}

func (m MatchCard) ResultText() string {
	if m.Win {
		return "승리"
	}
	return "패배"
}

func (m MatchCard) HeroImage() string {
	return "/resources/images/heroes/" + strings.ToLower(m.Hero) + ".jpg"
}

// ProfileView holds the dynamic fields of the profile page
type ProfileView struct {
	Name       string
	SteamID    string
	AvatarURL  string
	Rank       string
	TotalGames int
	WinRate    float64
	AvgKDA     float64
	MainHero   string
	Matches    []MatchCard
}

// DemoProfile is the fixed player shown on /profile
func DemoProfile() ProfileView {
	stats := mockapi.SampleStats()
	return ProfileView{
		Name:       "Demo Player",
		SteamID:    "54776284",
		AvatarURL:  "https://avatars.steamstatic.com/b5bd56c1aa4644a474a2e4972be27ef9e82e517e_full.jpg",
		Rank:       "Ascendant",
		TotalGames: mockapi.SampleMatches().TotalMatches,
		WinRate:    stats.WinRate,
		AvgKDA:     stats.AvgKDA,
		MainHero:   stats.FavoriteHero,
		Matches: []MatchCard{
			{ID: "54776284", Win: true, Hero: "Viscous", Kills: 12, Deaths: 3, Assists: 8, NetWorth: "23,450", Duration: "28:45", Ago: "2시간 전"},
			{ID: "54776285", Win: false, Hero: "Bebop", Kills: 8, Deaths: 7, Assists: 5, NetWorth: "18,720", Duration: "35:12", Ago: "5시간 전"},
			{ID: "54776286", Win: true, Hero: "McGinnis", Kills: 15, Deaths: 2, Assists: 12, NetWorth: "26,890", Duration: "24:16", Ago: "8시간 전"},
		},
	}
}

// Render returns the complete HTML document for page. For an unknown
// page it returns NotFoundFragment together with ErrUnknownPage.
func Render(page Page) ([]byte, error) {
	var data any
	switch page {
	case Home:
	case Profile:
		data = DemoProfile()
	default:
		return []byte(NotFoundFragment), fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, string(page)+".html", data); err != nil {
		return nil, fmt.Errorf("failed to render %s page: %w", page, err)
	}
	return buf.Bytes(), nil
}
