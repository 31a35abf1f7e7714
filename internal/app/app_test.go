package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathaxy/internal/router"
	"github.com/abhisek/mathaxy/internal/screens/home"
	"github.com/abhisek/mathaxy/internal/screens/play"
	"github.com/abhisek/mathaxy/internal/screens/welcome"
	"github.com/abhisek/mathaxy/internal/store"
	"github.com/abhisek/mathaxy/internal/ui/layout"
)

type statsRepo struct {
	store.EventRepo
}

func (statsRepo) BadgeCounts(context.Context) (map[string]int, int, error) {
	return map[string]int{"level_complete": 4}, 4, nil
}

func (statsRepo) LoginDays(context.Context) ([]time.Time, error) {
	d := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return []time.Time{d, d.AddDate(0, 0, 1)}, nil
}

func TestNewAppModel_RootScreen(t *testing.T) {
	m := newAppModel(Options{})
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())

	m = newAppModel(Options{StartLevel: 4})
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())

	m = newAppModel(Options{StartLevel: 11})
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_EscIsLeftToScreens(t *testing.T) {
	m := newAppModel(Options{StartLevel: 1})
	m.router.Push(play.New(play.Deps{}, 1))
	require.Equal(t, 2, m.router.Depth())

	updated, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	am := updated.(AppModel)
	assert.Equal(t, 2, am.router.Depth(), "the level screen asks before leaving")
}

func TestRefreshStats(t *testing.T) {
	m := newAppModel(Options{Deps: play.Deps{Repo: statsRepo{}}})
	cmd := m.refreshStats()
	require.NotNil(t, cmd)

	updated, _ := m.Update(cmd())
	am := updated.(AppModel)
	assert.Equal(t, 4, am.stats.Badges)
	assert.Equal(t, 2, am.stats.StreakDays)

	assert.Nil(t, newAppModel(Options{}).refreshStats())
}

func TestView_RendersHeaderAndFooter(t *testing.T) {
	m := newAppModel(Options{StartLevel: 1})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated, _ = updated.Update(headerStatsMsg{stats: statsFor(3, 5)})

	am := updated.(AppModel)
	assert.Equal(t, 3, am.stats.Badges)
	assert.True(t, am.View().AltScreen)

	header := layout.RenderHeader(am.router.Active().Title(), am.stats, am.width)
	assert.True(t, strings.Contains(header, "Mathaxy"))
	assert.Contains(t, am.router.View(am.width, 30), "PLAY LEVEL 1")
}

func TestPopToRootRefreshesStats(t *testing.T) {
	m := newAppModel(Options{StartLevel: 1, Deps: play.Deps{Repo: statsRepo{}}})
	m.router.Push(play.New(play.Deps{}, 1))

	updated, cmd := m.Update(router.PopToRootMsg{})
	am := updated.(AppModel)
	assert.Equal(t, 1, am.router.Depth())
	assert.NotNil(t, cmd)
}

func statsFor(badges, days int) layout.HeaderStats {
	return layout.HeaderStats{Badges: badges, StreakDays: days}
}
