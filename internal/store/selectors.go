package store

import (
	"slices"
	"sort"

	"poker-platform/tournament-sync/internal/models"
)

// Derived is every derived view evaluated against a single State. It owns
// its slices and blind levels; changing them does not affect the store.
type Derived struct {
	OpenTournaments    []models.TournamentListItem
	RunningTournaments []models.TournamentListItem
	CurrentBlinds      *models.BlindLevel
	NextBlinds         *models.BlindLevel
	RemainingPlayers   int
	TotalPlayers       int
	AverageStack       int
	MyRank             int // 1-based; 0 when the viewer is not ranked
	IsOnBreak          bool
	IsFinalTable       bool
	IsEliminated       bool
}

type blindsInput struct {
	CurrentLevel  int
	CurrentBlinds *models.BlindLevel
	Levels        []models.BlindLevel
}

type blindsOutput struct {
	Current *models.BlindLevel
	Next    *models.BlindLevel
}

type stackInput struct {
	Published int
	Players   []models.TournamentPlayer
}

type rankInput struct {
	Players  []models.TournamentPlayer
	PlayerID string
}

type selectors struct {
	open    *memo[[]models.TournamentListItem, []models.TournamentListItem]
	running *memo[[]models.TournamentListItem, []models.TournamentListItem]
	blinds  *memo[blindsInput, blindsOutput]
	stack   *memo[stackInput, int]
	rank    *memo[rankInput, int]
}

func newSelectors() *selectors {
	return &selectors{
		open: newMemo(func(list []models.TournamentListItem) []models.TournamentListItem {
			return filterByStatus(list, models.StatusRegistering)
		}),
		running: newMemo(func(list []models.TournamentListItem) []models.TournamentListItem {
			return filterByStatus(list, models.StatusRunning, models.StatusFinalTable)
		}),
		blinds: newMemo(computeBlinds),
		stack:  newMemo(computeAverageStack),
		rank:   newMemo(computeRank),
	}
}

func (sel *selectors) derive(st State) Derived {
	d := Derived{
		OpenTournaments:    slices.Clone(sel.open.get(st.Tournaments)),
		RunningTournaments: slices.Clone(sel.running.get(st.Tournaments)),
	}

	if st.MyPlayer != nil {
		d.IsEliminated = st.MyPlayer.IsEliminated
	}

	t := st.ActiveTournament
	if t == nil {
		return d
	}

	blinds := sel.blinds.get(blindsInput{
		CurrentLevel:  t.CurrentLevel,
		CurrentBlinds: t.CurrentBlinds,
		Levels:        t.Config.BlindLevels,
	})
	d.CurrentBlinds = cloneLevel(blinds.Current)
	d.NextBlinds = cloneLevel(blinds.Next)

	d.RemainingPlayers = t.RemainingPlayers
	d.TotalPlayers = t.TotalPlayers
	if d.TotalPlayers == 0 {
		d.TotalPlayers = len(t.RegisteredPlayers)
	}
	d.AverageStack = sel.stack.get(stackInput{Published: t.AverageStack, Players: t.RegisteredPlayers})
	d.IsOnBreak = t.Status == models.StatusPaused
	d.IsFinalTable = t.Status == models.StatusFinalTable

	if st.MyPlayer != nil {
		d.MyRank = sel.rank.get(rankInput{Players: t.RegisteredPlayers, PlayerID: st.MyPlayer.ID})
	}
	return d
}

func cloneLevel(l *models.BlindLevel) *models.BlindLevel {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func filterByStatus(list []models.TournamentListItem, statuses ...models.TournamentStatus) []models.TournamentListItem {
	out := make([]models.TournamentListItem, 0, len(list))
	for _, item := range list {
		for _, status := range statuses {
			if item.Status == status {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func computeBlinds(in blindsInput) blindsOutput {
	current := in.CurrentBlinds
	if current == nil {
		current = models.FindBlindLevel(in.CurrentLevel, in.Levels)
	}
	return blindsOutput{
		Current: current,
		Next:    models.GetNextBlindLevel(in.CurrentLevel, in.Levels),
	}
}

// computeAverageStack prefers the service's published average and falls
// back to the players still in.
func computeAverageStack(in stackInput) int {
	if in.Published > 0 {
		return in.Published
	}
	return models.ComputeStackStats(in.Players).AverageStack
}

// computeRank orders the players still in by chips, largest first, keeping
// registration order between equal stacks.
func computeRank(in rankInput) int {
	active := make([]models.TournamentPlayer, 0, len(in.Players))
	for _, p := range in.Players {
		if !p.IsEliminated {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Chips > active[j].Chips
	})
	for i, p := range active {
		if p.ID == in.PlayerID {
			return i + 1
		}
	}
	return 0
}

// Derive evaluates every derived view against st.
func (s *Store) Derive(st State) Derived {
	return s.selectors.derive(st)
}

func (s *Store) OpenTournaments() []models.TournamentListItem {
	return slices.Clone(s.selectors.open.get(s.Snapshot().Tournaments))
}

func (s *Store) RunningTournaments() []models.TournamentListItem {
	return slices.Clone(s.selectors.running.get(s.Snapshot().Tournaments))
}

func (s *Store) CurrentBlinds() *models.BlindLevel {
	return s.Derive(s.Snapshot()).CurrentBlinds
}

func (s *Store) NextBlinds() *models.BlindLevel {
	return s.Derive(s.Snapshot()).NextBlinds
}

func (s *Store) RemainingPlayers() int {
	return s.Derive(s.Snapshot()).RemainingPlayers
}

func (s *Store) TotalPlayers() int {
	return s.Derive(s.Snapshot()).TotalPlayers
}

func (s *Store) AverageStack() int {
	return s.Derive(s.Snapshot()).AverageStack
}

func (s *Store) IsOnBreak() bool {
	return s.Derive(s.Snapshot()).IsOnBreak
}

func (s *Store) IsFinalTable() bool {
	return s.Derive(s.Snapshot()).IsFinalTable
}

func (s *Store) IsEliminated() bool {
	return s.Derive(s.Snapshot()).IsEliminated
}

func (s *Store) MyRank() int {
	return s.Derive(s.Snapshot()).MyRank
}
