package endless

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"screenguess/internal/models"
)

// fakeRandom returns queued values, then 0.5 / 0. Shuffle leaves order untouched.
type fakeRandom struct {
	floats []float64
	ints   []int
}

func (f *fakeRandom) Float64() float64 {
	if len(f.floats) == 0 {
		return 0.5
	}
	v := f.floats[0]
	f.floats = f.floats[1:]
	return v
}

func (f *fakeRandom) Intn(n int) int {
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[0]
	f.ints = f.ints[1:]
	return v % n
}

func (f *fakeRandom) Shuffle(n int, swap func(i, j int)) {}

var testNames = []string{"Portal", "Half-Life", "Doom", "Tetris", "Celeste", "Hades", "Braid", "Limbo", "Fez", "Inside"}

func testGames() []models.Game {
	games := make([]models.Game, len(testNames))
	for i, name := range testNames {
		games[i] = models.Game{
			ID:          int64(i + 1),
			Name:        name,
			Year:        2000,
			Rating:      50,
			Screenshots: []string{"a", "b", "c", "d", "e"},
			Cover:       "cover-" + strings.ToLower(name),
			Summary:     name + " is a game about " + strings.ToLower(name) + ".",
		}
	}
	return games
}

func newTestController(t *testing.T) (*Controller, *fakeRandom, *KeyValueStore) {
	t.Helper()
	rng := &fakeRandom{}
	store := NewMemoryStore()
	return NewController(testGames(), store, rng, zap.NewNop()), rng, store
}

func targetID(t *testing.T, c *Controller) int64 {
	t.Helper()
	g, ok := c.Target()
	if !ok {
		t.Fatal("expected a current target")
	}
	return g.ID
}

func winFirstTry(t *testing.T, c *Controller) GuessResult {
	t.Helper()
	res, err := c.SubmitGuess(Guess{GameID: targetID(t, c)}, false)
	if err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if res.Outcome != models.OutcomeCorrect {
		t.Fatalf("outcome = %q, want correct", res.Outcome)
	}
	return res
}

func next(t *testing.T, c *Controller) NextResult {
	t.Helper()
	res, err := c.NextLevel()
	if err != nil {
		t.Fatalf("NextLevel() error = %v", err)
	}
	return res
}

func TestRoundPoints(t *testing.T) {
	tests := []struct {
		name       string
		guessCount int
		streak     int
		hot        bool
		want       int
	}{
		{name: "first guess", guessCount: 1, streak: 0, want: 5},
		{name: "second guess", guessCount: 2, streak: 0, want: 3},
		{name: "third guess", guessCount: 3, streak: 0, want: 2},
		{name: "fourth guess", guessCount: 4, streak: 0, want: 1},
		{name: "fifth guess", guessCount: 5, streak: 0, want: 1},
		{name: "difficulty bonus at five", guessCount: 1, streak: 5, want: 6},
		{name: "difficulty bonus at twelve", guessCount: 3, streak: 12, want: 4},
		{name: "hot streak doubles", guessCount: 1, streak: 5, hot: true, want: 12},
		{name: "hot streak on late guess", guessCount: 4, streak: 0, hot: true, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundPoints(tt.guessCount, tt.streak, tt.hot); got != tt.want {
				t.Errorf("RoundPoints(%d, %d, %v) = %d, want %d", tt.guessCount, tt.streak, tt.hot, got, tt.want)
			}
		})
	}

	if got := BonusRoundPoints(10, true); got != 8 {
		t.Errorf("BonusRoundPoints(10, true) = %d, want 8", got)
	}
}

func TestNewRunDefaults(t *testing.T) {
	c, _, _ := newTestController(t)
	s := c.State()

	if len(s.GameOrder) != len(testNames) {
		t.Fatalf("game order has %d ids, want %d", len(s.GameOrder), len(testNames))
	}
	for _, l := range models.AllLifelines {
		if s.Lifelines[l] != 1 {
			t.Errorf("lifeline %s = %d, want 1", l, s.Lifelines[l])
		}
	}
	if !s.Round.IsPlaying() {
		t.Errorf("round status = %q, want playing", s.Round.Status)
	}
	if len(s.Round.CropPositions) != models.ScreenshotsPerGame {
		t.Fatalf("got %d crop positions", len(s.Round.CropPositions))
	}
	for _, p := range s.Round.CropPositions {
		if p.X < 10 || p.X > 90 || p.Y < 10 || p.Y > 90 {
			t.Errorf("crop position %+v out of range", p)
		}
	}
}

func TestSubmitGuessScoring(t *testing.T) {
	c, _, _ := newTestController(t)

	res := winFirstTry(t, c)
	if res.Points != 5 || res.RoundStatus != models.RoundWon {
		t.Fatalf("got %+v, want 5 points and a won round", res)
	}
	next(t, c)

	wrong, err := c.SubmitGuess(Guess{Name: "Tetris"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if wrong.Outcome != models.OutcomeWrong || wrong.RoundStatus != models.RoundPlaying {
		t.Fatalf("wrong guess result = %+v", wrong)
	}

	target, _ := c.Target()
	res, err = c.SubmitGuess(Guess{Name: strings.ToUpper(target.Name)}, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != models.OutcomeCorrect || res.Points != 3 {
		t.Fatalf("second-attempt win = %+v, want correct for 3 points", res)
	}

	s := c.State()
	if s.Score != 8 || s.Streak != 2 || s.HighScore != 8 {
		t.Errorf("score/streak/high = %d/%d/%d, want 8/2/8", s.Score, s.Streak, s.HighScore)
	}
	if len(s.History) != 2 || s.History[1].Status != models.HistoryWon || len(s.History[1].Guesses) != 2 {
		t.Errorf("unexpected history: %+v", s.History)
	}
}

func TestSubmitGuessSimilarName(t *testing.T) {
	c, _, _ := newTestController(t)

	res, err := c.SubmitGuess(Guess{Name: "Portal 2"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != models.OutcomeSimilarName {
		t.Errorf("outcome = %q, want similar-name", res.Outcome)
	}
	if res.RoundStatus != models.RoundPlaying {
		t.Errorf("round should still be playing, got %q", res.RoundStatus)
	}
}

func TestGuessBudgetEndsRun(t *testing.T) {
	c, _, _ := newTestController(t)
	winFirstTry(t, c)
	next(t, c)

	for i := 0; i < models.MaxGuesses; i++ {
		res, err := c.SkipGuess()
		if err != nil {
			t.Fatal(err)
		}
		if !res.Accepted {
			t.Fatalf("skip %d not accepted", i+1)
		}
	}

	s := c.State()
	if !s.IsGameOver || s.Round.Status != models.RoundLost {
		t.Fatalf("expected game over, got status %q gameOver=%v", s.Round.Status, s.IsGameOver)
	}
	last := s.History[len(s.History)-1]
	if last.Status != models.HistoryLost || len(last.Guesses) != models.MaxGuesses {
		t.Errorf("last history entry = %+v", last)
	}

	res, err := c.SubmitGuess(Guess{GameID: 1}, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted {
		t.Error("guess after game over should be ignored")
	}
}

func TestFatalGuess(t *testing.T) {
	c, _, _ := newTestController(t)

	res, err := c.SubmitGuess(Guess{Name: "Doom"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if !res.GameOver || res.RoundStatus != models.RoundLost {
		t.Fatalf("fatal wrong guess = %+v, want game over", res)
	}
	if got := c.State().History[0].Guesses; len(got) != 1 || got[0].Name != "Doom" {
		t.Errorf("fatal guess should be recorded, got %+v", got)
	}
}

func TestHotStreak(t *testing.T) {
	c, _, _ := newTestController(t)

	for i := 0; i < 3; i++ {
		if res := winFirstTry(t, c); res.Points != 5 {
			t.Fatalf("round %d points = %d, want 5", i+1, res.Points)
		}
		next(t, c)
	}
	if !c.State().IsHotStreakActive {
		t.Fatal("hot streak should be active after three quick wins")
	}

	if res := winFirstTry(t, c); res.Points != 10 {
		t.Fatalf("hot streak win = %d points, want 10", res.Points)
	}
	next(t, c)

	for _, name := range []string{"Fez", "Limbo"} {
		if _, err := c.SubmitGuess(Guess{Name: name}, false); err != nil {
			t.Fatal(err)
		}
	}
	if res := winFirstTry(t, c); res.Points != 4 {
		t.Fatalf("third-guess win while hot = %d points, want 4", res.Points)
	}

	s := c.State()
	if s.IsHotStreakActive || s.HotStreakCount != 0 {
		t.Errorf("slow win should reset the hot streak, got active=%v count=%d", s.IsHotStreakActive, s.HotStreakCount)
	}
}

func TestSkipLifeline(t *testing.T) {
	c, _, _ := newTestController(t)

	res, err := c.UseLifeline(models.LifelineSkip)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted || res.Remaining != 0 || res.RoundStatus != models.RoundWon {
		t.Fatalf("skip lifeline = %+v", res)
	}

	s := c.State()
	if s.Streak != 1 || s.Score != 0 {
		t.Errorf("streak/score = %d/%d, want 1/0", s.Streak, s.Score)
	}
	if s.History[0].Status != models.HistorySkipped || s.History[0].PointsAwarded != 0 {
		t.Errorf("history = %+v", s.History[0])
	}

	next(t, c)
	res, err = c.UseLifeline(models.LifelineSkip)
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted {
		t.Error("an exhausted lifeline should be refused")
	}
}

func TestLifelineReveals(t *testing.T) {
	c, _, _ := newTestController(t)
	target, _ := c.Target()

	anagram, _ := c.UseLifeline(models.LifelineAnagram)
	if anagram.Anagram != strings.ToUpper(target.Name) {
		t.Errorf("anagram = %q", anagram.Anagram)
	}

	consultant, _ := c.UseLifeline(models.LifelineConsultant)
	if len(consultant.Options) != 4 {
		t.Fatalf("consultant gave %d options, want 4", len(consultant.Options))
	}
	found := false
	for _, o := range consultant.Options {
		if o.ID == target.ID {
			found = true
		}
	}
	if !found {
		t.Error("consultant options must include the target")
	}

	cover, _ := c.UseLifeline(models.LifelineCoverPeek)
	if cover.Cover != target.Cover {
		t.Errorf("cover = %q, want %q", cover.Cover, target.Cover)
	}

	synopsis, _ := c.UseLifeline(models.LifelineSynopsis)
	if strings.Contains(strings.ToLower(synopsis.Synopsis), strings.ToLower(target.Name)) {
		t.Errorf("synopsis leaks the answer: %q", synopsis.Synopsis)
	}

	zoom, _ := c.UseLifeline(models.LifelineZoomOut)
	if !zoom.ZoomOut || !c.State().Round.ZoomOutActive {
		t.Error("zoom out should be active")
	}

	invalid, err := c.UseLifeline(models.LifelineType("teleport"))
	if err != nil || invalid.Accepted {
		t.Errorf("unknown lifeline should be ignored, got %+v, %v", invalid, err)
	}
}

func TestDoubleTroubleAcceptsEitherGame(t *testing.T) {
	c, _, _ := newTestController(t)
	target, _ := c.Target()

	res, err := c.UseLifeline(models.LifelineDoubleTrouble)
	if err != nil {
		t.Fatal(err)
	}
	if res.DoubleTrouble == nil || res.DoubleTrouble.ID == target.ID {
		t.Fatalf("double trouble should reveal another game, got %+v", res.DoubleTrouble)
	}

	guess, err := c.SubmitGuess(Guess{GameID: res.DoubleTrouble.ID}, false)
	if err != nil {
		t.Fatal(err)
	}
	if guess.Outcome != models.OutcomeCorrect {
		t.Errorf("guessing the second game should win, got %q", guess.Outcome)
	}
	if c.State().History[0].CorrectAnswer != target.Name {
		t.Error("history should record the original target")
	}
}

func atShopBoundary(c *Controller, score int) {
	c.state.Streak = 5
	c.state.Score = score
}

func TestShopPurchases(t *testing.T) {
	c, _, _ := newTestController(t)
	atShopBoundary(c, 10)

	if !c.ShopAvailable() {
		t.Fatal("shop should be available at streak 5")
	}

	opened, err := c.OpenShop()
	if err != nil {
		t.Fatal(err)
	}
	if !opened.Accepted || !opened.Open {
		t.Fatalf("OpenShop() = %+v", opened)
	}

	offers := map[string]models.ShopOffer{}
	for _, o := range opened.Offers {
		offers[o.ID] = o
	}
	if !offers["skip"].Discounted || offers["skip"].FinalCost != 4 {
		t.Errorf("skip offer = %+v, want discounted to 4", offers["skip"])
	}
	if offers["synopsis"].Discounted || offers["synopsis"].FinalCost != 2 {
		t.Errorf("synopsis offer = %+v, want full price 2", offers["synopsis"])
	}

	bought, err := c.BuyShopItem("skip")
	if err != nil {
		t.Fatal(err)
	}
	if !bought.Accepted || bought.Score != 6 || c.State().Lifelines[models.LifelineSkip] != 2 {
		t.Fatalf("skip purchase = %+v, lifelines = %v", bought, c.State().Lifelines)
	}

	allIn, err := c.BuyShopItem(models.ShopItemAllIn)
	if err != nil {
		t.Fatal(err)
	}
	if allIn.Accepted {
		t.Error("all in must be refused after a refill in the same visit")
	}

	unknown, _ := c.BuyShopItem("time_machine")
	if unknown.Accepted {
		t.Error("unknown item should be refused")
	}

	if err := c.CloseShop(); err != nil {
		t.Fatal(err)
	}
	if c.ShopAvailable() || c.State().LastShopStreak != 5 {
		t.Error("shop should not reopen at the same streak")
	}
}

func TestShopAllInLocksRefills(t *testing.T) {
	c, _, _ := newTestController(t)
	atShopBoundary(c, 3)

	if _, err := c.OpenShop(); err != nil {
		t.Fatal(err)
	}
	res, err := c.BuyShopItem(models.ShopItemAllIn)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted || res.Score != 18 {
		t.Fatalf("all in = %+v, want score 18", res)
	}

	refill, _ := c.BuyShopItem("synopsis")
	if refill.Accepted {
		t.Error("refills must be locked after all in")
	}
	if !c.State().AllInPurchased {
		t.Error("all in flag should persist for the run")
	}
}

func TestShopAllInOncePerRun(t *testing.T) {
	c, _, _ := newTestController(t)
	atShopBoundary(c, 0)

	if _, err := c.OpenShop(); err != nil {
		t.Fatal(err)
	}
	first, err := c.BuyShopItem(models.ShopItemAllIn)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Accepted || first.Score != 15 {
		t.Fatalf("first all in = %+v, want score 15", first)
	}
	if err := c.CloseShop(); err != nil {
		t.Fatal(err)
	}

	c.state.Streak = 10
	c.state.Round = c.newRound()
	reopened, err := c.OpenShop()
	if err != nil {
		t.Fatal(err)
	}
	if !reopened.Open {
		t.Fatalf("shop should open at streak 10, got %+v", reopened)
	}
	for _, offer := range reopened.Offers {
		if offer.Available {
			t.Errorf("%s offered after all in", offer.ID)
		}
	}

	second, _ := c.BuyShopItem(models.ShopItemAllIn)
	if second.Accepted || second.Score != 15 {
		t.Errorf("second all in = %+v, want refused at score 15", second)
	}
}

func TestShopRefusesUnaffordable(t *testing.T) {
	c, _, _ := newTestController(t)
	atShopBoundary(c, 1)

	if _, err := c.OpenShop(); err != nil {
		t.Fatal(err)
	}
	res, _ := c.BuyShopItem("skip")
	if res.Accepted || res.Score != 1 {
		t.Errorf("unaffordable purchase = %+v", res)
	}
}

func TestShopClosedOnceRoundStarts(t *testing.T) {
	c, _, _ := newTestController(t)
	atShopBoundary(c, 10)

	if _, err := c.SubmitGuess(Guess{Name: "Doom"}, false); err != nil {
		t.Fatal(err)
	}
	if c.ShopAvailable() {
		t.Error("shop should not be offered after the first guess")
	}
	res, _ := c.OpenShop()
	if res.Accepted {
		t.Error("OpenShop() should be refused mid-round")
	}
}

func TestBonusRound(t *testing.T) {
	c, rng, _ := newTestController(t)

	winFirstTry(t, c)
	next(t, c)
	winFirstTry(t, c)

	rng.floats = []float64{0.05}
	res := next(t, c)
	if !res.BonusRound {
		t.Fatal("expected the roll to start a bonus round")
	}

	s := c.State()
	if s.BonusRound == nil || len(s.BonusRound.GameIDs) != 5 {
		t.Fatalf("bonus round = %+v", s.BonusRound)
	}
	if s.CurrentIndex != 1 {
		t.Errorf("bonus round should not advance the index, got %d", s.CurrentIndex)
	}

	if g, _ := c.SubmitGuess(Guess{GameID: 1}, false); g.Accepted {
		t.Error("normal guesses are refused during a bonus round")
	}
	if r, _ := c.SubmitBonusGuess(99); r.Accepted {
		t.Error("a game outside the options should be refused")
	}

	bonus, err := c.SubmitBonusGuess(s.BonusRound.TargetID)
	if err != nil {
		t.Fatal(err)
	}
	if !bonus.Correct || bonus.Points != 2 {
		t.Fatalf("bonus result = %+v, want 2 points", bonus)
	}

	s = c.State()
	if s.Streak != 3 || s.Score != 12 || s.BonusRound != nil {
		t.Errorf("after bonus: streak %d score %d bonus %+v", s.Streak, s.Score, s.BonusRound)
	}
	if !s.History[len(s.History)-1].BonusRound {
		t.Error("bonus round should be recorded in history")
	}

	rng.floats = []float64{0.0}
	if res := next(t, c); res.BonusRound {
		t.Error("only one bonus round per block")
	}
	if c.State().CurrentIndex != 2 {
		t.Errorf("index = %d, want 2", c.State().CurrentIndex)
	}
}

func TestBonusOptionsSkipUpcomingTarget(t *testing.T) {
	c, rng, _ := newTestController(t)
	c.state.Round.Status = models.RoundWon
	c.state.Streak = 3

	upcoming := c.state.GameOrder[c.state.CurrentIndex+1]
	rng.floats = []float64{0.05}
	res := next(t, c)
	if !res.BonusRound {
		t.Fatal("expected the roll to start a bonus round")
	}

	bonus := c.State().BonusRound
	if len(bonus.GameIDs) != 5 {
		t.Fatalf("bonus options = %v, want 5", bonus.GameIDs)
	}
	for _, id := range bonus.GameIDs {
		if id == upcoming {
			t.Errorf("bonus options %v include the next round's game %d", bonus.GameIDs, upcoming)
		}
	}
}

func TestWrongBonusPickKeepsRun(t *testing.T) {
	c, _, _ := newTestController(t)
	c.state.Round.Status = models.RoundWon
	c.state.BonusRound = &models.BonusRound{GameIDs: []int64{1, 2, 3, 4, 5}, TargetID: 3, TargetName: "Doom"}
	c.state.Streak = 4
	c.state.HasBonusRoundOccurredInCurrentBlock = true

	res, err := c.SubmitBonusGuess(2)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted || res.Correct || res.Points != 0 {
		t.Fatalf("wrong pick = %+v", res)
	}

	s := c.State()
	if s.IsGameOver || s.Streak != 5 {
		t.Errorf("wrong pick should extend the streak without ending the run: %+v", s)
	}
	if s.HasBonusRoundOccurredInCurrentBlock {
		t.Error("reaching a multiple of five should reopen bonus eligibility")
	}
}

func TestBonusRollGating(t *testing.T) {
	tests := []struct {
		name     string
		streak   int
		occurred bool
	}{
		{name: "streak too short", streak: 1},
		{name: "multiple of five", streak: 10},
		{name: "already had one this block", streak: 7, occurred: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rng, _ := newTestController(t)
			c.state.Streak = tt.streak
			c.state.HasBonusRoundOccurredInCurrentBlock = tt.occurred
			rng.floats = []float64{0.0}

			if c.maybeStartBonus() {
				t.Error("bonus round should not start")
			}
			if len(rng.floats) != 1 {
				t.Error("ineligible runs should not consume a roll")
			}
		})
	}
}

func TestGameOverResetKeepsHighScore(t *testing.T) {
	c, _, _ := newTestController(t)
	winFirstTry(t, c)
	next(t, c)
	c.UseLifeline(models.LifelineAnagram)
	if _, err := c.SubmitGuess(Guess{Name: "Braid"}, true); err != nil {
		t.Fatal(err)
	}

	res := next(t, c)
	if !res.Reset {
		t.Fatal("NextLevel() after game over should start a new run")
	}

	s := c.State()
	if s.Score != 0 || s.Streak != 0 || len(s.History) != 0 || s.IsGameOver {
		t.Errorf("run not reset: %+v", s)
	}
	if s.HighScore != 5 {
		t.Errorf("high score = %d, want 5", s.HighScore)
	}
	if s.Lifelines[models.LifelineAnagram] != 1 {
		t.Error("lifelines should be restored")
	}
}

func TestOrderWrapsAround(t *testing.T) {
	c, _, _ := newTestController(t)
	c.state.CurrentIndex = len(c.state.GameOrder) - 1
	winFirstTry(t, c)
	next(t, c)

	s := c.State()
	if s.CurrentIndex != 0 || len(s.GameOrder) != len(testNames) {
		t.Errorf("index %d, order %v", s.CurrentIndex, s.GameOrder)
	}
}

func TestReloadRestoresRun(t *testing.T) {
	c, _, store := newTestController(t)
	winFirstTry(t, c)
	next(t, c)

	reloaded := NewController(testGames(), store, &fakeRandom{}, nil)
	got, want := reloaded.State(), c.State()
	if got.Score != want.Score || got.CurrentIndex != want.CurrentIndex || got.HighScore != want.HighScore {
		t.Errorf("reloaded %+v, want %+v", got, want)
	}
}

func TestReloadFillsMissingFields(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set(RunStateKey, `{"score":3,"streak":1,"gameOrder":[2,3,4],"hotStreakCount":3}`)
	kv.Set(HighScoreKey, "40")

	c := NewController(testGames(), NewKeyValueStore(kv), &fakeRandom{}, nil)
	s := c.State()

	if s.Score != 3 || s.HighScore != 40 {
		t.Errorf("score/high = %d/%d, want 3/40", s.Score, s.HighScore)
	}
	for _, l := range models.AllLifelines {
		if s.Lifelines[l] != 1 {
			t.Errorf("lifeline %s = %d, want default 1", l, s.Lifelines[l])
		}
	}
	if !s.Round.IsPlaying() || len(s.Round.CropPositions) != models.ScreenshotsPerGame {
		t.Errorf("round not initialised: %+v", s.Round)
	}
	if !s.IsHotStreakActive {
		t.Error("hot streak flag should follow the saved count")
	}
	if id, _ := s.CurrentGameID(); id != 2 {
		t.Errorf("current game = %d, want 2", id)
	}
}

func TestReloadCorruptState(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set(RunStateKey, "{not json")
	kv.Set(HighScoreKey, "12")

	c := NewController(testGames(), NewKeyValueStore(kv), &fakeRandom{}, nil)
	s := c.State()
	if s.Score != 0 || len(s.GameOrder) != len(testNames) {
		t.Errorf("expected a fresh run, got %+v", s)
	}
	if s.HighScore != 12 {
		t.Errorf("high score = %d, want 12", s.HighScore)
	}
}

func TestReloadDropsRetiredGames(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set(RunStateKey, `{"gameOrder":[99,4,5],"currentIndex":1,"round":{"status":"playing","cropPositions":[{"x":20,"y":20}]}}`)

	c := NewController(testGames(), NewKeyValueStore(kv), &fakeRandom{}, nil)
	s := c.State()
	if len(s.GameOrder) != 2 || s.CurrentIndex != 0 {
		t.Fatalf("order %v index %d", s.GameOrder, s.CurrentIndex)
	}
	if id, _ := s.CurrentGameID(); id != 4 {
		t.Errorf("current game = %d, want 4", id)
	}
}
