package achievements

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/learnhub/backend/internal/models"
)

// fakeStore emulates the Postgres store in memory. The grants map plays the
// role of the UNIQUE(user_id, achievement_id) constraint: a second insert for
// the same key reports "not inserted" exactly like the duplicate-key path.
type fakeStore struct {
	mu        sync.Mutex
	catalog   []models.Achievement
	counts    map[models.CriterionType]int
	countErrs map[models.CriterionType]error
	grants    map[[2]int64]time.Time

	counterCalls map[models.CriterionType]int
	earnedGate   func() // optional barrier, invoked inside ListEarnedIDs
}

func newFakeStore(catalog ...models.Achievement) *fakeStore {
	return &fakeStore{
		catalog:      catalog,
		counts:       make(map[models.CriterionType]int),
		countErrs:    make(map[models.CriterionType]error),
		grants:       make(map[[2]int64]time.Time),
		counterCalls: make(map[models.CriterionType]int),
	}
}

func (f *fakeStore) ListCatalog() ([]models.Achievement, error) {
	return f.catalog, nil
}

func (f *fakeStore) ListEarnedIDs(userID int64) (map[int64]bool, error) {
	f.mu.Lock()
	earned := make(map[int64]bool)
	for key := range f.grants {
		if key[0] == userID {
			earned[key[1]] = true
		}
	}
	gate := f.earnedGate
	f.mu.Unlock()
	if gate != nil {
		gate()
	}
	return earned, nil
}

func (f *fakeStore) InsertGrant(userID, achievementID int64) (time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{userID, achievementID}
	if _, ok := f.grants[key]; ok {
		return time.Time{}, false, nil
	}
	now := time.Now()
	f.grants[key] = now
	return now, true, nil
}

func (f *fakeStore) GetUserAchievements(userID int64) ([]models.EarnedAchievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var earned []models.EarnedAchievement
	for _, a := range f.catalog {
		if at, ok := f.grants[[2]int64{userID, a.ID}]; ok {
			earned = append(earned, models.EarnedAchievement{Achievement: a, EarnedAt: at})
		}
	}
	return earned, nil
}

func (f *fakeStore) count(ct models.CriterionType) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counterCalls[ct]++
	if err := f.countErrs[ct]; err != nil {
		return 0, err
	}
	return f.counts[ct], nil
}

func (f *fakeStore) CountForumPosts(int64) (int, error) {
	return f.count(models.CriterionForumPosts)
}
func (f *fakeStore) CountEnrollments(int64) (int, error) {
	return f.count(models.CriterionEnrollments)
}
func (f *fakeStore) CountQuizAttempts(int64) (int, error) {
	return f.count(models.CriterionQuizAttempts)
}
func (f *fakeStore) CountPerfectQuizzes(int64) (int, error) {
	return f.count(models.CriterionPerfectQuiz)
}
func (f *fakeStore) CountCertificates(int64) (int, error) {
	return f.count(models.CriterionCertificates)
}
func (f *fakeStore) CountAcceptedAnswers(int64) (int, error) {
	return f.count(models.CriterionAcceptedAnswers)
}

func entry(id int64, name string, ct models.CriterionType, threshold, points int) models.Achievement {
	return models.Achievement{
		ID:        id,
		Name:      name,
		Criterion: models.Criterion{Type: ct, Threshold: threshold},
		Points:    points,
	}
}

const userID = int64(7)

func TestEvaluateAndAwardFirstPost(t *testing.T) {
	store := newFakeStore(entry(1, "First Post", models.CriterionForumPosts, 1, 10))
	svc := NewService(store)

	// Zero posts: nothing qualifies
	unlocked, err := svc.EvaluateAndAward(userID)
	if err != nil {
		t.Fatalf("EvaluateAndAward: %v", err)
	}
	if len(unlocked) != 0 {
		t.Fatalf("got %d unlocks with zero posts, want 0", len(unlocked))
	}

	// One post authored: exactly one unlock
	store.counts[models.CriterionForumPosts] = 1
	unlocked, err = svc.EvaluateAndAward(userID)
	if err != nil {
		t.Fatalf("EvaluateAndAward: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].Name != "First Post" {
		t.Fatalf("unlocked = %+v, want exactly First Post", unlocked)
	}
	if unlocked[0].EarnedAt.IsZero() {
		t.Error("unlock event has zero earned_at")
	}

	resp, err := svc.ListUserAchievements(userID)
	if err != nil {
		t.Fatalf("ListUserAchievements: %v", err)
	}
	if len(resp.Achievements) != 1 {
		t.Fatalf("earned list has %d entries, want 1", len(resp.Achievements))
	}
	if resp.Achievements[0].EarnedAt.IsZero() {
		t.Error("earned achievement has zero earned_at")
	}
	if resp.TotalPoints != 10 {
		t.Errorf("total points = %d, want 10", resp.TotalPoints)
	}
}

func TestEvaluateAndAwardIdempotent(t *testing.T) {
	store := newFakeStore(
		entry(1, "Quiz Taker", models.CriterionQuizAttempts, 5, 20),
		entry(2, "Perfect Score", models.CriterionPerfectQuiz, 1, 40),
	)
	store.counts[models.CriterionQuizAttempts] = 5
	store.counts[models.CriterionPerfectQuiz] = 2
	svc := NewService(store)

	first, err := svc.EvaluateAndAward(userID)
	if err != nil {
		t.Fatalf("EvaluateAndAward: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("first pass unlocked %d, want 2", len(first))
	}

	for i := 0; i < 3; i++ {
		again, err := svc.EvaluateAndAward(userID)
		if err != nil {
			t.Fatalf("EvaluateAndAward pass %d: %v", i+2, err)
		}
		if len(again) != 0 {
			t.Errorf("pass %d reported %d unlocks, want 0", i+2, len(again))
		}
	}

	if len(store.grants) != 2 {
		t.Errorf("grant rows = %d, want 2", len(store.grants))
	}
}

func TestEvaluateAndAwardConcurrent(t *testing.T) {
	store := newFakeStore(entry(1, "Quiz Taker", models.CriterionQuizAttempts, 5, 20))
	store.counts[models.CriterionQuizAttempts] = 5
	svc := NewService(store)

	// Hold both passes at the earned-set read so each sees "not yet earned"
	// before either writes a grant — the race the unique key must resolve.
	var gate sync.WaitGroup
	gate.Add(2)
	store.earnedGate = func() {
		gate.Done()
		gate.Wait()
	}

	results := make(chan int, 2)
	for i := 0; i < 2; i++ {
		go func() {
			unlocked, err := svc.EvaluateAndAward(userID)
			if err != nil {
				t.Errorf("EvaluateAndAward: %v", err)
			}
			results <- len(unlocked)
		}()
	}

	total := <-results + <-results
	if total != 1 {
		t.Errorf("concurrent passes reported %d unlocks in total, want exactly 1", total)
	}
	if len(store.grants) != 1 {
		t.Errorf("grant rows = %d, want 1", len(store.grants))
	}
}

func TestEvaluateSkipsUnknownCriterion(t *testing.T) {
	store := newFakeStore(
		entry(1, "Poll Addict", "polls_voted", 1, 10),
		entry(2, "Certified", models.CriterionCertificates, 1, 50),
	)
	store.counts[models.CriterionCertificates] = 1
	svc := NewService(store)

	qualifying, err := svc.Evaluate(userID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(qualifying) != 1 || qualifying[0].Name != "Certified" {
		t.Fatalf("qualifying = %+v, want only Certified", qualifying)
	}
}

func TestEvaluateCounterFailureFailsClosed(t *testing.T) {
	store := newFakeStore(
		entry(1, "First Post", models.CriterionForumPosts, 1, 10),
		entry(2, "Fresh Start", models.CriterionEnrollments, 1, 10),
	)
	store.counts[models.CriterionForumPosts] = 3
	store.counts[models.CriterionEnrollments] = 3
	store.countErrs[models.CriterionForumPosts] = fmt.Errorf("connection reset")
	svc := NewService(store)

	qualifying, err := svc.Evaluate(userID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(qualifying) != 1 || qualifying[0].Name != "Fresh Start" {
		t.Fatalf("qualifying = %+v, want only Fresh Start", qualifying)
	}

	// Once the counter recovers, the next pass picks it up.
	delete(store.countErrs, models.CriterionForumPosts)
	qualifying, err = svc.Evaluate(userID)
	if err != nil {
		t.Fatalf("Evaluate after recovery: %v", err)
	}
	if len(qualifying) != 2 {
		t.Errorf("qualifying after recovery = %d entries, want 2", len(qualifying))
	}
}

func TestEvaluateSkipsEarnedAchievements(t *testing.T) {
	store := newFakeStore(entry(1, "First Post", models.CriterionForumPosts, 1, 10))
	store.counts[models.CriterionForumPosts] = 1
	svc := NewService(store)

	if _, err := svc.EvaluateAndAward(userID); err != nil {
		t.Fatalf("EvaluateAndAward: %v", err)
	}
	callsAfterGrant := store.counterCalls[models.CriterionForumPosts]

	if _, err := svc.Evaluate(userID); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if store.counterCalls[models.CriterionForumPosts] != callsAfterGrant {
		t.Error("counter queried for an already-earned achievement")
	}
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	tests := []struct {
		count     int
		threshold int
		qualifies bool
	}{
		{0, 1, false},
		{4, 5, false},
		{5, 5, true},
		{6, 5, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		store := newFakeStore(entry(1, "Quiz Taker", models.CriterionQuizAttempts, tt.threshold, 20))
		store.counts[models.CriterionQuizAttempts] = tt.count
		svc := NewService(store)

		qualifying, err := svc.Evaluate(userID)
		if err != nil {
			t.Fatalf("Evaluate(count=%d, threshold=%d): %v", tt.count, tt.threshold, err)
		}
		got := len(qualifying) == 1
		if got != tt.qualifies {
			t.Errorf("count=%d threshold=%d: qualifies = %v, want %v",
				tt.count, tt.threshold, got, tt.qualifies)
		}
	}
}
