package domain

type SessionStatus string

const (
	SessionRunning SessionStatus = "running"
	SessionEnded   SessionStatus = "ended"
)

// Randomizer is satisfied by *rand.Rand from math/rand/v2.
type Randomizer interface {
	Float64() float64
	IntN(n int) int
}

// Tuning holds the field geometry and the per-tick physics constants.
type Tuning struct {
	FieldWidth       float64
	FieldHeight      float64
	PlayerX          float64
	PlayerStartY     float64
	PlayerHalfExtent float64
	MinY             float64
	MaxY             float64
	Gravity          float64
	FlapImpulse      float64
	ScrollSpeed      float64
	SpawnProbability float64
	SpawnX           float64
	ObstacleWidth    float64
	GapCenterMin     int
	GapCenterMax     int
	GapSize          float64
}

func DefaultTuning() Tuning {
	return Tuning{
		FieldWidth:       400,
		FieldHeight:      450,
		PlayerX:          80,
		PlayerStartY:     225,
		PlayerHalfExtent: 14,
		MinY:             15,
		MaxY:             435,
		Gravity:          0.25,
		FlapImpulse:      -5,
		ScrollSpeed:      3,
		SpawnProbability: 0.012,
		SpawnX:           400,
		ObstacleWidth:    50,
		GapCenterMin:     130,
		GapCenterMax:     300,
		GapSize:          200,
	}
}

// Rect is an axis-aligned rectangle, X1 < X2 and Y1 < Y2.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Overlaps reports a true interval intersection on both axes. Touching edges do not count.
func (r Rect) Overlaps(other Rect) bool {
	return r.X1 < other.X2 && r.X2 > other.X1 && r.Y1 < other.Y2 && r.Y2 > other.Y1
}

type Obstacle struct {
	X         float64
	GapCenter float64
	GapSize   float64
	Scored    bool
}

func (o Obstacle) TopBar(t Tuning) Rect {
	return Rect{X1: o.X, Y1: 0, X2: o.X + t.ObstacleWidth, Y2: o.GapCenter - o.GapSize/2}
}

func (o Obstacle) BottomBar(t Tuning) Rect {
	return Rect{X1: o.X, Y1: o.GapCenter + o.GapSize/2, X2: o.X + t.ObstacleWidth, Y2: t.FieldHeight}
}

func (o Obstacle) trailingEdge(t Tuning) float64 {
	return o.X + t.ObstacleWidth
}

// TickResult describes what a single tick changed.
type TickResult struct {
	// Scores lists every score value reached during the tick, in order.
	Scores []int
	Ended  bool
}

type Session struct {
	PlayerY   float64
	Velocity  float64
	Obstacles []Obstacle
	Score     int
	Status    SessionStatus

	tuning Tuning
	rng    Randomizer
	result *FinalResult
}

func NewSession(tuning Tuning, rng Randomizer) *Session {
	return &Session{
		PlayerY: tuning.PlayerStartY,
		Status:  SessionRunning,
		tuning:  tuning,
		rng:     rng,
	}
}

func (s *Session) Tuning() Tuning {
	return s.tuning
}

func (s *Session) Running() bool {
	return s.Status == SessionRunning
}

func (s *Session) PlayerBox() Rect {
	h := s.tuning.PlayerHalfExtent
	return Rect{
		X1: s.tuning.PlayerX - h,
		Y1: s.PlayerY - h,
		X2: s.tuning.PlayerX + h,
		Y2: s.PlayerY + h,
	}
}

// Flap replaces the current velocity with the flap impulse.
func (s *Session) Flap() {
	if !s.Running() {
		return
	}
	s.Velocity = s.tuning.FlapImpulse
}

// Tick advances the session by one frame. It is a no-op once the session has ended.
func (s *Session) Tick() TickResult {
	if !s.Running() {
		return TickResult{Ended: true}
	}

	var result TickResult

	s.Velocity += s.tuning.Gravity
	s.PlayerY += s.Velocity

	for i := range s.Obstacles {
		s.Obstacles[i].X -= s.tuning.ScrollSpeed
	}

	for i := range s.Obstacles {
		if s.Obstacles[i].Scored || s.Obstacles[i].trailingEdge(s.tuning) >= s.tuning.PlayerX {
			continue
		}
		s.Obstacles[i].Scored = true
		s.Score++
		result.Scores = append(result.Scores, s.Score)
	}

	kept := s.Obstacles[:0]
	for _, obstacle := range s.Obstacles {
		if obstacle.trailingEdge(s.tuning) < 0 {
			continue
		}
		kept = append(kept, obstacle)
	}
	s.Obstacles = kept

	if s.collided() {
		s.Status = SessionEnded
		result.Ended = true
		return result
	}

	s.maybeSpawn()

	return result
}

func (s *Session) OutOfBounds() bool {
	return s.PlayerY < s.tuning.MinY || s.PlayerY > s.tuning.MaxY
}

func (s *Session) collided() bool {
	if s.OutOfBounds() {
		return true
	}

	player := s.PlayerBox()
	for _, obstacle := range s.Obstacles {
		if player.Overlaps(obstacle.TopBar(s.tuning)) || player.Overlaps(obstacle.BottomBar(s.tuning)) {
			return true
		}
	}

	return false
}

func (s *Session) maybeSpawn() {
	if s.rng == nil || s.rng.Float64() >= s.tuning.SpawnProbability {
		return
	}

	span := s.tuning.GapCenterMax - s.tuning.GapCenterMin + 1
	gapCenter := s.tuning.GapCenterMin
	if span > 1 {
		gapCenter += s.rng.IntN(span)
	}

	s.Obstacles = append(s.Obstacles, Obstacle{
		X:         s.tuning.SpawnX,
		GapCenter: float64(gapCenter),
		GapSize:   s.tuning.GapSize,
	})
}

// Finish moves the session to Ended. It returns the recorded result and true when the
// session was already finalized.
func (s *Session) Finish() (FinalResult, bool) {
	s.Status = SessionEnded
	if s.result != nil {
		return *s.result, true
	}
	return FinalResult{}, false
}

// Record stores the final result so later Finish calls return it unchanged.
func (s *Session) Record(result FinalResult) {
	s.result = &result
}

type FinalResult struct {
	Score        int
	HighScore    int
	NewHighScore bool
}
